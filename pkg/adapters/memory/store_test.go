package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunAutomatonStoreContract(t, memory.NewStore())
}

func TestMemoryStore_RejectsInvalidName(t *testing.T) {
	store := memory.NewStore()
	err := store.Save(context.Background(), "../escape", domain.New())
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestMemoryLocker_Contention(t *testing.T) {
	locker := memory.NewLocker()
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "shared", time.Second)
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		unlock2, err := locker.Lock(ctx, "shared", time.Second)
		if assert.NoError(t, err) {
			close(acquired)
			_ = unlock2(ctx)
		}
	}()

	select {
	case <-acquired:
		t.Fatal("second Lock should block while the first is held")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, unlock(ctx))
	require.NoError(t, unlock(ctx), "unlocking twice is harmless")

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second Lock should succeed after release")
	}
}

func TestMemoryLocker_ContextCanceled(t *testing.T) {
	locker := memory.NewLocker()

	unlock, err := locker.Lock(context.Background(), "k", time.Second)
	require.NoError(t, err)
	defer func() { _ = unlock(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = locker.Lock(ctx, "k", time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMemoryLocker_IndependentKeys(t *testing.T) {
	locker := memory.NewLocker()
	ctx := context.Background()

	u1, err := locker.Lock(ctx, "a", time.Second)
	require.NoError(t, err)
	u2, err := locker.Lock(ctx, "b", time.Second)
	require.NoError(t, err)

	assert.NoError(t, u1(ctx))
	assert.NoError(t, u2(ctx))
}
