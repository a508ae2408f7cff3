package ports

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractAutomaton() *domain.Automaton {
	a := domain.New()
	q0 := a.AddState("q0", true, false)
	q1 := a.AddState("q1", false, true)
	a.AddTransition(q0, "0", q0)
	a.AddTransition(q0, "1", q1)
	a.AddTransition(q1, "0", q0)
	a.AddTransition(q1, "1", q1)
	a.AddTransition(q1, "", q0)
	return a
}

// RunAutomatonStoreContract runs a suite of tests to verify that an
// AutomatonStore implementation adheres to the defined interface contract.
func RunAutomatonStoreContract(t *testing.T, store AutomatonStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		original := contractAutomaton()
		require.NoError(t, store.Save(ctx, name, original))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)

		initial, ok := loaded.InitialState()
		require.True(t, ok)
		assert.Equal(t, "q0", initial.Name)
		assert.Equal(t, 2, loaded.Len())
		assert.Len(t, loaded.FinalStates(), 1)
		assert.Equal(t, []string{"0", "1"}, loaded.SortedAlphabet())
		assert.Len(t, loaded.Transitions(), 5)

		q1, _ := loaded.StateByName("q1")
		to, ok := loaded.Next(q1, "")
		require.True(t, ok, "empty-symbol transitions must survive storage")
		assert.Equal(t, "q0", to.Name)
	})

	t.Run("Load is isolated from later edits", func(t *testing.T) {
		original := contractAutomaton()
		require.NoError(t, store.Save(ctx, name, original))

		original.AddState("extra", false, false)
		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, 2, loaded.Len())

		loaded.AddState("mutated", false, false)
		again, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, 2, again.Len())
	})

	t.Run("Save overwrites", func(t *testing.T) {
		other := domain.New()
		other.AddState("solo", true, true)
		require.NoError(t, store.Save(ctx, name, other))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, 1, loaded.Len())
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, contractAutomaton()))
		require.NoError(t, store.Delete(ctx, name))

		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrAutomatonNotFound, "Load after Delete should return ErrAutomatonNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Delete of a missing name should succeed")
	})

	t.Run("List", func(t *testing.T) {
		id1, id2 := name+"-b", name+"-a"
		require.NoError(t, store.Save(ctx, id1, contractAutomaton()))
		require.NoError(t, store.Save(ctx, id2, contractAutomaton()))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
		assert.IsNonDecreasing(t, names)
	})

	t.Run("List includes every valid name", func(t *testing.T) {
		ids := []string{"tmp-" + name, "lab." + name, "_" + name}
		for _, id := range ids {
			require.NoError(t, domain.ValidateName(id))
			require.NoError(t, store.Save(ctx, id, contractAutomaton()))
		}
		defer func() {
			for _, id := range ids {
				_ = store.Delete(ctx, id)
			}
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		for _, id := range ids {
			assert.Contains(t, names, id)
			_, err := store.Load(ctx, id)
			assert.NoError(t, err)
		}
	})

	t.Run("Concurrent Save", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := range 8 {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				assert.NoError(t, store.Save(ctx, fmt.Sprintf("%s-c%d", name, i), contractAutomaton()))
			}(i)
		}
		wg.Wait()

		for i := range 8 {
			_, err := store.Load(ctx, fmt.Sprintf("%s-c%d", name, i))
			assert.NoError(t, err)
			_ = store.Delete(ctx, fmt.Sprintf("%s-c%d", name, i))
		}
	})
}
