package language_test

import (
	"slices"
	"testing"

	"github.com/aretw0/automata/pkg/language"
	"github.com/stretchr/testify/assert"
)

func TestSubstrings(t *testing.T) {
	got := slices.Collect(language.Substrings("aba"))
	assert.Equal(t, []string{"a", "ab", "aba", "b", "ba", "a"}, got)

	assert.Empty(t, slices.Collect(language.Substrings("")))
}

func TestPrefixesAndSuffixes(t *testing.T) {
	assert.Equal(t, []string{"", "a", "ab", "abc"}, slices.Collect(language.Prefixes("abc")))
	assert.Equal(t, []string{"abc", "bc", "c", ""}, slices.Collect(language.Suffixes("abc")))
	assert.Equal(t, []string{""}, slices.Collect(language.Prefixes("")))
	assert.Equal(t, []string{"", "ñ", "ñu"}, slices.Collect(language.Prefixes("ñu")))
}

func TestKleeneStar(t *testing.T) {
	got := slices.Collect(language.KleeneStar([]string{"a", "b"}, 2))
	assert.Equal(t, []string{"", "a", "b", "aa", "ab", "ba", "bb"}, got)

	assert.Equal(t, []string{""}, slices.Collect(language.KleeneStar([]string{"a"}, 0)))
	assert.Equal(t, []string{""}, slices.Collect(language.KleeneStar([]string{"a"}, -3)))
	assert.Equal(t, []string{""}, slices.Collect(language.KleeneStar(nil, 4)))
}

func TestKleeneStar_KeepsAlphabetOrder(t *testing.T) {
	got := slices.Collect(language.KleeneStar([]string{"1", "0"}, 2))
	assert.Equal(t, []string{"", "1", "0", "11", "10", "01", "00"}, got)
}

func TestKleenePlus(t *testing.T) {
	got := slices.Collect(language.KleenePlus([]string{"x", "y"}, 2))
	assert.Equal(t, []string{"x", "y", "xx", "xy", "yx", "yy"}, got)

	assert.Empty(t, slices.Collect(language.KleenePlus([]string{"x"}, 0)))
	assert.Empty(t, slices.Collect(language.KleenePlus([]string{"x"}, -1)))
}

func TestKleeneStar_EarlyStop(t *testing.T) {
	var got []string
	for w := range language.KleeneStar([]string{"0", "1"}, 60) {
		got = append(got, w)
		if len(got) == 5 {
			break
		}
	}
	assert.Equal(t, []string{"", "0", "1", "00", "01"}, got)
}

func TestKleeneStar_MatchesCount(t *testing.T) {
	for maxLen := -1; maxLen <= 4; maxLen++ {
		n := 0
		for range language.KleeneStar([]string{"a", "b", "c"}, maxLen) {
			n++
		}
		assert.Equal(t, language.Count(3, maxLen), n, "maxLen %d", maxLen)
	}
}

func TestCount_Overflow(t *testing.T) {
	assert.Equal(t, -1, language.Count(2, 200))
	assert.Equal(t, 1, language.Count(0, 200))
}

func TestParseAlphabet(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, language.ParseAlphabet("a b\tc a"))
	assert.Equal(t, []string{"0", "1"}, language.ParseAlphabet("0101"))
	assert.Nil(t, language.ParseAlphabet("   "))
}
