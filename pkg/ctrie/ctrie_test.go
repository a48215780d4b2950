package ctrie_test

import (
	"testing"

	"github.com/opentreeoflife/gntaxdb/pkg/ctrie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAlphabet(t *testing.T) *ctrie.Alphabet {
	t.Helper()
	var chars []rune
	for c := 'a'; c <= 'z'; c++ {
		chars = append(chars, c)
	}
	for c := 'A'; c <= 'Z'; c++ {
		chars = append(chars, c)
	}
	chars = append(chars, ' ')
	a, err := ctrie.NewAlphabet(chars)
	require.NoError(t, err)
	return a
}

var sampleKeys = []string{
	"Aster", "Asteraceae", "Asterales", "Asteridae",
	"Homo", "Homo sapiens", "Pan", "Pan troglodytes",
	"Felis", "Felis catus",
}

func TestExactMatchRoundtrip(t *testing.T) {
	a := sampleAlphabet(t)
	trie := ctrie.Build(a, sampleKeys)

	for _, k := range sampleKeys {
		m, ok := trie.ExactQuery(k)
		require.True(t, ok, "expected %q to exact-match", k)
		assert.Equal(t, k, m.Key)
		assert.Equal(t, 0, m.Distance)
	}

	_, ok := trie.ExactQuery("NotAKey")
	assert.False(t, ok)
}

func TestPrefixQuery(t *testing.T) {
	a := sampleAlphabet(t)
	trie := ctrie.Build(a, sampleKeys)

	matches := trie.PrefixQuery("Aster")
	var keys []string
	for _, m := range matches {
		keys = append(keys, m.Key)
	}
	assert.ElementsMatch(t, []string{"Aster", "Asteraceae", "Asterales", "Asteridae"}, keys)
}

func TestPrefixQueryCaseInsensitive(t *testing.T) {
	a := sampleAlphabet(t)
	trie := ctrie.Build(a, sampleKeys)

	matches := trie.PrefixQuery("aster")
	var keys []string
	for _, m := range matches {
		keys = append(keys, m.Key)
	}
	assert.ElementsMatch(t, []string{"Aster", "Asteraceae", "Asterales", "Asteridae"}, keys)
}

func TestPrefixQueryIdempotentAcrossCalls(t *testing.T) {
	a := sampleAlphabet(t)
	trie := ctrie.Build(a, sampleKeys)

	first := trie.PrefixQuery("Homo")
	second := trie.PrefixQuery("Homo")
	assert.ElementsMatch(t, first, second)
}

func TestFuzzyQuerySingleEdit(t *testing.T) {
	a := sampleAlphabet(t)
	trie := ctrie.Build(a, sampleKeys)

	matches := trie.FuzzyQuery("Homl", 1)
	var found bool
	for _, m := range matches {
		if m.Key == "Homo" {
			found = true
			assert.LessOrEqual(t, m.Distance, 1)
		}
	}
	assert.True(t, found, "expected fuzzy match of 'Homl' to find 'Homo'")
}

func TestFuzzyQueryTransposition(t *testing.T) {
	a := sampleAlphabet(t)
	trie := ctrie.Build(a, sampleKeys)

	// "Pna" is "Pan" with its first two letters transposed: Damerau
	// distance 1, plain Levenshtein distance 2.
	matches := trie.FuzzyQuery("Pna", 1)
	var found bool
	for _, m := range matches {
		if m.Key == "Pan" {
			found = true
			assert.Equal(t, 1, m.Distance)
		}
	}
	assert.True(t, found, "expected transposed query to match at distance 1")
}

func TestFuzzyQueryCaseInsensitive(t *testing.T) {
	a := sampleAlphabet(t)
	trie := ctrie.Build(a, sampleKeys)

	matches := trie.FuzzyQuery("homo", 1)
	var found bool
	for _, m := range matches {
		if m.Key == "Homo" {
			found = true
		}
	}
	assert.True(t, found, "expected case-insensitive match of 'homo' against 'Homo'")
}

func TestAlphabetTooLarge(t *testing.T) {
	chars := make([]rune, 70)
	for i := range chars {
		chars[i] = rune('a' + i)
	}
	_, err := ctrie.NewAlphabet(chars)
	assert.Error(t, err)
}

func TestEmptyTrie(t *testing.T) {
	a := sampleAlphabet(t)
	trie := ctrie.Build(a, nil)

	_, ok := trie.ExactQuery("anything")
	assert.False(t, ok)
}
