package muid_test

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/microprediction/muid"
	"github.com/microprediction/muid/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keyABC123 is a key whose digest starts with "abc1239b6d6d7e24ac".
const keyABC123 = "00000000000000000000000000b2d005"

// keyModCob is a key with the name "Mod Cob" in the default corpus.
const keyModCob = "0000000000000000000000000000813a"

// keyNoMatch is a key without a name in the default corpus.
const keyNoMatch = "00000000000000000000000000000000"

// newCorpus is a helper that builds a corpus from entries.
func newCorpus(tb testing.TB, entries map[string]corpus.Split) (c *corpus.Corpus) {
	tb.Helper()

	c, err := corpus.New(entries)
	require.NoError(tb, err)

	return c
}

// defaultCorpus is a helper that returns the bundled corpus.
func defaultCorpus(tb testing.TB) (c *corpus.Corpus) {
	tb.Helper()

	c, err := corpus.Default()
	require.NoError(tb, err)

	return c
}

func TestSearcher_Animal(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		entries map[string]corpus.Split
		name    string
		want    string
	}{{
		entries: map[string]corpus.Split{"abc123": {First: 3, Second: 3}},
		name:    "abc_lzm",
		want:    "Abc Lzm",
	}, {
		entries: map[string]corpus.Split{
			"abc123":   {First: 3, Second: 3},
			"abc1239b": {First: 4, Second: 4},
		},
		name: "longest_wins",
		want: "Abcl Zmgb",
	}, {
		entries: map[string]corpus.Split{
			"abc123":   {First: 3, Second: 3},
			"abc1239c": {First: 4, Second: 4},
		},
		name: "longer_miss",
		want: "Abc Lzm",
	}, {
		entries: map[string]corpus.Split{
			"abc123":             {First: 3, Second: 3},
			"abc1239b6d6d7e24ac": {First: 9, Second: 9},
		},
		name: "beyond_sixteen",
		want: "Abclzmgbh Dhdtezyac",
	}, {
		entries: map[string]corpus.Split{"abc124": {First: 3, Second: 3}},
		name:    "no_match",
		want:    "",
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := muid.NewSearcher(newCorpus(t, tc.entries))

			name, ok := s.Animal(keyABC123)
			assert.Equal(t, tc.want, name)
			assert.Equal(t, tc.want != "", ok)
			assert.Equal(t, ok, s.Validate(keyABC123))
			assert.Equal(t, len(strings.ReplaceAll(tc.want, " ", "")), s.Difficulty(keyABC123))
		})
	}
}

func TestSearcher_Search(t *testing.T) {
	t.Parallel()

	s := muid.NewSearcher(newCorpus(t, map[string]corpus.Split{"abc123": {First: 3, Second: 3}}))

	name, ok := s.Search("abc1")
	assert.False(t, ok)
	assert.Empty(t, name)

	name, ok = s.Search("abc123")
	assert.True(t, ok)
	assert.Equal(t, "Abc Lzm", name)
}

func TestSearcher_defaultCorpus(t *testing.T) {
	t.Parallel()

	s := muid.NewSearcher(defaultCorpus(t))

	name, ok := s.Animal(keyModCob)
	require.True(t, ok)

	assert.Equal(t, "Mod Cob", name)
	assert.Equal(t, 6, s.Difficulty(keyModCob))

	name, ok = s.Animal(keyNoMatch)
	assert.False(t, ok)
	assert.Empty(t, name)
	assert.Zero(t, s.Difficulty(keyNoMatch))
}

func TestSearcher_consistency(t *testing.T) {
	t.Parallel()

	s := muid.NewSearcher(defaultCorpus(t))

	raw := make([]byte, muid.CandidateSize)
	for range 10_000 {
		_, _ = rand.Read(raw)
		key := hex.EncodeToString(raw)

		name, ok := s.Animal(key)
		require.Equal(t, ok, s.Validate(key))

		if ok {
			require.Equal(t, len(name)-1, s.Difficulty(key))
		} else {
			require.Zero(t, s.Difficulty(key))
		}
	}
}

func BenchmarkSearcher_Animal(b *testing.B) {
	s := muid.NewSearcher(defaultCorpus(b))

	b.ReportAllocs()
	for b.Loop() {
		_, _ = s.Animal(keyModCob)
	}
}
