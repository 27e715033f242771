package muid_test

import (
	"testing"

	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/golibs/testutil"
	"github.com/microprediction/muid"
	"github.com/microprediction/muid/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMuid is a helper that returns a *muid.Muid over the default corpus.
func newMuid(tb testing.TB, conf *muid.Config) (m *muid.Muid) {
	tb.Helper()

	conf.Logger = slogutil.NewDiscardLogger()
	m, err := muid.New(conf)
	require.NoError(tb, err)

	return m
}

func TestMuid_Create(t *testing.T) {
	t.Parallel()

	m := newMuid(t, &muid.Config{})

	k, err := m.Create(testutil.ContextWithTimeout(t, testTimeout), 6)
	require.NoError(t, err)

	_, ok := m.Corpus().Lookup(k.Hash[:6])
	assert.True(t, ok)
	assert.NotEmpty(t, k.Pretty)
	assert.Equal(t, 6, k.Length)

	assert.True(t, m.Validate(k.Key))
	assert.GreaterOrEqual(t, m.KeyDifficulty(k.Key), 6)
}

func TestMuid_CreateKey(t *testing.T) {
	t.Parallel()

	m := newMuid(t, &muid.Config{
		Rand:    candidates(t, keyNoMatch, keyModCob),
		Workers: 1,
	})

	key, err := m.CreateKey(testutil.ContextWithTimeout(t, testTimeout), muid.DefaultKeyDifficulty)
	require.NoError(t, err)

	assert.Equal(t, keyModCob, key)

	_, err = m.CreateKey(testutil.ContextWithTimeout(t, testTimeout), muid.DefaultKeyDifficulty)
	assert.Error(t, err)
}

func TestMuid_keys(t *testing.T) {
	t.Parallel()

	m := newMuid(t, &muid.Config{})

	testCases := []struct {
		name           string
		key            string
		wantName       string
		wantDifficulty int
	}{{
		name:           "mod_cob",
		key:            keyModCob,
		wantName:       "Mod Cob",
		wantDifficulty: 6,
	}, {
		name:           "shy_cat",
		key:            "0000000000000000000000000002a25c",
		wantName:       "Shy Cat",
		wantDifficulty: 6,
	}, {
		name:           "no_match",
		key:            keyNoMatch,
		wantName:       "",
		wantDifficulty: 0,
	}, {
		name:           "not_hex",
		key:            "write key",
		wantName:       "",
		wantDifficulty: 0,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			name, ok := m.AnimalFromKey(tc.key)
			assert.Equal(t, tc.wantName, name)
			assert.Equal(t, ok, m.Validate(tc.key))
			assert.Equal(t, ok, m.IsValidKey(tc.key))
			assert.Equal(t, muid.Bhash(tc.key), m.Shash([]byte(tc.key)))
			assert.Equal(t, tc.wantDifficulty, m.KeyDifficulty(tc.key))
		})
	}
}

func TestMuid_AnimalFromCode(t *testing.T) {
	t.Parallel()

	m := newMuid(t, &muid.Config{})

	name, ok, err := m.AnimalFromCode(muid.Bhash(keyModCob))
	require.NoError(t, err)

	assert.True(t, ok)
	assert.Equal(t, "Mod Cob", name)

	name, ok, err = m.AnimalFromCode(muid.Bhash(keyNoMatch))
	require.NoError(t, err)

	assert.False(t, ok)
	assert.Empty(t, name)

	_, _, err = m.AnimalFromCode("30DC0B")
	testutil.AssertErrorMsg(t, `code: not lowercase hex: bad char 'D' at index 2`, err)
}

func TestMuid_customCorpus(t *testing.T) {
	t.Parallel()

	c, err := corpus.New(map[string]corpus.Split{"abc123": {First: 3, Second: 3}})
	require.NoError(t, err)

	m := newMuid(t, &muid.Config{Corpus: c})

	assert.Same(t, c, m.Corpus())

	name, ok := m.AnimalFromKey(keyABC123)
	require.True(t, ok)

	assert.Equal(t, "Abc Lzm", name)
	assert.False(t, m.Validate(keyModCob))
}
