package muid_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/AdguardTeam/golibs/testutil"
	"github.com/microprediction/muid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToReadable(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		in         string
		want       string
		wantErrMsg string
	}{{
		name:       "digits",
		in:         "0123456789",
		want:       "olzmyshtxg",
		wantErrMsg: "",
	}, {
		name:       "letters",
		in:         "abcdef",
		want:       "abcdef",
		wantErrMsg: "",
	}, {
		name:       "mixed",
		in:         "30dc0b",
		want:       "modcob",
		wantErrMsg: "",
	}, {
		name:       "empty",
		in:         "",
		want:       "",
		wantErrMsg: "",
	}, {
		name:       "upper",
		in:         "ABC",
		want:       "",
		wantErrMsg: `not lowercase hex: bad char 'A' at index 0`,
	}, {
		name:       "not_hex",
		in:         "12g",
		want:       "",
		wantErrMsg: `not lowercase hex: bad char 'g' at index 2`,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := muid.ToReadable(tc.in)
			testutil.AssertErrorMsg(t, tc.wantErrMsg, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFromReadable(t *testing.T) {
	t.Parallel()

	got, err := muid.FromReadable("Modcob")
	require.NoError(t, err)

	assert.Equal(t, "30dc0b", got)

	_, err = muid.FromReadable("mink")
	testutil.AssertErrorMsg(t, `not readable hex: bad char 'i' at index 1`, err)
	assert.ErrorIs(t, err, muid.ErrNotReadable)
}

func TestReadable_roundTrip(t *testing.T) {
	t.Parallel()

	const alphabet = "0123456789abcdef"

	r := rand.New(rand.NewPCG(1, 2))
	for range 1_000 {
		b := make([]byte, r.IntN(33))
		for i := range b {
			b[i] = alphabet[r.IntN(len(alphabet))]
		}

		s := string(b)
		word, err := muid.ToReadable(s)
		require.NoError(t, err)

		assert.False(t, strings.ContainsAny(word, "0123456789"), word)

		back, err := muid.FromReadable(word)
		require.NoError(t, err)

		assert.Equal(t, s, back)
	}
}

func TestCodeFromAnimal(t *testing.T) {
	t.Parallel()

	code, err := muid.CodeFromAnimal("Mod Cob")
	require.NoError(t, err)

	assert.Equal(t, "30dc0b", code)

	_, err = muid.CodeFromAnimal("Modcob")
	testutil.AssertErrorMsg(t, `animal name "Modcob": want two words`, err)
}
