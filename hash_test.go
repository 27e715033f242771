package muid_test

import (
	"crypto/rand"
	"testing"

	"github.com/microprediction/muid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShash(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		in   []byte
		want string
	}{{
		name: "empty",
		in:   []byte{},
		want: "e3b0c44298fc1c149afbf4c8996fb924",
	}, {
		name: "text",
		in:   []byte("hello world"),
		want: "b94d27b9934d3e08a52e52d7da7dabfa",
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := muid.Shash(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Len(t, got, muid.DigestLen)
		})
	}
}

func TestShash_deterministic(t *testing.T) {
	t.Parallel()

	b := make([]byte, 1<<10)
	_, _ = rand.Read(b)

	assert.Equal(t, muid.Shash(b), muid.Shash(b))
}

func TestBhash(t *testing.T) {
	t.Parallel()

	const key = "00000000000000000000000000b2d005"

	assert.Equal(t, "abc1239b6d6d7e24ac58ed0eac45c6ad", muid.Bhash(key))
	assert.Equal(t, muid.Shash([]byte(key)), muid.Bhash(key))
}

func TestContentID(t *testing.T) {
	t.Parallel()

	id, err := muid.ContentID([]byte("hello world"))
	require.NoError(t, err)

	assert.Equal(t, "bafkreifzjut3te2nhyekklss27nh3k72ysco7y32koao5eei66wof36n5e", id)
}

func BenchmarkBhash(b *testing.B) {
	const key = "00000000000000000000000000b2d005"

	b.SetBytes(int64(len(key)))
	b.ReportAllocs()
	for b.Loop() {
		_ = muid.Bhash(key)
	}
}
