package muid_test

import (
	"bytes"
	"sync"
	"testing"
	"testing/iotest"

	"github.com/microprediction/muid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// routinesLimit is the number of goroutines for tests.
const routinesLimit = 64

func TestSeededReader(t *testing.T) {
	t.Parallel()

	read := func(seed [32]byte) (b []byte) {
		b = make([]byte, 100)
		n, err := muid.NewSeededReader(seed).Read(b)
		require.NoError(t, err)
		require.Equal(t, len(b), n)

		return b
	}

	a, b := read([32]byte{1}), read([32]byte{1})
	assert.Equal(t, a, b)
	assert.NotEqual(t, make([]byte, 100), a)
	assert.NotEqual(t, a, read([32]byte{2}))

	r := muid.NewSeededReader([32]byte{1})
	first, second := make([]byte, 50), make([]byte, 50)
	_, _ = r.Read(first)
	_, _ = r.Read(second)

	assert.Equal(t, a, append(first, second...))
}

func TestLockedReader_full(t *testing.T) {
	t.Parallel()

	src := bytes.Repeat([]byte{1, 2, 3, 4}, 8)
	r := muid.NewLockedReader(iotest.OneByteReader(bytes.NewReader(src)))

	b := make([]byte, 16)
	n, err := r.Read(b)
	require.NoError(t, err)

	assert.Equal(t, 16, n)
	assert.Equal(t, src[:16], b)
}

func TestLockedReader_race(t *testing.T) {
	t.Parallel()

	r := muid.NewLockedReader(muid.NewSeededReader([32]byte{}))

	wg := &sync.WaitGroup{}
	wg.Add(routinesLimit)

	startCh := make(chan struct{})
	for range routinesLimit {
		go func() {
			defer wg.Done()

			<-startCh
			for range 1_000 {
				buf := make([]byte, muid.CandidateSize)
				_, _ = r.Read(buf)
			}
		}()
	}

	close(startCh)

	wg.Wait()
}
