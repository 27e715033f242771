package muid

import (
	"io"
	"sync"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/aead/chacha20/chacha"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// Sources of candidate keys other than the default crypto/rand.Reader.

// SeededReader is a ChaCha8 keystream used as a reproducible source of
// candidate keys.  It's not safe for concurrent use; see [LockedReader].
type SeededReader struct {
	stream *chacha.Cipher
}

// NewSeededReader returns a new *SeededReader.  Readers with equal seeds
// produce equal streams.
func NewSeededReader(seed [32]byte) (r *SeededReader) {
	var nonce [chacha.NonceSize]byte

	return &SeededReader{
		// The sizes are constant, so NewCipher can't fail.
		stream: errors.Must(chacha.NewCipher(nonce[:], seed[:], 8)),
	}
}

// type check
var _ io.Reader = (*SeededReader)(nil)

// Read implements the [io.Reader] interface for *SeededReader.  It always
// fills p and returns a nil error.
func (r *SeededReader) Read(p []byte) (n int, err error) {
	clear(p)
	r.stream.XORKeyStream(p, p)

	return len(p), nil
}

// LockedReader serializes reads from an underlying reader.  It's safe for
// concurrent use.
type LockedReader struct {
	// mu protects r.
	mu *sync.Mutex

	r io.Reader
}

// NewLockedReader returns a new properly initialized *LockedReader.
func NewLockedReader(r io.Reader) (lr *LockedReader) {
	return &LockedReader{
		mu: &sync.Mutex{},
		r:  r,
	}
}

// type check
var _ io.Reader = (*LockedReader)(nil)

// Read implements the [io.Reader] interface for *LockedReader.  Each call
// reads as much as io.ReadFull would, so concurrent callers never get
// interleaved parts of the stream.
func (r *LockedReader) Read(p []byte) (n int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return io.ReadFull(r.r, p)
}
