package muid

import (
	"encoding/hex"
	"fmt"

	gocid "github.com/ipfs/go-cid"
	"github.com/minio/sha256-simd"
	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// The digests that names are derived from: SHA-256, hex-encoded and truncated to 128 bits.

// DigestLen is the length of a digest in hex characters.
const DigestLen = 32

// Bhash returns the digest of the UTF-8 bytes of key.  Keys are normally the
// lowercase hex encoding of 16 random bytes, but any string is accepted.
func Bhash(key string) (digest string) {
	return Shash([]byte(key))
}

// Shash returns the digest of b.
func Shash(b []byte) (digest string) {
	sum := sha256.Sum256(b)

	return hex.EncodeToString(sum[:DigestLen/2])
}

// ContentID returns the base32 CIDv1 of b with a raw codec and a full-length
// SHA2-256 multihash.  Unlike [Shash], the result says which hash produced it.
func ContentID(b []byte) (id string, err error) {
	mh, err := multihash.Sum(b, multihash.SHA2_256, -1)
	if err != nil {
		return "", fmt.Errorf("multihash: %w", err)
	}

	return multibase.Encode(multibase.Base32, gocid.NewCidV1(gocid.Raw, mh).Bytes())
}

// validateHex returns [ErrBadHex] with the position of the first character of
// s which is not a lowercase hex digit.
func validateHex(s string) (err error) {
	for i := range len(s) {
		if c := s[i]; (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return fmt.Errorf("%w: bad char %q at index %d", ErrBadHex, c, i)
		}
	}

	return nil
}
