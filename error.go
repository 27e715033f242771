package muid

import "github.com/AdguardTeam/golibs/errors"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const (
	// ErrBadHex is returned when a string that must consist of lowercase
	// hexadecimal digits contains anything else.
	ErrBadHex errors.Error = "not lowercase hex"

	// ErrNotReadable is returned when a word contains a letter that the
	// readable alphabet doesn't have.
	ErrNotReadable errors.Error = "not readable hex"

	// ErrNoPrefixes is returned when mining is requested at a difficulty for
	// which the corpus has no prefixes, so no key could ever be found.
	ErrNoPrefixes errors.Error = "no prefixes of this length"
)
