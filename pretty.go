package muid

import (
	"strings"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/validate"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Pretty returns the animal name spelled by the first first+second characters
// of code: two capitalized readable-hex words of those lengths joined by
// a space.
func Pretty(code string, first, second int) (name string, err error) {
	defer func() { err = errors.Annotate(err, "pretty %q: %w", code) }()

	err = errors.Join(
		validate.Positive("first", first),
		validate.Positive("second", second),
		validate.NoGreaterThan("first+second", first+second, len(code)),
	)
	if err != nil {
		return "", err
	}

	if err = validateHex(code[:first+second]); err != nil {
		return "", err
	}

	return pretty(code, first, second), nil
}

// pretty is [Pretty] for the callers that already know code to be lowercase
// hex and long enough.
func pretty(code string, first, second int) (name string) {
	w1 := translate(code[:first], &toReadable)
	w2 := translate(code[first:first+second], &toReadable)

	return capitalize(w1) + " " + capitalize(w2)
}

/* Readable hex is all ASCII letters, so upper-casing one byte is enough. */
func capitalize(word string) (w string) {
	return strings.ToUpper(word[:1]) + word[1:]
}
