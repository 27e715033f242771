package muid

import (
	"fmt"
	"strings"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// Readable hex spells each decimal digit as a letter that looks like it, so that a digest prefix
// reads as a word. The letters a to f are left alone, and none of the ten substitutes is one of
// them; that's what makes the substitution reversible.

const digits, substitutes = "0123456789", "olzmyshtxg"

/* Indexed by byte; zero means the byte has no counterpart. */
var toReadable, fromReadable [256]byte

func init() {
	for c := byte('a'); c <= 'f'; c++ {
		toReadable[c], fromReadable[c] = c, c
	}
	for i := range len(digits) {
		toReadable[digits[i]] = substitutes[i]
		fromReadable[substitutes[i]] = digits[i]
	}
}

// ToReadable spells the lowercase hex string s in readable hex.
func ToReadable(s string) (word string, err error) {
	if err = validateHex(s); err != nil {
		return "", err
	}

	return translate(s, &toReadable), nil
}

// FromReadable reverses [ToReadable].  Upper-case letters are accepted and
// treated as lower-case ones.
func FromReadable(word string) (s string, err error) {
	word = strings.ToLower(word)
	for i := range len(word) {
		if fromReadable[word[i]] == 0 {
			return "", fmt.Errorf("%w: bad char %q at index %d", ErrNotReadable, word[i], i)
		}
	}

	return translate(word, &fromReadable), nil
}

// CodeFromAnimal returns the digest prefix an animal name was made of, for
// example "30dc0b" for "Mod Cob".
func CodeFromAnimal(name string) (code string, err error) {
	first, second, ok := strings.Cut(name, " ")
	if !ok || first == "" || second == "" {
		return "", fmt.Errorf("animal name %q: want two words", name)
	}

	return FromReadable(first + second)
}

// translate maps every byte of s through table.  s must only contain bytes
// the table has a counterpart for.
func translate(s string, table *[256]byte) (t string) {
	b := make([]byte, len(s))
	for i := range len(s) {
		b[i] = table[s[i]]
	}

	return string(b)
}
