package muid

import (
	"strings"

	"github.com/microprediction/muid/corpus"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Searcher finds the animal name of a digest.  It's safe for concurrent use.
type Searcher struct {
	corpus *corpus.Corpus

	// lengths are the prefix lengths to try, longest first.
	lengths []int
}

// NewSearcher returns a new *Searcher over c.  c must not be nil.
func NewSearcher(c *corpus.Corpus) (s *Searcher) {
	return &Searcher{
		corpus:  c,
		lengths: c.Lengths(),
	}
}

// Search returns the name made of the longest prefix of code that the corpus
// has.
func (s *Searcher) Search(code string) (name string, ok bool) {
	for _, k := range s.lengths {
		if k > len(code) {
			continue
		}

		prefix := code[:k]
		if split, has := s.corpus.Lookup(prefix); has {
			return pretty(prefix, split.First, split.Second), true
		}
	}

	return "", false
}

// Animal returns the animal name of the secret key.
func (s *Searcher) Animal(key string) (name string, ok bool) {
	return s.Search(Bhash(key))
}

// Validate returns true if key has an animal name.
func (s *Searcher) Validate(key string) (ok bool) {
	_, ok = s.Animal(key)

	return ok
}

// Difficulty returns the number of letters in the animal name of key, or zero
// if it has none.
func (s *Searcher) Difficulty(key string) (n int) {
	name, _ := s.Animal(key)

	return len(strings.Replace(name, " ", "", 1))
}
