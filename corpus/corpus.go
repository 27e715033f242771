// Package corpus contains the dictionary of digest prefixes that have an
// animal name.  Each prefix maps to the lengths of the two words the name is
// split into.
package corpus

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"sync"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/zeebo/xxh3"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const (
	// ErrEmpty is returned when a corpus has no entries.
	ErrEmpty errors.Error = "empty corpus"

	// ErrBadSplit is returned when an entry doesn't have exactly two word
	// lengths, or when they are not positive or do not add up to the length of
	// its prefix.
	ErrBadSplit errors.Error = "bad split"

	// ErrDuplicate is returned when a prefix appears in the source more than
	// once.
	ErrDuplicate errors.Error = "duplicate entry"

	errTrailingData errors.Error = "data after the top-level object"
)

//go:embed animals.json
var animalsJSON []byte

// Split is the pair of word lengths an animal name is cut into.
type Split struct {
	First  int
	Second int
}

// Len returns the total length of both words, which is also the length of the
// prefix the split belongs to.
func (s Split) Len() (n int) { return s.First + s.Second }

// Corpus is an immutable prefix dictionary.  It's safe for concurrent use.
type Corpus struct {
	entries map[string]Split

	// counts is the number of entries per prefix length.
	counts map[int]int

	// lengths are the distinct prefix lengths, longest first.
	lengths []int

	checksum uint64
}

// New validates entries and returns a corpus built from a copy of them.
func New(entries map[string]Split) (c *Corpus, err error) {
	if len(entries) == 0 {
		return nil, ErrEmpty
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	c = &Corpus{
		entries: make(map[string]Split, len(entries)),
		counts:  map[int]int{},
	}

	h := xxh3.New()
	for _, k := range keys {
		s := entries[k]
		if err = validateEntry(k, s); err != nil {
			return nil, err
		}

		c.entries[k] = s
		if c.counts[len(k)] == 0 {
			c.lengths = append(c.lengths, len(k))
		}
		c.counts[len(k)]++

		/* Canonical form, so that formatting of the source doesn't matter. */
		_, _ = h.Write([]byte(k + ":" + strconv.Itoa(s.First) + "," + strconv.Itoa(s.Second) + "\n"))
	}

	slices.SortFunc(c.lengths, func(a, b int) int { return b - a })
	c.checksum = h.Sum64()

	return c, nil
}

// validateEntry returns an error if prefix is not lowercase hex or if s does
// not describe it.
func validateEntry(prefix string, s Split) (err error) {
	defer func() { err = errors.Annotate(err, "entry %q: %w", prefix) }()

	if prefix == "" {
		return errors.ErrEmptyValue
	}

	for i, r := range prefix {
		if !isLowerHex(r) {
			return fmt.Errorf("bad rune %q at index %d", r, i)
		}
	}

	if s.First <= 0 || s.Second <= 0 || s.Len() != len(prefix) {
		return fmt.Errorf("%w: [%d, %d] for length %d", ErrBadSplit, s.First, s.Second, len(prefix))
	}

	return nil
}

func isLowerHex(r rune) (ok bool) {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')
}

// Parse decodes a JSON object mapping prefixes to two-element arrays of word
// lengths.  Duplicate prefixes and arrays of any other length are rejected.
func Parse(data []byte) (c *Corpus, err error) {
	entries, err := decodeEntries(data)
	if err != nil {
		return nil, err
	}

	return New(entries)
}

// decodeEntries reads the top-level object of data token by token, so that
// duplicate prefixes are seen.
func decodeEntries(data []byte) (entries map[string]Split, err error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err = expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("decoding corpus: %w", err)
	}

	entries = map[string]Split{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decoding corpus: %w", err)
		}

		// Object keys are always strings.
		k := tok.(string)
		if _, ok := entries[k]; ok {
			return nil, fmt.Errorf("entry %q: %w", k, ErrDuplicate)
		}

		var lens []int
		if err = dec.Decode(&lens); err != nil {
			return nil, fmt.Errorf("decoding corpus: entry %q: %w", k, err)
		}

		if len(lens) != 2 {
			return nil, fmt.Errorf("entry %q: %w: %d lengths, want 2", k, ErrBadSplit, len(lens))
		}

		entries[k] = Split{First: lens[0], Second: lens[1]}
	}

	if err = expectDelim(dec, '}'); err != nil {
		return nil, fmt.Errorf("decoding corpus: %w", err)
	}

	if _, err = dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding corpus: %w", errTrailingData)
	}

	return entries, nil
}

// expectDelim reads the next token of dec and checks that it's want.
func expectDelim(dec *json.Decoder, want json.Delim) (err error) {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("got %v, want %q", tok, want)
	}

	return nil
}

// Load reads the whole of r and parses it.
func Load(r io.Reader) (c *Corpus, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading corpus: %w", err)
	}

	return Parse(data)
}

// Open parses the corpus file at path.
func Open(path string) (c *Corpus, err error) {
	defer func() { err = errors.Annotate(err, "corpus %q: %w", path) }()

	data, err := os.ReadFile(path)
	if err != nil {
		// Don't wrap the error, since it's informative enough as is.
		return nil, err
	}

	return Parse(data)
}

// loadDefault parses the bundled dictionary exactly once per process.
var loadDefault = sync.OnceValues(func() (c *Corpus, err error) {
	return Parse(animalsJSON)
})

// Default returns the bundled animal dictionary.  All callers share the same
// *Corpus.
func Default() (c *Corpus, err error) { return loadDefault() }

// Lookup returns the split for the exact prefix.
func (c *Corpus) Lookup(prefix string) (s Split, ok bool) {
	s, ok = c.entries[prefix]

	return s, ok
}

// Len returns the number of entries.
func (c *Corpus) Len() (n int) { return len(c.entries) }

// MinLen returns the length of the shortest prefix.
func (c *Corpus) MinLen() (n int) { return c.lengths[len(c.lengths)-1] }

// MaxLen returns the length of the longest prefix.
func (c *Corpus) MaxLen() (n int) { return c.lengths[0] }

// Lengths returns the distinct prefix lengths present, longest first.
func (c *Corpus) Lengths() (lens []int) { return slices.Clone(c.lengths) }

// CountByLen returns the number of prefixes of length n.
func (c *Corpus) CountByLen(n int) (count int) { return c.counts[n] }

// Checksum returns the XXH3 hash of the canonical form of the entries.
func (c *Corpus) Checksum() (sum uint64) { return c.checksum }

// ExpectedAttempts returns the mean number of random digests that have to be
// drawn before one of them starts with a prefix of length n.  It's +Inf if
// there are no such prefixes.
func (c *Corpus) ExpectedAttempts(n int) (attempts float64) {
	count := c.counts[n]
	if count == 0 {
		return math.Inf(1)
	}

	return math.Pow(16, float64(n)) / float64(count)
}
