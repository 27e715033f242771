// Package muid implements memorable unique identifiers: secret keys whose
// SHA-256 digests start with a prefix from a dictionary, so that each key has
// a two-word animal name, like "Mod Cob".  The longer the prefix, the rarer
// the key and the harder it is to mine.
package muid

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/microprediction/muid/corpus"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Default difficulties for mining.
const (
	// DefaultDifficulty is the difficulty [Muid.Create] is normally called
	// with.
	DefaultDifficulty = 8

	// DefaultKeyDifficulty is the difficulty [Muid.CreateKey] is normally
	// called with.
	DefaultKeyDifficulty = 6
)

// Config is the configuration structure for a *Muid.
type Config struct {
	// Logger is used for logging.  If nil, [slog.Default] is used.
	Logger *slog.Logger

	// Metrics is used to collect the mining statistics.  If nil,
	// [EmptyMetrics] is used.
	Metrics Metrics

	// Rand is the source of candidate keys.  If nil, [crypto/rand.Reader] is
	// used.
	Rand io.Reader

	// Corpus is the prefix dictionary.  If nil, [corpus.Default] is used.
	Corpus *corpus.Corpus

	// Workers is the number of mining goroutines.  If zero or negative,
	// [runtime.NumCPU] is used.
	Workers int
}

// Muid creates and checks memorable keys.  It's safe for concurrent use.
type Muid struct {
	corpus   *corpus.Corpus
	searcher *Searcher
	miner    *Miner
}

// New returns a new properly initialized *Muid.  c must not be nil.  The only
// possible error is a broken bundled corpus.
func New(c *Config) (m *Muid, err error) {
	l := c.Logger
	if l == nil {
		l = slog.Default()
	}

	corp := c.Corpus
	if corp == nil {
		corp, err = corpus.Default()
		if err != nil {
			return nil, fmt.Errorf("loading default corpus: %w", err)
		}
	}

	l = l.With(slogutil.KeyPrefix, "muid")
	l.Debug(
		"corpus ready",
		"entries", corp.Len(),
		"min_len", corp.MinLen(),
		"max_len", corp.MaxLen(),
		"checksum", fmt.Sprintf("%016x", corp.Checksum()),
	)

	return &Muid{
		corpus:   corp,
		searcher: NewSearcher(corp),
		miner: NewMiner(&MinerConfig{
			Logger:  l,
			Metrics: c.Metrics,
			Rand:    c.Rand,
			Corpus:  corp,
			Workers: c.Workers,
		}),
	}, nil
}

// Corpus returns the prefix dictionary m uses.
func (m *Muid) Corpus() (c *corpus.Corpus) { return m.corpus }

// Miner returns the miner m uses.
func (m *Muid) Miner() (mnr *Miner) { return m.miner }

// Create mines a single key at difficulty.
func (m *Muid) Create(ctx context.Context, difficulty int) (k FoundKey, err error) {
	found, err := m.miner.MineUntil(ctx, difficulty, 1)
	if err != nil {
		return FoundKey{}, err
	}

	return found[0], nil
}

// CreateKey is like [Muid.Create] but only returns the secret key.
func (m *Muid) CreateKey(ctx context.Context, difficulty int) (key string, err error) {
	k, err := m.Create(ctx, difficulty)

	return k.Key, err
}

// MineUntil mines quota keys at difficulty.  See [Miner.MineUntil].
func (m *Muid) MineUntil(ctx context.Context, difficulty, quota int) (found []FoundKey, err error) {
	return m.miner.MineUntil(ctx, difficulty, quota)
}

// Validate returns true if key has an animal name.
func (m *Muid) Validate(key string) (ok bool) { return m.searcher.Validate(key) }

// IsValidKey is an alias of [Muid.Validate].
func (m *Muid) IsValidKey(key string) (ok bool) { return m.Validate(key) }

// Shash returns the digest of b, for collaborators that need a content hash
// consistent with the key digests.
func (m *Muid) Shash(b []byte) (digest string) { return Shash(b) }

// AnimalFromKey returns the animal name of the secret key, if it has one.
func (m *Muid) AnimalFromKey(key string) (name string, ok bool) {
	return m.searcher.Animal(key)
}

// KeyDifficulty returns the number of letters in the animal name of key, or
// zero if it has none.
func (m *Muid) KeyDifficulty(key string) (n int) { return m.searcher.Difficulty(key) }

// AnimalFromCode returns the animal name of a digest.  It's used when only the
// public digest of a key is known.  code must be lowercase hex; a code that
// matches nothing is not an error.
func (m *Muid) AnimalFromCode(code string) (name string, ok bool, err error) {
	if err = validateHex(code); err != nil {
		return "", false, fmt.Errorf("code: %w", err)
	}

	name, ok = m.searcher.Search(code)

	return name, ok, nil
}
