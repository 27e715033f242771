package muid

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/golibs/validate"
	"github.com/microprediction/muid/corpus"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// Mining draws random candidate keys until enough of them have digests that start with a corpus
// prefix of the requested length. Every worker draws and hashes on its own; they only share the
// random source and the channel that found keys are sent through.

const (
	// CandidateSize is the number of random bytes in a candidate key.
	CandidateSize = 16

	// AdvisoryDifficulty is the lowest difficulty that gets a warning before
	// mining, since finding a key may take days or weeks.
	AdvisoryDifficulty = 13
)

// FoundKey is a mined key together with what was derived from it.
type FoundKey struct {
	// Key is the secret: CandidateSize random bytes in lowercase hex.
	Key string `json:"key"`

	// Hash is the digest of Key.
	Hash string `json:"hash"`

	// Pretty is the animal name spelled by the matched prefix of Hash.
	Pretty string `json:"pretty"`

	// Length is the length of the matched prefix.
	Length int `json:"length"`
}

// MinerConfig is the configuration structure for a *Miner.
type MinerConfig struct {
	// Logger is used to log the mining progress and warnings.  If nil,
	// [slog.Default] is used.
	Logger *slog.Logger

	// Metrics is used to collect the mining statistics.  If nil,
	// [EmptyMetrics] is used.
	Metrics Metrics

	// Rand is the source of candidate keys.  If nil, [rand.Reader] is used.
	// Otherwise reads from Rand are serialized with a [LockedReader], since
	// workers and concurrent calls all draw from it.
	Rand io.Reader

	// Corpus is the dictionary of prefixes to look candidates up in.  It must
	// not be nil.
	Corpus *corpus.Corpus

	// Workers is the number of goroutines drawing candidates.  If zero or
	// negative, [runtime.NumCPU] is used.
	Workers int
}

// Miner searches for keys with animal names of a given length.  It's safe for
// concurrent use, although concurrent calls share its random source.
type Miner struct {
	logger  *slog.Logger
	metrics Metrics
	rand    io.Reader
	corpus  *corpus.Corpus

	// attempts is the total number of candidates drawn by all calls.
	attempts *atomic.Uint64

	workers int
}

// NewMiner returns a new properly initialized *Miner.  c must not be nil.
func NewMiner(c *MinerConfig) (m *Miner) {
	m = &Miner{
		logger:   c.Logger,
		metrics:  c.Metrics,
		rand:     c.Rand,
		corpus:   c.Corpus,
		attempts: &atomic.Uint64{},
		workers:  c.Workers,
	}

	if m.logger == nil {
		m.logger = slog.Default()
	}

	if m.metrics == nil {
		m.metrics = EmptyMetrics{}
	}

	if m.workers <= 0 {
		m.workers = runtime.NumCPU()
	}

	if m.rand == nil {
		m.rand = rand.Reader
	} else {
		m.rand = NewLockedReader(m.rand)
	}

	return m
}

// Attempts returns the number of candidates drawn so far by all calls.
func (m *Miner) Attempts() (n uint64) { return m.attempts.Load() }

// MineUntil draws candidates until quota of them have digests starting with
// a corpus prefix of exactly difficulty characters.  If ctx is done first, it
// returns the keys found so far along with the context error.  Keys found by
// concurrent calls are not deduplicated.
func (m *Miner) MineUntil(ctx context.Context, difficulty, quota int) (found []FoundKey, err error) {
	err = errors.Join(
		validate.InRange("difficulty", difficulty, 1, DigestLen),
		validate.Positive("quota", quota),
	)
	if err != nil {
		return nil, fmt.Errorf("mining: %w", err)
	}

	if m.corpus.CountByLen(difficulty) == 0 {
		return nil, fmt.Errorf("mining: difficulty %d: %w", difficulty, ErrNoPrefixes)
	}

	if difficulty >= AdvisoryDifficulty {
		m.logger.WarnContext(
			ctx,
			"high difficulty; mining may take days or weeks",
			"difficulty", difficulty,
			"expected_attempts", m.corpus.ExpectedAttempts(difficulty),
		)
	}

	start := time.Now()
	before := m.attempts.Load()
	defer func() {
		dur := time.Since(start)
		m.metrics.ObserveMining(ctx, dur)
		m.logger.DebugContext(
			ctx,
			"mining finished",
			"difficulty", difficulty,
			"found", len(found),
			"attempts", m.attempts.Load()-before,
			"elapsed", dur,
			slogutil.KeyError, err,
		)
	}()

	return m.run(ctx, difficulty, quota)
}

// run starts the workers and collects their findings.
func (m *Miner) run(parent context.Context, difficulty, quota int) (found []FoundKey, err error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	results := make(chan FoundKey, m.workers)
	errCh := make(chan error, m.workers)

	wg := &sync.WaitGroup{}
	wg.Add(m.workers)
	for range m.workers {
		go func() {
			defer wg.Done()

			if werr := m.work(ctx, difficulty, results); werr != nil {
				errCh <- werr
				cancel()
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
		close(errCh)
	}()

	found = make([]FoundKey, 0, quota)
	for k := range results {
		/* Workers may send a few more after the quota is met. */
		if len(found) == quota {
			continue
		}

		found = append(found, k)
		m.metrics.IncrementFound(parent, difficulty)
		if len(found) == quota {
			cancel()
		}
	}

	var errs []error
	for werr := range errCh {
		errs = append(errs, werr)
	}

	switch {
	case len(found) == quota:
		return found, nil
	case len(errs) > 0:
		return found, fmt.Errorf("mining: %w", errors.Join(errs...))
	default:
		return found, fmt.Errorf("mining: %w", parent.Err())
	}
}

// attemptsBatch is how many attempts a worker counts locally before adding
// them to the shared counter and the metrics.
const attemptsBatch = 1 << 10

// work draws and checks candidates until ctx is done or the random source
// fails.
func (m *Miner) work(ctx context.Context, difficulty int, results chan<- FoundKey) (err error) {
	var n uint64
	defer func() { m.countAttempts(ctx, n) }()

	raw := make([]byte, CandidateSize)
	key := make([]byte, hex.EncodedLen(CandidateSize))
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if _, err = io.ReadFull(m.rand, raw); err != nil {
			return fmt.Errorf("reading candidate: %w", err)
		}

		hex.Encode(key, raw)
		if n++; n == attemptsBatch {
			m.countAttempts(ctx, n)
			n = 0
		}

		digest := Bhash(string(key))
		split, ok := m.corpus.Lookup(digest[:difficulty])
		if !ok {
			continue
		}

		select {
		case results <- newFoundKey(string(key), digest, split):
		case <-ctx.Done():
			return nil
		}
	}
}

func (m *Miner) countAttempts(ctx context.Context, n uint64) {
	if n == 0 {
		return
	}

	m.attempts.Add(n)
	m.metrics.IncrementAttempts(ctx, n)
}

// newFoundKey builds the result for key, whose digest starts with a prefix
// split as split.
func newFoundKey(key, digest string, split corpus.Split) (k FoundKey) {
	return FoundKey{
		Key:    key,
		Hash:   digest,
		Pretty: pretty(digest, split.First, split.Second),
		Length: split.Len(),
	}
}
