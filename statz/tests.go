package main

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/microprediction/muid"
	"github.com/microprediction/muid/corpus"
	"golang.org/x/sys/cpu"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const ints = uint32(5e4)

// meanBias returns the mean deviation of every bit of digests from being set half the time, as
// a percentage.
func meanBias(digests []*big.Int, bits int) float64 {
	tally := make([]int64, bits)
	for _, d := range digests {
		for i := bits - 1; i >= 0; i-- {
			tally[i] += int64(d.Bit(i))
		}
	}
	half, total := int64(len(digests)>>1), int64(0)
	for _, v := range tally {
		if v -= half; v < 0 {
			v = -v
		}
		total += v
	}
	return float64(total) / float64(bits) / float64(half) * 100
}

// digestInt parses the Bhash of key as an integer.
func digestInt(key []byte) *big.Int {
	b, _ := hex.DecodeString(muid.Bhash(hex.EncodeToString(key)))
	return big.NewInt(0).SetBytes(b)
}

/* Counting keys are as unlike random ones as keys get; neither should bias digests. */
func monobitTest() {
	const bits = 4 * muid.DigestLen
	integers, random := make([]*big.Int, 0, ints), make([]*big.Int, 0, ints)
	key := make([]byte, muid.CandidateSize)
	for i := ints; i > 0; i-- {
		clear(key)
		binary.BigEndian.PutUint32(key[muid.CandidateSize-4:], i)
		integers = append(integers, digestInt(key))
		_, _ = rand.Read(key)
		random = append(random, digestInt(key))
	}
	fmt.Printf("Integer key Monobit test:  %5.3f%%\n", meanBias(integers, bits))
	fmt.Printf("Random key Monobit test:   %5.3f%%\n", meanBias(random, bits))
}

// coverage prints how many names there are of every length and how long mining one takes at
// rate keys per second.
func coverage(c *corpus.Corpus, rate float64) {
	fmt.Printf("%d names, checksum %016x, %.4g keys/s\n", c.Len(), c.Checksum(), rate)
	fmt.Println("Length    Names      Attempts  Expected time")
	for _, l := range c.Lengths() {
		attempts := c.ExpectedAttempts(l)
		fmt.Printf("%6d %8d %13.4g  %s\n", l, c.CountByLen(l), attempts, estimate(attempts/rate))
	}
}

// estimate renders secs, which may be enormous, in the largest fitting unit.
func estimate(secs float64) string {
	const day, year = 24 * 60 * 60, 365.25 * 24 * 60 * 60
	switch {
	case math.IsInf(secs, 0) || math.IsNaN(secs):
		return "never"
	case secs >= year:
		return fmt.Sprintf("%.3g years", secs/year)
	case secs >= day:
		return fmt.Sprintf("%.3g days", secs/day)
	default:
		return time.Duration(secs * float64(time.Second)).Round(time.Millisecond).String()
	}
}

// cpuFeatures lists the instruction set extensions sha256-simd and blake3 pick their code by.
func cpuFeatures() string {
	var feats []string
	for _, f := range []struct {
		name string
		has  bool
	}{
		{"sse4.1", cpu.X86.HasSSE41},
		{"avx2", cpu.X86.HasAVX2},
		{"avx512f", cpu.X86.HasAVX512F},
		{"sha2", cpu.ARM64.HasSHA2},
	} {
		if f.has {
			feats = append(feats, f.name)
		}
	}
	if len(feats) == 0 {
		return "generic"
	}
	return strings.Join(feats, " ")
}
