package main

import (
	stdsha256 "crypto/sha256"
	"encoding/hex"
	"fmt"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/dterei/gotsc"
	"github.com/microprediction/muid"
	"github.com/microprediction/muid/corpus"
	"github.com/zeebo/blake3"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

/* The first size is that of a hex key, which is what mining hashes over and over. */
var sizes = [...]int{2 * muid.CandidateSize, 4 << 10, 1 << 20, 64 << 20}
var data, calltime = []byte(nil), gotsc.TSCOverhead()

func BenchmarkShash(b *testing.B) {
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		_ = muid.Shash(data)
	}
}

func BenchmarkSHA256(b *testing.B) {
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		stdsha256.Sum256(data)
	}
}

func BenchmarkBlake3(b *testing.B) {
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		blake3.Sum256(data)
	}
}

// benchAlg prints the throughput, cycles per byte, and allocations of alg for every size.
func benchAlg(alg func(b *testing.B)) {
	const s = len(sizes)
	throughputs, speeds, usages := make([]float64, s), make([]float64, s), make([]float64, s)

	for i, v := range sizes {
		data = make([]byte, v)

		totalHz, polls, mut, done := uint64(0), uint64(0), &sync.Mutex{}, make(chan struct{})
		if calltime > 0 {
			go func() {
				for {
					select {
					case <-done:
						return
					default:
					}
					tsc1 := gotsc.BenchStart()
					time.Sleep(time.Millisecond)
					tsc2 := gotsc.BenchEnd()

					mut.Lock()
					totalHz += tsc2 - tsc1 - calltime
					polls++
					mut.Unlock()

					time.Sleep(time.Millisecond * 9)
				}
			}()
		}
		r := testing.Benchmark(alg)
		close(done)
		mut.Lock()
		totalHz *= 1000

		throughputs[i] = float64(r.Bytes*int64(r.N)) / r.T.Seconds() /* B/s */
		if polls > 0 {
			speeds[i] = float64(totalHz) / float64(polls) / throughputs[i]
		}
		mut.Unlock()
		throughputs[i] /= 1e6 /* MB/s */
		usages[i] = float64(r.AllocedBytesPerOp())
	}

	fmt.Println("Speed " + fmtFloats(throughputs...) + "   MB/s")
	if calltime > 0 {
		fmt.Println("      " + fmtFloats(speeds...) + "   cpb")
	}
	fmt.Print("Usage " + fmtFloats(usages...) + "   B/op\n\n")
}

// keyRate returns how many candidate keys per second one goroutine hashes and looks up.
func keyRate(c *corpus.Corpus) (rate float64) {
	r := testing.Benchmark(func(b *testing.B) {
		raw, key := make([]byte, muid.CandidateSize), make([]byte, 2*muid.CandidateSize)
		b.ResetTimer()
		for i := b.N; i > 0; i-- {
			raw[0], raw[1] = byte(i), byte(i>>8)
			hex.Encode(key, raw)
			_, _ = c.Lookup(muid.Bhash(string(key))[:c.MinLen()])
		}
	})

	return float64(r.N) / r.T.Seconds()
}

func fmtFloats(f ...float64) string {
	var str, style string
	for _, v := range f {
		switch whole := float64(int64(v)) == v; {
		case v > 1e8 || (v < 1e-6 && !whole):
			style = "%8.3g"
		case v <= 1e1 && !whole:
			style = "%8.6f"
		case v <= 1e3 && !whole:
			style = "%8.4f"
		case v <= 1e5 && !whole:
			style = "%8.2f"
		default:
			style = "%8.f"
		}
		str += "  " + fmt.Sprintf(style, v)
	}
	return str
}

func main() {
	c, err := corpus.Default()
	if err != nil {
		panic(err)
	}

	fmt.Printf("Running Statz on %d CPUs!\n%s/%s (%s)\n\n", runtime.NumCPU(), runtime.GOOS,
		runtime.GOARCH, cpuFeatures())
	t := time.Now()

	monobitTest()
	fmt.Println(" ============================================= ")

	rate := keyRate(c) * float64(runtime.NumCPU())
	coverage(c, rate)
	fmt.Println(" ============================================= ")

	fmt.Println("           32B        4K        1M       64M")
	fmt.Println("github.com/minio/sha256-simd")
	benchAlg(BenchmarkShash)

	fmt.Println("crypto/sha256")
	benchAlg(BenchmarkSHA256)

	fmt.Println("github.com/zeebo/blake3")
	benchAlg(BenchmarkBlake3)

	fmt.Println("Finished in " + time.Since(t).Truncate(time.Millisecond).String() + ".")
}
