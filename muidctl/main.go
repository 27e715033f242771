package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/microprediction/muid"
	"github.com/microprediction/muid/corpus"
	"github.com/microprediction/muid/metrics"
	"github.com/p7r0x7/vainpath"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const n = "\n"
const success, failure, invalid = 0, 1, 2

// errBadSeed is returned when --seed is not 64 hex digits.
const errBadSeed errors.Error = "seed must be 64 hex digits"

var warnings = 0

func main() {
	pflag.Parse()
	os.Exit(program())
}

// help prints a usage menu. To consistently correctly render this menu in most terminal windows,
// its content should be no wider than 80 columns.
func help() {
	origin, err := os.Executable()
	if err != nil {
		origin = "muidctl" /* Default binary name */
	} else {
		origin = filepath.Base(origin)
	}
	name := vainpath.Trim(origin, "…", 12)
	spaces := strings.Repeat(" ", utf8.RuneCountInString(name)+3)
	fmt.Fprint(os.Stderr, yell, "Memorable unique identifiers: keys with animal names.", zero, n+n+
		"Usage:"+n+
		"  ", name, " [-h]"+n,
		spaces, "[-j] [-d <uint>] [-n <uint>] [-w <int>] [-t <dur>] [--seed HEX]"+n,
		spaces, "[-v] [--quiet|no-codes] KEY..."+n,
		spaces, "[-c] [--quiet|no-codes] DIGEST|\"ANIMAL NAME\"..."+n,
		spaces, "[-s] [--quiet|no-codes] -|PATH..."+n+n+
			"Options:"+n)
	pflag.PrintDefaults()
	name = vainpath.Trim(origin, "…", 15)
	fmt.Fprint(os.Stderr, n+"Without -v, -c, or -s, `", name, "` mines keys and prints them along"+n+
		"with their digests and names. Mining at a difficulty of 13 or more may take days."+n+
		"`-` is treated as a reference to ", os.Stdin.Name(), " on this platform."+n)
}

// This program is a command-line interface for muid: It mines keys, names the keys and digests
// given as arguments, or digests files, as required by the command-line operator.
func program() int {
	listing := pValidate || pCode || pShash
	if pHelp || (listing && pflag.NArg() == 0) {
		help()
		return success
	}

	envs, err := parseEnvironment()
	if err == nil {
		err = envs.Validate()
	}
	if err != nil {
		fmt.Fprint(os.Stderr, purp, err, zero, n)
		return invalid
	}
	envs.override()
	l := envs.newLogger(pQuiet)

	if pShash {
		for _, target := range pflag.Args() {
			digestFile(os.Stdout, target)
		}
		return report()
	}

	conf, shutdown, err := newConfig(l)
	if err != nil {
		fmt.Fprint(os.Stderr, purp, err, zero, n)
		return invalid
	}
	defer shutdown()

	m, err := muid.New(conf)
	if err != nil {
		fmt.Fprint(os.Stderr, purp, err, zero, n)
		return invalid
	}

	switch {
	case pValidate:
		for _, key := range pflag.Args() {
			nameKey(os.Stdout, m, key)
		}
		return report()
	case pCode:
		for _, code := range pflag.Args() {
			nameCode(os.Stdout, m, code)
		}
		return report()
	default:
		return mine(l, m)
	}
}

// override replaces the values of flags not given on the command line with the ones from envs.
func (envs *environment) override() {
	if !pflag.CommandLine.Changed("workers") {
		pWorkers = envs.Workers
	}
	if !pflag.CommandLine.Changed("corpus") {
		pCorpus = envs.CorpusPath
	}
	if !pflag.CommandLine.Changed("metrics-addr") {
		pMetricsAddr = envs.MetricsAddr
	}
}

// newConfig builds the library configuration from the flags. shutdown stops the metrics server,
// if one was started, and is never nil.
func newConfig(l *slog.Logger) (conf *muid.Config, shutdown func(), err error) {
	conf, shutdown = &muid.Config{Logger: l, Workers: pWorkers}, func() {}

	if pCorpus != "" {
		if conf.Corpus, err = corpus.Open(pCorpus); err != nil {
			return nil, shutdown, err
		}
	}

	if pSeed != "" {
		seed, err := parseSeed(pSeed)
		if err != nil {
			return nil, shutdown, err
		}
		conf.Rand = muid.NewSeededReader(seed)
	}

	if pMetricsAddr != "" {
		reg := prometheus.NewRegistry()
		mtrc, err := metrics.NewMiner(reg)
		if err != nil {
			return nil, shutdown, fmt.Errorf("registering metrics: %w", err)
		}
		conf.Metrics = mtrc
		shutdown = serveMetrics(l, pMetricsAddr, reg)
	}

	return conf, shutdown, nil
}

// parseSeed decodes a seed for deterministic mining.
func parseSeed(s string) (seed [32]byte, err error) {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != len(seed) {
		return seed, fmt.Errorf("--seed %q: %w", s, errBadSeed)
	}
	copy(seed[:], b)

	return seed, nil
}

// serveMetrics serves the metrics in reg until the returned function is called.
func serveMetrics(l *slog.Logger, addr string, reg *prometheus.Registry) (shutdown func()) {
	l = l.With(slogutil.KeyPrefix, "metrics")
	srv := &http.Server{
		Addr:              addr,
		Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		l.Info("listening", "addr", addr)
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("serving", slogutil.KeyError, err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			l.Error("shutting down", slogutil.KeyError, err)
		}
	}
}

// mine prints pCount keys at pDifficulty, or as many as were found before the timeout or an
// interrupt.
func mine(l *slog.Logger, m *muid.Muid) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if pTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, pTimeout)
		defer cancel()
	}

	found, err := m.MineUntil(ctx, int(pDifficulty), int(pCount))
	for _, k := range found {
		printKey(os.Stdout, k)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			l.Warn("mining stopped early", "found", len(found), "wanted", pCount, slogutil.KeyError, err)
			return failure
		}
		fmt.Fprint(os.Stderr, purp, err, zero, n)
		return invalid
	}
	return success
}

// printKey prints a mined key, either as a JSON line or as its name followed by the key and its
// digest.
func printKey(w io.Writer, k muid.FoundKey) {
	if pJSON {
		/* FoundKey always marshals. */
		_ = json.NewEncoder(w).Encode(k)
	} else if pQuiet {
		fmt.Fprint(w, k.Key, n)
	} else {
		fmt.Fprint(w, yell, k.Pretty, zero, "  ", k.Key, "  ", und, k.Hash, zero, n)
	}
}

// nameKey prints the name and the difficulty of key, or counts a warning if it has none.
func nameKey(w io.Writer, m *muid.Muid, key string) {
	name, ok := m.AnimalFromKey(key)
	if !ok {
		warn(key, "has no animal name")
		return
	}
	if pQuiet {
		fmt.Fprint(w, name, n)
	} else {
		fmt.Fprint(w, yell, name, zero, "  ", m.KeyDifficulty(key), "  ", key, n)
	}
}

// nameCode prints the name of a digest. Arguments containing a space are taken to be animal
// names instead, and the digest prefix they spell is printed.
func nameCode(w io.Writer, m *muid.Muid, arg string) {
	if strings.Contains(arg, " ") {
		code, err := muid.CodeFromAnimal(arg)
		if err != nil {
			warn(arg, err.Error())
			return
		}
		if pQuiet {
			fmt.Fprint(w, code, n)
		} else {
			fmt.Fprint(w, und, code, zero, `  "`, arg, `"`, n)
		}
		return
	}

	name, ok, err := m.AnimalFromCode(arg)
	if err != nil {
		warn(arg, err.Error())
		return
	} else if !ok {
		warn(arg, "has no animal name")
		return
	}
	if pQuiet {
		fmt.Fprint(w, name, n)
	} else {
		fmt.Fprint(w, yell, name, zero, "  ", und, arg, zero, n)
	}
}

// digestFile prints the digest and the content ID of the file at target, which may be `-`.
func digestFile(w io.Writer, target string) {
	var data []byte
	var err error
	if target == "-" || target == os.Stdin.Name() {
		data, err = io.ReadAll(os.Stdin)
		go os.Stdin.Close() /* STDIN should not be reused. */
	} else {
		data, err = os.ReadFile(target)
	}
	if err != nil {
		warn(target, "is a directory or is otherwise inaccessible")
		return
	}

	cid, err := muid.ContentID(data)
	if err != nil {
		warn(target, err.Error())
		return
	}

	if pQuiet {
		fmt.Fprint(w, muid.Shash(data), n)
	} else if pNoCodes {
		fmt.Fprint(w, muid.Shash(data), "  ", cid, "  ", filepath.Clean(target), n)
	} else {
		fmt.Fprint(w, yell, muid.Shash(data), zero, "  ", cid, "  ", und, vainpath.Simplify(target),
			zero, n)
	}
}

// warn counts a failed argument and, unless quiet, says why on stderr.
func warn(arg, why string) {
	warnings++
	if !pQuiet {
		fmt.Fprint(os.Stderr, purp, arg, ": ", why, zero, n)
	}
}

// report summarizes the warnings and returns the exit code.
func report() int {
	if !pQuiet {
		if warnings == 1 {
			fmt.Fprint(os.Stderr, "1 ", purp, "argument could not be processed.", zero, n)
		} else if warnings > 1 {
			fmt.Fprint(os.Stderr, warnings, " ", purp, "arguments could not be processed.", zero, n)
		}
	}
	if warnings > 0 {
		return failure
	}
	return success
}
