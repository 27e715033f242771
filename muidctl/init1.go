package main

import (
	"os"
	"time"

	"github.com/microprediction/muid"
	"github.com/spf13/pflag"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var pDifficulty, pCount, pNoCodesDefault = uint(0), uint(0), false
var pWorkers, pSeed, pCorpus, pMetricsAddr, pTimeout = 0, "", "", "", time.Duration(0)
var pHelp, pJSON, pNoCodes, pQuiet, pValidate, pCode, pShash bool
var yell, purp, und, zero = "\033[33m", "\033[35m", "\033[4m", "\033[0m"

func init() {
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--no-codes=false":
			pNoCodes = false
		case "--quiet", "--quiet=true":
			pNoCodes, pQuiet = true, true
		case "--json", "--json=true", "-j":
			pNoCodes = true
		case "--no-codes", "--no-codes=true":
			pNoCodes = true
		}
	}
	if pNoCodes {
		yell, purp, und, zero = "", "", "", ""
	}

	pflag.BoolVarP(&pHelp, "help", "h", false,
		purp+"print this help menu"+zero+n)

	pflag.BoolVarP(&pCode, "code", "c", false,
		purp+"look up arguments as digests instead of keys"+zero)

	pflag.StringVar(&pCorpus, "corpus", "",
		purp+"read the prefix dictionary from PATH"+zero+" (default bundled;"+
			n+"env MUID_CORPUS_PATH)")

	pflag.UintVarP(&pCount, "count", "n", 1,
		purp+"number of keys to mine"+zero)

	pflag.UintVarP(&pDifficulty, "difficulty", "d", muid.DefaultDifficulty,
		purp+"length of the digest prefix to mine for"+zero)

	pflag.BoolVarP(&pJSON, "json", "j", false,
		purp+"print mined keys as JSON lines"+zero+" (enables --no-codes)")

	pflag.StringVar(&pMetricsAddr, "metrics-addr", "",
		purp+"serve Prometheus metrics on ADDR while mining"+zero+
			n+"(env MUID_METRICS_ADDR)")

	pflag.Bool("no-codes", pNoCodesDefault,
		purp+"print to console w/o formatting codes or simplified"+zero+
			n+purp+"filepaths"+zero)

	pflag.Bool("quiet", false,
		purp+"print ONLY keys, names, or digests"+zero+" (enables --no-codes)")

	pflag.StringVar(&pSeed, "seed", "",
		purp+"mine reproducibly from a 64-digit hex seed"+zero)

	pflag.BoolVarP(&pShash, "shash", "s", false,
		purp+"print digests and content IDs of files instead"+zero)

	pflag.DurationVarP(&pTimeout, "timeout", "t", 0,
		purp+"give up mining after this long"+zero+" (default never)")

	pflag.BoolVarP(&pValidate, "validate", "v", false,
		purp+"print names and difficulties of keys given as arguments"+zero)

	pflag.IntVarP(&pWorkers, "workers", "w", 0,
		purp+"number of mining goroutines"+zero+" (default one per CPU;"+
			n+"env MUID_WORKERS)")

	/* Order flags alphabetically except for help, which is hoisted to the top. */
	pflag.CommandLine.SortFlags = false
}
