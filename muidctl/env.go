package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/golibs/validate"
	"github.com/caarlos0/env/v7"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// environment represents the configuration that is kept in the environment.
// Flags given on the command line take precedence over it.
type environment struct {
	CorpusPath  string `env:"MUID_CORPUS_PATH"`
	MetricsAddr string `env:"MUID_METRICS_ADDR"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`

	Workers int `env:"MUID_WORKERS" envDefault:"0"`

	Verbosity uint8 `env:"VERBOSE" envDefault:"0"`

	LogTimestamp strictBool `env:"LOG_TIMESTAMP" envDefault:"0"`
}

// parseEnvironment reads the configuration from the environment.
func parseEnvironment() (envs *environment, err error) {
	envs = &environment{}
	err = env.Parse(envs)
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	return envs, nil
}

// type check
var _ validate.Interface = (*environment)(nil)

// Validate implements the [validate.Interface] interface for *environment.
func (envs *environment) Validate() (err error) {
	var errs []error

	errs = append(errs, validate.NotNegative("MUID_WORKERS", envs.Workers))

	if _, err = slogutil.NewFormat(envs.LogFormat); err != nil {
		errs = append(errs, fmt.Errorf("LOG_FORMAT: %w", err))
	}

	if _, err = slogutil.VerbosityToLevel(envs.Verbosity); err != nil {
		errs = append(errs, fmt.Errorf("VERBOSE: %w", err))
	}

	return errors.Join(errs...)
}

// newLogger returns a logger writing to stderr as configured by envs, which
// must be valid.  quiet raises the level so that only errors get through.
func (envs *environment) newLogger(quiet bool) (l *slog.Logger) {
	lvl := errors.Must(slogutil.VerbosityToLevel(envs.Verbosity))
	if quiet {
		lvl = slog.LevelError
	}

	return slogutil.New(&slogutil.Config{
		Output:       os.Stderr,
		Format:       slogutil.Format(envs.LogFormat),
		AddTimestamp: bool(envs.LogTimestamp),
		Level:        lvl,
	})
}

// strictBool is a boolean that only accepts "0" and "1" from the environment.
type strictBool bool

// UnmarshalText implements the encoding.TextUnmarshaler interface for
// *strictBool.
func (sb *strictBool) UnmarshalText(b []byte) (err error) {
	switch string(b) {
	case "0":
		*sb = false
	case "1":
		*sb = true
	default:
		return fmt.Errorf("invalid value %q, supported: %q, %q", b, "0", "1")
	}

	return nil
}
