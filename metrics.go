package muid

import (
	"context"
	"time"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Metrics is an interface for the collection of mining statistics.
type Metrics interface {
	// IncrementAttempts adds n to the number of candidate keys drawn.
	IncrementAttempts(ctx context.Context, n uint64)

	// IncrementFound increments the number of keys found at difficulty.
	IncrementFound(ctx context.Context, difficulty int)

	// ObserveMining records how long one call to mine took.
	ObserveMining(ctx context.Context, dur time.Duration)
}

// EmptyMetrics is the implementation of the [Metrics] interface that does
// nothing.
type EmptyMetrics struct{}

// type check
var _ Metrics = EmptyMetrics{}

// IncrementAttempts implements the [Metrics] interface for EmptyMetrics.
func (EmptyMetrics) IncrementAttempts(_ context.Context, _ uint64) {}

// IncrementFound implements the [Metrics] interface for EmptyMetrics.
func (EmptyMetrics) IncrementFound(_ context.Context, _ int) {}

// ObserveMining implements the [Metrics] interface for EmptyMetrics.
func (EmptyMetrics) ObserveMining(_ context.Context, _ time.Duration) {}
