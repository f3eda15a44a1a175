package coclust

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordMatrixBuild is called after each distance matrix build.
	// blocks is 0 when the build ran sequentially.
	RecordMatrixBuild(n, blocks int, parallel bool, duration time.Duration, err error)

	// RecordIteration is called after each ensemble run, from the run's
	// goroutine.
	RecordIteration(k int, duration time.Duration, err error)

	// RecordScore is called after each contingency scoring.
	RecordScore(degenerate bool)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordMatrixBuild(int, int, bool, time.Duration, error) {}
func (NoopMetricsCollector) RecordIteration(int, time.Duration, error)              {}
func (NoopMetricsCollector) RecordScore(bool)                                       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	MatrixBuildCount      atomic.Int64
	MatrixBuildErrors     atomic.Int64
	MatrixBuildParallel   atomic.Int64
	MatrixBuildBlocks     atomic.Int64
	MatrixBuildItems      atomic.Int64
	MatrixBuildTotalNanos atomic.Int64
	IterationCount        atomic.Int64
	IterationErrors       atomic.Int64
	IterationTotalK       atomic.Int64
	IterationTotalNanos   atomic.Int64
	ScoreCount            atomic.Int64
	ScoreDegenerate       atomic.Int64
}

// RecordMatrixBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMatrixBuild(n, blocks int, parallel bool, duration time.Duration, err error) {
	b.MatrixBuildCount.Add(1)
	b.MatrixBuildItems.Add(int64(n))
	b.MatrixBuildBlocks.Add(int64(blocks))
	b.MatrixBuildTotalNanos.Add(duration.Nanoseconds())
	if parallel {
		b.MatrixBuildParallel.Add(1)
	}
	if err != nil {
		b.MatrixBuildErrors.Add(1)
	}
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(k int, duration time.Duration, err error) {
	b.IterationCount.Add(1)
	b.IterationTotalK.Add(int64(k))
	b.IterationTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.IterationErrors.Add(1)
	}
}

// RecordScore implements MetricsCollector.
func (b *BasicMetricsCollector) RecordScore(degenerate bool) {
	b.ScoreCount.Add(1)
	if degenerate {
		b.ScoreDegenerate.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		MatrixBuildCount:    b.MatrixBuildCount.Load(),
		MatrixBuildErrors:   b.MatrixBuildErrors.Load(),
		MatrixBuildParallel: b.MatrixBuildParallel.Load(),
		MatrixBuildBlocks:   b.MatrixBuildBlocks.Load(),
		MatrixBuildAvgNanos: avg(b.MatrixBuildTotalNanos.Load(), b.MatrixBuildCount.Load()),
		IterationCount:      b.IterationCount.Load(),
		IterationErrors:     b.IterationErrors.Load(),
		IterationAvgK:       avg(b.IterationTotalK.Load(), b.IterationCount.Load()),
		IterationAvgNanos:   avg(b.IterationTotalNanos.Load(), b.IterationCount.Load()),
		ScoreCount:          b.ScoreCount.Load(),
		ScoreDegenerate:     b.ScoreDegenerate.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	MatrixBuildCount    int64
	MatrixBuildErrors   int64
	MatrixBuildParallel int64
	MatrixBuildBlocks   int64
	MatrixBuildAvgNanos int64
	IterationCount      int64
	IterationErrors     int64
	IterationAvgK       int64
	IterationAvgNanos   int64
	ScoreCount          int64
	ScoreDegenerate     int64
}
