package search

import (
	"fmt"
	"math/big"
	"time"
)

// Stats is a snapshot of the engine counters. Durations are CPU seconds
// accumulated across all workers.
type Stats struct {
	PrimeTableSize                int
	PrimeTableGenerationTime      float64
	ModularInversesGenerationTime float64
	SearchStartInstant            time.Time
	SievingDuration               float64
	CandidatesGenerated           uint64
	TestingDuration               float64
	CandidatesTested              uint64
	// TupleCounts[k] counts candidates whose Fermat chain found at least k
	// probable-prime positions (with every position required, these are the
	// first k positions); TupleCounts[0] is the number of candidates
	// examined.
	TupleCounts []uint64
}

// Output is one discovered tuple: the candidate base n and the offsets o
// such that n + o tested prime, in pattern order.
type Output struct {
	N            *big.Int
	PatternFound []uint64
	JobID        uint64
	WorkerID     int
}

// SecondsSince returns the elapsed seconds since t.
func SecondsSince(t time.Time) float64 {
	return time.Since(t).Seconds()
}

// FormatDuration renders a duration in seconds at a scale-appropriate unit,
// from microseconds up to years.
func FormatDuration(seconds float64) string {
	switch {
	case seconds < 0.001:
		return fmt.Sprintf("%.0f µs", 1e6*seconds)
	case seconds < 1:
		return fmt.Sprintf("%.0f ms", 1e3*seconds)
	case seconds < 60:
		return fmt.Sprintf("%.2f s", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%.2f min", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%.2f h", seconds/3600)
	case seconds < 31556952:
		return fmt.Sprintf("%.2f d", seconds/86400)
	default:
		return fmt.Sprintf("%.3f y", seconds/31556952)
	}
}
