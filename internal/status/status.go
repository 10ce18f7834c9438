// Package status renders the periodic, human-readable reports of the
// reference driver: tuple discoveries and candidate throughput lines.
package status

import (
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"

	"github.com/constella/constella/search"
)

// Reporter writes search progress to a terminal-style writer.
type Reporter struct {
	mu  sync.Mutex
	out io.Writer
}

func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// ReportTuple prints one discovered tuple.
func (r *Reporter) ReportTuple(elapsed float64, out *search.Output) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "[%.1f] %d-tuple found by worker %d: %s + %v\n",
		elapsed, len(out.PatternFound), out.WorkerID, out.N.String(), out.PatternFound)
}

// ReportStats prints the throughput lines for one refresh interval: the
// candidate rate, the prime ratio r, the tuple counts, the estimated average
// time between finds, and the sieving and testing speeds in CPU time.
func (r *Reporter) ReportStats(stats search.Stats, patternLen int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	elapsed := time.Since(stats.SearchStartInstant).Seconds()
	if elapsed <= 0 || len(stats.TupleCounts) == 0 {
		return
	}
	cps := float64(stats.TupleCounts[0]) / elapsed
	if len(stats.TupleCounts) < 2 || stats.TupleCounts[1] == 0 || cps == 0 {
		fmt.Fprintf(r.out, "[%.1f] %.1f c/s, r: -.--, t: %v\n", elapsed, cps, stats.TupleCounts)
		return
	}
	ratio := float64(stats.TupleCounts[0]) / float64(stats.TupleCounts[1])
	estimate := math.Pow(ratio, float64(patternLen)) / cps
	fmt.Fprintf(r.out, "[%.1f] %.1f c/s, r: %.2f, t: %v | estimated time between finds: %s\n",
		elapsed, cps, ratio, stats.TupleCounts, formatFindTime(estimate))
	if stats.SievingDuration > 0 {
		fmt.Fprintf(r.out, "[%.1f] Sieving: %s candidates generated in %s of CPU time (%.1f candidates/s)\n",
			elapsed, humanize.Comma(int64(stats.CandidatesGenerated)),
			search.FormatDuration(stats.SievingDuration),
			float64(stats.CandidatesGenerated)/stats.SievingDuration)
	}
	if stats.TestingDuration > 0 {
		fmt.Fprintf(r.out, "[%.1f] Testing: %s candidates checked in %s of CPU time (%.1f candidates/s)\n",
			elapsed, humanize.Comma(int64(stats.CandidatesTested)),
			search.FormatDuration(stats.TestingDuration),
			float64(stats.CandidatesTested)/stats.TestingDuration)
	}
}

// formatFindTime renders short or absurdly long estimates on the fixed-unit
// scale and everything in between in calendar units.
func formatFindTime(seconds float64) string {
	if seconds < 60 || seconds > 1e15 || math.IsInf(seconds, 0) || math.IsNaN(seconds) {
		return search.FormatDuration(seconds)
	}
	d := time.Duration(seconds * float64(time.Second))
	return durafmt.Parse(d).LimitFirstN(2).String()
}
