package search

import (
	"fmt"
	"math"
	"math/big"

	"go.uber.org/zap"
)

// Job describes one admitted search over [TargetMin, TargetMax]. Jobs are
// immutable once admitted; they live in the registry until cleared by a
// later job with ClearPreviousJobs set.
type Job struct {
	ID                uint64
	ClearPreviousJobs bool
	// Pattern holds the candidate offsets to test, starting at 0 and
	// strictly increasing.
	Pattern []uint64
	// PatternMin marks each position as required (true) or optional (false).
	// A failed required position aborts the candidate; a failed optional one
	// is tolerated while KMin remains reachable.
	PatternMin []bool
	TargetMin  *big.Int
	TargetMax  *big.Int
	// KMin is the minimum number of prime positions for an output.
	KMin int
}

// AddJob validates and admits a job, enqueueing its root sieve task. The job
// is admitted only when the returned errors slice is empty.
func (e *Engine) AddJob(job Job) (warnings, errs []string) {
	e.jobsMu.Lock()
	_, duplicate := e.jobs[job.ID]
	e.jobsMu.Unlock()
	if duplicate {
		errs = append(errs, fmt.Sprintf("a job %d was already added", job.ID))
	}
	if len(job.Pattern) != len(job.PatternMin) {
		errs = append(errs, fmt.Sprintf("the target pattern %v and minimum pattern %v must have the same size", job.Pattern, job.PatternMin))
	}
	if job.KMin > len(job.Pattern) {
		errs = append(errs, fmt.Sprintf("the minimum tuple length %d must not exceed the pattern length %d", job.KMin, len(job.Pattern)))
	}
	if job.TargetMin == nil || job.TargetMax == nil {
		errs = append(errs, "the target bounds must both be set")
		return warnings, errs
	}
	if job.TargetMax.Cmp(job.TargetMin) < 0 {
		errs = append(errs, "the target upper bound must not be lower than the target lower bound")
		return warnings, errs
	}
	if e.primorial == nil {
		errs = append(errs, "the engine is not initialized")
		return warnings, errs
	}
	if len(job.Pattern) > len(e.params.ConstellationPattern) {
		warnings = append(warnings, fmt.Sprintf("the job pattern has %d positions but the tuple counts track only %d", len(job.Pattern), len(e.params.ConstellationPattern)))
	}

	span := new(big.Int).Sub(job.TargetMax, job.TargetMin)
	span.Div(span, e.primorial)
	var factorMax uint64
	if span.IsUint64() {
		factorMax = span.Uint64()
	} else {
		warnings = append(warnings, fmt.Sprintf("the primorial factor limit exceeds %d, the search will stop before the target max; consider increasing the primorial number", uint64(math.MaxUint64)))
		factorMax = math.MaxUint64
	}
	if factorMax == 0 {
		errs = append(errs, "the primorial is too large for the target range")
	}
	if len(errs) > 0 {
		return warnings, errs
	}

	stored := job
	stored.Pattern = append([]uint64(nil), job.Pattern...)
	stored.PatternMin = append([]bool(nil), job.PatternMin...)
	stored.TargetMin = new(big.Int).Set(job.TargetMin)
	stored.TargetMax = new(big.Int).Set(job.TargetMax)

	e.jobsMu.Lock()
	if job.ClearPreviousJobs {
		clear(e.jobs)
	}
	e.jobs[job.ID] = stored
	e.jobsMu.Unlock()

	e.queue.pushBack(task{kind: taskSieve, jobID: job.ID, factorStart: 0, factorMax: factorMax})
	e.logger.Info("job admitted",
		zap.Uint64("job", job.ID),
		zap.Uint64("factorMax", factorMax))
	return warnings, errs
}
