package search

import (
	"math/big"
	"time"

	"go.uber.org/zap"
)

// runCheck Fermat-tests a batch of surviving factors against the job
// pattern. A failed required position aborts the candidate immediately; a
// failed optional position is tolerated as long as the remaining positions
// can still reach KMin. Candidates with at least KMin prime positions are
// appended to the output buffer.
func (e *Engine) runCheck(w *workerState, job *Job, t task) {
	start := time.Now()
	w.computeFirstCandidate(e.primorial, job.TargetMin, e.params.PrimorialOffset, t.factorStart)

	counts := w.tupleCounts
	for i := range counts {
		counts[i] = 0
	}
	for _, f := range t.factors {
		counts[0]++
		w.candidate.Add(&w.firstCandidate, w.tmp2.Mul(e.primorial, w.tmp.SetUint64(f)))
		k := 0
		w.patternFound = w.patternFound[:0]
		for l, o := range job.Pattern {
			w.shifted.Add(&w.candidate, w.tmp.SetUint64(o))
			if w.prp.IsProbablePrime(&w.shifted) {
				k++
				w.patternFound = append(w.patternFound, o)
				if k < len(counts) {
					counts[k]++
				}
			} else if job.PatternMin[l] {
				break
			} else if k+(len(job.Pattern)-l-1) < job.KMin {
				break
			}
		}
		if k >= job.KMin {
			e.pushOutput(Output{
				N:            new(big.Int).Set(&w.candidate),
				PatternFound: append([]uint64(nil), w.patternFound...),
				JobID:        job.ID,
				WorkerID:     w.id,
			})
			w.logger.Debug("tuple found",
				zap.Uint64("job", job.ID),
				zap.Int("length", k))
		}
	}

	e.statsMu.Lock()
	for i, c := range counts {
		if i < len(e.stats.TupleCounts) {
			e.stats.TupleCounts[i] += c
		}
	}
	e.stats.CandidatesTested += uint64(len(t.factors))
	e.stats.TestingDuration += time.Since(start).Seconds()
	e.statsMu.Unlock()
}
