package search

import (
	"math/bits"
	"time"
)

// runSieve sweeps one bit-packed segment of primorial factors for the job,
// setting the bit of every factor f for which some small prime divides a
// candidate position, and batches the surviving factors into check tasks
// pushed to the front of the queue.
//
// Sieving starts at prime index PrimorialNumber: the smaller primes divide
// the primorial, so the base construction already excludes them. The factor
// stepping relies on the products (p - r) * inv staying below 2^64, which
// holds for prime table limits up to 2^32.
func (e *Engine) runSieve(w *workerState, job *Job, t task) {
	start := time.Now()
	pattern := job.Pattern
	primorialNumber := e.params.PrimorialNumber

	// Factors covered by this segment. Whole words are sieved; the survivor
	// extraction below clips to the span, so a range shorter than one word
	// still gets its candidates examined.
	span := t.factorMax - t.factorStart
	if span > e.params.SieveSize {
		span = e.params.SieveSize
	}
	words := (span + WordSize - 1) / WordSize
	segment := w.segment[:words]
	for i := range segment {
		segment[i] = 0
	}

	// Hand the rest of the sweep to a follow-up task before the heavy work.
	if t.factorMax > t.factorStart+span {
		e.queue.pushBack(task{kind: taskSieve, jobID: job.ID, factorStart: t.factorStart + span, factorMax: t.factorMax})
	}

	// Candidates have the form firstCandidate + f * primorial. For each
	// sieve prime p and pattern position o, the first factor to eliminate is
	// fp = -(firstCandidate + o) * primorial^-1 mod p.
	w.computeFirstCandidate(e.primorial, job.TargetMin, e.params.PrimorialOffset, t.factorStart)
	need := len(pattern) * len(e.primes)
	if cap(w.factorsToEliminate) < need {
		w.factorsToEliminate = make([]uint64, need)
	}
	fte := w.factorsToEliminate[:need]
	for i := primorialNumber; i < len(e.primes); i++ {
		p := e.primes[i]
		inv := e.modularInverses[i]
		rem := w.remainder.Mod(&w.firstCandidate, w.modulus.SetUint64(p)).Uint64()
		for l, o := range pattern {
			r := (rem + o) % p
			fte[len(pattern)*i+l] = ((p - r) * inv) % p
		}
	}

	// Eliminate the factors fp + m*p inside the segment.
	for i := primorialNumber; i < len(e.primes); i++ {
		p := e.primes[i]
		for l := range pattern {
			fp := fte[len(pattern)*i+l]
			for fp < span {
				segment[fp/WordSize] |= 1 << (fp % WordSize)
				fp += p
			}
		}
	}

	// Extract the survivors, lowest factor first, batching them into check
	// tasks of at most maxCandidatesPerCheckTask candidates.
	var generated uint64
	factors := make([]uint64, 0, maxCandidatesPerCheckTask)
	for i := range segment {
		word := ^segment[i]
		for word != 0 {
			f := uint64(i)*WordSize + uint64(bits.TrailingZeros64(word))
			word &= word - 1
			if f >= span {
				break
			}
			factors = append(factors, f)
			if len(factors) == maxCandidatesPerCheckTask {
				e.queue.pushFront(task{kind: taskCheck, jobID: job.ID, factorStart: t.factorStart, factors: factors})
				generated += maxCandidatesPerCheckTask
				factors = make([]uint64, 0, maxCandidatesPerCheckTask)
			}
		}
	}
	if len(factors) > 0 {
		generated += uint64(len(factors))
		e.queue.pushFront(task{kind: taskCheck, jobID: job.ID, factorStart: t.factorStart, factors: factors})
	}

	e.statsMu.Lock()
	e.stats.CandidatesGenerated += generated
	e.stats.SievingDuration += time.Since(start).Seconds()
	e.statsMu.Unlock()
}
