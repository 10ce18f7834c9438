package search

import (
	"math/big"

	"go.uber.org/zap"

	"github.com/constella/constella/prime"
)

// workerState holds the buffers a worker reuses across tasks: the per-prime,
// per-position factor table, the segment bitmap, and big integer scratch for
// the hot loops.
type workerState struct {
	id     int
	logger *zap.Logger

	factorsToEliminate []uint64 // len = |pattern| * |primes|
	segment            []uint64 // len = sieveSize / WordSize

	firstCandidate big.Int
	candidate      big.Int
	shifted        big.Int
	modulus        big.Int
	remainder      big.Int
	tmp            big.Int
	tmp2           big.Int
	prp            prime.PRPTester

	patternFound []uint64
	tupleCounts  []uint64
}

// computeFirstCandidate sets w.firstCandidate to the base of the segment
// starting at factorStart: targetMin aligned up to the next multiple of the
// primorial, shifted by the primorial offset.
func (w *workerState) computeFirstCandidate(primorial, targetMin *big.Int, primorialOffset, factorStart uint64) {
	fc := &w.firstCandidate
	fc.Mod(targetMin, primorial)
	fc.Sub(primorial, fc)
	fc.Add(fc, targetMin)
	fc.Add(fc, w.tmp.SetUint64(primorialOffset))
	fc.Add(fc, w.tmp2.Mul(primorial, w.tmp.SetUint64(factorStart)))
}

// worker pulls tasks from the shared queue until the queue is closed,
// dispatching to the sieve or check kernel. Tasks whose job has been cleared
// from the registry are dropped.
func (e *Engine) worker(id int) {
	defer e.wg.Done()
	patternLen := len(e.params.ConstellationPattern)
	w := &workerState{
		id:                 id,
		logger:             e.logger.With(zap.Int("worker", id)),
		factorsToEliminate: make([]uint64, patternLen*len(e.primes)),
		segment:            make([]uint64, e.params.SieveSize/WordSize),
		patternFound:       make([]uint64, 0, patternLen),
		tupleCounts:        make([]uint64, patternLen+1),
	}
	w.logger.Debug("worker started")
	for {
		t, ok := e.queue.pop()
		if !ok {
			w.logger.Debug("worker stopped")
			return
		}
		job, ok := e.snapshotJob(t.jobID)
		if !ok {
			continue // job is no longer current, drop the task
		}
		switch t.kind {
		case taskSieve:
			e.runSieve(w, &job, t)
		case taskCheck:
			e.runCheck(w, &job, t)
		}
	}
}
