// Package search implements a concurrent search for prime constellations:
// tuples n+o0, ..., n+ok-1 that are simultaneously base-2 probable primes
// for a fixed offset pattern. Candidates are built as B + f*P for a
// primorial P and a pattern-aligned base B, sieved against a table of small
// primes in bit-packed segments, and the survivors are Fermat-tested by a
// pool of workers fed from a shared task queue.
package search

import (
	"math/big"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/constella/constella/prime"
)

// Engine owns the prime and modular inverse tables and runs search jobs on a
// fixed pool of workers. Create with New, then SetParams, Init, StartWorkers
// and AddJob, in that order. Discovered tuples are drained with PopOutput.
type Engine struct {
	params Params
	logger *zap.Logger

	// Built by Init, read-only afterwards; workers share them without locks.
	primes          []uint64
	modularInverses []uint64
	primorial       *big.Int

	jobsMu sync.Mutex
	jobs   map[uint64]Job

	queue *taskQueue

	statsMu sync.Mutex
	stats   Stats

	outputMu sync.Mutex
	outputs  []Output

	wg      sync.WaitGroup
	started bool
}

// New returns an empty engine. A nil logger disables logging.
func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		logger: logger,
		jobs:   make(map[uint64]Job),
		queue:  newTaskQueue(),
		stats:  Stats{SearchStartInstant: time.Now()},
	}
}

// Primorial returns a copy of the primorial P built by Init, or nil before
// Init.
func (e *Engine) Primorial() *big.Int {
	if e.primorial == nil {
		return nil
	}
	return new(big.Int).Set(e.primorial)
}

// Init builds the prime table, the primorial and the modular inverse table,
// and records their build times in the stats. Call once, after SetParams and
// before StartWorkers.
func (e *Engine) Init() error {
	start := time.Now()
	e.primes = prime.Primes(e.params.PrimeTableLimit)
	tableTime := time.Since(start).Seconds()

	p, err := prime.Primorial(e.primes, e.params.PrimorialNumber)
	if err != nil {
		return errors.Wrap(err, "building primorial")
	}
	e.primorial = p

	start = time.Now()
	e.modularInverses = prime.ModularInverses(e.primorial, e.primes)
	invTime := time.Since(start).Seconds()

	e.statsMu.Lock()
	e.stats.PrimeTableSize = len(e.primes)
	e.stats.PrimeTableGenerationTime = tableTime
	e.stats.ModularInversesGenerationTime = invTime
	e.statsMu.Unlock()

	e.logger.Info("engine initialized",
		zap.Int("primes", len(e.primes)),
		zap.Float64("primeTableSeconds", tableTime),
		zap.Float64("modularInverseSeconds", invTime))
	return nil
}

// StartWorkers resets the search counters and spawns the worker pool.
func (e *Engine) StartWorkers() {
	if e.started {
		return
	}
	e.started = true

	e.statsMu.Lock()
	e.stats.SearchStartInstant = time.Now()
	e.stats.SievingDuration = 0
	e.stats.CandidatesGenerated = 0
	e.stats.TestingDuration = 0
	e.stats.CandidatesTested = 0
	e.stats.TupleCounts = make([]uint64, len(e.params.ConstellationPattern)+1)
	e.statsMu.Unlock()

	for id := 0; id < e.params.Workers; id++ {
		e.wg.Add(1)
		go e.worker(id)
	}
}

// Stop closes the task queue and waits for the workers to return. Pending
// and queued tasks are abandoned. Idempotent; the engine cannot be restarted
// afterwards.
func (e *Engine) Stop() {
	e.queue.close()
	e.wg.Wait()
}

// PopOutput returns the oldest unread output, or nil when there is none.
func (e *Engine) PopOutput() *Output {
	e.outputMu.Lock()
	defer e.outputMu.Unlock()
	if len(e.outputs) == 0 {
		return nil
	}
	out := e.outputs[0]
	e.outputs = e.outputs[1:]
	return &out
}

// pushOutput appends out unless its job has been cleared in the meantime.
// The registry lock is held across the check and the append, so no output of
// a cleared job lands after an output of the job that replaced it.
func (e *Engine) pushOutput(out Output) {
	e.jobsMu.Lock()
	defer e.jobsMu.Unlock()
	if _, ok := e.jobs[out.JobID]; !ok {
		return
	}
	e.outputMu.Lock()
	e.outputs = append(e.outputs, out)
	e.outputMu.Unlock()
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	e.statsMu.Lock()
	defer e.statsMu.Unlock()
	s := e.stats
	s.TupleCounts = append([]uint64(nil), e.stats.TupleCounts...)
	return s
}

// snapshotJob copies the job descriptor out of the registry so the kernels
// run without holding the registry lock. The second result is false when the
// job has been cleared.
func (e *Engine) snapshotJob(id uint64) (Job, bool) {
	e.jobsMu.Lock()
	defer e.jobsMu.Unlock()
	j, ok := e.jobs[id]
	return j, ok
}
