package search

import (
	"runtime"

	"github.com/pkg/errors"
)

// WordSize is the width in bits of one sieve word.
const WordSize = 64

// Defaults applied by SetParams for zero-valued fields.
const (
	DefaultPrimeTableLimit = 16777216
	DefaultPrimorialNumber = 120
	DefaultSieveSize       = 1 << 25
)

var defaultPattern = []uint64{0, 2, 6, 8, 12, 18, 20}

// Params configures an Engine. Zero values select the documented defaults.
type Params struct {
	// Workers is the number of worker goroutines; 0 means one per CPU.
	Workers int
	// ConstellationPattern holds the candidate offsets, starting at 0 and
	// strictly increasing. Empty selects (0, 2, 6, 8, 12, 18, 20).
	ConstellationPattern []uint64
	// PrimeTableLimit bounds the sieve prime table.
	PrimeTableLimit uint64
	// PrimorialNumber is the one-based index N of the primorial; candidates
	// are forced coprime to the product of the first N-1 primes.
	PrimorialNumber int
	// PrimorialOffset is the residue d mod P aligning candidates with the
	// pattern; 0 selects the tabulated value for the pattern.
	PrimorialOffset uint64
	// SieveSize is the sieve segment width in bits, rounded down to a
	// multiple of WordSize. 0 selects 2^25.
	SieveSize uint64
}

// SetParams fills in defaults and stores the parameters. It fails when the
// chosen pattern has no tabulated primorial offset and none was supplied, or
// when the sieve is smaller than one word.
func (e *Engine) SetParams(p Params) error {
	if p.Workers == 0 {
		p.Workers = runtime.NumCPU()
	}
	if len(p.ConstellationPattern) == 0 {
		p.ConstellationPattern = append([]uint64(nil), defaultPattern...)
	} else {
		p.ConstellationPattern = append([]uint64(nil), p.ConstellationPattern...)
	}
	if p.PrimorialNumber == 0 {
		p.PrimorialNumber = DefaultPrimorialNumber
	}
	if p.PrimeTableLimit == 0 {
		p.PrimeTableLimit = DefaultPrimeTableLimit
	}
	if p.PrimorialOffset == 0 {
		offset, ok := DefaultPrimorialOffset(p.ConstellationPattern)
		if !ok {
			return errors.Errorf("constellation pattern %v has no default primorial offset, set PrimorialOffset explicitly", p.ConstellationPattern)
		}
		p.PrimorialOffset = offset
	}
	if p.SieveSize == 0 {
		p.SieveSize = DefaultSieveSize
	} else {
		p.SieveSize = (p.SieveSize / WordSize) * WordSize
		if p.SieveSize == 0 {
			return errors.Errorf("sieve size must be at least %d bits", WordSize)
		}
	}
	e.params = p
	return nil
}

// Params returns a copy of the engine parameters.
func (e *Engine) Params() Params {
	p := e.params
	p.ConstellationPattern = append([]uint64(nil), p.ConstellationPattern...)
	return p
}
