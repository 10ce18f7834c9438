// Package prime provides the number-theoretic primitives behind the
// constellation search: prime table generation, primorials, modular
// inverses and the base-2 Fermat probable-primality test.
package prime

import (
	"math"
	"math/big"

	"github.com/pkg/errors"
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// Primes returns every prime up to and including limit, in increasing order.
//
// The sieve works on a packed bitmap of odd numbers (bit j represents 2j+1),
// crossing out composites by walking odd f from 3 while f*f <= limit and
// starting the crossings at f*f.
func Primes(limit uint64) []uint64 {
	if limit < 2 {
		return nil
	}

	composite := make([]uint64, limit/128+1)
	for f := uint64(3); f*f <= limit; f += 2 {
		if composite[f>>7]&(1<<((f>>1)&63)) != 0 {
			continue
		}
		for m := (f * f) >> 1; m <= limit>>1; m += f {
			composite[m>>6] |= 1 << (m & 63)
		}
	}

	// Pre-allocate with the prime counting estimate pi(x) ~ x / ln(x).
	estimated := int(float64(limit)/math.Log(float64(limit))*1.1) + 8
	primes := make([]uint64, 0, estimated)
	primes = append(primes, 2)
	for i := uint64(1); (i<<1)+1 <= limit; i++ {
		if composite[i>>6]&(1<<(i&63)) == 0 {
			primes = append(primes, (i<<1)+1)
		}
	}
	return primes
}

// Primorial computes the product of the first n-1 primes, following the
// one-based primorial number convention of the candidate construction:
// Primorial(primes, 1) = 1, Primorial(primes, 3) = 2*3 = 6.
func Primorial(primes []uint64, n int) (*big.Int, error) {
	if n-1 > len(primes) {
		return nil, errors.Errorf("primorial number %d needs %d primes, table has %d", n, n-1, len(primes))
	}
	p := big.NewInt(1)
	f := new(big.Int)
	for i := 1; i < n; i++ {
		p.Mul(p, f.SetUint64(primes[i-1]))
	}
	return p, nil
}

// ModularInverses computes a^-1 mod m for every modulus m, with 0 stored
// where the inverse does not exist (gcd(a, m) > 1).
func ModularInverses(a *big.Int, moduli []uint64) []uint64 {
	inverses := make([]uint64, len(moduli))
	m := new(big.Int)
	inv := new(big.Int)
	for i, p := range moduli {
		m.SetUint64(p)
		if inv.ModInverse(a, m) != nil {
			inverses[i] = inv.Uint64()
		}
	}
	return inverses
}

// PRPTester runs base-2 Fermat tests, reusing its scratch integers across
// calls so hot loops do not allocate per candidate.
type PRPTester struct {
	e, r big.Int
}

// IsProbablePrime reports whether 2^(n-1) == 1 (mod n). A passing composite
// (base-2 Fermat pseudoprime) is possible; strong results must be re-verified
// with a proper test before any primality claim.
func (t *PRPTester) IsProbablePrime(n *big.Int) bool {
	if n.Sign() <= 0 || n.Cmp(one) == 0 {
		return false
	}
	t.e.Sub(n, one)
	return t.r.Exp(two, &t.e, n).Cmp(one) == 0
}

// FermatPRP is the allocation-per-call form of PRPTester.IsProbablePrime.
func FermatPRP(n *big.Int) bool {
	var t PRPTester
	return t.IsProbablePrime(n)
}
