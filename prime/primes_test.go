package prime

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimes(t *testing.T) {
	tests := []struct {
		name     string
		limit    uint64
		expected []uint64
	}{
		{
			name:     "limit=10",
			limit:    10,
			expected: []uint64{2, 3, 5, 7},
		},
		{
			name:     "limit=30",
			limit:    30,
			expected: []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29},
		},
		{
			name:     "limit=13 inclusive",
			limit:    13,
			expected: []uint64{2, 3, 5, 7, 11, 13},
		},
		{
			name:     "limit=2",
			limit:    2,
			expected: []uint64{2},
		},
		{
			name:     "limit=3",
			limit:    3,
			expected: []uint64{2, 3},
		},
		{
			name:     "limit=1",
			limit:    1,
			expected: nil,
		},
		{
			name:     "limit=0",
			limit:    0,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Primes(tt.limit))
		})
	}
}

func TestPrimesMatchesTrialDivision(t *testing.T) {
	const limit = 200000
	var expected []uint64
	for n := uint64(2); n <= limit; n++ {
		composite := false
		for d := uint64(2); d*d <= n; d++ {
			if n%d == 0 {
				composite = true
				break
			}
		}
		if !composite {
			expected = append(expected, n)
		}
	}
	assert.Equal(t, expected, Primes(limit))
}

func TestPrimesCount(t *testing.T) {
	// pi(10^6) = 78498
	result := Primes(1000000)
	assert.Len(t, result, 78498)
	assert.Equal(t, uint64(999983), result[len(result)-1])
}

func TestPrimorial(t *testing.T) {
	primes := Primes(100)
	tests := []struct {
		n        int
		expected int64
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 6},
		{4, 30},
		{5, 210},
		{10, 223092870},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d", tt.n), func(t *testing.T) {
			p, err := Primorial(primes, tt.n)
			require.NoError(t, err)
			assert.Equal(t, big.NewInt(tt.expected), p)
		})
	}
}

func TestPrimorialTooFewPrimes(t *testing.T) {
	primes := Primes(20) // 8 primes
	_, err := Primorial(primes, 10)
	assert.Error(t, err)
}

func TestModularInverses(t *testing.T) {
	primes := Primes(1000)
	p, err := Primorial(primes, 5) // 210 = 2 * 3 * 5 * 7
	require.NoError(t, err)

	inverses := ModularInverses(p, primes)
	require.Len(t, inverses, len(primes))

	product := new(big.Int)
	m := new(big.Int)
	for i, q := range primes {
		if q == 2 || q == 3 || q == 5 || q == 7 {
			assert.Zero(t, inverses[i], "no inverse mod %d", q)
			continue
		}
		product.Mul(p, new(big.Int).SetUint64(inverses[i]))
		product.Mod(product, m.SetUint64(q))
		assert.Equal(t, int64(1), product.Int64(), "P * P^-1 mod %d", q)
	}
}

func TestFermatPRP(t *testing.T) {
	tests := []struct {
		name     string
		n        int64
		expected bool
	}{
		{"prime 3", 3, true},
		{"prime 5", 5, true},
		{"prime 97", 97, true},
		{"prime 1000003", 1000003, true},
		{"composite 9", 9, false},
		{"composite 15", 15, false},
		{"composite 1000001", 1000001, false},
		{"one", 1, false},
		{"zero", 0, false},
		// Base-2 Fermat pseudoprimes pass; callers re-verify by contract.
		{"pseudoprime 341", 341, true},
		{"pseudoprime 561", 561, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FermatPRP(big.NewInt(tt.n)))
		})
	}
}

func TestFermatPRPLarge(t *testing.T) {
	// 2^127 - 1 is a Mersenne prime.
	m127 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	assert.True(t, FermatPRP(m127))
	assert.False(t, FermatPRP(new(big.Int).Add(m127, big.NewInt(2))))
}

func TestPRPTesterReuse(t *testing.T) {
	var tester PRPTester
	assert.True(t, tester.IsProbablePrime(big.NewInt(101)))
	assert.False(t, tester.IsProbablePrime(big.NewInt(100)))
	assert.True(t, tester.IsProbablePrime(big.NewInt(103)))
}
