// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sfdd

import "math/big"

// Bucket counts for the weak unique tables are kept prime so that a hash
// modulo the bucket count doesn't inherit clustering from the low bits of a
// pointer-derived hash the way a power-of-two modulus would.

var smallOddPrimes = []int{3, 5, 7, 11, 13, 17, 19, 23}

// hasSmallFactor reports whether n has a proper factor among smallOddPrimes,
// letting the search reject common composites before paying for a
// Miller-Rabin round.
func hasSmallFactor(n int) bool {
	for _, p := range smallOddPrimes {
		if n != p && n%p == 0 {
			return true
		}
	}
	return false
}

func isPrime(n int) bool {
	switch {
	case n < 2:
		return false
	case n == 2:
		return true
	case n%2 == 0:
		return false
	case hasSmallFactor(n):
		return false
	}
	// ProbablyPrime is exact for every input below 2^64.
	return big.NewInt(int64(n)).ProbablyPrime(0)
}

// primeGTE returns the smallest prime at least as large as n.
func primeGTE(n int) int {
	if n <= 2 {
		return 2
	}
	if n%2 == 0 {
		n++
	}
	for !isPrime(n) {
		n += 2
	}
	return n
}

// primeLTE returns the largest prime at most n, or 1 if n < 2.
func primeLTE(n int) int {
	if n < 2 {
		return 1
	}
	if n == 2 {
		return 2
	}
	if n%2 == 0 {
		n--
	}
	for n > 2 && !isPrime(n) {
		n -= 2
	}
	return n
}
