package lattice

import "fmt"

var primesBelow100 = [...]int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43,
	47, 53, 59, 61, 67, 71, 73, 79, 83, 89, 97}

// Factorize returns the prime factors of n in increasing order, by trial
// division over the primes below 100 and then over odd numbers. 1 and 2
// are returned as their own single factor.
func Factorize(n int) (factors []int, err error) {
	switch {
	case n <= 0:
		err = fmt.Errorf("%w: %d", ErrInvalidFactorizationInput, n)
		return
	case n <= 2:
		factors = []int{n}
		return
	}
	var (
		ip = 0
		d  = primesBelow100[ip]
	)
	for n != 1 {
		if n%d == 0 {
			factors = append(factors, d)
			n /= d
			continue
		}
		if ip < len(primesBelow100)-1 {
			ip++
			d = primesBelow100[ip]
		} else {
			d += 2
		}
	}
	return
}
