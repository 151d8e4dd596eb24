package lattice

import (
	"fmt"
)

// LebesgueCalculator maps Lebesgue sites of an HCube to lexicographic
// ones. The sizes are written in a mixed radix, one prime factor per
// digit, and the digits of all the directions are interleaved, so that
// sites close along the curve are close on the lattice whatever the sizes.
//
// The calculator is read only after construction.
type LebesgueCalculator[I Index] struct {
	HCube   *HCube[I]
	factors [][]int // factors[round][mu], padded in front with 1s
}

func NewLebesgueCalculator[I Index](hc *HCube[I]) (lc *LebesgueCalculator[I], err error) {
	var (
		nDims    = hc.NDims()
		perDir   = make([][]int, nDims)
		nFactors int
	)
	for mu, s := range hc.Sizes {
		if s == 0 {
			// empty box, a single factor keeps the table rectangular
			perDir[mu] = []int{0}
		} else if perDir[mu], err = Factorize(s); err != nil {
			err = fmt.Errorf("direction %d of %v: %w", mu, hc.Sizes, err)
			return
		}
		nFactors = max(nFactors, len(perDir[mu]))
	}
	lc = &LebesgueCalculator[I]{
		HCube:   hc,
		factors: make([][]int, nFactors),
	}
	for f := range lc.factors {
		lc.factors[f] = AllDimensions(nDims)
	}
	for mu, facts := range perDir {
		offset := nFactors - len(facts)
		for i, fact := range facts {
			lc.factors[offset+i][mu] = fact
		}
	}
	return
}

func (lc *LebesgueCalculator[I]) NFactors() int { return len(lc.factors) }

// Factors returns a copy of the factor table, one row per round.
func (lc *LebesgueCalculator[I]) Factors() (f [][]int) {
	f = make([][]int, len(lc.factors))
	for i, row := range lc.factors {
		f[i] = append([]int(nil), row...)
	}
	return
}

// CoordsOfLeb extracts the digits of leb round by round, from the fastest
// lexicographic direction to the slowest within a round, then folds the
// digits of each direction back into a coordinate.
func (lc *LebesgueCalculator[I]) CoordsOfLeb(leb LebSite) (c Coords) {
	var (
		nDims    = lc.HCube.NDims()
		nFactors = len(lc.factors)
		digits   = make([]int, nDims*nFactors) // digits[mu*nFactors+round]
		rest     = int64(leb)
	)
	for r := 0; r < nFactors; r++ {
		for k := 0; k < nDims; k++ {
			mu := nDims - 1 - k
			f := int64(lc.factors[r][mu])
			digits[mu*nFactors+r] = int(rest % f)
			rest /= f
		}
	}
	c = make(Coords, nDims)
	for mu := 0; mu < nDims; mu++ {
		for r := nFactors - 1; r >= 0; r-- {
			c[mu] = digits[mu*nFactors+r] + lc.factors[r][mu]*c[mu]
		}
	}
	return
}

func (lc *LebesgueCalculator[I]) LxOfLeb(leb LebSite) I {
	return lc.HCube.ComputeLxOfCoords(lc.CoordsOfLeb(leb))
}

// NewLebesgueIndexer builds the verified Lebesgue <-> lexicographic
// indexer of hc.
func NewLebesgueIndexer[I Index](hc *HCube[I], opts ...Option) (*HCubeIndexer[LebSite, I], error) {
	lc, err := NewLebesgueCalculator(hc)
	if err != nil {
		return nil, err
	}
	return NewIndexerFromLxOfId(hc, lc.LxOfLeb, opts...)
}
