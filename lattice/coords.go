// Package lattice decomposes a regular N dimensional toroidal lattice over
// a grid of ranks and provides the index spaces used to traverse it:
// lexicographic order of the global, rank and local grids, the even/odd
// split of the local sites and the Lebesgue (mixed radix Z-order) order.
//
// Every structure is built once, validated at construction and read only
// afterwards, so that it can be shared between goroutines without locks.
package lattice

import (
	"strconv"
	"strings"
)

// Coords holds one integer per lattice direction.
type Coords []int

func NewCoordsAll(nDims, v int) (c Coords) {
	c = make(Coords, nDims)
	for mu := range c {
		c[mu] = v
	}
	return
}

// NewCoordsAllBut is v in every direction but mu, where it is 0.
func NewCoordsAllBut(nDims, v, mu int) (c Coords) {
	c = NewCoordsAll(nDims, v)
	c[mu] = 0
	return
}

func Versor(nDims, mu int) (c Coords) {
	c = make(Coords, nDims)
	c[mu] = 1
	return
}

func AllDimensions(nDims int) Coords { return NewCoordsAll(nDims, 1) }
func NoDimensions(nDims int) Coords  { return NewCoordsAll(nDims, 0) }

func (c Coords) Copy() (r Coords) {
	r = make(Coords, len(c))
	copy(r, c)
	return
}

func (c Coords) apply(oth Coords, op func(a, b int) int) (r Coords) {
	if len(oth) != len(c) {
		panic("coordinates of different dimensions")
	}
	r = make(Coords, len(c))
	for mu := range c {
		r[mu] = op(c[mu], oth[mu])
	}
	return
}

func (c Coords) applyScalar(v int, op func(a, b int) int) (r Coords) {
	r = make(Coords, len(c))
	for mu := range c {
		r[mu] = op(c[mu], v)
	}
	return
}

func (c Coords) Add(oth Coords) Coords { return c.apply(oth, func(a, b int) int { return a + b }) }
func (c Coords) Sub(oth Coords) Coords { return c.apply(oth, func(a, b int) int { return a - b }) }
func (c Coords) Mul(oth Coords) Coords { return c.apply(oth, func(a, b int) int { return a * b }) }
func (c Coords) Div(oth Coords) Coords { return c.apply(oth, func(a, b int) int { return a / b }) }
func (c Coords) Mod(oth Coords) Coords { return c.apply(oth, func(a, b int) int { return a % b }) }

func (c Coords) AddScalar(v int) Coords { return c.applyScalar(v, func(a, b int) int { return a + b }) }
func (c Coords) SubScalar(v int) Coords { return c.applyScalar(v, func(a, b int) int { return a - b }) }
func (c Coords) MulScalar(v int) Coords { return c.applyScalar(v, func(a, b int) int { return a * b }) }
func (c Coords) DivScalar(v int) Coords { return c.applyScalar(v, func(a, b int) int { return a / b }) }
func (c Coords) ModScalar(v int) Coords { return c.applyScalar(v, func(a, b int) int { return a % b }) }

// EqualScalar is 1 where the entry equals v and 0 elsewhere.
func (c Coords) EqualScalar(v int) Coords {
	return c.applyScalar(v, func(a, b int) int {
		if a == b {
			return 1
		}
		return 0
	})
}

func (c Coords) Equal(oth Coords) bool {
	if len(c) != len(oth) {
		return false
	}
	for mu := range c {
		if c[mu] != oth[mu] {
			return false
		}
	}
	return true
}

func (c Coords) SumAll() (sum int) {
	for _, v := range c {
		sum += v
	}
	return
}

func (c Coords) ProdAll() (prod int) {
	prod = 1
	for _, v := range c {
		prod *= v
	}
	return
}

// FastestEvenDimension returns the last direction with an even entry, or
// len(c) if there is none.
func (c Coords) FastestEvenDimension() (res int) {
	res = len(c)
	for mu, v := range c {
		if v%2 == 0 {
			res = mu
		}
	}
	return
}

func (c Coords) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for mu, v := range c {
		if mu > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	sb.WriteByte('}')
	return sb.String()
}
