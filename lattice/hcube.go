package lattice

import (
	"fmt"

	"github.com/notargets/golattice/shuffle"
)

// HashMode selects how an HCube answers CoordsOfLx. It changes the cost of
// the call, never its result.
type HashMode uint8

const (
	NotHashed HashMode = iota // Coordinates are recomputed on each call
	Hashed                    // Coordinates of all sites are tabulated at construction
)

func (hm HashMode) String() string {
	switch hm {
	case Hashed:
		return "hashed"
	case NotHashed:
		return "not hashed"
	}
	return fmt.Sprintf("HashMode(%d)", uint8(hm))
}

// HCube is a rectangular box of sites, labeled lexicographically with the
// first direction running slowest.
type HCube[I Index] struct {
	Sizes    Coords
	Periodic Coords // 1 for the directions that wrap around, 0 otherwise
	Vol      I
	VolH     I // Half the volume, rounded down
	HasBulk  bool
	BulkVol  I
	hashMode HashMode
	coords   CoordsProvider[I]
}

func NewHCube[I Index](sizes, periodic Coords, hm HashMode, opts ...Option) (hc *HCube[I]) {
	if len(sizes) != len(periodic) {
		panic(fmt.Sprintf("sizes %v and periodicity %v have different dimensions", sizes, periodic))
	}
	for mu, s := range sizes {
		if s < 0 {
			panic(fmt.Sprintf("negative size %d in direction %d", s, mu))
		}
	}
	hc = &HCube[I]{
		Sizes:    sizes.Copy(),
		Periodic: periodic.Copy(),
		hashMode: hm,
	}
	hc.Vol = hc.computeVol()
	hc.VolH = hc.Vol / 2
	hc.HasBulk = hc.computeHasBulk()
	hc.BulkVol = hc.computeBulkVol()
	switch hm {
	case Hashed:
		hc.coords = NewCachedCoordsProvider(hc, opts...)
	default:
		hc.coords = NewComputedCoordsProvider(hc)
	}
	return
}

func (hc *HCube[I]) NDims() int { return len(hc.Sizes) }

func (hc *HCube[I]) HashMode() HashMode { return hc.hashMode }

func (hc *HCube[I]) computeVol() (vol I) {
	vol = 1
	for _, s := range hc.Sizes {
		vol *= I(s)
	}
	return
}

// computeHasBulk requires each direction to be periodic or at least 2 wide
func (hc *HCube[I]) computeHasBulk() bool {
	for mu, s := range hc.Sizes {
		if hc.Periodic[mu] == 0 && s < 2 {
			return false
		}
	}
	return true
}

// computeBulkVol excludes the two border layers of the open directions
func (hc *HCube[I]) computeBulkVol() (bulk I) {
	bulk = 1
	for mu, s := range hc.Sizes {
		if hc.Periodic[mu] != 0 {
			bulk *= I(s)
		} else {
			bulk *= I(max(s-2, 0))
		}
	}
	return
}

// SurfVol is the number of sites outside the bulk.
func (hc *HCube[I]) SurfVol() I {
	return hc.Vol - hc.BulkVol
}

// ComputeLxOfCoords returns sum_mu c[mu]*prod_{nu>mu} Sizes[nu].
func (hc *HCube[I]) ComputeLxOfCoords(c Coords) (lx I) {
	for mu, s := range hc.Sizes {
		lx = lx*I(s) + I(c[mu])
	}
	return
}

// ComputeCoordsOfLx is the inverse of ComputeLxOfCoords for lx in [0, Vol).
func (hc *HCube[I]) ComputeCoordsOfLx(lx I) (c Coords) {
	c = make(Coords, len(hc.Sizes))
	hc.computeCoordsOfLxInto(c, lx)
	return
}

func (hc *HCube[I]) computeCoordsOfLxInto(c []int, lx I) {
	for mu := len(hc.Sizes) - 1; mu >= 0; mu-- {
		s := I(hc.Sizes[mu])
		c[mu] = int(lx % s)
		lx /= s
	}
}

func (hc *HCube[I]) ComputeCoordsOfAllLx() (all []Coords) {
	all = make([]Coords, hc.Vol)
	for lx := range all {
		all[lx] = hc.ComputeCoordsOfLx(I(lx))
	}
	return
}

// CoordsOfLx returns the coordinates of lx through the provider chosen at
// construction. The result must not be modified.
func (hc *HCube[I]) CoordsOfLx(lx I) Coords {
	return hc.coords.CoordsOfLx(lx)
}

// Contains reports whether c lies inside the box.
func (hc *HCube[I]) Contains(c Coords) bool {
	if len(c) != len(hc.Sizes) {
		return false
	}
	for mu, s := range hc.Sizes {
		if c[mu] < 0 || c[mu] >= s {
			return false
		}
	}
	return true
}

// CheckedCoordsOfLx is CoordsOfLx failing with a
// *shuffle.IndexOutOfRangeError when lx is outside [0, Vol).
func (hc *HCube[I]) CheckedCoordsOfLx(lx I) (Coords, error) {
	if lx < 0 || lx >= hc.Vol {
		return nil, &shuffle.IndexOutOfRangeError{Element: int64(lx), Value: int64(lx), N: int64(hc.Vol)}
	}
	return hc.CoordsOfLx(lx), nil
}

// CheckedLxOfCoords is ComputeLxOfCoords failing with a
// *shuffle.IndexOutOfRangeError naming the first direction out of range.
func (hc *HCube[I]) CheckedLxOfCoords(c Coords) (lx I, err error) {
	if len(c) != len(hc.Sizes) {
		err = fmt.Errorf("coordinates %v do not match the %d dimensions of the grid", c, len(hc.Sizes))
		return
	}
	for mu, s := range hc.Sizes {
		if c[mu] < 0 || c[mu] >= s {
			err = &shuffle.IndexOutOfRangeError{Element: int64(mu), Value: int64(c[mu]), N: int64(s)}
			return
		}
	}
	lx = hc.ComputeLxOfCoords(c)
	return
}

// Release hands the coordinate table of a hashed grid back to its
// allocator. The grid must not be used afterwards.
func (hc *HCube[I]) Release() {
	if cp, ok := hc.coords.(*CachedCoordsProvider[I]); ok {
		cp.release()
	}
}

func (hc *HCube[I]) String() string {
	return fmt.Sprintf("sizes = %v periodic = %v vol = %d bulk = %d (%s)",
		hc.Sizes, hc.Periodic, hc.Vol, hc.BulkVol, hc.hashMode)
}
