package lattice

import (
	"github.com/notargets/golattice/utils"
)

// CoordsProvider returns the coordinates of a lexicographic site.
type CoordsProvider[I Index] interface {
	CoordsOfLx(lx I) Coords
}

var (
	_ CoordsProvider[LocSite] = &CachedCoordsProvider[LocSite]{}
	_ CoordsProvider[LocSite] = &ComputedCoordsProvider[LocSite]{}
)

// CachedCoordsProvider tabulates the coordinates of every site in a single
// flat table, nDims entries per site.
type CachedCoordsProvider[I Index] struct {
	nDims int
	table []int
	alloc utils.Allocator
}

func NewCachedCoordsProvider[I Index](hc *HCube[I], opts ...Option) (cp *CachedCoordsProvider[I]) {
	var (
		cfg   = newConfig(opts)
		nDims = hc.NDims()
		vol   = int(hc.Vol)
	)
	cp = &CachedCoordsProvider[I]{
		nDims: nDims,
		table: utils.Provide[int](cfg.alloc, vol*nDims),
		alloc: cfg.alloc,
	}
	_ = utils.ParallelFor(cfg.workers, vol, func(lo, hi int) error {
		for lx := lo; lx < hi; lx++ {
			hc.computeCoordsOfLxInto(cp.table[lx*nDims:(lx+1)*nDims], I(lx))
		}
		return nil
	})
	return
}

// CoordsOfLx returns a view into the table, capped so that appending to it
// can not clobber the next site.
func (cp *CachedCoordsProvider[I]) CoordsOfLx(lx I) Coords {
	i := int(lx) * cp.nDims
	return cp.table[i : i+cp.nDims : i+cp.nDims]
}

func (cp *CachedCoordsProvider[I]) release() {
	utils.Release(cp.alloc, cp.table)
	cp.table = nil
}

// ComputedCoordsProvider recomputes the coordinates on each call.
type ComputedCoordsProvider[I Index] struct {
	hc *HCube[I]
}

func NewComputedCoordsProvider[I Index](hc *HCube[I]) *ComputedCoordsProvider[I] {
	return &ComputedCoordsProvider[I]{hc: hc}
}

func (cp *ComputedCoordsProvider[I]) CoordsOfLx(lx I) Coords {
	return cp.hc.ComputeCoordsOfLx(lx)
}
