package lattice

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/notargets/golattice/utils"
)

// Geometry decomposes a periodic global lattice over a grid of ranks, each
// rank holding an identical local box of sites.
//
// The global grid is not hashed, since a rank only ever visits its own
// sites, while the rank and local grids tabulate their coordinates. The
// local grid is periodic only in the directions not split among ranks.
type Geometry struct {
	GlbGrid               *HCube[GlbSite]
	RanksGrid             *HCube[Rank]
	LocGrid               *HCube[LocSite]
	IsDirectionFullyLocal Coords // 1 where a single rank spans the direction
	RankNeighs            []Rank // Neighbours of this rank, see RankNeighbours

	thisRank    Rank
	parityTable []Parity
	cfg         config
}

// NewGeometry builds the decomposition of a lattice of glbSizes over a rank
// grid of ranksSizes. It fails with ErrIncompatibleDecomposition unless
// every global size is a positive multiple of the rank grid size, and with
// ErrOddLocalVolume when the local box can not be split in even and odd
// sites.
func NewGeometry(glbSizes, ranksSizes Coords, opts ...Option) (g *Geometry, err error) {
	var (
		cfg   = newConfig(opts)
		nDims = len(glbSizes)
	)
	if err = checkDecomposition(glbSizes, ranksSizes); err != nil {
		return
	}
	locSizes := glbSizes.Div(ranksSizes)
	if locVol := locSizes.ProdAll(); locVol%2 != 0 {
		err = fmt.Errorf("%w, is %d", ErrOddLocalVolume, locVol)
		return
	}
	g = &Geometry{
		IsDirectionFullyLocal: ranksSizes.EqualScalar(1),
		thisRank:              cfg.rank.ThisRank(),
		cfg:                   cfg,
	}
	g.RanksGrid = NewHCube[Rank](ranksSizes, AllDimensions(nDims), Hashed, cfg.options()...)
	if g.thisRank < 0 || g.thisRank >= g.RanksGrid.Vol {
		err = fmt.Errorf("%w: rank %d outside the %d ranks of grid %v",
			ErrIncompatibleDecomposition, g.thisRank, g.RanksGrid.Vol, ranksSizes)
		g.RanksGrid.Release()
		g = nil
		return
	}
	g.GlbGrid = NewHCube[GlbSite](glbSizes, AllDimensions(nDims), NotHashed)
	g.LocGrid = NewHCube[LocSite](locSizes, g.IsDirectionFullyLocal, Hashed, cfg.options()...)
	g.RankNeighs = g.RankNeighbours(g.thisRank)
	g.parityTable = utils.Provide[Parity](cfg.alloc, int(g.LocGrid.Vol))
	_ = utils.ParallelFor(cfg.workers, int(g.LocGrid.Vol), func(lo, hi int) error {
		for loc := lo; loc < hi; loc++ {
			g.parityTable[loc] = g.ComputeParityOfLocLx(LocSite(loc))
		}
		return nil
	})
	cfg.logger.Debug("geometry built",
		"glbSizes", glbSizes.String(),
		"ranksSizes", ranksSizes.String(),
		"locSizes", locSizes.String(),
		"rank", g.thisRank)
	return
}

// MustNewGeometry is NewGeometry panicking on error, for startup code.
func MustNewGeometry(glbSizes, ranksSizes Coords, opts ...Option) *Geometry {
	g, err := NewGeometry(glbSizes, ranksSizes, opts...)
	if err != nil {
		panic(err)
	}
	return g
}

func checkDecomposition(glbSizes, ranksSizes Coords) error {
	switch {
	case len(glbSizes) == 0:
		return fmt.Errorf("%w: no dimensions", ErrIncompatibleDecomposition)
	case len(glbSizes) != len(ranksSizes):
		return fmt.Errorf("%w: global sizes %v and rank sizes %v have different dimensions",
			ErrIncompatibleDecomposition, glbSizes, ranksSizes)
	}
	for mu := range glbSizes {
		if glbSizes[mu] <= 0 || ranksSizes[mu] <= 0 {
			return fmt.Errorf("%w: global sizes %v and rank sizes %v must be positive",
				ErrIncompatibleDecomposition, glbSizes, ranksSizes)
		}
	}
	if glbSizes.Mod(ranksSizes).SumAll() != 0 {
		return fmt.Errorf("%w: global sizes %v, rank sizes %v",
			ErrIncompatibleDecomposition, glbSizes, ranksSizes)
	}
	return nil
}

func (g *Geometry) NDims() int           { return g.GlbGrid.NDims() }
func (g *Geometry) GlbSizes() Coords     { return g.GlbGrid.Sizes }
func (g *Geometry) LocSizes() Coords     { return g.LocGrid.Sizes }
func (g *Geometry) NRanksPerDim() Coords { return g.RanksGrid.Sizes }
func (g *Geometry) GlbVol() GlbSite      { return g.GlbGrid.Vol }
func (g *Geometry) LocVol() LocSite      { return g.LocGrid.Vol }
func (g *Geometry) LocVolH() LocSite     { return g.LocGrid.VolH }
func (g *Geometry) NRanks() Rank         { return g.RanksGrid.Vol }
func (g *Geometry) ThisRank() Rank       { return g.thisRank }

// ParityOfGlbCoords is the parity of the sum of the global coordinates.
func (g *Geometry) ParityOfGlbCoords(c Coords) Parity {
	return Parity(c.SumAll() % 2)
}

func (g *Geometry) ParityOfGlbLx(glb GlbSite) Parity {
	return g.ParityOfGlbCoords(g.GlbGrid.ComputeCoordsOfLx(glb))
}

// ParityOfLocLx looks up the parity of a site of this rank.
func (g *Geometry) ParityOfLocLx(loc LocSite) Parity {
	return g.parityTable[loc]
}

func (g *Geometry) ComputeParityOfLocLx(loc LocSite) Parity {
	return g.ParityOfGlbCoords(g.GlbCoordsOfLocLx(loc))
}

func (g *Geometry) ComputeLxOfLocCoords(c Coords) LocSite {
	return g.LocGrid.ComputeLxOfCoords(c)
}

func (g *Geometry) LocCoordsOfLocLx(loc LocSite) Coords {
	return g.LocGrid.CoordsOfLx(loc)
}

// RankCoords returns the position of a rank in the rank grid.
func (g *Geometry) RankCoords(rank Rank) Coords {
	return g.RanksGrid.CoordsOfLx(rank)
}

// GlbCoordsOfLocLx translates a site of this rank to global coordinates.
func (g *Geometry) GlbCoordsOfLocLx(loc LocSite) Coords {
	return g.GlbCoordsOfLocLxOnRank(loc, g.thisRank)
}

// GlbCoordsOfLocLxOnRank offsets the local coordinates by the origin of the
// rank box, rankCoords*LocSizes.
func (g *Geometry) GlbCoordsOfLocLxOnRank(loc LocSite, rank Rank) Coords {
	return g.LocGrid.CoordsOfLx(loc).Add(g.RankCoords(rank).Mul(g.LocGrid.Sizes))
}

func (g *Geometry) GlbLxOfLocLx(loc LocSite, rank Rank) GlbSite {
	return g.GlbGrid.ComputeLxOfCoords(g.GlbCoordsOfLocLxOnRank(loc, rank))
}

// LocateGlbCoords returns the rank holding a global site and its local
// index there. Coordinates are first wrapped onto the torus.
func (g *Geometry) LocateGlbCoords(c Coords) (rank Rank, loc LocSite) {
	var (
		glbSizes = g.GlbGrid.Sizes
		locSizes = g.LocGrid.Sizes
		wrapped  = make(Coords, len(c))
	)
	for mu := range c {
		wrapped[mu] = ((c[mu] % glbSizes[mu]) + glbSizes[mu]) % glbSizes[mu]
	}
	rank = g.RanksGrid.ComputeLxOfCoords(wrapped.Div(locSizes))
	loc = g.LocGrid.ComputeLxOfCoords(wrapped.Mod(locSizes))
	return
}

// RankNeighbours lists the 2*NDims ranks adjacent to rank on the periodic
// rank grid: entry mu is the backward neighbour along mu, entry NDims+mu
// the forward one. A direction held by a single rank yields rank itself.
func (g *Geometry) RankNeighbours(rank Rank) (neighs []Rank) {
	var (
		nDims = g.NDims()
		rc    = g.RankCoords(rank)
		sizes = g.RanksGrid.Sizes
	)
	neighs = make([]Rank, 2*nDims)
	for mu := 0; mu < nDims; mu++ {
		for ori, step := range [2]int{-1, +1} {
			nc := rc.Copy()
			nc[mu] = (nc[mu] + step + sizes[mu]) % sizes[mu]
			neighs[ori*nDims+mu] = g.RanksGrid.ComputeLxOfCoords(nc)
		}
	}
	return
}

// ParityGrid returns the 1x..x2x..x1 box pairing an even and an odd site
// along mu.
func (g *Geometry) ParityGrid(mu int) *HCube[Parity] {
	nDims := g.NDims()
	return NewHCube[Parity](Versor(nDims, mu).Add(AllDimensions(nDims)), AllDimensions(nDims), NotHashed)
}

// FastestLocalEvenDimension returns the last direction, scanning from 0,
// whose local size is even.
func (g *Geometry) FastestLocalEvenDimension() (mu int, err error) {
	if mu = g.LocGrid.Sizes.FastestEvenDimension(); mu == g.NDims() {
		err = fmt.Errorf("%w: local sizes %v", ErrNoEvenDimensionFound, g.LocGrid.Sizes)
	}
	return
}

// SitesOfParity returns the local sites of parity p.
func (g *Geometry) SitesOfParity(p Parity) *roaring.Bitmap {
	bm := roaring.New()
	for loc, par := range g.parityTable {
		if par == p {
			bm.Add(uint32(loc))
		}
	}
	return bm
}

// Release hands every lookup table back to the allocator.
func (g *Geometry) Release() {
	utils.Release(g.cfg.alloc, g.parityTable)
	g.parityTable = nil
	g.LocGrid.Release()
	g.RanksGrid.Release()
}

func (g *Geometry) String() string {
	return fmt.Sprintf("global %v over ranks %v, local %v (volume %d), rank %d of %d",
		g.GlbGrid.Sizes, g.RanksGrid.Sizes, g.LocGrid.Sizes, g.LocGrid.Vol, g.thisRank, g.RanksGrid.Vol)
}
