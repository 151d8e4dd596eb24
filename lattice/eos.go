package lattice

import (
	"fmt"

	"github.com/notargets/golattice/shuffle"
)

// EvenOddSplitter labels every local site by its parity and its index
// among the sites of that parity. Pairs of neighbouring sites along Dir
// share the same EosSite, one of them even, the other odd.
type EvenOddSplitter struct {
	Geom     *Geometry
	Dir      int    // Direction halved to pair the sites
	EosSizes Coords // Local sizes with Dir halved
	EosGrid  *HCube[EosSite]

	locOfParEos *shuffle.Shuffler[ParEosSite, LocSite]
	parEosOfLoc *shuffle.Shuffler[LocSite, ParEosSite]
}

// NewEvenOddSplitter splits the local lattice of g along its fastest even
// direction.
func NewEvenOddSplitter(g *Geometry) (eo *EvenOddSplitter, err error) {
	var dir int
	if dir, err = g.FastestLocalEvenDimension(); err != nil {
		return
	}
	eosSizes := g.LocSizes().Copy()
	eosSizes[dir] /= 2
	eo = &EvenOddSplitter{
		Geom:     g,
		Dir:      dir,
		EosSizes: eosSizes,
		EosGrid:  NewHCube[EosSite](eosSizes, g.LocGrid.Periodic, NotHashed),
	}
	eo.locOfParEos = shuffle.New(int(g.LocVol()), eo.computeLocLxOfParEos, g.cfg.shuffleOptions()...)
	if eo.parEosOfLoc, err = eo.locOfParEos.Transpose(); err != nil {
		eo.locOfParEos.Release()
		eo = nil
		err = fmt.Errorf("even/odd split of local sizes %v: %w", g.LocSizes(), err)
		return
	}
	g.cfg.logger.Debug("even/odd split built", "dir", dir, "eosSizes", eosSizes.String())
	return
}

// computeLxOfParEos finds the two sites of the pair eos, 2c and 2c+1 along
// Dir, and returns the one whose parity is par. The choice is made on the
// computed parity rather than on the position in the pair, which depends
// on the origin of the rank box.
func (eo *EvenOddSplitter) computeLocLxOfParEos(pe ParEosSite) LocSite {
	var (
		volH = ParEosSite(eo.Geom.LocVolH())
		par  = Parity(pe / volH)
		eos  = EosSite(pe % volH)
		c    = eo.EosGrid.ComputeCoordsOfLx(eos)
	)
	c[eo.Dir] *= 2
	loc := eo.Geom.ComputeLxOfLocCoords(c)
	if eo.Geom.ParityOfLocLx(loc) != par {
		c[eo.Dir]++
		loc = eo.Geom.ComputeLxOfLocCoords(c)
	}
	return loc
}

// ParEosSiteOf combines a parity and an EosSite.
func (eo *EvenOddSplitter) ParEosSiteOf(par Parity, eos EosSite) ParEosSite {
	return ParEosSite(par)*ParEosSite(eo.Geom.LocVolH()) + ParEosSite(eos)
}

// SplitParEosSite is the inverse of ParEosSiteOf.
func (eo *EvenOddSplitter) SplitParEosSite(pe ParEosSite) (par Parity, eos EosSite) {
	volH := ParEosSite(eo.Geom.LocVolH())
	return Parity(pe / volH), EosSite(pe % volH)
}

func (eo *EvenOddSplitter) LocLxOfParEos(par Parity, eos EosSite) LocSite {
	return eo.locOfParEos.At(eo.ParEosSiteOf(par, eos))
}

func (eo *EvenOddSplitter) ParEosOfLocLx(loc LocSite) (par Parity, eos EosSite) {
	return eo.SplitParEosSite(eo.parEosOfLoc.At(loc))
}

// LocOfParEos is the (parity, eos) -> local site shuffler.
func (eo *EvenOddSplitter) LocOfParEos() *shuffle.Shuffler[ParEosSite, LocSite] {
	return eo.locOfParEos
}

// ParEosOfLoc is the local site -> (parity, eos) shuffler.
func (eo *EvenOddSplitter) ParEosOfLoc() *shuffle.Shuffler[LocSite, ParEosSite] {
	return eo.parEosOfLoc
}

// Verify checks both directions and that every site lands on the half of
// its own parity.
func (eo *EvenOddSplitter) Verify() (err error) {
	if err = eo.locOfParEos.Verify(); err != nil {
		return
	}
	if err = eo.parEosOfLoc.Verify(); err != nil {
		return
	}
	for loc := LocSite(0); loc < eo.Geom.LocVol(); loc++ {
		par, _ := eo.ParEosOfLocLx(loc)
		if want := eo.Geom.ParityOfLocLx(loc); par != want {
			return fmt.Errorf("local site %d of parity %v placed among parity %v", loc, want, par)
		}
	}
	return
}

// CountByParity counts the local sites of each parity.
func (eo *EvenOddSplitter) CountByParity() (n [NParity]int64) {
	for loc := LocSite(0); loc < eo.Geom.LocVol(); loc++ {
		par, _ := eo.ParEosOfLocLx(loc)
		n[par]++
	}
	return
}

func (eo *EvenOddSplitter) Release() {
	eo.locOfParEos.Release()
	eo.parEosOfLoc.Release()
}
