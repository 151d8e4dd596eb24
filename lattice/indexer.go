package lattice

import (
	"github.com/notargets/golattice/shuffle"
)

// HCubeIndexer relabels the sites of an HCube with an index of type Id,
// keeping both lookup directions.
type HCubeIndexer[Id, I Index] struct {
	HCube  *HCube[I]
	IdOfLx *shuffle.Shuffler[I, Id]
	LxOfId *shuffle.Shuffler[Id, I]
}

// NewIndexerFromLxOfId fills the Id -> lexicographic table with f and
// derives the other one by transposition.
func NewIndexerFromLxOfId[Id, I Index](hc *HCube[I], f func(Id) I, opts ...Option) (ix *HCubeIndexer[Id, I], err error) {
	cfg := newConfig(opts)
	ix = &HCubeIndexer[Id, I]{
		HCube:  hc,
		LxOfId: shuffle.New(int(hc.Vol), f, cfg.shuffleOptions()...),
	}
	if ix.IdOfLx, err = ix.LxOfId.Transpose(); err != nil {
		ix.LxOfId.Release()
		ix = nil
	}
	return
}

// NewIndexerFromIdOfLx fills the lexicographic -> Id table with f and
// derives the other one by transposition.
func NewIndexerFromIdOfLx[Id, I Index](hc *HCube[I], f func(I) Id, opts ...Option) (ix *HCubeIndexer[Id, I], err error) {
	cfg := newConfig(opts)
	ix = &HCubeIndexer[Id, I]{
		HCube:  hc,
		IdOfLx: shuffle.New(int(hc.Vol), f, cfg.shuffleOptions()...),
	}
	if ix.LxOfId, err = ix.IdOfLx.Transpose(); err != nil {
		ix.IdOfLx.Release()
		ix = nil
	}
	return
}

func (ix *HCubeIndexer[Id, I]) Verify() error {
	if err := ix.IdOfLx.Verify(); err != nil {
		return err
	}
	return ix.LxOfId.Verify()
}

func (ix *HCubeIndexer[Id, I]) Release() {
	ix.IdOfLx.Release()
	ix.LxOfId.Release()
}
