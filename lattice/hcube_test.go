package lattice

import (
	"errors"
	"sync"
	"testing"

	"github.com/notargets/golattice/shuffle"
	"github.com/notargets/golattice/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/combin"
)

var testSizes = []Coords{
	{1},
	{7},
	{4, 4},
	{3, 5, 2},
	{2, 2, 2, 4},
	{10, 4, 9, 12},
	{1, 1, 6, 1},
}

func TestHCubeRoundTrip(t *testing.T) {
	for _, sizes := range testSizes {
		var (
			periodic = AllDimensions(len(sizes))
			hashed   = NewHCube[GlbSite](sizes, periodic, Hashed)
			computed = NewHCube[GlbSite](sizes, periodic, NotHashed)
		)
		assert.Equal(t, GlbSite(sizes.ProdAll()), hashed.Vol)
		assert.Equal(t, hashed.Vol/2, hashed.VolH)
		assert.Equal(t, Hashed, hashed.HashMode())
		assert.Equal(t, NotHashed, computed.HashMode())
		for lx := GlbSite(0); lx < hashed.Vol; lx++ {
			c := hashed.ComputeCoordsOfLx(lx)
			assert.Equal(t, lx, hashed.ComputeLxOfCoords(c))
			// Both strategies return the same coordinates
			assert.Equal(t, c, hashed.CoordsOfLx(lx))
			assert.Equal(t, c, computed.CoordsOfLx(lx))
			// Row major order, last direction fastest
			assert.Equal(t, []int(c), combin.SubFor(nil, int(lx), sizes))
			assert.Equal(t, int(lx), combin.IdxFor(c, sizes))
		}
	}
}

func TestHCubeCoordsTable(t *testing.T) {
	hc := NewHCube[LocSite](Coords{3, 2}, AllDimensions(2), NotHashed)
	assert.Equal(t, []Coords{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 0}, {2, 1}}, hc.ComputeCoordsOfAllLx())
	// The hashed table can not be clobbered by appending to a result
	hashed := NewHCube[LocSite](Coords{3, 2}, AllDimensions(2), Hashed, WithWorkers(4))
	c := hashed.CoordsOfLx(0)
	_ = append(c, 42)
	assert.Equal(t, Coords{0, 1}, hashed.CoordsOfLx(1))
}

func TestHCubeVolumes(t *testing.T) {
	{ // Fully periodic box is all bulk
		hc := NewHCube[GlbSite](Coords{4, 3, 1}, AllDimensions(3), NotHashed)
		assert.True(t, hc.HasBulk)
		assert.Equal(t, GlbSite(12), hc.BulkVol)
		assert.Equal(t, GlbSite(0), hc.SurfVol())
	}
	{ // Open directions lose their two border layers
		hc := NewHCube[GlbSite](Coords{4, 5, 6}, Coords{1, 0, 0}, NotHashed)
		assert.True(t, hc.HasBulk)
		assert.Equal(t, GlbSite(4*3*4), hc.BulkVol)
		assert.Equal(t, hc.Vol, hc.BulkVol+hc.SurfVol())
	}
	{ // An open direction of size one has no bulk
		hc := NewHCube[GlbSite](Coords{4, 3, 1}, Coords{1, 0, 0}, NotHashed)
		assert.False(t, hc.HasBulk)
		assert.Equal(t, GlbSite(0), hc.BulkVol)
		assert.Equal(t, GlbSite(12), hc.SurfVol())
	}
	for _, sizes := range testSizes {
		for _, periodic := range []Coords{AllDimensions(len(sizes)), NoDimensions(len(sizes))} {
			hc := NewHCube[LocSite](sizes, periodic, NotHashed)
			assert.Equal(t, LocSite(sizes.ProdAll()), hc.Vol)
			assert.Equal(t, hc.Vol, hc.BulkVol+hc.SurfVol())
		}
	}
	{ // Empty box
		hc := NewHCube[LocSite](Coords{3, 0}, AllDimensions(2), Hashed)
		assert.Equal(t, LocSite(0), hc.Vol)
		assert.Empty(t, hc.ComputeCoordsOfAllLx())
	}
	assert.Panics(t, func() { NewHCube[LocSite](Coords{3, 2}, Coords{1}, NotHashed) })
	assert.Panics(t, func() { NewHCube[LocSite](Coords{3, -2}, Coords{1, 1}, NotHashed) })
}

func TestHCubeChecked(t *testing.T) {
	hc := NewHCube[LocSite](Coords{3, 4}, AllDimensions(2), Hashed)
	{
		c, err := hc.CheckedCoordsOfLx(5)
		require.NoError(t, err)
		assert.Equal(t, Coords{1, 1}, c)
		lx, err := hc.CheckedLxOfCoords(Coords{2, 3})
		require.NoError(t, err)
		assert.Equal(t, LocSite(11), lx)
		assert.True(t, hc.Contains(Coords{2, 3}))
		assert.False(t, hc.Contains(Coords{3, 0}))
	}
	{
		_, err := hc.CheckedCoordsOfLx(12)
		assert.ErrorIs(t, err, shuffle.ErrIndexOutOfRange)
		_, err = hc.CheckedCoordsOfLx(-1)
		assert.ErrorIs(t, err, shuffle.ErrIndexOutOfRange)
		_, err = hc.CheckedLxOfCoords(Coords{1, 4})
		var oor *shuffle.IndexOutOfRangeError
		require.True(t, errors.As(err, &oor))
		assert.Equal(t, shuffle.IndexOutOfRangeError{Element: 1, Value: 4, N: 4}, *oor)
		_, err = hc.CheckedLxOfCoords(Coords{1})
		assert.Error(t, err)
	}
}

func TestHCubeConcurrentReaders(t *testing.T) {
	hc := NewHCube[LocSite](Coords{6, 5, 4}, AllDimensions(3), Hashed)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for lx := LocSite(0); lx < hc.Vol; lx++ {
				if hc.ComputeLxOfCoords(hc.CoordsOfLx(lx)) != lx {
					t.Errorf("round trip failed at %d", lx)
				}
			}
		}()
	}
	wg.Wait()
}

func TestHCubeAllocator(t *testing.T) {
	mm := utils.NewMemoryManager()
	hc := NewHCube[LocSite](Coords{4, 4}, AllDimensions(2), Hashed, WithAllocator(mm))
	assert.Equal(t, 1, mm.InUse())
	assert.Equal(t, Coords{3, 2}, hc.CoordsOfLx(14))
	hc.Release()
	assert.Equal(t, 0, mm.InUse())
	// Releasing a grid without table is a no-op
	NewHCube[LocSite](Coords{4, 4}, AllDimensions(2), NotHashed, WithAllocator(mm)).Release()
	assert.Equal(t, 0, mm.InUse())
}
