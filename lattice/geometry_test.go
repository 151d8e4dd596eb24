package lattice

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/notargets/golattice/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometryDecomposition(t *testing.T) {
	{ // Rank grid dividing every direction
		g, err := NewGeometry(Coords{10, 4, 9, 12}, Coords{1, 1, 1, 2})
		require.NoError(t, err)
		assert.Equal(t, Coords{10, 4, 9, 6}, g.LocSizes())
		assert.Equal(t, LocSite(2160), g.LocVol())
		assert.Equal(t, LocSite(1080), g.LocVolH())
		assert.Equal(t, GlbSite(4320), g.GlbVol())
		assert.Equal(t, Rank(2), g.NRanks())
		assert.Equal(t, Coords{1, 1, 1, 0}, g.IsDirectionFullyLocal)
		assert.Equal(t, g.IsDirectionFullyLocal, g.LocGrid.Periodic)
		assert.Equal(t, AllDimensions(4), g.GlbGrid.Periodic)
		assert.Equal(t, NotHashed, g.GlbGrid.HashMode())
		assert.Equal(t, Hashed, g.LocGrid.HashMode())
		assert.Equal(t, Hashed, g.RanksGrid.HashMode())
	}
	{ // 12 is not a multiple of 5
		_, err := NewGeometry(Coords{10, 4, 9, 12}, Coords{1, 1, 1, 5})
		assert.ErrorIs(t, err, ErrIncompatibleDecomposition)
	}
	{ // Malformed inputs
		for _, tc := range [][2]Coords{
			{{}, {}},
			{{4, 4}, {1}},
			{{4, 0}, {1, 1}},
			{{4, 4}, {1, 0}},
			{{4, -4}, {1, -1}},
		} {
			_, err := NewGeometry(tc[0], tc[1])
			assert.ErrorIs(t, err, ErrIncompatibleDecomposition, "sizes %v ranks %v", tc[0], tc[1])
		}
	}
	{ // Local volume 9 has no even/odd split
		_, err := NewGeometry(Coords{3, 3}, Coords{1, 1})
		assert.ErrorIs(t, err, ErrOddLocalVolume)
		_, err = NewGeometry(Coords{6, 3}, Coords{2, 1})
		assert.ErrorIs(t, err, ErrOddLocalVolume)
		assert.Panics(t, func() { MustNewGeometry(Coords{3, 3}, Coords{1, 1}) })
	}
	{ // This rank must be part of the rank grid
		_, err := NewGeometry(Coords{4, 4}, Coords{2, 1}, WithRank(FixedRank(2)))
		assert.ErrorIs(t, err, ErrIncompatibleDecomposition)
		_, err = NewGeometry(Coords{4, 4}, Coords{2, 1}, WithRank(FixedRank(-1)))
		assert.ErrorIs(t, err, ErrIncompatibleDecomposition)
	}
}

func TestGeometryParity(t *testing.T) {
	g := MustNewGeometry(Coords{4, 4, 4, 4}, Coords{2, 2, 2, 1}, WithWorkers(3))
	assert.Equal(t, Coords{2, 2, 2, 4}, g.LocSizes())
	assert.Equal(t, LocSite(32), g.LocVol())
	mu, err := g.FastestLocalEvenDimension()
	require.NoError(t, err)
	assert.Equal(t, 3, mu)
	{ // Half of the sites of each parity
		even, odd := g.SitesOfParity(Even), g.SitesOfParity(Odd)
		assert.Equal(t, uint64(16), even.GetCardinality())
		assert.Equal(t, uint64(16), odd.GetCardinality())
		assert.False(t, even.Intersects(odd))
		assert.True(t, even.Contains(0))
		assert.True(t, odd.Contains(1))
	}
	{ // Table agrees with the computation
		for loc := LocSite(0); loc < g.LocVol(); loc++ {
			c := g.LocCoordsOfLocLx(loc)
			assert.Equal(t, Parity(c.SumAll()%2), g.ParityOfLocLx(loc))
			assert.Equal(t, g.ComputeParityOfLocLx(loc), g.ParityOfLocLx(loc))
			assert.Equal(t, loc, g.ComputeLxOfLocCoords(c))
		}
		for glb := GlbSite(0); glb < g.GlbVol(); glb++ {
			assert.Equal(t, Parity(g.GlbGrid.ComputeCoordsOfLx(glb).SumAll()%2), g.ParityOfGlbLx(glb))
		}
	}
	{ // Parity box along a direction
		pg := g.ParityGrid(2)
		assert.Equal(t, Coords{1, 1, 2, 1}, pg.Sizes)
		assert.Equal(t, Parity(2), pg.Vol)
	}
	{ // A rank with an odd origin flips the parity of its sites
		g2 := MustNewGeometry(Coords{6, 4}, Coords{2, 1}, WithRank(FixedRank(1)))
		assert.Equal(t, Coords{3, 4}, g2.LocSizes())
		assert.Equal(t, Coords{3, 0}, g2.GlbCoordsOfLocLx(0))
		assert.Equal(t, Odd, g2.ParityOfLocLx(0))
		assert.Equal(t, uint64(6), g2.SitesOfParity(Odd).GetCardinality())
	}
}

func TestGeometryRanks(t *testing.T) {
	g := MustNewGeometry(Coords{4, 4, 4, 4}, Coords{2, 2, 2, 1}, WithRank(FixedRank(3)))
	assert.Equal(t, Rank(3), g.ThisRank())
	assert.Equal(t, Rank(8), g.NRanks())
	assert.Equal(t, Coords{0, 1, 1, 0}, g.RankCoords(3))
	{ // Local sites offset by the origin of the rank box
		assert.Equal(t, Coords{0, 2, 2, 0}, g.GlbCoordsOfLocLx(0))
		assert.Equal(t, Coords{1, 3, 3, 3}, g.GlbCoordsOfLocLx(g.LocVol()-1))
		assert.Equal(t, Coords{0, 0, 0, 0}, g.GlbCoordsOfLocLxOnRank(0, 0))
		assert.Equal(t, GlbSite(2*16+2*4), g.GlbLxOfLocLx(0, 3))
	}
	{ // Every global site is found on exactly one rank
		seen := make([]int, g.GlbVol())
		for rank := Rank(0); rank < g.NRanks(); rank++ {
			for loc := LocSite(0); loc < g.LocVol(); loc++ {
				glb := g.GlbLxOfLocLx(loc, rank)
				seen[glb]++
				r, l := g.LocateGlbCoords(g.GlbCoordsOfLocLxOnRank(loc, rank))
				assert.Equal(t, rank, r)
				assert.Equal(t, loc, l)
			}
		}
		for glb := range seen {
			assert.Equal(t, 1, seen[glb], "global site %d", glb)
		}
	}
	{ // Coordinates wrap around the torus
		r, l := g.LocateGlbCoords(Coords{-1, 4, 5, -4})
		assert.Equal(t, Rank(4), r)
		assert.Equal(t, g.ComputeLxOfLocCoords(Coords{1, 0, 1, 0}), l)
	}
	{ // Backward neighbours first, then forward ones
		assert.Equal(t, []Rank{4, 2, 1, 0, 4, 2, 1, 0}, g.RankNeighbours(0))
		assert.Equal(t, []Rank{7, 1, 2, 3, 7, 1, 2, 3}, g.RankNeighs)
	}
	{ // Neighbours on a rank grid wider than two
		g3 := MustNewGeometry(Coords{6, 2}, Coords{3, 1})
		assert.Equal(t, []Rank{2, 0, 1, 0}, g3.RankNeighbours(0))
		assert.Equal(t, []Rank{1, 2, 0, 2}, g3.RankNeighbours(2))
	}
}

func TestGeometryLoggingAndRelease(t *testing.T) {
	var (
		buf    bytes.Buffer
		logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		mm     = utils.NewMemoryManager()
	)
	g := MustNewGeometry(Coords{8, 8}, Coords{2, 2}, WithLogger(logger), WithAllocator(mm))
	assert.Contains(t, buf.String(), "geometry built")
	assert.Contains(t, buf.String(), "locSizes={4,4}")
	// Rank grid coordinates, local coordinates and parities
	assert.Equal(t, 3, mm.InUse())
	g.Release()
	assert.Equal(t, 0, mm.InUse())
	assert.Contains(t, g.String(), "local {4,4}")
}
