package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatticeParameters(t *testing.T) {
	{ // Full file
		fileInput := []byte(`
Title: Test Case
GlobalSizes: [10, 4, 9, 12]
RankSizes: [1, 1, 1, 2]
Hashed: true
Workers: 3
Rank: 1
SplitCheck: true # Verify the derived index spaces
`)
		var lp LatticeParameters
		require.NoError(t, lp.Parse(fileInput))
		require.NoError(t, lp.Validate())
		assert.Equal(t, "Test Case", lp.Title)
		assert.Equal(t, []int{10, 4, 9, 12}, lp.GlobalSizes)
		assert.Equal(t, []int{1, 1, 1, 2}, lp.RankSizes)
		assert.Equal(t, []int{1, 1, 1, 1}, lp.Periodic)
		assert.True(t, lp.Hashed)
		assert.Equal(t, 3, lp.Workers)
		assert.Equal(t, 1, lp.Rank)
		assert.True(t, lp.SplitCheck)
		assert.Contains(t, lp.String(), "[10 4 9 12]\t\t= Global Sizes")
		lp.Print()
	}
	{ // Omitted rank sizes
		var lp LatticeParameters
		require.NoError(t, lp.Parse([]byte("GlobalSizes: [4, 4]\nPeriodic: [1, 0]\n")))
		require.NoError(t, lp.Validate())
		assert.Equal(t, []int{1, 1}, lp.RankSizes)
		assert.Equal(t, []int{1, 0}, lp.Periodic)
		assert.False(t, lp.Hashed)
	}
	{ // Rejected files
		for _, data := range []string{
			"Title: empty\n",
			"GlobalSizes: [4, 4]\nRankSizes: [2]\n",
			"GlobalSizes: [4, 0]\n",
			"GlobalSizes: [4, 4]\nPeriodic: [1, 2]\n",
			"GlobalSizes: [4, 4]\nWorkers: -1\n",
			"GlobalSizes: [4, 4]\nRank: -2\n",
		} {
			var lp LatticeParameters
			require.NoError(t, lp.Parse([]byte(data)))
			assert.Error(t, lp.Validate(), data)
		}
		var lp LatticeParameters
		assert.Error(t, lp.Parse([]byte("GlobalSizes: four\n")))
	}
}
