package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	var (
		lo, hi int
		err    error
	)
	// Range parsing
	{
		for _, tc := range []struct {
			expr   string
			lo, hi int
		}{
			{":", 0, 10},
			{"", 0, 10},
			{":5", 0, 5},
			{"5:", 5, 10},
			{"2:7", 2, 7},
			{" 2 : 7 ", 2, 7},
			{"5:5", 5, 5},
			{"2", 2, 3},
			{"end", 9, 10},
			{"-3:", 7, 10},
			{":-2", 0, 8},
			{"-1", 9, 10},
		} {
			lo, hi, err = ParseRange(tc.expr, 10)
			require.NoError(t, err, tc.expr)
			assert.Equal(t, [2]int{tc.lo, tc.hi}, [2]int{lo, hi}, tc.expr)
		}
	}
	// Malformed or out of range expressions
	{
		for _, bad := range []string{"a:3", "1:b", "1:2:3", "4:2", "0:11", "12", "-11:"} {
			_, _, err = ParseRange(bad, 10)
			assert.Error(t, err, bad)
		}
	}
	// Empty index space
	{
		_, _, err = ParseRange("end", 0)
		assert.Error(t, err)
		_, _, err = ParseRange("0", 0)
		assert.Error(t, err)
		lo, hi, err = ParseRange(":", 0)
		require.NoError(t, err)
		assert.Equal(t, [2]int{0, 0}, [2]int{lo, hi})
	}
}
