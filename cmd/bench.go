/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/notargets/golattice/InputParameters"
	"github.com/notargets/golattice/lattice"
	"github.com/notargets/golattice/utils"
	"github.com/spf13/cobra"
)

// BenchCmd represents the bench command
var BenchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Compare the cost of walking the local lattice in each site order",
	Long: `
Visits every local site together with its forward neighbours, walking the sites
in lexicographic, Lebesgue and even/odd order. Cache misses are read from the
hardware counters when the kernel allows it, wall clock time otherwise.

golattice bench -s 32,32,32,32 -r 1,1,2,2 --sweeps 4`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			lp     *InputParameters.LatticeParameters
			sweeps int
		)
		if lp, err = processInput(cmd); err != nil {
			return
		}
		if sweeps, err = cmd.Flags().GetInt("sweeps"); err != nil {
			return
		}
		prof, err := startProfile(cmd)
		if err != nil {
			return
		}
		defer prof.Stop()
		return RunBench(cmd.OutOrStdout(), lp, sweeps)
	},
}

func init() {
	rootCmd.AddCommand(BenchCmd)
	BenchCmd.Flags().Int("sweeps", 3, "number of sweeps over the local lattice per ordering")
}

// traversal is an ordering of the local sites.
type traversal struct {
	Name  string
	Order []lattice.LocSite
}

// benchResult of one traversal. CacheMisses is valid when Counted is set.
type benchResult struct {
	Name        string
	Elapsed     time.Duration
	CacheMisses uint64
	Counted     bool
	Sum         float64
}

func RunBench(w io.Writer, lp *InputParameters.LatticeParameters, sweeps int) (err error) {
	var results []benchResult
	if results, err = runBenchmarks(lp, sweeps); err != nil {
		return
	}
	for _, r := range results {
		if r.Counted {
			fmt.Fprintf(w, "%-12s %12v %14d cache misses\n", r.Name, r.Elapsed, r.CacheMisses)
		} else {
			fmt.Fprintf(w, "%-12s %12v\n", r.Name, r.Elapsed)
		}
	}
	return
}

func runBenchmarks(lp *InputParameters.LatticeParameters, sweeps int) (results []benchResult, err error) {
	var (
		mm   = utils.NewMemoryManager()
		opts = latticeOptions(lp, mm)
		g    *lattice.Geometry
		eo   *lattice.EvenOddSplitter
		leb  *lattice.HCubeIndexer[lattice.LebSite, lattice.LocSite]
	)
	if g, err = lattice.NewGeometry(lp.GlobalSizes, lp.RankSizes, opts...); err != nil {
		return
	}
	defer g.Release()
	if eo, err = lattice.NewEvenOddSplitter(g); err != nil {
		return
	}
	defer eo.Release()
	if leb, err = lattice.NewLebesgueIndexer(g.LocGrid, opts...); err != nil {
		return
	}
	defer leb.Release()
	var (
		vol    = int(g.LocVol())
		neighs = forwardNeighbours(g.LocGrid)
		field  = utils.Provide[float64](mm, vol)
		lexi   = make([]lattice.LocSite, vol)
	)
	defer utils.Release(mm, field)
	for loc := range field {
		field[loc] = float64(loc % 17)
		lexi[loc] = lattice.LocSite(loc)
	}
	for _, tr := range []traversal{
		{"lexicographic", lexi},
		{"lebesgue", leb.LxOfId.Table()},
		{"even/odd", eo.LocOfParEos().Table()},
	} {
		var (
			r   = benchResult{Name: tr.Name}
			run = func() error {
				for s := 0; s < sweeps; s++ {
					r.Sum += sweep(tr.Order, neighs, field, g.NDims())
				}
				return nil
			}
		)
		start := time.Now()
		if r.CacheMisses, r.Counted, err = countCacheMisses(run); err != nil {
			return
		}
		r.Elapsed = time.Since(start)
		results = append(results, r)
	}
	return
}

// forwardNeighbours tabulates the forward neighbour of every site along
// every direction, wrapping around the box.
func forwardNeighbours(hc *lattice.HCube[lattice.LocSite]) (neighs []lattice.LocSite) {
	nDims := hc.NDims()
	neighs = make([]lattice.LocSite, int(hc.Vol)*nDims)
	for loc := lattice.LocSite(0); loc < hc.Vol; loc++ {
		c := hc.CoordsOfLx(loc).Copy()
		for mu := 0; mu < nDims; mu++ {
			orig := c[mu]
			c[mu] = (orig + 1) % hc.Sizes[mu]
			neighs[int(loc)*nDims+mu] = hc.ComputeLxOfCoords(c)
			c[mu] = orig
		}
	}
	return
}

func sweep(order, neighs []lattice.LocSite, field []float64, nDims int) (sum float64) {
	for _, loc := range order {
		v := field[loc]
		for mu := 0; mu < nDims; mu++ {
			sum += v * field[neighs[int(loc)*nDims+mu]]
		}
	}
	return
}
