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

	"github.com/notargets/golattice/InputParameters"
	"github.com/notargets/golattice/lattice"
	"github.com/notargets/golattice/utils"
	"github.com/spf13/cobra"
)

// GeometryCmd represents the geometry command
var GeometryCmd = &cobra.Command{
	Use:   "geometry",
	Short: "Build and summarize the decomposition of a lattice over ranks",
	Long: `
Builds the decomposition of the global lattice over the rank grid and prints the
local box of the selected rank, its neighbours and its even/odd sites. With
--check the even/odd and Lebesgue orderings are built and verified as well.

golattice geometry -s 10,4,9,12 -r 1,1,1,2 --rank 1 --check`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var lp *InputParameters.LatticeParameters
		if lp, err = processInput(cmd); err != nil {
			return
		}
		prof, err := startProfile(cmd)
		if err != nil {
			return
		}
		defer prof.Stop()
		return RunGeometry(cmd.OutOrStdout(), lp)
	},
}

func init() {
	rootCmd.AddCommand(GeometryCmd)
}

// RunGeometry builds the geometry described by lp and writes its summary
// to w.
func RunGeometry(w io.Writer, lp *InputParameters.LatticeParameters) (err error) {
	var (
		mm   = utils.NewMemoryManager()
		opts = latticeOptions(lp, mm)
		g    *lattice.Geometry
	)
	fmt.Fprint(w, lp.String())
	if g, err = lattice.NewGeometry(lp.GlobalSizes, lp.RankSizes, opts...); err != nil {
		return
	}
	defer g.Release()
	fmt.Fprintf(w, "%s\n", g)
	fmt.Fprintf(w, "local sizes %v, fully local directions %v\n", g.LocSizes(), g.IsDirectionFullyLocal)
	fmt.Fprintf(w, "rank coords %v, neighbours %v\n", g.RankCoords(g.ThisRank()), g.RankNeighs)
	fmt.Fprintf(w, "local origin %v\n", g.GlbCoordsOfLocLx(0))
	for _, par := range []lattice.Parity{lattice.Even, lattice.Odd} {
		fmt.Fprintf(w, "parity %v sites: %d\n", par, g.SitesOfParity(par).GetCardinality())
	}
	box := lattice.NewHCube[lattice.GlbSite](lp.GlobalSizes, lp.Periodic, hashMode(lp.Hashed), opts...)
	defer box.Release()
	fmt.Fprintf(w, "global box %s, surface %d\n", box, box.SurfVol())
	if lp.SplitCheck {
		if err = checkSplits(w, g, opts); err != nil {
			return
		}
	}
	fmt.Fprintf(w, "tables: %s\n", mm)
	fmt.Fprintf(w, "heap: %s\n", utils.ReadMemUsage())
	return
}

// checkSplits builds and verifies the even/odd and Lebesgue orderings of
// the local lattice.
func checkSplits(w io.Writer, g *lattice.Geometry, opts []lattice.Option) (err error) {
	var (
		eo  *lattice.EvenOddSplitter
		leb *lattice.HCubeIndexer[lattice.LebSite, lattice.LocSite]
	)
	if eo, err = lattice.NewEvenOddSplitter(g); err != nil {
		return
	}
	defer eo.Release()
	if err = eo.Verify(); err != nil {
		return
	}
	n := eo.CountByParity()
	fmt.Fprintf(w, "even/odd split along %d, eos sizes %v, %d even %d odd: verified\n",
		eo.Dir, eo.EosSizes, n[lattice.Even], n[lattice.Odd])
	if leb, err = lattice.NewLebesgueIndexer(g.LocGrid, opts...); err != nil {
		return
	}
	defer leb.Release()
	if err = leb.Verify(); err != nil {
		return
	}
	fmt.Fprintf(w, "lebesgue order of %d local sites: verified\n", leb.LxOfId.Len())
	return
}
