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
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/combin"
)

// LebesgueCmd represents the lebesgue command
var LebesgueCmd = &cobra.Command{
	Use:   "lebesgue",
	Short: "Show the Lebesgue ordering of the global box",
	Long: `
Prints the mixed radix factor table of the global sizes, one row per round of
digits, and the lexicographic site and coordinates of a range of Lebesgue sites.

golattice lebesgue -s 4,12 --sites 0:16`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			lp    *InputParameters.LatticeParameters
			sites string
		)
		if lp, err = processInput(cmd); err != nil {
			return
		}
		if sites, err = cmd.Flags().GetString("sites"); err != nil {
			return
		}
		return RunLebesgue(cmd.OutOrStdout(), lp, sites)
	},
}

func init() {
	rootCmd.AddCommand(LebesgueCmd)
	LebesgueCmd.Flags().String("sites", ":16", "range of Lebesgue sites to list, like 3:10, :, end")
}

func RunLebesgue(w io.Writer, lp *InputParameters.LatticeParameters, sites string) (err error) {
	var (
		hc = lattice.NewHCube[lattice.GlbSite](lp.GlobalSizes, lp.Periodic, hashMode(lp.Hashed),
			lattice.WithWorkers(lp.Workers))
		lc     *lattice.LebesgueCalculator[lattice.GlbSite]
		lo, hi int
	)
	if lc, err = lattice.NewLebesgueCalculator(hc); err != nil {
		return
	}
	factors := lc.Factors()
	data := make([]float64, 0, len(factors)*hc.NDims())
	for _, row := range factors {
		for _, f := range row {
			data = append(data, float64(f))
		}
	}
	fmt.Fprintf(w, "factors of %v, one row per round:\n", hc.Sizes)
	if len(factors) != 0 && hc.NDims() != 0 {
		fmt.Fprintf(w, "F = %v\n", mat.Formatted(mat.NewDense(len(factors), hc.NDims(), data), mat.Prefix("    ")))
	}
	if lo, hi, err = utils.ParseRange(sites, int(hc.Vol)); err != nil {
		return
	}
	for leb := lo; leb < hi; leb++ {
		var (
			c  = lc.CoordsOfLeb(lattice.LebSite(leb))
			lx = lc.LxOfLeb(lattice.LebSite(leb))
		)
		if want := combin.IdxFor(c, hc.Sizes); int(lx) != want {
			return fmt.Errorf("lebesgue site %d: lexicographic site %d, expected %d", leb, lx, want)
		}
		fmt.Fprintf(w, "leb %6d -> lx %6d %v\n", leb, lx, c)
	}
	return
}
