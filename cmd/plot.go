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
	"time"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"
	"github.com/notargets/golattice/InputParameters"
	"github.com/notargets/golattice/lattice"
	"github.com/spf13/cobra"
)

// PlotCmd represents the plot command
var PlotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Draw the Lebesgue curve of a two dimensional box",
	Long: `
Opens a window showing the path of the Lebesgue ordering through the sites of a
two dimensional box, with the lattice drawn underneath.

golattice plot -s 12,12 --delay 10000`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			lp    *InputParameters.LatticeParameters
			sizes lattice.Coords
			line  []float32
			dr    int
		)
		if lp, err = processInput(cmd); err != nil {
			return
		}
		sizes = lp.GlobalSizes
		if line, err = lebesgueCurve(sizes); err != nil {
			return
		}
		if dr, err = cmd.Flags().GetInt("delay"); err != nil {
			return
		}
		ch := chart2d.NewChart2D(-0.5, float32(sizes[1])-0.5, -0.5, float32(sizes[0])-0.5,
			1024, 1024, utils2.WHITE, utils2.BLACK)
		ch.AddLine(latticeLines(sizes), utils2.BLUE)
		ch.AddLine(line, utils2.RED)
		time.Sleep(time.Duration(dr) * time.Millisecond)
		return
	},
}

func init() {
	rootCmd.AddCommand(PlotCmd)
	PlotCmd.Flags().Int("delay", 30000, "milliseconds to keep the window open")
}

// lebesgueCurve returns the segments joining consecutive Lebesgue sites, as
// x1,y1,x2,y2 quadruples with x along direction 1 and y along direction 0.
func lebesgueCurve(sizes lattice.Coords) (line []float32, err error) {
	if len(sizes) != 2 {
		return nil, fmt.Errorf("plot needs two sizes, have %v", sizes)
	}
	if sizes[0] <= 0 || sizes[1] <= 0 {
		return nil, fmt.Errorf("plot needs positive sizes, have %v", sizes)
	}
	hc := lattice.NewHCube[lattice.LocSite](sizes, lattice.AllDimensions(2), lattice.NotHashed)
	lc, err := lattice.NewLebesgueCalculator(hc)
	if err != nil {
		return
	}
	var prev lattice.Coords
	for leb := lattice.LebSite(0); leb < lattice.LebSite(hc.Vol); leb++ {
		c := lc.CoordsOfLeb(leb)
		if prev != nil {
			line = append(line, float32(prev[1]), float32(prev[0]), float32(c[1]), float32(c[0]))
		}
		prev = c
	}
	return
}

// latticeLines draws the rows and columns of sites.
func latticeLines(sizes lattice.Coords) (line []float32) {
	for y := 0; y < sizes[0]; y++ {
		line = append(line, 0, float32(y), float32(sizes[1]-1), float32(y))
	}
	for x := 0; x < sizes[1]; x++ {
		line = append(line, float32(x), 0, float32(x), float32(sizes[0]-1))
	}
	return
}
