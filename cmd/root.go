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
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "golattice",
	Short: "Decomposition and site orderings of N-dimensional periodic lattices",
	Long: `
Splits a periodic lattice over a grid of ranks and builds the index spaces used
to walk the local sites: lexicographic, even/odd and Lebesgue order.

golattice geometry --sizes 8,8,8,16 --ranks 1,1,2,2 --rank 3 --check`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.golattice.yaml)")
	pf.StringP("inputParametersFile", "I", "", "YAML file with the lattice parameters, overrides the lattice flags")
	pf.IntSliceP("sizes", "s", []int{4, 4, 4, 4}, "global lattice sizes")
	pf.IntSliceP("ranks", "r", nil, "rank grid sizes, one rank per direction when omitted")
	pf.IntSlice("periodic", nil, "periodicity of the global box, all periodic when omitted")
	pf.Bool("hashed", true, "tabulate the coordinates of the global box")
	pf.IntP("workers", "w", 0, "goroutines filling lookup tables, 0 uses every CPU")
	pf.Int("rank", 0, "rank this process runs as")
	pf.Bool("check", false, "verify every derived index space")
	pf.String("profile", "", "write a profile of the run: cpu or mem")
	pf.BoolP("verbose", "v", false, "log construction events")
	for _, name := range []string{"sizes", "ranks", "periodic", "hashed", "workers", "rank", "check", "verbose"} {
		if err := viper.BindPFlag(name, pf.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".golattice")
	}
	viper.SetEnvPrefix("golattice")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
