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
	"log/slog"
	"os"

	"github.com/notargets/golattice/InputParameters"
	"github.com/notargets/golattice/lattice"
	"github.com/notargets/golattice/utils"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// processInput reads the lattice parameters from the file given with -I,
// or from the flags and the config file otherwise.
func processInput(cmd *cobra.Command) (lp *InputParameters.LatticeParameters, err error) {
	var fileName string
	if fileName, err = cmd.Flags().GetString("inputParametersFile"); err != nil {
		return
	}
	lp = &InputParameters.LatticeParameters{}
	if len(fileName) != 0 {
		var data []byte
		if data, err = os.ReadFile(fileName); err != nil {
			return
		}
		if err = lp.Parse(data); err != nil {
			err = fmt.Errorf("parsing %s: %w", fileName, err)
			return
		}
	} else {
		lp.Title = cmd.Name()
		lp.GlobalSizes = viper.GetIntSlice("sizes")
		lp.RankSizes = viper.GetIntSlice("ranks")
		lp.Periodic = viper.GetIntSlice("periodic")
		lp.Hashed = viper.GetBool("hashed")
		lp.Workers = viper.GetInt("workers")
		lp.Rank = viper.GetInt("rank")
		lp.SplitCheck = viper.GetBool("check")
	}
	err = lp.Validate()
	return
}

// newLogger writes construction events to stderr when verbose is set.
func newLogger() *slog.Logger {
	var (
		w     io.Writer = io.Discard
		level           = slog.LevelInfo
	)
	if viper.GetBool("verbose") {
		w, level = os.Stderr, slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func latticeOptions(lp *InputParameters.LatticeParameters, mm *utils.MemoryManager) []lattice.Option {
	return []lattice.Option{
		lattice.WithWorkers(lp.Workers),
		lattice.WithRank(lattice.FixedRank(lp.Rank)),
		lattice.WithLogger(newLogger()),
		lattice.WithAllocator(mm),
	}
}

func hashMode(hashed bool) lattice.HashMode {
	if hashed {
		return lattice.Hashed
	}
	return lattice.NotHashed
}

type stopper interface{ Stop() }

type noProfile struct{}

func (noProfile) Stop() {}

// startProfile starts the profile requested with --profile, writing it to
// the working directory.
func startProfile(cmd *cobra.Command) (stopper, error) {
	kind, err := cmd.Flags().GetString("profile")
	if err != nil {
		return nil, err
	}
	switch kind {
	case "":
		return noProfile{}, nil
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook), nil
	case "mem":
		return profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook), nil
	}
	return nil, fmt.Errorf("unknown profile %q, use cpu or mem", kind)
}
