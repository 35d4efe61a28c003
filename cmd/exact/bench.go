// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/go-air/exact/bench"
	"github.com/go-air/exact/gen"
	"github.com/go-air/exact/search"
)

func newBenchCmd(log *logrus.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Create, run and compare suites of functions",
	}
	cmd.AddCommand(
		newBenchSelCmd(log),
		newBenchRunCmd(log),
		newBenchCmpCmd(),
		newBenchRmCmd(),
	)
	return cmd
}

func newBenchSelCmd(log *logrus.Logger) *cobra.Command {
	var (
		inputs, random int
		seed           int64
	)
	cmd := &cobra.Command{
		Use:   "sel <suite dir>",
		Short: "Create a suite of functions depending on all their inputs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if inputs < 1 || inputs > 6 {
				return errors.Errorf("--inputs %d not in [1,6]", inputs)
			}
			if random == 0 && inputs > 4 {
				return errors.Errorf("all functions of %d inputs are too many, use --random", inputs)
			}
			fs := bench.SelectAll(inputs)
			if random > 0 {
				gen.Seed(seed)
				fs = bench.SelectRandom(inputs, random)
			}
			s, err := bench.CreateSuite(args[0], fs)
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{"suite": s.Root, "functions": s.Len()}).Info("created suite")
			return nil
		},
	}
	cmd.Flags().IntVarP(&inputs, "inputs", "n", 3, "number of inputs")
	cmd.Flags().IntVar(&random, "random", 0, "number of random functions, 0 for all")
	cmd.Flags().Int64Var(&seed, "seed", 44, "random seed")
	return cmd
}

func newBenchRunCmd(log *logrus.Logger) *cobra.Command {
	var (
		jobs int
		to   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "run <suite dir> <run name>",
		Short: "Run a configuration on every function of a suite",
		Args:  cobra.ExactArgs(2),
	}
	cf := addConfigFlags(cmd.Flags())
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 1, "number of functions synthesized in parallel, 0 for no limit")
	cmd.Flags().DurationVar(&to, "run-timeout", 0, "timeout of the whole run, 0 for none")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := cf.load(cmd.Flags())
		if err != nil {
			return err
		}
		s, err := bench.OpenSuite(args[0])
		if err != nil {
			return err
		}
		r, err := s.Run(args[1], cfg, to)
		if err != nil {
			return err
		}
		start := time.Now()
		if err := r.Do(cmd.Context(), jobs, search.WithLogger(log)); err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"run":     r.Name,
			"proved":  bench.ProvedTotal(r),
			"found":   bench.FoundTotal(r),
			"failed":  bench.FailedTotal(r),
			"elapsed": time.Since(start),
		}).Info("run done")
		return nil
	}
	return cmd
}

func newBenchCmpCmd() *cobra.Command {
	var listing, hist bool
	cmd := &cobra.Command{
		Use:   "cmp <suite dir> [run a] [run b]",
		Short: "Summarize the runs of a suite or compare two runs",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := bench.OpenSuite(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(args) == 3 {
				a, b := findRun(s, args[1]), findRun(s, args[2])
				if a == nil || b == nil {
					return errors.Errorf("runs %s and %s not both in %s", args[1], args[2], s.Root)
				}
				for _, d := range bench.Compare(a, b) {
					fmt.Fprintln(w, d)
				}
				return nil
			}
			fmt.Fprintln(w, bench.Summary(s))
			if listing {
				fmt.Fprintln(w, bench.Listing(s))
			}
			if hist {
				for _, r := range s.Runs {
					if len(args) == 2 && r.Name != args[1] {
						continue
					}
					fmt.Fprintln(w, bench.HistogramString(r))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&listing, "listing", false, "list every instance")
	cmd.Flags().BoolVar(&hist, "hist", false, "show the histogram of network sizes")
	return cmd
}

func newBenchRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <suite dir> <run name>",
		Short: "Remove a run",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := bench.OpenSuite(args[0])
			if err != nil {
				return err
			}
			if findRun(s, args[1]) == nil {
				return errors.Errorf("no run %s in %s", args[1], s.Root)
			}
			return s.RemoveRun(args[1])
		},
	}
}

func findRun(s *bench.Suite, name string) *bench.Run {
	for _, r := range s.Runs {
		if r.Name == name {
			return r
		}
	}
	return nil
}
