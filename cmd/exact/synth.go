// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/go-air/exact/heur"
	"github.com/go-air/exact/search"
)

type report struct {
	Target string `yaml:"target"`
	search.Result `yaml:",inline"`
}

type synthFunc func(ctx context.Context, c *search.Controller, t *search.Target) (*search.Result, error)

func newSynthCmd(log *logrus.Logger) *cobra.Command {
	return newSynthesisCmd(log, "synth", "Synthesize a minimum network by exact search",
		func(ctx context.Context, c *search.Controller, t *search.Target) (*search.Result, error) {
			return c.Run(ctx, t)
		})
}

func newHeuristicCmd(log *logrus.Logger) *cobra.Command {
	return newSynthesisCmd(log, "heuristic", "Improve a network by exact probes below its size", heur.Run)
}

func newSynthesisCmd(log *logrus.Logger, use, short string, synth synthFunc) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   use + " [table or formula]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
	}
	cf := addConfigFlags(cmd.Flags())
	tf := addTargetFlags(cmd.Flags())
	cmd.Flags().StringVarP(&out, "output", "o", "-", "output file of the yaml result")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := cf.load(cmd.Flags())
		if err != nil {
			return err
		}
		t, err := tf.target(args)
		if err != nil {
			return err
		}
		c, err := search.New(cfg, search.WithLogger(log))
		if err != nil {
			return err
		}
		res, err := synth(cmd.Context(), c, t)
		l := log.WithField("target", t.String())
		switch {
		case errors.Is(err, search.ErrTimeout):
			if res != nil {
				l = l.WithField("last_size", res.Stats.LastSize)
			}
			l.Warn("timeout, no network found")
			return err
		case err != nil:
			return err
		}
		l = l.WithFields(logrus.Fields{"size": res.Network.Size(), "depth": res.Network.Depth()})
		if res.Stats.OptimumProved {
			l.Info("optimum proved")
		} else {
			l.Warn("network not proved optimal")
		}
		return writeYAML(out, report{Target: t.String(), Result: *res})
	}
	return cmd
}

func writeYAML(path string, v interface{}) error {
	d, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	if path == "-" {
		_, err = os.Stdout.Write(d)
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := f.Write(d); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
