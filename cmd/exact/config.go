// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v2"

	"github.com/go-air/exact/search"
	"github.com/go-air/exact/tt"
	"github.com/go-air/exact/xmg"
)

// configFlags binds a search.Config to flags.  Flags given on the
// command line override the settings of the --config file.
type configFlags struct {
	path string
	cfg  search.Config
}

func addConfigFlags(fs *pflag.FlagSet) *configFlags {
	c := &configFlags{cfg: search.Defaults()}
	cfg := &c.cfg
	fs.StringVar(&c.path, "config", "", "yaml configuration file")
	fs.Var(&cfg.Objective, "objective", "size, size-depth or depth-size")
	fs.IntVar(&cfg.Start, "start", cfg.Start, "first size probed")
	fs.IntVar(&cfg.StartDepth, "start-depth", cfg.StartDepth, "first depth probed by size-depth, 0 for the depth of the minimum network")
	fs.IntVar(&cfg.MaxSize, "max-size", cfg.MaxSize, "largest size probed")
	fs.BoolVar(&cfg.Incremental, "incremental", cfg.Incremental, "keep one solver for all probes")
	fs.BoolVar(&cfg.AllSolutions, "all-solutions", cfg.AllSolutions, "enumerate all optimum networks")
	fs.IntVar(&cfg.MaxSolutions, "max-solutions", cfg.MaxSolutions, "limit the enumeration, 0 for no limit")
	fs.Var(&cfg.Breaking, "breaking", "symmetry breaking strategies, letters of CIsalty or none")
	fs.BoolVar(&cfg.EncWithBitvectors, "bitvectors", cfg.EncWithBitvectors, "binary coded operand selection")
	fs.Var(&cfg.Basis, "basis", "mig, xmg or aig")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "sat solver, gini or gophersat")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "log every probe")
	fs.BoolVar(&cfg.VeryVerbose, "very-verbose", cfg.VeryVerbose, "log every probe and decoded gate")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout of each probe, 0 for none")
	fs.BoolVar(&cfg.TimeoutHeuristic, "timeout-heuristic", cfg.TimeoutHeuristic, "continue after a probe timed out")
	fs.DurationVar(&cfg.Budget, "budget", cfg.Budget, "timeout of the whole synthesis, 0 for none")
	return c
}

// load returns the configuration of the file, if any, with the flags
// given on the command line applied.
func (c *configFlags) load(fs *pflag.FlagSet) (search.Config, error) {
	if c.path == "" {
		return c.cfg, c.cfg.Validate()
	}
	given := make(map[string]string)
	fs.Visit(func(f *pflag.Flag) {
		if f.Name != "config" {
			given[f.Name] = f.Value.String()
		}
	})
	cfg, err := search.LoadConfig(c.path)
	if err != nil {
		return cfg, err
	}
	c.cfg = cfg
	for name, v := range given {
		if err := fs.Set(name, v); err != nil {
			return c.cfg, errors.Wrapf(err, "flag --%s", name)
		}
	}
	return c.cfg, c.cfg.Validate()
}

// targetFlags selects the function to synthesize.
type targetFlags struct {
	inputs  int
	network string
}

func addTargetFlags(fs *pflag.FlagSet) *targetFlags {
	t := &targetFlags{}
	fs.IntVarP(&t.inputs, "inputs", "n", 0, "number of inputs of a hex or binary table, 0 to infer it")
	fs.StringVar(&t.network, "network", "", "yaml network file whose function is synthesized")
	return t
}

func (t *targetFlags) target(args []string) (*search.Target, error) {
	if t.network != "" {
		if len(args) != 0 {
			return nil, errors.New("both --network and a table given")
		}
		d, err := os.ReadFile(t.network)
		if err != nil {
			return nil, err
		}
		p := &xmg.N{}
		if err := yaml.Unmarshal(d, p); err != nil {
			return nil, errors.Wrapf(err, "parsing %s", t.network)
		}
		return search.FromNetwork(p)
	}
	if len(args) != 1 {
		return nil, errors.New("expected one truth table or formula")
	}
	var (
		f   tt.T
		err error
	)
	if t.inputs > 0 {
		f, err = tt.ParseN(t.inputs, args[0])
	} else {
		f, err = tt.Parse(args[0])
	}
	if err != nil {
		return nil, err
	}
	return search.FromTable(f), nil
}
