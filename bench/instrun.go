// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bench

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/go-air/exact/search"
	"github.com/go-air/exact/xmg"
)

// InstRun is the synthesis of one function of a suite.
//
// Result is 1 if the optimum was proved, 0 if a network was found
// without proof or nothing was found in time, and -1 on failure.
type InstRun struct {
	Run    *Run          `yaml:"-"`
	Inst   int           `yaml:"inst"`
	Table  string        `yaml:"table"`
	Result int           `yaml:"result"`
	Start  time.Time     `yaml:"start"`
	Dur    time.Duration `yaml:"dur"`
	Size   int           `yaml:"size"`
	Depth  int           `yaml:"depth"`
	Stats  search.Stats  `yaml:"stats"`
	Net    *xmg.N        `yaml:"network,omitempty"`
	Error  string        `yaml:"error,omitempty"`
}

// Found returns whether ir has a network.
func (ir *InstRun) Found() bool {
	return ir.Net != nil
}

// NewInstRun synthesizes instance inst of run with c and saves the
// result.  Synthesis errors are recorded in the InstRun; the error
// returned is that of saving it.
func NewInstRun(ctx context.Context, run *Run, c *search.Controller, inst int) (*InstRun, error) {
	f := run.Suite.Tables[inst]
	ir := &InstRun{
		Run:   run,
		Inst:  inst,
		Table: f.String(),
		Start: time.Now(),
		Size:  -1,
		Depth: -1}
	res, err := c.Run(ctx, search.FromTable(f))
	ir.Dur = time.Since(ir.Start)
	if res != nil {
		ir.Stats = res.Stats
		ir.Net = res.Network
	}
	switch {
	case errors.Is(err, search.ErrTimeout):
		ir.Error = err.Error()
	case err != nil:
		ir.Result = -1
		ir.Error = err.Error()
	case res.Stats.OptimumProved:
		ir.Result = 1
	}
	if ir.Net != nil {
		ir.Size, ir.Depth = ir.Net.Size(), ir.Net.Depth()
	}
	if err := ir.save(); err != nil {
		return nil, err
	}
	return ir, nil
}

// OpenInstRun reads the saved run of instance inst.
func OpenInstRun(run *Run, inst int) (*InstRun, error) {
	d, err := os.ReadFile(iRunPath(run.Root, inst))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	ir := &InstRun{Run: run}
	if err := yaml.Unmarshal(d, ir); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", iRunPath(run.Root, inst))
	}
	if ir.Inst != inst {
		return nil, errors.Errorf("%s: instance %d", iRunPath(run.Root, inst), ir.Inst)
	}
	return ir, nil
}

func (ir *InstRun) save() error {
	d, err := yaml.Marshal(ir)
	if err != nil {
		return err
	}
	return os.WriteFile(iRunPath(ir.Run.Root, ir.Inst), d, 0644)
}

func iRunPath(root string, i int) string {
	return filepath.Join(root, fmt.Sprintf("inst-%d.yaml", i))
}
