// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bench

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v2"

	"github.com/go-air/exact/search"
)

// Run describes a run of one configuration on a *Suite.
type Run struct {
	Root     string        `yaml:"-"`
	Name     string        `yaml:"name"`
	Suite    *Suite        `yaml:"-"`
	Config   search.Config `yaml:"config"`
	Arch     string        `yaml:"arch"`
	Os       string        `yaml:"os"`
	NumCPU   int           `yaml:"num_cpu"`
	Start    time.Time     `yaml:"start"`
	Timeout  time.Duration `yaml:"timeout"`
	InstRuns []*InstRun    `yaml:"-"`
}

// IsRunDir tests whether or not root looks like a run directory.
func IsRunDir(root string) bool {
	_, err := os.Stat(runMetaPath(root))
	return err == nil
}

// NewRun creates a run named name of cfg on suite, with a global timeout
// to, 0 for none.  The instances are run by Do.
func NewRun(suite *Suite, name string, cfg search.Config, to time.Duration) (*Run, error) {
	d, fn := filepath.Split(name)
	if d != "" || fn == "" {
		return nil, errors.Errorf("run name %q should be a plain file name", name)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Run{
		Root:    filepath.Join(suiteRunDir(suite.Root), fn),
		Name:    fn,
		Suite:   suite,
		Config:  cfg,
		Arch:    runtime.GOARCH,
		Os:      runtime.GOOS,
		NumCPU:  runtime.NumCPU(),
		Start:   time.Now(),
		Timeout: to}
	if _, err := os.Stat(r.Root); err == nil {
		return nil, errors.Errorf("run %s already exists", r.Root)
	}
	if err := os.MkdirAll(r.Root, 0755); err != nil {
		return nil, err
	}
	if err := r.writeMeta(); err != nil {
		return nil, err
	}
	return r, nil
}

// OpenRun opens the run at root of suite with the instance runs saved.
func OpenRun(suite *Suite, root string) (*Run, error) {
	r := &Run{Root: root, Suite: suite}
	d, err := os.ReadFile(runMetaPath(root))
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(d, r); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", runMetaPath(root))
	}
	r.InstRuns = make([]*InstRun, 0, suite.Len())
	for i := 0; i < suite.Len(); i++ {
		ir, err := OpenInstRun(r, i)
		if os.IsNotExist(errors.Cause(err)) {
			continue
		}
		if err != nil {
			return nil, err
		}
		r.InstRuns = append(r.InstRuns, ir)
	}
	return r, nil
}

// Len returns the number of instances of the suite of r.
func (r *Run) Len() int {
	return r.Suite.Len()
}

// Do runs every instance of the suite with up to jobs controllers in
// parallel, each created with opts.  Instances not started before the
// global timeout are recorded as timed out.
func (r *Run) Do(ctx context.Context, jobs int, opts ...search.Option) error {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	irs := make([]*InstRun, r.Len())
	g, gctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i := range irs {
		i := i
		g.Go(func() error {
			c, err := search.New(r.Config, opts...)
			if err != nil {
				return err
			}
			ir, err := NewInstRun(gctx, r, c, i)
			if err != nil {
				return err
			}
			irs[i] = ir
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	r.InstRuns = irs
	return nil
}

func (r *Run) writeMeta() error {
	d, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(runMetaPath(r.Root), d, 0644)
}

func runMetaPath(root string) string {
	return filepath.Join(root, "run.yaml")
}
