// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package bench runs exact synthesis on suites of functions and compares
// the runs.
//
// A suite is a directory holding the tables of its functions, one per
// line in the file "tables", and a directory "runs" with one directory
// per run.
package bench

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/go-air/exact/gen"
	"github.com/go-air/exact/search"
	"github.com/go-air/exact/tt"
)

// Suite is a set of functions with the runs on them.
type Suite struct {
	Root   string
	Tables []tt.T
	Runs   []*Run
}

// IsSuiteDir returns true if d appears to contain a Suite.
func IsSuiteDir(d string) bool {
	for _, p := range []string{d, suiteTablesPath(d), suiteRunDir(d)} {
		if _, err := os.Stat(p); err != nil {
			return false
		}
	}
	return true
}

// CreateSuite creates a suite of fs rooted at root, which must not exist.
func CreateSuite(root string, fs []tt.T) (*Suite, error) {
	if _, err := os.Stat(root); err == nil {
		return nil, errors.Errorf("root %s already exists", root)
	}
	if err := os.MkdirAll(suiteRunDir(root), 0755); err != nil {
		return nil, err
	}
	s := &Suite{Root: root, Tables: fs}
	if err := s.writeTables(); err != nil {
		return nil, err
	}
	return s, nil
}

// OpenSuite opens a suite with all its runs.
func OpenSuite(root string) (*Suite, error) {
	s := &Suite{Root: root}
	if err := s.readTables(); err != nil {
		return nil, err
	}
	if err := s.readRuns(); err != nil {
		return nil, err
	}
	return s, nil
}

// SelectAll returns the functions over n inputs which depend on all
// of them.
func SelectAll(n int) []tt.T {
	var res []tt.T
	gen.All(n, func(f tt.T) bool {
		if len(f.Support()) == n {
			res = append(res, f)
		}
		return true
	})
	return res
}

// SelectRandom returns k random functions over n inputs which depend on
// all of them.
func SelectRandom(n, k int) []tt.T {
	return gen.Tables(n, k)
}

// Len returns the number of functions in the suite.
func (s *Suite) Len() int {
	return len(s.Tables)
}

// Run creates a run named name of the configuration cfg with a global
// timeout to, 0 for none.
func (s *Suite) Run(name string, cfg search.Config, to time.Duration) (*Run, error) {
	r, err := NewRun(s, name, cfg, to)
	if err != nil {
		return nil, err
	}
	s.Runs = append(s.Runs, r)
	return r, nil
}

// RemoveRun removes the run named name from s.
func (s *Suite) RemoveRun(name string) error {
	if err := os.RemoveAll(filepath.Join(suiteRunDir(s.Root), name)); err != nil {
		return err
	}
	j := 0
	for _, r := range s.Runs {
		if r.Name == name {
			continue
		}
		s.Runs[j] = r
		j++
	}
	s.Runs = s.Runs[:j]
	return nil
}

func (s *Suite) writeTables() error {
	f, err := os.OpenFile(suiteTablesPath(s.Root), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, t := range s.Tables {
		fmt.Fprintf(w, "%d %s\n", t.N(), t)
	}
	return w.Flush()
}

func (s *Suite) readTables() error {
	f, err := os.Open(suiteTablesPath(s.Root))
	if err != nil {
		return err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for ln := 1; sc.Scan(); ln++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var n int
		var hex string
		if _, err := fmt.Sscanf(line, "%d %s", &n, &hex); err != nil {
			return errors.Wrapf(err, "%s:%d", suiteTablesPath(s.Root), ln)
		}
		t, err := tt.ParseN(n, hex)
		if err != nil {
			return errors.Wrapf(err, "%s:%d", suiteTablesPath(s.Root), ln)
		}
		s.Tables = append(s.Tables, t)
	}
	return sc.Err()
}

func (s *Suite) readRuns() error {
	fis, err := os.ReadDir(suiteRunDir(s.Root))
	if err != nil {
		return err
	}
	names := make([]string, 0, len(fis))
	for _, fi := range fis {
		if fi.IsDir() {
			names = append(names, fi.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		r, err := OpenRun(s, filepath.Join(suiteRunDir(s.Root), name))
		if err != nil {
			return errors.Wrapf(err, "run %s", name)
		}
		s.Runs = append(s.Runs, r)
	}
	return nil
}

func suiteTablesPath(root string) string {
	return filepath.Join(root, "tables")
}

func suiteRunDir(root string) string {
	return filepath.Join(root, "runs")
}
