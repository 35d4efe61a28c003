// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package backend provides the SAT solvers behind inter.Backend.
package backend

import (
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/go-air/exact/inter"
)

const (
	KindGini      = "gini"
	KindGophersat = "gophersat"
)

// Options configure a backend.
type Options struct {
	// Poll is the interval at which a cancellable solve without a
	// deadline checks for completion.  Zero means 10ms.
	Poll time.Duration
}

func (o Options) poll() time.Duration {
	if o.Poll <= 0 {
		return 10 * time.Millisecond
	}
	return o.Poll
}

type factory struct {
	incremental bool
	make        func(Options) inter.Backend
}

var factories = map[string]factory{
	KindGini: {true, func(o Options) inter.Backend { return NewGini(o) }},
	KindGophersat: {false, func(o Options) inter.Backend { return NewGophersat(o) }},
}

// New creates a backend by name.
func New(kind string, opts Options) (inter.Backend, error) {
	f, ok := factories[strings.ToLower(kind)]
	if !ok {
		return nil, errors.Errorf("unknown backend %q, expected one of %s", kind, strings.Join(Kinds(), ", "))
	}
	return f.make(opts), nil
}

// Kinds returns the names of all backends.
func Kinds() []string {
	res := make([]string, 0, len(factories))
	for k := range factories {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

// Known returns whether kind names a backend.
func Known(kind string) bool {
	_, ok := factories[strings.ToLower(kind)]
	return ok
}

// Incremental returns whether the backend kind solves incrementally.
func Incremental(kind string) bool {
	return factories[strings.ToLower(kind)].incremental
}
