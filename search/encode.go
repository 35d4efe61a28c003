// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package search

import (
	"github.com/go-air/gini/z"

	"github.com/go-air/exact/enc"
)

// Encode adds to dst the clauses a probe of t for a network of at most
// size gates, and depth at most depth if positive, solves under the
// returned assumptions.
func Encode(dst enc.LitAdder, cfg Config, t *Target, size, depth int) ([]z.Lit, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if size < 1 {
		return nil, invalid("size", "%d is not positive", size)
	}
	s := &session{c: candidate(dst, cfg, t.Table(), size)}
	return s.bounds(size, depth), nil
}
