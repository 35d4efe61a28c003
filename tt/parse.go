// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package tt

import (
	"sort"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/crillab/gophersat/bf"
	"github.com/pkg/errors"
)

// Parse parses a truth table from one of the forms
//
//	0xe8        hexadecimal, 2^n/4 digits (1 digit for n <= 2)
//	0b11101000  binary, 2^n digits
//	a & b | c   a formula, inputs ordered by name
//
// Hexadecimal tables with a single digit are taken as 2 input functions;
// use ParseN to give the number of inputs explicitly.
func Parse(s string) (T, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		d := len(s) - 2
		n := 2
		for 1<<uint(n) < 4*d {
			n++
		}
		if 1<<uint(n) != 4*d || n > MaxVars {
			return T{}, errors.Errorf("hex table %q: %d digits is not 2^n/4 for n <= %d", s, d, MaxVars)
		}
		return ParseN(n, s)
	case strings.HasPrefix(s, "0b"), strings.HasPrefix(s, "0B"):
		d := len(s) - 2
		n := 0
		for 1<<uint(n) < d {
			n++
		}
		if 1<<uint(n) != d || n > MaxVars {
			return T{}, errors.Errorf("binary table %q: %d digits is not 2^n for n <= %d", s, d, MaxVars)
		}
		return ParseN(n, s)
	}
	t, _, err := FromFormula(s)
	return t, err
}

// ParseN parses a hexadecimal ("0x") or binary ("0b") table over n inputs.
func ParseN(n int, s string) (T, error) {
	if n < 0 || n > MaxVars {
		return T{}, errors.Errorf("%d inputs not in [0,%d]", n, MaxVars)
	}
	s = strings.TrimSpace(s)
	if len(s) < 3 {
		return T{}, errors.Errorf("table %q too short", s)
	}
	base := 16
	switch s[:2] {
	case "0x", "0X":
	case "0b", "0B":
		base = 2
	default:
		return T{}, errors.Errorf("table %q: expected 0x or 0b prefix", s)
	}
	b, err := strconv.ParseUint(s[2:], base, 64)
	if err != nil {
		return T{}, errors.Wrapf(err, "table %q", s)
	}
	if b&^mask(n) != 0 {
		return T{}, errors.Errorf("table %q has more than 2^%d bits", s, n)
	}
	return New(n, b), nil
}

// FromFormula evaluates a Boolean formula in the syntax of
// github.com/crillab/gophersat/bf, where "=" is equivalence, "->"
// implication, "|" disjunction, "&" conjunction and "^" negation.
// The identifiers of the formula are the inputs, in increasing order
// by name; they are returned along with the table.
func FromFormula(expr string) (T, []string, error) {
	f, err := bf.Parse(strings.NewReader(expr))
	if err != nil {
		return T{}, nil, errors.Wrapf(err, "formula %q", expr)
	}
	names := identifiers(expr)
	if len(names) > MaxVars {
		return T{}, nil, errors.Errorf("formula %q has %d inputs, at most %d supported", expr, len(names), MaxVars)
	}
	n := len(names)
	res := T{n: n}
	model := make(map[string]bool, n)
	for m := 0; m < 1<<uint(n); m++ {
		for i, name := range names {
			model[name] = (m>>uint(i))&1 == 1
		}
		if f.Eval(model) {
			res.bits |= 1 << uint(m)
		}
	}
	return res, names, nil
}

func identifiers(expr string) []string {
	var s scanner.Scanner
	s.Init(strings.NewReader(expr))
	s.Mode = scanner.ScanIdents | scanner.ScanInts
	seen := make(map[string]bool)
	var res []string
	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		if tok != scanner.Ident && tok != scanner.Int {
			continue
		}
		name := s.TokenText()
		if seen[name] {
			continue
		}
		seen[name] = true
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}
