// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package sym adds symmetry breaking clauses to candidate networks.
//
// Every strategy removes models whose networks can be transformed into
// another model's network of no greater size and depth: by permuting
// operands or independent gates, moving complements, relabelling
// symmetric inputs or removing a gate.  Strategies are independent of
// each other.
package sym

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Strategy is a single symmetry breaking strategy.
type Strategy uint8

const (
	// Commutativity orders the operands of a gate by source.
	Commutativity Strategy = 1 << iota
	// Inverters normalizes complemented operands: a majority gate has at
	// most one, an exclusive-or gate none.
	Inverters
	// Strash forbids two gates with the same operands.
	Strash
	// Assoc forbids gates absorbed by an operand of the same kind.
	Assoc
	// CoLex orders adjacent independent gates by their operand tuple.
	CoLex
	// Support forbids operands selecting inputs the function does not
	// depend on.
	Support
	// Symmetric uses the smaller of two symmetric inputs first.
	Symmetric
)

const letters = "CIsalty"

var names = [...]string{"commutativity", "inverters", "strash", "assoc", "colex", "support", "symmetric"}

func (s Strategy) String() string {
	for i := range names {
		if s == 1<<uint(i) {
			return names[i]
		}
	}
	return fmt.Sprintf("strategy(%d)", uint8(s))
}

// Set is a set of strategies.
type Set uint8

const (
	// None disables symmetry breaking.
	None Set = 0
	// All is the default, "CIsalty".
	All Set = 1<<uint(len(letters)) - 1
)

// Parse parses a set of strategies given by letters: C commutativity,
// I inverters, s strash, a assoc, l colex, t support and y symmetric.
// The empty string and "none" give None.
func Parse(v string) (Set, error) {
	var res Set
	if v == "none" {
		return None, nil
	}
	for _, r := range v {
		i := strings.IndexRune(letters, r)
		if i < 0 {
			return None, errors.Errorf("unknown symmetry breaking strategy %q in %q, expected letters of %q", r, v, letters)
		}
		res |= 1 << uint(i)
	}
	return res, nil
}

// Has returns whether st is in s.
func (s Set) Has(st Strategy) bool { return s&Set(st) != 0 }

// Strategies returns the strategies of s in order.
func (s Set) Strategies() []Strategy {
	var res []Strategy
	for i := range letters {
		if st := Strategy(1 << uint(i)); s.Has(st) {
			res = append(res, st)
		}
	}
	return res
}

// String gives the letters of s, "none" if empty.
func (s Set) String() string {
	if s == None {
		return "none"
	}
	var sb strings.Builder
	for i := range letters {
		if s&(1<<uint(i)) != 0 {
			sb.WriteByte(letters[i])
		}
	}
	return sb.String()
}

// Set implements pflag.Value.
func (s *Set) Set(v string) error {
	p, err := Parse(v)
	if err != nil {
		return err
	}
	*s = p
	return nil
}

// Type implements pflag.Value.
func (s *Set) Type() string { return "strategies" }

func (s Set) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

func (s *Set) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var v string
	if err := unmarshal(&v); err != nil {
		return err
	}
	return s.Set(v)
}
