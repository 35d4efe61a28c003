// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package xmg

import (
	"strings"

	"github.com/pkg/errors"
)

// Basis is a set of gate kinds networks are built from.
type Basis uint8

const (
	// MIG networks have majority gates only.
	MIG Basis = iota
	// XMG networks have majority and exclusive-or gates.
	XMG
	// AIG networks have conjunctions only.
	AIG
)

var basisNames = [...]string{"mig", "xmg", "aig"}

func (b Basis) String() string {
	if int(b) < len(basisNames) {
		return basisNames[b]
	}
	return "basis(?)"
}

// ParseBasis parses "mig", "xmg" or "aig", ignoring case.
func ParseBasis(s string) (Basis, error) {
	for i, n := range basisNames {
		if strings.EqualFold(s, n) {
			return Basis(i), nil
		}
	}
	return 0, errors.Errorf("unknown basis %q, expected one of %s", s, strings.Join(basisNames[:], ", "))
}

// Set implements pflag.Value.
func (b *Basis) Set(s string) error {
	v, err := ParseBasis(s)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Type implements pflag.Value.
func (b *Basis) Type() string { return "basis" }

// MarshalYAML implements yaml.Marshaler.
func (b Basis) MarshalYAML() (interface{}, error) {
	return b.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *Basis) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return b.Set(s)
}

// Kinds returns the gate kinds of b.
func (b Basis) Kinds() []Kind {
	switch b {
	case MIG:
		return []Kind{KMaj}
	case XMG:
		return []Kind{KMaj, KXor}
	case AIG:
		return []Kind{KAnd}
	}
	return nil
}

// Has returns whether k is a gate kind of b.
func (b Basis) Has(k Kind) bool {
	for _, o := range b.Kinds() {
		if o == k {
			return true
		}
	}
	return false
}

// Arity returns the maximal arity of the gates in b.
func (b Basis) Arity() int {
	a := 0
	for _, k := range b.Kinds() {
		if k.Arity() > a {
			a = k.Arity()
		}
	}
	return a
}

// MaxGates returns the number of gates of a complete tree of depth d, an
// upper bound on the size of any single output network of depth d.
func (b Basis) MaxGates(d int) int {
	a := b.Arity()
	s, w := 0, 1
	for i := 0; i < d; i++ {
		s += w
		w *= a
	}
	return s
}

func (b Basis) and(q *N, x, y Lit) Lit {
	if b == AIG {
		return q.And(x, y)
	}
	return q.Maj(F, x, y)
}

func (b Basis) or(q *N, x, y Lit) Lit {
	if b == AIG {
		return q.Or(x, y)
	}
	return q.Maj(T, x, y)
}

func (b Basis) build(q *N, k Kind, ins []Lit) Lit {
	switch k {
	case KMaj:
		if b.Has(KMaj) {
			return q.Maj(ins[0], ins[1], ins[2])
		}
		x, y, z := ins[0], ins[1], ins[2]
		return b.or(q, b.or(q, b.and(q, x, y), b.and(q, x, z)), b.and(q, y, z))
	case KXor:
		if b.Has(KXor) {
			return q.Xor(ins[0], ins[1])
		}
		x, y := ins[0], ins[1]
		return b.or(q, b.and(q, x, y.Not()), b.and(q, x.Not(), y))
	case KAnd:
		return b.and(q, ins[0], ins[1])
	}
	panic("build: not a gate")
}
