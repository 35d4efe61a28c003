// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package enc

import (
	"fmt"
	"math/bits"

	ginter "github.com/go-air/gini/inter"
	"github.com/go-air/gini/z"
)

// Sel is a variable ranging over 0..Domain()-1, coded either one-hot with
// one literal per value or in binary as a bit vector.
type Sel struct {
	dst  LitAdder
	dom  int
	hot  []z.Lit
	bits []z.Lit
	eqs  []z.Lit // binary: memoized Eq literals
}

// NewSel creates a selector over dom values in dst.
func NewSel(dst LitAdder, dom int, binary bool) *Sel {
	if dom < 1 {
		panic(fmt.Sprintf("selector with domain %d", dom))
	}
	s := &Sel{dst: dst, dom: dom}
	if !binary {
		s.hot = make([]z.Lit, dom)
		for i := range s.hot {
			s.hot[i] = dst.Lit()
		}
		clause(dst, s.hot...)
		AtMostOne(dst, s.hot...)
		return s
	}
	w := bits.Len(uint(dom - 1))
	s.bits = make([]z.Lit, w)
	for i := range s.bits {
		s.bits[i] = dst.Lit()
	}
	s.eqs = make([]z.Lit, dom)
	tmp := make([]z.Lit, 0, w)
	for v := dom; v < 1<<uint(w); v++ {
		tmp = tmp[:0]
		for i, b := range s.bits {
			tmp = append(tmp, bitLit(b, v, i).Not())
		}
		clause(dst, tmp...)
	}
	return s
}

func bitLit(b z.Lit, v, i int) z.Lit {
	if v&(1<<uint(i)) != 0 {
		return b
	}
	return b.Not()
}

// Domain returns the number of values of s.
func (s *Sel) Domain() int { return s.dom }

// Binary returns whether s is coded as a bit vector.
func (s *Sel) Binary() bool { return s.bits != nil }

// Eq returns a literal which is true iff s has value v.  Binary selectors
// code the literal on first use.
func (s *Sel) Eq(v int) z.Lit {
	if v < 0 || v >= s.dom {
		panic(fmt.Sprintf("value %d out of domain %d", v, s.dom))
	}
	if s.hot != nil {
		return s.hot[v]
	}
	if e := s.eqs[v]; e != z.LitNull {
		return e
	}
	if len(s.bits) == 0 {
		// single value
		e := s.dst.Lit()
		clause(s.dst, e)
		s.eqs[v] = e
		return e
	}
	e := s.dst.Lit()
	all := make([]z.Lit, 0, len(s.bits)+1)
	all = append(all, e)
	for i, b := range s.bits {
		m := bitLit(b, v, i)
		clause(s.dst, e.Not(), m)
		all = append(all, m.Not())
	}
	clause(s.dst, all...)
	s.eqs[v] = e
	return e
}

// Value returns the value of s under the model m.
func (s *Sel) Value(m ginter.Model) int {
	if s.hot != nil {
		for v, h := range s.hot {
			if m.Value(h) {
				return v
			}
		}
		panic("selector without value")
	}
	v := 0
	for i, b := range s.bits {
		if m.Value(b) {
			v |= 1 << uint(i)
		}
	}
	if v >= s.dom {
		panic(fmt.Sprintf("selector value %d out of domain %d", v, s.dom))
	}
	return v
}

// Differ returns the literals of s which, if one is true, make s differ
// from its value under m.
func (s *Sel) Differ(m ginter.Model) []z.Lit {
	if s.hot != nil {
		return []z.Lit{s.hot[s.Value(m)].Not()}
	}
	res := make([]z.Lit, len(s.bits))
	for i, b := range s.bits {
		if m.Value(b) {
			res[i] = b.Not()
		} else {
			res[i] = b
		}
	}
	return res
}
