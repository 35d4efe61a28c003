// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package tt

import (
	"fmt"
	"math/bits"
)

// MaxVars is the maximal number of inputs of a truth table.
const MaxVars = 6

var projs = [MaxVars]uint64{
	0xaaaaaaaaaaaaaaaa,
	0xcccccccccccccccc,
	0xf0f0f0f0f0f0f0f0,
	0xff00ff00ff00ff00,
	0xffff0000ffff0000,
	0xffffffff00000000,
}

// T is a complete truth table of a single output Boolean function over
// N() inputs.  Bit j of Bits() is the value of the function under the
// minterm j, where input i has value (j >> i) & 1.
type T struct {
	n    int
	bits uint64
}

// New creates a truth table over n inputs from the low 2^n bits of b.
func New(n int, b uint64) T {
	checkN(n)
	return T{n: n, bits: b & mask(n)}
}

// Const returns the constant function over n inputs.
func Const(n int, v bool) T {
	checkN(n)
	if v {
		return T{n: n, bits: mask(n)}
	}
	return T{n: n}
}

// Var returns the projection onto input i over n inputs.
func Var(n, i int) T {
	checkN(n)
	if i < 0 || i >= n {
		panic(fmt.Sprintf("tt: input %d out of range [0,%d)", i, n))
	}
	return T{n: n, bits: projs[i] & mask(n)}
}

func checkN(n int) {
	if n < 0 || n > MaxVars {
		panic(fmt.Sprintf("tt: %d inputs not in [0,%d]", n, MaxVars))
	}
}

func mask(n int) uint64 {
	if n == MaxVars {
		return ^uint64(0)
	}
	return (uint64(1) << (uint(1) << uint(n))) - 1
}

// N returns the number of inputs.
func (t T) N() int { return t.n }

// Bits returns the bits of t.
func (t T) Bits() uint64 { return t.bits }

// Len returns the number of minterms, 2^N().
func (t T) Len() int { return 1 << uint(t.n) }

// Bit returns the value of t under minterm j.
func (t T) Bit(j int) bool {
	return (t.bits>>uint(j))&1 == 1
}

// Not returns the complement of t.
func (t T) Not() T {
	return T{n: t.n, bits: ^t.bits & mask(t.n)}
}

func (t T) same(o T) {
	if t.n != o.n {
		panic(fmt.Sprintf("tt: mixing %d and %d inputs", t.n, o.n))
	}
}

// And returns t and o.
func (t T) And(o T) T {
	t.same(o)
	return T{n: t.n, bits: t.bits & o.bits}
}

// Or returns t or o.
func (t T) Or(o T) T {
	t.same(o)
	return T{n: t.n, bits: t.bits | o.bits}
}

// Xor returns t xor o.
func (t T) Xor(o T) T {
	t.same(o)
	return T{n: t.n, bits: t.bits ^ o.bits}
}

// Maj returns the majority of a, b, c.
func Maj(a, b, c T) T {
	a.same(b)
	a.same(c)
	return T{n: a.n, bits: (a.bits & b.bits) | (a.bits & c.bits) | (b.bits & c.bits)}
}

// Equal returns whether t and o are the same function over the same inputs.
func (t T) Equal(o T) bool {
	return t.n == o.n && t.bits == o.bits
}

// Ones returns the number of satisfying minterms.
func (t T) Ones() int {
	return bits.OnesCount64(t.bits)
}

// IsConst returns whether t is constant and, if so, its value.
func (t T) IsConst() (v, ok bool) {
	switch t.bits {
	case 0:
		return false, true
	case mask(t.n):
		return true, true
	}
	return false, false
}

// IsLiteral returns whether t is a possibly complemented projection.
// If so, it returns the input and whether it is complemented.
func (t T) IsLiteral() (i int, neg, ok bool) {
	for i = 0; i < t.n; i++ {
		p := Var(t.n, i)
		if t.Equal(p) {
			return i, false, true
		}
		if t.Equal(p.Not()) {
			return i, true, true
		}
	}
	return -1, false, false
}

// Cofactor returns the cofactor of t w.r.t. input i set to v,
// as a function over the same inputs which does not depend on i.
func (t T) Cofactor(i int, v bool) T {
	p := projs[i] & mask(t.n)
	s := uint(1) << uint(i)
	if v {
		b := t.bits & p
		return T{n: t.n, bits: b | b>>s}
	}
	b := t.bits &^ p
	return T{n: t.n, bits: b | b<<s}
}

// DependsOn returns whether t depends on input i.
func (t T) DependsOn(i int) bool {
	return !t.Cofactor(i, false).Equal(t.Cofactor(i, true))
}

// Support returns the inputs t depends on, in increasing order.
func (t T) Support() []int {
	var res []int
	for i := 0; i < t.n; i++ {
		if t.DependsOn(i) {
			res = append(res, i)
		}
	}
	return res
}

// Swap returns t with inputs i and j exchanged.
func (t T) Swap(i, j int) T {
	if i == j {
		return t
	}
	res := T{n: t.n}
	for m := 0; m < t.Len(); m++ {
		if !t.Bit(m) {
			continue
		}
		bi, bj := (m>>uint(i))&1, (m>>uint(j))&1
		o := m &^ (1<<uint(i) | 1<<uint(j))
		o |= bj<<uint(i) | bi<<uint(j)
		res.bits |= 1 << uint(o)
	}
	return res
}

// Symmetric returns whether t is invariant under exchanging
// inputs i and j.
func (t T) Symmetric(i, j int) bool {
	return t.Swap(i, j).Equal(t)
}

// SymmetricPairs returns all pairs (i, j), i < j, of inputs in the
// support of t such that t is symmetric in i and j.
func (t T) SymmetricPairs() [][2]int {
	sup := t.Support()
	var res [][2]int
	for a, i := range sup {
		for _, j := range sup[a+1:] {
			if t.Symmetric(i, j) {
				res = append(res, [2]int{i, j})
			}
		}
	}
	return res
}

// String returns t in hexadecimal, most significant minterm first.
func (t T) String() string {
	d := t.Len() / 4
	if d == 0 {
		d = 1
	}
	return fmt.Sprintf("0x%0*x", d, t.bits)
}

// Binary returns t as a string of 0s and 1s, most significant minterm first.
func (t T) Binary() string {
	return fmt.Sprintf("%0*b", t.Len(), t.bits)
}
