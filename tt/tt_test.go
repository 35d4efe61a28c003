// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package tt

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMajProjections(t *testing.T) {
	a, b, c := Var(3, 0), Var(3, 1), Var(3, 2)
	m := Maj(a, b, c)
	if m.Bits() != 0xe8 {
		t.Errorf("maj: got %s", m)
	}
	x := Var(2, 0).Xor(Var(2, 1))
	if x.Bits() != 0x6 {
		t.Errorf("xor: got %s", x)
	}
}

func TestCofactorSupport(t *testing.T) {
	f := Var(4, 1).And(Var(4, 3))
	assert.Equal(t, []int{1, 3}, f.Support())
	assert.True(t, f.Cofactor(1, false).Equal(Const(4, false)))
	assert.True(t, f.Cofactor(1, true).Equal(Var(4, 3)))
	assert.False(t, f.DependsOn(0))
}

func TestSymmetric(t *testing.T) {
	// a & b | c: symmetric in a and b only
	f := Var(3, 0).And(Var(3, 1)).Or(Var(3, 2))
	assert.Equal(t, [][2]int{{0, 1}}, f.SymmetricPairs())
	m := Maj(Var(3, 0), Var(3, 1), Var(3, 2))
	assert.Len(t, m.SymmetricPairs(), 3)
	for m := 0; m < 64; m++ {
		f := New(3, uint64(m*37+11))
		if !f.Swap(0, 2).Swap(0, 2).Equal(f) {
			t.Errorf("swap not involutive on %s", f)
		}
	}
}

func TestTrivial(t *testing.T) {
	v, ok := Const(3, true).IsConst()
	assert.True(t, ok)
	assert.True(t, v)
	i, neg, ok := Var(3, 2).Not().IsLiteral()
	assert.True(t, ok)
	assert.True(t, neg)
	assert.Equal(t, 2, i)
	_, _, ok = Maj(Var(3, 0), Var(3, 1), Var(3, 2)).IsLiteral()
	assert.False(t, ok)
}

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		in   string
		n    int
		bits uint64
	}{
		{"0xe8", 3, 0xe8},
		{"0x6", 2, 0x6},
		{"0b0110", 2, 0x6},
		{"0x8000000000000000", 6, 0x8000000000000000},
		{"a & b", 2, 0x8},
		{"(a & b) | (a & c) | (b & c)", 3, 0xe8},
		{"^a", 1, 0x1},
	} {
		f, err := Parse(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.n, f.N(), tc.in)
		assert.Equal(t, tc.bits, f.Bits(), tc.in)
	}
	for _, bad := range []string{"0xeee", "0b101", "0xzz", "a &"} {
		_, err := Parse(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormulaNames(t *testing.T) {
	f, names, err := FromFormula("y -> x")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, names)
	// x is input 0, y is input 1
	assert.Equal(t, Var(2, 1).Not().Or(Var(2, 0)), f)
}

func TestString(t *testing.T) {
	assert.Equal(t, "0xe8", New(3, 0xe8).String())
	assert.Equal(t, "0x6", New(2, 0x6).String())
	assert.Equal(t, "0x0006", New(4, 0x6).String())
	assert.Equal(t, "0110", New(2, 0x6).Binary())
}

func ExampleT_SymmetricPairs() {
	f, _ := Parse("0xe8")
	fmt.Println(f.Support(), f.SymmetricPairs())
	// Output: [0 1 2] [[0 1] [0 2] [1 2]]
}
