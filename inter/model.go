// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package inter

import "github.com/go-air/gini/z"

// Value is a three valued truth value.
type Value int8

const (
	Unknown Value = 0
	True    Value = 1
	False   Value = -1
)

func (v Value) String() string {
	switch v {
	case True:
		return "1"
	case False:
		return "0"
	}
	return "?"
}

// Model is an assignment of variables, where some variables may be
// unknown because the backend did not report them.
type Model struct {
	vals []Value
}

// NewModel creates a model for variables 1..maxVar, all unknown.
func NewModel(maxVar z.Var) *Model {
	return &Model{vals: make([]Value, maxVar+1)}
}

// Set sets the value of v.
func (m *Model) Set(v z.Var, b bool) {
	if b {
		m.vals[v] = True
	} else {
		m.vals[v] = False
	}
}

// Get returns the value of the literal a.
func (m *Model) Get(a z.Lit) Value {
	v := a.Var()
	if int(v) >= len(m.vals) {
		return Unknown
	}
	r := m.vals[v]
	if !a.IsPos() {
		r = -r
	}
	return r
}

// Known returns whether v has a value in m.
func (m *Model) Known(v z.Var) bool {
	return int(v) < len(m.vals) && m.vals[v] != Unknown
}

// Value returns whether a is true in m, treating unknown variables as
// false.  Value implements github.com/go-air/gini/inter.Model.
func (m *Model) Value(a z.Lit) bool {
	v := a.Var()
	if int(v) >= len(m.vals) || m.vals[v] == Unknown {
		return !a.IsPos()
	}
	return m.Get(a) == True
}

// MaxVar returns the maximal variable m has room for.
func (m *Model) MaxVar() z.Var {
	if len(m.vals) == 0 {
		return 0
	}
	return z.Var(len(m.vals) - 1)
}
