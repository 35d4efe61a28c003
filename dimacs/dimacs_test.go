// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dimacs

import (
	"bytes"
	"testing"

	gdimacs "github.com/go-air/gini/dimacs"
	"github.com/go-air/gini/z"
	"github.com/google/go-cmp/cmp"
)

type vis struct {
	nv, nc int
	cur    []z.Lit
	cs     [][]z.Lit
	as     [][]z.Lit
	eof    bool
}

func (v *vis) Init(nv, nc int) {
	v.nv, v.nc = nv, nc
}

func (v *vis) Add(m z.Lit) {
	if m == z.LitNull {
		v.cs = append(v.cs, v.cur)
		v.cur = nil
		return
	}
	v.cur = append(v.cur, m)
}

func (v *vis) Assume(m z.Lit) {
	if m == z.LitNull {
		v.as = append(v.as, v.cur)
		v.cur = nil
		return
	}
	v.cur = append(v.cur, m)
}

func (v *vis) Eof() { v.eof = true }

var clauses = [][]z.Lit{
	{z.Dimacs2Lit(1), z.Dimacs2Lit(-2)},
	{z.Dimacs2Lit(2), z.Dimacs2Lit(3), z.Dimacs2Lit(-4)},
	{z.Dimacs2Lit(-1)},
}

func TestWriteCnf(t *testing.T) {
	var buf bytes.Buffer
	if e := WriteCnf(&buf, 4, clauses, "exact", "size 3"); e != nil {
		t.Fatal(e)
	}
	v := &vis{}
	if e := gdimacs.ReadCnf(&buf, v); e != nil {
		t.Fatalf("read back: %s", e)
	}
	if v.nv != 4 || v.nc != 3 {
		t.Errorf("header: %d vars %d clauses", v.nv, v.nc)
	}
	if diff := cmp.Diff(clauses, v.cs); diff != "" {
		t.Errorf("clauses (-want +got):\n%s", diff)
	}
}

func TestWriteICnf(t *testing.T) {
	var buf bytes.Buffer
	as := []z.Lit{z.Dimacs2Lit(4), z.Dimacs2Lit(-3)}
	if e := WriteICnf(&buf, clauses, as); e != nil {
		t.Fatal(e)
	}
	v := &vis{}
	if e := gdimacs.ReadICnf(&buf, v); e != nil {
		t.Fatalf("read back: %s", e)
	}
	if diff := cmp.Diff(clauses, v.cs); diff != "" {
		t.Errorf("clauses (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]z.Lit{as}, v.as); diff != "" {
		t.Errorf("assumptions (-want +got):\n%s", diff)
	}
}
