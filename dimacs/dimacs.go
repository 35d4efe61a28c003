// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package dimacs writes clause sets in the DIMACS cnf and the incremental
// icnf formats.
package dimacs

import (
	"bufio"
	"io"
	"strconv"

	"github.com/go-air/gini/z"
)

// WriteCnf writes a "p cnf" problem with the given clauses to w.  Each
// comment is written on a "c" line before the header.
func WriteCnf(w io.Writer, maxVar z.Var, clauses [][]z.Lit, comments ...string) error {
	bw := bufio.NewWriter(w)
	for _, c := range comments {
		bw.WriteString("c ")
		bw.WriteString(c)
		bw.WriteByte('\n')
	}
	bw.WriteString("p cnf ")
	bw.WriteString(strconv.Itoa(int(maxVar)))
	bw.WriteByte(' ')
	bw.WriteString(strconv.Itoa(len(clauses)))
	bw.WriteByte('\n')
	for _, c := range clauses {
		writeLits(bw, c)
	}
	return bw.Flush()
}

// WriteICnf writes a "p inccnf" problem: the clauses followed by one
// "a" line per set of assumptions.
func WriteICnf(w io.Writer, clauses [][]z.Lit, assumes ...[]z.Lit) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("p inccnf\n")
	for _, c := range clauses {
		writeLits(bw, c)
	}
	for _, a := range assumes {
		bw.WriteString("a ")
		writeLits(bw, a)
	}
	return bw.Flush()
}

func writeLits(bw *bufio.Writer, ms []z.Lit) {
	var buf [16]byte
	for _, m := range ms {
		bw.Write(strconv.AppendInt(buf[:0], int64(m.Dimacs()), 10))
		bw.WriteByte(' ')
	}
	bw.WriteString("0\n")
}
