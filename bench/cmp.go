// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bench

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// TotalResult gives the number of instance runs of r whose result
// satisfies filt.
func TotalResult(r *Run, filt func(r int) bool) int {
	ttl := 0
	for _, ir := range r.InstRuns {
		if filt(ir.Result) {
			ttl++
		}
	}
	return ttl
}

func ProvedTotal(r *Run) int {
	return TotalResult(r, func(r int) bool { return r == 1 })
}

func UnprovedTotal(r *Run) int {
	return TotalResult(r, func(r int) bool { return r == 0 })
}

func FailedTotal(r *Run) int {
	return TotalResult(r, func(r int) bool { return r == -1 })
}

// FoundTotal gives the number of instances with a network, proved or not.
func FoundTotal(r *Run) int {
	ttl := 0
	for _, ir := range r.InstRuns {
		if ir.Found() {
			ttl++
		}
	}
	return ttl
}

// Times gives the total real time and SAT solver time of r in seconds.
func Times(r *Run) (real float64, solve float64) {
	dur := time.Duration(0)
	for _, ir := range r.InstRuns {
		dur += ir.Dur
		solve += ir.Stats.SolveTime
	}
	real = float64(dur) / float64(time.Second)
	return
}

// SolveRate gives the number of proved optima per unit of real time.
func SolveRate(r *Run, unit time.Duration) float64 {
	real, _ := Times(r)
	if real == 0 {
		return 0
	}
	return float64(ProvedTotal(r)) / (real * float64(time.Second) / float64(unit))
}

// Histogram maps network sizes to the number of instances of r whose
// network has that size.
func Histogram(r *Run) map[int]int {
	res := make(map[int]int)
	for _, ir := range r.InstRuns {
		if ir.Found() {
			res[ir.Size]++
		}
	}
	return res
}

// HistogramString formats Histogram(r) in increasing size.
func HistogramString(r *Run) string {
	h := Histogram(r)
	ks := make([]int, 0, len(h))
	for k := range h {
		ks = append(ks, k)
	}
	sort.Ints(ks)
	parts := make([]string, 0, len(ks)+1)
	parts = append(parts, fmt.Sprintf("Run %s", r.Name))
	for _, k := range ks {
		parts = append(parts, fmt.Sprintf("%4d gates: %d", k, h[k]))
	}
	return strings.Join(parts, "\n")
}

// Summary produces a summary of all runs in the Suite s.
func Summary(s *Suite) string {
	hdr := `
Suite %s
----------------------------------------------------------------------------------------------
| Run                  | found    | proved   | unproved  | failed  |  time      | solve      |
----------------------------------------------------------------------------------------------`
	rSum := `| %-16s     | %-4d     | %-4d     | %-4d      | %-4d    |  %-7.2fs  | %-7.2fs   |
----------------------------------------------------------------------------------------------`
	_, nm := filepath.Split(s.Root)
	parts := make([]string, 0, len(s.Runs)+1)
	parts = append(parts, fmt.Sprintf(hdr, nm))
	for _, r := range s.Runs {
		real, solve := Times(r)
		parts = append(parts, fmt.Sprintf(rSum, rtrunc(r.Name, 16), FoundTotal(r), ProvedTotal(r),
			UnprovedTotal(r), FailedTotal(r), real, solve))
	}
	return strings.Join(parts, "\n")
}

// Listing produces a listing of all instances in all runs: the status,
// one of "p" proved, "?" unproved and "x" failed, the size and the time.
// Instances not run are marked "-".
func Listing(s *Suite) string {
	n := s.Len()
	cols := make([][]string, len(s.Runs)+2)
	nums := make([]string, n+1)
	nums[0] = "id   "
	nms := make([]string, n+1)
	nms[0] = fmt.Sprintf(" %-18s", "table")
	for i, f := range s.Tables {
		nums[i+1] = fmt.Sprintf("%-5d", i)
		nms[i+1] = fmt.Sprintf(" %-18s", rtrunc(f.String(), 18))
	}
	cols[0] = nums
	cols[1] = nms
	for i, run := range s.Runs {
		col := make([]string, n+1)
		col[0] = fmt.Sprintf(" %-16s ", rtrunc(run.Name, 16))
		byInst := make(map[int]*InstRun, len(run.InstRuns))
		for _, ir := range run.InstRuns {
			byInst[ir.Inst] = ir
		}
		for j := 0; j < n; j++ {
			ir, ok := byInst[j]
			if !ok {
				col[j+1] = fmt.Sprintf(" %-16s ", "-")
				continue
			}
			st := "p"
			switch ir.Result {
			case 0:
				st = "?"
			case -1:
				st = "x"
			}
			ds := float64(ir.Dur) / float64(time.Second)
			col[j+1] = fmt.Sprintf(" %s %3d % 9.2f  ", st, ir.Size, ds)
		}
		cols[i+2] = col
	}
	rows := make([]string, n+1)
	for i := range rows {
		row := make([]string, len(cols))
		for j := range cols {
			row[j] = cols[j][i]
		}
		rows[i] = strings.Join(row, " | ")
	}
	return strings.Join(rows, "|\n")
}

// Compare lists the instances on which runs a and b of the same suite
// found networks of different sizes, as "inst table size-a size-b".
// A missing network has size -1.
func Compare(a, b *Run) []string {
	sizes := func(r *Run) map[int]int {
		m := make(map[int]int, len(r.InstRuns))
		for _, ir := range r.InstRuns {
			m[ir.Inst] = ir.Size
		}
		return m
	}
	sa, sb := sizes(a), sizes(b)
	var res []string
	for i, f := range a.Suite.Tables {
		x, ok := sa[i]
		if !ok {
			x = -1
		}
		y, ok := sb[i]
		if !ok {
			y = -1
		}
		if x != y {
			res = append(res, fmt.Sprintf("%d %s %d %d", i, f, x, y))
		}
	}
	return res
}

func rtrunc(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}
