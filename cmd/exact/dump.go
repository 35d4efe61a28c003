// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/go-air/exact/backend"
	"github.com/go-air/exact/inter"
	"github.com/go-air/exact/search"
)

func newDumpCmd(log *logrus.Logger) *cobra.Command {
	var (
		size, depth int
		icnf        bool
		out         string
	)
	cmd := &cobra.Command{
		Use:   "dump [table or formula]",
		Short: "Write the dimacs encoding of a probe",
		Long: `Write the clauses of a probe for a network of at most --size gates in
dimacs format.  The size and depth bounds are unit clauses, or with --icnf
the assumptions of an incremental dimacs problem.`,
		Args: cobra.MaximumNArgs(1),
	}
	cf := addConfigFlags(cmd.Flags())
	tf := addTargetFlags(cmd.Flags())
	cmd.Flags().IntVar(&size, "size", 1, "size bound")
	cmd.Flags().IntVar(&depth, "depth", 0, "depth bound, 0 for none")
	cmd.Flags().BoolVar(&icnf, "icnf", false, "write incremental dimacs with the bounds as assumptions")
	cmd.Flags().StringVarP(&out, "output", "o", "-", "output file")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := cf.load(cmd.Flags())
		if err != nil {
			return err
		}
		t, err := tf.target(args)
		if err != nil {
			return err
		}
		rec := backend.NewRecorder()
		ms, err := search.Encode(rec, cfg, t, size, depth)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"target":  t.String(),
			"vars":    rec.MaxVar(),
			"clauses": rec.Len(),
		}).Debug("encoded")
		write := func(w io.Writer) error {
			if icnf {
				return rec.WriteICnf(w, ms...)
			}
			for _, m := range ms {
				inter.Clause(rec, m)
			}
			return rec.WriteCnf(w,
				fmt.Sprintf("target %s basis %s", t, cfg.Basis),
				fmt.Sprintf("size <= %d depth <= %d breaking %s", size, depth, cfg.Breaking))
		}
		if out == "-" {
			return write(os.Stdout)
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		if err := write(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	return cmd
}
