// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Command exact synthesizes minimum majority, xor-majority and
// and-inverter networks of Boolean functions.
//
// Functions are given by truth tables, such as 0xe8 for the majority
// of three inputs, or by formulas such as "a & b | c".
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/go-air/exact/metrics"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	debug       bool
	trace       bool
	metricsAddr string
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}
	log := logrus.New()
	log.SetOutput(os.Stderr)

	cmd := &cobra.Command{
		Use:          "exact",
		Short:        "Exact synthesis of minimum logic networks",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			switch {
			case o.trace:
				log.SetLevel(logrus.TraceLevel)
			case o.debug:
				log.SetLevel(logrus.DebugLevel)
			}
			if o.metricsAddr != "" {
				serveMetrics(log, o.metricsAddr)
			}
			return nil
		},
	}
	cmd.PersistentFlags().BoolVar(&o.debug, "debug", false, "use debug log level")
	cmd.PersistentFlags().BoolVar(&o.trace, "trace", false, "use trace log level, showing decoded gates")
	cmd.PersistentFlags().StringVar(&o.metricsAddr, "metrics-addr", "", "address to serve prometheus metrics on /metrics (eg :9090)")

	cmd.AddCommand(
		newSynthCmd(log),
		newHeuristicCmd(log),
		newDumpCmd(log),
		newBenchCmd(log),
	)
	return cmd
}

func serveMetrics(log logrus.FieldLogger, addr string) {
	metrics.RegisterExact()
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.WithError(err).Error("metrics server stopped")
		}
	}()
	log.WithField("addr", addr).Info("serving metrics")
}
