// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package search

import (
	"context"
	"time"

	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/go-air/exact/backend"
	"github.com/go-air/exact/enc"
	"github.com/go-air/exact/inter"
	"github.com/go-air/exact/metrics"
	"github.com/go-air/exact/sym"
	"github.com/go-air/exact/tt"
	"github.com/go-air/exact/xmg"
)

// BackendFactory creates the backend of a probe or sweep.
type BackendFactory func(kind string, opts backend.Options) (inter.Backend, error)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger, logrus.StandardLogger() by default.
func WithLogger(l logrus.Ext1FieldLogger) Option {
	return func(c *Controller) { c.log = l }
}

// WithBackendFactory replaces backend.New.
func WithBackendFactory(f BackendFactory) Option {
	return func(c *Controller) { c.newBackend = f }
}

// Controller synthesizes minimum networks by sweeps of SAT probes.
type Controller struct {
	cfg        Config
	log        logrus.Ext1FieldLogger
	newBackend BackendFactory
}

// New creates a controller, failing with a *ConfigError if cfg is
// invalid.
func New(cfg Config, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{cfg: cfg, log: logrus.StandardLogger(), newBackend: backend.New}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Config returns the configuration of c.
func (c *Controller) Config() Config { return c.cfg }

// Logger returns the logger of c.
func (c *Controller) Logger() logrus.Ext1FieldLogger { return c.log }

// Run synthesizes a network for t according to the objective.
//
// If the run times out the error is ErrTimeout.  Without TimeoutHeuristic
// the result then has no network; with it, the result has the best
// network found, if any, and the error is nil as long as there is one.
// If there is no network up to MaxSize the error is ErrUnsat.  In every
// case the result carries the statistics.
func (c *Controller) Run(ctx context.Context, t *Target) (*Result, error) {
	r := c.newRun(ctx, t)
	defer r.close()
	best, proved, err := r.run()
	if err != nil && !(errors.Is(err, ErrTimeout) && c.cfg.TimeoutHeuristic && best != nil) {
		best, proved = nil, false
	} else {
		err = nil
	}
	res := r.result(best, proved)
	if best != nil && c.cfg.AllSolutions {
		sols, serr := r.enumerate(best)
		res.Solutions = sols
		res.Stats.Solutions = len(sols)
		if serr != nil && !(errors.Is(serr, ErrTimeout) && c.cfg.TimeoutHeuristic) {
			res.Network, res.Solutions, res.Stats.Solutions = nil, nil, 0
			err = serr
		}
	}
	r.finish(res, err)
	return res, err
}

// Probe looks for a network for t with at most size gates and, if depth
// is positive, depth at most depth.  The network of the result is nil if
// there is none.  The probe has its own backend and encoding.
func (c *Controller) Probe(ctx context.Context, t *Target, size, depth int) (*Result, error) {
	if size < 1 {
		return nil, invalid("size", "probe size %d < 1", size)
	}
	r := c.newRun(ctx, t)
	defer r.close()
	r.fresh = true
	if p, ok := t.Trivial(); ok {
		res := r.result(p, false)
		r.finish(res, nil)
		return res, nil
	}
	p, err := r.probe(size, depth)
	res := r.result(p, false)
	if err != nil {
		res.Network = nil
	}
	r.finish(res, err)
	return res, err
}

type run struct {
	*Controller
	ctx    context.Context
	cancel context.CancelFunc
	target *Target
	start  time.Time
	stats  Stats
	fresh  bool     // never keep a session between probes
	inc    *session // the session of incremental sweeps
}

func (c *Controller) newRun(ctx context.Context, t *Target) *run {
	r := &run{Controller: c, target: t, start: time.Now()}
	if c.cfg.Budget > 0 {
		r.ctx, r.cancel = context.WithTimeout(ctx, c.cfg.Budget)
	} else {
		r.ctx, r.cancel = context.WithCancel(ctx)
	}
	return r
}

func (r *run) close() {
	if r.inc != nil {
		r.retire(r.inc)
		r.inc = nil
	}
	r.cancel()
}

func (r *run) result(p *xmg.N, proved bool) *Result {
	res := &Result{Network: p}
	if p != nil {
		r.stats.LastSize = p.Size()
		r.stats.LastDepth = p.Depth()
		r.stats.OptimumProved = proved
	}
	return res
}

func (r *run) finish(res *Result, err error) {
	if r.inc != nil {
		r.retire(r.inc)
		r.inc = nil
	}
	stats := r.stats
	stats.Solutions = res.Stats.Solutions
	stats.Runtime = time.Since(r.start).Seconds()
	if res.Network == nil {
		stats.OptimumProved = false
	}
	res.Stats = stats
	outcome := metrics.Unproved
	switch {
	case errors.Is(err, ErrTimeout):
		outcome = metrics.Timeout
	case err != nil:
		outcome = metrics.Failed
	case stats.OptimumProved:
		outcome = metrics.Proved
	}
	if res.Network != nil {
		metrics.SetLastSize(r.cfg.Basis.String(), stats.LastSize)
	}
	metrics.AddSolutions(len(res.Solutions))
	metrics.ObserveSynthesis(outcome, time.Since(r.start))
	r.log.WithFields(logrus.Fields{
		"target":  r.target.String(),
		"outcome": outcome,
		"size":    stats.LastSize,
		"depth":   stats.LastDepth,
		"elapsed": time.Since(r.start),
	}).Debug("synthesis done")
}

func (r *run) run() (*xmg.N, bool, error) {
	if p, ok := r.target.Trivial(); ok {
		r.log.WithField("target", r.target.String()).Debug("trivial target")
		return p, true, nil
	}
	r.fields().WithField("breaking", r.cfg.Breaking.String()).Debug("synthesis")
	size := &sweep{
		name:    "size",
		hi:      r.cfg.MaxSize + 1,
		start:   r.cfg.Start,
		measure: (*xmg.N).Size,
		probe:   func(s int) (*xmg.N, error) { return r.probe(s, 0) },
	}
	if err := r.sweep(size); err != nil {
		return size.best, false, err
	}
	if size.best == nil {
		if size.lo < r.cfg.MaxSize {
			return nil, false, ErrTimeout
		}
		return nil, false, errors.Wrapf(ErrUnsat, "%s with at most %d gates", r.target, r.cfg.MaxSize)
	}
	switch r.cfg.Objective {
	case SizeDepth:
		s := size.best.Size()
		depth := &sweep{
			name:    "depth",
			hi:      size.best.Depth(),
			start:   r.cfg.StartDepth,
			best:    size.best,
			measure: (*xmg.N).Depth,
			probe:   func(d int) (*xmg.N, error) { return r.probe(s, d) },
		}
		err := r.sweep(depth)
		return depth.best, size.proved() && depth.proved(), err
	case DepthSize:
		return r.depthSize(size.best, size.proved())
	}
	return size.best, size.proved(), nil
}

// sweep is the search of the least value of a measure over the networks
// computing the target, by probes bounding the measure.
type sweep struct {
	name    string
	lo, hi  int // the values up to lo are refuted, best has value hi
	start   int
	best    *xmg.N
	measure func(*xmg.N) int
	probe   func(v int) (*xmg.N, error)
}

func (sw *sweep) proved() bool {
	return sw.best != nil && sw.lo == sw.hi-1
}

// sweep probes values in (sw.lo, sw.hi) from sw.start, descending after
// every network found and ascending after every refutation, until the
// two meet.  A timed out probe is skipped in the current direction under
// TimeoutHeuristic.
func (r *run) sweep(sw *sweep) error {
	v := sw.hi - 1
	if sw.start > sw.lo && sw.start < v {
		v = sw.start
	}
	up := sw.best == nil
	for v > sw.lo && v < sw.hi {
		p, err := sw.probe(v)
		switch {
		case errors.Is(err, ErrTimeout):
			if !r.cfg.TimeoutHeuristic || r.ctx.Err() != nil {
				return err
			}
			if up {
				v++
			} else {
				v--
			}
		case err != nil:
			return err
		case p == nil:
			sw.lo, up = v, true
			v++
		default:
			sw.best, sw.hi, up = p, sw.measure(p), false
			v = sw.hi - 1
		}
	}
	r.fields().WithFields(logrus.Fields{
		"sweep":  sw.name,
		"value":  sw.hi,
		"proved": sw.proved(),
	}).Debug("sweep done")
	return nil
}

// depthSize lowers the depth of best one level at a time, looking for
// the least size realizing each depth.  Sizes below that of the previous
// level are refuted at the lower depth, so each level starts there.
func (r *run) depthSize(best *xmg.N, proved bool) (*xmg.N, bool, error) {
	d := best.Depth() - 1
	for d >= 1 {
		limit := r.cfg.Basis.MaxGates(d)
		if limit > r.cfg.MaxSize {
			limit = r.cfg.MaxSize
		}
		var found *xmg.N
		for s := best.Size(); s <= limit && found == nil; s++ {
			p, err := r.probe(s, d)
			switch {
			case errors.Is(err, ErrTimeout):
				if !r.cfg.TimeoutHeuristic || r.ctx.Err() != nil {
					return best, false, err
				}
				proved = false
			case err != nil:
				return best, false, err
			default:
				found = p
			}
		}
		if found == nil {
			return best, proved && r.cfg.Basis.MaxGates(d) <= r.cfg.MaxSize, nil
		}
		best = found
		d = found.Depth() - 1
	}
	return best, proved, nil
}

// session is a backend with the encoding of a candidate.
type session struct {
	b inter.Backend
	c *enc.Candidate
}

func (r *run) newSession(slots int) (*session, error) {
	b, err := r.newBackend(r.cfg.Backend, backend.Options{})
	if err != nil {
		return nil, errors.Wrap(err, "creating backend")
	}
	return &session{b: b, c: candidate(b, r.cfg, r.target.Table(), slots)}, nil
}

// candidate encodes the networks of up to slots gates computing f
// into dst, with the symmetry breaking of cfg.
func candidate(dst enc.LitAdder, cfg Config, f tt.T, slots int) *enc.Candidate {
	c := enc.NewCandidate(dst, enc.Spec{
		Inputs: f.N(),
		Slots:  slots,
		Basis:  cfg.Basis,
		Binary: cfg.EncWithBitvectors,
	})
	c.AddTable(f)
	sym.Add(c, cfg.Breaking, f)
	return c
}

// sessionFor returns the session of a probe of the given size.
// Incremental sessions are kept while they have enough slots and are
// replaced by sessions of at least twice the slots.
func (r *run) sessionFor(size int) (*session, error) {
	if r.fresh || !r.cfg.Incremental {
		return r.newSession(size)
	}
	if r.inc != nil && r.inc.c.Len() >= size {
		return r.inc, nil
	}
	k := size
	if r.inc != nil {
		if k < 2*r.inc.c.Len() {
			k = 2 * r.inc.c.Len()
		}
		if k > r.cfg.MaxSize {
			k = r.cfg.MaxSize
		}
		if k < size {
			k = size
		}
		r.retire(r.inc)
		r.inc = nil
	}
	s, err := r.newSession(k)
	if err != nil {
		return nil, err
	}
	r.inc = s
	return s, nil
}

func (r *run) retire(s *session) {
	r.stats.addBackend(s.b.Stats())
}

// bounds returns the assumptions limiting s to size and depth.
func (s *session) bounds(size, depth int) []z.Lit {
	var ms []z.Lit
	if m := s.c.SizeBound(size); m != z.LitNull {
		ms = append(ms, m)
	}
	if depth > 0 {
		s.c.AddDepth()
		if m := s.c.DepthBound(depth); m != z.LitNull {
			ms = append(ms, m)
		}
	}
	return ms
}

func (r *run) probeContext() (context.Context, context.CancelFunc) {
	if r.cfg.Timeout > 0 {
		return context.WithTimeout(r.ctx, r.cfg.Timeout)
	}
	return context.WithCancel(r.ctx)
}

func (r *run) fields() logrus.FieldLogger {
	return r.log.WithFields(logrus.Fields{
		"target": r.target.String(),
		"basis":  r.cfg.Basis.String(),
	})
}

func (r *run) logProbe(l logrus.FieldLogger, msg string) {
	if r.cfg.Verbose || r.cfg.VeryVerbose {
		l.Info(msg)
		return
	}
	l.Debug(msg)
}

// probe returns a network with at most size gates and, if depth is
// positive, depth at most depth, or nil if there is none.
func (r *run) probe(size, depth int) (*xmg.N, error) {
	if r.ctx.Err() != nil {
		return nil, ErrTimeout
	}
	r.stats.LastSize = size
	s, err := r.sessionFor(size)
	if err != nil {
		return nil, err
	}
	if s != r.inc {
		defer r.retire(s)
	}
	r.stats.Probes++
	ms := s.bounds(size, depth)
	l := r.fields().WithFields(logrus.Fields{"size": size, "depth": depth})
	r.logProbe(l, "probe")

	ctx, cancel := r.probeContext()
	start := time.Now()
	m, err := s.b.Solve(ctx, ms...)
	cancel()
	elapsed := time.Since(start)
	metrics.ObserveSolve(s.b.Name(), elapsed)
	l = l.WithField("elapsed", elapsed)
	basis := r.cfg.Basis.String()
	switch {
	case errors.Is(err, ErrTimeout):
		r.stats.Timeouts++
		metrics.ObserveProbe(basis, metrics.Timeout)
		l.WithField("result", metrics.Timeout).Warn("probe timed out")
		return nil, ErrTimeout
	case err != nil:
		return nil, errors.Wrapf(err, "probe size %d depth %d", size, depth)
	case m == nil:
		metrics.ObserveProbe(basis, metrics.Unsat)
		r.logProbe(l.WithField("result", metrics.Unsat), "no network")
		return nil, nil
	}
	metrics.ObserveProbe(basis, metrics.Sat)
	p := s.c.Decode(m)
	r.target.verify(p)
	l = l.WithFields(logrus.Fields{"result": metrics.Sat, "found": p.Size(), "found_depth": p.Depth()})
	r.logProbe(l, "network")
	r.dump(p)
	return p, nil
}

func (r *run) dump(p *xmg.N) {
	if r.cfg.VeryVerbose {
		r.log.Info("\n" + p.String())
		return
	}
	r.log.Trace("\n" + p.String())
}

// enumerate returns all networks of the size of best and, for the depth
// objectives, its depth, with a fresh encoding.
func (r *run) enumerate(best *xmg.N) ([]*xmg.N, error) {
	size, depth := best.Size(), 0
	if r.cfg.Objective != Size {
		depth = best.Depth()
	}
	if size == 0 {
		return []*xmg.N{best}, nil
	}
	s, err := r.newSession(size)
	if err != nil {
		return nil, err
	}
	defer r.retire(s)
	ms := s.bounds(size, depth)
	var res []*xmg.N
	for r.cfg.MaxSolutions == 0 || len(res) < r.cfg.MaxSolutions {
		if r.ctx.Err() != nil {
			return res, ErrTimeout
		}
		ctx, cancel := r.probeContext()
		start := time.Now()
		m, err := s.b.Solve(ctx, ms...)
		cancel()
		metrics.ObserveSolve(s.b.Name(), time.Since(start))
		switch {
		case errors.Is(err, ErrTimeout):
			r.stats.Timeouts++
			r.fields().WithField("solutions", len(res)).Warn("enumeration timed out")
			return res, ErrTimeout
		case err != nil:
			return res, errors.Wrap(err, "enumerating solutions")
		case m == nil:
			return res, nil
		}
		p := s.c.Decode(m)
		r.target.verify(p)
		r.dump(p)
		res = append(res, p)
		s.c.Block(m)
	}
	return res, nil
}
