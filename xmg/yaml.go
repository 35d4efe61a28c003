// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package xmg

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type yamlGate struct {
	Kind string   `yaml:"kind"`
	Ins  []string `yaml:"ins,flow"`
}

type yamlN struct {
	Inputs  int        `yaml:"inputs"`
	Gates   []yamlGate `yaml:"gates"`
	Outputs []string   `yaml:"outputs,flow"`
}

// MarshalYAML implements yaml.Marshaler.  Operands are written as by
// LitString.
func (p *N) MarshalYAML() (interface{}, error) {
	y := yamlN{Inputs: p.nin}
	for i := p.nin + 1; i < len(p.nodes); i++ {
		n := &p.nodes[i]
		g := yamlGate{Kind: n.k.String()}
		for _, m := range n.ins[:n.k.Arity()] {
			g.Ins = append(g.Ins, p.LitString(m))
		}
		y.Gates = append(y.Gates, g)
	}
	for _, m := range p.outs {
		y.Outputs = append(y.Outputs, p.LitString(m))
	}
	return y, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.  Gates are numbered after
// the inputs in the order given.
func (p *N) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var y yamlN
	if err := unmarshal(&y); err != nil {
		return err
	}
	if y.Inputs < 0 {
		return errors.Errorf("negative number of inputs %d", y.Inputs)
	}
	q := NewCap(y.Inputs, y.Inputs+len(y.Gates)+1)
	for i, g := range y.Gates {
		k, err := parseKind(g.Kind)
		if err != nil {
			return errors.Wrapf(err, "gate %d", i)
		}
		if len(g.Ins) != k.Arity() {
			return errors.Errorf("gate %d: %s with %d operands", i, k, len(g.Ins))
		}
		ins := make([]Lit, len(g.Ins))
		for j, s := range g.Ins {
			m, err := parseLit(s, q.Len())
			if err != nil {
				return errors.Wrapf(err, "gate %d", i)
			}
			ins[j] = m
		}
		q.Add(k, ins...)
	}
	for _, s := range y.Outputs {
		m, err := parseLit(s, q.Len())
		if err != nil {
			return errors.Wrap(err, "output")
		}
		q.AddOutput(m)
	}
	*p = *q
	return nil
}

func parseKind(s string) (Kind, error) {
	for i, n := range kindNames {
		if Kind(i).IsGate() && n == s {
			return Kind(i), nil
		}
	}
	return 0, errors.Errorf("unknown gate kind %q", s)
}

// parseLit parses the format of LitString, accepting only nodes below lim.
func parseLit(s string, lim int) (Lit, error) {
	neg := false
	t := strings.TrimSpace(s)
	if strings.HasPrefix(t, "!") {
		neg = true
		t = t[1:]
	}
	switch {
	case t == "0":
		return F.Cond(neg), nil
	case t == "1":
		return T.Cond(neg), nil
	case len(t) > 1 && (t[0] == 'x' || t[0] == 'g'):
		id, err := strconv.Atoi(t[1:])
		if err != nil || id <= 0 {
			return 0, errors.Errorf("bad operand %q", s)
		}
		if id >= lim {
			return 0, errors.Errorf("operand %q refers to a later node", s)
		}
		return NodeLit(id).Cond(neg), nil
	}
	return 0, errors.Errorf("bad operand %q", s)
}
