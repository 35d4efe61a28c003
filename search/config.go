// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package search

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/go-air/exact/backend"
	"github.com/go-air/exact/sym"
	"github.com/go-air/exact/xmg"
)

// Objective selects what is minimized.
type Objective int

const (
	// Size minimizes the number of gates.
	Size Objective = iota
	// SizeDepth minimizes the depth among networks of minimum size.
	SizeDepth
	// DepthSize minimizes the depth, then the size at that depth.
	DepthSize
)

var objectiveNames = [...]string{"size", "size-depth", "depth-size"}

func (o Objective) String() string {
	if o >= 0 && int(o) < len(objectiveNames) {
		return objectiveNames[o]
	}
	return "objective(" + strconv.Itoa(int(o)) + ")"
}

// ParseObjective parses an objective by number (0, 1, 2) or name.
func ParseObjective(s string) (Objective, error) {
	if i, err := strconv.Atoi(s); err == nil {
		return Objective(i), nil
	}
	for i, n := range objectiveNames {
		if strings.EqualFold(s, n) {
			return Objective(i), nil
		}
	}
	return 0, errors.Errorf("unknown objective %q, expected 0, 1, 2 or one of %s", s, strings.Join(objectiveNames[:], ", "))
}

// Set implements pflag.Value.
func (o *Objective) Set(s string) error {
	v, err := ParseObjective(s)
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Type implements pflag.Value.
func (o *Objective) Type() string { return "objective" }

func (o Objective) MarshalYAML() (interface{}, error) {
	return o.String(), nil
}

func (o *Objective) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return o.Set(s)
}

// Config controls a synthesis run.
type Config struct {
	Objective Objective `yaml:"objective"`
	// Start is the first size probed.
	Start int `yaml:"start"`
	// StartDepth, if positive, is the first depth probed by the depth
	// sweep of SizeDepth.
	StartDepth int `yaml:"start_depth"`
	// MaxSize is the largest size probed.
	MaxSize int `yaml:"max_size"`
	// Incremental keeps one backend for all probes of a sweep.
	Incremental bool `yaml:"incremental"`
	// AllSolutions enumerates all networks of the optimum.
	AllSolutions bool `yaml:"all_solutions"`
	// MaxSolutions limits the enumeration, 0 for no limit.
	MaxSolutions int `yaml:"max_solutions"`
	// Breaking is the set of symmetry breaking strategies.
	Breaking          sym.Set   `yaml:"breaking"`
	EncWithBitvectors bool      `yaml:"enc_with_bitvectors"`
	Basis             xmg.Basis `yaml:"basis"`
	Backend           string    `yaml:"backend"`
	Verbose           bool      `yaml:"verbose"`
	VeryVerbose       bool      `yaml:"very_verbose"`
	// Timeout limits every probe, 0 for no limit.
	Timeout time.Duration `yaml:"timeout"`
	// TimeoutHeuristic continues the sweep after a probe timed out, giving
	// a result which is not proved optimal.
	TimeoutHeuristic bool `yaml:"timeout_heuristic"`
	// Budget limits the whole run, 0 for no limit.
	Budget time.Duration `yaml:"budget"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Objective:         Size,
		Start:             1,
		MaxSize:           20,
		Breaking:          sym.All,
		EncWithBitvectors: true,
		Basis:             xmg.MIG,
		Backend:           backend.KindGini,
	}
}

// Validate checks c, returning a *ConfigError for the first invalid
// setting.
func (c *Config) Validate() error {
	switch {
	case c.Objective < Size || c.Objective > DepthSize:
		return invalid("objective", "%d not in [0,2]", int(c.Objective))
	case c.Start < 1:
		return invalid("start", "%d < 1", c.Start)
	case c.MaxSize < 1:
		return invalid("max_size", "%d < 1", c.MaxSize)
	case c.Start > c.MaxSize:
		return invalid("start", "%d exceeds max_size %d", c.Start, c.MaxSize)
	case c.StartDepth < 0:
		return invalid("start_depth", "%d < 0", c.StartDepth)
	case c.MaxSolutions < 0:
		return invalid("max_solutions", "%d < 0", c.MaxSolutions)
	case c.Basis.Kinds() == nil:
		return invalid("basis", "unknown basis %d", int(c.Basis))
	case c.Breaking&^sym.All != 0:
		return invalid("breaking", "unknown strategies %#x", uint8(c.Breaking&^sym.All))
	case !backend.Known(c.Backend):
		return invalid("backend", "unknown backend %q, expected one of %s", c.Backend, strings.Join(backend.Kinds(), ", "))
	case c.Incremental && !backend.Incremental(c.Backend):
		return invalid("incremental", "backend %s does not solve incrementally", c.Backend)
	case c.Timeout < 0:
		return invalid("timeout", "%s < 0", c.Timeout)
	case c.Budget < 0:
		return invalid("budget", "%s < 0", c.Budget)
	case c.TimeoutHeuristic && c.Timeout == 0:
		return invalid("timeout_heuristic", "requires a timeout")
	}
	return nil
}

// LoadConfig reads a YAML configuration file.  Settings missing from the
// file keep their default.
func LoadConfig(path string) (Config, error) {
	cfg := Defaults()
	d, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "reading config")
	}
	if err := yaml.UnmarshalStrict(d, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, cfg.Validate()
}
