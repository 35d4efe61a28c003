// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package search

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/go-air/exact/inter"
)

var (
	// ErrTimeout is returned when a probe or the budget of a run expires
	// and the run cannot continue.  It is the timeout of the backends.
	ErrTimeout = inter.ErrTimeout

	// ErrUnsat is returned by Run when no network of at most the maximal
	// size realizes the target.
	ErrUnsat = errors.New("no network within the maximal size")

	// ErrInvalidConfiguration is the error every *ConfigError is.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// ConfigError reports an invalid setting.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidConfiguration) hold.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

func invalid(field, format string, args ...interface{}) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
