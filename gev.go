// Package gev is a general-purpose genetic algorithm engine: it searches a
// user-defined solution space (package genotype) by iteratively selecting,
// recombining and mutating candidate solutions (package chromosome,
// population) under a user-supplied fitness function (package fitness),
// driven by one of three search strategies (package strategy).
package gev

import (
	"fmt"

	"github.com/pkg/errors"
)

// ConfigurationError reports invalid builder input, surfaced from Build().
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("gev: invalid configuration for %s: %s", e.Field, e.Reason)
}

// NewConfigurationError builds a ConfigurationError carrying a stack trace.
func NewConfigurationError(field, reason string) error {
	return errors.WithStack(&ConfigurationError{Field: field, Reason: reason})
}

// OperatorIncompatibility reports a builder-chosen operator that cannot
// legally run against the builder's chosen genotype. Detected once at
// Build(), never mid-loop.
type OperatorIncompatibility struct {
	Operator string
	Genotype string
}

func (e *OperatorIncompatibility) Error() string {
	return fmt.Sprintf("gev: operator %q is not legal for genotype %q", e.Operator, e.Genotype)
}

// NewOperatorIncompatibility builds an OperatorIncompatibility carrying a
// stack trace.
func NewOperatorIncompatibility(operator, genotype string) error {
	return errors.WithStack(&OperatorIncompatibility{Operator: operator, Genotype: genotype})
}
