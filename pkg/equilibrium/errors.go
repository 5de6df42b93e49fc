package equilibrium

import (
	"errors"
	"fmt"
)

// ErrSolveFailed is wrapped by every SolveError.
var ErrSolveFailed = errors.New("equilibrium solve failed")

// Constraint names the condition a failed solve could not satisfy.
type Constraint string

const (
	ConstraintInput       Constraint = "input"
	ConstraintCarbon      Constraint = "carbon"
	ConstraintHydrogen    Constraint = "hydrogen"
	ConstraintOxygen      Constraint = "oxygen"
	ConstraintWGSR        Constraint = "wgsr"
	ConstraintConvergence Constraint = "convergence"
)

// SolveError reports which balance or equilibrium constraint could not be
// met.
type SolveError struct {
	Constraint Constraint
	Detail     string
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("%v: %s constraint: %s", ErrSolveFailed, e.Constraint, e.Detail)
}

func (e *SolveError) Unwrap() error {
	return ErrSolveFailed
}

func fail(c Constraint, format string, args ...any) error {
	return &SolveError{Constraint: c, Detail: fmt.Sprintf(format, args...)}
}
