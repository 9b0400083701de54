package mylm

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when the design matrix is nil or has no rows.
	ErrEmptyInput = errors.New("mylm: empty input")
	// ErrDimensionMismatch is returned when X and y disagree on the number of observations.
	ErrDimensionMismatch = errors.New("mylm: dimension mismatch")
	// ErrInsufficientDF is returned when n <= p.
	ErrInsufficientDF = errors.New("mylm: insufficient residual degrees of freedom")
	// ErrSingularSystem is returned when the Gram matrix cannot be inverted.
	ErrSingularSystem = errors.New("mylm: singular system")
	// ErrIncompatibleDesign is returned when new data does not match the training columns.
	ErrIncompatibleDesign = errors.New("mylm: incompatible design")
	// ErrInvalidLevel is returned for an interval level outside (0, 1).
	ErrInvalidLevel = errors.New("mylm: level must lie in (0, 1)")
)

// SingularError describes a Gram matrix that failed to invert.
// errors.Is(err, ErrSingularSystem) holds for every SingularError.
type SingularError struct {
	Condition float64 // estimated condition number of XᵗX
	Limit     float64 // Config.MaxCondition at fit time
	err       error   // underlying mat.Condition, when gonum reported one
}

func (e *SingularError) Error() string {
	msg := fmt.Sprintf("%v: condition number %.3g (limit %.3g)", ErrSingularSystem, e.Condition, e.Limit)
	if e.err != nil {
		msg += ": " + e.err.Error()
	}
	return msg
}

func (e *SingularError) Is(target error) bool {
	return target == ErrSingularSystem
}

func (e *SingularError) Unwrap() error {
	return e.err
}
