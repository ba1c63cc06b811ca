/*
errors.go - Error types for the scale engine

PURPOSE:
  Sentinel errors shared by the service and the store implementations. The
  contract is to fail loudly and specifically: a caller must be able to tell
  "the record does not exist" apart from "the store is unreachable", because
  only the former is safe to render as a user-facing message.

USAGE:
  if scale.IsNotFound(err) {
      // 404, not 500
  }
*/
package scale

import "errors"

var (
	// ErrScaleNotFound is returned when a referenced scale rule doesn't exist.
	ErrScaleNotFound = errors.New("scale not found")

	// ErrShiftNotFound is returned when a referenced shift event doesn't exist.
	ErrShiftNotFound = errors.New("shift event not found")

	// ErrInvalidScale is returned when a scale definition violates the model
	// invariants (e.g. a recurring scale with cycleLength < 1).
	ErrInvalidScale = errors.New("invalid scale definition")
)

// IsNotFound reports whether err indicates a missing record rather than a
// transport or storage failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrScaleNotFound) || errors.Is(err, ErrShiftNotFound)
}

// IsInvalid reports whether err indicates a rejected scale definition.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidScale)
}
