package orchestrator

import (
	"errors"
	"fmt"
)

var (
	// ErrRunInFlight is returned when a run is requested while another is in progress.
	ErrRunInFlight = errors.New("an analysis run is already in progress")

	// ErrIllegalTransition indicates a bug in the run sequence.
	ErrIllegalTransition = errors.New("illegal state transition")
)

// RunError wraps the error that ended a run with the stage it happened in.
type RunError struct {
	RunID string
	Stage State
	Err   error
}

func (e *RunError) Error() string {
	return e.Err.Error()
}

func (e *RunError) Unwrap() error { return e.Err }

func illegalTransition(from, to State) error {
	return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
}
