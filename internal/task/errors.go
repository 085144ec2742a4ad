package task

import (
	"errors"
	"fmt"
)

// ErrNotLocalStrategy is returned when Sort is asked to order by a remote strategy.
var ErrNotLocalStrategy = errors.New("strategy is not sorted locally")

// ValidationKind identifies which input rule a batch broke.
type ValidationKind string

const (
	EmptyInput           ValidationKind = "empty_input"
	MalformedJSON        ValidationKind = "malformed_json"
	NotAnArray           ValidationKind = "not_an_array"
	NotNonEmpty          ValidationKind = "not_non_empty"
	NotAnObject          ValidationKind = "not_an_object"
	MissingField         ValidationKind = "missing_field"
	InvalidField         ValidationKind = "invalid_field"
	ImportanceOutOfRange ValidationKind = "importance_out_of_range"
)

// invalidInputPrefix matches the wording users already know from the web UI.
const invalidInputPrefix = "Invalid JSON format or missing required fields: "

// ValidationError describes why a task batch was rejected.
// TaskIndex is -1 when the failure is not tied to a single task.
type ValidationError struct {
	Kind      ValidationKind
	TaskIndex int
	Field     string
	Title     string
	Err       error
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case EmptyInput:
		return "JSON input cannot be empty."
	case MalformedJSON:
		if e.Err != nil {
			return invalidInputPrefix + e.Err.Error()
		}
		return invalidInputPrefix + "input is not valid JSON."
	case NotAnArray, NotNonEmpty:
		return invalidInputPrefix + "Input must be a non-empty JSON array of tasks."
	case NotAnObject:
		return invalidInputPrefix + fmt.Sprintf("Task at index %d must be a JSON object.", e.TaskIndex)
	case MissingField:
		return invalidInputPrefix + fmt.Sprintf(
			"Each task must have 'title', 'due_date', 'estimated_hours', and 'importance' (task at index %d is missing '%s').",
			e.TaskIndex, e.Field)
	case InvalidField:
		return invalidInputPrefix + fmt.Sprintf("Task at index %d has an invalid '%s' value.", e.TaskIndex, e.Field)
	case ImportanceOutOfRange:
		return invalidInputPrefix + fmt.Sprintf("Importance for task '%s' must be between 1 and 10.", e.Title)
	default:
		return invalidInputPrefix + string(e.Kind)
	}
}

func (e *ValidationError) Unwrap() error { return e.Err }
