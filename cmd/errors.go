package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/josephgoksu/taskrank/internal/analysis"
	"github.com/josephgoksu/taskrank/internal/orchestrator"
	"github.com/josephgoksu/taskrank/internal/task"
	"github.com/spf13/viper"
)

// reportedError marks an error the renderer has already shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// PrintError prints a user-facing error. With --verbose the technical
// detail of typed errors is printed as well.
func PrintError(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	if viper.GetBool("verbose") {
		if detail := technicalDetail(err); detail != "" {
			_, _ = fmt.Fprintf(w, "  %s\n", detail)
		}
	}
}

// LogError logs an error without printing to stderr if verbose mode is off.
func LogError(msg string, err error) {
	if viper.GetBool("verbose") {
		if err != nil {
			fmt.Fprintf(os.Stderr, "[DEBUG] %s: %v\n", msg, err)
			if detail := technicalDetail(err); detail != "" {
				fmt.Fprintf(os.Stderr, "[DEBUG]   %s\n", detail)
			}
		} else {
			fmt.Fprintf(os.Stderr, "[DEBUG] %s\n", msg)
		}
	}
}

func technicalDetail(err error) string {
	var (
		runErr    *orchestrator.RunError
		remoteErr *analysis.RemoteError
		validErr  *task.ValidationError
	)

	switch {
	case errors.As(err, &remoteErr):
		detail := fmt.Sprintf("remote error kind=%s", remoteErr.Kind)
		if remoteErr.StatusCode != 0 {
			detail += fmt.Sprintf(" status=%d", remoteErr.StatusCode)
		}
		if remoteErr.Err != nil {
			detail += fmt.Sprintf(" cause=%v", remoteErr.Err)
		}
		return withRun(runErr, err, detail)
	case errors.As(err, &validErr):
		detail := fmt.Sprintf("validation error kind=%s", validErr.Kind)
		if validErr.TaskIndex >= 0 {
			detail += fmt.Sprintf(" task=%d", validErr.TaskIndex)
		}
		if validErr.Field != "" {
			detail += fmt.Sprintf(" field=%s", validErr.Field)
		}
		return withRun(runErr, err, detail)
	default:
		return withRun(runErr, err, "")
	}
}

func withRun(runErr *orchestrator.RunError, err error, detail string) string {
	if !errors.As(err, &runErr) {
		return detail
	}
	prefix := fmt.Sprintf("run=%s stage=%s", runErr.RunID, runErr.Stage)
	if detail == "" {
		return prefix
	}
	return prefix + " " + detail
}
