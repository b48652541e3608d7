package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Process exit codes.
const (
	ExitSuccess = 0
	// ExitUser covers bad flags, bad config and upstream 4xx answers.
	ExitUser = 1
	// ExitSystem covers I/O, network and failed health checks.
	ExitSystem = 2
)

// Markers attached with Mark so callers can branch with Is.
var (
	ErrInvalidConfig     = crdb.New("invalid configuration")
	ErrMissingCredential = crdb.New("api key is required")
	ErrUnknownTool       = crdb.New("unknown tool")
)

var (
	New      = crdb.New
	Newf     = crdb.Newf
	Wrap     = crdb.Wrap
	Wrapf    = crdb.Wrapf
	WithHint = crdb.WithHint
	GetHints = crdb.GetAllHints
	Is       = crdb.Is
	As       = crdb.As
	Join     = crdb.Join
	Mark     = crdb.Mark
)

// ExitError carries the process exit code for a command failure, plus an
// optional line of advice printed under the message.
type ExitError struct {
	Err        error
	Code       int
	Suggestion string
}

// NewExitError attaches code to err without a suggestion.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// NewUserError marks err as the caller's mistake.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitUser, Suggestion: suggestion}
}

// NewSystemError marks err as an environment or upstream failure.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitSystem, Suggestion: suggestion}
}

// NewConfigError is a user error pointing at doctor, unless err already
// carries a hint, in which case the first hint wins.
func NewConfigError(err error) *ExitError {
	suggestion := "Run: letta-mcp doctor"
	if hints := crdb.GetAllHints(err); len(hints) > 0 {
		suggestion = hints[0]
	}
	return NewUserError(err, suggestion)
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps err to a process exit code. Errors that never passed
// through an ExitError count as user errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if crdb.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUser
}
