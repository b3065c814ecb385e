package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/animset/internal/animation"
	"github.com/roach88/animset/internal/codec"
	"github.com/roach88/animset/internal/store"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Operation refused (nothing stored, animation not playing, bad payload)
	ExitCommandError = 2 // Command error (bad arguments, database unavailable)
)

// ExitError carries the exit code a command should terminate with.
type ExitError struct {
	Code    int    // ExitFailure or ExitCommandError
	Message string
	Err     error // optional
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Error codes reported in JSON responses.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeDeserialize  = "DESERIALIZE"
	CodeNotPlaying   = "NOT_PLAYING"
	CodeBadArgument  = "BAD_ARGUMENT"
	CodeInternal     = "INTERNAL"
	codeDecodePrefix = "DECODE_"
)

// ErrorCode classifies err for JSON output.
func ErrorCode(err error) string {
	var argErr *argumentError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, store.ErrNotFound):
		return CodeNotFound
	case errors.Is(err, errNotPlaying):
		return CodeNotPlaying
	case errors.As(err, &argErr):
		return CodeBadArgument
	case animation.IsDeserializationError(err):
		return CodeDeserialize
	}
	if code := codec.CodeOf(err); code != "" {
		return codeDecodePrefix + string(code)
	}
	return CodeInternal
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format  string
	Writer  io.Writer
	Verbose bool
}

// CLIResponse is the JSON envelope of every command.
type CLIResponse struct {
	Status string    `json:"status"` // "ok" or "error"
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Success outputs data. In text mode data is printed with its String
// method or %v.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fail returns err wrapped with exitCode. In JSON mode an error envelope is
// also written to Writer; text mode leaves reporting to the caller of
// Execute.
func (f *OutputFormatter) Fail(exitCode int, message string, err error) error {
	if f.Format == "json" {
		_ = f.Error(ErrorCode(err), message, errDetails(err))
	}
	return WrapExitError(exitCode, message, err)
}

func errDetails(err error) any {
	if err == nil {
		return nil
	}
	return err.Error()
}
