// Copyright 2013 Travis Keep. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or
// at http://opensource.org/licenses/BSD-3-Clause.

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/keep94/recurrence/internal/logx"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // One or more appointments are invalid
	ExitCommandError = 2 // Bad flags, unreadable files, unknown names
)

// ExitError is an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
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
// Returns ExitSuccess for nil and ExitFailure if the error is not an
// ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter writes command output in the requested format.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Log output goes here so that it never mixes with results
	Verbose   bool
}

// CLIResponse is the JSON envelope for validate output.
type CLIResponse struct {
	Status string      `json:"status"`         // "ok" or "error"
	Data   interface{} `json:"data,omitempty"` // payload
}

// JSON writes v as one line of JSON.
func (f *OutputFormatter) JSON(v interface{}) error {
	return json.NewEncoder(f.Writer).Encode(v)
}

// Envelope writes data wrapped in a CLIResponse.
func (f *OutputFormatter) Envelope(ok bool, data interface{}) error {
	status := "ok"
	if !ok {
		status = "error"
	}
	return f.JSON(CLIResponse{Status: status, Data: data})
}

// Logger returns a console logger writing to ErrWriter. Verbose turns on
// debug output. JSON output without Verbose logs nothing so that scripts
// see only the JSON document.
func (f *OutputFormatter) Logger() zerolog.Logger {
	if f.Format == "json" && !f.Verbose {
		return logx.Nop()
	}
	level := "info"
	if f.Verbose {
		level = "debug"
	}
	return logx.NewConsole(f.GetErrWriter(), level)
}

// GetErrWriter returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
