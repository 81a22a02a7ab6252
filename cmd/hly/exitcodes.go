package main

import "fmt"

// Exit codes for the hly CLI.
const (
	ExitOK      = 0 // Success.
	ExitUsage   = 1 // Invalid arguments or generic failure.
	ExitAuth    = 2 // Authentication required or rejected.
	ExitGateway = 3 // Gateway unreachable or returned a server error.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError with a formatted message.
func exitError(code int, format string, args ...any) *exitCodeError {
	return &exitCodeError{code: code, msg: fmt.Sprintf(format, args...)}
}
