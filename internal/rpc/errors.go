package rpc

import (
	"errors"
	"fmt"

	"github.com/headlessly/hly/internal/jsonrpc"
)

// CallError is a failure reported by the gateway itself, as opposed to a
// transport failure reaching it.
type CallError struct {
	Service string
	Method  string
	Code    int
	Message string
	Data    any
}

func (e *CallError) Error() string {
	return fmt.Sprintf("rpc: %s.%s failed: %s (code %d)", e.Service, e.Method, e.Message, e.Code)
}

// IsAuthRequired reports whether err is a gateway auth-required failure.
func IsAuthRequired(err error) bool {
	var ce *CallError
	return errors.As(err, &ce) && ce.Code == jsonrpc.CodeAuthRequired
}

// IsNotFound reports whether err is a gateway not-found failure.
func IsNotFound(err error) bool {
	var ce *CallError
	return errors.As(err, &ce) && ce.Code == jsonrpc.CodeNotFound
}
