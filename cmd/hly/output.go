package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/headlessly/hly/internal/rpc"
)

// wrapGatewayError maps RPC failures onto CLI exit codes: auth failures,
// gateway-reported errors, and transport failures each exit differently so
// scripts can tell them apart.
func wrapGatewayError(err error) error {
	if rpc.IsAuthRequired(err) {
		return exitError(ExitAuth, "hly: the gateway rejected the API key (run `hly login`)")
	}
	var ce *rpc.CallError
	if errors.As(err, &ce) {
		return exitError(ExitUsage, "hly: %v", err)
	}
	return exitError(ExitGateway, "hly: %v", err)
}

// printResult writes a gateway result to w as indented JSON, one document
// per call, falling back to the raw bytes if the payload is not valid JSON.
func printResult(w io.Writer, raw json.RawMessage) error {
	if len(raw) == 0 {
		_, err := fmt.Fprintln(w, "null")
		return err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		_, werr := fmt.Fprintln(w, string(raw))
		return werr
	}
	_, err := fmt.Fprintln(w, buf.String())
	return err
}
