// Package cliargs parses free-form command-line tails, filter expressions,
// and sort directives into structured values.
//
// Commands like `hly call` accept arbitrary parameter names that cannot be
// registered as cobra flags ahead of time, so their trailing tokens are
// parsed here instead. All parsers in this package are total: malformed
// input degrades to an empty or default result rather than an error.
package cliargs

import "strings"

// FlagValue is either a string value or a bare presence marker. A flag
// given without a value (e.g. `--active`) carries Bool=true and no string.
type FlagValue struct {
	Str  string
	Bool bool
}

// String returns a FlagValue carrying s.
func String(s string) FlagValue { return FlagValue{Str: s} }

// True returns a presence-only FlagValue.
func True() FlagValue { return FlagValue{Bool: true} }

// ParsedArgs is the result of Parse: positional tokens in input order and
// a flag map keyed by flag name.
type ParsedArgs struct {
	Positional []string
	Flags      map[string]FlagValue
}

// Params converts the flag map to a generic parameter object suitable for
// an RPC params payload: string flags stay strings, presence flags become
// the boolean true.
func (p ParsedArgs) Params() map[string]any {
	out := make(map[string]any, len(p.Flags))
	for k, v := range p.Flags {
		if v.Bool {
			out[k] = true
		} else {
			out[k] = v.Str
		}
	}
	return out
}

// Parse splits tokens into positional arguments and flags.
//
// Rules, applied left to right with no backtracking:
//
//   - a bare `--` stops flag parsing; it is consumed and every later token
//     (including further `--`) is positional
//   - a token not starting with `-` is positional
//   - `-key=value` / `--key=value` splits at the first `=`; the remainder
//     is the string value and may itself contain `=` or `>`
//   - `-key` / `--key` consumes the next token as its value when that token
//     exists and does not start with `-`; otherwise the flag is presence-only
//
// Duplicate flag names are last-write-wins. Any string is accepted as a key.
func Parse(tokens []string) ParsedArgs {
	parsed := ParsedArgs{Flags: make(map[string]FlagValue)}

	stopped := false
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if !stopped && tok == "--" {
			stopped = true
			continue
		}
		if stopped || len(tok) == 0 || tok[0] != '-' {
			parsed.Positional = append(parsed.Positional, tok)
			continue
		}

		name := stripDashes(tok)
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			parsed.Flags[name[:eq]] = String(name[eq+1:])
			continue
		}

		if i+1 < len(tokens) && !isFlagToken(tokens[i+1]) {
			parsed.Flags[name] = String(tokens[i+1])
			i++
			continue
		}
		parsed.Flags[name] = True()
	}

	return parsed
}

func stripDashes(tok string) string {
	if strings.HasPrefix(tok, "--") {
		return tok[2:]
	}
	return tok[1:]
}

func isFlagToken(tok string) bool {
	return len(tok) > 0 && tok[0] == '-'
}
