package cliargs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_PositionalOnly(t *testing.T) {
	tokens := []string{"crm", "contacts.search", "hello world"}
	got := Parse(tokens)

	assert.Equal(t, tokens, got.Positional, "tokens without dashes stay positional in order")
	assert.Empty(t, got.Flags)
}

func TestParse_FlagForms(t *testing.T) {
	tests := []struct {
		name       string
		tokens     []string
		positional []string
		flags      map[string]FlagValue
	}{
		{
			name:   "value flag followed by presence flag",
			tokens: []string{"--name", "Alice", "--active"},
			flags:  map[string]FlagValue{"name": String("Alice"), "active": True()},
		},
		{
			name:   "single dash behaves like double dash",
			tokens: []string{"-limit", "10"},
			flags:  map[string]FlagValue{"limit": String("10")},
		},
		{
			name:   "equals form",
			tokens: []string{"--stage=Lead"},
			flags:  map[string]FlagValue{"stage": String("Lead")},
		},
		{
			name:   "value may contain further equals signs",
			tokens: []string{"--key=a=b"},
			flags:  map[string]FlagValue{"key": String("a=b")},
		},
		{
			name:   "filter expression survives as raw value",
			tokens: []string{"--filter=value>=10000"},
			flags:  map[string]FlagValue{"filter": String("value>=10000")},
		},
		{
			name:   "flag followed by another flag is presence-only",
			tokens: []string{"--json", "--limit", "5"},
			flags:  map[string]FlagValue{"json": True(), "limit": String("5")},
		},
		{
			name:   "trailing flag with no successor is presence-only",
			tokens: []string{"--verbose"},
			flags:  map[string]FlagValue{"verbose": True()},
		},
		{
			name:       "mixed positional and flags",
			tokens:     []string{"crm", "--limit", "5", "search"},
			positional: []string{"crm", "search"},
			flags:      map[string]FlagValue{"limit": String("5")},
		},
		{
			name:   "duplicate flags are last-write-wins",
			tokens: []string{"--limit", "5", "--limit", "10"},
			flags:  map[string]FlagValue{"limit": String("10")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.tokens)
			assert.Equal(t, tt.positional, got.Positional)
			assert.Equal(t, tt.flags, got.Flags)
		})
	}
}

func TestParse_DoubleDashTerminator(t *testing.T) {
	got := Parse([]string{"a", "--", "-b", "--c"})

	assert.Equal(t, []string{"a", "-b", "--c"}, got.Positional)
	assert.Empty(t, got.Flags)
}

func TestParse_SecondDoubleDashIsPositional(t *testing.T) {
	got := Parse([]string{"--", "--", "x"})

	assert.Equal(t, []string{"--", "x"}, got.Positional)
	assert.Empty(t, got.Flags)
}

func TestParse_IsPure(t *testing.T) {
	tokens := []string{"--name", "Alice", "pos", "--active"}

	first := Parse(tokens)
	second := Parse(tokens)
	assert.Equal(t, first, second, "same input must yield identical output")
}

func TestParams_Conversion(t *testing.T) {
	got := Parse([]string{"--name", "Alice", "--active"}).Params()

	assert.Equal(t, map[string]any{"name": "Alice", "active": true}, got)
}
