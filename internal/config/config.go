// Package config handles .headlessly.yaml project configuration and the
// global config file under the user's config directory.
package config

import (
	"fmt"
	"net/url"
)

// Config represents the contents of a .headlessly.yaml file.
type Config struct {
	Gateway        string `yaml:"gateway,omitempty"`         // gateway base URL
	DefaultService string `yaml:"default_service,omitempty"` // service used when a command omits one
	DefaultLimit   int    `yaml:"default_limit,omitempty"`   // search result cap
	Strict         bool   `yaml:"strict,omitempty"`          // reject malformed filter/sort expressions
}

// FileName is the expected config file name in a project root.
const FileName = ".headlessly.yaml"

// Merge overlays project settings on top of global ones. Zero values in the
// project config leave the global value in place.
func Merge(global, project *Config) *Config {
	out := *global
	if project.Gateway != "" {
		out.Gateway = project.Gateway
	}
	if project.DefaultService != "" {
		out.DefaultService = project.DefaultService
	}
	if project.DefaultLimit != 0 {
		out.DefaultLimit = project.DefaultLimit
	}
	if project.Strict {
		out.Strict = true
	}
	return &out
}

// Validate rejects settings that would break every command: a gateway URL
// that is not absolute http(s), or a negative result cap.
func (c *Config) Validate() error {
	if c.Gateway != "" {
		u, err := url.Parse(c.Gateway)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("config: gateway %q is not an absolute http(s) URL", c.Gateway)
		}
	}
	if c.DefaultLimit < 0 {
		return fmt.Errorf("config: default_limit must not be negative (got %d)", c.DefaultLimit)
	}
	return nil
}
