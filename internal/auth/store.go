// Package auth manages Headlessly credentials: the OAuth login flow, the
// on-disk credentials store, and identity lookup against the gateway.
package auth

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/headlessly/hly/internal/config"
)

// credentialsFile is the file name inside the global config directory.
const credentialsFile = "credentials.toml"

// Credentials is what `hly login` persists and every other command reads.
type Credentials struct {
	APIKey     string    `toml:"api_key"`
	Email      string    `toml:"email,omitempty"`
	Org        string    `toml:"org,omitempty"`
	ObtainedAt time.Time `toml:"obtained_at"`
}

// ErrNotLoggedIn is returned by Load when no credentials file exists.
var ErrNotLoggedIn = errors.New("auth: not logged in (run `hly login`)")

// CredentialsPath returns the location of the credentials file.
func CredentialsPath() string {
	return filepath.Join(config.GlobalConfigDir(), credentialsFile)
}

// Save writes credentials with owner-only permissions, creating the config
// directory if needed.
func Save(creds *Credentials) error {
	dir := config.GlobalConfigDir()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("auth: create config dir (%v)", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(creds); err != nil {
		return fmt.Errorf("auth: encode credentials (%v)", err)
	}
	if err := os.WriteFile(CredentialsPath(), buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("auth: write credentials (%v)", err)
	}
	return nil
}

// Load reads stored credentials. A missing file is ErrNotLoggedIn.
func Load() (*Credentials, error) {
	data, err := os.ReadFile(CredentialsPath()) //nolint:gosec // user config path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotLoggedIn
		}
		return nil, fmt.Errorf("auth: read credentials (%v)", err)
	}

	var creds Credentials
	if err := toml.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("auth: parse credentials (%v)", err)
	}
	return &creds, nil
}

// Delete removes stored credentials. A missing file is not an error.
func Delete() error {
	err := os.Remove(CredentialsPath())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("auth: remove credentials (%v)", err)
	}
	return nil
}
