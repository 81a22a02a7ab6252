package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/headlessly/hly/internal/rpc"
)

// Identity is the gateway's description of the authenticated principal.
type Identity struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Org     string `json:"org"`
	OrgName string `json:"org_name,omitempty"`
	Plan    string `json:"plan,omitempty"`
}

// WhoAmI resolves the identity behind the configured API key.
func WhoAmI(ctx context.Context, c rpc.Caller) (*Identity, error) {
	raw, err := c.Call(ctx, "auth", "whoami", nil)
	if err != nil {
		return nil, err
	}
	var id Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		return nil, fmt.Errorf("auth: decode whoami response (%v)", err)
	}
	return &id, nil
}
