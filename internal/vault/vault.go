// internal/vault/vault.go
//
// Vault client wrapper for the keyword engine.
//
// Context
// -------
//   - Thin façade over the HashiCorp Vault Go SDK for KV‑v2 reads.
//   - The settings loader uses it once at startup to resolve secret values
//     written as `vault:<mount>/<path>#<key>`, so no long‑lived token
//     renewal loop is needed here.
//
// Public workflow
// ---------------
//  1. cli, err := vault.New()                      // during boot.
//  2. val, err := cli.Resolve(ctx, "secret/keyword-engine#bot_token")
//
// Environment expectations
// ------------------------
// • VAULT_ADDR   – scheme and host of the Vault server.
// • VAULT_TOKEN  – token (falls back to ~/.vault‑token).
package vault

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	vault "github.com/hashicorp/vault/api"
)

// Client is safe for concurrent use.  Zero value is invalid.
type Client struct {
	api *vault.Client
}

// New constructs a Vault client from the process environment.
func New() (*Client, error) {
	cfg := vault.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("vault env cfg: %w", err)
	}

	apiCli, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault api: %w", err)
	}

	if tok := os.Getenv("VAULT_TOKEN"); tok != "" {
		apiCli.SetToken(tok)
	}

	return &Client{api: apiCli}, nil
}

// Resolve fetches one key from a KV‑v2 secret addressed as
// "<mount>/<path>#<key>".
func (c *Client) Resolve(ctx context.Context, ref string) (string, error) {
	secretPath, key, ok := strings.Cut(ref, "#")
	if !ok || secretPath == "" || key == "" {
		return "", errors.New("vault ref must look like <mount>/<path>#<key>")
	}

	mount, rel := splitMount(secretPath)
	sec, err := c.api.KVv2(mount).Get(ctx, rel)
	if err != nil {
		return "", fmt.Errorf("vault get %s: %w", secretPath, err)
	}

	raw, ok := sec.Data[key]
	if !ok {
		return "", fmt.Errorf("key %q not found in secret %q", key, secretPath)
	}

	sval, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("value at %s#%s is not a string", secretPath, key)
	}
	return sval, nil
}

// splitMount separates "secret/keyword-engine/prod" into mount "secret"
// and relative path "keyword-engine/prod".
func splitMount(p string) (mount, rel string) {
	mount, rel, ok := strings.Cut(p, "/")
	if !ok {
		return p, ""
	}
	return mount, rel
}
