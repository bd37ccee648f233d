package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	apierrors "github.com/aegislabs/aegis/internal/errors"
)

// Token holds the bearer token issued at login or registration.
type Token struct {
	mu          sync.RWMutex `json:"-"`
	AccessToken string       `json:"access_token"`
	ObtainedAt  time.Time    `json:"obtained_at"`
}

// Get returns the access token in a thread-safe manner.
func (t *Token) Get() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.AccessToken
}

// Set replaces the access token.
func (t *Token) Set(token string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.AccessToken = token
	t.ObtainedAt = time.Now()
}

// Empty reports whether no token is stored.
func (t *Token) Empty() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.AccessToken == ""
}

// GetTokenPath returns the path to the token file.
func GetTokenPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "token.json"), nil
}

// LoadToken loads the stored bearer token from disk. A missing file maps
// to ErrNoToken so callers can fall back to an unauthenticated state.
func LoadToken() (*Token, error) {
	tokenPath, err := GetTokenPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(tokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apierrors.ErrNoToken
		}
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}

	if strings.TrimSpace(token.AccessToken) == "" {
		return nil, apierrors.ErrNoToken
	}

	return &token, nil
}

// SaveToken persists the bearer token with owner-only permissions.
func SaveToken(token *Token) error {
	if _, err := EnsureConfigDir(); err != nil {
		return err
	}

	tokenPath, err := GetTokenPath()
	if err != nil {
		return err
	}

	token.mu.RLock()
	data, err := json.MarshalIndent(token, "", "  ")
	token.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(tokenPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// ClearToken removes the stored token. Called on logout and after the
// backend rejects the token with a 401.
func ClearToken() error {
	tokenPath, err := GetTokenPath()
	if err != nil {
		return err
	}

	if err := os.Remove(tokenPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}

	return nil
}
