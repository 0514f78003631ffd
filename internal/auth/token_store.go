package auth

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/99designs/keyring"
)

const serviceName = "lazycrm"

// ErrTokenNotFound is returned when no API token has been stored yet
var ErrTokenNotFound = errors.New("api token not found")

// TokenStore handles secure API token storage using the OS keyring
// with a file fallback
type TokenStore struct {
	ring          keyring.Keyring
	usingFallback bool
}

// NewTokenStore creates a token store with platform-appropriate backends
func NewTokenStore(configDir string) (*TokenStore, error) {
	backends := getBackendsForPlatform()
	fileDir := filepath.Join(configDir, "keyring")

	ring, err := keyring.Open(keyring.Config{
		ServiceName:     serviceName,
		AllowedBackends: backends,
		// File backend configuration
		FileDir: fileDir,
		FilePasswordFunc: func(_ string) (string, error) {
			return deriveFilePassword()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}

	return &TokenStore{
		ring:          ring,
		usingFallback: isUsingFallback(backends),
	}, nil
}

// getBackendsForPlatform returns the appropriate backend priority for the current OS
func getBackendsForPlatform() []keyring.BackendType {
	switch runtime.GOOS {
	case "darwin":
		return []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.FileBackend,
		}
	case "linux":
		return []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.FileBackend,
		}
	case "windows":
		return []keyring.BackendType{
			keyring.WinCredBackend,
			keyring.FileBackend,
		}
	default:
		return []keyring.BackendType{
			keyring.FileBackend,
		}
	}
}

// isUsingFallback checks if the opened keyring is using the file backend
func isUsingFallback(requestedBackends []keyring.BackendType) bool {
	if len(requestedBackends) == 1 && requestedBackends[0] == keyring.FileBackend {
		return true
	}

	for _, b := range keyring.AvailableBackends() {
		if b != keyring.FileBackend {
			// A native backend is available, likely not using fallback
			return false
		}
	}
	return true
}

// IsUsingFallback returns true if the token store is using the file
// backend instead of the native OS keyring
func (ts *TokenStore) IsUsingFallback() bool {
	return ts.usingFallback
}

// Save stores the API token for a server. Empty tokens are not saved.
func (ts *TokenStore) Save(serverURL, token string) error {
	if token == "" {
		return nil
	}

	err := ts.ring.Set(keyring.Item{
		Key:         serverURL,
		Data:        []byte(token),
		Label:       fmt.Sprintf("lazycrm: %s", serverURL),
		Description: "CRM API token for lazycrm",
	})
	if err != nil {
		return fmt.Errorf("failed to save token to keyring: %w", err)
	}
	return nil
}

// Get retrieves the API token for a server
func (ts *TokenStore) Get(serverURL string) (string, error) {
	item, err := ts.ring.Get(serverURL)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", ErrTokenNotFound
		}
		return "", fmt.Errorf("failed to read token from keyring: %w", err)
	}
	return string(item.Data), nil
}

// Delete removes the API token for a server
func (ts *TokenStore) Delete(serverURL string) error {
	err := ts.ring.Remove(serverURL)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("failed to delete token from keyring: %w", err)
	}
	return nil
}
