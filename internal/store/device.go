// ABOUTME: Stable per-installation device identifier
// ABOUTME: Generated once, persisted beside the session, reused until storage is cleared

package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const deviceFile = "device-id"

var deviceMu sync.Mutex

// DeviceID returns the installation's device identifier, generating and
// persisting a new UUID on first use. Logout does not remove it.
func DeviceID(dir string) (string, error) {
	deviceMu.Lock()
	defer deviceMu.Unlock()

	path := filepath.Join(dir, deviceFile)

	data, err := os.ReadFile(path)
	if err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("cannot read device id: %w", err)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("cannot create data dir: %w", err)
	}

	id := uuid.NewString()
	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("cannot persist device id: %w", err)
	}
	return id, nil
}
