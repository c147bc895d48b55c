// ABOUTME: Shared test setup for the command package
// ABOUTME: Points the A365 env at httptest servers and seeds sessions on disk

package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Nirvasoft/A365SS/internal/auth"
	"github.com/Nirvasoft/A365SS/internal/store"
)

// setupEnv points every backend at the given URL and isolates the data dir
func setupEnv(t *testing.T, backendURL string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("A365_HXM_URL", backendURL)
	t.Setenv("A365_AUTH_URL", backendURL)
	t.Setenv("A365_MAIN_URL", backendURL)
	t.Setenv("A365_DATA_DIR", dir)
	return dir
}

// seedSession persists an authenticated session into dir
func seedSession(t *testing.T, dir string) {
	t.Helper()
	sessions, err := store.OpenSession(dir)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	err = sessions.Complete(store.Session{
		Token:      "test-token",
		UserID:     "mya@corp.example",
		Domain:     "D001",
		DomainName: "Head Office",
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
}

func TestReportError_SessionExpired(t *testing.T) {
	var buf bytes.Buffer

	exitCode := reportError(&buf, auth.ErrSessionExpired)

	if exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("a365 login")) {
		t.Error("expected login hint in output")
	}
}

func TestReportError_Generic(t *testing.T) {
	var buf bytes.Buffer

	exitCode := reportError(&buf, errors.New("backend exploded"))

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("backend exploded")) {
		t.Error("expected error message in output")
	}
}

func TestRequireLogin(t *testing.T) {
	dir := setupEnv(t, "http://unused.invalid")

	a, err := newApp()
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	var buf bytes.Buffer
	if code := a.requireLogin(&buf); code != 1 {
		t.Errorf("expected exit code 1 when logged out, got %d", code)
	}

	seedSession(t, dir)
	a, err = newApp()
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	buf.Reset()
	if code := a.requireLogin(&buf); code != 0 {
		t.Errorf("expected exit code 0 when logged in, got %d", code)
	}
}
