// ABOUTME: Tests for the whoami and logout commands
// ABOUTME: Verifies identity output, token redaction, and session clearing

package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/Nirvasoft/A365SS/internal/store"
)

func TestWhoami_NotLoggedIn(t *testing.T) {
	setupEnv(t, "http://unused.invalid")

	var buf bytes.Buffer
	exitCode := runWhoami(&buf)

	if exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
}

func TestWhoami_Human(t *testing.T) {
	dir := setupEnv(t, "http://unused.invalid")
	seedSession(t, dir)

	var buf bytes.Buffer
	exitCode := runWhoami(&buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("mya@corp.example")) {
		t.Error("expected user id in output")
	}
	if !bytes.Contains(buf.Bytes(), []byte("Head Office")) {
		t.Error("expected domain name in output")
	}
}

func TestWhoami_JSONRedactsTokens(t *testing.T) {
	output := formatWhoamiJSON(store.Session{
		Token:        "secret-token",
		RefreshToken: "secret-refresh",
		UserID:       "u1",
		Domain:       "D1",
	})

	if bytes.Contains([]byte(output), []byte("secret-token")) {
		t.Error("bearer token must not appear in output")
	}
	if bytes.Contains([]byte(output), []byte("secret-refresh")) {
		t.Error("refresh token must not appear in output")
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(output), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed["userId"] != "u1" {
		t.Errorf("expected userId in JSON, got %v", parsed["userId"])
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	dir := setupEnv(t, "http://unused.invalid")
	seedSession(t, dir)

	var buf bytes.Buffer
	exitCode := runLogout(&buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}

	sessions, err := store.OpenSession(dir)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	if sessions.Current().IsAuthenticated() {
		t.Error("expected session cleared on disk")
	}
}

func TestLogout_NotSignedIn(t *testing.T) {
	setupEnv(t, "http://unused.invalid")

	var buf bytes.Buffer
	exitCode := runLogout(&buf)

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Not signed in")) {
		t.Error("expected not-signed-in message")
	}
}
