// ABOUTME: Tests for the holidays command
// ABOUTME: Verifies the year query parameter and list formatting

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Nirvasoft/A365SS/internal/models"
)

func TestHolidays_List(t *testing.T) {
	var gotYear, gotUserID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotYear = r.URL.Query().Get("year")
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		gotUserID, _ = body["userid"].(string)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []models.Holiday{
				{Date: "2026-01-01", HolidayName: "New Year's Day"},
				{Date: "2026-04-13", HolidayName: "Thingyan"},
			},
		})
	}))
	defer server.Close()

	dir := setupEnv(t, server.URL)
	seedSession(t, dir)
	holidayYear = 2026
	defer func() { holidayYear = 0 }()

	var buf bytes.Buffer
	exitCode := runHolidays(context.Background(), &buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if gotYear != "2026" {
		t.Errorf("expected year query param, got %q", gotYear)
	}
	if gotUserID != "mya@corp.example" {
		t.Errorf("expected injected userid in body, got %q", gotUserID)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Thingyan")) {
		t.Errorf("expected holiday name in output, got %s", buf.String())
	}
}

func TestHolidays_Empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	dir := setupEnv(t, server.URL)
	seedSession(t, dir)
	holidayYear = 2026
	defer func() { holidayYear = 0 }()

	var buf bytes.Buffer
	exitCode := runHolidays(context.Background(), &buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("No holidays")) {
		t.Errorf("expected empty message, got %s", buf.String())
	}
}
