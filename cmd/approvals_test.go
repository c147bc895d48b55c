// ABOUTME: Tests for the approvals command group
// ABOUTME: Verifies decision payloads and list defaults

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

func TestApprove_SendsDecision(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"status":200}`))
	}))
	defer server.Close()

	dir := setupEnv(t, server.URL)
	seedSession(t, dir)
	approvalComment = "ok with me"
	defer func() { approvalComment = "" }()

	var buf bytes.Buffer
	exitCode := runDecide(context.Background(), &buf, "REQ-7", models.StatusApproved)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if gotBody["syskey"] != "REQ-7" || gotBody["status"] != models.StatusApproved {
		t.Errorf("unexpected decision payload %v", gotBody)
	}
	if gotBody["comment"] != "ok with me" {
		t.Errorf("expected comment on the wire, got %v", gotBody)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Approved request REQ-7")) {
		t.Errorf("unexpected output %s", buf.String())
	}
}

func TestApprovalList_DefaultsDateRange(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"datalist": []models.Request{
				{Syskey: "REQ-2", Name: "Ko Aung", RequestTypeDesc: "Overtime", RequestStatus: "1"},
			},
		})
	}))
	defer server.Close()

	dir := setupEnv(t, server.URL)
	seedSession(t, dir)

	var buf bytes.Buffer
	exitCode := runApprovalList(context.Background(), &buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	from, _ := gotBody["fromdate"].(string)
	to, _ := gotBody["todate"].(string)
	if len(from) != 8 || len(to) != 8 {
		t.Errorf("expected yyyyMMdd defaults, got from=%q to=%q", from, to)
	}
	if gotBody["status"] != models.StatusPending {
		t.Errorf("expected pending default, got %v", gotBody["status"])
	}
	if !bytes.Contains(buf.Bytes(), []byte("Ko Aung")) {
		t.Errorf("expected requester name in output, got %s", buf.String())
	}
}
