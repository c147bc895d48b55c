// ABOUTME: Tests for the session negotiator
// ABOUTME: Simulates the IAM backend with httptest and verifies phase ordering and soft failures

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Nirvasoft/A365SS/internal/store"
)

// fakeIAM is a scriptable IAM backend. Nil handlers return 404.
type fakeIAM struct {
	signin    http.HandlerFunc
	verifyOTP http.HandlerFunc
	domain    http.HandlerFunc
	getMenu   http.HandlerFunc
	renew     http.HandlerFunc
}

func (f *fakeIAM) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	register := func(path string, h http.HandlerFunc) {
		if h != nil {
			mux.HandleFunc(path, h)
		}
	}
	register("/signin", f.signin)
	register("/verify-otp", f.verifyOTP)
	register("/domain", f.domain)
	register("/get-menu", f.getMenu)
	register("/generate/renew-token", f.renew)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestNegotiator(t *testing.T, baseURL string) (*Negotiator, *store.SessionStore) {
	t.Helper()
	sessions, err := store.OpenSession(t.TempDir())
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	n := &Negotiator{
		authURL:  baseURL,
		sid:      "999",
		signer:   Signer{AppID: "004", Secret: testSecret},
		http:     &http.Client{Timeout: 5 * time.Second},
		sessions: sessions,
		deviceID: func() (string, error) { return "abc-123", nil },
		now:      func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) },
	}
	return n, sessions
}

func jsonResponse(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func signinOK(w http.ResponseWriter, r *http.Request) {
	var env SignInEnvelope
	json.NewDecoder(r.Body).Decode(&env)
	if env.SToken == "" || env.UUID == "" || env.DateTime == "" {
		jsonResponse(w, http.StatusBadRequest, map[string]interface{}{"status": 400, "message": "unsigned request"})
		return
	}
	jsonResponse(w, http.StatusOK, map[string]interface{}{
		"status": 200,
		"data": map[string]interface{}{
			"access_token": "iam-token",
			"user_id":      env.UserID,
			"usersyskey":   "SYS-1",
			"role":         2,
		},
	})
}

func TestLogin_FullHandshake(t *testing.T) {
	var menuAuth string
	iam := &fakeIAM{
		signin: signinOK,
		domain: func(w http.ResponseWriter, r *http.Request) {
			jsonResponse(w, http.StatusOK, map[string]interface{}{
				"data": map[string]interface{}{
					"domain": []map[string]string{{"id": "D001", "name": "Head Office"}},
				},
			})
		},
		getMenu: func(w http.ResponseWriter, r *http.Request) {
			menuAuth = r.Header.Get("Authorization")
			jsonResponse(w, http.StatusOK, map[string]interface{}{
				"access_token":  "hxm-token",
				"refresh_token": "hxm-refresh",
			})
		},
	}
	n, sessions := newTestNegotiator(t, iam.server(t).URL)

	session, err := n.Login(context.Background(), "mya@corp.example", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if session.Token != "hxm-token" || session.RefreshToken != "hxm-refresh" {
		t.Errorf("Expected menu-exchange tokens, got %+v", session)
	}
	if session.Domain != "D001" || session.DomainName != "Head Office" {
		t.Errorf("Expected resolved domain, got %+v", session)
	}
	if session.UserSyskey != "SYS-1" || session.Role != "2" {
		t.Errorf("Expected identity fields carried over, got %+v", session)
	}
	if menuAuth != "Bearer iam-token" {
		t.Errorf("Expected menu exchange authenticated with phase-1 token, got %q", menuAuth)
	}
	if got := sessions.Current(); !got.IsAuthenticated() || got.Token != "hxm-token" {
		t.Errorf("Expected session persisted, got %+v", got)
	}
}

func TestLogin_DomainPhaseFailureIsSoft(t *testing.T) {
	iam := &fakeIAM{
		signin: signinOK,
		domain: func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
		// get-menu missing entirely: 404, also soft
	}
	n, _ := newTestNegotiator(t, iam.server(t).URL)

	session, err := n.Login(context.Background(), "mya@corp.example", "pw")
	if err != nil {
		t.Fatalf("Login should not abort on phase-2 failure: %v", err)
	}

	if session.Token != "iam-token" {
		t.Errorf("Expected phase-1 token fallback, got %s", session.Token)
	}
	if session.UserID != "mya@corp.example" {
		t.Errorf("Expected user id set, got %s", session.UserID)
	}
	if session.Domain != "" || session.DomainName != "" {
		t.Errorf("Expected empty domain after soft failure, got %+v", session)
	}
}

func TestLogin_MenuExchangeFailureKeepsSignInToken(t *testing.T) {
	iam := &fakeIAM{
		signin: signinOK,
		domain: func(w http.ResponseWriter, r *http.Request) {
			jsonResponse(w, http.StatusOK, map[string]interface{}{
				"datalist": []map[string]string{{"domaincode": "D9", "domainname": "Branch"}},
			})
		},
		getMenu: func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "not for this tenant", http.StatusBadRequest)
		},
	}
	n, _ := newTestNegotiator(t, iam.server(t).URL)

	session, err := n.Login(context.Background(), "u1", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if session.Token != "iam-token" || session.RefreshToken != "" {
		t.Errorf("Expected sign-in token retained, got %+v", session)
	}
	if session.Domain != "D9" || session.DomainName != "Branch" {
		t.Errorf("Expected alternate domain list shape parsed, got %+v", session)
	}
}

func TestLogin_RejectedByStatusField(t *testing.T) {
	iam := &fakeIAM{
		signin: func(w http.ResponseWriter, r *http.Request) {
			jsonResponse(w, http.StatusOK, map[string]interface{}{
				"status":  401,
				"message": "User ID or password is incorrect.",
			})
		},
	}
	n, sessions := newTestNegotiator(t, iam.server(t).URL)

	_, err := n.Login(context.Background(), "u1", "bad")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Expected ErrInvalidCredentials, got %v", err)
	}
	if err.Error() != "User ID or password is incorrect." {
		t.Errorf("Expected server message surfaced, got %q", err.Error())
	}
	if sessions.Current().IsAuthenticated() {
		t.Error("Expected no session persisted after rejection")
	}
}

func TestLogin_RejectedByHTTPStatus(t *testing.T) {
	iam := &fakeIAM{
		signin: func(w http.ResponseWriter, r *http.Request) {
			jsonResponse(w, http.StatusUnauthorized, map[string]interface{}{})
		},
	}
	n, sessions := newTestNegotiator(t, iam.server(t).URL)

	_, err := n.Login(context.Background(), "u1", "bad")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Expected ErrInvalidCredentials, got %v", err)
	}
	if sessions.Current().IsAuthenticated() {
		t.Error("Expected no session persisted")
	}
}

func TestRequestOTPAndVerify(t *testing.T) {
	iam := &fakeIAM{
		signin: func(w http.ResponseWriter, r *http.Request) {
			var env SignInEnvelope
			json.NewDecoder(r.Body).Decode(&env)
			if env.ReqType != ReqTypeOTPRequest {
				jsonResponse(w, http.StatusBadRequest, map[string]interface{}{"status": 400})
				return
			}
			jsonResponse(w, http.StatusOK, map[string]interface{}{
				"status": 200,
				"data":   map[string]interface{}{"session_id": "challenge-7"},
			})
		},
		verifyOTP: func(w http.ResponseWriter, r *http.Request) {
			var req map[string]string
			json.NewDecoder(r.Body).Decode(&req)
			if req["otp"] != "123456" || req["session"] != "challenge-7" || req["sid"] != "999" {
				jsonResponse(w, http.StatusOK, map[string]interface{}{"status": 401, "message": "OTP mismatch"})
				return
			}
			jsonResponse(w, http.StatusOK, map[string]interface{}{
				"status": 200,
				"data":   map[string]interface{}{"access_token": "otp-token", "user_id": req["user_id"]},
			})
		},
	}
	n, _ := newTestNegotiator(t, iam.server(t).URL)
	ctx := context.Background()

	challenge, err := n.RequestOTP(ctx, "mya@corp.example")
	if err != nil {
		t.Fatalf("RequestOTP: %v", err)
	}
	if challenge != "challenge-7" {
		t.Errorf("Expected challenge id, got %s", challenge)
	}

	if _, err := n.VerifyOTP(ctx, "mya@corp.example", "000000", challenge); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected rejection for wrong code, got %v", err)
	}

	session, err := n.VerifyOTP(ctx, "mya@corp.example", "123456", challenge)
	if err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
	if session.Token != "otp-token" || session.UserID != "mya@corp.example" {
		t.Errorf("Unexpected session %+v", session)
	}
}

func TestVerifyOTP_FallbackMessage(t *testing.T) {
	iam := &fakeIAM{
		verifyOTP: func(w http.ResponseWriter, r *http.Request) {
			jsonResponse(w, http.StatusOK, map[string]interface{}{"status": 401})
		},
	}
	n, _ := newTestNegotiator(t, iam.server(t).URL)

	_, err := n.VerifyOTP(context.Background(), "u1", "000000", "challenge-7")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Expected ErrInvalidCredentials, got %v", err)
	}
	if err.Error() != "OTP verification failed." {
		t.Errorf("Expected OTP-specific fallback message, got %q", err.Error())
	}
}

func TestVerifyOTP_ServerMessageWins(t *testing.T) {
	iam := &fakeIAM{
		verifyOTP: func(w http.ResponseWriter, r *http.Request) {
			jsonResponse(w, http.StatusOK, map[string]interface{}{"status": 401, "message": "Code expired."})
		},
	}
	n, _ := newTestNegotiator(t, iam.server(t).URL)

	_, err := n.VerifyOTP(context.Background(), "u1", "000000", "challenge-7")
	if err == nil || err.Error() != "Code expired." {
		t.Errorf("Expected server message surfaced, got %v", err)
	}
}

func TestRenew_ReplacesBearerTokenOnly(t *testing.T) {
	iam := &fakeIAM{
		renew: func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer old-token" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			jsonResponse(w, http.StatusOK, map[string]interface{}{"token": "fresh-token"})
		},
	}
	n, sessions := newTestNegotiator(t, iam.server(t).URL)
	sessions.Complete(store.Session{Token: "old-token", RefreshToken: "keep", UserID: "u1", Domain: "D1"})

	if err := n.Renew(context.Background()); err != nil {
		t.Fatalf("Renew: %v", err)
	}

	got := sessions.Current()
	if got.Token != "fresh-token" {
		t.Errorf("Expected replaced token, got %s", got.Token)
	}
	if got.RefreshToken != "keep" || got.UserID != "u1" || got.Domain != "D1" {
		t.Errorf("Expected identity untouched, got %+v", got)
	}
}

func TestRenew_Failure(t *testing.T) {
	iam := &fakeIAM{
		renew: func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusUnauthorized)
		},
	}
	n, sessions := newTestNegotiator(t, iam.server(t).URL)
	sessions.Complete(store.Session{Token: "old-token", UserID: "u1"})

	if err := n.Renew(context.Background()); err == nil {
		t.Error("Expected error from rejected renew")
	}
	if sessions.Current().Token != "old-token" {
		t.Error("Expected token unchanged after failed renew")
	}
}

func TestRenew_NotAuthenticated(t *testing.T) {
	n, _ := newTestNegotiator(t, "http://unused.invalid")

	if err := n.Renew(context.Background()); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("Expected ErrSessionExpired, got %v", err)
	}
}
