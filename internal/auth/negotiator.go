// ABOUTME: Session negotiator implementing the three-phase IAM login handshake
// ABOUTME: Sign-in (fatal on failure), domain resolution and menu token exchange (soft)

package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/Nirvasoft/A365SS/internal/api"
	"github.com/Nirvasoft/A365SS/internal/config"
	"github.com/Nirvasoft/A365SS/internal/store"
)

// Negotiator exchanges user credentials for a durable session by chaining
// the IAM sign-in, domain-list, and menu endpoints. Phase 1 failures are
// fatal to the attempt; phases 2 and 3 degrade the resulting session
// instead of failing it.
type Negotiator struct {
	authURL  string
	sid      string
	signer   Signer
	http     *http.Client
	sessions *store.SessionStore
	deviceID func() (string, error)
	now      func() time.Time
}

// NewNegotiator wires a negotiator against cfg's IAM auth namespace.
func NewNegotiator(cfg *config.Config, sessions *store.SessionStore, httpClient *http.Client) *Negotiator {
	return &Negotiator{
		authURL:  cfg.AuthURL,
		sid:      cfg.SID,
		signer:   Signer{AppID: cfg.AppID, Secret: cfg.SecretKey},
		http:     httpClient,
		sessions: sessions,
		deviceID: func() (string, error) { return store.DeviceID(cfg.DataDir) },
		now:      time.Now,
	}
}

// phase1 carries the identity fields the sign-in (or OTP verify) response
// contributes to the final session.
type phase1 struct {
	token      string
	userID     string
	userSyskey string
	role       string
}

// Login runs the password flow: signed envelope with req_type 1, then the
// domain and menu phases. The returned session is already persisted.
func (n *Negotiator) Login(ctx context.Context, userID, password string) (store.Session, error) {
	device, err := n.deviceID()
	if err != nil {
		return store.Session{}, err
	}

	env := NewSignInEnvelope(n.signer, n.sid, device, userID, password, ReqTypePassword, n.now())
	status, body, err := n.postJSON(ctx, n.authURL+api.SignIn, "", env)
	if err != nil {
		return store.Session{}, err
	}

	ph1, authErr := parseSignIn(status, body, userID, msgLoginFailed)
	if authErr != nil {
		return store.Session{}, authErr
	}
	return n.completeLogin(ctx, ph1)
}

// RequestOTP asks the backend to send a one-time code and returns the
// challenge id that must be echoed back to VerifyOTP.
func (n *Negotiator) RequestOTP(ctx context.Context, userID string) (string, error) {
	device, err := n.deviceID()
	if err != nil {
		return "", err
	}

	env := NewSignInEnvelope(n.signer, n.sid, device, userID, "", ReqTypeOTPRequest, n.now())
	status, body, err := n.postJSON(ctx, n.authURL+api.SignIn, "", env)
	if err != nil {
		return "", err
	}

	if rejected(status, body) {
		msg := gjson.GetBytes(body, "message").String()
		if msg == "" {
			msg = "Failed to send OTP."
		}
		return "", &AuthError{Err: ErrInvalidCredentials, Message: msg}
	}

	challenge := firstString(body, "data.session_id", "session_id", "session")
	if challenge == "" {
		return "", &AuthError{Err: ErrInvalidCredentials, Message: "Failed to send OTP."}
	}
	return challenge, nil
}

// VerifyOTP completes the OTP flow with the code the user received and
// the challenge id from RequestOTP, then runs the domain and menu phases.
func (n *Negotiator) VerifyOTP(ctx context.Context, userID, code, challenge string) (store.Session, error) {
	payload := map[string]string{
		"user_id": userID,
		"otp":     code,
		"session": challenge,
		"app_id":  n.signer.AppID,
		"sid":     n.sid,
	}
	status, body, err := n.postJSON(ctx, n.authURL+api.VerifyOTP, "", payload)
	if err != nil {
		return store.Session{}, err
	}

	ph1, authErr := parseSignIn(status, body, userID, msgVerifyFailed)
	if authErr != nil {
		return store.Session{}, authErr
	}
	return n.completeLogin(ctx, ph1)
}

// completeLogin runs phases 2 and 3 and persists the session. Both phases
// are soft: their failure degrades the session, never aborts the login.
func (n *Negotiator) completeLogin(ctx context.Context, ph1 phase1) (store.Session, error) {
	domainID, domainName := n.resolveDomain(ctx, ph1)
	token, refresh := n.exchangeMenu(ctx, ph1, domainID, domainName)

	session := store.Session{
		Token:        token,
		RefreshToken: refresh,
		UserID:       ph1.userID,
		Domain:       domainID,
		DomainName:   domainName,
		UserSyskey:   ph1.userSyskey,
		Role:         ph1.role,
	}
	if err := n.sessions.Complete(session); err != nil {
		return store.Session{}, fmt.Errorf("cannot persist session: %w", err)
	}
	return session, nil
}

// resolveDomain fetches the caller's domain list and picks the first
// entry. Any failure, including an empty list, yields empty domain
// fields; some deployments simply have no domain selection.
func (n *Negotiator) resolveDomain(ctx context.Context, ph1 phase1) (string, string) {
	payload := map[string]string{"user_id": ph1.userID, "app_id": n.signer.AppID}
	status, body, err := n.postJSON(ctx, n.authURL+api.DomainList, ph1.token, payload)
	if err != nil || status < 200 || status >= 300 {
		slog.Warn("Domain list fetch failed, proceeding without domain", "status", status, "error", err)
		return "", ""
	}

	for _, path := range []string{"data.domain", "datalist", "data"} {
		list := gjson.GetBytes(body, path)
		if !list.IsArray() {
			continue
		}
		entries := list.Array()
		if len(entries) == 0 {
			continue
		}
		first := entries[0]
		id := first.Get("id").String()
		if id == "" {
			id = first.Get("domaincode").String()
		}
		name := first.Get("name").String()
		if name == "" {
			name = first.Get("domainname").String()
		}
		return id, name
	}

	slog.Warn("Domain list empty, proceeding without domain", "user", ph1.userID)
	return "", ""
}

// exchangeMenu trades the sign-in token for the final HXM token pair.
// On failure the sign-in token is kept as a fallback. It is unclear which
// deployments actually require this exchange, so the fallback is logged
// loudly rather than silently swallowed.
func (n *Negotiator) exchangeMenu(ctx context.Context, ph1 phase1, domainID, domainName string) (string, string) {
	payload := map[string]string{
		"usersyskey":  ph1.userSyskey,
		"role":        ph1.role,
		"user_id":     ph1.userID,
		"app_id":      n.signer.AppID,
		"domain":      domainID,
		"type":        ph1.userID,
		"domain_name": domainName,
	}
	status, body, err := n.postJSON(ctx, n.authURL+api.GetMenu, ph1.token, payload)
	if err != nil || status < 200 || status >= 300 {
		slog.Warn("Menu token exchange failed, keeping sign-in token",
			"status", status, "error", err, "user", ph1.userID)
		return ph1.token, ""
	}

	token := firstString(body, "access_token", "data.access_token")
	if token == "" {
		slog.Warn("Menu token exchange returned no token, keeping sign-in token", "user", ph1.userID)
		return ph1.token, ""
	}
	refresh := firstString(body, "refresh_token", "data.refresh_token")
	return token, refresh
}

// Renew exchanges the current bearer token for a fresh one. Only the
// bearer token is replaced; refresh token and identity are untouched.
func (n *Negotiator) Renew(ctx context.Context) error {
	current := n.sessions.Current()
	if !current.IsAuthenticated() {
		return ErrSessionExpired
	}

	status, body, err := n.postJSON(ctx, n.authURL+api.RenewToken, current.Token, map[string]string{})
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("renew token rejected with status %d", status)
	}

	token := firstString(body, "token", "datalist.token")
	if token == "" {
		return fmt.Errorf("renew token response carried no token")
	}
	return n.sessions.UpdateToken(token)
}

// postJSON sends a JSON POST and returns the HTTP status and raw body.
// Transport-level errors are returned as-is; callers decide retry policy.
func (n *Negotiator) postJSON(ctx context.Context, url, bearer string, payload interface{}) (int, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("cannot marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("cannot create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := n.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("cannot read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

// rejected reports whether a sign-in style response failed, either at the
// HTTP level or via an in-band non-200 status field.
func rejected(status int, body []byte) bool {
	if status < 200 || status >= 300 {
		return true
	}
	if st := gjson.GetBytes(body, "status"); st.Exists() && st.String() != "200" {
		return true
	}
	return false
}

// parseSignIn extracts the phase-1 identity from a sign-in or OTP-verify
// response, or the typed rejection. fallbackMsg is used when the backend
// rejects without a message of its own.
func parseSignIn(status int, body []byte, fallbackUserID, fallbackMsg string) (phase1, *AuthError) {
	if rejected(status, body) {
		return phase1{}, invalidCredentials(gjson.GetBytes(body, "message").String(), fallbackMsg)
	}

	token := firstString(body, "data.access_token", "access_token", "token")
	if token == "" {
		return phase1{}, invalidCredentials(gjson.GetBytes(body, "message").String(), fallbackMsg)
	}

	userID := firstString(body, "data.user_id", "user_id")
	if userID == "" {
		userID = fallbackUserID
	}
	return phase1{
		token:      token,
		userID:     userID,
		userSyskey: firstString(body, "data.usersyskey", "usersyskey"),
		role:       gjson.GetBytes(body, "data.role").String(),
	}, nil
}

// firstString returns the first non-empty string among the given gjson
// paths.
func firstString(body []byte, paths ...string) string {
	for _, path := range paths {
		if v := gjson.GetBytes(body, path).String(); v != "" {
			return v
		}
	}
	return ""
}
