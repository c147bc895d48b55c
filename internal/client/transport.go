// ABOUTME: Authenticated HTTP transport shared by the HXM, IAM and main-service clients
// ABOUTME: Injects bearer token and caller identity; retries once after a 401-driven token refresh

package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/Nirvasoft/A365SS/internal/auth"
	"github.com/Nirvasoft/A365SS/internal/store"
)

// Refresher renews the session's bearer token in place.
type Refresher interface {
	Renew(ctx context.Context) error
}

// Transport wraps an *http.Client with the two cross-cutting behaviors
// every backend call needs: outbound identity injection and the
// 401-refresh-retry-once policy. Network errors pass through untouched.
type Transport struct {
	http     *http.Client
	sessions *store.SessionStore
	refresh  Refresher
}

func NewTransport(httpClient *http.Client, sessions *store.SessionStore, refresh Refresher) *Transport {
	return &Transport{http: httpClient, sessions: sessions, refresh: refresh}
}

// PostJSON sends body (raw JSON, nil means empty object) to url. When the
// session is authenticated, userid and domain are injected into the body
// unless the caller already set them.
func (t *Transport) PostJSON(ctx context.Context, url string, body []byte) ([]byte, error) {
	if len(body) == 0 {
		body = []byte("{}")
	}
	body, err := t.injectBody(body)
	if err != nil {
		return nil, err
	}
	return t.do(ctx, http.MethodPost, url, body)
}

// Get issues a GET with userid and domain added as query parameters
// under the same never-override rule.
func (t *Transport) Get(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("cannot parse url: %w", err)
	}

	query := u.Query()
	for key, values := range params {
		for _, v := range values {
			query.Add(key, v)
		}
	}
	session := t.sessions.Current()
	if query.Get("userid") == "" && session.UserID != "" {
		query.Set("userid", session.UserID)
	}
	if query.Get("domain") == "" && session.Domain != "" {
		query.Set("domain", session.Domain)
	}
	u.RawQuery = query.Encode()

	return t.do(ctx, http.MethodGet, u.String(), nil)
}

// injectBody fills userid and domain into a JSON body only when absent.
// Caller-provided values are never overridden.
func (t *Transport) injectBody(body []byte) ([]byte, error) {
	session := t.sessions.Current()

	var err error
	if !gjson.GetBytes(body, "userid").Exists() && session.UserID != "" {
		if body, err = sjson.SetBytes(body, "userid", session.UserID); err != nil {
			return nil, fmt.Errorf("cannot inject userid: %w", err)
		}
	}
	if !gjson.GetBytes(body, "domain").Exists() && session.Domain != "" {
		if body, err = sjson.SetBytes(body, "domain", session.Domain); err != nil {
			return nil, fmt.Errorf("cannot inject domain: %w", err)
		}
	}
	return body, nil
}

// do issues the request, applying the 401 policy: at most one refresh and
// one retry per logical request, then forced logout.
func (t *Transport) do(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	resp, err := t.issue(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		slog.Debug("Received 401, attempting token refresh", "url", url)

		if err := t.refresh.Renew(ctx); err != nil {
			slog.Warn("Token refresh failed, forcing logout", "error", err)
			return nil, t.expireSession()
		}

		resp, err = t.issue(ctx, method, url, body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			resp.Body.Close()
			slog.Warn("Retried request still unauthorized, forcing logout", "url", url)
			return nil, t.expireSession()
		}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cannot read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, backendError(resp.StatusCode, data)
	}
	return data, nil
}

// issue builds and sends one attempt, attaching the current bearer token.
// The token is re-read per attempt so a retry picks up the refreshed one.
func (t *Transport) issue(ctx context.Context, method, url string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("cannot create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session := t.sessions.Current(); session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	return t.http.Do(req)
}

// expireSession clears the session and reports the expiry. The command
// layer routes the user back to login.
func (t *Transport) expireSession() error {
	if err := t.sessions.Logout(); err != nil {
		slog.Error("Failed to clear expired session", "error", err)
	}
	return auth.ErrSessionExpired
}

// backendError turns a non-2xx response into a readable error, preferring
// the backend's own message.
func backendError(status int, body []byte) error {
	for _, path := range []string{"message", "error"} {
		if msg := gjson.GetBytes(body, path).String(); msg != "" {
			return fmt.Errorf("backend error: %s", msg)
		}
	}
	return fmt.Errorf("backend returned status %d", status)
}
