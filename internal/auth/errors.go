// ABOUTME: Typed authentication errors surfaced to the command layer
// ABOUTME: Sentinels support errors.Is; AuthError carries the backend's own message

package auth

import "errors"

var (
	// ErrInvalidCredentials is returned when the sign-in or OTP-verify
	// phase is rejected by the backend.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionExpired is returned when a 401 could not be recovered by
	// a token refresh and the session was cleared.
	ErrSessionExpired = errors.New("session expired")
)

// AuthError wraps a sentinel with the message the backend returned, so
// the UI can show the server's wording verbatim.
type AuthError struct {
	Err     error
	Message string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Fallback messages shown when the backend rejects without one of its own.
const (
	msgLoginFailed  = "Login failed. Please check your credentials."
	msgVerifyFailed = "OTP verification failed."
)

// invalidCredentials builds an AuthError with the server message if
// present, else the given fallback.
func invalidCredentials(message, fallback string) *AuthError {
	if message == "" {
		message = fallback
	}
	return &AuthError{Err: ErrInvalidCredentials, Message: message}
}
