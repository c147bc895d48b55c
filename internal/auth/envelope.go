// ABOUTME: Signed request envelope for IAM sign-in and OTP requests
// ABOUTME: Built fresh per call, never persisted

package auth

import (
	"encoding/base64"
	"strconv"
	"time"
)

// Request type codes for the sign-in endpoint.
const (
	ReqTypePassword   = 1
	ReqTypeOTPRequest = 2
)

// SignInEnvelope is the payload POSTed to the sign-in endpoint.
type SignInEnvelope struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
	SToken   string `json:"s_token"`
	AppID    string `json:"app_id"`
	SID      string `json:"sid"`
	UUID     string `json:"uuid"`
	DateTime string `json:"date_time"`
	ReqType  int    `json:"req_type"`
}

// timestampLayout matches the ISO-8601 millisecond form the backend
// expects (and the one the signature was computed over).
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// NewSignInEnvelope builds a signed envelope for userID at time now.
// The password is base64-encoded before inclusion; pass "" for OTP
// requests.
func NewSignInEnvelope(signer Signer, sid, deviceID, userID, password string, reqType int, now time.Time) SignInEnvelope {
	dateTime := now.UTC().Format(timestampLayout)
	encoded := ""
	if password != "" {
		encoded = base64.StdEncoding.EncodeToString([]byte(password))
	}
	return SignInEnvelope{
		UserID:   userID,
		Password: encoded,
		SToken:   signer.SToken(deviceID, dateTime, strconv.Itoa(reqType)),
		AppID:    signer.AppID,
		SID:      sid,
		UUID:     deviceID,
		DateTime: dateTime,
		ReqType:  reqType,
	}
}
