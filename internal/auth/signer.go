// ABOUTME: Request signer for the IAM signed envelope
// ABOUTME: s_token = sha512(device_id + app_id + date_time + req_type + secret), lowercase hex

package auth

import (
	"crypto/sha512"
	"encoding/hex"
)

// Signer derives the per-request integrity token carried by sign-in
// envelopes. Pure and deterministic: the same five inputs always yield
// the same digest.
type Signer struct {
	AppID  string
	Secret string
}

// SToken returns the hex SHA-512 digest over the concatenation of
// device id, app id, timestamp, request type, and the shared secret.
// Inputs are taken as strings verbatim; nothing here can fail.
func (s Signer) SToken(deviceID, dateTime, reqType string) string {
	sum := sha512.Sum512([]byte(deviceID + s.AppID + dateTime + reqType + s.Secret))
	return hex.EncodeToString(sum[:])
}
