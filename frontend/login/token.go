package login

import (
	"crypto/rand"
	"encoding/base64"
)

// newSessionID returns the opaque value stored in the session cookie.
func newSessionID() string {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return base64.RawURLEncoding.EncodeToString(buf)
}
