package session

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName  = "X-Session-Token"
	MaxLifetime = 12 * time.Hour
)

// SessionCookie builds the admin session cookie. maxAge < 0 deletes it.
func SessionCookie(value string, maxAge int, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	}
}

func DefaultExpiry(now time.Time) time.Time {
	return now.Add(MaxLifetime).UTC()
}

// ExpiryForToken caps the session lifetime at the bearer token's own exp
// claim when the token is a JWT. The signature is not checked here; the
// backend verifies the token on every call.
func ExpiryForToken(token string, now time.Time) time.Time {
	expiry := DefaultExpiry(now)
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return expiry
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return expiry
	}
	if exp.Time.Before(expiry) {
		return exp.Time.UTC()
	}
	return expiry
}

// MaxAgeSeconds converts an expiry into a cookie MaxAge, never below one.
func MaxAgeSeconds(expiry, now time.Time) int {
	secs := int(expiry.Sub(now).Seconds())
	if secs < 1 {
		return 1
	}
	return secs
}
