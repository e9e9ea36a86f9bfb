// SPDX-License-Identifier: Apache-2.0

package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the authenticated state returned by login and refresh.
// AccessToken present means the user is considered logged in; both fields
// are cleared together on refresh failure or logout.
type Session struct {
	AccessToken  string
	RefreshToken string
}

// Valid reports whether the session carries an access token.
func (s Session) Valid() bool {
	return s.AccessToken != ""
}

// ExpiresAt parses the access token without verifying its signature and
// returns the "exp" claim. Verification happens server-side; the client only
// reads the claim for logging and diagnostics. Returns the zero time when
// the token is absent, malformed, or carries no expiry.
func (s Session) ExpiresAt() time.Time {
	if s.AccessToken == "" {
		return time.Time{}
	}

	token, _, err := jwt.NewParser().ParseUnverified(s.AccessToken, jwt.MapClaims{})
	if err != nil {
		return time.Time{}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return time.Time{}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
