package auth

import (
	"time"
)

// Claims represents the claims stored in a PASETO token.
// These are encrypted in v4.local tokens, so they're not readable without the key.
//
// Tokens carry no expiration claim. That is a deliberate policy carried over
// from the original design, not an oversight; see the design notes.
type Claims struct {
	Username string `json:"username"`
	UserID   string `json:"id"`

	// Standard PASETO claims
	Issuer   string    `json:"iss"`
	Audience string    `json:"aud"`
	Subject  string    `json:"sub"`
	IssuedAt time.Time `json:"iat"`
	TokenID  string    `json:"jti"`
}
