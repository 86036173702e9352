package auth

import (
	"encoding/json"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"

	"github.com/alexandriaapp/alexandria-server/internal/domain"
	"github.com/alexandriaapp/alexandria-server/internal/id"
)

const (
	tokenIssuer   = "alexandria-server"
	tokenAudience = "alexandria-client"

	// PASETO v4 symmetric key size.
	keyBytesSize = 32
)

// TokenService handles PASETO token generation and verification.
type TokenService struct {
	symmetricKey paseto.V4SymmetricKey
}

// NewTokenService creates a new token service with the given 32-byte key.
func NewTokenService(key []byte) (*TokenService, error) {
	if len(key) != keyBytesSize {
		return nil, fmt.Errorf("PASETO v4 key must be exactly %d bytes, got %d", keyBytesSize, len(key))
	}

	symmetricKey, err := paseto.V4SymmetricKeyFromBytes(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create PASETO symmetric key: %w", err)
	}

	return &TokenService{symmetricKey: symmetricKey}, nil
}

// IssueToken creates a new PASETO v4.local token for the user.
// The token is encrypted, embeds {username, id}, and carries no expiration.
func (s *TokenService) IssueToken(user domain.User) (string, error) {
	now := time.Now()

	token := paseto.NewToken()

	// Standard claims. No expiration is set on purpose.
	token.SetIssuer(tokenIssuer)
	token.SetAudience(tokenAudience)
	token.SetSubject(user.ID)
	token.SetIssuedAt(now)

	tokenID, err := id.Generate("tok")
	if err != nil {
		return "", fmt.Errorf("generate token ID: %w", err)
	}
	token.SetJti(tokenID)

	// Our custom claims
	//nolint:errcheck // Token.Set only errors on invalid types, which we control
	_ = token.Set("username", user.Username)
	//nolint:errcheck // Token.Set only errors on invalid types, which we control
	_ = token.Set("id", user.ID)

	return token.V4Encrypt(s.symmetricKey, nil), nil
}

// VerifyToken verifies and parses a PASETO token.
// Returns the claims if valid, or an error if the token cannot be verified.
func (s *TokenService) VerifyToken(tokenString string) (*Claims, error) {
	// Tokens have no expiry claim, so the expiry-checking parser would
	// reject every token we issue.
	parser := paseto.NewParserWithoutExpiryCheck()
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))

	token, err := parser.ParseV4Local(s.symmetricKey, tokenString, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	var claims Claims
	if err := json.Unmarshal(token.ClaimsJSON(), &claims); err != nil {
		return nil, fmt.Errorf("parse claims: %w", err)
	}

	return &claims, nil
}
