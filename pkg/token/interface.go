package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures. Expiry is distinguished from signature problems so
// the HTTP layer can tell "log in again" apart from a malformed request.
var (
	ErrExpired          = errors.New("token expired")
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrMalformed        = errors.New("token malformed")
)

// Claims is the claim set carried by every token purpose. Subject holds the
// user id, ID (jti) the refresh session id for refresh tokens, Email the
// account email for forgot-password tokens.
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// SignOptions override the signer's defaults for a single token.
type SignOptions struct {
	ExpiresIn time.Duration
	Issuer    string
}

// Signer signs and verifies tokens for one named purpose. Each purpose is
// bound to its own key material and default expiry at construction; signing
// and verifying never touch persisted state.
type Signer interface {
	Sign(claims Claims, opts *SignOptions) (string, error)
	Verify(tokenString string) (*Claims, error)
}
