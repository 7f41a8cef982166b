package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yash-bansod-2003/shop-autentication/pkg/token/keys"
)

type hmacSigner struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewHMACSigner creates a symmetric signer for the refresh and forgot
// purposes. The secret stays server-side only.
func NewHMACSigner(secret, issuer string, ttl time.Duration) Signer {
	return &hmacSigner{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

func (s *hmacSigner) Sign(claims Claims, opts *SignOptions) (string, error) {
	stampClaims(&claims, s.issuer, s.ttl, opts)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

func (s *hmacSigner) Verify(tokenString string) (*Claims, error) {
	return parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
}

type rsaSigner struct {
	keyPair *keys.KeyPair
	issuer  string
	ttl     time.Duration
}

// NewRSASigner creates the asymmetric signer used for the access purpose.
// Tokens carry the key id so verifiers can resolve the public key from the
// published JWKS.
func NewRSASigner(keyPair *keys.KeyPair, issuer string, ttl time.Duration) Signer {
	return &rsaSigner{
		keyPair: keyPair,
		issuer:  issuer,
		ttl:     ttl,
	}
}

func (s *rsaSigner) Sign(claims Claims, opts *SignOptions) (string, error) {
	stampClaims(&claims, s.issuer, s.ttl, opts)
	t := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	t.Header["kid"] = s.keyPair.KeyID
	return t.SignedString(s.keyPair.PrivateKey)
}

func (s *rsaSigner) Verify(tokenString string) (*Claims, error) {
	return parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.keyPair.PublicKey, nil
	})
}

func stampClaims(claims *Claims, issuer string, ttl time.Duration, opts *SignOptions) {
	now := time.Now()
	if opts != nil && opts.ExpiresIn != 0 {
		ttl = opts.ExpiresIn
	}
	if opts != nil && opts.Issuer != "" {
		issuer = opts.Issuer
	}
	claims.Issuer = issuer
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
}

func parse(tokenString string, keyFunc jwt.Keyfunc) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenString, &Claims{}, keyFunc)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformed
		default:
			return nil, ErrInvalidSignature
		}
	}

	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, ErrMalformed
	}
	return claims, nil
}
