package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yash-bansod-2003/shop-autentication/pkg/token/keys"
)

func testClaims() Claims {
	return Claims{
		Role:  "user",
		Email: "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "42",
			ID:      "7",
		},
	}
}

func TestHMACRoundTrip(t *testing.T) {
	s := NewHMACSigner("refresh-secret", "shop_authentication_service", time.Hour)

	signed, err := s.Sign(testClaims(), nil)
	require.NoError(t, err)

	claims, err := s.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "7", claims.ID)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "shop_authentication_service", claims.Issuer)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestHMACExpired(t *testing.T) {
	s := NewHMACSigner("refresh-secret", "iss", time.Hour)

	signed, err := s.Sign(testClaims(), &SignOptions{ExpiresIn: -time.Minute})
	require.NoError(t, err)

	_, err = s.Verify(signed)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestHMACWrongSecret(t *testing.T) {
	signer := NewHMACSigner("secret-one", "iss", time.Hour)
	other := NewHMACSigner("secret-two", "iss", time.Hour)

	signed, err := signer.Sign(testClaims(), nil)
	require.NoError(t, err)

	_, err = other.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestHMACMalformed(t *testing.T) {
	s := NewHMACSigner("secret", "iss", time.Hour)
	_, err := s.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestRSARoundTrip(t *testing.T) {
	keyPair, err := keys.GenerateRSAKeyPair("access-1", 2048)
	require.NoError(t, err)
	s := NewRSASigner(keyPair, "iss", time.Hour)

	signed, err := s.Sign(testClaims(), nil)
	require.NoError(t, err)

	claims, err := s.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "user", claims.Role)
}

func TestPurposeSeparation(t *testing.T) {
	keyPair, err := keys.GenerateRSAKeyPair("access-1", 2048)
	require.NoError(t, err)
	asym := NewRSASigner(keyPair, "iss", time.Hour)
	sym := NewHMACSigner("refresh-secret", "iss", time.Hour)

	// A symmetric token must never pass the asymmetric verifier and vice
	// versa, regardless of claims content.
	symToken, err := sym.Sign(testClaims(), nil)
	require.NoError(t, err)
	_, err = asym.Verify(symToken)
	assert.Error(t, err)

	asymToken, err := asym.Sign(testClaims(), nil)
	require.NoError(t, err)
	_, err = sym.Verify(asymToken)
	assert.Error(t, err)
}

func TestSignOptionsOverride(t *testing.T) {
	s := NewHMACSigner("secret", "default-issuer", time.Hour)

	signed, err := s.Sign(testClaims(), &SignOptions{
		ExpiresIn: 10 * time.Minute,
		Issuer:    "other-issuer",
	})
	require.NoError(t, err)

	claims, err := s.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "other-issuer", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), claims.ExpiresAt.Time, time.Minute)
}
