package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yash-bansod-2003/shop-autentication/internal/httperr"
	"github.com/yash-bansod-2003/shop-autentication/pkg/token"
)

// ContextClaimsKey is where the access gate stores the verified claims.
const ContextClaimsKey = "auth"

// AccessCookieName and RefreshCookieName are the credential cookies.
const (
	AccessCookieName  = "accessToken"
	RefreshCookieName = "refreshToken"
)

// Authenticate verifies the access token from the Authorization header or the
// accessToken cookie and stores its claims on the context. Expiry and
// signature failures keep distinct names in the envelope.
func Authenticate(verifier token.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractAccessToken(c)
		if tokenString == "" {
			abort(c, httperr.Named("UnauthorizedError", http.StatusUnauthorized, "no authorization token was found"))
			return
		}

		claims, err := verifier.Verify(tokenString)
		if err != nil {
			abort(c, translateTokenError(err))
			return
		}

		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

// Authorize rejects requests whose access token carries none of the allowed
// roles. Must run after Authenticate.
func Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			abort(c, httperr.Named("UnauthorizedError", http.StatusUnauthorized, "no authorization token was found"))
			return
		}
		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}
		abort(c, httperr.Forbidden("You are not authorized to access this resource"))
	}
}

// ClaimsFromContext returns the claims stored by Authenticate, nil when the
// request did not pass the gate.
func ClaimsFromContext(c *gin.Context) *token.Claims {
	v, ok := c.Get(ContextClaimsKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*token.Claims)
	if !ok {
		return nil
	}
	return claims
}

func extractAccessToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[0:7], "Bearer ") {
		return authHeader[7:]
	}
	cookie, err := c.Cookie(AccessCookieName)
	if err != nil {
		return ""
	}
	return cookie
}

func translateTokenError(err error) *httperr.Error {
	switch {
	case errors.Is(err, token.ErrExpired):
		return httperr.Named("TokenExpiredError", http.StatusUnauthorized, "jwt expired")
	case errors.Is(err, token.ErrMalformed):
		return httperr.Named("JsonWebTokenError", http.StatusUnauthorized, "jwt malformed")
	default:
		return httperr.Named("JsonWebTokenError", http.StatusUnauthorized, "invalid signature")
	}
}

func abort(c *gin.Context, err *httperr.Error) {
	_ = c.Error(err)
	c.Abort()
}
