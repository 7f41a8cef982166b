package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"github.com/yash-bansod-2003/shop-autentication/internal/config"
	"github.com/yash-bansod-2003/shop-autentication/internal/database/model"
	"github.com/yash-bansod-2003/shop-autentication/internal/httperr"
	"github.com/yash-bansod-2003/shop-autentication/internal/middleware"
	"github.com/yash-bansod-2003/shop-autentication/internal/repository"
	"github.com/yash-bansod-2003/shop-autentication/pkg/hashing"
	"github.com/yash-bansod-2003/shop-autentication/pkg/logger"
	"github.com/yash-bansod-2003/shop-autentication/pkg/token"
)

type handler struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	hasher   hashing.Hasher
	access   token.Signer
	refresh  token.Signer
	forgot   token.Signer
	logger   logger.Logger
	cookies  config.CookieConfig
}

// NewHandler wires the authentication workflow. One signer per token purpose;
// only the refresh flow touches the session store.
func NewHandler(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	hasher hashing.Hasher,
	access, refresh, forgot token.Signer,
	l logger.Logger,
	cookies config.CookieConfig,
) AuthHandler {
	return &handler{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		access:   access,
		refresh:  refresh,
		forgot:   forgot,
		logger:   l,
		cookies:  cookies,
	}
}

func (h *handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := bindStrictJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	h.logger.Debug("initiate registering user", "email", req.Email)
	if _, err := h.users.FindByEmail(c.Request.Context(), req.Email); err == nil {
		_ = c.Error(httperr.Conflict("user already exists"))
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		_ = c.Error(err)
		return
	}

	digest, err := h.hasher.Hash(req.Password)
	if err != nil {
		_ = c.Error(httperr.Internal("internal server error"))
		return
	}

	user := &model.User{
		Firstname:    req.Firstname,
		Lastname:     req.Lastname,
		Email:        req.Email,
		Password:     digest,
		Role:         model.RoleUser,
		RestaurantID: req.RestaurantID,
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		_ = c.Error(httperr.Internal("internal server error"))
		return
	}

	h.logger.Debug("user registered successfully", "id", user.ID)
	c.JSON(http.StatusOK, user)
}

func (h *handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	h.logger.Debug("attempting login", "email", req.Email)
	user, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		_ = c.Error(httperr.NotFound("user not found"))
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}

	if !h.hasher.Compare(req.Password, user.Password) {
		h.logger.Debug("wrong credentials", "email", req.Email)
		_ = c.Error(httperr.BadRequest("wrong credentials"))
		return
	}

	// The session row must be confirmed persisted before any refresh token
	// referencing it is signed.
	session, err := h.sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		_ = c.Error(httperr.Internal("refresh token not persist"))
		return
	}

	accessToken, refreshToken, err := h.signTokenPair(user, session.ID)
	if err != nil {
		_ = c.Error(httperr.Internal("internal server error"))
		return
	}

	h.setAuthCookies(c, accessToken, refreshToken)
	h.logger.Debug("user logged in", "id", user.ID)
	c.JSON(http.StatusOK, gin.H{"id": user.ID})
}

func (h *handler) Profile(c *gin.Context) {
	userID, ok := subjectID(c)
	if !ok {
		_ = c.Error(httperr.Named("UnauthorizedError", http.StatusUnauthorized, "no authorization token was found"))
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), userID)
	if errors.Is(err, repository.ErrNotFound) {
		_ = c.Error(httperr.NotFound("user not found"))
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *handler) Forgot(c *gin.Context) {
	var req ForgotRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	h.logger.Debug("initiating forgot password", "email", req.Email)
	user, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		_ = c.Error(httperr.NotFound("user not found"))
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}

	claims := token.Claims{
		Role:  user.Role,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: formatID(user.ID),
		},
	}
	forgotToken, err := h.forgot.Sign(claims, nil)
	if err != nil {
		_ = c.Error(httperr.Internal("internal server error"))
		return
	}

	// Delivery of the token (e.g. email) happens out-of-band.
	h.logger.Debug("forgot password token generated", "email", req.Email)
	c.JSON(http.StatusOK, gin.H{"token": forgotToken})
}

func (h *handler) Reset(c *gin.Context) {
	resetToken := c.Param("token")
	if resetToken == "" {
		_ = c.Error(httperr.BadRequest("token is required"))
		return
	}

	var req ResetRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	// A bad token and a stale email must stay indistinguishable from the
	// outside beyond their status codes.
	claims, err := h.forgot.Verify(resetToken)
	if err != nil {
		_ = c.Error(httperr.Internal("internal server error"))
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), claims.Email)
	if errors.Is(err, repository.ErrNotFound) {
		_ = c.Error(httperr.NotFound("user not found"))
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}

	digest, err := h.hasher.Hash(req.Password)
	if err != nil {
		_ = c.Error(httperr.Internal("internal server error"))
		return
	}

	updated, err := h.users.Update(c.Request.Context(), user.ID, map[string]interface{}{"password": digest})
	if err != nil || updated == 0 {
		_ = c.Error(httperr.Internal("internal server error"))
		return
	}

	h.logger.Debug("password reset successful", "email", claims.Email)
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

func (h *handler) Refresh(c *gin.Context) {
	cookie, err := c.Cookie(middleware.RefreshCookieName)
	if err != nil {
		_ = c.Error(httperr.Named("UnauthorizedError", http.StatusUnauthorized, "no authorization token was found"))
		return
	}

	claims, err := h.refresh.Verify(cookie)
	if err != nil {
		_ = c.Error(refreshTokenError(err))
		return
	}

	userID, okUser := parseID(claims.Subject)
	sessionID, okSession := parseID(claims.ID)
	if !okUser || !okSession {
		_ = c.Error(httperr.Named("JsonWebTokenError", http.StatusUnauthorized, "jwt malformed"))
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), userID)
	if errors.Is(err, repository.ErrNotFound) {
		_ = c.Error(httperr.NotFound("user not found"))
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}

	if _, err := h.sessions.Find(c.Request.Context(), sessionID, user.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = c.Error(httperr.NotFound("refresh token not found"))
			return
		}
		_ = c.Error(err)
		return
	}

	// Rotation: retire the old session, then create its replacement. Under a
	// concurrent reuse of the same token, the delete succeeds exactly once;
	// the loser fails closed with not found.
	session, err := h.sessions.Rotate(c.Request.Context(), sessionID, user.ID)
	if errors.Is(err, repository.ErrNotFound) {
		_ = c.Error(httperr.NotFound("refresh token not found"))
		return
	}
	if err != nil {
		_ = c.Error(httperr.Internal("refresh token not persist"))
		return
	}

	accessToken, refreshToken, err := h.signTokenPair(user, session.ID)
	if err != nil {
		_ = c.Error(httperr.Internal("internal server error"))
		return
	}

	h.setAuthCookies(c, accessToken, refreshToken)
	h.logger.Debug("token refreshed successfully", "id", user.ID)
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *handler) Logout(c *gin.Context) {
	userID, ok := subjectID(c)
	if !ok {
		_ = c.Error(httperr.Named("UnauthorizedError", http.StatusUnauthorized, "no authorization token was found"))
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), userID)
	if errors.Is(err, repository.ErrNotFound) {
		_ = c.Error(httperr.NotFound("user not found"))
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}

	// Every session for the identity goes, not just the current one. Logout
	// must not report success while any refresh token stays valid.
	if err := h.sessions.DeleteAllForUser(c.Request.Context(), user.ID); err != nil {
		_ = c.Error(httperr.Internal("internal server error"))
		return
	}

	h.clearAuthCookies(c)
	h.logger.Debug("user logged out", "id", user.ID)
	c.JSON(http.StatusOK, gin.H{"id": user.ID})
}

func (h *handler) signTokenPair(user *model.User, sessionID uint) (string, string, error) {
	accessClaims := token.Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: formatID(user.ID),
		},
	}
	accessToken, err := h.access.Sign(accessClaims, nil)
	if err != nil {
		return "", "", err
	}

	refreshClaims := token.Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: formatID(user.ID),
			ID:      formatID(sessionID),
		},
	}
	refreshToken, err := h.refresh.Sign(refreshClaims, nil)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (h *handler) setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AccessCookieName, accessToken,
		int(h.cookies.AccessMaxAge.Seconds()), "/", h.cookies.Domain, h.cookies.Secure, true)
	c.SetCookie(middleware.RefreshCookieName, refreshToken,
		int(h.cookies.RefreshMaxAge.Seconds()), "/", h.cookies.Domain, h.cookies.Secure, true)
}

func (h *handler) clearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AccessCookieName, "", -1, "/", h.cookies.Domain, h.cookies.Secure, true)
	c.SetCookie(middleware.RefreshCookieName, "", -1, "/", h.cookies.Domain, h.cookies.Secure, true)
}

func refreshTokenError(err error) *httperr.Error {
	if errors.Is(err, token.ErrExpired) {
		return httperr.Named("TokenExpiredError", http.StatusUnauthorized, "jwt expired")
	}
	return httperr.Named("JsonWebTokenError", http.StatusUnauthorized, "invalid signature")
}

func subjectID(c *gin.Context) (uint, bool) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return 0, false
	}
	return parseID(claims.Subject)
}

func parseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// bindJSON validates the payload; validation failures surface as the 400
// validation envelope, anything else as a plain bad request.
func bindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return asBindError(err)
	}
	return nil
}

// bindStrictJSON additionally rejects unknown fields.
func bindStrictJSON(c *gin.Context, obj interface{}) error {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return httperr.BadRequest("invalid request body")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(obj); err != nil {
		return httperr.BadRequest(err.Error())
	}
	if binding.Validator != nil {
		if err := binding.Validator.ValidateStruct(obj); err != nil {
			return asBindError(err)
		}
	}
	return nil
}

func asBindError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return err
	}
	return httperr.BadRequest(err.Error())
}
