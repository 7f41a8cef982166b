package users_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yash-bansod-2003/shop-autentication/internal/api/users"
	"github.com/yash-bansod-2003/shop-autentication/internal/database/model"
	"github.com/yash-bansod-2003/shop-autentication/internal/middleware"
	"github.com/yash-bansod-2003/shop-autentication/internal/repository/repofake"
	"github.com/yash-bansod-2003/shop-autentication/pkg/hashing"
	"github.com/yash-bansod-2003/shop-autentication/pkg/logger"
	"github.com/yash-bansod-2003/shop-autentication/pkg/token"
)

type env struct {
	users  *repofake.FakeUserRepository
	signer token.Signer
	router *gin.Engine
}

func newEnv(t *testing.T) *env {
	gin.SetMode(gin.TestMode)
	e := &env{
		users:  repofake.NewFakeUserRepository(),
		signer: token.NewHMACSigner("access-secret", "test", time.Hour),
	}

	h := users.NewHandler(e.users, hashing.NewBcrypt(bcrypt.MinCost), logger.NewNop())

	r := gin.New()
	r.Use(middleware.ErrorHandler(logger.NewNop(), "release"))
	group := r.Group("/users")
	group.Use(middleware.Authenticate(e.signer), middleware.Authorize(model.RoleAdmin))
	group.POST("", h.Create)
	group.GET("", h.FindAll)
	group.GET("/:id", h.FindOne)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)

	e.router = r
	return e
}

func (e *env) adminToken(t *testing.T) string {
	t.Helper()
	signed, err := e.signer.Sign(token.Claims{
		Role:             model.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1"},
	}, nil)
	require.NoError(t, err)
	return signed
}

func (e *env) do(t *testing.T, method, path, body, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestNonAdminForbidden(t *testing.T) {
	e := newEnv(t)
	userToken, err := e.signer.Sign(token.Claims{
		Role:             model.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "2"},
	}, nil)
	require.NoError(t, err)

	rec := e.do(t, http.MethodGet, "/users", "", userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(t, http.MethodGet, "/users", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateHashesPassword(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/users",
		`{"firstname":"Ada","lastname":"Lovelace","email":"a@x.com","password":"p1","role":"maintainer"}`,
		e.adminToken(t))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "p1")

	stored, err := e.users.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "maintainer", stored.Role)
	assert.NotEqual(t, "p1", stored.Password)
	assert.True(t, hashing.NewBcrypt(bcrypt.MinCost).Compare("p1", stored.Password))
}

func TestCreateRejectsBadRole(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/users",
		`{"firstname":"Ada","lastname":"Lovelace","email":"a@x.com","password":"p1","role":"superuser"}`,
		e.adminToken(t))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFindAllPagination(t *testing.T) {
	e := newEnv(t)
	admin := e.adminToken(t)
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		rec := e.do(t, http.MethodPost, "/users",
			`{"firstname":"F","lastname":"L","email":"`+email+`","password":"p"}`, admin)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := e.do(t, http.MethodGet, "/users?page=2&limit=2", "", admin)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Page  int          `json:"page"`
		Limit int          `json:"limit"`
		Total int64        `json:"total"`
		Data  []model.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Page)
	assert.Equal(t, 2, body.Limit)
	assert.EqualValues(t, 3, body.Total)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "c@x.com", body.Data[0].Email)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestFindOne(t *testing.T) {
	e := newEnv(t)
	admin := e.adminToken(t)
	rec := e.do(t, http.MethodPost, "/users",
		`{"firstname":"Ada","lastname":"Lovelace","email":"a@x.com","password":"p"}`, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/users/1", "", admin)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "a@x.com")

	rec = e.do(t, http.MethodGet, "/users/99", "", admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(t, http.MethodGet, "/users/abc", "", admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdate(t *testing.T) {
	e := newEnv(t)
	admin := e.adminToken(t)
	rec := e.do(t, http.MethodPost, "/users",
		`{"firstname":"Ada","lastname":"Lovelace","email":"a@x.com","password":"p"}`, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodPut, "/users/1", `{"firstname":"Grace"}`, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := e.users.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Grace", stored.Firstname)
	assert.Equal(t, "Lovelace", stored.Lastname)

	rec = e.do(t, http.MethodPut, "/users/99", `{"firstname":"Grace"}`, admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(t, http.MethodPut, "/users/1", `{}`, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDelete(t *testing.T) {
	e := newEnv(t)
	admin := e.adminToken(t)
	rec := e.do(t, http.MethodPost, "/users",
		`{"firstname":"Ada","lastname":"Lovelace","email":"a@x.com","password":"p"}`, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodDelete, "/users/1", "", admin)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, e.users.Count())

	rec = e.do(t, http.MethodDelete, "/users/1", "", admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
