package users

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yash-bansod-2003/shop-autentication/internal/database/model"
	"github.com/yash-bansod-2003/shop-autentication/internal/httperr"
	"github.com/yash-bansod-2003/shop-autentication/internal/repository"
	"github.com/yash-bansod-2003/shop-autentication/pkg/hashing"
	"github.com/yash-bansod-2003/shop-autentication/pkg/logger"
)

type handler struct {
	users  repository.UserRepository
	hasher hashing.Hasher
	logger logger.Logger
}

// NewHandler creates the user CRUD handler.
func NewHandler(users repository.UserRepository, hasher hashing.Hasher, l logger.Logger) UsersHandler {
	return &handler{
		users:  users,
		hasher: hasher,
		logger: l,
	}
}

func (h *handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	digest, err := h.hasher.Hash(req.Password)
	if err != nil {
		_ = c.Error(httperr.Internal("internal server error"))
		return
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}
	user := &model.User{
		Firstname:    req.Firstname,
		Lastname:     req.Lastname,
		Email:        req.Email,
		Password:     digest,
		Role:         role,
		RestaurantID: req.RestaurantID,
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		h.logger.Error("error creating user", "error", err)
		_ = c.Error(httperr.Internal("internal server error"))
		return
	}

	h.logger.Info("user created", "id", user.ID)
	c.JSON(http.StatusOK, user)
}

func (h *handler) FindAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}

	users, total, err := h.users.FindAll(c.Request.Context(), (page-1)*limit, limit)
	if err != nil {
		h.logger.Error("error fetching users", "error", err)
		_ = c.Error(httperr.Internal("internal server error"))
		return
	}

	h.logger.Info("fetched users", "count", len(users))
	c.JSON(http.StatusOK, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"data":  users,
	})
}

func (h *handler) FindOne(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		_ = c.Error(httperr.BadRequest("invalid user id"))
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		_ = c.Error(httperr.NotFound("user not found"))
		return
	}
	if err != nil {
		h.logger.Error("error fetching user", "id", id, "error", err)
		_ = c.Error(httperr.Internal("internal server error"))
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *handler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		_ = c.Error(httperr.BadRequest("invalid user id"))
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	fields := map[string]interface{}{}
	if req.Firstname != "" {
		fields["firstname"] = req.Firstname
	}
	if req.Lastname != "" {
		fields["lastname"] = req.Lastname
	}
	if req.Email != "" {
		fields["email"] = req.Email
	}
	if req.Role != "" {
		fields["role"] = req.Role
	}
	if req.RestaurantID != nil {
		fields["restaurant_id"] = req.RestaurantID
	}
	if req.Password != "" {
		digest, err := h.hasher.Hash(req.Password)
		if err != nil {
			_ = c.Error(httperr.Internal("internal server error"))
			return
		}
		fields["password"] = digest
	}
	if len(fields) == 0 {
		_ = c.Error(httperr.BadRequest("nothing to update"))
		return
	}

	updated, err := h.users.Update(c.Request.Context(), id, fields)
	if err != nil {
		h.logger.Error("error updating user", "id", id, "error", err)
		_ = c.Error(httperr.Internal("internal server error"))
		return
	}
	if updated == 0 {
		_ = c.Error(httperr.NotFound("user not found"))
		return
	}

	h.logger.Info("user updated", "id", id)
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

func (h *handler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		_ = c.Error(httperr.BadRequest("invalid user id"))
		return
	}

	deleted, err := h.users.Delete(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("error deleting user", "id", id, "error", err)
		_ = c.Error(httperr.Internal("internal server error"))
		return
	}
	if deleted == 0 {
		_ = c.Error(httperr.NotFound("user not found"))
		return
	}

	h.logger.Info("user deleted", "id", id)
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
