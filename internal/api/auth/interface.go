package auth

import "github.com/gin-gonic/gin"

// AuthHandler defines the interface for authentication operations
type AuthHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Profile(c *gin.Context)
	Forgot(c *gin.Context)
	Reset(c *gin.Context)
	Refresh(c *gin.Context)
	Logout(c *gin.Context)
}

// RegisterRequest is the strict registration payload; unknown fields are
// rejected before the workflow runs.
type RegisterRequest struct {
	Firstname    string `json:"firstname" binding:"required"`
	Lastname     string `json:"lastname" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
	RestaurantID *uint  `json:"restaurantId"`
}

// LoginRequest defines the payload for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ForgotRequest defines the payload for requesting a password reset
type ForgotRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetRequest carries the new password; the forgot token travels in the path.
type ResetRequest struct {
	Password string `json:"password" binding:"required"`
}
