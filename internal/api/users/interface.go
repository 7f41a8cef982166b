package users

import "github.com/gin-gonic/gin"

// UsersHandler is the admin-gated user CRUD surface.
type UsersHandler interface {
	Create(c *gin.Context)
	FindAll(c *gin.Context)
	FindOne(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// CreateRequest mirrors the registration payload; admins may also set a role.
type CreateRequest struct {
	Firstname    string `json:"firstname" binding:"required"`
	Lastname     string `json:"lastname" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
	Role         string `json:"role" binding:"omitempty,oneof=admin maintainer user"`
	RestaurantID *uint  `json:"restaurantId"`
}

// UpdateRequest is a partial update; zero-value fields are left untouched.
type UpdateRequest struct {
	Firstname    string `json:"firstname"`
	Lastname     string `json:"lastname"`
	Email        string `json:"email" binding:"omitempty,email"`
	Password     string `json:"password"`
	Role         string `json:"role" binding:"omitempty,oneof=admin maintainer user"`
	RestaurantID *uint  `json:"restaurantId"`
}
