package model

import "time"

// User roles. Admin gates the user CRUD resource.
const (
	RoleAdmin      = "admin"
	RoleMaintainer = "maintainer"
	RoleUser       = "user"
)

// User is an identity. The password digest is never serialized.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Firstname    string    `gorm:"type:text" json:"firstname"`
	Lastname     string    `gorm:"type:text" json:"lastname"`
	Email        string    `gorm:"type:text;uniqueIndex" json:"email"`
	Password     string    `gorm:"type:text" json:"-"`
	Role         string    `gorm:"type:text;default:user" json:"role"`
	RestaurantID *uint     `json:"restaurantId,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RefreshSession is one currently-valid refresh token. The row exists iff a
// previously-issued, not-yet-rotated refresh token references it; deleting
// the row revokes the token before its natural expiry.
type RefreshSession struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (RefreshSession) TableName() string {
	return "refresh_sessions"
}
