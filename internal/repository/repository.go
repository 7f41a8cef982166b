package repository

import (
	"context"
	"errors"

	"github.com/yash-bansod-2003/shop-autentication/internal/database/model"
)

// ErrNotFound is returned when the target row does not exist. Implementations
// translate their driver's miss into this sentinel.
var ErrNotFound = errors.New("record not found")

// UserRepository persists identities.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindAll(ctx context.Context, offset, limit int) ([]model.User, int64, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

// SessionRepository persists refresh sessions. Lookups always constrain on
// the owning user so a token whose session id exists but whose subject does
// not match the session's owner is rejected.
type SessionRepository interface {
	Create(ctx context.Context, userID uint) (*model.RefreshSession, error)
	Find(ctx context.Context, id, userID uint) (*model.RefreshSession, error)
	// Rotate retires the old session and creates its replacement in one
	// transaction. ErrNotFound means the old session was already retired,
	// which is how the loser of a concurrent refresh fails closed.
	Rotate(ctx context.Context, oldID, userID uint) (*model.RefreshSession, error)
	DeleteAllForUser(ctx context.Context, userID uint) error
}
