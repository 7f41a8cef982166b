package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yash-bansod-2003/shop-autentication/internal/database/model"
)

type sessionGorm struct {
	db *gorm.DB
}

// NewSessionRepository creates the gorm-backed SessionRepository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionGorm{db: db}
}

func (r *sessionGorm) Create(ctx context.Context, userID uint) (*model.RefreshSession, error) {
	session := model.RefreshSession{UserID: userID}
	if err := r.db.WithContext(ctx).Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionGorm) Find(ctx context.Context, id, userID uint) (*model.RefreshSession, error) {
	var session model.RefreshSession
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Rotate deletes the old session and inserts the replacement in one
// transaction. The delete is checked first so a refresh token that lost a
// rotation race fails with ErrNotFound instead of minting a second session.
func (r *sessionGorm) Rotate(ctx context.Context, oldID, userID uint) (*model.RefreshSession, error) {
	session := model.RefreshSession{UserID: userID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", oldID, userID).
			Delete(&model.RefreshSession{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Create(&session).Error
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionGorm) DeleteAllForUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.RefreshSession{}).Error
}
