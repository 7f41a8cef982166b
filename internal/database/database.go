package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yash-bansod-2003/shop-autentication/internal/database/model"
)

// Connect opens the postgres connection and migrates the schema.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&model.User{}, &model.RefreshSession{}); err != nil {
		return nil, err
	}

	return db, nil
}
