// Package userrepo gives the order workflow its read-only view of the user
// store. Account management and authentication live in a separate service;
// this repository only answers existence checks against the shared table.
package userrepo

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserDTO represents the database structure of the shared users table.
type UserDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:""`
	Email     string    `gorm:"uniqueIndex"`
	Role      string    `gorm:""`
	CreatedAt time.Time
}

// TableName specifies the database table name for user entities.
func (UserDTO) TableName() string {
	return "users"
}

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Exists reports whether a user with the given ID exists.
func (r *GormUserRepository) Exists(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&UserDTO{}).
		Where("id = ?", id.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
