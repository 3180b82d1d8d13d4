package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/keepstockhq/keepstock-backend/internal/seed"
	"github.com/keepstockhq/keepstock-backend/pkg/config"
	"github.com/keepstockhq/keepstock-backend/pkg/db/models"
	"github.com/keepstockhq/keepstock-backend/pkg/security"
	"gorm.io/gorm"
)

// GormCredentials serves store accounts from the users table of the
// database-backed record store.
type GormCredentials struct {
	db *gorm.DB
}

var _ CredentialRepository = (*GormCredentials)(nil)

// NewGormCredentials wraps an open GORM connection.
func NewGormCredentials(db *gorm.DB) (*GormCredentials, error) {
	if db == nil {
		return nil, fmt.Errorf("gorm connection required")
	}
	return &GormCredentials{db: db}, nil
}

// SeedIfEmpty inserts the hashed seed credentials when the users table
// is empty.
func (g *GormCredentials) SeedIfEmpty(ctx context.Context, users []seed.User, cfg config.PasswordConfig) error {
	var count int64
	if err := g.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if count > 0 || len(users) == 0 {
		return nil
	}

	rows := make([]models.User, 0, len(users))
	for _, user := range users {
		hash, err := security.HashPassword(user.Password, cfg)
		if err != nil {
			return fmt.Errorf("hashing password for %s: %w", user.Username, err)
		}
		rows = append(rows, models.User{
			Username:     user.Username,
			PasswordHash: hash,
			Store:        user.Store,
		})
	}
	if err := g.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("seeding users: %w", err)
	}
	return nil
}

func (g *GormCredentials) FindByUsername(ctx context.Context, username string) (*Credential, error) {
	var row models.User
	err := g.db.WithContext(ctx).First(&row, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &Credential{
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
		Store:        row.Store,
	}, nil
}
