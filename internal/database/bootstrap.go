package database

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mapboard-app/mapboard/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EnsureSuperAdmin creates the distinguished super-admin account when it does
// not exist yet. The account always carries admin and drawing privileges; it
// can never be demoted through the admin API.
func EnsureSuperAdmin(db *gorm.DB, username, password string) error {
	if username == "" {
		return nil
	}

	var existing models.User
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup super-admin: %w", err)
	}

	if password == "" {
		slog.Warn("super-admin account missing and ADMIN_PASSWORD not set; skipping bootstrap", "username", username)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash super-admin password: %w", err)
	}

	admin := models.User{
		Username: username,
		Password: string(hash),
		IsAdmin:  true,
		CanDraw:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("create super-admin: %w", err)
	}
	slog.Info("super-admin account created", "username", username)
	return nil
}
