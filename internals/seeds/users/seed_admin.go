package users

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"amanah_backend/internals/constants"
	authModel "amanah_backend/internals/features/users/auth/model"
	authService "amanah_backend/internals/features/users/auth/service"
)

type AdminSeed struct {
	FullName string
	Email    string
	Password string
}

// SeedAdmin creates the first superadmin when the email is not taken yet.
// An existing account is left untouched.
func SeedAdmin(ctx context.Context, db *gorm.DB, in AdminSeed) error {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		log.Info().Msg("SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}
	if len(in.Password) < 8 {
		return errors.New("SEED_ADMIN_PASSWORD must be at least 8 characters")
	}

	var existing authModel.UserModel
	err := db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Info().Str("email", email).Msg("admin already exists, seed skipped")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := authService.HashPassword(in.Password)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(in.FullName)
	if name == "" {
		name = "Administrator"
	}
	u := authModel.UserModel{
		FullName:      name,
		Email:         email,
		PasswordHash:  hash,
		Role:          constants.RoleSuperAdmin,
		IsActive:      true,
		EmailVerified: true,
	}
	if err := db.WithContext(ctx).Create(&u).Error; err != nil {
		return err
	}
	log.Info().Str("email", email).Msg("admin seeded")
	return nil
}
