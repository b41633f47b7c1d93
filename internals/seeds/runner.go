package seeds

import (
	"context"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"amanah_backend/internals/configs"
	"amanah_backend/internals/seeds/settings"
	"amanah_backend/internals/seeds/users"
)

// RunAllSeeds is safe to run on every boot; existing rows are kept.
func RunAllSeeds(ctx context.Context, db *gorm.DB) {
	if err := users.SeedAdmin(ctx, db, users.AdminSeed{
		FullName: configs.GetEnv("SEED_ADMIN_NAME"),
		Email:    configs.GetEnv("SEED_ADMIN_EMAIL"),
		Password: configs.GetEnv("SEED_ADMIN_PASSWORD"),
	}); err != nil {
		log.Error().Err(err).Msg("admin seed failed")
	}

	if err := settings.SeedSettings(ctx, db); err != nil {
		log.Error().Err(err).Msg("settings seed failed")
	}
}
