package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	helperAuth "amanah_backend/internals/helpers/auth"
)

const blacklistPurgeSpec = "@every 6h"

// RegisterBlacklistPurge adds the expired-token purge to c.
func RegisterBlacklistPurge(c *cron.Cron, db *gorm.DB) (cron.EntryID, error) {
	return c.AddFunc(blacklistPurgeSpec, func() {
		PurgeBlacklist(db)
	})
}

func PurgeBlacklist(db *gorm.DB) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := helperAuth.PurgeExpired(ctx, db)
	if err != nil {
		log.Error().Err(err).Msg("[CLEANUP] token_blacklist purge failed")
		return
	}
	log.Info().Int64("deleted", n).Msg("[CLEANUP] token_blacklist purged")
}
