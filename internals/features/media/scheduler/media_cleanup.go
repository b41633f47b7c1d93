package scheduler

import (
	"context"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"amanah_backend/internals/configs"
	"amanah_backend/internals/features/media/service"
)

// RegisterMediaCleanup schedules the sweep on cfg.CleanupCron. "off" or an
// empty spec disables it.
func RegisterMediaCleanup(c *cron.Cron, svc *service.MediaService, cfg configs.MediaConfig) (cron.EntryID, error) {
	spec := strings.TrimSpace(cfg.CleanupCron)
	if spec == "" || strings.EqualFold(spec, "off") || svc == nil || svc.Store == nil {
		log.Info().Msg("[MEDIA CLEANUP] scheduler disabled")
		return 0, nil
	}
	opt := service.CleanupOptions{DryRun: cfg.CleanupDryRun, Mode: service.ModeClear, Orphans: cfg.CleanupOrphans}
	id, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
		defer cancel()
		if _, err := svc.Cleanup(ctx, opt); err != nil {
			log.Error().Err(err).Msg("[MEDIA CLEANUP] failed")
		}
	})
	if err != nil {
		return 0, err
	}
	log.Info().Str("spec", spec).Bool("dry_run", opt.DryRun).Bool("orphans", opt.Orphans).Msg("[MEDIA CLEANUP] scheduled")
	return id, nil
}
