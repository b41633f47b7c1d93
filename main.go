package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"amanah_backend/internals/configs"
	database "amanah_backend/internals/databases"
	mediaScheduler "amanah_backend/internals/features/media/scheduler"
	authScheduler "amanah_backend/internals/features/users/auth/scheduler"
	helper "amanah_backend/internals/helpers"
	middlewares "amanah_backend/internals/middlewares"
	requestLogger "amanah_backend/internals/middlewares/logger"
	routes "amanah_backend/internals/route"
	"amanah_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	configs.InitLogger(configs.AppEnv)
	appCfg := configs.LoadAppConfig()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            helper.ErrorHandler,
		BodyLimit:               int(configs.LoadMediaConfig().MaxVideoBytes) + 1<<20,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		ReadTimeout:             60 * time.Second,
		WriteTimeout:            60 * time.Second,
		IdleTimeout:             90 * time.Second,
	})

	app.Use(middlewares.RecoveryMiddleware())
	app.Use(requestid.New(requestid.Config{Generator: utils.UUIDv4}))
	app.Use(requestLogger.LoggerMiddleware())
	app.Use(middlewares.CorsMiddleware(middlewares.ParseOrigins(appCfg.CORSOrigins, configs.FrontendURL)))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(middlewares.GlobalRateLimiter())

	database.ConnectDB()
	database.TunePool()
	if configs.GetEnvBool("AUTO_MIGRATE", true) {
		if err := database.AutoMigrate(database.DB); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
	}
	database.WarmUpQueries()

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	seeds.RunAllSeeds(bootCtx, database.DB)
	deps := routes.NewDeps(bootCtx, database.DB, appCfg)
	cancelBoot()

	routes.SetupRoutes(app, database.DB, deps)

	c := cron.New()
	if _, err := authScheduler.RegisterBlacklistPurge(c, database.DB); err != nil {
		log.Error().Err(err).Msg("blacklist purge not scheduled")
	}
	if _, err := mediaScheduler.RegisterMediaCleanup(c, deps.MediaService, configs.LoadMediaConfig()); err != nil {
		log.Error().Err(err).Msg("media cleanup not scheduled")
	}
	c.Start()

	go func() {
		log.Info().Str("port", appCfg.Port).Msg("listening")
		if err := app.Listen("0.0.0.0:" + appCfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	<-c.Stop().Done()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
