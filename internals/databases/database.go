package database

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"amanah_backend/internals/configs"
)

var DB *gorm.DB

// DSN prefers DATABASE_URL and falls back to the DB_* parts.
func DSN() string {
	if v := configs.GetEnv("DATABASE_URL"); v != "" {
		return v
	}
	q := url.Values{}
	q.Set("sslmode", getenv("DB_SSLMODE", "disable"))
	q.Set("application_name", "amanah")
	q.Set("options", "-c statement_timeout="+getenv("DB_STATEMENT_TIMEOUT_MS", "5000"))
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD")),
		Host:     fmt.Sprintf("%s:%s", getenv("DB_HOST", "localhost"), getenv("DB_PORT", "5432")),
		Path:     getenv("DB_NAME", "amanah"),
		RawQuery: q.Encode(),
	}
	return u.String()
}

func ConnectDB() {
	log.Info().Msg("connecting to PostgreSQL")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  DSN(),
		PreferSimpleProtocol: configs.GetEnvBool("DB_SIMPLE_PROTOCOL", true), // PgBouncer transaction pooling
	}), &gorm.Config{
		Logger:         configs.NewGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	DB = db
	log.Info().Msg("database connected")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Error().Err(err).Msg("pool tune")
		return
	}
	sqlDB.SetMaxOpenConns(configs.GetEnvInt("DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(configs.GetEnvInt("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := Ping(); err != nil {
			log.Warn().Err(err).Msg("warm-up ping")
			return
		}
		DB.Exec("SELECT 1 FROM settings LIMIT 1")
	}()
}

func Ping() error {
	if DB == nil {
		return fmt.Errorf("database not initialised")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
