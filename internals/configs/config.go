package configs

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var (
	AppEnv         string
	JWTSecret      string
	GoogleClientID string
	FrontendURL    string
	OrgName        string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" && os.Getenv("KUBERNETES_SERVICE_HOST") == "" {
		if err := godotenv.Load(); err != nil {
			log.Warn().Msg("no .env file found, using system environment")
		} else {
			log.Info().Msg(".env file loaded")
		}
	}

	AppEnv = GetEnv("APP_ENV", "development")
	JWTSecret = GetEnv("JWT_SECRET")
	GoogleClientID = GetEnv("GOOGLE_CLIENT_ID")
	FrontendURL = strings.TrimRight(GetEnv("FRONTEND_URL", "http://localhost:3000"), "/")
	OrgName = GetEnv("ORG_NAME", "Amanah Foundation")

	if JWTSecret == "" {
		log.Error().Msg("JWT_SECRET is not set")
	}
	if GoogleClientID == "" {
		log.Warn().Msg("GOOGLE_CLIENT_ID is not set, Google sign-in disabled")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func GetEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func GetEnvDuration(key string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// =======================
// TYPED SECTIONS
// =======================

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
	SuccessURL    string
	CancelURL     string
}

func LoadStripeConfig() StripeConfig {
	return StripeConfig{
		SecretKey:     GetEnv("STRIPE_SECRET_KEY"),
		WebhookSecret: GetEnv("STRIPE_WEBHOOK_SECRET"),
		Currency:      strings.ToLower(GetEnv("STRIPE_CURRENCY", "usd")),
		SuccessURL:    GetEnv("STRIPE_SUCCESS_URL", FrontendURL+"/donate/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     GetEnv("STRIPE_CANCEL_URL", FrontendURL+"/donate/cancel"),
	}
}

type MidtransConfig struct {
	ServerKey string
	UseProd   bool
}

func LoadMidtransConfig() MidtransConfig {
	return MidtransConfig{
		ServerKey: GetEnv("MIDTRANS_SERVER_KEY"),
		UseProd:   GetEnvBool("MIDTRANS_USE_PROD", false),
	}
}

type StorageConfig struct {
	Driver    string // s3 | oss
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string // base for public object URLs, e.g. http://localhost:9000/media
	// Aliyun OSS
	OSSEndpoint  string
	OSSAccessKey string
	OSSSecretKey string
	OSSBucket    string
}

func LoadStorageConfig() StorageConfig {
	return StorageConfig{
		Driver:       strings.ToLower(GetEnv("STORAGE_DRIVER", "s3")),
		Endpoint:     GetEnv("S3_ENDPOINT", "http://localhost:9000"),
		Region:       GetEnv("S3_REGION", "us-east-1"),
		AccessKey:    GetEnv("S3_ACCESS_KEY"),
		SecretKey:    GetEnv("S3_SECRET_KEY"),
		Bucket:       GetEnv("S3_BUCKET", "media"),
		PublicURL:    strings.TrimRight(GetEnv("S3_PUBLIC_URL"), "/"),
		OSSEndpoint:  GetEnv("ALI_OSS_ENDPOINT"),
		OSSAccessKey: GetEnv("ALI_OSS_ACCESS_KEY"),
		OSSSecretKey: GetEnv("ALI_OSS_SECRET_KEY"),
		OSSBucket:    GetEnv("ALI_OSS_BUCKET"),
	}
}

type MailConfig struct {
	Driver         string // smtp | sendgrid | console
	Host           string
	Port           int
	Username       string
	Password       string
	FromName       string
	FromAddress    string
	SendgridAPIKey string
	AdminAddress   string
}

func LoadMailConfig() MailConfig {
	return MailConfig{
		Driver:         strings.ToLower(GetEnv("MAIL_DRIVER", "console")),
		Host:           GetEnv("SMTP_HOST", "localhost"),
		Port:           GetEnvInt("SMTP_PORT", 587),
		Username:       GetEnv("SMTP_USERNAME"),
		Password:       GetEnv("SMTP_PASSWORD"),
		FromName:       GetEnv("MAIL_FROM_NAME", OrgName),
		FromAddress:    GetEnv("MAIL_FROM", "no-reply@example.org"),
		SendgridAPIKey: GetEnv("SENDGRID_API_KEY"),
		AdminAddress:   GetEnv("MAIL_ADMIN"),
	}
}

type MediaConfig struct {
	FFmpegPath     string
	FFmpegTimeout  time.Duration
	MaxImageBytes  int64
	MaxVideoBytes  int64
	CleanupCron    string
	CleanupDryRun  bool
	CleanupOrphans bool
}

func LoadMediaConfig() MediaConfig {
	return MediaConfig{
		FFmpegPath:     GetEnv("FFMPEG_PATH", "ffmpeg"),
		FFmpegTimeout:  GetEnvDuration("FFMPEG_TIMEOUT", 3*time.Minute),
		MaxImageBytes:  int64(GetEnvInt("MAX_IMAGE_MB", 10)) << 20,
		MaxVideoBytes:  int64(GetEnvInt("MAX_VIDEO_MB", 200)) << 20,
		CleanupCron:    GetEnv("MEDIA_CLEANUP_CRON", "30 3 * * *"),
		CleanupDryRun:  GetEnvBool("MEDIA_CLEANUP_DRY_RUN", true),
		CleanupOrphans: GetEnvBool("MEDIA_CLEANUP_ORPHANS", false),
	}
}

type AppConfig struct {
	Port           string
	CORSOrigins    string
	PaymentGateway string // stripe | midtrans
	DatabaseURL    string
}

func LoadAppConfig() AppConfig {
	return AppConfig{
		Port:           GetEnv("PORT", "8080"),
		CORSOrigins:    GetEnv("CORS_ORIGINS"),
		PaymentGateway: strings.ToLower(GetEnv("PAYMENT_GATEWAY", "stripe")),
		DatabaseURL:    GetEnv("DATABASE_URL"),
	}
}
