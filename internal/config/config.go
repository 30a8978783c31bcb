package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Gateways GatewayConfig
	Billing  BillingConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JWTSecret          string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type GatewayConfig struct {
	MercadoPagoAccessToken   string
	MercadoPagoWebhookSecret string
	StripeAPIKey             string
	StripeWebhookSecret      string
}

type BillingConfig struct {
	// Days an approved affiliate sale waits before becoming payable.
	AffiliateGuaranteeDays int
	// Days before access expiry at which the renewal reminder goes out.
	ExpiryReminderDays int
	// Plan catalog cache TTL in seconds.
	PlanCacheTTLSeconds int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JWTSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "AutoWebinar"),
		},
		Gateways: GatewayConfig{
			MercadoPagoAccessToken:   getEnv("MP_ACCESS_TOKEN", ""),
			MercadoPagoWebhookSecret: getEnv("MP_WEBHOOK_SECRET", ""),
			StripeAPIKey:             getEnv("STRIPE_API_KEY", ""),
			StripeWebhookSecret:      getEnv("STRIPE_WEBHOOK_SECRET", ""),
		},
		Billing: BillingConfig{
			AffiliateGuaranteeDays: getEnvAsInt("AFFILIATE_GUARANTEE_DAYS", 14),
			ExpiryReminderDays:     getEnvAsInt("EXPIRY_REMINDER_DAYS", 3),
			PlanCacheTTLSeconds:    getEnvAsInt("PLAN_CACHE_TTL_SECONDS", 60),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
