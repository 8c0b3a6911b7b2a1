package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Session  SessionConfig
	Dialog   DialogConfig
	Otel     OtelConfig
	Auth     AuthConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	FeedLogFilePath    string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host            string
	Port            int
	Email           string
	Password        string
	SenderName      string
	StaffAlertEmail string
}

// Enabled reports whether staff alert emails can be sent.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.StaffAlertEmail != ""
}

type SessionConfig struct {
	TTL           time.Duration
	PurgeInterval time.Duration
	DeliveryTTL   time.Duration
}

type DialogConfig struct {
	ReservationMaxRetries int
	ReservationMinGuests  int
	ReservationMaxGuests  int
	// DefaultYear is used for year-less reservation dates. Zero rolls forward from today.
	DefaultYear    int
	SourcePlatform string
}

// AuthConfig guards the operator endpoints. An empty secret leaves them unregistered.
type AuthConfig struct {
	JwtSecret string
}

type OtelConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			FeedLogFilePath:    getEnv("FEED_LOG_FILE_PATH", "staff_feed.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:            getEnv("SMTP_HOST", ""),
			Port:            getEnvAsInt("SMTP_PORT", 587),
			Email:           getEnv("SMTP_EMAIL", ""),
			Password:        getEnv("SMTP_PASSWORD", ""),
			SenderName:      getEnv("SMTP_SENDER_NAME", "Restaurant Bot"),
			StaffAlertEmail: getEnv("STAFF_ALERT_EMAIL", ""),
		},
		Session: SessionConfig{
			TTL:           getEnvAsMinutes("SESSION_TTL_MINUTES", 60),
			PurgeInterval: getEnvAsMinutes("SESSION_PURGE_MINUTES", 10),
			DeliveryTTL:   getEnvAsMinutes("DELIVERY_TTL_MINUTES", 10),
		},
		Dialog: DialogConfig{
			ReservationMaxRetries: getEnvAsInt("RESERVATION_MAX_RETRIES", 2),
			ReservationMinGuests:  1,
			ReservationMaxGuests:  20,
			DefaultYear:           getEnvAsInt("RESERVATION_DEFAULT_YEAR", 0),
			SourcePlatform:        getEnv("SOURCE_PLATFORM", "dialogflow"),
		},
		Otel: OtelConfig{
			Enabled:     getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "restaurant-chatbot-be"),
		},
		Auth: AuthConfig{
			JwtSecret: getEnv("JWT_SECRET", ""),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
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

func getEnvAsMinutes(key string, fallback int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallback)) * time.Minute
}
