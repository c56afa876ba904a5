package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string
	BaseURL string

	DBDSN string

	JWTAccessSecret  string
	JWTRefreshSecret string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration

	ResendAPIKey string
	EmailFrom    string
	EmailEnabled bool

	CloudinaryURL string

	CORSAllowedOrigins []string
}

// LoadEnv reads configuration from .env (when present) and the process
// environment, applying defaults suitable for local development.
func LoadEnv() Env {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load .env file: %v", err)
	}

	env := Env{
		AppAddr: getString("APP_ADDR", ":8080"),
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),
		BaseURL: getString("BASE_URL", "http://localhost:8080"),

		DBDSN: getString("DB_DSN",
			"root:@tcp(127.0.0.1:3306)/iti_events?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"),

		JWTAccessSecret:  strings.TrimSpace(os.Getenv("JWT_ACCESS_SECRET")),
		JWTRefreshSecret: strings.TrimSpace(os.Getenv("JWT_REFRESH_SECRET")),
		AccessTokenTTL:   getDuration("JWT_ACCESS_EXPIRATION", 15*time.Minute),
		RefreshTokenTTL:  getDuration("JWT_REFRESH_EXPIRATION", 168*time.Hour),

		ResendAPIKey: strings.TrimSpace(os.Getenv("RESEND_API_KEY")),
		EmailFrom:    getString("EMAIL_FROM", "ITI Events <no-reply@iti-events.local>"),

		CloudinaryURL: strings.TrimSpace(os.Getenv("CLOUDINARY_URL")),
	}

	env.EmailEnabled = env.ResendAPIKey != ""

	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSAllowedOrigins = append(env.CORSAllowedOrigins, o)
			}
		}
	}

	if env.JWTAccessSecret == "" || env.JWTRefreshSecret == "" {
		log.Fatal("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be set")
	}

	return env
}

func getString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	// plain number means hours, matching the old deployment configs
	if h, err := strconv.Atoi(raw); err == nil {
		return time.Duration(h) * time.Hour
	}
	log.Printf("warning: invalid duration in %s, using default", key)
	return fallback
}
