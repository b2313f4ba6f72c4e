package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Port int

	// events service
	MongoURI string
	MongoDB  string

	SeedOrganizerEmail string
	SeedOrganizerName  string

	// bff
	APIBaseURL     string
	SessionSecret  string
	AllowedOrigins []string

	// observability
	OTLPEndpoint   string
	TracingEnabled bool
}

func Load() Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	return Config{
		Env:  getEnv("APP_ENV", "dev"),
		Port: getEnvInt("PORT", 8080),

		MongoURI: getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:  getEnv("MONGO_DB", "gatherly"),

		SeedOrganizerEmail: getEnv("SEED_ORGANIZER_EMAIL", ""),
		SeedOrganizerName:  getEnv("SEED_ORGANIZER_NAME", "Seed Organizer"),

		APIBaseURL:     getEnv("API_BASE_URL", "http://127.0.0.1:8080"),
		SessionSecret:  getEnv("SESSION_SECRET", ""),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),

		OTLPEndpoint:   getEnv("OTLP_ENDPOINT", ""),
		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
	}
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)

		if p != "" {
			out = append(out, p)
		}
	}

	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)

		if err != nil {
			return fallback
		}

		return b
	}
	return fallback
}
