package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server and the one-shot tools read from the environment.
type Config struct {
	Port    string
	GinMode string

	JWTSecret string
	TokenTTL  time.Duration

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	StoreDriver   string
	MongoURI      string
	MongoDatabase string

	RedisAddr     string
	RedisPassword string
	NatsURL       string

	CloudinaryURL string
	MediaBaseURL  string

	VapidPublicKey  string
	VapidPrivateKey string
	VapidSubject    string

	ContentDir     string
	AllowedOrigins []string
	RateLimit      int
	RateWindow     time.Duration
}

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function so tests can supply their own environment.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:               withDefault(getenv("PORT"), "8080"),
		GinMode:            withDefault(getenv("GIN_MODE"), "debug"),
		JWTSecret:          getenv("JWT_SECRET"),
		TokenTTL:           durationOr(getenv("TOKEN_TTL"), 24*time.Hour),
		GoogleClientID:     getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  withDefault(getenv("GOOGLE_REDIRECT_URL"), "http://localhost:8080/api/google/callback"),
		StoreDriver:        withDefault(getenv("STORE_DRIVER"), DriverMongo),
		MongoURI:           getenv("MONGODB_URI"),
		MongoDatabase:      withDefault(getenv("MONGODB_DATABASE"), "kovan"),
		RedisAddr:          getenv("REDIS_ADDR"),
		RedisPassword:      getenv("REDIS_PASSWORD"),
		NatsURL:            getenv("NATS_URL"),
		CloudinaryURL:      getenv("CLOUDINARY_URL"),
		MediaBaseURL:       getenv("MEDIA_BASE_URL"),
		VapidPublicKey:     getenv("VAPID_PUBLIC_KEY"),
		VapidPrivateKey:    getenv("VAPID_PRIVATE_KEY"),
		VapidSubject:       withDefault(getenv("VAPID_EMAIL"), "mailto:admin@kovan.org"),
		ContentDir:         withDefault(getenv("CONTENT_DIR"), "content"),
		AllowedOrigins:     splitList(withDefault(getenv("ALLOWED_ORIGINS"), "http://localhost:5173,http://localhost:3000")),
		RateLimit:          intOr(getenv("RATE_LIMIT"), 120),
		RateWindow:         durationOr(getenv("RATE_WINDOW"), time.Minute),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}
	switch cfg.StoreDriver {
	case DriverMongo:
		if cfg.MongoURI == "" {
			return nil, errors.New("MONGODB_URI must be set when STORE_DRIVER=mongo")
		}
	case DriverMemory:
	default:
		return nil, errors.New("STORE_DRIVER must be mongo or memory")
	}
	return cfg, nil
}

func withDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func intOr(v string, def int) int {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func durationOr(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
