package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	MongoURI string
	MongoDB  string

	RedisAddr     string
	RedisPassword string

	SessionSecret  string
	SessionTTL     time.Duration
	CookieSecure   bool
	LoginPath      string
	AllowedOrigins []string

	CredentialBackend string
	PostgresDSN       string
	SeedUsername      string
	SeedPassword      string

	ImageBackend   string
	UploadDir      string
	MaxUploadBytes int64
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	StaticDir string
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	return &Config{
		Port:     getenv("PORT", "3000"),
		Env:      getenv("ENV", "development"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		MongoURI: getenv("MONGO_URI", getenv("MONGO_DATABASE_URI", "mongodb://localhost:27017")),
		MongoDB:  getenv("MONGO_DB", "employee_admin"),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),

		SessionSecret:  getenv("SECRET_API_KEY", ""),
		SessionTTL:     getduration("SESSION_TTL", 30*24*time.Hour),
		CookieSecure:   getenv("COOKIE_SECURE", "false") == "true",
		LoginPath:      getenv("LOGIN_PATH", "/login"),
		AllowedOrigins: splitList(getenv("ALLOWED_ORIGINS", "http://localhost:5173")),

		CredentialBackend: getenv("CREDENTIAL_BACKEND", "mongo"),
		PostgresDSN:       getenv("POSTGRES_DSN", ""),
		SeedUsername:      getenv("SEED_USERNAME", ""),
		SeedPassword:      getenv("SEED_PASSWORD", ""),

		ImageBackend:   getenv("IMAGE_BACKEND", "disk"),
		UploadDir:      getenv("UPLOAD_DIR", "uploads"),
		MaxUploadBytes: getint("MAX_UPLOAD_MB", 10) << 20,
		MinioEndpoint:  getenv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getenv("MINIO_BUCKET", "employee-images"),
		MinioUseSSL:    getenv("MINIO_USE_SSL", "false") == "true",

		StaticDir: getenv("STATIC_DIR", ""),
	}
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		return errors.New("SECRET_API_KEY must be set")
	}
	switch c.CredentialBackend {
	case "mongo":
	case "memory":
		// The memory store starts empty, so it needs a login to be usable.
		if c.SeedUsername == "" || c.SeedPassword == "" {
			return errors.New("SEED_USERNAME and SEED_PASSWORD must be set when CREDENTIAL_BACKEND=memory")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN must be set when CREDENTIAL_BACKEND=postgres")
		}
	default:
		return errors.New("CREDENTIAL_BACKEND must be one of mongo, postgres, memory")
	}
	switch c.ImageBackend {
	case "disk", "minio":
	default:
		return errors.New("IMAGE_BACKEND must be one of disk, minio")
	}
	return nil
}

// IsDevelopment reports whether ENV selects the development profile.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int64) int64 {
	n, err := strconv.ParseInt(getenv(key, ""), 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getduration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getenv(key, ""))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
