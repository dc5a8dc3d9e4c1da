// Package config loads service settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMemory    = "memory"
	DriverPostgres  = "postgres"
	DriverFirestore = "firestore"
	DriverMongo     = "mongo"
	DriverSurreal   = "surrealdb"
)

type Config struct {
	Port           string
	AllowedOrigins []string
	StaticDir      string
	UploadDir      string
	LogLevel       string
	SweepInterval  time.Duration
	// StatsConcurrency bounds the per-deck match listings of one stats request.
	StatsConcurrency int

	Docstore Docstore
	Catalog  Catalog
	R2       R2
}

// Docstore selects and configures the document store backend.
type Docstore struct {
	Driver string

	DatabaseURL        string
	FirestoreProjectID string
	MongoURI           string
	MongoDatabase      string

	SurrealURL       string
	SurrealNamespace string
	SurrealDatabase  string
	SurrealUser      string
	SurrealPass      string
}

// Catalog configures the card catalog API client.
type Catalog struct {
	BaseURL     string
	APIKey      string
	Timeout     time.Duration
	Concurrency int
}

// R2 configures avatar uploads to Cloudflare R2. Uploads are disabled when
// Bucket is empty.
type R2 struct {
	AccountID       string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	CDNBaseURL      string
}

func (r R2) Enabled() bool { return r.Bucket != "" }

// LoadDotEnv reads .env into the process environment. A missing file is
// reported but harmless.
func LoadDotEnv(files ...string) error {
	return godotenv.Load(files...)
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "5200"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		StaticDir:      getEnv("STATIC_DIR", "./public"),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Docstore: Docstore{
			Driver:             strings.ToLower(getEnv("DOCSTORE_DRIVER", DriverMemory)),
			DatabaseURL:        os.Getenv("DATABASE_URL"),
			FirestoreProjectID: os.Getenv("FIRESTORE_PROJECT_ID"),
			MongoURI:           os.Getenv("MONGO_URI"),
			MongoDatabase:      getEnv("MONGO_DATABASE", "deck_tracker"),
			SurrealURL:         os.Getenv("SURREALDB_URL"),
			SurrealNamespace:   getEnv("SURREALDB_NAMESPACE", "deck_tracker"),
			SurrealDatabase:    getEnv("SURREALDB_DATABASE", "deck_tracker"),
			SurrealUser:        os.Getenv("SURREALDB_USER"),
			SurrealPass:        os.Getenv("SURREALDB_PASS"),
		},
		Catalog: Catalog{
			BaseURL: strings.TrimRight(getEnv("POKEMON_TCG_BASE_URL", "https://api.pokemontcg.io/v2"), "/"),
			APIKey:  os.Getenv("POKEMON_TCG_API_KEY"),
		},
		R2: R2{
			AccountID:       os.Getenv("CLOUDFLARE_ACCOUNT_ID"),
			AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
			AccessKeySecret: os.Getenv("R2_ACCESS_KEY_SECRET"),
			Bucket:          os.Getenv("R2_BUCKET_NAME"),
			CDNBaseURL:      os.Getenv("CDN_BASE_URL"),
		},
	}

	var err error
	if cfg.Catalog.Timeout, err = getDuration("CATALOG_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.Catalog.Concurrency, err = getInt("CATALOG_CONCURRENCY", 4); err != nil {
		return nil, err
	}
	if cfg.StatsConcurrency, err = getInt("STATS_CONCURRENCY", 4); err != nil {
		return nil, err
	}
	if cfg.SweepInterval, err = getDuration("ORPHAN_SWEEP_INTERVAL", time.Hour); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected driver has what it needs.
func (c *Config) Validate() error {
	d := c.Docstore
	switch d.Driver {
	case DriverMemory:
	case DriverPostgres:
		if d.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable not set")
		}
	case DriverFirestore:
		if d.FirestoreProjectID == "" {
			return fmt.Errorf("FIRESTORE_PROJECT_ID environment variable not set")
		}
	case DriverMongo:
		if d.MongoURI == "" {
			return fmt.Errorf("MONGO_URI environment variable not set")
		}
	case DriverSurreal:
		if d.SurrealURL == "" {
			return fmt.Errorf("SURREALDB_URL environment variable not set")
		}
	default:
		return fmt.Errorf("unknown DOCSTORE_DRIVER %q", d.Driver)
	}

	if c.Catalog.Concurrency < 1 {
		return fmt.Errorf("CATALOG_CONCURRENCY must be at least 1, got %d", c.Catalog.Concurrency)
	}
	if c.StatsConcurrency < 1 {
		return fmt.Errorf("STATS_CONCURRENCY must be at least 1, got %d", c.StatsConcurrency)
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("CATALOG_TIMEOUT must be positive, got %s", c.Catalog.Timeout)
	}
	if c.SweepInterval < 0 {
		return fmt.Errorf("ORPHAN_SWEEP_INTERVAL must not be negative, got %s", c.SweepInterval)
	}
	if c.R2.Enabled() && (c.R2.AccountID == "" || c.R2.AccessKeyID == "" || c.R2.AccessKeySecret == "") {
		return fmt.Errorf("R2_BUCKET_NAME is set but CLOUDFLARE_ACCOUNT_ID, R2_ACCESS_KEY_ID or R2_ACCESS_KEY_SECRET is missing")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

// splitList splits a comma-separated value and trims each entry.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
