package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings for the storefront. Everything comes
// from the environment; a local .env file is loaded when present.
type Config struct {
	Addr    string
	DevMode bool

	// Catalog backend: "static", "sqlite" or "api".
	CatalogBackend string
	CatalogAPIURL  string
	SQLitePath     string

	CartAPIURL string

	RedisAddr string
	CacheTTL  time.Duration

	SessionHashKey  string
	SessionBlockKey string
	SecureCookies   bool

	TemplatesDir string
	AssetsDir    string
	BlogDir      string
}

// Load reads configuration from the environment. A missing .env file is
// not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:            getenv("ADDR", ":"+getenv("PORT", "8080")),
		DevMode:         getBool("DEV", false),
		CatalogBackend:  getenv("CATALOG_BACKEND", "static"),
		CatalogAPIURL:   os.Getenv("CATALOG_API_URL"),
		SQLitePath:      getenv("SQLITE_PATH", "store.db"),
		CartAPIURL:      os.Getenv("CART_API_URL"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		CacheTTL:        getDuration("CACHE_TTL", 2*time.Minute),
		SessionHashKey:  getenv("SESSION_HASH_KEY", "dev-insecure-session-hash-key-32b"),
		SessionBlockKey: os.Getenv("SESSION_BLOCK_KEY"),
		SecureCookies:   getBool("SECURE_COOKIES", false),
		TemplatesDir:    getenv("TEMPLATES_DIR", "templates"),
		AssetsDir:       getenv("ASSETS_DIR", "assets"),
		BlogDir:         getenv("BLOG_DIR", "content/blog"),
	}

	switch cfg.CatalogBackend {
	case "static", "sqlite":
	case "api":
		if cfg.CatalogAPIURL == "" {
			return cfg, fmt.Errorf("config: CATALOG_BACKEND=api requires CATALOG_API_URL")
		}
	default:
		return cfg, fmt.Errorf("config: unknown CATALOG_BACKEND %q", cfg.CatalogBackend)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
