package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreMySQL  = "mysql"
)

type Env struct {
	AppAddr   string `env:"APP_ADDR" envDefault:":8080"`
	GinMode   string `env:"GIN_MODE"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"true"`

	APIBaseURL   string        `env:"API_BASE_URL" envDefault:"http://localhost:4000/api"`
	APITimeout   time.Duration `env:"API_TIMEOUT" envDefault:"15s"`
	APIRateLimit float64       `env:"API_RATE_LIMIT" envDefault:"20"`
	APIRateBurst int           `env:"API_RATE_BURST" envDefault:"10"`

	PageSize       int           `env:"PAGE_SIZE" envDefault:"20"`
	SearchDebounce time.Duration `env:"SEARCH_DEBOUNCE" envDefault:"300ms"`
	ScreenIdleTTL  time.Duration `env:"SCREEN_IDLE_TTL" envDefault:"15m"`

	SessionStore   string        `env:"SESSION_STORE" envDefault:"memory"`
	SessionCookie  string        `env:"SESSION_COOKIE" envDefault:"viveo_admin_session"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CookieSecure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
	SessionHashKey string        `env:"SESSION_HASH_KEY"`
	MySQLDSN       string        `env:"MYSQL_DSN"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// LoadEnv reads an optional .env file and then the process environment.
// Values already present in the environment win over the file.
func LoadEnv() (Env, error) {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
	return parseEnv()
}

func parseEnv() (Env, error) {
	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return Env{}, fmt.Errorf("parse env config: %w", err)
	}
	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	cfg.SessionStore = strings.ToLower(strings.TrimSpace(cfg.SessionStore))
	cfg.SessionHashKey = strings.TrimSpace(cfg.SessionHashKey)
	cfg.MySQLDSN = strings.TrimSpace(cfg.MySQLDSN)

	origins := cfg.CORSAllowedOrigins[:0]
	for _, o := range cfg.CORSAllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	cfg.CORSAllowedOrigins = origins

	if err := cfg.validate(); err != nil {
		return Env{}, err
	}
	return cfg, nil
}

func (e Env) validate() error {
	if e.APIBaseURL == "" {
		return errors.New("API_BASE_URL must not be empty")
	}
	if e.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", e.PageSize)
	}
	if e.SearchDebounce < 0 {
		return errors.New("SEARCH_DEBOUNCE must not be negative")
	}
	if e.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if strings.TrimSpace(e.SessionCookie) == "" {
		return errors.New("SESSION_COOKIE must not be empty")
	}
	switch e.SessionStore {
	case SessionStoreMemory:
	case SessionStoreMySQL:
		if e.MySQLDSN == "" {
			return errors.New("MYSQL_DSN is required when SESSION_STORE is mysql")
		}
		if len(e.SessionHashKey) < 16 {
			return errors.New("SESSION_HASH_KEY of at least 16 bytes is required when SESSION_STORE is mysql")
		}
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", e.SessionStore)
	}
	return nil
}
