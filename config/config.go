package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers accepted in STORE_DRIVER.
const (
	StoreFile     = "file"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string

	StoreDriver string
	StateFile   string
	StateKey    string
	DBUrl       string
	Redis       RedisConfig
	SaveTimeout time.Duration

	RosterFile    string
	SeedDemo      bool
	DefaultRole   string
	EventTimezone string

	CORSAllowedOrigins []string
	Mail               MailConfig
}

// RedisConfig holds the connection settings for the redis state store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MailConfig holds the mailer settings. Provider is "noop" or "ses".
type MailConfig struct {
	Provider           string
	FromAddress        string
	FromName           string
	ReplyTo            string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	InsecureSkipVerify bool
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production the variables come from the environment only.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:   env,
		Port:          getEnv("PORT", "8080"),
		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", StoreFile)),
		StateFile:     getEnv("STATE_FILE", "lineup-state.json"),
		StateKey:      getEnv("STATE_KEY", "primordial-lineup-data"),
		DBUrl:         os.Getenv("DATABASE_URL"),
		RosterFile:    os.Getenv("ROSTER_FILE"),
		DefaultRole:   strings.ToLower(getEnv("LINEUP_ROLE", "booker")),
		EventTimezone: getEnv("EVENT_TIMEZONE", "UTC"),
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Mail: MailConfig{
			Provider:           strings.ToLower(getEnv("MAIL_PROVIDER", "noop")),
			FromAddress:        os.Getenv("MAIL_FROM_ADDRESS"),
			FromName:           getEnv("MAIL_FROM_NAME", "Primordial Groove"),
			ReplyTo:            os.Getenv("MAIL_REPLY_TO"),
			AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
			AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
	}

	var err error
	if cfg.Redis.DB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.SeedDemo, err = getBool("SEED_DEMO", true); err != nil {
		return nil, err
	}
	if cfg.Mail.InsecureSkipVerify, err = getBool("SES_INSECURE_SKIP_VERIFY", false); err != nil {
		return nil, err
	}
	if cfg.SaveTimeout, err = getDuration("SAVE_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	switch cfg.StoreDriver {
	case StoreFile, StoreRedis, StoreMemory:
	case StorePostgres:
		if cfg.DBUrl == "" {
			return nil, fmt.Errorf("config: DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("config: unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	switch cfg.DefaultRole {
	case "promoter", "booker", "artist":
	default:
		return nil, fmt.Errorf("config: unknown LINEUP_ROLE %q", cfg.DefaultRole)
	}
	if _, err := time.LoadLocation(cfg.EventTimezone); err != nil {
		return nil, fmt.Errorf("config: EVENT_TIMEZONE: %w", err)
	}

	return cfg, nil
}

// Location returns the time zone event times are expressed in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.EventTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}
