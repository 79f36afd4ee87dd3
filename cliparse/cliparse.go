package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           int
	StoreType      string
	DataDir        string
	DatabaseURL    string
	DatabaseDriver string
	SessionSecret  string
	SessionTTL     time.Duration
	Locale         string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3Prefix    string
	S3AccessKey string
	S3SecretKey string
}

// LoadEnvFile loads KEY=value pairs from path into the environment.
// Variables that are already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("quickly-vote", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")

	// Storage
	fs.StringVar(&cfg.StoreType, "s", "", "Store type (memory, file, sqlite, postgres, s3)")
	fs.StringVar(&cfg.DataDir, "data", "", "Data directory for the file and sqlite stores")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseDriver, "driver", "", "Postgres driver (postgres or pgx)")

	// Sessions (prefer env for the secret, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Session token secret (prefer env)")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", 0, "Session token lifetime")
	fs.StringVar(&cfg.Locale, "locale", "", "Locale for alphabetical sorting")

	fs.StringVar(&cfg.S3Bucket, "s3-bucket", "", "S3 bucket")
	fs.StringVar(&cfg.S3Region, "s3-region", "", "S3 region")
	fs.StringVar(&cfg.S3Endpoint, "s3-endpoint", "", "S3-compatible endpoint URL")
	fs.StringVar(&cfg.S3Prefix, "s3-prefix", "", "Key prefix for stored documents")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	fallback(&cfg.StoreType, "STORE_TYPE", "file")
	fallback(&cfg.DataDir, "DATA_DIR", "data")
	fallback(&cfg.DatabaseURL, "DATABASE_URL", "")
	fallback(&cfg.DatabaseDriver, "DATABASE_DRIVER", "")
	fallback(&cfg.Locale, "LOCALE", "en")

	switch cfg.StoreType {
	case "memory", "file":
	case "sqlite":
		cfg.DatabaseDriver = "sqlite"
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = "file:" + filepath.Join(cfg.DataDir, "quickly-vote.db")
		}
	case "postgres":
		if cfg.DatabaseDriver == "" {
			cfg.DatabaseDriver = "postgres"
		}
		if cfg.DatabaseDriver != "postgres" && cfg.DatabaseDriver != "pgx" {
			return Config{}, errors.New("postgres driver must be postgres or pgx")
		}
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	case "s3":
		fallback(&cfg.S3Bucket, "S3_BUCKET", "")
		fallback(&cfg.S3Region, "S3_REGION", "us-east-1")
		fallback(&cfg.S3Endpoint, "S3_ENDPOINT", "")
		fallback(&cfg.S3Prefix, "S3_PREFIX", "")
		cfg.S3AccessKey = os.Getenv("S3_ACCESS_KEY")
		cfg.S3SecretKey = os.Getenv("S3_SECRET_KEY")
		if cfg.S3Bucket == "" {
			return Config{}, errors.New("S3 bucket required (use -s3-bucket or S3_BUCKET env)")
		}
	default:
		return Config{}, fmt.Errorf("unknown store type %q", cfg.StoreType)
	}

	if cfg.SessionTTL == 0 {
		if ttlStr := os.Getenv("SESSION_TTL"); ttlStr != "" {
			ttl, err := time.ParseDuration(ttlStr)
			if err != nil {
				return Config{}, errors.New("invalid SESSION_TTL env variable")
			}
			cfg.SessionTTL = ttl
		} else {
			cfg.SessionTTL = 7 * 24 * time.Hour
		}
	}

	// Secret - MUST be provided
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	}
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET required")
	}

	return cfg, nil
}

func fallback(dst *string, env, def string) {
	if *dst != "" {
		return
	}
	if v := os.Getenv(env); v != "" {
		*dst = v
		return
	}
	*dst = def
}
