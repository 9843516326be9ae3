package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PARSEGBX"

type AppConfig struct {
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json" validate:"oneof=json text"`

	PayloadDir    string   `envconfig:"PAYLOAD_DIR" default:"payload" validate:"required"`
	FileEncoding  string   `envconfig:"FILE_ENCODING" default:"utf-8" validate:"required"`
	FileExtension string   `envconfig:"FILE_EXTENSION" default:".htm" validate:"required"`
	GroupNames    []string `envconfig:"GROUP_NAMES" default:"IS,OS,ISOS" validate:"min=1,dive,required"`
	DefaultGroup  string   `envconfig:"DEFAULT_GROUP" default:"ISOS" validate:"required"`

	HTMLDialect string `envconfig:"HTML_DIALECT" default:"html" validate:"oneof=html fragment"`
	MarkersFile string `envconfig:"MARKERS_FILE"`

	DatabasePath         string        `envconfig:"DATABASE_PATH" default:"parsegbx.db" validate:"required"`
	CacheTTL             time.Duration `envconfig:"CACHE_TTL" default:"15m" validate:"gte=0s"`
	CacheCleanupInterval time.Duration `envconfig:"CACHE_CLEANUP_INTERVAL" default:"30m" validate:"gt=0s"`
	ExportDir            string        `envconfig:"EXPORT_DIR" default:"." validate:"required"`
}

var Cfg *AppConfig

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the configuration from PARSEGBX_* environment variables,
// applying defaults, and validates it.
func Load() (*AppConfig, error) {
	var cfg AppConfig
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks the field constraints of c.
func (c *AppConfig) Validate() error {
	return validate.Struct(c)
}

// LoadConfig loads .env files (default ".env") into the environment without
// overriding variables already set, then populates Cfg.
func LoadConfig(envFiles ...string) error {
	if err := godotenv.Load(envFiles...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
		log.Println("Info: No .env file found. Relying on OS environment variables and defaults.")
	}

	cfg, err := Load()
	if err != nil {
		return err
	}
	Cfg = cfg
	return nil
}
