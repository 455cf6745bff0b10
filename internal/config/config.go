package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPageSize = 10
	defaultTimeout  = 15 * time.Second
)

type Config struct {
	Addr            string        `yaml:"addr"`
	APITimeout      time.Duration `yaml:"timeout"`
	DatabasePath    string        `yaml:"database_path"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"`
	LogLevel        string        `yaml:"log_level"`
	RateLimitRPS    int           `yaml:"rate_limit_rps"`
	CORSOrigins     []string      `yaml:"cors_origins"`
	DefaultPageSize int           `yaml:"default_page_size"`
}

// DefaultEnvFile is read by LoadEnvFile when no path is given.
const DefaultEnvFile = ".env"

// LoadEnvFile exports the variables of a dotenv file into the process
// environment without overriding ones already set. A missing file is not an
// error; it reports whether the file was found.
func LoadEnvFile(path string) (bool, error) {
	if path == "" {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("load %s: %w", path, err)
	}

	return true, nil
}

// LoadConfig builds a Config from environment defaults, then overlays the YAML
// file at path when one is given.
func LoadConfig(path string) (*Config, error) {
	rps, err := getEnvInt("CREWTRACK_RATE_LIMIT_RPS", 0)
	if err != nil {
		return nil, fmt.Errorf("CREWTRACK_RATE_LIMIT_RPS: %w", err)
	}

	cfg := &Config{
		Addr:            getEnv("CREWTRACK_ADDR", ":8080"),
		APITimeout:      defaultTimeout,
		DatabasePath:    getEnv("CREWTRACK_DATABASE_PATH", "crewtrack.db"),
		MigrateOnStart:  getEnv("CREWTRACK_MIGRATE_ON_START", "true") == "true",
		LogLevel:        getEnv("CREWTRACK_LOG_LEVEL", "info"),
		RateLimitRPS:    rps,
		CORSOrigins:     splitList(getEnv("CREWTRACK_CORS_ORIGINS", "*")),
		DefaultPageSize: DefaultPageSize,
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks required fields and fills the ones that have safe defaults.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("addr must not be empty")
	}
	if strings.TrimSpace(c.DatabasePath) == "" {
		return errors.New("database_path must not be empty")
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.APITimeout)
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("rate_limit_rps must not be negative, got %d", c.RateLimitRPS)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.DefaultPageSize <= 0 {
		c.DefaultPageSize = DefaultPageSize
	}

	return nil
}

// SlogLevel maps LogLevel to a slog.Level. An empty level means info.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}

	return slog.LevelInfo, fmt.Errorf("unknown log_level %q", c.LogLevel)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", v)
	}

	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
