package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// Config is the companion's runtime configuration
type Config struct {
	Env     string        `yaml:"env"`
	API     APIConfig     `yaml:"api"`
	Server  ServerConfig  `yaml:"server"`
	Media   MediaConfig   `yaml:"media"`
	Uploads UploadsConfig `yaml:"uploads"`
	Store   StoreConfig   `yaml:"store"`
}

// APIConfig points at the Campzeo backend
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	Token          string `yaml:"token"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port        string   `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// MediaConfig locates local media
type MediaConfig struct {
	Root   string `yaml:"root"`
	TmpDir string `yaml:"tmp_dir"`
}

// UploadsConfig sizes the upload worker pool
type UploadsConfig struct {
	Workers   int `yaml:"workers"`
	QueueSize int `yaml:"queue_size"`
}

// StoreConfig tunes the app store
type StoreConfig struct {
	ApprovalTTLSeconds int `yaml:"approval_ttl_seconds"`
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Env: "development",
		API: APIConfig{
			BaseURL: "http://localhost:3000/api",
		},
		Server: ServerConfig{
			Port: "8080",
		},
		Media: MediaConfig{
			Root:   ".",
			TmpDir: "/tmp/",
		},
		Uploads: UploadsConfig{
			Workers:   4,
			QueueSize: 64,
		},
		Store: StoreConfig{
			ApprovalTTLSeconds: 300,
		},
	}
}

// Load reads the optional YAML file at path, then applies environment overrides
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	cfg.Env = GetEnv("GO_ENV", cfg.Env)
	cfg.API.BaseURL = GetEnv("API_BASE_URL", cfg.API.BaseURL)
	cfg.API.Token = GetEnv("API_TOKEN", cfg.API.Token)
	cfg.Server.Port = GetEnv("SERVER_PORT", cfg.Server.Port)
	cfg.Media.Root = GetEnv("MEDIA_ROOT", cfg.Media.Root)
	cfg.Media.TmpDir = GetEnv("ATTACHMENT_TMP_DIR", cfg.Media.TmpDir)
	if origins := GetEnv("CORS_ORIGINS", ""); origins != "" {
		cfg.Server.CORSOrigins = strings.Split(origins, ",")
	}

	var err error
	if cfg.API.TimeoutSeconds, err = GetIntEnv("API_TIMEOUT_SECONDS", cfg.API.TimeoutSeconds); err != nil {
		return err
	}
	if cfg.Uploads.Workers, err = GetIntEnv("UPLOAD_WORKERS", cfg.Uploads.Workers); err != nil {
		return err
	}
	if cfg.Store.ApprovalTTLSeconds, err = GetIntEnv("APPROVAL_TTL_SECONDS", cfg.Store.ApprovalTTLSeconds); err != nil {
		return err
	}
	return nil
}

// Validate rejects configurations the companion cannot start with
func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must be set")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("api.base_url must be an http(s) URL, got %q", c.API.BaseURL)
	}
	if c.API.TimeoutSeconds < 0 {
		return fmt.Errorf("api.timeout_seconds must not be negative")
	}
	if c.Uploads.Workers <= 0 {
		return fmt.Errorf("uploads.workers must be positive")
	}
	return nil
}

// APITimeout is zero when requests should not time out
func (c Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// ApprovalTTL is how long an approval check stays cached
func (c Config) ApprovalTTL() time.Duration {
	return time.Duration(c.Store.ApprovalTTLSeconds) * time.Second
}

// GetEnv returns the environment value or the default when unset
func GetEnv(key string, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

// GetIntEnv parses an integer environment variable
func GetIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue, fmt.Errorf("env variable %s must be an integer: %w", key, err)
	}
	return i, nil
}
