package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultLookupURL     = "https://ipapi.co/json/"
	DefaultLookupTimeout = 2000 * time.Millisecond
	DefaultMinLoading    = 800 * time.Millisecond
	DefaultTheme         = "dark"
	DefaultLogLevel      = "info"
)

// Config holds all CyberGuard settings.
type Config struct {
	// LookupURL is the public IP/geolocation JSON endpoint queried once per
	// diagnostic run.
	LookupURL string `yaml:"lookup_url"`

	// LookupTimeout is the lookup deadline. It may be shortened but never
	// exceeds 2s.
	LookupTimeout time.Duration `yaml:"lookup_timeout"`

	// MinLoading is the minimum time the diagnostic spinner stays visible.
	// Zero disables it.
	MinLoading time.Duration `yaml:"min_loading"`

	// DBPath is the SQLite file holding the theme preference.
	DBPath string `yaml:"db_path"`

	// LogFile receives structured logs. Empty discards them.
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`

	// Theme is the default theme when no preference has been saved.
	Theme string `yaml:"theme"`
}

// Default returns a Config with built-in defaults. Paths are left empty and
// resolved by ResolvePaths.
func Default() Config {
	return Config{
		LookupURL:     DefaultLookupURL,
		LookupTimeout: DefaultLookupTimeout,
		MinLoading:    DefaultMinLoading,
		LogLevel:      DefaultLogLevel,
		Theme:         DefaultTheme,
	}
}

// Load reads the YAML file at path on top of the defaults. A missing file is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	ApplyDefaults(&cfg)
	return cfg, nil
}

// ApplyDefaults fills in default values when empty.
func ApplyDefaults(cfg *Config) {
	if cfg.LookupURL == "" {
		cfg.LookupURL = DefaultLookupURL
	}
	if cfg.LookupTimeout == 0 {
		cfg.LookupTimeout = DefaultLookupTimeout
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.Theme == "" {
		cfg.Theme = DefaultTheme
	}
}

// ApplyEnv overrides fields from CYBERGUARD_* environment variables.
func ApplyEnv(cfg *Config) error {
	if u := os.Getenv("CYBERGUARD_LOOKUP_URL"); u != "" {
		cfg.LookupURL = u
	}
	if v := os.Getenv("CYBERGUARD_LOOKUP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CYBERGUARD_LOOKUP_TIMEOUT: %w", err)
		}
		cfg.LookupTimeout = d
	}
	if v := os.Getenv("CYBERGUARD_MIN_LOADING"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CYBERGUARD_MIN_LOADING: %w", err)
		}
		cfg.MinLoading = d
	}
	if p := os.Getenv("CYBERGUARD_DB"); p != "" {
		cfg.DBPath = p
	}
	if p := os.Getenv("CYBERGUARD_LOG_FILE"); p != "" {
		cfg.LogFile = p
	}
	if l := os.Getenv("CYBERGUARD_LOG_LEVEL"); l != "" {
		cfg.LogLevel = l
	}
	if t := os.Getenv("CYBERGUARD_THEME"); t != "" {
		cfg.Theme = t
	}
	return nil
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.LookupURL)
	if err != nil {
		return fmt.Errorf("lookup_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("lookup_url must be http or https, got %q", c.LookupURL)
	}
	if c.LookupTimeout <= 0 || c.LookupTimeout > DefaultLookupTimeout {
		return fmt.Errorf("lookup_timeout must be in (0, %s], got %s", DefaultLookupTimeout, c.LookupTimeout)
	}
	if c.MinLoading < 0 {
		return fmt.Errorf("min_loading must not be negative, got %s", c.MinLoading)
	}
	switch c.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("unknown theme: %q", c.Theme)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level: %q", c.LogLevel)
	}
	return nil
}

// SecureTransport reports whether the lookup endpoint is reached over TLS.
func (c Config) SecureTransport() bool {
	u, err := url.Parse(c.LookupURL)
	return err == nil && u.Scheme == "https"
}

// ResolvePaths fills DBPath and LogFile with XDG defaults when empty and
// creates their parent directories.
func ResolvePaths(cfg *Config) error {
	if cfg.DBPath == "" {
		p, err := dataPath("cyberguard.db")
		if err != nil {
			return err
		}
		cfg.DBPath = p
	}
	if err := EnsureDir(cfg.DBPath); err != nil {
		return err
	}

	if cfg.LogFile == "" {
		p, err := dataPath("cyberguard.log")
		if err != nil {
			return err
		}
		cfg.LogFile = p
	}
	return EnsureDir(cfg.LogFile)
}

// DefaultPath returns the config file location:
// 1. CYBERGUARD_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/cyberguard/config.yaml
// 3. ~/.config/cyberguard/config.yaml
func DefaultPath() (string, error) {
	if p := os.Getenv("CYBERGUARD_CONFIG"); p != "" {
		return p, nil
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "cyberguard", "config.yaml"), nil
}

func dataPath(name string) (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "cyberguard", name), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
