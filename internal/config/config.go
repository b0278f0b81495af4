// Package config loads suivi settings from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "suivi.yaml"

// Config holds all runtime settings.
type Config struct {
	// Users is the flat login table, username to password.
	Users  map[string]string `yaml:"users"`
	Output OutputConfig      `yaml:"output"`
	Server ServerConfig      `yaml:"server"`
	Log    LogConfig         `yaml:"log"`
}

// OutputConfig controls PNG output.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// ServerConfig controls the HTTP surface.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the built-in settings, including the three demo
// accounts.
func DefaultConfig() Config {
	return Config{
		Users: map[string]string{
			"admin": "2025",
			"user1": "2024",
			"user2": "2023",
		},
		Output: OutputConfig{Dir: "", Width: 1024, Height: 600},
		Server: ServerConfig{Addr: ":8080", AllowedOrigins: []string{"*"}},
		Log:    LogConfig{Level: "warn"},
	}
}

// LoadFromFile reads a YAML file over the defaults. Sections left out of
// the file keep their default values.
func LoadFromFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.merge(file)
	return cfg, cfg.Validate()
}

func (c *Config) merge(o Config) {
	if len(o.Users) > 0 {
		c.Users = o.Users
	}
	if o.Output.Dir != "" {
		c.Output.Dir = o.Output.Dir
	}
	if o.Output.Width > 0 {
		c.Output.Width = o.Output.Width
	}
	if o.Output.Height > 0 {
		c.Output.Height = o.Output.Height
	}
	if o.Server.Addr != "" {
		c.Server.Addr = o.Server.Addr
	}
	if len(o.Server.AllowedOrigins) > 0 {
		c.Server.AllowedOrigins = o.Server.AllowedOrigins
	}
	if o.Log.Level != "" {
		c.Log.Level = o.Log.Level
	}
}

// Load resolves configuration in order: explicit path, SUIVI_CONFIG,
// ./suivi.yaml, defaults. Environment overrides apply last. A missing
// default file is not an error; a missing explicit file is.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv("SUIVI_CONFIG")
	}

	cfg := DefaultConfig()
	switch {
	case path != "":
		var err error
		if cfg, err = LoadFromFile(path); err != nil {
			return cfg, err
		}
	default:
		if _, err := os.Stat(DefaultFile); err == nil {
			var lerr error
			if cfg, lerr = LoadFromFile(DefaultFile); lerr != nil {
				return cfg, lerr
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("checking %s: %w", DefaultFile, err)
		}
	}

	ApplyEnv(&cfg)
	return cfg, cfg.Validate()
}

// ApplyEnv overrides settings from SUIVI_* environment variables.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("SUIVI_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("SUIVI_OUTPUT_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Output.Width = n
		}
	}
	if v := os.Getenv("SUIVI_OUTPUT_HEIGHT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Output.Height = n
		}
	}
	if v := os.Getenv("SUIVI_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("SUIVI_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			cfg.Server.AllowedOrigins = origins
		}
	}
	if v := os.Getenv("SUIVI_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Validate collects every invalid setting into one error.
func (c Config) Validate() error {
	var errs []error
	if len(c.Users) == 0 {
		errs = append(errs, errors.New("users: at least one user is required"))
	}
	for u := range c.Users {
		if strings.TrimSpace(u) == "" {
			errs = append(errs, errors.New("users: empty username"))
		}
	}
	if c.Output.Width <= 0 || c.Output.Height <= 0 {
		errs = append(errs, fmt.Errorf("output: invalid size %dx%d", c.Output.Width, c.Output.Height))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}
	return errors.Join(errs...)
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown level %q", s)
	}
	return lvl, nil
}
