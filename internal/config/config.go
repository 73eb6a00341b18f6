package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/labstack/gommon/log"
)

const (
	DefaultSource      = "https://raw.githubusercontent.com/rm80/decoded/refs/heads/main/data/statsnz/regional-gross-domestic-product-year-ended-march-2024.csv"
	DefaultAddr        = ":8080"
	DefaultLoadTimeout = "2m"
	DefaultLogLevel    = "info"
)

// Config holds the settings shared by the commands.
type Config struct {
	Source            string `json:"source"`
	Addr              string `json:"addr"`
	LoadTimeout       string `json:"loadTimeout"`
	LogLevel          string `json:"logLevel"`
	WarmUp            bool   `json:"warmUp"`
	ExcludeAggregates bool   `json:"excludeAggregates"`
}

func Default() Config {
	cfg := Config{WarmUp: true}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills empty fields.
func (c *Config) ApplyDefaults() {
	c.Source = strings.TrimSpace(c.Source)
	if c.Source == "" {
		c.Source = DefaultSource
	}
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.LoadTimeout == "" {
		c.LoadTimeout = DefaultLoadTimeout
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Load reads a JSON config file. An empty path or a missing file gives the
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := Config{WarmUp: true}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if d, err := time.ParseDuration(c.LoadTimeout); err != nil {
		return fmt.Errorf("loadTimeout %q: %w", c.LoadTimeout, err)
	} else if d <= 0 {
		return fmt.Errorf("loadTimeout %q: must be positive", c.LoadTimeout)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// RegisterFlags binds flags that override c. Call before flag.Parse.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Source, "source", c.Source, "CSV URL or file path")
	fs.StringVar(&c.LoadTimeout, "load-timeout", c.LoadTimeout, "maximum time to wait for the dataset")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn, error or off")
	fs.BoolVar(&c.ExcludeAggregates, "exclude-aggregates", c.ExcludeAggregates, "drop national and island totals unless regions are listed")
}

// Parse registers the config flags plus -config on fs, parses args, loads the
// config file and applies the flags that were set explicitly on top of it.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	path := fs.String("config", "", "path to a JSON config file")
	flagged := Default()
	flagged.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg, err := Load(*path)
	if err != nil {
		return Config{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "source":
			cfg.Source = flagged.Source
		case "load-timeout":
			cfg.LoadTimeout = flagged.LoadTimeout
		case "log-level":
			cfg.LogLevel = flagged.LogLevel
		case "exclude-aggregates":
			cfg.ExcludeAggregates = flagged.ExcludeAggregates
		}
	})
	cfg.ApplyDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Timeout parses LoadTimeout, falling back to the default on bad input.
func (c Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.LoadTimeout)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultLoadTimeout)
	}
	return d
}

// ParseLevel maps a level name to a gommon log level.
func ParseLevel(s string) (log.Lvl, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DEBUG, nil
	case "info", "":
		return log.INFO, nil
	case "warn", "warning":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	default:
		return log.INFO, fmt.Errorf("unknown log level %q", s)
	}
}

// NewLogger returns a logger with the configured level.
func (c Config) NewLogger(prefix string) *log.Logger {
	l := log.New(prefix)
	lvl, _ := ParseLevel(c.LogLevel)
	l.SetLevel(lvl)
	return l
}
