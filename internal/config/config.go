package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"ContentDesk/internal/domain"
)

const (
	defaultTimezone = "UTC"
	defaultDebounce = 250 * time.Millisecond
	configPathEnv   = "CONTENTDESK_CONFIG"
	databaseDSNEnv  = "CONTENTDESK_DATABASE_DSN"
	logLevelEnv     = "CONTENTDESK_LOG_LEVEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Database DatabaseConfig `yaml:"database"`
	Policy   PolicyConfig   `yaml:"policy"`
	Display  DisplayConfig  `yaml:"display"`
	Watch    WatchConfig    `yaml:"watch"`
	Fixtures FixtureConfig  `yaml:"fixtures"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DatabaseConfig points at the SQLite decision log. An empty DSN disables it.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// PolicyConfig lists the roles allowed to manage content.
type PolicyConfig struct {
	PermittedRoles []string `yaml:"permittedRoles"`
}

// Roles converts the configured names to domain roles.
func (p PolicyConfig) Roles() []domain.Role {
	out := make([]domain.Role, 0, len(p.PermittedRoles))
	for _, r := range p.PermittedRoles {
		out = append(out, domain.Role(strings.ToLower(strings.TrimSpace(r))))
	}
	return out
}

// DisplayConfig defines how timestamps are rendered.
type DisplayConfig struct {
	Timezone string         `yaml:"timezone"`
	location *time.Location `yaml:"-"`
}

// Location resolves the display timezone string to a time.Location.
func (d DisplayConfig) Location() *time.Location {
	if d.location != nil {
		return d.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// WatchConfig tunes the fixture watcher.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// DebounceDuration parses Debounce, falling back to the default.
func (w WatchConfig) DebounceDuration() time.Duration {
	if d, err := time.ParseDuration(w.Debounce); err == nil && d > 0 {
		return d
	}
	return defaultDebounce
}

// FixtureConfig locates request fixtures on disk.
type FixtureConfig struct {
	BaseDir string       `yaml:"baseDir"`
	Sets    []FixtureSet `yaml:"sets"`
}

// FixtureSet is a named doublestar pattern relative to BaseDir.
type FixtureSet struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
// An explicit path wins over the CONTENTDESK_CONFIG variable.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

// Validate rejects settings the application cannot run with.
func (c Config) Validate() error {
	var errs []error

	roles := domain.RoleFamily()
	for _, r := range c.Policy.Roles() {
		if !roles.Has(string(r)) {
			errs = append(errs, fmt.Errorf("policy.permittedRoles: unknown role %q", r))
		}
	}

	seen := map[string]bool{}
	for i, set := range c.Fixtures.Sets {
		if strings.TrimSpace(set.Name) == "" {
			errs = append(errs, fmt.Errorf("fixtures.sets[%d].name is required", i))
		} else if seen[set.Name] {
			errs = append(errs, fmt.Errorf("fixtures.sets[%d].name %q is duplicated", i, set.Name))
		}
		seen[set.Name] = true

		if !doublestar.ValidatePattern(set.Pattern) || strings.TrimSpace(set.Pattern) == "" {
			errs = append(errs, fmt.Errorf("fixtures.sets[%d].pattern %q is not a valid glob", i, set.Pattern))
		}
	}

	if c.Watch.Debounce != "" {
		if _, err := time.ParseDuration(c.Watch.Debounce); err != nil {
			errs = append(errs, fmt.Errorf("watch.debounce: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Display.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Display.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if len(override.Policy.PermittedRoles) > 0 {
		base.Policy.PermittedRoles = override.Policy.PermittedRoles
	}

	if override.Display.Timezone != "" {
		base.Display.Timezone = override.Display.Timezone
	}

	if override.Watch.Debounce != "" {
		base.Watch.Debounce = override.Watch.Debounce
	}

	if override.Fixtures.BaseDir != "" {
		base.Fixtures.BaseDir = override.Fixtures.BaseDir
	}
	if len(override.Fixtures.Sets) > 0 {
		base.Fixtures.Sets = override.Fixtures.Sets
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging:  LoggingConfig{Level: "info"},
		Database: DatabaseConfig{DSN: ""},
		Policy: PolicyConfig{
			PermittedRoles: []string{string(domain.RoleEditor), string(domain.RoleAdmin)},
		},
		Display: DisplayConfig{Timezone: defaultTimezone, location: tz},
		Watch:   WatchConfig{Debounce: defaultDebounce.String()},
		Fixtures: FixtureConfig{
			BaseDir: "fixtures",
			Sets: []FixtureSet{
				{Name: "requests", Pattern: "**/*.{yaml,yml,json}"},
			},
		},
	}
}
