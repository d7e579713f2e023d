// Package config loads the aggregation profile: region, data sources, target
// cuisines and categories, and per-provider options. Configuration is layered
// with Koanf: built-in defaults, then an optional YAML file, then environment
// variables (highest priority).
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, in order.
var DefaultConfigPaths = []string{
	"happenstance.yaml",
	"happenstance.yml",
	"config.yaml",
	"config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "HAPPENSTANCE_CONFIG"

// envPrefix namespaces the environment overrides, e.g.
// HAPPENSTANCE_REGION -> region, HAPPENSTANCE_DOCS_DIR -> docs_dir.
const envPrefix = "HAPPENSTANCE_"

// Config is the full aggregation profile. The pairing engine reads only
// Region; everything else stays at the fetch/persist boundary.
type Config struct {
	Profile         string `koanf:"profile"`
	Region          string `koanf:"region"`
	EventWindowDays int    `koanf:"event_window_days"`
	DocsDir         string `koanf:"docs_dir"`

	DataSources DataSources `koanf:"data_sources"`

	TargetCuisines   []string `koanf:"target_cuisines"`
	TargetCategories []string `koanf:"target_categories"`

	Providers Providers `koanf:"providers"`

	Branding     map[string]string `koanf:"branding"`
	PairingRules []string          `koanf:"pairing_rules"`
}

// DataSources names the provider used for each collection. "fixtures" is
// always a valid choice and the fallback when a provider fails hard.
type DataSources struct {
	Events      string `koanf:"events"`
	Restaurants string `koanf:"restaurants"`
}

// Providers holds per-provider options. Credentials are not configured
// here; each provider reads its API key from the environment.
type Providers struct {
	Ticketmaster ProviderOptions `koanf:"ticketmaster"`
	Eventbrite   ProviderOptions `koanf:"eventbrite"`
	GooglePlaces ProviderOptions `koanf:"google_places"`
	AI           AIOptions       `koanf:"ai"`
}

// ProviderOptions are the common knobs for the HTTP providers.
type ProviderOptions struct {
	City  string `koanf:"city"`
	Count int    `koanf:"count"`
}

// AIOptions configure the AI-powered search provider.
type AIOptions struct {
	City            string `koanf:"city"`
	EventCount      int    `koanf:"event_count"`
	RestaurantCount int    `koanf:"restaurant_count"`
}

func defaultConfig() *Config {
	return &Config{
		Profile:         "default",
		Region:          "San Francisco",
		EventWindowDays: 30,
		DocsDir:         "docs",
		DataSources: DataSources{
			Events:      "fixtures",
			Restaurants: "fixtures",
		},
		Providers: Providers{
			Ticketmaster: ProviderOptions{Count: 20},
			Eventbrite:   ProviderOptions{Count: 20},
			GooglePlaces: ProviderOptions{Count: 20},
			AI:           AIOptions{EventCount: 20, RestaurantCount: 20},
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// HAPPENSTANCE_* environment variables. path may be empty, in which case
// the default locations are searched. profile, when non-empty, overrides
// the configured profile name.
func Load(path, profile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if profile != "" {
		cfg.Profile = profile
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Region == "" {
		return fmt.Errorf("region must not be empty")
	}
	if c.EventWindowDays <= 0 {
		return fmt.Errorf("event_window_days must be positive, got %d", c.EventWindowDays)
	}
	if c.DocsDir == "" {
		return fmt.Errorf("docs_dir must not be empty")
	}
	return nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
