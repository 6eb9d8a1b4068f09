// Package config provides configuration loading for botbrowser using TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Fetcher settings shared by all source adapters.
type Fetcher struct {
	UserAgent      string `toml:"userAgent"`
	TimeoutSeconds int    `toml:"timeoutSeconds"`
}

// Browse settings control the default listing behaviour.
type Browse struct {
	PageSize    int    `toml:"pageSize"`
	DefaultSort string `toml:"defaultSort"` // local or API-level sort token
	NSFWPolicy  string `toml:"nsfwPolicy"`  // allow | exclude | only
}

// Sources settings select and tune the card catalogs.
type Sources struct {
	Enabled     []string `toml:"enabled"`     // source names, fetched in this order
	Concurrency int      `toml:"concurrency"` // max concurrent source fetches
}

// Images settings configure thumbnail validation.
type Images struct {
	Placeholder string `toml:"placeholder"` // substitute URL for broken thumbnails
	ChromePath  string `toml:"chromePath"`  // Chrome binary for rendered checks (empty = auto-detect)
}

// Log settings.
type Log struct {
	Level string `toml:"level"` // trace | debug | info | warn | error
}

// Config is the main configuration struct.
type Config struct {
	Fetcher Fetcher `toml:"fetcher"`
	Browse  Browse  `toml:"browse"`
	Sources Sources `toml:"sources"`
	Images  Images  `toml:"images"`
	Log     Log     `toml:"log"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Fetcher: Fetcher{
			UserAgent:      "botbrowser/1.0",
			TimeoutSeconds: 15,
		},
		Browse: Browse{
			PageSize:    50,
			DefaultSort: "default",
			NSFWPolicy:  "exclude",
		},
		Sources: Sources{
			Enabled:     []string{"chub", "aicc", "tavern"},
			Concurrency: 3,
		},
		Images: Images{
			Placeholder: "https://placehold.co/256x256?text=unavailable",
		},
		Log: Log{
			Level: "warn",
		},
	}
}

// configDir returns the configuration directory path.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "botbrowser"), nil
}

// ConfigPath returns the path to the user's config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads configuration, layering user config on top of defaults.
// Returns the default config if no user config exists.
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return Default(), nil // Return defaults if we can't determine path
	}
	return LoadFrom(configPath)
}

// LoadFrom loads configuration from a specific file path, layering it
// on top of defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // Return defaults if no user config
	}

	var user Config
	if _, err := toml.DecodeFile(path, &user); err != nil {
		return nil, fmt.Errorf("parsing config TOML %s: %w", path, err)
	}

	return merge(cfg, &user), nil
}

// merge layers user config on top of defaults.
// Only non-zero values from user config override defaults.
func merge(defaults, user *Config) *Config {
	result := *defaults

	if user.Fetcher.UserAgent != "" {
		result.Fetcher.UserAgent = user.Fetcher.UserAgent
	}
	if user.Fetcher.TimeoutSeconds != 0 {
		result.Fetcher.TimeoutSeconds = user.Fetcher.TimeoutSeconds
	}

	if user.Browse.PageSize != 0 {
		result.Browse.PageSize = user.Browse.PageSize
	}
	if user.Browse.DefaultSort != "" {
		result.Browse.DefaultSort = user.Browse.DefaultSort
	}
	if user.Browse.NSFWPolicy != "" {
		result.Browse.NSFWPolicy = user.Browse.NSFWPolicy
	}

	if len(user.Sources.Enabled) > 0 {
		result.Sources.Enabled = user.Sources.Enabled
	}
	if user.Sources.Concurrency != 0 {
		result.Sources.Concurrency = user.Sources.Concurrency
	}

	if user.Images.Placeholder != "" {
		result.Images.Placeholder = user.Images.Placeholder
	}
	if user.Images.ChromePath != "" {
		result.Images.ChromePath = user.Images.ChromePath
	}

	if user.Log.Level != "" {
		result.Log.Level = user.Log.Level
	}

	return &result
}

// DefaultTOML returns the default configuration as a TOML string.
// Used for --init-config to generate a user config file.
func DefaultTOML() string {
	return `# botbrowser configuration
# Save to ~/.config/botbrowser/config.toml and customize
# Only include settings you want to change from defaults

# HTTP fetching settings
[fetcher]
userAgent = "botbrowser/1.0"
timeoutSeconds = 15

# Listing defaults
[browse]
pageSize = 50
defaultSort = "default"       # name_asc, name_desc, creator_asc, creator_desc,
                              # relevance, or an API token (recent, trending, ...)
nsfwPolicy = "exclude"        # allow, exclude or only

# Card catalogs, fetched in this order
[sources]
enabled = ["chub", "aicc", "tavern"]
concurrency = 3               # max concurrent source fetches

# Thumbnail validation
[images]
placeholder = "https://placehold.co/256x256?text=unavailable"
chromePath = ""               # Chrome binary for rendered checks (empty = auto-detect)

# Logging
[log]
level = "warn"                # trace, debug, info, warn, error
`
}
