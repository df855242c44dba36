package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Experience ExperienceConfig `mapstructure:"experience"`
	Events     EventsConfig     `mapstructure:"events"`
}

// SimulationConfig holds random simulation settings
type SimulationConfig struct {
	Games       int   `mapstructure:"games"`
	Workers     int   `mapstructure:"workers"`
	Seed        int64 `mapstructure:"seed"` // 0 selects a time based seed
	PrintBoards bool  `mapstructure:"print_boards"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ExperienceConfig holds experience collection settings
type ExperienceConfig struct {
	Enabled bool `mapstructure:"enabled"`
	MaxSize int  `mapstructure:"max_size"`
}

// EventsConfig holds event bus settings
type EventsConfig struct {
	LogEvents bool `mapstructure:"log_events"`
	DevMode   bool `mapstructure:"dev_mode"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Simulation defaults
	v.SetDefault("simulation.games", 100)
	v.SetDefault("simulation.workers", 4)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.print_boards", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Experience defaults
	v.SetDefault("experience.enabled", false)
	v.SetDefault("experience.max_size", 10000)

	// Event defaults
	v.SetDefault("events.log_events", false)
	v.SetDefault("events.dev_mode", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/counterair")
	}

	v.SetEnvPrefix("CAIR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return fmt.Errorf("error reading config file: %w", err)
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// isNotFound reports whether err only means the config file is missing, in
// which case defaults apply.
func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig loads environment-specific config overlay
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil && !isNotFound(err) {
		return fmt.Errorf("error merging environment config %s: %w", envFile, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}

	return Validate(cfg)
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	_ = v.Unmarshal(cfg)
}

// GetString gets a string value from config
func GetString(key string) string {
	return v.GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	return v.GetInt(key)
}

// GetBool gets a bool value from config
func GetBool(key string) bool {
	return v.GetBool(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. A reloaded file that
// fails validation is ignored and the previous values stay in effect.
func WatchConfig(onChange func(*Config)) {
	watched, current := v, cfg
	watched.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		if err := watched.Unmarshal(next); err != nil {
			return
		}
		if err := Validate(next); err != nil {
			return
		}
		*current = *next
		if onChange != nil {
			onChange(next)
		}
	})
	watched.WatchConfig()
}

var validFormats = map[string]bool{"console": true, "json": true}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Simulation.Games <= 0 {
		return fmt.Errorf("simulation.games must be positive")
	}
	if c.Simulation.Workers <= 0 {
		return fmt.Errorf("simulation.workers must be positive")
	}
	if c.Simulation.Seed < 0 {
		return fmt.Errorf("simulation.seed must be non-negative")
	}

	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level %q is not a valid level", c.Logging.Level)
	}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be console or json")
	}

	if c.Experience.MaxSize <= 0 {
		return fmt.Errorf("experience.max_size must be positive")
	}

	return nil
}
