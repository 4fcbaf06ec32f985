package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"pantry/internal/eventbus"
)

const (
	envAPIURL   = "PANTRY_API_URL"
	envPageSize = "PANTRY_PAGE_SIZE"
	envLogFile  = "PANTRY_LOG_FILE"
	envVerbose  = "PANTRY_VERBOSE"
	envTimeout  = "PANTRY_API_TIMEOUT"
)

// Config represents the application configuration
type Config struct {
	Version    int             `toml:"version"`
	API        APISettings     `toml:"api"`
	Search     SearchSettings  `toml:"search"`
	UISettings UISettings      `toml:"ui"`
	Logging    LoggingSettings `toml:"logging"`
}

// APISettings locates the storefront API
type APISettings struct {
	BaseURL string   `toml:"base_url"`
	Timeout Duration `toml:"timeout"`
}

// SearchSettings seeds the meal-planning search
type SearchSettings struct {
	PageSize          int  `toml:"page_size"`
	DefaultVegan      bool `toml:"default_vegan"`
	DefaultGlutenFree bool `toml:"default_gluten_free"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowIngredients bool `toml:"show_ingredients"`
	ConfirmQuit     bool `toml:"confirm_quit"`
}

// LoggingSettings controls the log file
type LoggingSettings struct {
	File    string `toml:"file"`
	Verbose bool   `toml:"verbose"`
}

// Duration is a time.Duration that reads and writes as "10s" in TOML
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns ~/.config/pantry/config.toml, falling back to the home
// directory and then the working directory.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "pantry", "config.toml")
}

// NewConfigService creates a config service for the given file; an empty
// path means DefaultPath.
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, or returns defaults when the file
// does not exist yet
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			APIBaseURL: cfg.API.BaseURL,
			PageSize:   cfg.Search.PageSize,
		})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s: %w", path, os.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APISettings{
			BaseURL: "http://localhost:5000",
			Timeout: Duration{10 * time.Second},
		},
		Search: SearchSettings{
			PageSize: 20,
		},
		UISettings: UISettings{
			ShowIngredients: true,
		},
		Logging: LoggingSettings{
			File: "pantry.log",
		},
	}
}

// ApplyEnv overlays PANTRY_* variables from environ onto cfg. Unparseable
// values are ignored.
func ApplyEnv(cfg *Config, environ []string) {
	env := parseEnv(environ)

	cfg.API.BaseURL = envOrDefault(env, envAPIURL, cfg.API.BaseURL)
	cfg.Search.PageSize = envOrInt(env, envPageSize, cfg.Search.PageSize)
	cfg.Logging.File = envOrDefault(env, envLogFile, cfg.Logging.File)
	cfg.Logging.Verbose = envOrBool(env, envVerbose, cfg.Logging.Verbose)
	if v, ok := env[envTimeout]; ok {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			cfg.API.Timeout = Duration{d}
		}
	}
}

// Validate ensures required minimum configuration is present.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.API.BaseURL) == "" {
		return errors.New("api.base_url must not be empty")
	}
	if cfg.Search.PageSize < 1 {
		return fmt.Errorf("search.page_size must be >= 1 (got %d)", cfg.Search.PageSize)
	}
	if cfg.API.Timeout.Duration < 0 {
		return fmt.Errorf("api.timeout must be >= 0 (got %s)", cfg.API.Timeout)
	}
	return nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}
