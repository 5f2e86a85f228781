package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"stockhub/internal/eventbus"
)

const appName = "stockhub"

// Config represents the application configuration
type Config struct {
	Version int            `toml:"version" mapstructure:"version"`
	Offline bool           `toml:"offline" mapstructure:"offline"`
	API     APISettings    `toml:"api" mapstructure:"api"`
	Select  SelectSettings `toml:"select" mapstructure:"select"`
	Log     LogSettings    `toml:"log" mapstructure:"log"`
}

// APISettings configures the backend connection
type APISettings struct {
	BaseURL   string        `toml:"base_url" mapstructure:"base_url" validate:"required,url"`
	Token     string        `toml:"token,omitempty" mapstructure:"token"`
	Role      string        `toml:"role" mapstructure:"role"`
	Timeout   time.Duration `toml:"timeout" mapstructure:"timeout" validate:"gte=0"`
	PageLimit int           `toml:"page_limit" mapstructure:"page_limit" validate:"gte=1,lte=1000"`
}

// SelectSettings holds presentation defaults of every select in the form
type SelectSettings struct {
	Placeholder string `toml:"placeholder" mapstructure:"placeholder"`
	MatchMode   string `toml:"match_mode" mapstructure:"match_mode" validate:"oneof=substring fuzzy"`
	MaxVisible  int    `toml:"max_visible" mapstructure:"max_visible" validate:"gte=1,lte=50"`
	Width       int    `toml:"width" mapstructure:"width" validate:"gte=12"`
	Sort        string `toml:"sort" mapstructure:"sort" validate:"oneof=none label key"`
}

// LogSettings configures the log file
type LogSettings struct {
	File  string `toml:"file" mapstructure:"file"`
	Level string `toml:"level" mapstructure:"level" validate:"oneof=debug info warn error"`
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
	validate *validator.Validate
}

// DefaultPath returns $XDG_CONFIG_HOME/stockhub/config.toml or its platform
// equivalent
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, appName, "config.toml")
}

// NewConfigService creates a config service reading path; "" means
// DefaultPath
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{
		filePath: path,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load reads the configuration file. A missing file yields the defaults,
// with STOCKHUB_* environment overrides applied.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.read(cs.filePath, true)
	if err != nil {
		return nil, err
	}

	// Publish ConfigLoaded event if bus is available
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:    cs.filePath,
			BaseURL: cfg.API.BaseURL,
			Offline: cfg.Offline,
		})
	}

	return cfg, nil
}

// Save writes the configuration to the service's path
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	// Publish ConfigSaved event if bus is available
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path that must exist
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	return cs.read(path, false)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := cs.Validate(config); err != nil {
		return err
	}

	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file may carry an API token
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the configuration against its constraints
func (cs *configService) Validate(config *Config) error {
	if err := cs.validate.Struct(config); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (cs *configService) read(path string, allowMissing bool) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound), errors.Is(err, os.ErrNotExist):
			if !allowMissing {
				return nil, fmt.Errorf("config file not found: %s", path)
			}
		default:
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cs.Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so that environment overrides apply even
// when the file does not mention them
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("offline", d.Offline)
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.token", d.API.Token)
	v.SetDefault("api.role", d.API.Role)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("api.page_limit", d.API.PageLimit)
	v.SetDefault("select.placeholder", d.Select.Placeholder)
	v.SetDefault("select.match_mode", d.Select.MatchMode)
	v.SetDefault("select.max_visible", d.Select.MaxVisible)
	v.SetDefault("select.width", d.Select.Width)
	v.SetDefault("select.sort", d.Select.Sort)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APISettings{
			BaseURL:   "http://localhost:8000",
			Role:      "employee",
			Timeout:   10 * time.Second,
			PageLimit: 100,
		},
		Select: SelectSettings{
			Placeholder: "Select option",
			MatchMode:   "substring",
			MaxVisible:  6,
			Width:       40,
			Sort:        "none",
		},
		Log: LogSettings{
			File:  "stockhub.log",
			Level: "info",
		},
	}
}
