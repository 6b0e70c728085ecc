package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchelldurbincs/hundirlaflota/internal/game/core"
	"github.com/mitchelldurbincs/hundirlaflota/internal/game/mapgen"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// MaxBoardSize keeps the rendered board inside an ordinary terminal.
const MaxBoardSize = 26

// Config holds all configuration for the application
type Config struct {
	Game GameConfig `mapstructure:"game" yaml:"game"`
	Log  LogConfig  `mapstructure:"log" yaml:"log"`
	UI   UIConfig   `mapstructure:"ui" yaml:"ui"`
}

// GameConfig holds game mechanics configuration
type GameConfig struct {
	Board     BoardConfig     `mapstructure:"board" yaml:"board"`
	Fleet     []ShipConfig    `mapstructure:"fleet" yaml:"fleet"`
	Placement PlacementConfig `mapstructure:"placement" yaml:"placement"`
	Mode      string          `mapstructure:"mode" yaml:"mode"` // empty means ask at startup
	Seed      int64           `mapstructure:"seed" yaml:"seed"` // 0 seeds from the clock
}

// BoardConfig holds board settings
type BoardConfig struct {
	Size int `mapstructure:"size" yaml:"size"`
}

// ShipConfig is one ship class of the fleet
type ShipConfig struct {
	Size  int    `mapstructure:"size" yaml:"size"`
	Count int    `mapstructure:"count" yaml:"count"`
	Name  string `mapstructure:"name" yaml:"name,omitempty"`
}

// PlacementConfig holds board generation limits
type PlacementConfig struct {
	MaxAttempts int    `mapstructure:"max_attempts" yaml:"max_attempts"`
	MaxRestarts int    `mapstructure:"max_restarts" yaml:"max_restarts"`
	Spacing     string `mapstructure:"spacing" yaml:"spacing"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// UIConfig holds console settings
type UIConfig struct {
	Color        bool `mapstructure:"color" yaml:"color"`
	ShowOwnBoard bool `mapstructure:"show_own_board" yaml:"show_own_board"`
}

// Catalog converts the configured fleet into a ship catalog
func (g GameConfig) Catalog() core.Catalog {
	catalog := make(core.Catalog, 0, len(g.Fleet))
	for _, s := range g.Fleet {
		catalog = append(catalog, core.ShipClass{Size: s.Size, Count: s.Count, Name: s.Name})
	}
	return catalog
}

// ParsedSpacing parses the configured placement spacing
func (p PlacementConfig) ParsedSpacing() (mapgen.Spacing, error) {
	return mapgen.ParseSpacing(p.Spacing)
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper

	// mu guards cfg and v. The file watcher reloads on its own goroutine.
	mu sync.RWMutex
)

func defaultFleet() []map[string]interface{} {
	fleet := make([]map[string]interface{}, 0, core.MaxShipSize)
	for _, sc := range core.DefaultCatalog() {
		fleet = append(fleet, map[string]interface{}{
			"size":  sc.Size,
			"count": sc.Count,
			"name":  sc.Name,
		})
	}
	return fleet
}

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("game.board.size", core.DefaultBoardSize)
	v.SetDefault("game.fleet", defaultFleet())
	v.SetDefault("game.placement.max_attempts", 1000)
	v.SetDefault("game.placement.max_restarts", 500)
	v.SetDefault("game.placement.spacing", mapgen.SpacingDiagonal.String())
	v.SetDefault("game.mode", "")
	v.SetDefault("game.seed", 0)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	v.SetDefault("ui.color", true)
	v.SetDefault("ui.show_own_board", true)
}

// Init initializes the configuration
func Init(configPath string) error {
	mu.Lock()
	defer mu.Unlock()

	v = viper.New()

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/hundirlaflota")
	}

	v.SetEnvPrefix("HLF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file falls back to defaults; a broken one is an error.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath == "" {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	loaded, err := decode(v)
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}

func decode(src *viper.Viper) (*Config, error) {
	c := &Config{}
	if err := src.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(c); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return c, nil
}

// Get returns the global config instance. The returned value is never
// modified; a reload swaps in a new one.
func Get() *Config {
	mu.RLock()
	c := cfg
	mu.RUnlock()
	if c != nil {
		return c
	}

	if err := Init(""); err != nil {
		panic("failed to initialize config with defaults: " + err.Error())
	}
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	mu.RLock()
	defer mu.RUnlock()
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig merges config.<env>.yaml over the loaded configuration
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	envFile := fmt.Sprintf("config.%s.yaml", env)
	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	merged, err := decode(v)
	if err != nil {
		return err
	}
	cfg = merged
	return nil
}

// Set allows runtime config updates. The value is validated against a copy
// of the current settings first; a rejected value leaves viper and the
// decoded config untouched.
func Set(key string, value interface{}) error {
	mu.Lock()
	defer mu.Unlock()

	candidate := viper.New()
	if err := candidate.MergeConfigMap(v.AllSettings()); err != nil {
		return fmt.Errorf("copy settings: %w", err)
	}
	candidate.Set(key, value)
	updated, err := decode(candidate)
	if err != nil {
		return err
	}

	v.Set(key, value)
	cfg = updated
	return nil
}

// GetString gets a string value from config
func GetString(key string) string {
	mu.RLock()
	defer mu.RUnlock()
	return v.GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	mu.RLock()
	defer mu.RUnlock()
	return v.GetInt(key)
}

// GetBool gets a bool value from config
func GetBool(key string) bool {
	mu.RLock()
	defer mu.RUnlock()
	return v.GetBool(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	mu.RLock()
	defer mu.RUnlock()
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. onChange receives
// nil after a successful reload, or the error that kept the old config.
// onChange runs on the watcher goroutine.
func WatchConfig(onChange func(error)) {
	mu.RLock()
	watched := v
	mu.RUnlock()

	watched.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		err := reloadFrom(watched)
		if onChange != nil {
			onChange(err)
		}
	})
	watched.WatchConfig()
}

func reload() error {
	mu.RLock()
	current := v
	mu.RUnlock()
	return reloadFrom(current)
}

// reloadFrom decodes src into the global config. A watcher left over from an
// earlier Init no longer owns the config and is ignored.
func reloadFrom(src *viper.Viper) error {
	mu.Lock()
	defer mu.Unlock()
	if src != v {
		return nil
	}

	updated, err := decode(src)
	if err != nil {
		return err
	}
	cfg = updated
	return nil
}

// Dump renders the effective configuration as YAML
func Dump() (string, error) {
	out, err := yaml.Marshal(Get())
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return string(out), nil
}

// Validate validates the configuration values
func Validate(c *Config) error {
	size := c.Game.Board.Size
	if size < 1 || size > MaxBoardSize {
		return fmt.Errorf("game.board.size must be between 1 and %d, got %d", MaxBoardSize, size)
	}

	catalog := c.Game.Catalog()
	if err := catalog.Validate(); err != nil {
		return fmt.Errorf("game.fleet: %w", err)
	}
	if total := catalog.TotalCells(); total > size*size {
		return fmt.Errorf("game.fleet needs %d cells but the board has %d: %w", total, size*size, core.ErrInvalidCatalog)
	}
	for _, sc := range catalog {
		if sc.Count > 0 && sc.Size > size {
			return fmt.Errorf("game.fleet ship of size %d does not fit a %dx%d board: %w", sc.Size, size, size, core.ErrInvalidCatalog)
		}
	}

	if c.Game.Placement.MaxAttempts < 1 {
		return fmt.Errorf("game.placement.max_attempts must be positive")
	}
	if c.Game.Placement.MaxRestarts < 0 {
		return fmt.Errorf("game.placement.max_restarts must be non-negative")
	}
	if _, err := c.Game.Placement.ParsedSpacing(); err != nil {
		return fmt.Errorf("game.placement.spacing: %w", err)
	}

	switch strings.ToLower(c.Game.Mode) {
	case "", "pvp", "pve":
	default:
		return fmt.Errorf("game.mode must be pvp, pve or empty, got %q", c.Game.Mode)
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}

	return nil
}
