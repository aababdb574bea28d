// Package config provides configuration management for the timer.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/jayPark21/Pomodoro-timer/internal/domain"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Timer         TimerConfig        `mapstructure:"timer"`
	Sound         SoundConfig        `mapstructure:"sound"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Journal       JournalConfig      `mapstructure:"journal"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// TimerConfig holds timer settings. The break length is fixed and has no key.
type TimerConfig struct {
	DefaultFocus int `mapstructure:"default_focus"`
}

// SoundConfig holds audible cue settings.
type SoundConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	CountdownBeeps bool `mapstructure:"countdown_beeps"`
}

// NotificationConfig holds notification settings.
// Enabled controls the in-app toast; Desktop also mirrors it to the desktop.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Desktop bool `mapstructure:"desktop"`
}

// JournalConfig holds cycle journal settings.
type JournalConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	GitContext bool `mapstructure:"git_context"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// ThemeConfig holds theme customization settings (colors and icons).
type ThemeConfig struct {
	ColorFocus         string `mapstructure:"color_focus"`
	ColorBreak         string `mapstructure:"color_break"`
	ColorPaused        string `mapstructure:"color_paused"`
	ColorTitle         string `mapstructure:"color_title"`
	ColorHelp          string `mapstructure:"color_help"`
	ColorToast         string `mapstructure:"color_toast"`
	FocusGradientStart string `mapstructure:"focus_gradient_start"`
	FocusGradientEnd   string `mapstructure:"focus_gradient_end"`
	BreakGradientStart string `mapstructure:"break_gradient_start"`
	BreakGradientEnd   string `mapstructure:"break_gradient_end"`
	IconApp            string `mapstructure:"icon_app"`
	IconFocus          string `mapstructure:"icon_focus"`
	IconBreak          string `mapstructure:"icon_break"`
	IconCycles         string `mapstructure:"icon_cycles"`
	IconPaused         string `mapstructure:"icon_paused"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorFocus:         "#F43F5E",
		ColorBreak:         "#10B981",
		ColorPaused:        "#F59E0B",
		ColorTitle:         "#94A3B8",
		ColorHelp:          "#64748B",
		ColorToast:         "#4F46E5",
		FocusGradientStart: "#F43F5E",
		FocusGradientEnd:   "#FB7185",
		BreakGradientStart: "#10B981",
		BreakGradientEnd:   "#34D399",
		IconApp:            "🍅",
		IconFocus:          "🔥",
		IconBreak:          "🍃",
		IconCycles:         "✨",
		IconPaused:         "⏸",
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Timer: TimerConfig{
			DefaultFocus: domain.DefaultFocusMinutes,
		},
		Sound: SoundConfig{
			Enabled:        true,
			CountdownBeeps: true,
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Desktop: false,
		},
		Journal: JournalConfig{
			Enabled:    true,
			GitContext: true,
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir,
		},
		Theme: DefaultThemeConfig(),
	}
}

const defaultDataDir = "~/.pomodoro"

// ErrUnknownKey is returned by Set for keys that don't exist.
var ErrUnknownKey = errors.New("unknown config key")

// Load loads the configuration from the default config file,
// creating it with defaults on first run.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from configPath.
func LoadFrom(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := SaveTo(configPath, DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	v := newViper(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.normalize()

	if err := cfg.expandDataDir(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save saves the configuration to the default config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return SaveTo(configPath, cfg)
}

// SaveTo saves the configuration to configPath.
func SaveTo(configPath string, cfg *Config) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := newViper(configPath)
	for key, value := range cfg.values() {
		v.Set(key, value)
	}

	if err := v.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// newViper returns an isolated viper instance with defaults applied.
func newViper(configPath string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	for key, value := range DefaultConfig().values() {
		v.SetDefault(key, value)
	}
	return v
}

// values flattens the config into dotted viper keys.
func (c *Config) values() map[string]any {
	return map[string]any{
		"timer.default_focus":        c.Timer.DefaultFocus,
		"sound.enabled":              c.Sound.Enabled,
		"sound.countdown_beeps":      c.Sound.CountdownBeeps,
		"notifications.enabled":      c.Notifications.Enabled,
		"notifications.desktop":      c.Notifications.Desktop,
		"journal.enabled":            c.Journal.Enabled,
		"journal.git_context":        c.Journal.GitContext,
		"storage.data_dir":           c.Storage.DataDir,
		"theme.color_focus":          c.Theme.ColorFocus,
		"theme.color_break":          c.Theme.ColorBreak,
		"theme.color_paused":         c.Theme.ColorPaused,
		"theme.color_title":          c.Theme.ColorTitle,
		"theme.color_help":           c.Theme.ColorHelp,
		"theme.color_toast":          c.Theme.ColorToast,
		"theme.focus_gradient_start": c.Theme.FocusGradientStart,
		"theme.focus_gradient_end":   c.Theme.FocusGradientEnd,
		"theme.break_gradient_start": c.Theme.BreakGradientStart,
		"theme.break_gradient_end":   c.Theme.BreakGradientEnd,
		"theme.icon_app":             c.Theme.IconApp,
		"theme.icon_focus":           c.Theme.IconFocus,
		"theme.icon_break":           c.Theme.IconBreak,
		"theme.icon_cycles":          c.Theme.IconCycles,
		"theme.icon_paused":          c.Theme.IconPaused,
	}
}

// Keys returns every settable config key, sorted.
func Keys() []string {
	values := DefaultConfig().values()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the string form of a config value.
func (c *Config) Get(key string) (string, bool) {
	v, ok := c.values()[key]
	if !ok {
		return "", false
	}
	return fmt.Sprint(v), true
}

// Set assigns a config value from its string form.
func (c *Config) Set(key, value string) error {
	current, ok := c.values()[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	switch current.(type) {
	case bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s expects true or false: %w", key, err)
		}
		c.setBool(key, b)
	case int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s expects a whole number: %w", key, err)
		}
		if key == "timer.default_focus" {
			if err := domain.ValidateFocusMinutes(n); err != nil {
				return err
			}
		}
		c.Timer.DefaultFocus = n
	default:
		c.setString(key, value)
	}
	return nil
}

func (c *Config) setBool(key string, b bool) {
	switch key {
	case "sound.enabled":
		c.Sound.Enabled = b
	case "sound.countdown_beeps":
		c.Sound.CountdownBeeps = b
	case "notifications.enabled":
		c.Notifications.Enabled = b
	case "notifications.desktop":
		c.Notifications.Desktop = b
	case "journal.enabled":
		c.Journal.Enabled = b
	case "journal.git_context":
		c.Journal.GitContext = b
	}
}

func (c *Config) setString(key, s string) {
	fields := map[string]*string{
		"storage.data_dir":           &c.Storage.DataDir,
		"theme.color_focus":          &c.Theme.ColorFocus,
		"theme.color_break":          &c.Theme.ColorBreak,
		"theme.color_paused":         &c.Theme.ColorPaused,
		"theme.color_title":          &c.Theme.ColorTitle,
		"theme.color_help":           &c.Theme.ColorHelp,
		"theme.color_toast":          &c.Theme.ColorToast,
		"theme.focus_gradient_start": &c.Theme.FocusGradientStart,
		"theme.focus_gradient_end":   &c.Theme.FocusGradientEnd,
		"theme.break_gradient_start": &c.Theme.BreakGradientStart,
		"theme.break_gradient_end":   &c.Theme.BreakGradientEnd,
		"theme.icon_app":             &c.Theme.IconApp,
		"theme.icon_focus":           &c.Theme.IconFocus,
		"theme.icon_break":           &c.Theme.IconBreak,
		"theme.icon_cycles":          &c.Theme.IconCycles,
		"theme.icon_paused":          &c.Theme.IconPaused,
	}
	if p, ok := fields[key]; ok {
		*p = s
	}
}

// normalize replaces out-of-range values with defaults.
func (c *Config) normalize() {
	if !domain.IsFocusChoice(c.Timer.DefaultFocus) {
		c.Timer.DefaultFocus = domain.DefaultFocusMinutes
	}
}

// expandDataDir resolves the default ~ data directory.
func (c *Config) expandDataDir() error {
	if c.Storage.DataDir != defaultDataDir && c.Storage.DataDir != "" {
		return nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	c.Storage.DataDir = filepath.Join(homeDir, ".pomodoro")
	return nil
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".pomodoro", "config.toml"), nil
}

// GetDBPath returns the path to the journal database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "pomodoro.db")
}

// GetLogPath returns the path to the debug log file.
func GetLogPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "pomodoro.log")
}
