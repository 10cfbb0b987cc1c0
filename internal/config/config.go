// Package config provides configuration types and defaults for lineedit.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ionut-t/lineedit/internal/log"
)

// Config holds all configuration options for lineedit.
type Config struct {
	Editor  EditorConfig  `mapstructure:"editor" yaml:"editor"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
	UI      UIConfig      `mapstructure:"ui" yaml:"ui"`
	Theme   ThemeConfig   `mapstructure:"theme" yaml:"theme"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// EditorConfig holds the engine geometry and editing behavior.
type EditorConfig struct {
	Overscan         int  `mapstructure:"overscan" yaml:"overscan"`                     // Lines rendered past each viewport edge
	LeftPadding      int  `mapstructure:"left_padding" yaml:"left_padding"`             // Gutter width in cells
	ScrollLines      int  `mapstructure:"scroll_lines" yaml:"scroll_lines"`             // Lines per wheel notch
	PasteSplitsLines bool `mapstructure:"paste_splits_lines" yaml:"paste_splits_lines"` // Paste turns line breaks into new lines
}

// MetricsConfig describes one character cell. Terminal hosts use 1x1 cells.
type MetricsConfig struct {
	CharWidth  int `mapstructure:"char_width" yaml:"char_width"`
	LineHeight int `mapstructure:"line_height" yaml:"line_height"`
	Ascent     int `mapstructure:"ascent" yaml:"ascent"`
	Descent    int `mapstructure:"descent" yaml:"descent"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowLineNumbers bool `mapstructure:"show_line_numbers" yaml:"show_line_numbers"`
	ShowStatusLine  bool `mapstructure:"show_status_line" yaml:"show_status_line"`
}

// ThemeConfig holds hex colors for the terminal renderer.
type ThemeConfig struct {
	Selection  string `mapstructure:"selection" yaml:"selection"`
	Caret      string `mapstructure:"caret" yaml:"caret"`
	LineNumber string `mapstructure:"line_number" yaml:"line_number"`
	Status     string `mapstructure:"status" yaml:"status"`
	Error      string `mapstructure:"error" yaml:"error"`
}

// LogConfig controls the debug log file.
type LogConfig struct {
	Debug bool   `mapstructure:"debug" yaml:"debug"`
	Path  string `mapstructure:"path" yaml:"path"`
	Level string `mapstructure:"level" yaml:"level"` // debug (default), info, warn, error
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Editor: EditorConfig{
			Overscan:         2,
			LeftPadding:      5,
			ScrollLines:      3,
			PasteSplitsLines: false,
		},
		Metrics: MetricsConfig{
			CharWidth:  1,
			LineHeight: 1,
			Ascent:     1,
			Descent:    0,
		},
		UI: UIConfig{
			ShowLineNumbers: true,
			ShowStatusLine:  true,
		},
		Theme: ThemeConfig{
			Selection:  "#3C4A6B",
			Caret:      "#F5F5F5",
			LineNumber: "#6B7280",
			Status:     "#8B5CF6",
			Error:      "#EF4444",
		},
		Log: LogConfig{
			Debug: false,
			Path:  "debug.log",
			Level: "debug",
		},
	}
}

// Validate checks that the geometry is usable.
func (c Config) Validate() error {
	var errs []error

	if c.Editor.Overscan < 0 {
		errs = append(errs, fmt.Errorf("editor.overscan must not be negative, got %d", c.Editor.Overscan))
	}
	if c.Editor.LeftPadding < 0 {
		errs = append(errs, fmt.Errorf("editor.left_padding must not be negative, got %d", c.Editor.LeftPadding))
	}
	if c.Editor.ScrollLines <= 0 {
		errs = append(errs, fmt.Errorf("editor.scroll_lines must be positive, got %d", c.Editor.ScrollLines))
	}
	if c.Metrics.CharWidth <= 0 {
		errs = append(errs, fmt.Errorf("metrics.char_width must be positive, got %d", c.Metrics.CharWidth))
	}
	if c.Metrics.LineHeight <= 0 {
		errs = append(errs, fmt.Errorf("metrics.line_height must be positive, got %d", c.Metrics.LineHeight))
	}
	if c.Metrics.Ascent < 0 || c.Metrics.Descent < 0 {
		errs = append(errs, fmt.Errorf("metrics.ascent and metrics.descent must not be negative"))
	}

	return errors.Join(errs...)
}

// SetDefaults registers every default value with v so env vars and partial
// config files are merged on top of them.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("editor.overscan", d.Editor.Overscan)
	v.SetDefault("editor.left_padding", d.Editor.LeftPadding)
	v.SetDefault("editor.scroll_lines", d.Editor.ScrollLines)
	v.SetDefault("editor.paste_splits_lines", d.Editor.PasteSplitsLines)
	v.SetDefault("metrics.char_width", d.Metrics.CharWidth)
	v.SetDefault("metrics.line_height", d.Metrics.LineHeight)
	v.SetDefault("metrics.ascent", d.Metrics.Ascent)
	v.SetDefault("metrics.descent", d.Metrics.Descent)
	v.SetDefault("ui.show_line_numbers", d.UI.ShowLineNumbers)
	v.SetDefault("ui.show_status_line", d.UI.ShowStatusLine)
	v.SetDefault("theme.selection", d.Theme.Selection)
	v.SetDefault("theme.caret", d.Theme.Caret)
	v.SetDefault("theme.line_number", d.Theme.LineNumber)
	v.SetDefault("theme.status", d.Theme.Status)
	v.SetDefault("theme.error", d.Theme.Error)
	v.SetDefault("log.debug", d.Log.Debug)
	v.SetDefault("log.path", d.Log.Path)
	v.SetDefault("log.level", d.Log.Level)
}

// LocalConfigPath is the project-level config file, checked before the user config.
const LocalConfigPath = ".lineedit/config.yaml"

// UserConfigDir returns ~/.config/lineedit, or "" when the home directory is unknown.
func UserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "lineedit")
}

// Load reads configuration into a Config. An explicit cfgFile must exist;
// otherwise the lookup order is:
//  1. .lineedit/config.yaml (current directory)
//  2. ~/.config/lineedit/config.yaml (user config)
//
// Missing config files are not an error: defaults and LINEEDIT_* env vars apply.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix("LINEEDIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	switch {
	case cfgFile != "":
		v.SetConfigFile(cfgFile)
	case fileExists(LocalConfigPath):
		v.SetConfigFile(LocalConfigPath)
	default:
		if dir := UserConfigDir(); dir != "" {
			v.AddConfigPath(dir)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.ErrorErr(log.CatConfig, "Failed to read config", err, "file", cfgFile)
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		log.Debug(log.CatConfig, "No config file found, using defaults")
	} else {
		log.Debug(log.CatConfig, "Loaded config", "file", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
