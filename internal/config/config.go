// Package config manages heatmap configuration using viper.
// It supports configuration from YAML files (.heatmap.yaml), environment
// variables (HEATMAP_ prefix), and command-line flags.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ukaji3/heatmap-go/pkg/heatmap"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/evaluator"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/parser"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/units"
)

// Config holds all application configuration values.
type Config struct {
	Style  StyleConfig  `mapstructure:"style"`  // Engine fallback style
	Units  UnitsConfig  `mapstructure:"units"`  // Unit formatter settings
	Import ImportConfig `mapstructure:"import"` // Spreadsheet import settings
	Log    LogConfig    `mapstructure:"log"`    // Logging settings
}

// StyleConfig is the style used when neither rule nor variable sets one.
type StyleConfig struct {
	Color     string `mapstructure:"color"`
	TextColor string `mapstructure:"text_color"`
	BgColor   string `mapstructure:"bg_color"`
	FontSize  int    `mapstructure:"font_size"`
}

// UnitsConfig configures unit placement and number grouping.
type UnitsConfig struct {
	Currency       []string `mapstructure:"currency"`        // Units placed before the number
	GroupThousands bool     `mapstructure:"group_thousands"` // 60000 -> 60,000
}

// ImportConfig configures how spreadsheets are read and matched.
type ImportConfig struct {
	Sheet         string `mapstructure:"sheet"`          // Worksheet name, empty for the first
	Range         string `mapstructure:"range"`          // A1 range overriding print areas
	CaseSensitive bool   `mapstructure:"case_sensitive"` // Match shape names exactly
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text or json
}

var configFile string

// Init sets defaults, loads config files from the current and home
// directories, and enables HEATMAP_ environment overrides.
func Init() {
	setDefaults()
	loadConfigFile()
	loadEnvVars()
}

func setDefaults() {
	fb := evaluator.DefaultFallback()
	viper.SetDefault("style.color", fb.Color)
	viper.SetDefault("style.text_color", fb.TextColor)
	viper.SetDefault("style.bg_color", fb.BackgroundColor)
	viper.SetDefault("style.font_size", fb.FontSize)

	viper.SetDefault("units.currency", units.DefaultCurrency)
	viper.SetDefault("units.group_thousands", false)

	viper.SetDefault("import.sheet", "")
	viper.SetDefault("import.range", "")
	viper.SetDefault("import.case_sensitive", false)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
}

func loadConfigFile() {
	viper.SetConfigName(".heatmap")
	viper.SetConfigType("yaml")

	// Project config first, then global.
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}

	if err := viper.ReadInConfig(); err == nil {
		configFile = viper.ConfigFileUsed()
	}
}

func loadEnvVars() {
	viper.SetEnvPrefix("HEATMAP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// BindFlags binds cobra persistent flags to configuration keys.
func BindFlags(cmd *cobra.Command) {
	// Errors are ignored: the flags are registered by the caller.
	_ = viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", cmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("units.group_thousands", cmd.PersistentFlags().Lookup("group-thousands"))
}

// BindImportFlags binds the import command's flags.
func BindImportFlags(cmd *cobra.Command) {
	_ = viper.BindPFlag("import.sheet", cmd.Flags().Lookup("sheet"))
	_ = viper.BindPFlag("import.range", cmd.Flags().Lookup("range"))
}

// Get returns the merged configuration.
func Get() *Config {
	var cfg Config
	// Defaults are always decodable.
	_ = viper.Unmarshal(&cfg)
	return &cfg
}

// GetConfigPath returns the loaded config file, or "".
func GetConfigPath() string {
	return configFile
}

// GetDefaultConfigPath returns the global config path (~/.heatmap.yaml).
func GetDefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".heatmap.yaml")
}

// EngineOptions converts the configuration into engine options.
func (c *Config) EngineOptions(logger *slog.Logger) heatmap.Options {
	return heatmap.Options{
		Fallback: evaluator.Fallback{
			Color:           c.Style.Color,
			TextColor:       c.Style.TextColor,
			BackgroundColor: c.Style.BgColor,
			FontSize:        c.Style.FontSize,
		},
		Currency:            c.Units.Currency,
		GroupThousands:      c.Units.GroupThousands,
		CaseSensitiveShapes: c.Import.CaseSensitive,
		Logger:              logger,
	}
}

// ParserOptions returns the spreadsheet reading options.
func (c *Config) ParserOptions() parser.Options {
	return parser.Options{
		Sheet: c.Import.Sheet,
		Range: c.Import.Range,
	}
}

// NewLogger builds a slog logger from the log settings.
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(c.Log.Format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q (must be text or json)", c.Log.Format)
	}
}
