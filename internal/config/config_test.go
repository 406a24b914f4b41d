package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/units"
)

// isolate resets viper and points the home and working directories at
// empty temp dirs so no real config file is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	viper.Reset()
	configFile = ""
	t.Cleanup(viper.Reset)

	home := t.TempDir()
	t.Setenv("HOME", home)
	testChdir(t, t.TempDir())
	return home
}

func TestDefaults(t *testing.T) {
	isolate(t)
	Init()

	cfg := Get()
	assert.Equal(t, "#cccccc", cfg.Style.Color)
	assert.Equal(t, 12, cfg.Style.FontSize)
	assert.Equal(t, units.DefaultCurrency, cfg.Units.Currency)
	assert.False(t, cfg.Units.GroupThousands)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, GetConfigPath())
}

func TestConfigFile(t *testing.T) {
	home := isolate(t)
	data := []byte(`
style:
  color: "#eeeeee"
units:
  group_thousands: true
  currency: ["CHF"]
import:
  sheet: Floor1
`)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".heatmap.yaml"), data, 0644))
	Init()

	cfg := Get()
	assert.Equal(t, "#eeeeee", cfg.Style.Color)
	assert.Equal(t, "#000000", cfg.Style.TextColor, "unset keys keep defaults")
	assert.True(t, cfg.Units.GroupThousands)
	assert.Equal(t, []string{"CHF"}, cfg.Units.Currency)
	assert.Equal(t, filepath.Join(home, ".heatmap.yaml"), GetConfigPath())

	opts := cfg.EngineOptions(nil)
	assert.Equal(t, "#eeeeee", opts.Fallback.Color)
	assert.True(t, opts.GroupThousands)
	assert.Equal(t, "Floor1", cfg.ParserOptions().Sheet)
}

func TestEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("HEATMAP_LOG_LEVEL", "debug")
	t.Setenv("HEATMAP_IMPORT_CASE_SENSITIVE", "true")
	Init()

	cfg := Get()
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Import.CaseSensitive)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	cfg := &Config{Log: LogConfig{Level: "warn", Format: "json"}}
	logger, err := cfg.NewLogger(&buf)
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown", "shape", "s1")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"shape":"s1"`)

	_, err = (&Config{Log: LogConfig{Level: "loud"}}).NewLogger(&buf)
	assert.Error(t, err)
	_, err = (&Config{Log: LogConfig{Level: "info", Format: "xml"}}).NewLogger(&buf)
	assert.Error(t, err)
}

func TestGetDefaultConfigPath(t *testing.T) {
	home := isolate(t)
	assert.Equal(t, filepath.Join(home, ".heatmap.yaml"), GetDefaultConfigPath())
}
