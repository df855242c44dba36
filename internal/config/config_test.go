package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetGlobals() {
	cfg = nil
	v = nil
}

func TestInit(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
simulation:
  games: 250
  workers: 8
  seed: 42
logging:
  level: debug
  format: json
experience:
  enabled: true
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	resetGlobals()
	require.NoError(t, Init(configFile))

	c := Get()
	assert.Equal(t, 250, c.Simulation.Games)
	assert.Equal(t, 8, c.Simulation.Workers)
	assert.Equal(t, int64(42), c.Simulation.Seed)
	assert.Equal(t, "debug", c.Logging.Level)
	assert.Equal(t, "json", c.Logging.Format)
	assert.True(t, c.Experience.Enabled)
	assert.Equal(t, 10000, c.Experience.MaxSize, "unset keys keep their defaults")
	assert.Equal(t, configFile, ConfigFilePath())
}

func TestInitWithDefaults(t *testing.T) {
	resetGlobals()
	require.NoError(t, Init("/non/existent/path/config.yaml"))

	c := Get()
	assert.Equal(t, 100, c.Simulation.Games)
	assert.Equal(t, 4, c.Simulation.Workers)
	assert.Equal(t, int64(0), c.Simulation.Seed)
	assert.False(t, c.Simulation.PrintBoards)
	assert.Equal(t, "info", c.Logging.Level)
	assert.Equal(t, "console", c.Logging.Format)
	assert.False(t, c.Experience.Enabled)
	assert.Equal(t, 10000, c.Experience.MaxSize)
	assert.False(t, c.Events.LogEvents)
	assert.False(t, c.Events.DevMode)
}

func TestInit_MalformedFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("simulation: [unclosed"), 0644))

	resetGlobals()
	assert.Error(t, Init(configFile))
}

func TestEnvironmentVariables(t *testing.T) {
	t.Setenv("CAIR_SIMULATION_GAMES", "30")
	t.Setenv("CAIR_LOGGING_LEVEL", "warn")
	t.Setenv("CAIR_EVENTS_DEV_MODE", "true")

	resetGlobals()
	require.NoError(t, Init(""))

	c := Get()
	assert.Equal(t, 30, c.Simulation.Games)
	assert.Equal(t, "warn", c.Logging.Level)
	assert.True(t, c.Events.DevMode)
}

func TestSet(t *testing.T) {
	resetGlobals()
	require.NoError(t, Init(""))

	Set("simulation.workers", 16)
	Set("experience.max_size", 50)

	c := Get()
	assert.Equal(t, 16, c.Simulation.Workers)
	assert.Equal(t, 50, c.Experience.MaxSize)
	assert.Equal(t, 16, GetInt("simulation.workers"))
	assert.Equal(t, "console", GetString("logging.format"))
	assert.False(t, GetBool("simulation.print_boards"))
}

func TestLoadEnvironmentConfig(t *testing.T) {
	tmpDir := t.TempDir()

	baseConfig := filepath.Join(tmpDir, "config.yaml")
	baseContent := `
simulation:
  games: 20
logging:
  level: info
`
	require.NoError(t, os.WriteFile(baseConfig, []byte(baseContent), 0644))

	envContent := `
simulation:
  games: 5000
logging:
  level: error
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.prod.yaml"), []byte(envContent), 0644))

	t.Chdir(tmpDir)

	resetGlobals()
	require.NoError(t, Init(baseConfig))
	require.NoError(t, LoadEnvironmentConfig("prod"))

	c := Get()
	assert.Equal(t, 5000, c.Simulation.Games)
	assert.Equal(t, "error", c.Logging.Level)

	assert.NoError(t, LoadEnvironmentConfig(""))
	assert.NoError(t, LoadEnvironmentConfig("staging"), "a missing overlay is ignored")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Simulation: SimulationConfig{Games: 1, Workers: 1},
			Logging:    LoggingConfig{Level: "info", Format: "console"},
			Experience: ExperienceConfig{MaxSize: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"json format", func(c *Config) { c.Logging.Format = "json" }, false},
		{"zero games", func(c *Config) { c.Simulation.Games = 0 }, true},
		{"zero workers", func(c *Config) { c.Simulation.Workers = 0 }, true},
		{"negative seed", func(c *Config) { c.Simulation.Seed = -1 }, true},
		{"unknown level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"unknown format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"zero experience size", func(c *Config) { c.Experience.MaxSize = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := Validate(c)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWatchConfig(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("logging:\n  level: info\n"), 0644))

	resetGlobals()
	require.NoError(t, Init(configFile))

	changed := make(chan *Config, 4)
	WatchConfig(func(c *Config) { changed <- c })

	require.NoError(t, os.WriteFile(configFile, []byte("logging:\n  level: debug\n"), 0644))

	// A rewrite can surface as several events, the first of which may see
	// the truncated file.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case c := <-changed:
			if c.Logging.Level == "debug" {
				assert.Equal(t, "debug", Get().Logging.Level)
				return
			}
		case <-deadline:
			t.Skip("no file change notification received")
		}
	}
}
