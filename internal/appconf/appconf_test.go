package appconf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvFlagToEnvironment(t *testing.T) {
	tests := []struct {
		flag string
		want Environment
	}{
		{"development", Development},
		{"test", Test},
		{"production", Production},
		{"", Development},
		{"staging", Development},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			assert.Equal(t, tt.want, EnvFlagToEnvironment(tt.flag))
		})
	}
}

func TestEnvironmentString(t *testing.T) {
	assert.Equal(t, "development", Development.String())
	assert.Equal(t, "test", Test.String())
	assert.Equal(t, "production", Production.String())
}

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadFileAppliesOverrides(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 8080
luas:
  stopCode: ran
  pollIntervalSeconds: 20
database:
  path: /var/lib/luastrack/data.db
`)

	fileCfg, err := LoadFile(path)
	require.NoError(t, err)

	cfg := Config{
		Port:           4000,
		StopCode:       "cab",
		DBPath:         "luastrack.db",
		PollInterval:   30 * time.Second,
		DetectInterval: time.Minute,
	}
	fileCfg.Apply(&cfg)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "ran", cfg.StopCode)
	assert.Equal(t, 20*time.Second, cfg.PollInterval)
	assert.Equal(t, "/var/lib/luastrack/data.db", cfg.DBPath)
	// Fields absent from the file keep their flag values.
	assert.Equal(t, time.Minute, cfg.DetectInterval)
}

func TestLoadFileRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"port out of range", "server:\n  port: 99999\n"},
		{"bad feed url", "luas:\n  feedURL: not-a-url\n"},
		{"uppercase stop code", "luas:\n  stopCode: CAB\n"},
		{"negative poll interval", "luas:\n  pollIntervalSeconds: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.contents)
			_, err := LoadFile(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadFileMissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoadFileBadYAML(t *testing.T) {
	path := writeConfigFile(t, "server: [not a map")
	_, err := LoadFile(path)
	assert.Error(t, err)
}
