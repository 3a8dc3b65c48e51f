package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Create a temporary directory for test files
	tempDir := t.TempDir()

	// Create a test config file
	configPath := filepath.Join(tempDir, "test_config.yaml")
	configContent := `
log_level: -4
device: /dev/sr1
bitrate: 256
tools:
  flac: /opt/flac/bin/flac
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	assert.NoError(t, err)

	// Test loading the config
	cfg, err := Load(configPath)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, -4, cfg.LogLevel)
	assert.Equal(t, "/dev/sr1", cfg.Device)
	assert.Equal(t, 256, cfg.Bitrate)
	assert.Equal(t, "/opt/flac/bin/flac", cfg.Tools.Flac)

	// Unset tools still default to PATH lookups.
	assert.Equal(t, "cdparanoia", cfg.Tools.CDParanoia)
	assert.Equal(t, "mkvmerge", cfg.Tools.MkvMerge)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "/dev/cdrom", cfg.Device)
	assert.Equal(t, 192, cfg.Bitrate)
	assert.Equal(t, "lame", cfg.Tools.Lame)
}

func TestLoadNonExistentFile(t *testing.T) {
	// Test loading a non-existent config file
	cfg, err := Load("non_existent_file.yaml")

	// Assert
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadInvalidYAML(t *testing.T) {
	// Create a temporary directory for test files
	tempDir := t.TempDir()

	// Create an invalid YAML file
	configPath := filepath.Join(tempDir, "invalid_config.yaml")
	configContent := `
log_level: -4
bitrate: [this is not valid yaml
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	assert.NoError(t, err)

	// Test loading the invalid config
	cfg, err := Load(configPath)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, cfg)
}
