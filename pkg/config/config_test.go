package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name string, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.Nil(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	config, err := Load(New(), "")
	require.Nil(t, err)
	assert.Equal(t, DefaultDevice, config.Device)
	assert.Equal(t, DefaultNodeID, config.NodeID)
	assert.Equal(t, logrus.InfoLevel, config.Level())
	assert.EqualValues(t, 1, config.NodeIDValue())
}

func TestEnvironment(t *testing.T) {
	t.Setenv("CANOPENER_DEVICE", "MOTOR")
	t.Setenv("CANOPENER_NODE_ID", "16")
	t.Setenv("CANOPENER_LOG_LEVEL", "debug")

	config, err := Load(New(), "")
	require.Nil(t, err)
	assert.Equal(t, "MOTOR", config.Device)
	assert.Equal(t, 16, config.NodeID)
	assert.Equal(t, logrus.DebugLevel, config.Level())
}

func TestConfigFile(t *testing.T) {
	path := writeConfig(t, "canopener.yaml", "device: drive\nnode_id: 5\n")
	config, err := Load(New(), path)
	require.Nil(t, err)
	assert.Equal(t, "drive", config.Device)
	assert.Equal(t, 5, config.NodeID)
	assert.Equal(t, DefaultLogLevel, config.LogLevel)

	// Environment wins over file
	t.Setenv("CANOPENER_NODE_ID", "7")
	config, err = Load(New(), path)
	require.Nil(t, err)
	assert.Equal(t, 7, config.NodeID)
}

func TestConfigFileToml(t *testing.T) {
	path := writeConfig(t, "canopener.toml", "device = \"io\"\nlog_level = \"warn\"\n")
	config, err := Load(New(), path)
	require.Nil(t, err)
	assert.Equal(t, "io", config.Device)
	assert.Equal(t, logrus.WarnLevel, config.Level())
}

func TestConfigFileMissing(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NotNil(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{Device: "OD", NodeID: 0, LogLevel: "info"}
	assert.Nil(t, valid.Validate())
	valid.NodeID = MaxNodeID
	assert.Nil(t, valid.Validate())

	tooHigh := Config{Device: "OD", NodeID: 128, LogLevel: "info"}
	err := tooHigh.Validate()
	assert.NotNil(t, err)
	assert.NotEmpty(t, errors.GetAllHints(err))

	negative := Config{Device: "OD", NodeID: -1, LogLevel: "info"}
	assert.NotNil(t, negative.Validate())

	noDevice := Config{Device: " ", NodeID: 1, LogLevel: "info"}
	assert.NotNil(t, noDevice.Validate())

	badLevel := Config{Device: "OD", NodeID: 1, LogLevel: "loud"}
	assert.NotNil(t, badLevel.Validate())
	assert.Equal(t, logrus.InfoLevel, badLevel.Level())
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("CANOPENER_NODE_ID", "200")
	_, err := Load(New(), "")
	assert.NotNil(t, err)
}
