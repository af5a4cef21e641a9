// Package config loads the generator settings from defaults,
// an optional config file, CANOPENER_* environment variables
// and command line flags, in increasing order of precedence.
package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const EnvPrefix = "CANOPENER"

// Keys, also used as environment variable suffixes e.g. CANOPENER_NODE_ID
const (
	KeyDevice   = "device"
	KeyNodeID   = "node_id"
	KeyLogLevel = "log_level"
)

const (
	DefaultDevice   = "OD"
	DefaultNodeID   = 1
	DefaultLogLevel = "info"
	MaxNodeID       = 127
)

type Config struct {
	// Device name, prefix of all generated identifiers
	Device string `mapstructure:"device"`
	// Node id substituted to $NODEID, 0 leaves relative values unchanged
	NodeID int `mapstructure:"node_id"`
	// logrus level name
	LogLevel string `mapstructure:"log_level"`
}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDevice, DefaultDevice)
	v.SetDefault(KeyNodeID, DefaultNodeID)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
}

// New creates a viper instance with defaults and environment binding
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads configFile if not empty, then unmarshals and
// validates the configuration held by v.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", configFile)
		}
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Device) == "" {
		return errors.WithHint(
			errors.New("device cannot be empty"),
			"use --device or "+EnvPrefix+"_DEVICE, default is "+DefaultDevice,
		)
	}
	if c.NodeID < 0 || c.NodeID > MaxNodeID {
		return errors.WithHint(
			errors.Newf("node_id must be between 0 and %d, got %d", MaxNodeID, c.NodeID),
			"0 keeps $NODEID relative values unchanged",
		)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "invalid log_level %q", c.LogLevel)
	}
	return nil
}

// Level returns the logrus level, Validate must have succeeded
func (c *Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// NodeIDValue returns the node id as used by the EDS parser
func (c *Config) NodeIDValue() uint8 {
	return uint8(c.NodeID)
}
