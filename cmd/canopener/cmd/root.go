package cmd

import (
	"bytes"
	"os"

	"github.com/canopener/canopener/pkg/cgen"
	"github.com/canopener/canopener/pkg/config"
	"github.com/canopener/canopener/pkg/od"
	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// options shared by all commands
type options struct {
	v          *viper.Viper
	configFile string
}

// NewRootCommand creates the canopener command, generating a header
// from an EDS or DCF, with its check and version sub commands
func NewRootCommand() *cobra.Command {
	opts := &options{v: config.New()}

	root := &cobra.Command{
		Use:   "canopener <eds-or-dcf> <output.h>",
		Short: "Generate a C header from a CANopen object dictionary",
		Long: `Generate a C header from a CANopen EDS or DCF file.

Every object of the dictionary gets a set of macros (index, sub-index,
size, description, type and value), a structure and an inline function
filling the structure with the default writeable values.

Settings are read from flags, CANOPENER_* environment variables
and an optional config file, in this order of precedence.

Examples:
  canopener device.eds od.h
  canopener device.dcf od.h --device MOTOR --node-id 4
  canopener check device.eds od.h`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runGenerate(args[0], args[1])
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "Config file (yaml, toml or json)")
	flags.StringP("device", "d", config.DefaultDevice, "Device name used as a prefix for all identifiers")
	flags.IntP("node-id", "n", config.DefaultNodeID, "Node id substituted to $NODEID, 0 to disable")
	flags.String("log-level", config.DefaultLogLevel, "Log level: trace, debug, info, warn, error")

	bindings := map[string]string{
		config.KeyDevice:   "device",
		config.KeyNodeID:   "node-id",
		config.KeyLogLevel: "log-level",
	}
	for key, flag := range bindings {
		cobra.CheckErr(bindFlag(opts.v, key, flags, flag))
	}

	root.AddCommand(newCheckCommand(opts), newVersionCommand())
	return root
}

// bindFlag binds the persistent flag name to the config key
func bindFlag(v *viper.Viper, key string, flags *pflag.FlagSet, name string) error {
	flag := flags.Lookup(name)
	if flag == nil {
		return errors.Newf("no flag %q for config key %q", name, key)
	}
	return errors.Wrapf(v.BindPFlag(key, flag), "failed to bind flag %q", name)
}

// load reads the configuration and applies the log level
func (opts *options) load() (*config.Config, error) {
	cfg, err := config.Load(opts.v, opts.configFile)
	if err != nil {
		return nil, err
	}
	log.SetLevel(cfg.Level())
	return cfg, nil
}

// render parses the dictionary at sourcePath and generates its header in memory
func (opts *options) render(cfg *config.Config, sourcePath string) ([]byte, error) {
	dict, err := od.ParseFile(sourcePath, cfg.NodeIDValue())
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "failed to read object dictionary %s", sourcePath),
			"the input must be an EDS or DCF file, optionally zipped",
		)
	}
	log.Infof("[CMD] read %d entries from %s", dict.Len(), sourcePath)

	var buf bytes.Buffer
	if err := cgen.NewGenerator(cfg.Device, sourcePath).Generate(&buf, dict); err != nil {
		return nil, errors.Wrap(err, "failed to generate header")
	}
	return buf.Bytes(), nil
}

func (opts *options) runGenerate(sourcePath string, outputPath string) error {
	cfg, err := opts.load()
	if err != nil {
		return err
	}
	// Dictionary is read before the output file is created
	header, err := opts.render(cfg, sourcePath)
	if err != nil {
		return err
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", outputPath)
	}
	if _, err := file.Write(header); err != nil {
		file.Close()
		return errors.Wrapf(err, "failed to write %s", outputPath)
	}
	if err := file.Close(); err != nil {
		return errors.Wrapf(err, "failed to write %s", outputPath)
	}
	log.Infof("[CMD] header written to %s", outputPath)
	return nil
}
