// strata - demo tool for immutable tagged records
//
// Usage:
//
//	strata demo [fruit|people|shapes|songs|all]  Run one demo or all of them
//	strata schema                                Print the demo schemas and their hash
//	strata version                               Print version info
//
// Flags can also be set through STRATA_* environment variables or a config
// file, e.g. STRATA_LOG_LEVEL=debug or STRATA_FORMAT=table.
package main

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	libVersion = "0.1.0"
	envPrefix  = "STRATA"
)

const (
	formatText  = "text"
	formatTable = "table"
)

type rootOpts struct {
	cfgFile  string
	logLevel string
	format   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Errorf("strata-%s: %v", libVersion, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOpts{}
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "strata",
		Short:         "Demonstrate immutable, structurally shared tagged records",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd, v, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (yaml, json or toml)")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.StringVar(&opts.format, "format", formatText, "output format for listings (text, table)")

	cmd.AddCommand(newDemoCmd(opts), newSchemaCmd(), newVersionCmd())
	return cmd
}

// initConfig layers the config file and STRATA_* environment variables
// under explicitly set flags, then configures logging.
func initConfig(cmd *cobra.Command, v *viper.Viper, opts *rootOpts) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if opts.cfgFile != "" {
		v.SetConfigFile(opts.cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "read config %s", opts.cfgFile)
		}
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "bind flags")
	}

	opts.logLevel = v.GetString("log-level")
	opts.format = v.GetString("format")

	level, err := logrus.ParseLevel(opts.logLevel)
	if err != nil {
		return errors.Wrap(err, "log level")
	}
	logrus.SetLevel(level)
	logrus.SetOutput(cmd.ErrOrStderr())
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	switch opts.format {
	case formatText, formatTable:
	default:
		return errors.Errorf("unknown format %q", opts.format)
	}

	logrus.Debugf("config: log-level=%s format=%s", opts.logLevel, opts.format)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			writef(cmd.OutOrStdout(), "strata %s\n", libVersion)
		},
	}
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the canonical text and hash of the demo schemas",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			reg := demoRegistry()
			logrus.Debugf("%d schemas registered", reg.Len())
			writef(out, "%s\n", reg.Canonical())
			writef(out, "hash: %s\n", reg.Hash())
		},
	}
}
