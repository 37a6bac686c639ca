package main

import (
	"github.com/BurntSushi/xdg"
	"github.com/fatih/color"
	"github.com/fd0/hcf/internal/config"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var configFile string
var configPaths = xdg.Paths{}

var colorMode string

func init() {
	cobra.OnInitialize(initConfig)

	flags := RootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "config file to read at startup (default is $XDG_CONFIG_HOME/hcf.conf)")

	flags.StringVar(&colorMode, "color", "auto", "colorize output: auto, always or never")
	bindConfigValue(flags.Lookup("color"), func(c config.Config) string { return c.Color })
}

const configFileName = "hcf.conf"

var cfg = config.Default()

// initConfig sets up logging and locates the configuration file.
func initConfig() {
	setupLogger(RootCmd.ErrOrStderr())

	if configFile == "" {
		var err error
		configFile, err = configPaths.ConfigFile(configFileName)
		if err != nil {
			level.Info(logger).Log("msg", "no config file", "err", err)
			return
		}
	}

	level.Info(logger).Log("msg", "config file found", "file", configFile)
}

func parseConfig(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		c, err := config.Load(configFile, hcfLoadOptions()...)
		if err != nil {
			return errors.Wrap(err, "parse config file")
		}

		cfg = c
		if err := applyConfig(cfg); err != nil {
			return errors.WithMessage(err, configFile)
		}
	}

	return setColorMode(colorMode)
}

func setColorMode(mode string) error {
	switch mode {
	case "auto":
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		return errors.Errorf("invalid color mode %q", mode)
	}

	return nil
}

// configBind connects a flag to the setting providing its default.
type configBind struct {
	flag    *pflag.Flag
	setting func(config.Config) string
}

var configBinds []configBind

// bindConfigValue makes the setting returned by fn the default for flag.
func bindConfigValue(flag *pflag.Flag, fn func(config.Config) string) {
	configBinds = append(configBinds, configBind{flag: flag, setting: fn})
}

// applyConfig sets the bound flags which have not been given on the command
// line to the values from the configuration file. Empty settings are skipped.
func applyConfig(c config.Config) error {
	for _, bind := range configBinds {
		value := bind.setting(c)
		if bind.flag.Changed || value == "" {
			continue
		}

		if err := bind.flag.Value.Set(value); err != nil {
			return errors.WithMessagef(err, "setting for --%v", bind.flag.Name)
		}

		level.Debug(logger).Log("msg", "flag from config file", "flag", bind.flag.Name, "value", value)
	}

	return nil
}
