// Package cmd provides the livedoc command-line interface.
//
// Configuration is read from, highest priority first: command-line flags,
// LIVEDOC_ environment variables such as LIVEDOC_SERVER_PORT, the file
// named by --config or LIVEDOC_CONFIG_FILE, .livedoc.yml in the working
// directory, and built-in defaults.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/livedoc/internal/config"
	"github.com/conneroisu/livedoc/internal/logging"
	"github.com/conneroisu/livedoc/internal/site"
)

var (
	cfgFile string
	// initErr holds a failure to read an explicitly named config file.
	initErr error
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "livedoc",
	Short: "Documentation site with live widget examples",
	Long: `livedoc serves documentation pages where every example shows its
description, the live widgets it builds and the exact source that built them.

Quick Start:
  livedoc serve                   Start the documentation server
  livedoc build -o dist           Export the site as static HTML
  livedoc list                    List the recorded examples
  livedoc validate                Check the configuration`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .livedoc.yml, can also use LIVEDOC_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig points the global Viper instance at the configuration file.
// A broken explicit file is reported when a command loads the config.
func initConfig() {
	used, err := config.Init(viper.GetViper(), cfgFile)
	initErr = err
	if err != nil {
		return
	}
	if used != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", used)
	}
}

// loadConfig decodes and validates the configuration.
func loadConfig() (*config.Config, error) {
	if initErr != nil {
		return nil, initErr
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the logger described by the log section.
func newLogger(cfg *config.Config) (logging.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return logging.NewLogger(&logging.LoggerConfig{
		Level:  level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	}), nil
}

// siteOptions maps the site section onto site.Build options.
func siteOptions(cfg *config.Config, logger logging.Logger) site.Options {
	return site.Options{
		Title:      cfg.Site.Title,
		Readme:     cfg.Site.Readme,
		SourceDir:  cfg.Site.SourceDir,
		ImportLine: cfg.Site.ImportLine,
		CodeStyle:  cfg.Site.CodeStyle,
		Logger:     logger,
	}
}
