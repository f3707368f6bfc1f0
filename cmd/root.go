package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/user/scengen/pkg/config"
	"github.com/user/scengen/pkg/logging"
	"github.com/user/scengen/pkg/resolver"
)

var rootCmd = &cobra.Command{
	Use:   "scengen",
	Short: "Scenario module resolver",
	Long: `scengen picks a conflict-free set of modules from a catalog to
satisfy the module filters of a scenario file, pulling in the modules
each selection requires.`,
	SilenceUsage: true,
}

var (
	DebugMode bool
	LogFormat string
	LogFile   string
)

// Exit statuses for failed resolutions.
const (
	exitDefect     = 2
	exitExhaustion = 3
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, resolver.ErrConfigurationDefect):
		return exitDefect
	case errors.Is(err, resolver.ErrConflictExhaustion):
		return exitExhaustion
	}
	return 1
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&DebugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&LogFormat, "log-format", "", "Log format (text or json)")
	rootCmd.PersistentFlags().StringVar(&LogFile, "log-file", "", "Also append logs to this file")
}

// newLogger builds the logger from the config file, with the persistent
// flags taking precedence. The closer releases the log file.
func newLogger(cfg *config.Config) (*logrus.Logger, io.Closer, error) {
	opts := logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	}
	if DebugMode {
		opts.Level = "debug"
	}
	if LogFormat != "" {
		opts.Format = LogFormat
	}
	if LogFile != "" {
		opts.File = LogFile
	}
	log, closer, err := logging.New(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	return log, closer, nil
}

// catalogDir resolves the -c flag against the configured directory.
func catalogDir(cmd *cobra.Command, cfg *config.Config) (string, error) {
	dir, _ := cmd.Flags().GetString("catalog")
	if dir == "" {
		dir = cfg.CatalogDir
	}
	if dir == "" {
		return "", errors.New("no catalog directory: pass --catalog, set catalog_dir or SCENGEN_CATALOG")
	}
	return dir, nil
}
