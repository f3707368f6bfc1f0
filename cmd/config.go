package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/user/scengen/pkg/config"
	"github.com/user/scengen/pkg/logging"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration (catalog, retries, logging)",
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}
		path, _ := config.GetConfigPath()
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Printf("Error encoding config: %v\n", err)
			return
		}
		fmt.Printf("# %s\n%s", path, data)
	},
}

var setConfigCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set one configuration value. Keys: catalog_dir, retry_limit,
retry_delay, log_level, log_format, log_file.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}
		if err := setValue(cfg, args[0], args[1]); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := config.SaveConfig(cfg); err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			return
		}
		fmt.Printf("%s set to %s\n", args[0], args[1])
	},
}

func setValue(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "catalog_dir":
		cfg.CatalogDir = value
	case "retry_limit":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("retry_limit must be a non-negative integer, got %q", value)
		}
		cfg.RetryLimit = n
	case "retry_delay":
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return fmt.Errorf("retry_delay must be a non-negative duration, got %q", value)
		}
		cfg.RetryDelay = value
	case "log_level":
		if _, err := logging.ParseLevel(value); err != nil {
			return err
		}
		cfg.LogLevel = value
	case "log_format":
		if value != "text" && value != "json" {
			return fmt.Errorf("log_format must be text or json, got %q", value)
		}
		cfg.LogFormat = value
	case "log_file":
		cfg.LogFile = value
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(setConfigCmd)
}
