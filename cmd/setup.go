package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/user/scengen/pkg/catalog"
	"github.com/user/scengen/pkg/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard",
	Run: func(cmd *cobra.Command, args []string) {
		scanner := bufio.NewScanner(os.Stdin)
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		fmt.Println("Welcome to the scengen Setup Wizard")
		fmt.Println("-----------------------------------")

		// 1. Catalog
		fmt.Println("Step 1: Module catalog directory")
		dir := prompt(scanner, cfg.CatalogDir)
		if dir == "" {
			fmt.Println("Catalog directory cannot be empty.")
			return
		}
		cat, err := catalog.LoadDirectory(dir)
		if err != nil {
			fmt.Printf("Warning: %v\n", err)
		} else {
			fmt.Printf("Found %d module(s) of %d type(s).\n", cat.Len(), len(cat.Types()))
		}
		cfg.CatalogDir = dir

		// 2. Retries
		fmt.Println("\nStep 2: Retries after a conflicted attempt")
		if v := prompt(scanner, fmt.Sprint(cfg.RetryLimit)); v != "" {
			if err := setValue(cfg, "retry_limit", v); err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
		}
		// 3. Pause
		fmt.Println("\nStep 3: Pause between attempts")
		if v := prompt(scanner, cfg.RetryDelay); v != "" {
			if err := setValue(cfg, "retry_delay", v); err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
		}

		// 4. Logging
		fmt.Println("\nStep 4: Log level (debug, info, warn, error)")
		if v := prompt(scanner, cfg.LogLevel); v != "" {
			if err := setValue(cfg, "log_level", v); err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
		}

		if err := config.SaveConfig(cfg); err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			return
		}
		path, _ := config.GetConfigPath()
		fmt.Printf("\nConfiguration saved to %s\n", path)
	},
}

// prompt reads one line, returning current when the answer is blank.
func prompt(scanner *bufio.Scanner, current string) string {
	if current != "" {
		fmt.Printf("[%s] > ", current)
	} else {
		fmt.Print("> ")
	}
	if !scanner.Scan() {
		return current
	}
	if v := strings.TrimSpace(scanner.Text()); v != "" {
		return v
	}
	return current
}

func init() {
	configCmd.AddCommand(setupCmd)
}
