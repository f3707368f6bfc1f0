package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/user/scengen/pkg/catalog"
	"github.com/user/scengen/pkg/config"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the module catalog",
}

var listCatalogCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog modules",
	Run: func(cmd *cobra.Command, args []string) {
		cat, ok := loadCatalog(cmd)
		if !ok {
			return
		}
		moduleType, _ := cmd.Flags().GetString("type")

		mods := cat.Modules()
		if moduleType != "" {
			mods = cat.OfType(moduleType)
		}
		for _, m := range mods {
			fmt.Printf("[%s] %s\n", m.Type, m.Path)
			if m.Name != "" {
				fmt.Printf("    name: %s\n", m.Name)
			}
			for _, req := range m.Requires {
				fmt.Printf("    requires: %s\n", req)
			}
			for _, c := range m.Conflicts {
				fmt.Printf("    conflicts: %s\n", c)
			}
		}
		fmt.Printf("\n%d module(s)\n", len(mods))
	},
}

var typesCatalogCmd = &cobra.Command{
	Use:   "types",
	Short: "List module types with counts",
	Run: func(cmd *cobra.Command, args []string) {
		cat, ok := loadCatalog(cmd)
		if !ok {
			return
		}
		for _, t := range cat.Types() {
			fmt.Printf("%-20s %d\n", t, len(cat.OfType(t)))
		}
	},
}

func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, bool) {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return nil, false
	}
	dir, err := catalogDir(cmd, cfg)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return nil, false
	}
	cat, err := catalog.LoadDirectory(dir)
	if err != nil {
		fmt.Printf("Error loading catalog: %v\n", err)
		return nil, false
	}
	return cat, true
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(listCatalogCmd)
	catalogCmd.AddCommand(typesCatalogCmd)

	catalogCmd.PersistentFlags().StringP("catalog", "c", "", "Module catalog directory")
	listCatalogCmd.Flags().String("type", "", "Only list modules of this type")
}
