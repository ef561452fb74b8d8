package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"prodstore/internal/api"
	"prodstore/internal/config"
)

func newImportCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "import <seed-file>",
		Short: "Import a catalog seed file (YAML or JSON)",
		Long: "Import creates the brands, categories, products, and staff accounts " +
			"listed in the seed file. Entries that already exist are skipped, so " +
			"re-running an import is safe.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := readSeedFile(args[0])
			if err != nil {
				return err
			}
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.Import(cmd.Context(), seed)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				_ = writePlain("brands: %d created\n", resp.BrandsCreated)
				_ = writePlain("categories: %d created\n", resp.CategoriesCreated)
				_ = writePlain("products: %d created\n", resp.ProductsCreated)
				_ = writePlain("staff: %d created\n", resp.StaffCreated)
				_ = writePlain("skipped: %d\n", resp.Skipped)
				return nil
			})
		},
	}
}

func readSeedFile(path string) (api.CatalogSeed, error) {
	var seed api.CatalogSeed

	data, err := os.ReadFile(path)
	if err != nil {
		return seed, fmt.Errorf("read seed file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &seed)
	default:
		err = yaml.Unmarshal(data, &seed)
	}
	if err != nil {
		return seed, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return seed, nil
}
