package main

import (
	"github.com/spf13/cobra"

	"prodstore/internal/api"
	"prodstore/internal/config"
)

func newInfoCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show catalog database info",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.GetInfo(cmd.Context())
				if err != nil {
					return err
				}
				resp.DBPath = cfg.DBPath

				if *jsonOutput {
					return writeJSON(resp)
				}

				_ = writePlain("version: %s\n", resp.Version)
				_ = writePlain("db_path: %s\n", resp.DBPath)
				_ = writePlain("schema_version: %d\n", resp.SchemaVersion)
				_ = writePlain("products: %d (%d active)\n", resp.ProductCount, resp.ActiveCount)
				_ = writePlain("brands: %d\n", resp.BrandCount)
				_ = writePlain("categories: %d\n", resp.CategoryCount)
				_ = writePlain("images: %d\n", resp.ImageCount)
				return nil
			})
		},
	}
}
