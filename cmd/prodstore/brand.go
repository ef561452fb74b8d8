package main

import (
	"github.com/spf13/cobra"

	"prodstore/internal/api"
	"prodstore/internal/config"
)

func newBrandCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brand",
		Short: "Manage brands",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name>",
			Short: "Create a brand",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withClient(cfg, func(client *api.Client) error {
					resp, err := client.CreateBrand(cmd.Context(), api.BrandCreateRequest{Name: args[0]})
					if err != nil {
						return err
					}
					if *jsonOutput {
						return writeJSON(resp)
					}
					return writePlain("%d\n", resp.ID)
				})
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show one brand",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return withClient(cfg, func(client *api.Client) error {
					resp, err := client.GetBrand(cmd.Context(), id)
					if err != nil {
						return err
					}
					if *jsonOutput {
						return writeJSON(resp)
					}
					return writePlain("%d %s\n", resp.ID, resp.Name)
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List brands",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withClient(cfg, func(client *api.Client) error {
					resp, err := client.ListBrands(cmd.Context())
					if err != nil {
						return err
					}
					if *jsonOutput {
						return writeJSON(resp)
					}
					for _, b := range resp {
						if err := writePlain("%d %s\n", b.ID, b.Name); err != nil {
							return err
						}
					}
					return nil
				})
			},
		},
	)
	return cmd
}
