package main

import (
	"github.com/spf13/cobra"

	"prodstore/internal/api"
	"prodstore/internal/config"
)

func newCategoryCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name>",
			Short: "Create a category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withClient(cfg, func(client *api.Client) error {
					resp, err := client.CreateCategory(cmd.Context(), api.CategoryCreateRequest{Name: args[0]})
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
			Short: "Show one category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return withClient(cfg, func(client *api.Client) error {
					resp, err := client.GetCategory(cmd.Context(), id)
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
			Short: "List categories",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withClient(cfg, func(client *api.Client) error {
					resp, err := client.ListCategories(cmd.Context())
					if err != nil {
						return err
					}
					if *jsonOutput {
						return writeJSON(resp)
					}
					for _, c := range resp {
						if err := writePlain("%d %s\n", c.ID, c.Name); err != nil {
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
