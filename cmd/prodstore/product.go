package main

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"prodstore/internal/api"
	"prodstore/internal/config"
)

type productCmdOptions struct {
	listedPrice  float64
	sellingPrice float64
	description  string
	stock        int
	brandID      int64
	categoryIDs  []int64
	imagePaths   []string
	keepImageIDs []int64
	inactive     bool
}

func newProductCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage catalog products",
	}

	cmd.AddCommand(
		newProductAddCmd(cfg, jsonOutput),
		newProductUpdateCmd(cfg, jsonOutput),
		newProductShowCmd(cfg, jsonOutput),
		newProductListCmd(cfg, jsonOutput),
		newProductSearchCmd(cfg, jsonOutput),
		newProductActivateCmd(cfg, jsonOutput, true),
		newProductActivateCmd(cfg, jsonOutput, false),
	)
	return cmd
}

func newProductAddCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	opts := &productCmdOptions{}
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a product to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				upload, closeFiles, err := buildProductUpload(args[0], opts)
				if err != nil {
					return err
				}
				defer closeFiles()

				resp, err := client.CreateProduct(cmd.Context(), upload)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				return writePlain("%d\n", resp.ID)
			})
		},
	}
	bindProductFlags(cmd, opts)
	return cmd
}

func newProductUpdateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	opts := &productCmdOptions{}
	cmd := &cobra.Command{
		Use:   "update <id> <name>",
		Short: "Update a product, replacing fields and reconciling images",
		Long: "Update replaces the product's scalar fields, brand, and categories. " +
			"Images listed via --keep-image survive; all other existing images are " +
			"removed. Files given via --image are appended as new images.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withClient(cfg, func(client *api.Client) error {
				upload, closeFiles, err := buildProductUpload(args[1], opts)
				if err != nil {
					return err
				}
				defer closeFiles()
				upload.KeepImageIDs = opts.keepImageIDs

				resp, err := client.UpdateProduct(cmd.Context(), id, upload)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				return writeProductDetail(resp)
			})
		},
	}
	bindProductFlags(cmd, opts)
	cmd.Flags().Int64SliceVar(&opts.keepImageIDs, "keep-image", nil, "existing image id to keep (repeatable)")
	return cmd
}

func newProductShowCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.GetProduct(cmd.Context(), id)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				return writeProductDetail(resp)
			})
		},
	}
}

func newProductListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var activeOnly bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				query := url.Values{}
				if activeOnly {
					query.Set("active", "true")
				}
				resp, err := client.ListProducts(cmd.Context(), query)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				return writeProductList(resp)
			})
		},
	}
	cmd.Flags().BoolVar(&activeOnly, "active", false, "only active products")
	return cmd
}

func newProductSearchCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var keyword string
	var brandID int64
	var categoryIDs []int64

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search products by keyword, brand, and categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				query := url.Values{}
				if keyword != "" {
					query.Set("q", keyword)
				}
				if brandID > 0 {
					query.Set("brand_id", strconv.FormatInt(brandID, 10))
				}
				if len(categoryIDs) > 0 {
					query.Set("category_ids", joinIDList(categoryIDs))
				}
				resp, err := client.SearchProducts(cmd.Context(), query)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				return writeProductList(resp)
			})
		},
	}
	cmd.Flags().StringVarP(&keyword, "query", "q", "", "substring to match in name or description")
	cmd.Flags().Int64Var(&brandID, "brand", 0, "brand id filter")
	cmd.Flags().Int64SliceVar(&categoryIDs, "category", nil, "category id filter (repeatable)")
	return cmd
}

func newProductActivateCmd(cfg *config.Config, jsonOutput *bool, activate bool) *cobra.Command {
	use, short := "activate <id>", "Activate a product"
	if !activate {
		use, short = "deactivate <id>", "Deactivate (soft delete) a product"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withClient(cfg, func(client *api.Client) error {
				var resp api.ProductResponse
				if activate {
					resp, err = client.ActivateProduct(cmd.Context(), id)
				} else {
					resp, err = client.DeactivateProduct(cmd.Context(), id)
				}
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				return writePlain("%d active=%t\n", resp.ID, resp.Active)
			})
		},
	}
}

func bindProductFlags(cmd *cobra.Command, opts *productCmdOptions) {
	cmd.Flags().Float64Var(&opts.listedPrice, "listed-price", 0, "listed price")
	cmd.Flags().Float64Var(&opts.sellingPrice, "selling-price", 0, "selling price")
	cmd.Flags().StringVarP(&opts.description, "description", "d", "", "product description")
	cmd.Flags().IntVar(&opts.stock, "stock", 0, "stock count")
	cmd.Flags().Int64Var(&opts.brandID, "brand", 0, "brand id (required)")
	cmd.Flags().Int64SliceVar(&opts.categoryIDs, "category", nil, "category id (repeatable)")
	cmd.Flags().StringSliceVar(&opts.imagePaths, "image", nil, "image file to upload (repeatable)")
	cmd.Flags().BoolVar(&opts.inactive, "inactive", false, "create as inactive")
}

func buildProductUpload(name string, opts *productCmdOptions) (api.ProductUpload, func(), error) {
	upload := api.ProductUpload{
		Name:         name,
		ListedPrice:  opts.listedPrice,
		SellingPrice: opts.sellingPrice,
		Description:  opts.description,
		Stock:        opts.stock,
		BrandID:      opts.brandID,
		CategoryIDs:  opts.categoryIDs,
	}
	if opts.inactive {
		inactive := false
		upload.Active = &inactive
	}

	var files []*os.File
	closeFiles := func() {
		for _, f := range files {
			f.Close()
		}
	}
	for _, path := range opts.imagePaths {
		f, err := os.Open(path)
		if err != nil {
			closeFiles()
			return upload, func() {}, fmt.Errorf("open image %s: %w", path, err)
		}
		files = append(files, f)
		upload.Images = append(upload.Images, api.ImageFile{Name: filepath.Base(path), Reader: f})
	}
	return upload, closeFiles, nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func joinIDList(ids []int64) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += ","
		}
		out += strconv.FormatInt(id, 10)
	}
	return out
}
