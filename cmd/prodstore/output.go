package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"prodstore/internal/api"
	"prodstore/internal/format"
)

var outputFormatter format.Formatter = format.JSONFormatter{Indent: "  "}

func writeJSON(payload any) error {
	return outputFormatter.Write(os.Stdout, payload)
}

func writePlain(format string, args ...any) error {
	_, err := fmt.Fprintf(os.Stdout, format, args...)
	return err
}

func writeProductList(products []api.ProductResponse) error {
	for _, product := range products {
		if err := writePlain("%s\n", formatProductLine(product)); err != nil {
			return err
		}
	}
	return nil
}

func writeProductDetail(product api.ProductResponse) error {
	lines := []string{
		fmt.Sprintf("id: %d", product.ID),
		fmt.Sprintf("name: %s", product.Name),
		fmt.Sprintf("listed_price: %.2f", product.ListedPrice),
		fmt.Sprintf("selling_price: %.2f", product.SellingPrice),
		fmt.Sprintf("stock: %d", product.Stock),
		fmt.Sprintf("units_sold: %d", product.UnitsSold),
		fmt.Sprintf("active: %t", product.Active),
		fmt.Sprintf("created_at: %s", formatTime(product.CreatedAt)),
		fmt.Sprintf("updated_at: %s", formatTime(product.UpdatedAt)),
	}

	if product.Description != "" {
		lines = append(lines, fmt.Sprintf("description: %s", product.Description))
	}
	if product.Brand != nil {
		lines = append(lines, fmt.Sprintf("brand: %s (%d)", product.Brand.Name, product.Brand.ID))
	}
	if len(product.Categories) > 0 {
		names := make([]string, 0, len(product.Categories))
		for _, c := range product.Categories {
			names = append(names, c.Name)
		}
		lines = append(lines, fmt.Sprintf("categories: %s", strings.Join(names, ", ")))
	}
	if len(product.Images) > 0 {
		lines = append(lines, "images:")
		for _, img := range product.Images {
			lines = append(lines, fmt.Sprintf("  - [%d] %s", img.ID, img.StoredName))
		}
	}

	return writePlain("%s\n", strings.Join(lines, "\n"))
}

func formatProductLine(product api.ProductResponse) string {
	marker := "+"
	if !product.Active {
		marker = "-"
	}
	brand := ""
	if product.Brand != nil {
		brand = " [" + product.Brand.Name + "]"
	}
	return fmt.Sprintf("%s %d%s %s (%.2f)", marker, product.ID, brand, product.Name, product.SellingPrice)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
