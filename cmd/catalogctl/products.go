package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/pagination"
)

func newProductsCmd(opts *options) *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List one page of products",
		Long:  `Fetches /api/v3/products and prints the normalized product summaries.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if page < 1 {
				return fmt.Errorf("--page must be at least 1")
			}
			if limit < 1 || limit > pagination.MaxLimit {
				return fmt.Errorf("--limit must be between 1 and %d", pagination.MaxLimit)
			}

			res, err := opts.client.FetchProducts(cmd.Context(), page, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch opts.output {
			case formatJSON:
				return writeJSON(out, res.ProductList)
			case formatYAML:
				return writeYAML(out, res.ProductList)
			}

			rows := make([][]string, 0, len(res.Products))
			for _, p := range res.Products {
				rows = append(rows, []string{
					p.ID.String(),
					cell(p.Title),
					service.FormatPrice(p.Price),
					p.LinkSlug(),
					cell(p.ImageURL),
				})
			}
			if err := writeTable(out, []string{"ID", "TITLE", "PRICE", "SLUG", "IMAGE"}, rows); err != nil {
				return err
			}

			nav := pagination.Navigate(pagination.Params{Page: page, Limit: limit}, len(res.Products), res.Meta.TotalPages)
			total := "?"
			if nav.TotalPages != nil {
				total = strconv.Itoa(*nav.TotalPages)
			}
			_, err = fmt.Fprintf(out, "page %d of %s, %d products, shape %s\n", page, total, len(res.Products), res.Shape)
			return err
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&limit, "limit", pagination.DefaultLimit, "Products per page")
	return cmd
}
