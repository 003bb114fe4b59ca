package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/utafrali/storefront/internal/service"
)

func newProductCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "product <slug>",
		Short: "Show one product",
		Long:  `Fetches /api/v3/products/details for slug and prints the normalized record.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := opts.client.FetchProductDetails(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch opts.output {
			case formatJSON:
				return writeJSON(out, d)
			case formatYAML:
				return writeYAML(out, d)
			}

			rows := [][]string{
				{"ID", d.ID.String()},
				{"Title", cell(d.Title)},
				{"Slug", d.Slug},
				{"Price", service.FormatPrice(d.Price)},
				{"Discount", service.DiscountBadge(d.Discount)},
				{"Description", cell(d.Description)},
				{"Image", cell(d.ImageURL)},
			}
			for i, img := range d.Images {
				rows = append(rows, []string{"Image " + strconv.Itoa(i+1), cell(img)})
			}
			for _, s := range service.SpecRows(d.Specifications) {
				rows = append(rows, []string{"Spec: " + cell(s.Name), cell(s.Value)})
			}
			return writeTable(out, []string{"FIELD", "VALUE"}, rows)
		},
	}
}
