package main

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/utafrali/storefront/pkg/json"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"

	// cellWidth caps free-text table cells.
	cellWidth = 48
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// writeTable renders rows with header as the first row.
func writeTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	if err := table.Append(header); err != nil {
		return fmt.Errorf("append header: %w", err)
	}
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("append row: %w", err)
		}
	}
	return table.Render()
}

func cell(s string) string {
	return runewidth.Truncate(s, cellWidth, "…")
}
