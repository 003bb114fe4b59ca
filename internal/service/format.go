package service

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/json"
)

// FormatPrice renders numbers as dollars with two decimals and strings as-is.
func FormatPrice(price domain.Flex) string {
	if n, ok := price.Number(); ok {
		return fmt.Sprintf("$%.2f", n)
	}
	return price.String()
}

// DiscountBadge returns the badge text, or "" when there is no discount.
func DiscountBadge(discount domain.Flex) string {
	if discount.IsZero() {
		return ""
	}
	if discount.IsNumber() {
		return "Save " + discount.String() + "%"
	}
	return "Save " + discount.String()
}

// SpecRows flattens specifications into at most maxSpecRows table rows.
// Mappings are listed in key order. Sequence entries use their key and value
// fields, falling back to the entry's first field.
func SpecRows(specs domain.Specifications) []SpecRow {
	var rows []SpecRow

	switch specs.Kind() {
	case domain.SpecMapping:
		m, _ := specs.Mapping()
		keys := sortedKeys(m)
		for _, k := range keys[:min(len(keys), maxSpecRows)] {
			rows = append(rows, SpecRow{Name: k, Value: displayValue(m[k])})
		}
	case domain.SpecPairs:
		pairs, _ := specs.Pairs()
		for _, entry := range pairs[:min(len(pairs), maxSpecRows)] {
			rows = append(rows, pairRow(entry))
		}
	}
	return rows
}

func pairRow(entry any) SpecRow {
	m, ok := entry.(map[string]any)
	if !ok {
		return SpecRow{Value: displayValue(entry)}
	}

	keys := sortedKeys(m)
	var row SpecRow
	if k, ok := m["key"]; ok && k != nil {
		row.Name = displayValue(k)
	} else if len(keys) > 0 {
		row.Name = keys[0]
	}
	if v, ok := m["value"]; ok && v != nil {
		row.Value = displayValue(v)
	} else if len(keys) > 0 {
		row.Value = displayValue(m[keys[0]])
	}
	return row
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// displayValue renders a decoded JSON value as table text.
func displayValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
