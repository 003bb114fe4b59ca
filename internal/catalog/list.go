package catalog

import (
	"math"
	"strconv"
	"strings"

	"github.com/utafrali/storefront/internal/domain"
)

// ListResult is a normalized product list plus the response variant that
// supplied the product array.
type ListResult struct {
	domain.ProductList
	Shape Shape
}

// NormalizeProductList extracts products and pagination metadata from a
// decoded list response of any known shape. It never fails.
func NormalizeProductList(v any) ListResult {
	res := ListResult{Shape: ShapeEmpty}
	res.Products = []domain.ProductSummary{}

	if candidate, shape, ok := resolve(v, listMatchers); ok {
		res.Shape = shape
		if arr, isArr := candidate.([]any); isArr {
			res.Products = make([]domain.ProductSummary, 0, len(arr))
			for _, item := range arr {
				res.Products = append(res.Products, NormalizeSummary(item))
			}
		}
	}

	res.Meta = domain.PaginationMeta{
		Page:       metaInt(v, "page"),
		Limit:      metaInt(v, "limit"),
		Total:      metaInt(v, "total"),
		TotalPages: metaInt(v, "totalPages"),
	}
	return res
}

// metaInt reads key from the top level, then data, then meta.
func metaInt(v any, key string) *int {
	for _, steps := range [][]any{{key}, {"data", key}, {"meta", key}} {
		if raw, ok := at(v, steps...); ok {
			return toInt(raw)
		}
	}
	return nil
}

func toInt(v any) *int {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || f != math.Trunc(f) || f < 0 || f > math.MaxInt32 {
		return nil
	}
	n := int(f)
	return &n
}
