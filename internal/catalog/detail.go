package catalog

import "github.com/utafrali/storefront/internal/domain"

var detailFields = append(append([]string{}, summaryFields...),
	"description", "discount", "images", "specifications")

// DetailResult is a normalized product detail plus the root variant that
// supplied the record.
type DetailResult struct {
	Product domain.ProductDetail
	Shape   Shape
}

// NormalizeProductDetail extracts a full product record from a decoded
// detail response. slug is the value used to request it and is kept when
// the record carries none.
func NormalizeProductDetail(v any, slug string) domain.ProductDetail {
	return ParseProductDetail(v, slug).Product
}

// ParseProductDetail is NormalizeProductDetail that also reports the
// matched root variant.
func ParseProductDetail(v any, slug string) DetailResult {
	raw, shape, ok := resolve(v, detailMatchers)
	if !ok {
		raw, shape = map[string]any{}, ShapeDetailEmpty
	}

	d := domain.ProductDetail{
		ProductSummary: normalizeSummary(raw, detailFields),
		Discount:       domain.FlexNumber(0),
	}

	if s, ok := field(raw, "slug"); ok {
		d.Slug = domain.FlexFrom(s).String()
	} else {
		d.Slug = slug
	}
	if desc, ok := firstField(raw, "description", "shortDescription", "details"); ok {
		d.Description = domain.FlexFrom(desc).String()
	}
	if disc, ok := firstField(raw, "discount", "discountPercentage", "offer"); ok {
		d.Discount = domain.FlexFrom(disc)
	}
	d.Images = detailImages(raw)

	specs, _ := firstField(raw, "specifications", "specs", "attributes", "features")
	d.Specifications = domain.NewSpecifications(specs)

	return DetailResult{Product: d, Shape: shape}
}

// detailImages resolves images, then gallery, then a single-entry list from
// a truthy image. A resolved value that is not an array yields no images.
func detailImages(raw any) []string {
	var source any
	if v, ok := firstField(raw, "images", "gallery"); ok {
		source = v
	} else if img, _ := field(raw, "image"); truthy(img) {
		source = []any{img}
	}

	arr, ok := source.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(arr))
	for _, entry := range arr {
		if s, isStr := entry.(string); isStr {
			out = append(out, imageOrPlaceholder(s))
			continue
		}
		u, _ := field(entry, "url")
		out = append(out, imageOrPlaceholder(u))
	}
	return out
}
