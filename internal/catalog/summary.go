package catalog

import (
	"github.com/google/uuid"

	"github.com/utafrali/storefront/internal/domain"
)

const placeholder = domain.PlaceholderImage

// generateID supplies identifiers for records that carry none.
var generateID = uuid.NewString

// summaryFields are the normalized output names of a summary; raw keys with
// these names are never copied into Extra.
var summaryFields = []string{"id", "title", "price", "imageUrl", "slug"}

// NormalizeSummary maps an arbitrary decoded JSON value to a ProductSummary.
// It never fails: every field has a default.
func NormalizeSummary(item any) domain.ProductSummary {
	return normalizeSummary(item, summaryFields)
}

func normalizeSummary(item any, reserved []string) domain.ProductSummary {
	p := domain.ProductSummary{
		Title:    domain.DefaultTitle,
		Price:    domain.FlexNumber(0),
		ImageURL: placeholder,
	}

	if v, ok := firstField(item, "id", "_id", "productId", "sku"); ok {
		p.ID = domain.FlexFrom(v)
	} else {
		p.ID = domain.FlexString(generateID())
	}
	if v, ok := firstField(item, "title", "name", "productName"); ok {
		p.Title = domain.FlexFrom(v).String()
	}
	if v, ok := firstField(item, "slug", "handle", "productSlug"); ok {
		p.Slug = domain.FlexFrom(v).String()
	}
	if v, ok := firstField(item, "price", "salePrice", "regularPrice", "minPrice"); ok {
		p.Price = domain.FlexFrom(v)
	}
	if v, ok := summaryImage(item); ok {
		p.ImageURL = imageOrPlaceholder(v)
	}
	p.Extra = extraFields(item, reserved)

	return p
}

// summaryImage resolves the raw image reference. An "image" object without
// a url still resolves (to the object), which then sanitizes to nothing.
func summaryImage(item any) (any, bool) {
	candidates := [][]any{
		{"image", "url"},
		{"thumbnail"},
		{"image"},
		{"images", 0, "url"},
		{"featuredImage"},
	}
	for _, steps := range candidates {
		if v, ok := at(item, steps...); ok {
			return v, true
		}
	}
	return nil, false
}

// extraFields copies the raw object's keys that are not reserved output
// names. Non-object input has no extra fields.
func extraFields(item any, reserved []string) map[string]any {
	obj, ok := item.(map[string]any)
	if !ok {
		return nil
	}
	skip := make(map[string]struct{}, len(reserved))
	for _, k := range reserved {
		skip[k] = struct{}{}
	}
	var extra map[string]any
	for k, v := range obj {
		if _, reservedKey := skip[k]; reservedKey {
			continue
		}
		if extra == nil {
			extra = make(map[string]any, len(obj))
		}
		extra[k] = v
	}
	return extra
}
