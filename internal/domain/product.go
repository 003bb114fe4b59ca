package domain

// PlaceholderImage is the local asset shown when a product has no usable image.
const PlaceholderImage = "/file.svg"

// DefaultTitle is used when the upstream record carries no title.
const DefaultTitle = "Untitled"

// ProductSummary is the list-view representation of a product.
type ProductSummary struct {
	ID       Flex   `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Price    Flex   `json:"price" yaml:"price"`
	ImageURL string `json:"imageUrl" yaml:"imageUrl"`
	Slug     string `json:"slug,omitempty" yaml:"slug,omitempty"`

	// Extra holds raw upstream fields that are not normalized output fields.
	Extra map[string]any `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// LinkSlug returns the value used to address the product detail page:
// the slug when present, otherwise the identifier.
func (p ProductSummary) LinkSlug() string {
	if p.Slug != "" {
		return p.Slug
	}
	return p.ID.String()
}

// PaginationMeta carries optional paging fields reported by the upstream.
type PaginationMeta struct {
	Page       *int `json:"page,omitempty" yaml:"page,omitempty"`
	Limit      *int `json:"limit,omitempty" yaml:"limit,omitempty"`
	Total      *int `json:"total,omitempty" yaml:"total,omitempty"`
	TotalPages *int `json:"totalPages,omitempty" yaml:"totalPages,omitempty"`
}

// ProductList is a normalized page of products.
type ProductList struct {
	Products []ProductSummary `json:"products" yaml:"products"`
	Meta     PaginationMeta   `json:"meta" yaml:"meta"`
}

// ProductDetail is the full single-product representation.
type ProductDetail struct {
	ProductSummary `yaml:",inline"`

	Description    string         `json:"description" yaml:"description"`
	Discount       Flex           `json:"discount" yaml:"discount"`
	Images         []string       `json:"images" yaml:"images"`
	Specifications Specifications `json:"specifications" yaml:"specifications"`
}
