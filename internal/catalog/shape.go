package catalog

// Shape names the upstream response variant a payload matched.
type Shape string

// List response variants, in match order.
const (
	ShapeArray        Shape = "array"
	ShapeDataData     Shape = "data.data"
	ShapeDataProducts Shape = "data.products"
	ShapeProducts     Shape = "products"
	ShapeItems        Shape = "items"
	ShapeData         Shape = "data"
	ShapeEmpty        Shape = "empty"
)

// Detail root variants, in match order.
const (
	ShapeDetailData    Shape = "data"
	ShapeDetailProduct Shape = "product"
	ShapeDetailRoot    Shape = "root"
	ShapeDetailEmpty   Shape = "empty"
)

// matcher attempts to extract a candidate from a decoded payload.
type matcher struct {
	shape Shape
	match func(v any) (any, bool)
}

func pathMatcher(shape Shape, steps ...any) matcher {
	return matcher{shape: shape, match: func(v any) (any, bool) { return at(v, steps...) }}
}

// listMatchers resolve the product array. A matcher succeeds when its
// candidate is defined; the array check happens after resolution, so a
// defined non-array candidate ends the search.
var listMatchers = []matcher{
	{shape: ShapeArray, match: func(v any) (any, bool) {
		arr, ok := v.([]any)
		return arr, ok
	}},
	pathMatcher(ShapeDataData, "data", "data"),
	pathMatcher(ShapeDataProducts, "data", "products"),
	pathMatcher(ShapeProducts, "products"),
	pathMatcher(ShapeItems, "items"),
	pathMatcher(ShapeData, "data"),
}

// detailMatchers unwrap the single-product record.
var detailMatchers = []matcher{
	pathMatcher(ShapeDetailData, "data"),
	pathMatcher(ShapeDetailProduct, "product"),
	{shape: ShapeDetailRoot, match: func(v any) (any, bool) { return v, v != nil }},
}

// resolve runs matchers in order and returns the first success.
func resolve(v any, matchers []matcher) (any, Shape, bool) {
	for _, m := range matchers {
		if candidate, ok := m.match(v); ok {
			return candidate, m.shape, true
		}
	}
	return nil, "", false
}
