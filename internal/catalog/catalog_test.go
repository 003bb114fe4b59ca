package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/json"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func intPtr(n int) *int { return &n }

func fixedID(t *testing.T, id string) {
	t.Helper()
	prev := generateID
	generateID = func() string { return id }
	t.Cleanup(func() { generateID = prev })
}

// --- SanitizeImageURL ---

func TestSanitizeImageURL(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
		ok   bool
	}{
		{"protocol relative with paren", "//cdn.example.com/img.png)", "https://cdn.example.com/img.png", true},
		{"trims whitespace", "  https://a.test/x.jpg  ", "https://a.test/x.jpg", true},
		{"strips quotes", `"'https://a.test/x.jpg'"`, "https://a.test/x.jpg", true},
		{"strips one paren only", "https://a.test/x))", "https://a.test/x)", true},
		{"quoted then paren", `"https://a.test/x.jpg")`, "https://a.test/x.jpg", true},
		{"plain path kept", "/file.svg", "/file.svg", true},
		{"empty string", "", "", true},
		{"number", 42.0, "", false},
		{"object", map[string]any{"url": "x"}, "", false},
		{"nil", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SanitizeImageURL(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// --- NormalizeSummary ---

func TestNormalizeSummary_Defaults(t *testing.T) {
	fixedID(t, "generated-id")

	p := NormalizeSummary(map[string]any{})

	assert.Equal(t, "generated-id", p.ID.String())
	assert.Equal(t, domain.DefaultTitle, p.Title)
	n, isNum := p.Price.Number()
	assert.True(t, isNum)
	assert.Equal(t, 0.0, n)
	assert.Equal(t, domain.PlaceholderImage, p.ImageURL)
	assert.Empty(t, p.Slug)
	assert.Nil(t, p.Extra)
}

func TestNormalizeSummary_NonObjectInput(t *testing.T) {
	fixedID(t, "gen")

	for _, in := range []any{nil, "string", 12.0, []any{1.0}} {
		p := NormalizeSummary(in)
		assert.Equal(t, "gen", p.ID.String())
		assert.Equal(t, domain.DefaultTitle, p.Title)
		assert.Equal(t, domain.PlaceholderImage, p.ImageURL)
		assert.Nil(t, p.Extra)
	}
}

func TestNormalizeSummary_FieldPrecedence(t *testing.T) {
	p := NormalizeSummary(decode(t, `{
		"_id": "mongo-1",
		"sku": "SKU-1",
		"name": "Desk Lamp",
		"productName": "ignored",
		"handle": "desk-lamp",
		"salePrice": "19.99",
		"minPrice": 5
	}`))

	assert.Equal(t, "mongo-1", p.ID.String())
	assert.Equal(t, "Desk Lamp", p.Title)
	assert.Equal(t, "desk-lamp", p.Slug)
	assert.False(t, p.Price.IsNumber())
	assert.Equal(t, "19.99", p.Price.String())
}

func TestNormalizeSummary_NullFieldsFallThrough(t *testing.T) {
	p := NormalizeSummary(decode(t, `{"id": null, "productId": 77, "title": null, "price": null, "regularPrice": 12.5}`))

	assert.Equal(t, "77", p.ID.String())
	assert.True(t, p.ID.IsNumber())
	assert.Equal(t, domain.DefaultTitle, p.Title)
	assert.Equal(t, "12.5", p.Price.String())
}

func TestNormalizeSummary_ZeroAndEmptyAreDefined(t *testing.T) {
	p := NormalizeSummary(decode(t, `{"id": 0, "price": 0, "salePrice": 10, "title": ""}`))

	assert.Equal(t, "0", p.ID.String())
	assert.Equal(t, "0", p.Price.String())
	assert.Equal(t, "", p.Title)
}

func TestNormalizeSummary_ImageResolution(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"image.url wins", `{"image": {"url": "//cdn.test/a.png"}, "thumbnail": "/t.png"}`, "https://cdn.test/a.png"},
		{"thumbnail before image string", `{"thumbnail": "/t.png", "image": "/i.png"}`, "/t.png"},
		{"image string", `{"image": " /i.png) "}`, "/i.png"},
		{"images[0].url", `{"images": [{"url": "/g0.png"}, {"url": "/g1.png"}]}`, "/g0.png"},
		{"featuredImage", `{"featuredImage": "'/f.png'"}`, "/f.png"},
		{"image object without url resolves to placeholder", `{"image": {"alt": "x"}, "featuredImage": "/f.png"}`, domain.PlaceholderImage},
		{"non-string thumbnail", `{"thumbnail": 5}`, domain.PlaceholderImage},
		{"empty after sanitize", `{"thumbnail": "\"\""}`, domain.PlaceholderImage},
		{"images of strings has no url", `{"images": ["/a.png"]}`, domain.PlaceholderImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NormalizeSummary(decode(t, tt.in))
			assert.Equal(t, tt.want, p.ImageURL)
		})
	}
}

func TestNormalizeSummary_ExtraFieldsDoNotOverride(t *testing.T) {
	p := NormalizeSummary(decode(t, `{
		"id": "p1",
		"title": "Chair",
		"imageUrl": "/raw-should-not-win.png",
		"thumbnail": "/thumb.png",
		"brand": "Acme",
		"stock": 3
	}`))

	assert.Equal(t, "/thumb.png", p.ImageURL)
	want := map[string]any{"thumbnail": "/thumb.png", "brand": "Acme", "stock": 3.0}
	if diff := cmp.Diff(want, p.Extra); diff != "" {
		t.Errorf("extra mismatch (-want +got):\n%s", diff)
	}
}

// --- NormalizeProductList ---

func TestNormalizeProductList_NeverFails(t *testing.T) {
	inputs := []string{
		`{}`, `null`, `[]`, `"text"`, `12`, `true`,
		`{"data": null}`, `{"data": {"data": {"deep": [1, 2]}}}`,
		`{"products": {"not": "array"}}`, `[null, 1, "x", {}]`,
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			res := NormalizeProductList(decode(t, in))
			assert.NotNil(t, res.Products)
		})
	}
}

func TestNormalizeProductList_Shapes(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		shape Shape
		ids   []string
	}{
		{"bare array", `[{"id": "a"}, {"id": "b"}]`, ShapeArray, []string{"a", "b"}},
		{"data.data", `{"data": {"data": [{"id": "a"}]}}`, ShapeDataData, []string{"a"}},
		{"data.products", `{"data": {"products": [{"id": "x"}, {"id": "y"}, {"id": "z"}]}}`, ShapeDataProducts, []string{"x", "y", "z"}},
		{"products", `{"products": [{"id": 1}]}`, ShapeProducts, []string{"1"}},
		{"items", `{"items": [{"sku": "S"}]}`, ShapeItems, []string{"S"}},
		{"data array", `{"data": [{"id": "d"}]}`, ShapeData, []string{"d"}},
		{"nothing", `{"meta": {}}`, ShapeEmpty, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NormalizeProductList(decode(t, tt.in))
			assert.Equal(t, tt.shape, res.Shape)
			ids := make([]string, 0, len(res.Products))
			for _, p := range res.Products {
				ids = append(ids, p.ID.String())
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

func TestNormalizeProductList_DataProductsPreservesOrder(t *testing.T) {
	res := NormalizeProductList(decode(t, `{"data": {"products": [
		{"id": 3, "title": "C"}, {"id": 1, "title": "A"}, {"id": 2, "title": "B"}
	]}}`))

	require.Len(t, res.Products, 3)
	assert.Equal(t, "C", res.Products[0].Title)
	assert.Equal(t, "A", res.Products[1].Title)
	assert.Equal(t, "B", res.Products[2].Title)
}

func TestNormalizeProductList_FirstDefinedNotFirstArray(t *testing.T) {
	res := NormalizeProductList(decode(t, `{"data": {"data": "not-an-array"}, "products": [{"id": "A"}, {"id": "B"}]}`))

	assert.Equal(t, ShapeDataData, res.Shape)
	assert.Empty(t, res.Products)
}

func TestNormalizeProductList_DataObjectDoesNotFallThrough(t *testing.T) {
	res := NormalizeProductList(decode(t, `{"data": {"page": 2}}`))

	assert.Equal(t, ShapeData, res.Shape)
	assert.Empty(t, res.Products)
	require.NotNil(t, res.Meta.Page)
	assert.Equal(t, 2, *res.Meta.Page)
}

func TestNormalizeProductList_MetaPrecedence(t *testing.T) {
	res := NormalizeProductList(decode(t, `{
		"page": 1,
		"data": {"page": 9, "limit": 20, "products": []},
		"meta": {"limit": 50, "total": 120, "totalPages": "6"}
	}`))

	require.NotNil(t, res.Meta.Page)
	require.NotNil(t, res.Meta.Limit)
	require.NotNil(t, res.Meta.Total)
	require.NotNil(t, res.Meta.TotalPages)
	assert.Equal(t, 1, *res.Meta.Page)
	assert.Equal(t, 20, *res.Meta.Limit)
	assert.Equal(t, 120, *res.Meta.Total)
	assert.Equal(t, 6, *res.Meta.TotalPages)
}

func TestNormalizeProductList_MetaAbsentOrInvalid(t *testing.T) {
	res := NormalizeProductList(decode(t, `{"products": [], "page": "first", "meta": {"page": 4}}`))

	assert.Nil(t, res.Meta.Page, "a defined non-numeric value ends the lookup")
	assert.Nil(t, res.Meta.Limit)
	assert.Nil(t, res.Meta.Total)
	assert.Nil(t, res.Meta.TotalPages)
}

func TestNormalizeProductList_MetaRejectsUnusableNumbers(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *int
	}{
		{name: "overflow", in: `{"products": [], "page": 1e20}`},
		{name: "negative", in: `{"products": [], "page": -3}`},
		{name: "fraction", in: `{"products": [], "page": 2.7}`},
		{name: "fractional string", in: `{"products": [], "page": "2.5"}`},
		{name: "infinite string", in: `{"products": [], "page": "Inf"}`},
		{name: "integral string", in: `{"products": [], "page": " 3 "}`, want: intPtr(3)},
		{name: "integral float", in: `{"products": [], "page": 4.0}`, want: intPtr(4)},
		{name: "zero", in: `{"products": [], "page": 0}`, want: intPtr(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NormalizeProductList(decode(t, tt.in))
			assert.Equal(t, tt.want, res.Meta.Page)
		})
	}
}

func TestNormalizeProductList_MetaFromArrayRoot(t *testing.T) {
	res := NormalizeProductList(decode(t, `[{"id": 1}]`))
	assert.Equal(t, domain.PaginationMeta{}, res.Meta)
}

// --- NormalizeProductDetail ---

func TestNormalizeProductDetail_RootUnwrap(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		shape Shape
		title string
	}{
		{"data", `{"data": {"title": "From data"}, "product": {"title": "From product"}}`, ShapeDetailData, "From data"},
		{"product", `{"product": {"title": "From product"}}`, ShapeDetailProduct, "From product"},
		{"root", `{"title": "Root"}`, ShapeDetailRoot, "Root"},
		{"null", `null`, ShapeDetailEmpty, domain.DefaultTitle},
		{"data not object", `{"data": "oops", "title": "Ignored"}`, ShapeDetailData, domain.DefaultTitle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseProductDetail(decode(t, tt.in), "req-slug")
			assert.Equal(t, tt.shape, res.Shape)
			assert.Equal(t, tt.title, res.Product.Title)
		})
	}
}

func TestNormalizeProductDetail_Defaults(t *testing.T) {
	fixedID(t, "gen")

	d := NormalizeProductDetail(decode(t, `{}`), "wanted")

	assert.Equal(t, "wanted", d.Slug)
	assert.Equal(t, "", d.Description)
	assert.True(t, d.Discount.IsNumber())
	assert.True(t, d.Discount.IsZero())
	assert.Equal(t, []string{}, d.Images)
	assert.Equal(t, domain.SpecMapping, d.Specifications.Kind())
	m, ok := d.Specifications.Mapping()
	require.True(t, ok)
	assert.Empty(t, m)
}

func TestNormalizeProductDetail_SlugFromRecord(t *testing.T) {
	d := NormalizeProductDetail(decode(t, `{"data": {"slug": "canonical"}}`), "requested")
	assert.Equal(t, "canonical", d.Slug)

	d = NormalizeProductDetail(decode(t, `{"data": {"handle": "from-handle"}}`), "requested")
	assert.Equal(t, "requested", d.Slug, "only the slug field overrides the requested slug")
}

func TestNormalizeProductDetail_Fields(t *testing.T) {
	d := NormalizeProductDetail(decode(t, `{"product": {
		"id": 10,
		"title": "Kettle",
		"shortDescription": "Boils water",
		"details": "ignored",
		"discountPercentage": 15,
		"brand": "Acme"
	}}`), "kettle")

	assert.Equal(t, "10", d.ID.String())
	assert.Equal(t, "Boils water", d.Description)
	assert.Equal(t, "15", d.Discount.String())
	assert.Equal(t, map[string]any{"shortDescription": "Boils water", "details": "ignored", "discountPercentage": 15.0, "brand": "Acme"}, d.Extra)
}

func TestNormalizeProductDetail_Images(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"mixed entries", `{"images": ["//cdn.test/a.png)", {"url": " /b.png "}, {"alt": "no url"}, 5, ""]}`,
			[]string{"https://cdn.test/a.png", "/b.png", domain.PlaceholderImage, domain.PlaceholderImage, domain.PlaceholderImage}},
		{"gallery", `{"gallery": [{"url": "/g.png"}]}`, []string{"/g.png"}},
		{"images before gallery", `{"images": ["/i.png"], "gallery": ["/g.png"]}`, []string{"/i.png"}},
		{"single image string", `{"image": "/one.png"}`, []string{"/one.png"}},
		{"single image object", `{"image": {"url": "/obj.png"}}`, []string{"/obj.png"}},
		{"empty image string", `{"image": ""}`, []string{}},
		{"images not array", `{"images": "nope", "gallery": ["/g.png"]}`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NormalizeProductDetail(decode(t, tt.in), "s")
			assert.Equal(t, tt.want, d.Images)
		})
	}
}

func TestNormalizeProductDetail_SpecificationsKeepShape(t *testing.T) {
	pairs := NormalizeProductDetail(decode(t, `{"specifications": [{"key": "Color", "value": "Red"}, {"key": "Weight", "value": 2}]}`), "s")
	assert.Equal(t, domain.SpecPairs, pairs.Specifications.Kind())
	want := []any{
		map[string]any{"key": "Color", "value": "Red"},
		map[string]any{"key": "Weight", "value": 2.0},
	}
	if diff := cmp.Diff(want, pairs.Specifications.Raw()); diff != "" {
		t.Errorf("pairs mismatch (-want +got):\n%s", diff)
	}

	mapping := NormalizeProductDetail(decode(t, `{"specs": {"Color": "Red", "Size": "L"}}`), "s")
	assert.Equal(t, domain.SpecMapping, mapping.Specifications.Kind())
	assert.Equal(t, map[string]any{"Color": "Red", "Size": "L"}, mapping.Specifications.Raw())
}

func TestNormalizeProductDetail_SpecificationsPrecedence(t *testing.T) {
	d := NormalizeProductDetail(decode(t, `{"attributes": {"a": 1}, "features": ["f"]}`), "s")
	assert.Equal(t, map[string]any{"a": 1.0}, d.Specifications.Raw())

	d = NormalizeProductDetail(decode(t, `{"features": "waterproof"}`), "s")
	assert.Equal(t, domain.SpecOther, d.Specifications.Kind())
}

func TestNormalizeProductDetail_JSONRoundTripShape(t *testing.T) {
	d := NormalizeProductDetail(decode(t, `{"data": {"id": "p", "title": "T", "price": "9.50", "images": ["/a.png"], "specs": [{"key": "k", "value": "v"}]}}`), "p")

	b, err := json.Marshal(d)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "p", out["id"])
	assert.Equal(t, "9.50", out["price"])
	assert.Equal(t, "/file.svg", out["imageUrl"])
	assert.Equal(t, []any{"/a.png"}, out["images"])
	assert.Equal(t, []any{map[string]any{"key": "k", "value": "v"}}, out["specifications"])
	assert.Equal(t, 0.0, out["discount"])
}
