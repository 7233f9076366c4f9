package httpx

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ariefcatur/go-shop-admin.git/internal/catalog"
	"github.com/ariefcatur/go-shop-admin.git/internal/postgres"
)

type fakeStorefront struct {
	products    map[int64]catalog.Product
	activeCalls int
	lastTerm    string
}

func (f *fakeStorefront) ActiveProducts(context.Context) ([]catalog.Product, error) {
	f.activeCalls++
	var out []catalog.Product
	for id := int64(1); id <= int64(len(f.products)); id++ {
		if p, ok := f.products[id]; ok && p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStorefront) SearchActive(_ context.Context, term string) ([]catalog.Product, error) {
	f.lastTerm = term
	return f.ActiveProducts(context.Background())
}

func (f *fakeStorefront) GetActive(_ context.Context, id int64) (catalog.Product, error) {
	p, ok := f.products[id]
	if !ok || !p.IsActive {
		return catalog.Product{}, fmt.Errorf("get product %d: %w", id, postgres.ErrNotFound)
	}
	return p, nil
}

func storefront() (*fakeStorefront, *memCache, http.Handler) {
	store := &fakeStorefront{products: map[int64]catalog.Product{
		1: {
			ID: 1, Name: "Cap", Slug: "cap", IsActive: true,
			Colors:   []catalog.Option{{ID: 1, Name: "red"}, {ID: 2, Name: "blue"}},
			Images:   []catalog.Image{{ID: 1, ProductID: 1, Image: "cap.jpg"}},
			Variants: []catalog.Variant{{ID: 1, ProductID: 1, Price: 200, Discount: ptr(10), Inventory: 4}},
		},
		2: {ID: 2, Name: "Hidden", Slug: "hidden", IsActive: false},
	}}
	cache := newMemCache()
	r := NewRouter(zap.NewNop())
	(&StorefrontHandler{Store: store, Cache: cache, Log: zap.NewNop()}).Register(r)
	return store, cache, r
}

func TestStorefront_ListingIsCached(t *testing.T) {
	store, cache, h := storefront()

	rec := do(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	views := decode[[]ProductView](t, rec)
	require.Len(t, views, 1)
	require.Equal(t, "red - blue", views[0].ColorsString)
	require.Len(t, views[0].Images, 1)

	rec = do(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, store.activeCalls, "second read is served from cache")

	require.NoError(t, cache.Invalidate(context.Background(), 1))
	do(t, h, http.MethodGet, "/", "")
	require.Equal(t, 2, store.activeCalls)
}

func TestStorefront_Detail(t *testing.T) {
	_, _, h := storefront()

	rec := do(t, h, http.MethodGet, "/product/1/detail/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]any](t, rec)
	require.Equal(t, "red - blue", body["colors_string"])
	require.EqualValues(t, 180, body["lowest_price"])
	variant := body["variants"].([]any)[0].(map[string]any)
	require.EqualValues(t, 180, variant["total_price"])
	require.Equal(t, "low", variant["inventory_band"])
}

func TestStorefront_DetailErrors(t *testing.T) {
	_, _, h := storefront()

	rec := do(t, h, http.MethodGet, "/product/abc/detail/", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/product/2/detail/", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "not found", decode[errorBody](t, rec).Error)

	rec = do(t, h, http.MethodGet, "/product/99/detail/", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStorefront_Search(t *testing.T) {
	store, _, h := storefront()

	rec := do(t, h, http.MethodGet, "/search/?q=+cap+", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "cap", store.lastTerm)
	require.Len(t, decode[[]ProductView](t, rec), 1)
}

func TestHealthz(t *testing.T) {
	rec := do(t, NewRouter(zap.NewNop()), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}
