package httpx

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ariefcatur/go-shop-admin.git/internal/catalog"
)

type StorefrontStore interface {
	ActiveProducts(ctx context.Context) ([]catalog.Product, error)
	SearchActive(ctx context.Context, term string) ([]catalog.Product, error)
	GetActive(ctx context.Context, id int64) (catalog.Product, error)
}

type ViewCache interface {
	GetDetail(ctx context.Context, productID int64, out any) (bool, error)
	SetDetail(ctx context.Context, productID int64, v any) error
	GetListing(ctx context.Context, out any) (bool, error)
	SetListing(ctx context.Context, v any) error
}

// ProductView is a storefront product with its display strings.
type ProductView struct {
	catalog.Product
	ColorsString string `json:"colors_string"`
	SizesString  string `json:"sizes_string"`
	LowestPrice  *int64 `json:"lowest_price,omitempty"`
}

func viewOf(p catalog.Product) ProductView {
	v := ProductView{Product: p, ColorsString: p.ColorsString(), SizesString: p.SizesString()}
	if lp, ok := p.LowestPrice(); ok {
		v.LowestPrice = &lp
	}
	return v
}

func viewsOf(ps []catalog.Product) []ProductView {
	out := make([]ProductView, 0, len(ps))
	for _, p := range ps {
		out = append(out, viewOf(p))
	}
	return out
}

type StorefrontHandler struct {
	Store StorefrontStore
	Cache ViewCache
	Log   *zap.Logger
}

func (h *StorefrontHandler) Register(r chi.Router) {
	r.Get("/", h.listProducts)
	r.Get("/product/{product_id}/detail/", h.productDetail)
	r.Get("/search/", h.search)
}

func (h *StorefrontHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	var cached []ProductView
	if ok, err := h.Cache.GetListing(ctx, &cached); err != nil {
		h.Log.Warn("listing cache read", zap.Error(err))
	} else if ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	ps, err := h.Store.ActiveProducts(ctx)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	views := viewsOf(ps)
	if err := h.Cache.SetListing(ctx, views); err != nil {
		h.Log.Warn("listing cache write", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *StorefrontHandler) productDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "product_id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	var cached ProductView
	if ok, err := h.Cache.GetDetail(ctx, id, &cached); err != nil {
		h.Log.Warn("detail cache read", zap.Int64("product_id", id), zap.Error(err))
	} else if ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	p, err := h.Store.GetActive(ctx, id)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	view := viewOf(p)
	if err := h.Cache.SetDetail(ctx, id, view); err != nil {
		h.Log.Warn("detail cache write", zap.Int64("product_id", id), zap.Error(err))
	}
	writeJSON(w, http.StatusOK, view)
}

// search is never cached; an empty q matches every active product.
func (h *StorefrontHandler) search(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ps, err := h.Store.SearchActive(ctx, strings.TrimSpace(r.URL.Query().Get("q")))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, viewsOf(ps))
}
