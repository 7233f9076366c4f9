package httpx

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ariefcatur/go-shop-admin.git/internal/catalog"
	"github.com/ariefcatur/go-shop-admin.git/internal/events"
	"github.com/ariefcatur/go-shop-admin.git/internal/listing"
)

type ProductStore interface {
	List(ctx context.Context, f catalog.ProductFilter, p listing.Params) ([]catalog.ProductRow, int, error)
	Get(ctx context.Context, id int64) (catalog.Product, error)
	Create(ctx context.Context, in catalog.ProductInput) (catalog.Product, error)
	Update(ctx context.Context, id int64, patch catalog.ProductPatch) (catalog.Product, error)
	Delete(ctx context.Context, id int64) error
}

type ImageStore interface {
	List(ctx context.Context, productID *int64, p listing.Params) ([]catalog.Image, int, error)
	Get(ctx context.Context, id int64) (catalog.Image, error)
	Create(ctx context.Context, productID int64, in catalog.ImageInput) (catalog.Image, error)
	Update(ctx context.Context, id int64, patch catalog.ImagePatch) (catalog.Image, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type VariantStore interface {
	List(ctx context.Context, f catalog.VariantFilter, p listing.Params) ([]catalog.Variant, int, error)
	Get(ctx context.Context, id int64) (catalog.Variant, error)
	Create(ctx context.Context, productID int64, in catalog.VariantInput) (catalog.Variant, error)
	Update(ctx context.Context, id int64, in catalog.VariantInput) (catalog.Variant, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type OptionStore interface {
	List(ctx context.Context, p listing.Params) ([]catalog.Option, int, error)
	Get(ctx context.Context, id int64) (catalog.Option, error)
	Create(ctx context.Context, name string) (catalog.Option, error)
	Rename(ctx context.Context, id int64, name string) (catalog.Option, error)
	Delete(ctx context.Context, id int64) error
	ProductIDs(ctx context.Context, id int64) ([]int64, error)
}

type Invalidator interface {
	Invalidate(ctx context.Context, productIDs ...int64) error
}

// CatalogAdmin serves the product, image, variant, color and size admin endpoints.
type CatalogAdmin struct {
	Products ProductStore
	Images   ImageStore
	Variants VariantStore
	Colors   OptionStore
	Sizes    OptionStore
	Cache    Invalidator
	Events   *Emitter
	Log      *zap.Logger
}

func (h *CatalogAdmin) Register(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.listProducts)
		r.Post("/", h.createProduct)
		r.Get("/{id}", h.getProduct)
		r.Patch("/{id}", h.updateProduct)
		r.Delete("/{id}", h.deleteProduct)
		r.Post("/{id}/images", h.createImage)
		r.Post("/{id}/variants", h.createVariant)
	})
	r.Route("/images", func(r chi.Router) {
		r.Get("/", h.listImages)
		r.Get("/{id}", h.getImage)
		r.Patch("/{id}", h.updateImage)
		r.Delete("/{id}", h.deleteImage)
	})
	r.Route("/variants", func(r chi.Router) {
		r.Get("/", h.listVariants)
		r.Get("/{id}", h.getVariant)
		r.Put("/{id}", h.updateVariant)
		r.Delete("/{id}", h.deleteVariant)
	})
	r.Route("/colors", func(r chi.Router) { h.registerOptions(r, h.Colors) })
	r.Route("/sizes", func(r chi.Router) { h.registerOptions(r, h.Sizes) })
}

// invalidate is best effort: the cachesync worker repeats it on the event.
func (h *CatalogAdmin) invalidate(ctx context.Context, ids ...int64) {
	if err := h.Cache.Invalidate(ctx, ids...); err != nil {
		h.Log.Warn("cache invalidate", zap.Int64s("product_ids", ids), zap.Error(err))
	}
}

// ---- products ----

func parseProductFilter(r *http.Request) (catalog.ProductFilter, error) {
	q := r.URL.Query()
	var f catalog.ProductFilter
	if s := q.Get("status"); s != "" {
		st := catalog.Status(s)
		if !st.Valid() {
			return f, fmt.Errorf("%w: status=%q", listing.ErrBadParam, s)
		}
		f.Status = &st
	}
	var err error
	if f.IsActive, err = listing.ParseBool("is_active", q.Get("is_active")); err != nil {
		return f, err
	}
	if f.Created, err = listing.ParseDateRange(q.Get("created")); err != nil {
		return f, err
	}
	return f, nil
}

func (h *CatalogAdmin) listProducts(w http.ResponseWriter, r *http.Request) {
	p, err := listing.ParseParams(r.URL.Query())
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	f, err := parseProductFilter(r)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	rows, count, err := h.Products.List(r.Context(), f, p)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, listing.NewPage(rows, count, p))
}

func (h *CatalogAdmin) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	p, err := h.Products.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(p))
}

func (h *CatalogAdmin) createProduct(w http.ResponseWriter, r *http.Request) {
	var in catalog.ProductInput
	if err := bind(r, &in); err != nil {
		writeError(w, h.Log, err)
		return
	}
	p, err := h.Products.Create(r.Context(), in)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.productSaved(r, p)
	writeJSON(w, http.StatusCreated, viewOf(p))
}

func (h *CatalogAdmin) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	var patch catalog.ProductPatch
	if err := bind(r, &patch); err != nil {
		writeError(w, h.Log, err)
		return
	}
	p, err := h.Products.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.productSaved(r, p)
	writeJSON(w, http.StatusOK, viewOf(p))
}

func (h *CatalogAdmin) productSaved(r *http.Request, p catalog.Product) {
	h.invalidate(r.Context(), p.ID)
	h.Events.catalog(r, events.ProductSaved, p.ID, events.ProductPayload{ProductID: p.ID, Slug: p.Slug, IsActive: &p.IsActive})
}

func (h *CatalogAdmin) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := h.Products.Delete(r.Context(), id); err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.invalidate(r.Context(), id)
	h.Events.catalog(r, events.ProductDeleted, id, events.ProductPayload{ProductID: id})
	w.WriteHeader(http.StatusNoContent)
}

// ---- images ----

func (h *CatalogAdmin) listImages(w http.ResponseWriter, r *http.Request) {
	p, err := listing.ParseParams(r.URL.Query())
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	productID, err := listing.ParseID("product", r.URL.Query().Get("product"))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	items, count, err := h.Images.List(r.Context(), productID, p)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, listing.NewPage(items, count, p))
}

func (h *CatalogAdmin) getImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	im, err := h.Images.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, im)
}

func (h *CatalogAdmin) createImage(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	var in catalog.ImageInput
	if err := bind(r, &in); err != nil {
		writeError(w, h.Log, err)
		return
	}
	im, err := h.Images.Create(r.Context(), productID, in)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.imageChanged(r, events.ImageSaved, im.ID, im.ProductID)
	writeJSON(w, http.StatusCreated, im)
}

func (h *CatalogAdmin) updateImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	var patch catalog.ImagePatch
	if err := bind(r, &patch); err != nil {
		writeError(w, h.Log, err)
		return
	}
	im, err := h.Images.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.imageChanged(r, events.ImageSaved, im.ID, im.ProductID)
	writeJSON(w, http.StatusOK, im)
}

func (h *CatalogAdmin) deleteImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	productID, err := h.Images.Delete(r.Context(), id)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.imageChanged(r, events.ImageDeleted, id, productID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogAdmin) imageChanged(r *http.Request, eventType string, imageID, productID int64) {
	h.invalidate(r.Context(), productID)
	h.Events.catalog(r, eventType, productID, events.ImagePayload{ImageID: imageID, ProductID: productID})
}

// ---- variants ----

func parseVariantFilter(r *http.Request) (catalog.VariantFilter, error) {
	q := r.URL.Query()
	var f catalog.VariantFilter
	var err error
	if f.ProductID, err = listing.ParseID("product", q.Get("product")); err != nil {
		return f, err
	}
	if s := q.Get("inventory"); s != "" {
		if f.Band, err = catalog.ParseBand(s); err != nil {
			return f, err
		}
	}
	return f, nil
}

func (h *CatalogAdmin) listVariants(w http.ResponseWriter, r *http.Request) {
	p, err := listing.ParseParams(r.URL.Query())
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	f, err := parseVariantFilter(r)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	vs, count, err := h.Variants.List(r.Context(), f, p)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, listing.NewPage(vs, count, p))
}

func (h *CatalogAdmin) getVariant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	v, err := h.Variants.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *CatalogAdmin) createVariant(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	var in catalog.VariantInput
	if err := bind(r, &in); err != nil {
		writeError(w, h.Log, err)
		return
	}
	v, err := h.Variants.Create(r.Context(), productID, in)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.variantSaved(r, v)
	writeJSON(w, http.StatusCreated, v)
}

func (h *CatalogAdmin) updateVariant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	var in catalog.VariantInput
	if err := bind(r, &in); err != nil {
		writeError(w, h.Log, err)
		return
	}
	v, err := h.Variants.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.variantSaved(r, v)
	writeJSON(w, http.StatusOK, v)
}

func (h *CatalogAdmin) variantSaved(r *http.Request, v catalog.Variant) {
	h.invalidate(r.Context(), v.ProductID)
	h.Events.catalog(r, events.VariantSaved, v.ProductID, events.VariantPayload{
		VariantID: v.ID, ProductID: v.ProductID, Inventory: v.Inventory, Band: string(v.Band()),
	})
}

func (h *CatalogAdmin) deleteVariant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	productID, err := h.Variants.Delete(r.Context(), id)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.invalidate(r.Context(), productID)
	h.Events.catalog(r, events.VariantDeleted, productID, events.VariantPayload{VariantID: id, ProductID: productID})
	w.WriteHeader(http.StatusNoContent)
}

// ---- colors & sizes ----

type optionBody struct {
	Name string `json:"name" validate:"required,max=255"`
}

func (h *CatalogAdmin) registerOptions(r chi.Router, store OptionStore) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		p, err := listing.ParseParams(r.URL.Query())
		if err != nil {
			writeError(w, h.Log, err)
			return
		}
		opts, count, err := store.List(r.Context(), p)
		if err != nil {
			writeError(w, h.Log, err)
			return
		}
		writeJSON(w, http.StatusOK, listing.NewPage(opts, count, p))
	})
	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		var body optionBody
		if err := bind(r, &body); err != nil {
			writeError(w, h.Log, err)
			return
		}
		o, err := store.Create(r.Context(), body.Name)
		if err != nil {
			writeError(w, h.Log, err)
			return
		}
		writeJSON(w, http.StatusCreated, o)
	})
	r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, h.Log, err)
			return
		}
		o, err := store.Get(r.Context(), id)
		if err != nil {
			writeError(w, h.Log, err)
			return
		}
		writeJSON(w, http.StatusOK, o)
	})
	r.Patch("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, h.Log, err)
			return
		}
		var body optionBody
		if err := bind(r, &body); err != nil {
			writeError(w, h.Log, err)
			return
		}
		o, err := store.Rename(r.Context(), id, body.Name)
		if err != nil {
			writeError(w, h.Log, err)
			return
		}
		h.optionChanged(r, store, id)
		writeJSON(w, http.StatusOK, o)
	})
	r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, h.Log, err)
			return
		}
		// affected products must be read before the cascade removes the links
		affected, err := store.ProductIDs(r.Context(), id)
		if err != nil {
			writeError(w, h.Log, err)
			return
		}
		if err := store.Delete(r.Context(), id); err != nil {
			writeError(w, h.Log, err)
			return
		}
		h.productsTouched(r, affected)
		w.WriteHeader(http.StatusNoContent)
	})
}

func (h *CatalogAdmin) optionChanged(r *http.Request, store OptionStore, id int64) {
	affected, err := store.ProductIDs(r.Context(), id)
	if err != nil {
		h.Log.Warn("option products", zap.Int64("option_id", id), zap.Error(err))
		h.invalidate(r.Context())
		return
	}
	h.productsTouched(r, affected)
}

// productsTouched refreshes the views of products whose display changed through a color or size.
func (h *CatalogAdmin) productsTouched(r *http.Request, ids []int64) {
	h.invalidate(r.Context(), ids...)
	for _, id := range ids {
		h.Events.catalog(r, events.ProductSaved, id, events.ProductPayload{ProductID: id})
	}
}
