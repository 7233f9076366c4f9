package httpx

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ariefcatur/go-shop-admin.git/internal/events"
	"github.com/ariefcatur/go-shop-admin.git/internal/listing"
	"github.com/ariefcatur/go-shop-admin.git/internal/orders"
)

type OrderStore interface {
	List(ctx context.Context, f orders.Filter, p listing.Params) ([]orders.Row, int, error)
	Get(ctx context.Context, id int64) (orders.Order, error)
	CreateTx(ctx context.Context, in orders.OrderInput) (orders.Order, error)
	Update(ctx context.Context, id int64, patch orders.OrderPatch) (orders.Order, error)
	Delete(ctx context.Context, id int64) error
}

type ItemStore interface {
	List(ctx context.Context, orderID *int64, p listing.Params) ([]orders.Item, int, error)
	Get(ctx context.Context, id int64) (orders.Item, error)
	Create(ctx context.Context, orderID int64, in orders.ItemInput) (orders.Item, error)
	Update(ctx context.Context, id int64, patch orders.ItemPatch) (orders.Item, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type OrdersAdmin struct {
	Orders OrderStore
	Items  ItemStore
	Events *Emitter
	Log    *zap.Logger
}

func (h *OrdersAdmin) Register(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.listOrders)
		r.Post("/", h.createOrder)
		r.Get("/{id}", h.getOrder)
		r.Patch("/{id}", h.updateOrder)
		r.Delete("/{id}", h.deleteOrder)
		r.Post("/{id}/items", h.createItem)
	})
	r.Route("/items", func(r chi.Router) {
		r.Get("/", h.listItems)
		r.Get("/{id}", h.getItem)
		r.Patch("/{id}", h.updateItem)
		r.Delete("/{id}", h.deleteItem)
	})
}

func (h *OrdersAdmin) orderSaved(r *http.Request, o orders.Order) {
	h.Events.orders(r, events.OrderSaved, o.ID, events.OrderPayload{
		OrderID:    o.ID,
		IsPaid:     o.IsPaid,
		ItemsCount: len(o.Items),
		TotalPrice: o.TotalPrice().String(),
	})
}

// orderTouched republishes the order after one of its items changed.
func (h *OrdersAdmin) orderTouched(r *http.Request, orderID int64) {
	o, err := h.Orders.Get(r.Context(), orderID)
	if err != nil {
		h.Log.Warn("reload order for event", zap.Int64("order_id", orderID), zap.Error(err))
		return
	}
	h.orderSaved(r, o)
}

// ---- orders ----

func (h *OrdersAdmin) listOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p, err := listing.ParseParams(q)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	var f orders.Filter
	if f.IsPaid, err = listing.ParseBool("is_paid", q.Get("is_paid")); err != nil {
		writeError(w, h.Log, err)
		return
	}
	if f.Created, err = listing.ParseDateRange(q.Get("created")); err != nil {
		writeError(w, h.Log, err)
		return
	}
	rows, count, err := h.Orders.List(r.Context(), f, p)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, listing.NewPage(rows, count, p))
}

func (h *OrdersAdmin) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	o, err := h.Orders.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersAdmin) createOrder(w http.ResponseWriter, r *http.Request) {
	var in orders.OrderInput
	if err := bind(r, &in); err != nil {
		writeError(w, h.Log, err)
		return
	}
	o, err := h.Orders.CreateTx(r.Context(), in)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.orderSaved(r, o)
	writeJSON(w, http.StatusCreated, o)
}

func (h *OrdersAdmin) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	var patch orders.OrderPatch
	if err := bind(r, &patch); err != nil {
		writeError(w, h.Log, err)
		return
	}
	o, err := h.Orders.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.orderSaved(r, o)
	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersAdmin) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := h.Orders.Delete(r.Context(), id); err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.Events.orders(r, events.OrderDeleted, id, events.OrderPayload{OrderID: id})
	w.WriteHeader(http.StatusNoContent)
}

// ---- items ----

func (h *OrdersAdmin) listItems(w http.ResponseWriter, r *http.Request) {
	p, err := listing.ParseParams(r.URL.Query())
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	orderID, err := listing.ParseID("order", r.URL.Query().Get("order"))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	items, count, err := h.Items.List(r.Context(), orderID, p)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, listing.NewPage(items, count, p))
}

func (h *OrdersAdmin) getItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	it, err := h.Items.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *OrdersAdmin) createItem(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	var in orders.ItemInput
	if err := bind(r, &in); err != nil {
		writeError(w, h.Log, err)
		return
	}
	it, err := h.Items.Create(r.Context(), orderID, in)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.orderTouched(r, it.OrderID)
	writeJSON(w, http.StatusCreated, it)
}

func (h *OrdersAdmin) updateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	var patch orders.ItemPatch
	if err := bind(r, &patch); err != nil {
		writeError(w, h.Log, err)
		return
	}
	it, err := h.Items.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.orderTouched(r, it.OrderID)
	writeJSON(w, http.StatusOK, it)
}

func (h *OrdersAdmin) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	orderID, err := h.Items.Delete(r.Context(), id)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.orderTouched(r, orderID)
	w.WriteHeader(http.StatusNoContent)
}
