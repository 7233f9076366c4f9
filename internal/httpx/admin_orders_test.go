package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ariefcatur/go-shop-admin.git/internal/events"
	"github.com/ariefcatur/go-shop-admin.git/internal/listing"
	"github.com/ariefcatur/go-shop-admin.git/internal/orders"
	"github.com/ariefcatur/go-shop-admin.git/internal/postgres"
)

type fakeOrders struct {
	OrderStore
	byID       map[int64]orders.Order
	lastFilter orders.Filter
}

func (f *fakeOrders) Get(_ context.Context, id int64) (orders.Order, error) {
	o, ok := f.byID[id]
	if !ok {
		return orders.Order{}, fmt.Errorf("get order %d: %w", id, postgres.ErrNotFound)
	}
	return o, nil
}

func (f *fakeOrders) CreateTx(_ context.Context, in orders.OrderInput) (orders.Order, error) {
	if err := in.Check(); err != nil {
		return orders.Order{}, err
	}
	o := orders.Order{ID: int64(len(f.byID) + 1), IsPaid: in.IsPaid, Discount: in.Discount}
	for i, it := range in.Items {
		price := int64(0)
		if it.Price != nil {
			price = *it.Price
		}
		o.Items = append(o.Items, orders.Item{ID: int64(i + 1), OrderID: o.ID, ProductID: it.ProductID, Quantity: it.Quantity, Price: price})
	}
	f.byID[o.ID] = o
	return o, nil
}

func (f *fakeOrders) List(_ context.Context, flt orders.Filter, _ listing.Params) ([]orders.Row, int, error) {
	f.lastFilter = flt
	return nil, 0, nil
}

type fakeItems struct {
	ItemStore
}

func (fakeItems) Delete(context.Context, int64) (int64, error) { return 1, nil }

func ordersFixture() (*fakeOrders, *memPublisher, http.Handler) {
	store := &fakeOrders{byID: map[int64]orders.Order{}}
	pub := &memPublisher{}
	admin := &OrdersAdmin{
		Orders: store,
		Items:  fakeItems{},
		Events: &Emitter{Orders: pub, Service: "test", Log: zap.NewNop()},
		Log:    zap.NewNop(),
	}
	return store, pub, adminRouter(admin.Register)
}

func TestOrders_CreateComputesTotals(t *testing.T) {
	_, pub, h := ordersFixture()

	rec := do(t, h, http.MethodPost, "/admin/orders/",
		`{"discount":10,"items":[{"product_id":1,"quantity":2,"price":100},{"product_id":2,"quantity":1,"price":50}]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decode[map[string]any](t, rec)
	require.Equal(t, "225", body["total_price"])
	require.EqualValues(t, 2, body["items_count"])
	first := body["items"].([]any)[0].(map[string]any)
	require.EqualValues(t, 200, first["item_total_price"])

	require.Equal(t, []string{events.OrderSaved}, pub.types())
	var payload events.OrderPayload
	require.NoError(t, json.Unmarshal(pub.msgs[0].Env.Payload, &payload))
	require.Equal(t, "225", payload.TotalPrice)
	require.Equal(t, 2, payload.ItemsCount)
}

func TestOrders_CreateRejectsDiscount(t *testing.T) {
	_, pub, h := ordersFixture()

	rec := do(t, h, http.MethodPost, "/admin/orders/", `{"discount":101,"items":[]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "must be <= 100", decode[errorBody](t, rec).Fields["discount"])

	rec = do(t, h, http.MethodPost, "/admin/orders/", `{"items":[{"quantity":1}]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "is required", decode[errorBody](t, rec).Fields["items[0].product_id"])
	require.Empty(t, pub.types())
}

func TestOrders_ListFilter(t *testing.T) {
	store, _, h := ordersFixture()

	rec := do(t, h, http.MethodGet, "/admin/orders/?is_paid=true&created=today", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, *store.lastFilter.IsPaid)
	require.Equal(t, listing.Today, store.lastFilter.Created)
}

func TestOrders_GetMissing(t *testing.T) {
	_, _, h := ordersFixture()

	rec := do(t, h, http.MethodGet, "/admin/orders/42", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestItems_DeleteRepublishesOrder(t *testing.T) {
	store, pub, h := ordersFixture()
	store.byID[1] = orders.Order{ID: 1, IsPaid: true}

	rec := do(t, h, http.MethodDelete, "/admin/items/5", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, []string{events.OrderSaved}, pub.types())
	require.Equal(t, "1", pub.msgs[0].Key)
}
