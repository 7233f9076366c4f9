package orders

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestOrderTotals(t *testing.T) {
	o := Order{
		Discount: ptr(10),
		Items: []Item{
			{Price: 100, Quantity: 2},
			{Price: 50, Quantity: 1},
		},
	}
	require.Equal(t, int64(250), o.RawTotal())
	require.Equal(t, "225", o.TotalPrice().String())

	o.Discount = nil
	require.Equal(t, "250", o.TotalPrice().String())
}

func TestOrderTotals_Fractional(t *testing.T) {
	o := Order{Discount: ptr(15), Items: []Item{{Price: 33, Quantity: 3}}}
	require.Equal(t, "84.15", o.TotalPrice().String())
}

func TestItemTotalPrice(t *testing.T) {
	require.Equal(t, int64(300), Item{Price: 100, Quantity: 3}.TotalPrice())
	require.Equal(t, int64(0), Item{Price: 100}.TotalPrice())
}

func TestOrderJSON(t *testing.T) {
	o := Order{ID: 9, Discount: ptr(10), Items: []Item{{ID: 1, ProductName: "Cap", Price: 100, Quantity: 2}}}
	b, err := json.Marshal(o)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	require.Equal(t, "180", got["total_price"])
	require.EqualValues(t, 1, got["items_count"])

	items := got["items"].([]any)
	require.Len(t, items, 1)
	require.EqualValues(t, 200, items[0].(map[string]any)["item_total_price"])
}

func TestOrderInputCheck(t *testing.T) {
	require.NoError(t, OrderInput{Items: []ItemInput{{ProductID: 1, Quantity: 1}}}.Check())
	require.ErrorIs(t, OrderInput{Discount: ptr(101)}.Check(), ErrInvalidInput)
	require.ErrorIs(t, OrderInput{Items: []ItemInput{{ProductID: 1, Quantity: -2}}}.Check(), ErrInvalidInput)
	require.ErrorIs(t, OrderInput{Items: []ItemInput{{ProductID: 1, Price: ptr(int64(-5))}}}.Check(), ErrInvalidInput)
}

func TestOrderPatchCheck(t *testing.T) {
	require.NoError(t, OrderPatch{IsPaid: ptr(true)}.Check())
	require.NoError(t, OrderPatch{ClearDiscount: true}.Check())
	require.ErrorIs(t, OrderPatch{ClearDiscount: true, Discount: ptr(5)}.Check(), ErrInvalidInput)
	require.ErrorIs(t, OrderPatch{Discount: ptr(-5)}.Check(), ErrInvalidInput)
}
