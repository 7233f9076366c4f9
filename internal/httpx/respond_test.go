package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-shop-admin.git/internal/catalog"
	"github.com/ariefcatur/go-shop-admin.git/internal/listing"
	"github.com/ariefcatur/go-shop-admin.git/internal/orders"
	"github.com/ariefcatur/go-shop-admin.git/internal/postgres"
	"github.com/ariefcatur/go-shop-admin.git/internal/pricing"
)

func TestStatusOf(t *testing.T) {
	cases := map[error]int{
		listing.ErrBadParam:        http.StatusBadRequest,
		catalog.ErrInvalidInput:    http.StatusBadRequest,
		catalog.ErrUnknownBand:     http.StatusBadRequest,
		orders.ErrInvalidInput:     http.StatusBadRequest,
		pricing.ErrInvalidDiscount: http.StatusBadRequest,
		postgres.ErrInvalid:        http.StatusBadRequest,
		postgres.ErrNoRef:          http.StatusBadRequest,
		postgres.ErrNotFound:       http.StatusNotFound,
		postgres.ErrDuplicate:      http.StatusConflict,
		postgres.ErrProtected:      http.StatusConflict,
		errors.New("boom"):         http.StatusInternalServerError,
	}
	for err, want := range cases {
		require.Equal(t, want, statusOf(fmt.Errorf("wrapped: %w", err)), err.Error())
	}
}
