//go:build integration

package orders

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/ariefcatur/go-shop-admin.git/internal/catalog"
	"github.com/ariefcatur/go-shop-admin.git/internal/listing"
	"github.com/ariefcatur/go-shop-admin.git/internal/postgres"
	"github.com/ariefcatur/go-shop-admin.git/internal/postgres/pgtest"
)

type RepoSuite struct {
	pgtest.BaseSuite
	orders   *Repo
	items    *ItemRepo
	products *catalog.ProductRepo
}

func TestRepoSuite(t *testing.T) {
	suite.Run(t, new(RepoSuite))
}

func (s *RepoSuite) SetupSuite() {
	s.BaseSuite.SetupSuite()
	s.orders = &Repo{DB: s.DB}
	s.items = &ItemRepo{DB: s.DB}
	s.products = &catalog.ProductRepo{DB: s.DB}
}

func (s *RepoSuite) product(name string, variants ...catalog.VariantInput) catalog.Product {
	p, err := s.products.Create(s.Ctx, catalog.ProductInput{Name: name, Variants: variants})
	s.Require().NoError(err)
	return p
}

func (s *RepoSuite) TestCreateOrderTotals() {
	a, b := s.product("A"), s.product("B")

	price100, price50 := int64(100), int64(50)
	discount := 10
	o, err := s.orders.CreateTx(s.Ctx, OrderInput{
		Discount: &discount,
		Items: []ItemInput{
			{ProductID: a.ID, Quantity: 2, Price: &price100},
			{ProductID: b.ID, Quantity: 1, Price: &price50},
		},
	})
	s.Require().NoError(err)
	s.Equal(int64(250), o.RawTotal())
	s.Equal("225", o.TotalPrice().String())
	s.False(o.IsPaid)
	s.Equal("A", o.Items[0].ProductName)

	rows, count, err := s.orders.List(s.Ctx, Filter{}, listing.Params{Page: 1, PerPage: 10})
	s.Require().NoError(err)
	s.Equal(1, count)
	s.Equal(2, rows[0].ItemsCount)
	s.Equal("225", rows[0].TotalPrice.String())
}

func (s *RepoSuite) TestPriceCapturedFromCheapestVariant() {
	p := s.product("Cap",
		catalog.VariantInput{Price: 200, Discount: ptr(10)},
		catalog.VariantInput{Price: 170},
	)

	o, err := s.orders.CreateTx(s.Ctx, OrderInput{Items: []ItemInput{{ProductID: p.ID, Quantity: 3}}})
	s.Require().NoError(err)
	s.Equal(int64(170), o.Items[0].Price)
	s.Equal(int64(510), o.Items[0].TotalPrice())

	bare := s.product("Bare")
	_, err = s.orders.CreateTx(s.Ctx, OrderInput{Items: []ItemInput{{ProductID: bare.ID, Quantity: 1}}})
	s.ErrorIs(err, ErrInvalidInput)
	s.Equal(1, s.Count("orders"), "failed create leaves no order behind")
}

func (s *RepoSuite) TestProductDeleteProtected() {
	p := s.product("Cap", catalog.VariantInput{Price: 10})
	o, err := s.orders.CreateTx(s.Ctx, OrderInput{Items: []ItemInput{{ProductID: p.ID, Quantity: 1}}})
	s.Require().NoError(err)

	s.ErrorIs(s.products.Delete(s.Ctx, p.ID), postgres.ErrProtected)
	s.Equal(1, s.Count("variants"))

	s.Require().NoError(s.orders.Delete(s.Ctx, o.ID))
	s.Equal(0, s.Count("order_items"))
	s.Require().NoError(s.products.Delete(s.Ctx, p.ID))
}

func (s *RepoSuite) TestUpdateDiscount() {
	o, err := s.orders.CreateTx(s.Ctx, OrderInput{})
	s.Require().NoError(err)

	paid, discount := true, 15
	o, err = s.orders.Update(s.Ctx, o.ID, OrderPatch{IsPaid: &paid, Discount: &discount})
	s.Require().NoError(err)
	s.True(o.IsPaid)
	s.Equal(15, *o.Discount)

	o, err = s.orders.Update(s.Ctx, o.ID, OrderPatch{ClearDiscount: true})
	s.Require().NoError(err)
	s.Nil(o.Discount)
	s.True(o.IsPaid)

	rows, count, err := s.orders.List(s.Ctx, Filter{IsPaid: &paid}, listing.Params{Page: 1, PerPage: 10})
	s.Require().NoError(err)
	s.Equal(1, count)
	s.Equal("0", rows[0].TotalPrice.String())

	_, err = s.orders.Update(s.Ctx, 99, OrderPatch{IsPaid: &paid})
	s.ErrorIs(err, postgres.ErrNotFound)
}

func (s *RepoSuite) TestItemWrites() {
	p := s.product("Cap", catalog.VariantInput{Price: 40})
	o, err := s.orders.CreateTx(s.Ctx, OrderInput{})
	s.Require().NoError(err)

	it, err := s.items.Create(s.Ctx, o.ID, ItemInput{ProductID: p.ID, Quantity: 2})
	s.Require().NoError(err)
	s.Equal(int64(80), it.TotalPrice())

	qty := 5
	it, err = s.items.Update(s.Ctx, it.ID, ItemPatch{Quantity: &qty})
	s.Require().NoError(err)
	s.Equal(int64(200), it.TotalPrice())

	list, count, err := s.items.List(s.Ctx, &o.ID, listing.Params{Page: 1, PerPage: 10, Search: "ca"})
	s.Require().NoError(err)
	s.Equal(1, count)
	s.Len(list, 1)

	price := int64(1)
	_, err = s.items.Create(s.Ctx, 99, ItemInput{ProductID: p.ID, Quantity: 1, Price: &price})
	s.ErrorIs(err, postgres.ErrNoRef)

	owner, err := s.items.Delete(s.Ctx, it.ID)
	s.Require().NoError(err)
	s.Equal(o.ID, owner)
}
