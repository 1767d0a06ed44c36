package cart

import (
	"testing"

	"pasarin/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCartView(t *testing.T) {
	items := []models.CartItem{
		{ItemID: "i1", ProductID: "p1", Quantity: 2},
		{ItemID: "i2", ProductID: "p2", Variant: "red", Quantity: 1},
	}
	products := map[string]models.Product{
		"p1": {ProductID: "p1", Name: "Beans", StoreID: "s1", SellerID: "seller-1", Price: 50000, DiscountPrice: 40000, StockQuantity: 10},
		"p2": {ProductID: "p2", Name: "Mug", StoreID: "s2", SellerID: "seller-2", Price: 80000, StockQuantity: 0},
	}
	stores := map[string]models.Store{
		"s1": {StoreID: "s1", Name: "Kopi Corner"},
	}

	view := BuildCartView(items, products, stores)
	require.Len(t, view.Items, 2)

	first := view.Items[0]
	assert.Equal(t, 40000.0, first.UnitPrice) // discount applied
	assert.Equal(t, 80000.0, first.Subtotal)
	assert.Equal(t, "Kopi Corner", first.StoreName)
	assert.True(t, first.InStock)

	second := view.Items[1]
	assert.Equal(t, "seller-2", second.StoreName) // no store doc, falls back to seller
	assert.False(t, second.InStock)

	assert.Equal(t, 3, view.ItemCount)
	assert.Equal(t, 160000.0, view.Total)
}

func TestBuildCartViewSkipsMissingProducts(t *testing.T) {
	items := []models.CartItem{{ItemID: "i1", ProductID: "gone", Quantity: 1}}

	view := BuildCartView(items, map[string]models.Product{}, nil)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0, view.ItemCount)
	assert.Equal(t, 0.0, view.Total)
}
