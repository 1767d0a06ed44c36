package checkout

import (
	"testing"
	"time"

	"pasarin/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProducts() map[string]models.Product {
	return map[string]models.Product{
		"p-a": {ProductID: "p-a", Name: "Arabica Beans", StoreID: "store-1", Price: 50000, StockQuantity: 5},
		"p-b": {ProductID: "p-b", Name: "Robusta Beans", StoreID: "store-1", Price: 30000, DiscountPrice: 25000, StockQuantity: 2},
		"p-c": {ProductID: "p-c", Name: "Ceramic Mug", StoreID: "store-2", Price: 80000, StockQuantity: 10, Images: []string{"mug.jpg"}},
	}
}

func TestBuildPlanPartitionsByStore(t *testing.T) {
	lines := []Line{
		{ProductID: "p-a", Quantity: 3},
		{ProductID: "p-b", Quantity: 2},
		{ProductID: "p-c", Quantity: 1},
	}

	orders, err := BuildPlan(lines, testProducts(), "u1", "Jl. Merdeka 1", "transfer", time.Now())
	require.NoError(t, err)
	require.Len(t, orders, 2)

	first := orders[0]
	assert.Equal(t, "store-1", first.StoreID)
	require.Len(t, first.Items, 2)
	// 3×50000 at list price + 2×25000 at discount price
	assert.Equal(t, 150000.0, first.Items[0].Subtotal)
	assert.Equal(t, 25000.0, first.Items[1].UnitPrice)
	assert.Equal(t, 200000.0, first.TotalAmount)
	assert.Equal(t, models.OrderPending, first.Status)
	assert.Equal(t, models.PaymentUnpaid, first.PaymentStatus)

	second := orders[1]
	assert.Equal(t, "store-2", second.StoreID)
	assert.Equal(t, 80000.0, second.TotalAmount)
	assert.Equal(t, "mug.jpg", second.Items[0].Image)
}

func TestBuildPlanItemSnapshot(t *testing.T) {
	orders, err := BuildPlan([]Line{{ProductID: "p-a", Quantity: 1, Variant: "250g"}}, testProducts(), "u1", "addr", "transfer", time.Now())
	require.NoError(t, err)

	item := orders[0].Items[0]
	assert.Equal(t, "Arabica Beans", item.ProductName)
	assert.Equal(t, "250g", item.Variant)
	assert.Equal(t, 50000.0, item.UnitPrice)
	assert.NotEmpty(t, orders[0].OrderID)
	assert.NotEmpty(t, orders[0].OrderNumber)
}

func TestBuildPlanDuplicateLinesStaySeparate(t *testing.T) {
	lines := []Line{
		{ProductID: "p-a", Quantity: 1},
		{ProductID: "p-a", Quantity: 2},
	}

	orders, err := BuildPlan(lines, testProducts(), "u1", "addr", "transfer", time.Now())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Len(t, orders[0].Items, 2)
	assert.Equal(t, 150000.0, orders[0].TotalAmount)
}

func TestBuildPlanValidation(t *testing.T) {
	products := testProducts()

	cases := []struct {
		name    string
		lines   []Line
		wantErr string
	}{
		{"empty", nil, "checkout requires at least one item"},
		{"zero quantity", []Line{{ProductID: "p-a", Quantity: 0}}, "quantity must be at least 1"},
		{"unknown product", []Line{{ProductID: "ghost", Quantity: 1}}, "product not found: ghost"},
		{"insufficient stock", []Line{{ProductID: "p-b", Quantity: 3}}, "insufficient stock for Robusta Beans"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildPlan(tc.lines, products, "u1", "addr", "transfer", time.Now())
			require.Error(t, err)
			assert.EqualError(t, err, tc.wantErr)
		})
	}
}

func TestBuildPlanFailsWholePlanOnOneBadLine(t *testing.T) {
	products := testProducts()
	lines := []Line{
		{ProductID: "p-a", Quantity: 3},
		{ProductID: "p-c", Quantity: 1},
		{ProductID: "p-b", Quantity: 5}, // only 2 in stock
	}

	orders, err := BuildPlan(lines, products, "u1", "addr", "transfer", time.Now())
	require.Error(t, err)
	assert.Nil(t, orders, "no order may survive a failing line, even for another store")

	// the good lines must not have been drawn down either
	assert.Equal(t, 5, products["p-a"].StockQuantity)
	assert.Equal(t, 2, products["p-b"].StockQuantity)
	assert.Equal(t, 10, products["p-c"].StockQuantity)
}
