package checkout

import (
	"fmt"
	"time"

	"pasarin/models"
	"pasarin/utils"
)

// Line is one requested {product, quantity, variant} tuple. Duplicate
// (product, variant) lines are deliberately kept as separate order items.
type Line struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Variant   string `json:"variant,omitempty"`
}

// BuildPlan validates the requested lines against the resolved products and
// partitions them into one pending Order per store, items snapshotted at
// their effective price. The first failure aborts the whole plan.
func BuildPlan(lines []Line, products map[string]models.Product, userID, address, paymentMethod string, now time.Time) ([]models.Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("checkout requires at least one item")
	}

	for _, ln := range lines {
		if ln.Quantity < 1 {
			return nil, fmt.Errorf("quantity must be at least 1")
		}
		p, ok := products[ln.ProductID]
		if !ok {
			return nil, fmt.Errorf("product not found: %s", ln.ProductID)
		}
		if p.StockQuantity < ln.Quantity {
			return nil, fmt.Errorf("insufficient stock for %s", p.Name)
		}
	}

	// Partition by store, preserving first-seen store order
	var storeOrder []string
	byStore := make(map[string][]Line)
	for _, ln := range lines {
		storeID := products[ln.ProductID].StoreID
		if _, seen := byStore[storeID]; !seen {
			storeOrder = append(storeOrder, storeID)
		}
		byStore[storeID] = append(byStore[storeID], ln)
	}

	orders := make([]models.Order, 0, len(storeOrder))
	for _, storeID := range storeOrder {
		order := models.Order{
			OrderID:         utils.GetUUID(),
			OrderNumber:     utils.NewOrderNumber(now),
			UserID:          userID,
			StoreID:         storeID,
			ShippingAddress: address,
			PaymentMethod:   paymentMethod,
			Status:          models.OrderPending,
			PaymentStatus:   models.PaymentUnpaid,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		for _, ln := range byStore[storeID] {
			p := products[ln.ProductID]
			unit := p.EffectivePrice()
			item := models.OrderItem{
				ProductID:   p.ProductID,
				ProductName: p.Name,
				Variant:     ln.Variant,
				Image:       p.MainImage(),
				UnitPrice:   unit,
				Quantity:    ln.Quantity,
				Subtotal:    unit * float64(ln.Quantity),
			}
			order.Items = append(order.Items, item)
			order.TotalAmount += item.Subtotal
		}

		orders = append(orders, order)
	}

	return orders, nil
}
