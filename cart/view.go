package cart

import "pasarin/models"

// BuildCartView composes the read model for a set of cart items: effective
// unit price, store display name, per-item subtotal and the derived total.
// Items whose product no longer exists are skipped.
func BuildCartView(items []models.CartItem, products map[string]models.Product, stores map[string]models.Store) models.CartView {
	view := models.CartView{Items: []models.CartItemView{}}

	for _, it := range items {
		p, ok := products[it.ProductID]
		if !ok {
			continue
		}

		unit := p.EffectivePrice()
		subtotal := unit * float64(it.Quantity)

		storeName := p.SellerID
		if s, ok := stores[p.StoreID]; ok && s.Name != "" {
			storeName = s.Name
		}

		view.Items = append(view.Items, models.CartItemView{
			ItemID:    it.ItemID,
			ProductID: it.ProductID,
			Name:      p.Name,
			Variant:   it.Variant,
			Image:     p.MainImage(),
			UnitPrice: unit,
			Quantity:  it.Quantity,
			Subtotal:  subtotal,
			StoreID:   p.StoreID,
			StoreName: storeName,
			InStock:   p.StockQuantity >= it.Quantity,
		})
		view.ItemCount += it.Quantity
		view.Total += subtotal
	}

	return view
}
