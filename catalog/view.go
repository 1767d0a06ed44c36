package catalog

import "pasarin/models"

// ProductView is a Product plus its computed display fields.
type ProductView struct {
	models.Product
	EffectivePrice float64 `json:"effectivePrice"`
	MainImage      string  `json:"mainImage,omitempty"`
}

func NewProductView(p models.Product) ProductView {
	return ProductView{
		Product:        p,
		EffectivePrice: p.EffectivePrice(),
		MainImage:      p.MainImage(),
	}
}

func NewProductViews(products []models.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, NewProductView(p))
	}
	return views
}
