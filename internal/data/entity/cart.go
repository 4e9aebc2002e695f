package entity

import (
	"github.com/google/uuid"
)

// LineItem is one product entry of a cart or order. Price is captured when the cart is set.
type LineItem struct {
	Product uuid.UUID `json:"product"`
	Count   int       `json:"count"`
	Color   string    `json:"color"`
	Price   float64   `json:"price"`
}

type Cart struct {
	Base
	OrderBy            uuid.UUID  `db:"order_by"`
	Products           []LineItem `db:"products"`
	CartTotal          float64    `db:"cart_total"`
	TotalAfterDiscount *float64   `db:"total_after_discount"`
}
