package response

import (
	"time"

	"shop-backend/internal/data/entity"
)

// TitleResponse renders categories and brands.
type TitleResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func CategoryToResponse(c *entity.Category) TitleResponse {
	return TitleResponse{ID: c.ID.String(), Title: c.Title, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

type CouponResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Expiry    time.Time `json:"expiry"`
	Discount  float64   `json:"discount"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func CouponToResponse(c *entity.Coupon) CouponResponse {
	return CouponResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Expiry:    c.Expiry,
		Discount:  c.Discount,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
