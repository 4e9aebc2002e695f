package request

import "time"

// TitleRequest is the body of category and brand writes.
type TitleRequest struct {
	Title string `json:"title" validate:"required,max=150"`
}

type CreateCouponRequest struct {
	Name     string    `json:"name" validate:"required,max=100"`
	Expiry   time.Time `json:"expiry" validate:"required"`
	Discount float64   `json:"discount" validate:"gte=0,lte=100"`
}

type UpdateCouponRequest struct {
	Name     *string    `json:"name,omitempty" validate:"omitempty,max=100"`
	Expiry   *time.Time `json:"expiry,omitempty"`
	Discount *float64   `json:"discount,omitempty" validate:"omitempty,gte=0,lte=100"`
}
