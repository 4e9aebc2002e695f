package request

type CartItemRequest struct {
	ProductID string `json:"_id" validate:"required,uuid"`
	Count     int    `json:"count" validate:"required,min=1"`
	Color     string `json:"color,omitempty" validate:"omitempty,max=50"`
}

type SetCartRequest struct {
	Cart []CartItemRequest `json:"cart" validate:"required,min=1,dive"`
}

type ApplyCouponRequest struct {
	Coupon string `json:"coupon" validate:"required"`
}

type CashOrderRequest struct {
	COD           bool `json:"COD"`
	CouponApplied bool `json:"couponApplied"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof='Not Processed' 'Cash on Delivery' 'Processing' 'Dispatched' 'Cancelled' 'Delivered'"`
}
