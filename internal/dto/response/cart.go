package response

import (
	"time"

	"shop-backend/internal/data/entity"
)

type LineItemResponse struct {
	Product string  `json:"product"`
	Count   int     `json:"count"`
	Color   string  `json:"color"`
	Price   float64 `json:"price"`
}

type CartResponse struct {
	ID                 string             `json:"id"`
	OrderBy            string             `json:"orderby"`
	Products           []LineItemResponse `json:"products"`
	CartTotal          float64            `json:"cartTotal"`
	TotalAfterDiscount *float64           `json:"totalAfterDiscount,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

type PaymentIntentResponse struct {
	ID       string    `json:"id"`
	Method   string    `json:"method"`
	Amount   float64   `json:"amount"`
	Status   string    `json:"status"`
	Created  time.Time `json:"created"`
	Currency string    `json:"currency"`
}

type OrderResponse struct {
	ID            string                `json:"id"`
	OrderBy       string                `json:"orderby"`
	Products      []LineItemResponse    `json:"products"`
	PaymentIntent PaymentIntentResponse `json:"paymentIntent"`
	OrderStatus   string                `json:"orderStatus"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

func lineItemsToResponse(items []entity.LineItem) []LineItemResponse {
	out := make([]LineItemResponse, len(items))
	for i, item := range items {
		out[i] = LineItemResponse{
			Product: item.Product.String(),
			Count:   item.Count,
			Color:   item.Color,
			Price:   item.Price,
		}
	}
	return out
}

func CartToResponse(cart *entity.Cart) CartResponse {
	return CartResponse{
		ID:                 cart.ID.String(),
		OrderBy:            cart.OrderBy.String(),
		Products:           lineItemsToResponse(cart.Products),
		CartTotal:          cart.CartTotal,
		TotalAfterDiscount: cart.TotalAfterDiscount,
		CreatedAt:          cart.CreatedAt,
		UpdatedAt:          cart.UpdatedAt,
	}
}

func OrderToResponse(order *entity.Order) OrderResponse {
	intent := order.PaymentIntent
	return OrderResponse{
		ID:       order.ID.String(),
		OrderBy:  order.OrderBy.String(),
		Products: lineItemsToResponse(order.Products),
		PaymentIntent: PaymentIntentResponse{
			ID:       intent.ID,
			Method:   intent.Method,
			Amount:   intent.Amount,
			Status:   string(intent.Status),
			Created:  intent.Created,
			Currency: intent.Currency,
		},
		OrderStatus: string(order.OrderStatus),
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

func OrdersToResponse(orders []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, order := range orders {
		out[i] = OrderToResponse(order)
	}
	return out
}
