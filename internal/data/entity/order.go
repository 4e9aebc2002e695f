package entity

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderNotProcessed   OrderStatus = "Not Processed"
	OrderCashOnDelivery OrderStatus = "Cash on Delivery"
	OrderProcessing     OrderStatus = "Processing"
	OrderDispatched     OrderStatus = "Dispatched"
	OrderCancelled      OrderStatus = "Cancelled"
	OrderDelivered      OrderStatus = "Delivered"
)

const (
	PaymentMethodCOD = "COD"
	CurrencyUSD      = "usd"
)

// PaymentIntent records how an order is to be paid.
type PaymentIntent struct {
	ID       string      `json:"id"`
	Method   string      `json:"method"`
	Amount   float64     `json:"amount"`
	Status   OrderStatus `json:"status"`
	Created  time.Time   `json:"created"`
	Currency string      `json:"currency"`
}

type Order struct {
	Base
	OrderBy       uuid.UUID     `db:"order_by"`
	Products      []LineItem    `db:"products"`
	PaymentIntent PaymentIntent `db:"payment_intent"`
	OrderStatus   OrderStatus   `db:"order_status"`
}
