package entity

import "time"

// Category is a product category.
type Category struct {
	Base
	Title string `db:"title"`
}

// Brand has the same shape as Category and lives in its own table.
type Brand = Category

// Coupon names are stored upper-cased.
type Coupon struct {
	Base
	Name     string    `db:"name"`
	Expiry   time.Time `db:"expiry"`
	Discount float64   `db:"discount"` // percent, 0-100
}

func (c *Coupon) Expired(now time.Time) bool {
	return !now.Before(c.Expiry)
}
