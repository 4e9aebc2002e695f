package entity

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	Base
	Title       string   `db:"title"`
	Slug        string   `db:"slug"`
	Description string   `db:"description"`
	Price       float64  `db:"price"`
	Category    string   `db:"category"`
	Brand       string   `db:"brand"`
	Quantity    int      `db:"quantity"`
	Sold        int      `db:"sold"`
	Images      []string `db:"images"`
	Color       string   `db:"color"`
	TotalRating int      `db:"total_rating"`
	Ratings     []Rating `db:"-"`
}

// Rating is one rater's star and comment on a product.
type Rating struct {
	ProductID uuid.UUID `db:"product_id"`
	PostedBy  uuid.UUID `db:"posted_by"`
	Star      int       `db:"star"` // 1-5
	Comment   string    `db:"comment"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
