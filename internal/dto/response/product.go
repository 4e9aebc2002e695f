package response

import (
	"time"

	"shop-backend/internal/data/entity"
)

type RatingResponse struct {
	PostedBy string `json:"postedby"`
	Star     int    `json:"star"`
	Comment  string `json:"comment,omitempty"`
}

type ProductResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	Category    string           `json:"category"`
	Brand       string           `json:"brand"`
	Quantity    int              `json:"quantity"`
	Sold        int              `json:"sold"`
	Images      []string         `json:"images"`
	Color       string           `json:"color"`
	TotalRating int              `json:"total_rating"`
	Ratings     []RatingResponse `json:"ratings,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func ProductToResponse(product *entity.Product) ProductResponse {
	images := product.Images
	if images == nil {
		images = []string{}
	}

	resp := ProductResponse{
		ID:          product.ID.String(),
		Title:       product.Title,
		Slug:        product.Slug,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		Brand:       product.Brand,
		Quantity:    product.Quantity,
		Sold:        product.Sold,
		Images:      images,
		Color:       product.Color,
		TotalRating: product.TotalRating,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
	for _, rating := range product.Ratings {
		resp.Ratings = append(resp.Ratings, RatingResponse{
			PostedBy: rating.PostedBy.String(),
			Star:     rating.Star,
			Comment:  rating.Comment,
		})
	}
	return resp
}

func ProductsToResponse(products []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, product := range products {
		out[i] = ProductToResponse(product)
	}
	return out
}
