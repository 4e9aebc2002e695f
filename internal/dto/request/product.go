package request

type CreateProductRequest struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Slug        string   `json:"slug,omitempty" validate:"omitempty,max=255"`
	Description string   `json:"description" validate:"required"`
	Price       float64  `json:"price" validate:"gte=0"`
	Category    string   `json:"category" validate:"required"`
	Brand       string   `json:"brand" validate:"required"`
	Quantity    int      `json:"quantity" validate:"gte=0"`
	Images      []string `json:"images,omitempty" validate:"omitempty,dive,url"`
	Color       string   `json:"color,omitempty" validate:"omitempty,max=50"`
}

type UpdateProductRequest struct {
	Title       *string   `json:"title,omitempty" validate:"omitempty,max=255"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	Category    *string   `json:"category,omitempty"`
	Brand       *string   `json:"brand,omitempty"`
	Quantity    *int      `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Images      *[]string `json:"images,omitempty" validate:"omitempty,dive,url"`
	Color       *string   `json:"color,omitempty" validate:"omitempty,max=50"`
}

type RatingRequest struct {
	ProductID string `json:"prodId" validate:"required,uuid"`
	Star      int    `json:"star" validate:"required,min=1,max=5"`
	Comment   string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}
