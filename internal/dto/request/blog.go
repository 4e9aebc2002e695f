package request

type CreateBlogRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Image       string `json:"image,omitempty" validate:"omitempty,url"`
	Author      string `json:"author,omitempty" validate:"omitempty,max=100"`
}

type UpdateBlogRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Image       *string `json:"image,omitempty" validate:"omitempty,url"`
	Author      *string `json:"author,omitempty" validate:"omitempty,max=100"`
}

type BlogReactionRequest struct {
	BlogID string `json:"blogId" validate:"required,mongodb"`
}
