package response

import (
	"time"

	"shop-backend/internal/data/entity"
)

type BlogResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	NumViews    int64     `json:"numViews"`
	Likes       []string  `json:"likes"`
	Dislikes    []string  `json:"dislikes"`
	IsLiked     bool      `json:"isLiked"`
	IsDisliked  bool      `json:"isDisliked"`
	Image       string    `json:"image,omitempty"`
	Author      string    `json:"author"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BlogToResponse renders a blog; viewer marks whether the caller has liked or disliked it.
func BlogToResponse(blog *entity.Blog, viewer string) BlogResponse {
	likes, dislikes := blog.Likes, blog.Dislikes
	if likes == nil {
		likes = []string{}
	}
	if dislikes == nil {
		dislikes = []string{}
	}
	return BlogResponse{
		ID:          blog.ID.Hex(),
		Title:       blog.Title,
		Description: blog.Description,
		Category:    blog.Category,
		NumViews:    blog.NumViews,
		Likes:       likes,
		Dislikes:    dislikes,
		IsLiked:     viewer != "" && contains(likes, viewer),
		IsDisliked:  viewer != "" && contains(dislikes, viewer),
		Image:       blog.Image,
		Author:      blog.Author,
		CreatedAt:   blog.CreatedAt,
		UpdatedAt:   blog.UpdatedAt,
	}
}

func BlogCategoryToResponse(c *entity.BlogCategory) TitleResponse {
	return TitleResponse{ID: c.ID.Hex(), Title: c.Title, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
