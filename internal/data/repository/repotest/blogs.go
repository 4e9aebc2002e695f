package repotest

import (
	"context"
	"sync"
	"time"

	"shop-backend/internal/data/entity"
	"shop-backend/internal/data/repository"
	"shop-backend/pkg/apperror"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blogs is an in-memory repository.BlogRepository.
type Blogs struct {
	mu    sync.Mutex
	blogs map[primitive.ObjectID]*entity.Blog
}

var _ repository.BlogRepository = (*Blogs)(nil)

func NewBlogs() *Blogs {
	return &Blogs{blogs: map[primitive.ObjectID]*entity.Blog{}}
}

func copyBlog(b *entity.Blog) *entity.Blog {
	out := *b
	out.Likes = append([]string{}, b.Likes...)
	out.Dislikes = append([]string{}, b.Dislikes...)
	return &out
}

func (r *Blogs) Create(_ context.Context, blog *entity.Blog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if blog.ID.IsZero() {
		blog.ID = primitive.NewObjectID()
	}
	r.blogs[blog.ID] = copyBlog(blog)
	return nil
}

func (r *Blogs) FindByID(_ context.Context, id primitive.ObjectID) (*entity.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.blogs[id]; ok {
		return copyBlog(b), nil
	}
	return nil, nil
}

func (r *Blogs) View(_ context.Context, id primitive.ObjectID) (*entity.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.blogs[id]
	if !ok {
		return nil, nil
	}
	b.NumViews++
	return copyBlog(b), nil
}

func (r *Blogs) FindAll(_ context.Context) ([]*entity.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Blog
	for _, b := range r.blogs {
		out = append(out, copyBlog(b))
	}
	return out, nil
}

func (r *Blogs) Update(_ context.Context, id primitive.ObjectID, patch repository.BlogPatch) (*entity.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.blogs[id]
	if !ok {
		return nil, nil
	}
	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.Description != nil {
		b.Description = *patch.Description
	}
	if patch.Category != nil {
		b.Category = *patch.Category
	}
	if patch.Image != nil {
		b.Image = *patch.Image
	}
	if patch.Author != nil {
		b.Author = *patch.Author
	}
	b.UpdatedAt = time.Now()
	return copyBlog(b), nil
}

func (r *Blogs) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.blogs[id]; !ok {
		return false, nil
	}
	delete(r.blogs, id)
	return true, nil
}

func (r *Blogs) Like(_ context.Context, id primitive.ObjectID, userID string) (*entity.Blog, error) {
	return r.react(id, userID, true)
}

func (r *Blogs) Dislike(_ context.Context, id primitive.ObjectID, userID string) (*entity.Blog, error) {
	return r.react(id, userID, false)
}

func (r *Blogs) react(id primitive.ObjectID, userID string, like bool) (*entity.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.blogs[id]
	if !ok {
		return nil, nil
	}

	list, opposite := &b.Likes, &b.Dislikes
	if !like {
		list, opposite = &b.Dislikes, &b.Likes
	}
	if remove(list, userID) {
		return copyBlog(b), nil
	}
	*list = append(*list, userID)
	remove(opposite, userID)
	return copyBlog(b), nil
}

func remove(list *[]string, v string) bool {
	for i, item := range *list {
		if item == v {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return true
		}
	}
	return false
}

// BlogCategories is an in-memory repository.BlogCategoryRepository.
type BlogCategories struct {
	mu         sync.Mutex
	categories map[primitive.ObjectID]*entity.BlogCategory
}

var _ repository.BlogCategoryRepository = (*BlogCategories)(nil)

func NewBlogCategories() *BlogCategories {
	return &BlogCategories{categories: map[primitive.ObjectID]*entity.BlogCategory{}}
}

func (r *BlogCategories) Create(_ context.Context, category *entity.BlogCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.categories {
		if c.Title == category.Title {
			return apperror.ErrConflict.WithMessage("%q already exists", category.Title)
		}
	}
	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	c := *category
	r.categories[category.ID] = &c
	return nil
}

func (r *BlogCategories) FindByID(_ context.Context, id primitive.ObjectID) (*entity.BlogCategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.categories[id]; ok {
		out := *c
		return &out, nil
	}
	return nil, nil
}

func (r *BlogCategories) FindAll(_ context.Context) ([]*entity.BlogCategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.BlogCategory
	for _, c := range r.categories {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *BlogCategories) Rename(_ context.Context, id primitive.ObjectID, title string) (*entity.BlogCategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	c.Title = title
	c.UpdatedAt = time.Now()
	out := *c
	return &out, nil
}

func (r *BlogCategories) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[id]; !ok {
		return false, nil
	}
	delete(r.categories, id)
	return true, nil
}
