package usecase

import (
	"context"
	"strings"

	"shop-backend/internal/data/entity"
	"shop-backend/internal/data/repository"
	"shop-backend/internal/dto/request"
	"shop-backend/internal/dto/response"
	"shop-backend/pkg/apperror"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type BlogService interface {
	Create(ctx context.Context, req *request.CreateBlogRequest) (*response.BlogResponse, error)
	// Get counts a view before returning the blog.
	Get(ctx context.Context, blogID, viewerID string) (*response.BlogResponse, error)
	List(ctx context.Context, viewerID string) ([]response.BlogResponse, error)
	Update(ctx context.Context, blogID string, req *request.UpdateBlogRequest) (*response.BlogResponse, error)
	Delete(ctx context.Context, blogID string) error
	Like(ctx context.Context, userID string, req *request.BlogReactionRequest) (*response.BlogResponse, error)
	Dislike(ctx context.Context, userID string, req *request.BlogReactionRequest) (*response.BlogResponse, error)
}

type blogService struct {
	repo repository.BlogRepository
	log  *zap.Logger
}

func NewBlogService(repo repository.BlogRepository, log *zap.Logger) BlogService {
	return &blogService{
		repo: repo,
		log:  log.With(zap.String("service", "blog")),
	}
}

var errBlogNotFound = apperror.ErrNotFound.WithMessage("blog not found")

func (s *blogService) Create(ctx context.Context, req *request.CreateBlogRequest) (*response.BlogResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	author := req.Author
	if author == "" {
		author = "Admin"
	}

	now := nowUTC()
	blog := &entity.Blog{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
		Author:      author,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, blog); err != nil {
		return nil, upstream(err)
	}

	s.log.Info("Blog created", zap.String("blog_id", blog.ID.Hex()), zap.String("title", blog.Title))

	resp := response.BlogToResponse(blog, "")
	return &resp, nil
}

func (s *blogService) Get(ctx context.Context, blogID, viewerID string) (*response.BlogResponse, error) {
	id, err := parseObjectID(blogID)
	if err != nil {
		return nil, err
	}

	blog, err := s.repo.View(ctx, id)
	if err != nil {
		return nil, upstream(err)
	}
	if blog == nil {
		return nil, errBlogNotFound
	}

	resp := response.BlogToResponse(blog, viewerID)
	return &resp, nil
}

func (s *blogService) List(ctx context.Context, viewerID string) ([]response.BlogResponse, error) {
	blogs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, upstream(err)
	}

	out := make([]response.BlogResponse, len(blogs))
	for i, blog := range blogs {
		out[i] = response.BlogToResponse(blog, viewerID)
	}
	return out, nil
}

func (s *blogService) Update(ctx context.Context, blogID string, req *request.UpdateBlogRequest) (*response.BlogResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	id, err := parseObjectID(blogID)
	if err != nil {
		return nil, err
	}

	blog, err := s.repo.Update(ctx, id, repository.BlogPatch{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
		Author:      req.Author,
	})
	if err != nil {
		return nil, upstream(err)
	}
	if blog == nil {
		return nil, errBlogNotFound
	}

	resp := response.BlogToResponse(blog, "")
	return &resp, nil
}

func (s *blogService) Delete(ctx context.Context, blogID string) error {
	id, err := parseObjectID(blogID)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return upstream(err)
	}
	if !deleted {
		return errBlogNotFound
	}
	return nil
}

func (s *blogService) Like(ctx context.Context, userID string, req *request.BlogReactionRequest) (*response.BlogResponse, error) {
	return s.react(ctx, userID, req, s.repo.Like)
}

func (s *blogService) Dislike(ctx context.Context, userID string, req *request.BlogReactionRequest) (*response.BlogResponse, error) {
	return s.react(ctx, userID, req, s.repo.Dislike)
}

func (s *blogService) react(
	ctx context.Context,
	userID string,
	req *request.BlogReactionRequest,
	apply func(context.Context, primitive.ObjectID, string) (*entity.Blog, error),
) (*response.BlogResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(userID) == "" {
		return nil, apperror.ErrUnauthenticated
	}

	id, err := parseObjectID(req.BlogID)
	if err != nil {
		return nil, err
	}

	blog, err := apply(ctx, id, userID)
	if err != nil {
		return nil, upstream(err)
	}
	if blog == nil {
		return nil, errBlogNotFound
	}

	resp := response.BlogToResponse(blog, userID)
	return &resp, nil
}

type BlogCategoryService interface {
	Create(ctx context.Context, req *request.TitleRequest) (*response.TitleResponse, error)
	Get(ctx context.Context, id string) (*response.TitleResponse, error)
	List(ctx context.Context) ([]response.TitleResponse, error)
	Update(ctx context.Context, id string, req *request.TitleRequest) (*response.TitleResponse, error)
	Delete(ctx context.Context, id string) error
}

type blogCategoryService struct {
	repo repository.BlogCategoryRepository
	log  *zap.Logger
}

func NewBlogCategoryService(repo repository.BlogCategoryRepository, log *zap.Logger) BlogCategoryService {
	return &blogCategoryService{
		repo: repo,
		log:  log.With(zap.String("service", "blog_category")),
	}
}

var errBlogCategoryNotFound = apperror.ErrNotFound.WithMessage("blog category not found")

func (s *blogCategoryService) Create(ctx context.Context, req *request.TitleRequest) (*response.TitleResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	now := nowUTC()
	category := &entity.BlogCategory{
		Title:     strings.TrimSpace(req.Title),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, upstream(err)
	}

	resp := response.BlogCategoryToResponse(category)
	return &resp, nil
}

func (s *blogCategoryService) Get(ctx context.Context, id string) (*response.TitleResponse, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	category, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, upstream(err)
	}
	if category == nil {
		return nil, errBlogCategoryNotFound
	}

	resp := response.BlogCategoryToResponse(category)
	return &resp, nil
}

func (s *blogCategoryService) List(ctx context.Context) ([]response.TitleResponse, error) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, upstream(err)
	}

	out := make([]response.TitleResponse, len(categories))
	for i, c := range categories {
		out[i] = response.BlogCategoryToResponse(c)
	}
	return out, nil
}

func (s *blogCategoryService) Update(ctx context.Context, id string, req *request.TitleRequest) (*response.TitleResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	category, err := s.repo.Rename(ctx, oid, strings.TrimSpace(req.Title))
	if err != nil {
		return nil, upstream(err)
	}
	if category == nil {
		return nil, errBlogCategoryNotFound
	}

	resp := response.BlogCategoryToResponse(category)
	return &resp, nil
}

func (s *blogCategoryService) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, oid)
	if err != nil {
		return upstream(err)
	}
	if !deleted {
		return errBlogCategoryNotFound
	}
	return nil
}
