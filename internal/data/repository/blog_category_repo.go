package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shop-backend/internal/data/entity"
	"shop-backend/pkg/apperror"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type BlogCategoryRepository interface {
	Create(ctx context.Context, category *entity.BlogCategory) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.BlogCategory, error)
	FindAll(ctx context.Context) ([]*entity.BlogCategory, error)
	Rename(ctx context.Context, id primitive.ObjectID, title string) (*entity.BlogCategory, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

const blogCategoryCollection = "blog_categories"

type blogCategoryRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewBlogCategoryRepository(db *mongo.Database, log *zap.Logger) BlogCategoryRepository {
	return &blogCategoryRepository{
		coll: db.Collection(blogCategoryCollection),
		log:  log.With(zap.String("repository", "blog_category")),
	}
}

func (r *blogCategoryRepository) Create(ctx context.Context, category *entity.BlogCategory) error {
	res, err := r.coll.InsertOne(ctx, category)
	if mongo.IsDuplicateKeyError(err) {
		return apperror.ErrConflict.WithMessage("%q already exists", category.Title)
	}
	if err != nil {
		r.log.Error("Failed to create blog category", zap.Error(err), zap.String("title", category.Title))
		return fmt.Errorf("create blog category %s: %w", category.Title, err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		category.ID = oid
	}
	return nil
}

func (r *blogCategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.BlogCategory, error) {
	var category entity.BlogCategory
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find blog category", zap.Error(err), zap.String("id", id.Hex()))
		return nil, fmt.Errorf("find blog category %s: %w", id.Hex(), err)
	}
	return &category, nil
}

func (r *blogCategoryRepository) FindAll(ctx context.Context) ([]*entity.BlogCategory, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		r.log.Error("Failed to list blog categories", zap.Error(err))
		return nil, fmt.Errorf("list blog categories: %w", err)
	}
	defer cur.Close(ctx)

	var categories []*entity.BlogCategory
	if err := cur.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("decode blog categories: %w", err)
	}
	return categories, nil
}

func (r *blogCategoryRepository) Rename(ctx context.Context, id primitive.ObjectID, title string) (*entity.BlogCategory, error) {
	update := bson.M{"$set": bson.M{"title": title, "updatedAt": time.Now().UTC()}}

	var category entity.BlogCategory
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, afterUpdate()).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, apperror.ErrConflict.WithMessage("%q already exists", title)
	}
	if err != nil {
		r.log.Error("Failed to rename blog category", zap.Error(err), zap.String("id", id.Hex()))
		return nil, fmt.Errorf("rename blog category %s: %w", id.Hex(), err)
	}
	return &category, nil
}

func (r *blogCategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.log.Error("Failed to delete blog category", zap.Error(err), zap.String("id", id.Hex()))
		return false, fmt.Errorf("delete blog category %s: %w", id.Hex(), err)
	}
	return res.DeletedCount > 0, nil
}
