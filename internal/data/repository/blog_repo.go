package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shop-backend/internal/data/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// BlogPatch holds the editable blog fields; nil fields are left untouched.
type BlogPatch struct {
	Title       *string
	Description *string
	Category    *string
	Image       *string
	Author      *string
}

type BlogRepository interface {
	Create(ctx context.Context, blog *entity.Blog) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Blog, error)
	// View returns the blog after incrementing its view counter.
	View(ctx context.Context, id primitive.ObjectID) (*entity.Blog, error)
	FindAll(ctx context.Context) ([]*entity.Blog, error)
	Update(ctx context.Context, id primitive.ObjectID, patch BlogPatch) (*entity.Blog, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)

	// Like and Dislike toggle the user's reaction; setting one clears the other.
	Like(ctx context.Context, id primitive.ObjectID, userID string) (*entity.Blog, error)
	Dislike(ctx context.Context, id primitive.ObjectID, userID string) (*entity.Blog, error)
}

const blogCollection = "blogs"

type blogRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewBlogRepository(db *mongo.Database, log *zap.Logger) BlogRepository {
	return &blogRepository{
		coll: db.Collection(blogCollection),
		log:  log.With(zap.String("repository", "blog")),
	}
}

func afterUpdate() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

func (r *blogRepository) Create(ctx context.Context, blog *entity.Blog) error {
	if blog.Likes == nil {
		blog.Likes = []string{}
	}
	if blog.Dislikes == nil {
		blog.Dislikes = []string{}
	}

	res, err := r.coll.InsertOne(ctx, blog)
	if err != nil {
		r.log.Error("Failed to create blog", zap.Error(err), zap.String("title", blog.Title))
		return fmt.Errorf("create blog %s: %w", blog.Title, err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		blog.ID = oid
	}
	return nil
}

func (r *blogRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Blog, error) {
	var blog entity.Blog
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&blog)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find blog", zap.Error(err), zap.String("blog_id", id.Hex()))
		return nil, fmt.Errorf("find blog %s: %w", id.Hex(), err)
	}
	return &blog, nil
}

func (r *blogRepository) View(ctx context.Context, id primitive.ObjectID) (*entity.Blog, error) {
	return r.findAndUpdate(ctx, id, bson.M{"$inc": bson.M{"numViews": 1}})
}

func (r *blogRepository) FindAll(ctx context.Context) ([]*entity.Blog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.log.Error("Failed to list blogs", zap.Error(err))
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer cur.Close(ctx)

	var blogs []*entity.Blog
	if err := cur.All(ctx, &blogs); err != nil {
		r.log.Error("Failed to decode blogs", zap.Error(err))
		return nil, fmt.Errorf("decode blogs: %w", err)
	}
	return blogs, nil
}

func (r *blogRepository) Update(ctx context.Context, id primitive.ObjectID, patch BlogPatch) (*entity.Blog, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}
	if patch.Author != nil {
		set["author"] = *patch.Author
	}
	return r.findAndUpdate(ctx, id, bson.M{"$set": set})
}

func (r *blogRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.log.Error("Failed to delete blog", zap.Error(err), zap.String("blog_id", id.Hex()))
		return false, fmt.Errorf("delete blog %s: %w", id.Hex(), err)
	}
	return res.DeletedCount > 0, nil
}

func (r *blogRepository) Like(ctx context.Context, id primitive.ObjectID, userID string) (*entity.Blog, error) {
	return r.react(ctx, id, userID, "likes", "dislikes")
}

func (r *blogRepository) Dislike(ctx context.Context, id primitive.ObjectID, userID string) (*entity.Blog, error) {
	return r.react(ctx, id, userID, "dislikes", "likes")
}

// react removes the user from list when already present, otherwise adds them and
// drops them from opposite.
func (r *blogRepository) react(ctx context.Context, id primitive.ObjectID, userID, list, opposite string) (*entity.Blog, error) {
	blog, err := r.FindByID(ctx, id)
	if err != nil || blog == nil {
		return nil, err
	}

	current := blog.Likes
	if list == "dislikes" {
		current = blog.Dislikes
	}

	update := bson.M{
		"$addToSet": bson.M{list: userID},
		"$pull":     bson.M{opposite: userID},
	}
	if contains(current, userID) {
		update = bson.M{"$pull": bson.M{list: userID}}
	}

	return r.findAndUpdate(ctx, id, update)
}

func (r *blogRepository) findAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*entity.Blog, error) {
	var blog entity.Blog
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, afterUpdate()).Decode(&blog)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to update blog", zap.Error(err), zap.String("blog_id", id.Hex()))
		return nil, fmt.Errorf("update blog %s: %w", id.Hex(), err)
	}
	return &blog, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
