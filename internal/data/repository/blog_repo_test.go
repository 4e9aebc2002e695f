package repository

import (
	"context"
	"testing"

	"shop-backend/internal/data/entity"
	"shop-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap"
)

func blogDoc(id primitive.ObjectID, likes, dislikes bson.A) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: "Spring sale"},
		{Key: "numViews", Value: int64(3)},
		{Key: "likes", Value: likes},
		{Key: "dislikes", Value: dislikes},
	}
}

func TestBlogRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "shop.blogs"
	ctx := context.Background()

	mt.Run("create assigns the inserted id", func(mt *mtest.T) {
		repo := NewBlogRepository(mt.DB, zap.NewNop())
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		blog := &entity.Blog{Title: "Spring sale"}
		require.NoError(t, repo.Create(ctx, blog))
		assert.False(t, blog.ID.IsZero())
		assert.NotNil(t, blog.Likes)
		assert.NotNil(t, blog.Dislikes)
	})

	mt.Run("find by id returns nil when absent", func(mt *mtest.T) {
		repo := NewBlogRepository(mt.DB, zap.NewNop())
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		blog, err := repo.FindByID(ctx, primitive.NewObjectID())
		require.NoError(t, err)
		assert.Nil(t, blog)
	})

	mt.Run("view increments the counter", func(mt *mtest.T) {
		repo := NewBlogRepository(mt.DB, zap.NewNop())
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: blogDoc(id, bson.A{}, bson.A{})}))

		blog, err := repo.View(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, blog)
		assert.Equal(t, int64(3), blog.NumViews)

		evt := mt.GetStartedEvent()
		require.NotNil(t, evt)
		assert.Equal(t, "findAndModify", evt.CommandName)
		inc := evt.Command.Lookup("update", "$inc", "numViews")
		assert.Equal(t, int32(1), inc.Int32())
	})

	mt.Run("find all decodes every document", func(mt *mtest.T) {
		repo := NewBlogRepository(mt.DB, zap.NewNop())
		first := mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
			blogDoc(primitive.NewObjectID(), bson.A{}, bson.A{}),
			blogDoc(primitive.NewObjectID(), bson.A{"u1"}, bson.A{}),
		)
		last := mtest.CreateCursorResponse(0, ns, mtest.NextBatch)
		mt.AddMockResponses(first, last)

		blogs, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, blogs, 2)
		assert.Equal(t, []string{"u1"}, blogs[1].Likes)
	})

	mt.Run("like adds the user and clears a dislike", func(mt *mtest.T) {
		repo := NewBlogRepository(mt.DB, zap.NewNop())
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, blogDoc(id, bson.A{}, bson.A{"u1"})),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: blogDoc(id, bson.A{"u1"}, bson.A{})}),
		)

		blog, err := repo.Like(ctx, id, "u1")
		require.NoError(t, err)
		assert.Equal(t, []string{"u1"}, blog.Likes)
		assert.Empty(t, blog.Dislikes)

		mt.GetStartedEvent()
		evt := mt.GetStartedEvent()
		require.NotNil(t, evt)
		update := evt.Command.Lookup("update").Document()
		assert.Equal(t, "u1", update.Lookup("$addToSet", "likes").StringValue())
		assert.Equal(t, "u1", update.Lookup("$pull", "dislikes").StringValue())
	})

	mt.Run("like again removes the like", func(mt *mtest.T) {
		repo := NewBlogRepository(mt.DB, zap.NewNop())
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, blogDoc(id, bson.A{"u1"}, bson.A{})),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: blogDoc(id, bson.A{}, bson.A{})}),
		)

		blog, err := repo.Like(ctx, id, "u1")
		require.NoError(t, err)
		assert.Empty(t, blog.Likes)

		mt.GetStartedEvent()
		evt := mt.GetStartedEvent()
		require.NotNil(t, evt)
		update := evt.Command.Lookup("update").Document()
		_, err = update.LookupErr("$addToSet")
		assert.Error(t, err)
		assert.Equal(t, "u1", update.Lookup("$pull", "likes").StringValue())
	})

	mt.Run("reaction on a missing blog returns nil", func(mt *mtest.T) {
		repo := NewBlogRepository(mt.DB, zap.NewNop())
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		blog, err := repo.Dislike(ctx, primitive.NewObjectID(), "u1")
		require.NoError(t, err)
		assert.Nil(t, blog)
	})

	mt.Run("delete reports whether a document was removed", func(mt *mtest.T) {
		repo := NewBlogRepository(mt.DB, zap.NewNop())
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(1)}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(0)}),
		)

		deleted, err := repo.Delete(ctx, primitive.NewObjectID())
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, primitive.NewObjectID())
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestBlogCategoryRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("duplicate title is a conflict", func(mt *mtest.T) {
		repo := NewBlogCategoryRepository(mt.DB, zap.NewNop())
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := repo.Create(ctx, &entity.BlogCategory{Title: "News"})
		require.Error(t, err)
		assert.True(t, apperror.Is(err, apperror.ErrConflict))
	})

	mt.Run("rename returns the updated document", func(mt *mtest.T) {
		repo := NewBlogCategoryRepository(mt.DB, zap.NewNop())
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "title", Value: "Guides"},
		}}))

		category, err := repo.Rename(ctx, id, "Guides")
		require.NoError(t, err)
		require.NotNil(t, category)
		assert.Equal(t, "Guides", category.Title)
		assert.Equal(t, id, category.ID)
	})
}
