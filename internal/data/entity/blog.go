package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog lives in the document store, so it uses object ids rather than Base.
type Blog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	NumViews    int64              `bson:"numViews" json:"num_views"`
	Likes       []string           `bson:"likes" json:"likes"`
	Dislikes    []string           `bson:"dislikes" json:"dislikes"`
	Image       string             `bson:"image" json:"image"`
	Author      string             `bson:"author" json:"author"`
	CreatedAt   time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updated_at"`
}

type BlogCategory struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updated_at"`
}
