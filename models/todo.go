package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Todo is a single to-do item. UserID is the hex form of the owning user's
// _id and is fixed at creation time.
type Todo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Status      bool               `bson:"status" json:"status"`
	UserID      string             `bson:"user_id" json:"user_id"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// TodoUpdate is a partial change set. Nil fields are left untouched.
type TodoUpdate struct {
	Title       *string
	Description *string
	Status      *bool
}
