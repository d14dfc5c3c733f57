package storage

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"todo-api/models"
)

// TodoStore persists todos in the todos collection.
type TodoStore struct {
	coll *mongo.Collection
}

// NewTodoStore creates a store backed by db's todos collection.
func NewTodoStore(db *mongo.Database) *TodoStore {
	return &TodoStore{coll: db.Collection("todos")}
}

// Insert stores a new todo and fills in its id and timestamps.
func (s *TodoStore) Insert(ctx context.Context, todo *models.Todo) error {
	now := time.Now()
	todo.CreatedAt = now
	todo.UpdatedAt = now
	res, err := s.coll.InsertOne(ctx, todo)
	if err != nil {
		return err
	}
	todo.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID returns the todo with the given hex id, or nil when absent.
func (s *TodoStore) FindByID(ctx context.Context, id string) (*models.Todo, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var todo models.Todo
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&todo); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &todo, nil
}

// FindByOwner returns every todo owned by the given user.
func (s *TodoStore) FindByOwner(ctx context.Context, userID string) ([]models.Todo, error) {
	return s.find(ctx, bson.M{"user_id": userID})
}

// FindByOwnerAndTitle returns the owner's todo with the given title, or nil
// when absent.
func (s *TodoStore) FindByOwnerAndTitle(ctx context.Context, userID, title string) (*models.Todo, error) {
	var todo models.Todo
	err := s.coll.FindOne(ctx, bson.M{"user_id": userID, "title": title}).Decode(&todo)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

// FindByOwnerAndStatus returns the owner's todos with the given status.
func (s *TodoStore) FindByOwnerAndStatus(ctx context.Context, userID string, status bool) ([]models.Todo, error) {
	return s.find(ctx, bson.M{"user_id": userID, "status": status})
}

func (s *TodoStore) find(ctx context.Context, filter bson.M) ([]models.Todo, error) {
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var todos []models.Todo
	if err := cursor.All(ctx, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// Update applies the non-nil fields of upd to the todo with the given hex id
// and bumps updated_at. It reports whether a document matched.
func (s *TodoStore) Update(ctx context.Context, id string, upd models.TodoUpdate) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	set := bson.M{"updated_at": time.Now()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// Delete removes the todo with the given hex id, reporting whether one
// existed.
func (s *TodoStore) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
