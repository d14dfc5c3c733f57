package handlers

import (
	"context"
	"time"

	"todo-api/models"
)

// storeTimeout bounds every store call made while handling a request.
const storeTimeout = 5 * time.Second

// UserStore abstracts user persistence for handlers. Lookups return nil, nil
// when no user matches.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
}

// TodoStore abstracts todo persistence for handlers. Lookups return nil, nil
// when no todo matches.
type TodoStore interface {
	Insert(ctx context.Context, todo *models.Todo) error
	FindByID(ctx context.Context, id string) (*models.Todo, error)
	FindByOwner(ctx context.Context, userID string) ([]models.Todo, error)
	FindByOwnerAndTitle(ctx context.Context, userID, title string) (*models.Todo, error)
	FindByOwnerAndStatus(ctx context.Context, userID string, status bool) ([]models.Todo, error)
	Update(ctx context.Context, id string, upd models.TodoUpdate) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// TokenIssuer signs session tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}
