package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"todo-api/models"
)

type fakeUserStore struct {
	users     []*models.User
	insertErr error
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range f.users {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) Insert(_ context.Context, user *models.User) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	user.ID = primitive.NewObjectID()
	f.users = append(f.users, user)
	return nil
}

// fakeTodoStore records every call so tests can assert which store methods a
// handler reached.
type fakeTodoStore struct {
	todos []*models.Todo
	calls []string
}

func (f *fakeTodoStore) record(name string) {
	f.calls = append(f.calls, name)
}

func (f *fakeTodoStore) Insert(_ context.Context, todo *models.Todo) error {
	f.record("Insert")
	todo.ID = primitive.NewObjectID()
	f.todos = append(f.todos, todo)
	return nil
}

func (f *fakeTodoStore) FindByID(_ context.Context, id string) (*models.Todo, error) {
	f.record("FindByID")
	for _, t := range f.todos {
		if t.ID.Hex() == id {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTodoStore) FindByOwner(_ context.Context, userID string) ([]models.Todo, error) {
	f.record("FindByOwner")
	var out []models.Todo
	for _, t := range f.todos {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTodoStore) FindByOwnerAndTitle(_ context.Context, userID, title string) (*models.Todo, error) {
	f.record("FindByOwnerAndTitle")
	for _, t := range f.todos {
		if t.UserID == userID && t.Title == title {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTodoStore) FindByOwnerAndStatus(_ context.Context, userID string, status bool) ([]models.Todo, error) {
	f.record("FindByOwnerAndStatus")
	var out []models.Todo
	for _, t := range f.todos {
		if t.UserID == userID && t.Status == status {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTodoStore) Update(_ context.Context, id string, upd models.TodoUpdate) (bool, error) {
	f.record("Update")
	for _, t := range f.todos {
		if t.ID.Hex() != id {
			continue
		}
		if upd.Title != nil {
			t.Title = *upd.Title
		}
		if upd.Description != nil {
			t.Description = *upd.Description
		}
		if upd.Status != nil {
			t.Status = *upd.Status
		}
		return true, nil
	}
	return false, nil
}

func (f *fakeTodoStore) Delete(_ context.Context, id string) (bool, error) {
	f.record("Delete")
	for i, t := range f.todos {
		if t.ID.Hex() == id {
			f.todos = append(f.todos[:i], f.todos[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
