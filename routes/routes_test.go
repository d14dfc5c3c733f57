package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"todo-api/auth"
	"todo-api/handlers"
	"todo-api/middleware"
	"todo-api/models"
)

type memUserStore struct{ users []*models.User }

func (m *memUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range m.users {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUserStore) Insert(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	m.users = append(m.users, user)
	return nil
}

type memTodoStore struct{ todos []*models.Todo }

func (m *memTodoStore) Insert(_ context.Context, todo *models.Todo) error {
	todo.ID = primitive.NewObjectID()
	m.todos = append(m.todos, todo)
	return nil
}

func (m *memTodoStore) FindByID(_ context.Context, id string) (*models.Todo, error) {
	for _, t := range m.todos {
		if t.ID.Hex() == id {
			return t, nil
		}
	}
	return nil, nil
}

func (m *memTodoStore) FindByOwner(_ context.Context, userID string) ([]models.Todo, error) {
	var out []models.Todo
	for _, t := range m.todos {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memTodoStore) FindByOwnerAndTitle(_ context.Context, userID, title string) (*models.Todo, error) {
	for _, t := range m.todos {
		if t.UserID == userID && t.Title == title {
			return t, nil
		}
	}
	return nil, nil
}

func (m *memTodoStore) FindByOwnerAndStatus(_ context.Context, userID string, status bool) ([]models.Todo, error) {
	var out []models.Todo
	for _, t := range m.todos {
		if t.UserID == userID && t.Status == status {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memTodoStore) Update(_ context.Context, id string, upd models.TodoUpdate) (bool, error) {
	for _, t := range m.todos {
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

func (m *memTodoStore) Delete(_ context.Context, id string) (bool, error) {
	for i, t := range m.todos {
		if t.ID.Hex() == id {
			m.todos = append(m.todos[:i], m.todos[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func newTestServer() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = handlers.HTTPErrorHandler(log.New())
	Register(e, &memUserStore{}, &memTodoStore{}, auth.NewTokens("test-secret"))
	return e
}

func do(e *echo.Echo, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.TokenCookie && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestAPIFlow(t *testing.T) {
	e := newTestServer()

	rec := do(e, http.MethodGet, "/api", "")
	require.Equal(t, http.StatusOK, rec.Code)

	// Protected routes reject requests without a session, in the uniform
	// error envelope.
	rec = do(e, http.MethodGet, "/api/todos", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), `"errorHandler":true`)

	rec = do(e, http.MethodPost, "/api/auth/register",
		`{"email":"ada@example.com","password":"hunter22","name":"Ada"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(e, http.MethodPost, "/api/auth/login",
		`{"email":"ada@example.com","password":"hunter22"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	session := sessionCookie(t, rec)

	rec = do(e, http.MethodGet, "/api/todos", "", session)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))

	rec = do(e, http.MethodPost, "/api/todos",
		`{"title":"Buy Milk","description":"two liters"}`, session)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(e, http.MethodGet, "/api/todos", "", session)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	id := list[0].ID.Hex()

	rec = do(e, http.MethodGet, "/api/todos/"+id, "", session)
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "buy milk", got.Title)
	require.Equal(t, "two liters", got.Description)
	require.False(t, got.Status)

	rec = do(e, http.MethodPatch, "/api/todos/"+id, `{"status":true}`, session)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/api/todos/status/true", "", session)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/api/todos/status/false", "", session)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "No todos found")

	rec = do(e, http.MethodDelete, "/api/todos/"+id, "", session)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodDelete, "/api/todos/"+id, "", session)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTamperedCookieRejected(t *testing.T) {
	e := newTestServer()

	do(e, http.MethodPost, "/api/auth/register",
		`{"email":"ada@example.com","password":"hunter22","name":"Ada"}`)
	rec := do(e, http.MethodPost, "/api/auth/login",
		`{"email":"ada@example.com","password":"hunter22"}`)
	session := sessionCookie(t, rec)
	session.Value += "x"

	rec = do(e, http.MethodGet, "/api/todos", "", session)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Not authorized, token failed")
}
