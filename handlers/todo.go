package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"todo-api/middleware"
	"todo-api/models"
	"todo-api/validation"
)

// CreateTodo handles POST /api/todos. The caller always owns the new todo,
// regardless of any userId carried in the body.
func CreateTodo(users UserStore, todos TodoStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req validation.TodoCreateRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
		}
		req.UserID = middleware.UserID(c)
		req.Normalize()
		if err := validation.Check(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
		defer cancel()

		owner, err := users.FindByID(ctx, req.UserID)
		if err != nil {
			return err
		}
		if owner == nil {
			return echo.NewHTTPError(http.StatusBadRequest, "User not found")
		}

		existing, err := todos.FindByOwnerAndTitle(ctx, req.UserID, req.Title)
		if err != nil {
			return err
		}
		if existing != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Todo already exists")
		}

		todo := &models.Todo{
			Title:       req.Title,
			Description: req.Description,
			UserID:      req.UserID,
		}
		if req.Status != nil {
			todo.Status = *req.Status
		}
		if err := todos.Insert(ctx, todo); err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, echo.Map{"message": "Todo created successfully"})
	}
}

// GetTodos handles GET /api/todos. An empty list is a valid result.
func GetTodos(todos TodoStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
		defer cancel()

		list, err := todos.FindByOwner(ctx, middleware.UserID(c))
		if err != nil {
			return err
		}
		if list == nil {
			list = []models.Todo{}
		}
		return c.JSON(http.StatusOK, list)
	}
}

// GetTodoByID handles GET /api/todos/:id.
func GetTodoByID(todos TodoStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		if !validTodoID(id) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid todo id")
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
		defer cancel()

		todo, err := todos.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if todo == nil {
			return echo.NewHTTPError(http.StatusNotFound, "Todo not found")
		}
		return c.JSON(http.StatusOK, todo)
	}
}

// UpdateTodo handles PATCH /api/todos/:id. The owner field cannot be changed:
// the update payload has no userId, so binding drops it.
func UpdateTodo(todos TodoStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		if !validTodoID(id) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid todo id")
		}

		var req validation.TodoUpdateRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
		}
		req.Normalize()
		if err := validation.Check(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
		defer cancel()

		todo, err := todos.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if todo == nil {
			return echo.NewHTTPError(http.StatusNotFound, "Todo not found")
		}

		if req.Title != nil {
			dup, err := todos.FindByOwnerAndTitle(ctx, todo.UserID, *req.Title)
			if err != nil {
				return err
			}
			if dup != nil && dup.ID.Hex() != id {
				return echo.NewHTTPError(http.StatusBadRequest, "Todo already exists")
			}
		}

		if !req.Empty() {
			upd := models.TodoUpdate{
				Title:       req.Title,
				Description: req.Description,
				Status:      req.Status,
			}
			matched, err := todos.Update(ctx, id, upd)
			if err != nil {
				return err
			}
			if !matched {
				return echo.NewHTTPError(http.StatusNotFound, "Todo not found")
			}
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "Todo updated successfully"})
	}
}

// DeleteTodo handles DELETE /api/todos/:id.
func DeleteTodo(todos TodoStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		if !validTodoID(id) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid todo id")
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
		defer cancel()

		deleted, err := todos.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return echo.NewHTTPError(http.StatusNotFound, "Todo not found")
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "Todo deleted successfully"})
	}
}

// FilterTodos handles GET /api/todos/status/:status. The segment is true only
// for the literal "true", case-insensitively; anything else filters on false.
// Zero matches is reported as not-found, unlike the unfiltered list.
func FilterTodos(todos TodoStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		status := strings.EqualFold(c.Param("status"), "true")

		ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
		defer cancel()

		list, err := todos.FindByOwnerAndStatus(ctx, middleware.UserID(c), status)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			return echo.NewHTTPError(http.StatusNotFound, "No todos found")
		}
		return c.JSON(http.StatusOK, list)
	}
}

// validTodoID checks the fixed 24-character ObjectID hex shape before any
// store access.
func validTodoID(id string) bool {
	if len(id) != 24 {
		return false
	}
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}
