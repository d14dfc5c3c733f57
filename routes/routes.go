// Package routes binds the HTTP surface to its handlers.
package routes

import (
	"github.com/labstack/echo/v4"

	"todo-api/auth"
	"todo-api/handlers"
	"todo-api/middleware"
)

// Register wires every API route onto the echo instance.
func Register(e *echo.Echo, users handlers.UserStore, todos handlers.TodoStore, tokens *auth.Tokens) {
	e.GET("/api", handlers.Welcome())

	authGroup := e.Group("/api/auth")
	authGroup.POST("/register", handlers.Register(users))
	authGroup.POST("/login", handlers.Login(users, tokens))

	todoGroup := e.Group("/api/todos", middleware.Protect(tokens))
	todoGroup.GET("", handlers.GetTodos(todos))
	todoGroup.POST("", handlers.CreateTodo(users, todos))
	todoGroup.GET("/status/:status", handlers.FilterTodos(todos))
	todoGroup.GET("/:id", handlers.GetTodoByID(todos))
	todoGroup.PATCH("/:id", handlers.UpdateTodo(todos))
	todoGroup.DELETE("/:id", handlers.DeleteTodo(todos))
}
