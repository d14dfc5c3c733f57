package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"todo-api/auth"
	"todo-api/middleware"
	"todo-api/models"
	"todo-api/storage"
	"todo-api/validation"
)

// Welcome handles GET /api.
func Welcome() echo.HandlerFunc {
	message := "Hello world! Welcome to the API. This API allows you to manage a to-do list with various endpoints to create, read, update, and delete tasks."
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": message})
	}
}

// Register handles POST /api/auth/register.
func Register(users UserStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req validation.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
		}
		req.Normalize()
		if err := validation.Check(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
		defer cancel()

		existing, err := users.FindByEmail(ctx, req.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "User already exists")
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return err
		}

		user := &models.User{Email: req.Email, Password: hash, Name: req.Name}
		if err := users.Insert(ctx, user); err != nil {
			// A concurrent registration can slip past the lookup; the unique
			// email index catches it.
			if storage.IsDuplicate(err) {
				return echo.NewHTTPError(http.StatusBadRequest, "User already exists")
			}
			return err
		}

		return c.JSON(http.StatusCreated, echo.Map{
			"message": "User created successfully",
			"user":    user,
		})
	}
}

// Login handles POST /api/auth/login.
func Login(users UserStore, tokens TokenIssuer) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req validation.LoginRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
		}
		req.Normalize()
		if err := validation.Check(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
		defer cancel()

		user, err := users.FindByEmail(ctx, req.Email)
		if err != nil {
			return err
		}
		if user == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email")
		}
		if !auth.CheckPassword(req.Password, user.Password) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid password")
		}

		token, err := tokens.Issue(user.ID.Hex())
		if err != nil {
			return err
		}

		clearSessionCookie(c)
		setSessionCookie(c, token)
		return c.JSON(http.StatusOK, echo.Map{"message": "User logged in successfully"})
	}
}

func setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Now().Add(auth.TokenTTL),
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
