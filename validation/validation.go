// Package validation declares the payload schemas accepted by the API.
// Payloads are normalized first, then checked; a failure reports only the
// first violated constraint.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields under their wire names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// messages maps "<field>.<constraint>" to the reason reported to clients.
var messages = map[string]string{
	"email.email":        "Invalid email address",
	"password.min":       "Password must be at least 6 characters long",
	"name.min":           "Name must be at least 3 characters long",
	"userId.len":         "Invalid userId",
	"userId.hexadecimal": "Invalid userId",
}

// Check validates a normalized payload. On failure it returns an error
// describing only the first offending field.
func Check(payload interface{}) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err
	}
	first := errs[0]
	msg, ok := messages[first.Field()+"."+first.Tag()]
	if !ok {
		msg = "Required"
	}
	return fmt.Errorf("%s: %s", first.Field(), msg)
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=3"`
}

// Normalize lowercases the email before validation and storage.
func (r *RegisterRequest) Normalize() {
	r.Email = strings.ToLower(r.Email)
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Normalize lowercases the email so lookups match stored users.
func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(r.Email)
}

// TodoCreateRequest is the create-todo payload. UserID is always overwritten
// with the caller's identity before validation.
type TodoCreateRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Status      *bool  `json:"status"`
	UserID      string `json:"userId" validate:"required,len=24,hexadecimal"`
}

// Normalize lowercases the title; per-user uniqueness is case-insensitive.
func (r *TodoCreateRequest) Normalize() {
	r.Title = strings.ToLower(r.Title)
}

// TodoUpdateRequest is the partial update payload. It deliberately has no
// owner field, so any userId in the request body is dropped during binding.
type TodoUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *bool   `json:"status"`
}

// Normalize lowercases the title when one is provided.
func (r *TodoUpdateRequest) Normalize() {
	if r.Title != nil {
		*r.Title = strings.ToLower(*r.Title)
	}
}

// Empty reports whether the update changes nothing.
func (r *TodoUpdateRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.Status == nil
}
