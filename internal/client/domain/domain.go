// Package domain holds the client-side entities and the repository
// contracts the use cases depend on.
package domain

import (
	"context"
	"errors"
)

// AuthUser is the signed-in user together with the bearer token.
type AuthUser struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token,omitempty"`
}

// DisplayName falls back to the email when the name is empty.
func (u AuthUser) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

type User struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserInput is the body for create and update. Empty fields are omitted.
type UserInput struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

type AuthRepository interface {
	Register(ctx context.Context, in RegisterInput) (AuthUser, error)
	Login(ctx context.Context, email, password string) (AuthUser, error)
	GetCurrentUser(ctx context.Context) (AuthUser, error)
	Logout(ctx context.Context) error
	IsAuthenticated() bool
}

type UserRepository interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id uint64) (User, error)
	Create(ctx context.Context, in UserInput) (User, error)
	Update(ctx context.Context, id uint64, in UserInput) (User, error)
	Delete(ctx context.Context, id uint64) error
}

// Error is a failure with a message meant for the user. Status is the HTTP
// status when the server answered, 0 otherwise.
type Error struct {
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(msg string) *Error {
	return &Error{Message: msg}
}

// ErrorMessage returns the user-facing text of err.
func ErrorMessage(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
