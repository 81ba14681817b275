// Package usecase holds the client-side input checks that run before a
// repository call.
package usecase

import (
	"context"
	"regexp"
	"unicode/utf8"

	"userhub/internal/client/domain"

	validation "github.com/go-ozzo/ozzo-validation"
)

const minPasswordLength = 6

var emailFormat = validation.Match(regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`))

func checkEmail(email string) error {
	if err := validation.Validate(email, emailFormat); err != nil {
		return domain.NewError("Invalid email format")
	}
	return nil
}

type RegisterUser struct {
	Repo domain.AuthRepository
}

func (uc RegisterUser) Execute(ctx context.Context, in domain.RegisterInput) (domain.AuthUser, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return domain.AuthUser{}, domain.NewError("Name, email and password are required")
	}
	if err := checkEmail(in.Email); err != nil {
		return domain.AuthUser{}, err
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLength {
		return domain.AuthUser{}, domain.NewError("Password must be at least 6 characters long")
	}
	return uc.Repo.Register(ctx, in)
}

type LoginUser struct {
	Repo domain.AuthRepository
}

func (uc LoginUser) Execute(ctx context.Context, email, password string) (domain.AuthUser, error) {
	if email == "" || password == "" {
		return domain.AuthUser{}, domain.NewError("Email and password are required")
	}
	if err := checkEmail(email); err != nil {
		return domain.AuthUser{}, err
	}
	return uc.Repo.Login(ctx, email, password)
}

type GetCurrentUser struct {
	Repo domain.AuthRepository
}

func (uc GetCurrentUser) Execute(ctx context.Context) (domain.AuthUser, error) {
	return uc.Repo.GetCurrentUser(ctx)
}

type LogoutUser struct {
	Repo domain.AuthRepository
}

func (uc LogoutUser) Execute(ctx context.Context) error {
	return uc.Repo.Logout(ctx)
}
