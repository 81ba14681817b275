package auth

import (
	"context"
	"errors"
	"fmt"

	"userhub/internal/user"

	"go.uber.org/zap"
)

// Service runs the register / login / logout flow on top of the user store
// and the token service.
type Service struct {
	Users  user.Store
	Tokens *JWT
	Hasher *Hasher
	Log    *zap.Logger
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Result is what register and login hand back to the client.
type Result struct {
	User  user.User
	Token string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (Result, error) {
	exists, err := s.Users.EmailExists(ctx, in.Email)
	if err != nil {
		return Result{}, err
	}
	if exists {
		return Result{}, user.ErrDuplicateEmail
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return Result{}, err
	}

	// Create re-checks uniqueness under the store's write lock; the check
	// above only avoids hashing for an obvious duplicate.
	u, err := s.Users.Create(ctx, user.NewUser{Name: in.Name, Email: in.Email, PasswordHash: hash})
	if err != nil {
		return Result{}, err
	}

	token, err := s.Tokens.Sign(u.ID, u.Email, u.Name)
	if err != nil {
		return Result{}, err
	}

	s.Log.Info("user registered", zap.Uint64("user_id", u.ID))
	return Result{User: u, Token: token}, nil
}

// Login returns ErrInvalidCredentials for an unknown email and for a wrong
// password alike.
func (s *Service) Login(ctx context.Context, email, password string) (Result, error) {
	u, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Result{}, ErrInvalidCredentials
		}
		return Result{}, err
	}

	ok, err := s.Hasher.Compare(u.PasswordHash, password)
	if err != nil {
		return Result{}, fmt.Errorf("login user %d: %w", u.ID, err)
	}
	if !ok {
		return Result{}, ErrInvalidCredentials
	}

	token, err := s.Tokens.Sign(u.ID, u.Email, u.Name)
	if err != nil {
		return Result{}, err
	}
	return Result{User: u, Token: token}, nil
}

// Logout is stateless: the client discards its token. u is nil for an
// anonymous caller.
func (s *Service) Logout(_ context.Context, u *user.User) {
	if u != nil {
		s.Log.Info("user logged out", zap.Uint64("user_id", u.ID))
		return
	}
	s.Log.Debug("anonymous logout")
}
