package repository

import (
	"context"
	"fmt"

	"userhub/internal/client/datasource"
	"userhub/internal/client/domain"
	"userhub/internal/client/tokenstore"

	"go.uber.org/zap"
)

// Auth keeps the transport credential and the persisted token in step: every
// operation that changes one changes the other before returning.
type Auth struct {
	api   API
	store tokenstore.Storage
	log   *zap.Logger
}

var _ domain.AuthRepository = (*Auth)(nil)

func NewAuth(api API, store tokenstore.Storage, log *zap.Logger) *Auth {
	if log == nil {
		log = zap.NewNop()
	}
	return &Auth{api: api, store: store, log: log}
}

type authPayload struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

func (a *Auth) Register(ctx context.Context, in domain.RegisterInput) (domain.AuthUser, error) {
	return a.authenticate(ctx, "/auth/register", in, "Registration failed")
}

func (a *Auth) Login(ctx context.Context, email, password string) (domain.AuthUser, error) {
	body := map[string]string{"email": email, "password": password}
	return a.authenticate(ctx, "/auth/login", body, "Login failed")
}

func (a *Auth) authenticate(ctx context.Context, path string, body any, fallback string) (domain.AuthUser, error) {
	env, err := a.api.Post(ctx, path, body)
	if err != nil || !env.Success {
		return domain.AuthUser{}, fail(env, err, fallback)
	}

	var p authPayload
	if err := env.Decode(&p); err != nil || p.Token == "" {
		return domain.AuthUser{}, &domain.Error{Message: fallback, Err: err}
	}

	if err := a.store.Set(tokenstore.TokenKey, p.Token); err != nil {
		return domain.AuthUser{}, fmt.Errorf("save token: %w", err)
	}
	a.api.SetAuthToken(p.Token)

	return domain.AuthUser{ID: p.User.ID, Name: p.User.Name, Email: p.User.Email, Token: p.Token}, nil
}

// GetCurrentUser asks the server who the stored token belongs to. Any
// failure discards the stored token and the attached credential.
func (a *Auth) GetCurrentUser(ctx context.Context) (domain.AuthUser, error) {
	u, err := a.currentUser(ctx)
	if err != nil {
		a.forget()
		return domain.AuthUser{}, err
	}
	return u, nil
}

func (a *Auth) currentUser(ctx context.Context) (domain.AuthUser, error) {
	token, ok, err := a.store.Get(tokenstore.TokenKey)
	if err != nil {
		return domain.AuthUser{}, &domain.Error{Message: "Authentication failed", Err: err}
	}
	if !ok || token == "" {
		return domain.AuthUser{}, domain.NewError("No authentication token found")
	}

	a.api.SetAuthToken(token)

	env, err := a.api.Get(ctx, "/auth/me")
	if err != nil || !env.Success {
		return domain.AuthUser{}, fail(env, err, "Failed to get current user")
	}

	var p struct {
		User domain.User `json:"user"`
	}
	if err := env.Decode(&p); err != nil {
		return domain.AuthUser{}, &domain.Error{Message: "Authentication failed", Err: err}
	}
	return domain.AuthUser{ID: p.User.ID, Name: p.User.Name, Email: p.User.Email, Token: token}, nil
}

// Logout notifies the server on a best-effort basis; local state is always
// cleared.
func (a *Auth) Logout(ctx context.Context) error {
	if _, err := a.api.Post(ctx, "/auth/logout", map[string]string{}); err != nil {
		a.log.Warn("logout request failed", zap.Error(err))
	}
	return a.forget()
}

func (a *Auth) IsAuthenticated() bool {
	token, ok, err := a.store.Get(tokenstore.TokenKey)
	if err != nil {
		a.log.Warn("read token", zap.Error(err))
		return false
	}
	return ok && token != ""
}

func (a *Auth) forget() error {
	a.api.ClearAuthToken()
	if err := a.store.Remove(tokenstore.TokenKey); err != nil {
		a.log.Warn("remove token", zap.Error(err))
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

// Restore attaches the persisted token to the transport without asking the
// server. It reports whether there was a token to attach.
func (a *Auth) Restore() bool {
	token, ok, err := a.store.Get(tokenstore.TokenKey)
	if err != nil || !ok || token == "" {
		return false
	}
	a.api.SetAuthToken(token)
	return true
}

var _ API = (*datasource.HTTP)(nil)
