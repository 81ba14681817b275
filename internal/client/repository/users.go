package repository

import (
	"context"
	"strconv"

	"userhub/internal/client/datasource"
	"userhub/internal/client/domain"
)

type Users struct {
	api API
}

var _ domain.UserRepository = (*Users)(nil)

func NewUsers(api API) *Users {
	return &Users{api: api}
}

func userPath(id uint64) string {
	return "/users/" + strconv.FormatUint(id, 10)
}

func (u *Users) List(ctx context.Context) ([]domain.User, error) {
	env, err := u.api.Get(ctx, "/users")
	if err != nil || !env.Success {
		return nil, fail(env, err, "Failed to load users")
	}

	var p struct {
		Users []domain.User `json:"users"`
	}
	if err := env.Decode(&p); err != nil {
		return nil, &domain.Error{Message: "Failed to load users", Err: err}
	}
	if p.Users == nil {
		p.Users = []domain.User{}
	}
	return p.Users, nil
}

func (u *Users) Get(ctx context.Context, id uint64) (domain.User, error) {
	env, err := u.api.Get(ctx, userPath(id))
	return decodeUser(env, err, "Failed to load user")
}

func (u *Users) Create(ctx context.Context, in domain.UserInput) (domain.User, error) {
	env, err := u.api.Post(ctx, "/users", in)
	return decodeUser(env, err, "Failed to create user")
}

func (u *Users) Update(ctx context.Context, id uint64, in domain.UserInput) (domain.User, error) {
	env, err := u.api.Put(ctx, userPath(id), in)
	return decodeUser(env, err, "Failed to update user")
}

func (u *Users) Delete(ctx context.Context, id uint64) error {
	env, err := u.api.Delete(ctx, userPath(id))
	if err != nil || !env.Success {
		return fail(env, err, "Failed to delete user")
	}
	return nil
}

func decodeUser(env *datasource.Envelope, err error, fallback string) (domain.User, error) {
	if err != nil || !env.Success {
		return domain.User{}, fail(env, err, fallback)
	}
	var p struct {
		User domain.User `json:"user"`
	}
	if err := env.Decode(&p); err != nil {
		return domain.User{}, &domain.Error{Message: fallback, Err: err}
	}
	return p.User, nil
}
