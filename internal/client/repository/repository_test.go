package repository_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"userhub/internal/auth"
	"userhub/internal/client/datasource"
	"userhub/internal/client/domain"
	"userhub/internal/client/repository"
	"userhub/internal/client/tokenstore"
	"userhub/internal/config"
	httpx "userhub/internal/http"
	"userhub/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	api   *datasource.HTTP
	store *tokenstore.MemoryStorage
	auth  *repository.Auth
	users *repository.Users
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	router := httpx.NewRouter(config.Config{Env: config.EnvDevelopment}, httpx.Deps{
		Users:  user.NewMemoryStore(),
		JWT:    auth.NewJWT("test-secret", time.Hour),
		Hasher: auth.NewHasher(bcrypt.MinCost),
		Log:    zap.NewNop(),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	api := datasource.New(srv.URL + "/api")
	store := tokenstore.NewMemoryStorage()
	return &fixture{
		api:   api,
		store: store,
		auth:  repository.NewAuth(api, store, zap.NewNop()),
		users: repository.NewUsers(api),
	}
}

func (f *fixture) storedToken(t *testing.T) string {
	t.Helper()
	v, _, err := f.store.Get(tokenstore.TokenKey)
	require.NoError(t, err)
	return v
}

func TestAuth_RegisterPersistsAndAttachesToken(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	u, err := f.auth.Register(ctx, domain.RegisterInput{Name: "Ann", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name)
	assert.Equal(t, "a@x.com", u.Email)
	assert.NotZero(t, u.ID)
	assert.NotEmpty(t, u.Token)

	assert.Equal(t, u.Token, f.storedToken(t))
	assert.Equal(t, u.Token, f.api.AuthToken())
	assert.True(t, f.auth.IsAuthenticated())
}

func TestAuth_RegisterDuplicateCarriesServerMessage(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	_, err := f.auth.Register(ctx, domain.RegisterInput{Name: "Ann", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	require.NoError(t, f.auth.Logout(ctx))

	_, err = f.auth.Register(ctx, domain.RegisterInput{Name: "Ann", Email: "a@x.com", Password: "secret1"})
	var de *domain.Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "Email already registered", de.Message)
	assert.Equal(t, http.StatusBadRequest, de.Status)
	assert.False(t, f.auth.IsAuthenticated())
}

func TestAuth_LoginAndCurrentUser(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	_, err := f.auth.Register(ctx, domain.RegisterInput{Name: "Ann", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	require.NoError(t, f.auth.Logout(ctx))

	_, err = f.auth.Login(ctx, "a@x.com", "wrong-pass")
	assert.EqualError(t, err, "Invalid email or password")

	u, err := f.auth.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)

	// a fresh transport, as after a restart, picks the token up from storage
	f.api.ClearAuthToken()
	me, err := f.auth.GetCurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, u.ID, me.ID)
	assert.Equal(t, u.Token, me.Token)
	assert.Equal(t, u.Token, f.api.AuthToken())
}

func TestAuth_GetCurrentUserWithoutToken(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.GetCurrentUser(t.Context())
	assert.EqualError(t, err, "No authentication token found")
}

func TestAuth_GetCurrentUserClearsBadToken(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Set(tokenstore.TokenKey, "garbage"))

	_, err := f.auth.GetCurrentUser(t.Context())
	var de *domain.Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "Invalid or expired token.", de.Message)
	assert.Equal(t, http.StatusUnauthorized, de.Status)

	_, ok, _ := f.store.Get(tokenstore.TokenKey)
	assert.False(t, ok)
	assert.Empty(t, f.api.AuthToken())
}

func TestAuth_LogoutClearsEvenWhenServerUnreachable(t *testing.T) {
	store := tokenstore.NewMemoryStorage()
	require.NoError(t, store.Set(tokenstore.TokenKey, "tok"))

	api := datasource.New("http://127.0.0.1:1/api", datasource.WithHTTPClient(&http.Client{Timeout: time.Second}))
	api.SetAuthToken("tok")

	core, logs := observer.New(zapcore.WarnLevel)
	a := repository.NewAuth(api, store, zap.New(core))

	require.NoError(t, a.Logout(context.Background()))
	assert.False(t, a.IsAuthenticated())
	assert.Empty(t, api.AuthToken())
	assert.Equal(t, 1, logs.FilterMessage("logout request failed").Len())
}

func TestUsers_CRUD(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	_, err := f.auth.Register(ctx, domain.RegisterInput{Name: "Ann", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	bob, err := f.users.Create(ctx, domain.UserInput{Name: "Bob", Email: "bob@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "Bob", bob.Name)

	_, err = f.users.Create(ctx, domain.UserInput{Name: "Bob", Email: "bob@x.com"})
	assert.EqualError(t, err, "Email already exists")

	list, err := f.users.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ann", list[0].Name)

	got, err := f.users.Get(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, bob, got)

	upd, err := f.users.Update(ctx, bob.ID, domain.UserInput{Name: "Robert"})
	require.NoError(t, err)
	assert.Equal(t, "Robert", upd.Name)
	assert.Equal(t, "bob@x.com", upd.Email)

	require.NoError(t, f.users.Delete(ctx, bob.ID))

	_, err = f.users.Get(ctx, bob.ID)
	var de *domain.Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "User not found", de.Message)
	assert.Equal(t, http.StatusNotFound, de.Status)

	assert.EqualError(t, f.users.Delete(ctx, bob.ID), "User not found")
}

func TestUsers_MutationsNeedToken(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	bob, err := f.users.Create(ctx, domain.UserInput{Name: "Bob", Email: "bob@x.com"})
	require.NoError(t, err)

	err = f.users.Delete(ctx, bob.ID)
	assert.EqualError(t, err, "Access denied. No token provided.")
}

func TestAuth_Restore(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.auth.Restore())

	require.NoError(t, f.store.Set(tokenstore.TokenKey, "tok"))
	assert.True(t, f.auth.Restore())
	assert.Equal(t, "tok", f.api.AuthToken())
}
