package auth_test

import (
	"context"
	"testing"
	"time"

	"userhub/internal/auth"
	"userhub/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newService() *auth.Service {
	return &auth.Service{
		Users:  user.NewMemoryStore(),
		Tokens: auth.NewJWT("k", time.Hour),
		Hasher: auth.NewHasher(bcrypt.MinCost),
		Log:    zap.NewNop(),
	}
}

func TestService_Register(t *testing.T) {
	s := newService()
	ctx := context.Background()

	res, err := s.Register(ctx, auth.RegisterInput{Name: "Ann", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", res.User.Email)
	assert.NotEqual(t, "secret1", res.User.PasswordHash)
	require.NotEmpty(t, res.Token)

	claims, err := s.Tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, "Ann", claims.Name)

	_, err = s.Register(ctx, auth.RegisterInput{Name: "Ann", Email: "A@X.com", Password: "secret2"})
	assert.ErrorIs(t, err, user.ErrDuplicateEmail)
}

func TestService_Login(t *testing.T) {
	s := newService()
	ctx := context.Background()

	reg, err := s.Register(ctx, auth.RegisterInput{Name: "Ann", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	res, err := s.Login(ctx, "A@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, res.User.ID)
	assert.NotEmpty(t, res.Token)

	_, wrongPass := s.Login(ctx, "a@x.com", "wrong-pass")
	_, unknown := s.Login(ctx, "nobody@x.com", "secret1")
	assert.ErrorIs(t, wrongPass, auth.ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, auth.ErrInvalidCredentials)
	assert.Equal(t, wrongPass.Error(), unknown.Error())
}

func TestService_LoginMalformedHash(t *testing.T) {
	s := newService()
	ctx := context.Background()

	_, err := s.Users.Create(ctx, user.NewUser{Name: "Ann", Email: "a@x.com", PasswordHash: "plain"})
	require.NoError(t, err)

	_, err = s.Login(ctx, "a@x.com", "plain")
	assert.ErrorIs(t, err, auth.ErrHashing)
}

func TestService_Logout(t *testing.T) {
	s := newService()
	u := user.User{ID: 3}
	assert.NotPanics(t, func() {
		s.Logout(context.Background(), &u)
		s.Logout(context.Background(), nil)
	})
}
