package user_test

import (
	"context"
	"os"
	"testing"

	"userhub/internal/db"
	"userhub/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real Postgres when USERHUB_TEST_DATABASE_URL is set.
func openGormStore(t *testing.T) *user.GormStore {
	t.Helper()
	dsn := os.Getenv("USERHUB_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("USERHUB_TEST_DATABASE_URL not set")
	}

	gdb, err := db.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, gdb.Migrator().DropTable(&user.Row{}))
	require.NoError(t, db.AutoMigrate(gdb))

	return &user.GormStore{DB: gdb}
}

func TestGormStore_Lifecycle(t *testing.T) {
	s := openGormStore(t)
	ctx := context.Background()

	ann, err := s.Create(ctx, user.NewUser{Name: "Ann", Email: "Ann@x.com", PasswordHash: "h"})
	require.NoError(t, err)
	bob, err := s.Create(ctx, user.NewUser{Name: "Bob", Email: "bob@x.com", PasswordHash: "h"})
	require.NoError(t, err)
	assert.Greater(t, bob.ID, ann.ID)

	_, err = s.Create(ctx, user.NewUser{Name: "Dup", Email: "ANN@X.COM", PasswordHash: "h"})
	assert.ErrorIs(t, err, user.ErrDuplicateEmail)

	got, err := s.FindByEmail(ctx, "ann@X.com")
	require.NoError(t, err)
	assert.Equal(t, ann.ID, got.ID)

	email := "BOB@x.com"
	_, err = s.Update(ctx, ann.ID, user.Patch{Email: &email})
	assert.ErrorIs(t, err, user.ErrDuplicateEmail)

	name := "Annie"
	got, err = s.Update(ctx, ann.ID, user.Patch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Annie", got.Name)

	_, err = s.Update(ctx, 999999, user.Patch{Name: &name})
	assert.ErrorIs(t, err, user.ErrNotFound)

	ok, err := s.Delete(ctx, bob.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Delete(ctx, bob.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	cid, err := s.Create(ctx, user.NewUser{Name: "Cid", Email: "cid@x.com", PasswordHash: "h"})
	require.NoError(t, err)
	assert.Greater(t, cid.ID, bob.ID)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ann.ID, list[0].ID)
	assert.Equal(t, cid.ID, list[1].ID)

	_, err = s.FindByID(ctx, bob.ID)
	assert.ErrorIs(t, err, user.ErrNotFound)
}
