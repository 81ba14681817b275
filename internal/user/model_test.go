package user

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_JSONOmitsPasswordHash(t *testing.T) {
	u := User{ID: 1, Name: "Ann", Email: "a@x.com", PasswordHash: "$2a$10$secret", CreatedAt: time.Unix(0, 0).UTC()}

	for _, v := range []any{u, u.Public(), PublicList([]User{u})} {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		assert.NotContains(t, string(b), "secret")
		assert.NotContains(t, string(b), "password")
		assert.Contains(t, string(b), `"createdAt"`)
	}
}

func TestEmailKey(t *testing.T) {
	assert.Equal(t, "a@x.com", EmailKey("  A@X.Com "))
}
