package auth_test

import (
	"strings"
	"testing"

	"userhub/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_RoundTrip(t *testing.T) {
	h := auth.NewHasher(bcrypt.MinCost)

	tests := []struct {
		name     string
		password string
	}{
		{name: "simple", password: "secret1"},
		{name: "unicode", password: "päss wörd"},
		{name: "empty", password: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(tt.password)
			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hash)

			ok, err := h.Compare(hash, tt.password)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = h.Compare(hash, tt.password+"x")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestHasher_SaltsEachHash(t *testing.T) {
	h := auth.NewHasher(bcrypt.MinCost)
	a, err := h.Hash("secret1")
	require.NoError(t, err)
	b, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHasher_MalformedHash(t *testing.T) {
	h := auth.NewHasher(bcrypt.MinCost)
	ok, err := h.Compare("not-a-bcrypt-hash", "secret1")
	assert.False(t, ok)
	assert.ErrorIs(t, err, auth.ErrHashing)
}

func TestHasher_TooLongPassword(t *testing.T) {
	h := auth.NewHasher(bcrypt.MinCost)
	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a'
	}
	_, err := h.Hash(string(long))
	assert.ErrorIs(t, err, auth.ErrHashing)
}

func TestNewHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, auth.NewHasher(0).Cost)
	assert.Equal(t, bcrypt.DefaultCost, auth.NewHasher(99).Cost)
	assert.Equal(t, 12, auth.NewHasher(12).Cost)
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name string
		pw   string
		want error
	}{
		{"too short", "12345", auth.ErrWeakPassword},
		{"minimum", "123456", nil},
		{"multibyte counts characters", "ééééé", auth.ErrWeakPassword},
		{"at byte limit", strings.Repeat("a", auth.MaxPasswordBytes), nil},
		{"over byte limit", strings.Repeat("a", auth.MaxPasswordBytes+1), auth.ErrPasswordTooLong},
		{"multibyte over byte limit", strings.Repeat("é", 40), auth.ErrPasswordTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.ValidatePasswordStrength(tt.pw)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidatePasswordStrength_AcceptedPasswordsHash(t *testing.T) {
	h := auth.NewHasher(bcrypt.MinCost)
	pw := strings.Repeat("a", auth.MaxPasswordBytes)
	require.NoError(t, auth.ValidatePasswordStrength(pw))

	_, err := h.Hash(pw)
	assert.NoError(t, err)
}
