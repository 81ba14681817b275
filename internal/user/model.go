package user

import (
	"strings"
	"time"
)

// User is the stored record. PasswordHash never leaves the server; handlers
// render Public instead.
type User struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Public is the client-facing view of a user.
type Public struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) Public() Public {
	return Public{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

func PublicList(users []User) []Public {
	out := make([]Public, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out
}

// NewUser is the input for Store.Create. The password must already be hashed.
type NewUser struct {
	Name         string
	Email        string
	PasswordHash string
}

// Patch lists the fields to change on update; nil fields are left alone.
type Patch struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

// EmailKey is the case-folded form used for uniqueness.
func EmailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
