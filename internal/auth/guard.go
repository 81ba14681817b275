package auth

import (
	"context"
	"errors"
	"fmt"

	"userhub/internal/user"
)

// UserFinder is the slice of user.Store the guard needs.
type UserFinder interface {
	FindByID(ctx context.Context, id uint64) (user.User, error)
}

type Status int

const (
	Anonymous Status = iota
	Authenticated
	Rejected
)

func (s Status) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	case Rejected:
		return "rejected"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Resolution is the outcome of resolving an Authorization header.
type Resolution struct {
	Status Status
	User   user.User
	// Reason is set when Status is Rejected: ErrTokenInvalid, ErrTokenExpired,
	// ErrUserGone, or a store failure.
	Reason error
}

// Guard turns an Authorization header into an identity. The user is always
// re-read from the store so a deleted account stops authenticating even
// while its token is still within expiry.
type Guard struct {
	Tokens *JWT
	Users  UserFinder
}

func (g *Guard) Resolve(ctx context.Context, header string) Resolution {
	token, ok := ExtractBearer(header)
	if !ok {
		return Resolution{Status: Anonymous}
	}

	claims, err := g.Tokens.Verify(token)
	if err != nil {
		return Resolution{Status: Rejected, Reason: err}
	}

	u, err := g.Users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Resolution{Status: Rejected, Reason: ErrUserGone}
		}
		return Resolution{Status: Rejected, Reason: err}
	}
	return Resolution{Status: Authenticated, User: u}
}
