package auth

import (
	"context"
	"errors"
	"net/http"

	"userhub/internal/http/response"
	"userhub/internal/user"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type ctxKey string

const userKey ctxKey = "user"

func WithUser(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

func UserFromContext(ctx context.Context) (user.User, bool) {
	u, ok := ctx.Value(userKey).(user.User)
	return u, ok
}

// RequireAuth rejects the request with 401 unless the header resolves to a
// live user. A store failure answers 500 and is logged.
func RequireAuth(g *Guard, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := g.Resolve(r.Context(), r.Header.Get("Authorization"))

			switch res.Status {
			case Authenticated:
				next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), res.User)))
			case Anonymous:
				response.Fail(w, http.StatusUnauthorized, "Access denied. No token provided.")
			default:
				writeRejection(w, r, log, res.Reason)
			}
		})
	}
}

// OptionalAuth attaches the user when the header resolves and otherwise lets
// the request through anonymously. Rejections are logged, never returned.
func OptionalAuth(g *Guard, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := g.Resolve(r.Context(), r.Header.Get("Authorization"))

			switch res.Status {
			case Authenticated:
				r = r.WithContext(WithUser(r.Context(), res.User))
			case Rejected:
				log.Info("optional auth rejected",
					zap.String("path", r.URL.Path),
					zap.Error(res.Reason),
				)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeRejection(w http.ResponseWriter, r *http.Request, log *zap.Logger, reason error) {
	switch {
	case errors.Is(reason, ErrUserGone):
		response.Fail(w, http.StatusUnauthorized, "User not found. Token is invalid.")
	case errors.Is(reason, ErrTokenExpired), errors.Is(reason, ErrTokenInvalid):
		response.JSON(w, http.StatusUnauthorized, response.Envelope{
			Message: "Invalid or expired token.",
			Error:   reason.Error(),
		})
	default:
		log.Error("auth lookup failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(reason),
		)
		response.Fail(w, http.StatusInternalServerError, "Internal server error")
	}
}
