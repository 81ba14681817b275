package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"userhub/internal/http/response"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Recoverer turns a panic into a 500 envelope. The panic value and stack are
// included in the body only when verbose is set.
func Recoverer(log *zap.Logger, verbose bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				stack := string(debug.Stack())
				log.Error("panic recovered",
					zap.String("request_id", chimw.GetReqID(r.Context())),
					zap.Any("panic", rec),
					zap.String("stack", stack),
				)

				env := response.Envelope{Message: "Internal server error"}
				if verbose {
					env.Error = fmt.Sprint(rec)
					env.Stack = stack
				}
				response.JSON(w, http.StatusInternalServerError, env)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
