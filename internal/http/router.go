package http

import (
	"net/http"

	"userhub/internal/auth"
	"userhub/internal/config"
	"userhub/internal/http/handler"
	mw "userhub/internal/http/middleware"
	"userhub/internal/user"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Deps are the services the router wires into handlers.
type Deps struct {
	Users  user.Store
	JWT    *auth.JWT
	Hasher *auth.Hasher
	Log    *zap.Logger
}

func NewRouter(cfg config.Config, d Deps) http.Handler {
	debug := !cfg.IsProduction()

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger(d.Log))
	r.Use(mw.Recoverer(d.Log, debug))

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	r.Get("/", handler.Welcome)
	r.Get("/health", handler.Health)

	guard := &auth.Guard{Tokens: d.JWT, Users: d.Users}
	requireAuth := auth.RequireAuth(guard, d.Log)

	svc := &auth.Service{Users: d.Users, Tokens: d.JWT, Hasher: d.Hasher, Log: d.Log}
	ah := &handler.AuthHandler{Svc: svc, Log: d.Log, Debug: debug}
	me := &handler.MeHandler{}

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", ah.Register)
		r.Post("/login", ah.Login)
		r.With(requireAuth).Get("/me", me.Me)
		r.With(auth.OptionalAuth(guard, d.Log)).Post("/logout", ah.Logout)
	})

	uh := &handler.UserHandler{Users: d.Users, Hasher: d.Hasher, Log: d.Log, Debug: debug}

	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", uh.List)
		r.Post("/", uh.Create)
		r.Get("/{id}", uh.Get)

		r.With(requireAuth).Put("/{id}", uh.Update)
		r.With(requireAuth).Delete("/{id}", uh.Delete)
	})

	return r
}
