package handler

import (
	"net/http"
	"time"

	"userhub/internal/http/response"
)

const Version = "1.0.0"

func Health(w http.ResponseWriter, r *http.Request) {
	response.Document(w, "Server is running", map[string]any{
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func Welcome(w http.ResponseWriter, r *http.Request) {
	response.Document(w, "Welcome to userhub API", map[string]any{
		"version": Version,
		"endpoints": map[string]string{
			"health": "/health",
			"auth":   "/api/auth",
			"users":  "/api/users",
		},
	})
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	response.Fail(w, http.StatusNotFound, "Route not found - "+r.URL.RequestURI())
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	response.Fail(w, http.StatusMethodNotAllowed, "Method "+r.Method+" not allowed on "+r.URL.Path)
}
