package handler

import (
	"net/http"

	"userhub/internal/http/response"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// internalError logs err and answers 500. The error text is only exposed
// when debug is set.
func internalError(w http.ResponseWriter, r *http.Request, log *zap.Logger, debug bool, err error) {
	log.Error("request failed",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)

	env := response.Envelope{Message: "Internal server error"}
	if debug {
		env.Error = err.Error()
	}
	response.JSON(w, http.StatusInternalServerError, env)
}
