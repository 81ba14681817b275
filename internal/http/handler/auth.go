package handler

import (
	"errors"
	"net/http"

	"userhub/internal/auth"
	"userhub/internal/http/response"
	"userhub/internal/user"

	"go.uber.org/zap"
)

type AuthHandler struct {
	Svc   *auth.Service
	Log   *zap.Logger
	Debug bool
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if !decode(w, r, &req) {
		return
	}

	res, err := h.Svc.Register(r.Context(), auth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrDuplicateEmail):
			response.Fail(w, http.StatusBadRequest, "Email already registered")
		default:
			internalError(w, r, h.Log, h.Debug, err)
		}
		return
	}

	response.Created(w, "User registered successfully", map[string]any{
		"user":  res.User.Public(),
		"token": res.Token,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if !decode(w, r, &req) {
		return
	}

	res, err := h.Svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			response.Fail(w, http.StatusUnauthorized, "Invalid email or password")
		default:
			internalError(w, r, h.Log, h.Debug, err)
		}
		return
	}

	response.OK(w, "Login successful", map[string]any{
		"user":  res.User.Public(),
		"token": res.Token,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var who *user.User
	if u, ok := auth.UserFromContext(r.Context()); ok {
		who = &u
	}
	h.Svc.Logout(r.Context(), who)

	response.OK(w, "Logout successful. Please remove the token from client storage.", nil)
}
