package handler

import (
	"errors"
	"net/http"
	"strconv"

	"userhub/internal/auth"
	"userhub/internal/http/response"
	"userhub/internal/user"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DefaultPassword is assigned when a user is created without one.
const DefaultPassword = "defaultPassword123"

type UserHandler struct {
	Users  user.Store
	Hasher *auth.Hasher
	Log    *zap.Logger
	Debug  bool
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		internalError(w, r, h.Log, h.Debug, err)
		return
	}
	response.OK(w, "", map[string]any{
		"users": user.PublicList(users),
		"count": len(users),
	})
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		response.Fail(w, http.StatusNotFound, "User not found")
		return
	}

	u, err := h.Users.FindByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, "", map[string]any{"user": u.Public()})
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserReq
	if !decode(w, r, &req) {
		return
	}

	exists, err := h.Users.EmailExists(r.Context(), req.Email)
	if err != nil {
		internalError(w, r, h.Log, h.Debug, err)
		return
	}
	if exists {
		response.Fail(w, http.StatusBadRequest, "Email already exists")
		return
	}

	password := req.Password
	if password == "" {
		password = DefaultPassword
	}
	hash, err := h.Hasher.Hash(password)
	if err != nil {
		internalError(w, r, h.Log, h.Debug, err)
		return
	}

	u, err := h.Users.Create(r.Context(), user.NewUser{Name: req.Name, Email: req.Email, PasswordHash: hash})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Created(w, "User created successfully", map[string]any{"user": u.Public()})
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		response.Fail(w, http.StatusNotFound, "User not found")
		return
	}

	var req updateUserReq
	if !decode(w, r, &req) {
		return
	}

	p := user.Patch{Name: req.Name, Email: req.Email}
	if req.Password != nil {
		hash, err := h.Hasher.Hash(*req.Password)
		if err != nil {
			internalError(w, r, h.Log, h.Debug, err)
			return
		}
		p.PasswordHash = &hash
	}

	u, err := h.Users.Update(r.Context(), id, p)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, "User updated successfully", map[string]any{"user": u.Public()})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		response.Fail(w, http.StatusNotFound, "User not found")
		return
	}

	deleted, err := h.Users.Delete(r.Context(), id)
	if err != nil {
		internalError(w, r, h.Log, h.Debug, err)
		return
	}
	if !deleted {
		response.Fail(w, http.StatusNotFound, "User not found")
		return
	}
	response.OK(w, "User deleted successfully", nil)
}

func (h *UserHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, user.ErrNotFound):
		response.Fail(w, http.StatusNotFound, "User not found")
	case errors.Is(err, user.ErrDuplicateEmail):
		response.Fail(w, http.StatusBadRequest, "Email already exists")
	default:
		internalError(w, r, h.Log, h.Debug, err)
	}
}

func userID(r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
