package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"

	"userhub/internal/auth"
	"userhub/internal/http/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var (
	nameRules = []validation.Rule{
		validation.RuneLength(2, 0).Error("Name must be at least 2 characters long"),
	}
	emailRules = []validation.Rule{
		is.Email.Error("Please provide a valid email"),
	}
	passwordRules = []validation.Rule{
		validation.By(passwordPolicy),
	}
)

// passwordPolicy applies auth.ValidatePasswordStrength. Empty and nil values
// are left to Required.
func passwordPolicy(value interface{}) error {
	v, isNil := validation.Indirect(value)
	pw, ok := v.(string)
	if isNil || !ok || pw == "" {
		return nil
	}

	switch err := auth.ValidatePasswordStrength(pw); {
	case errors.Is(err, auth.ErrWeakPassword):
		return errors.New("Password must be at least 6 characters long")
	case errors.Is(err, auth.ErrPasswordTooLong):
		return errors.New("Password must be at most 72 bytes")
	}
	return nil
}

func required(msg string, rules []validation.Rule) []validation.Rule {
	return append([]validation.Rule{validation.Required.Error(msg)}, rules...)
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *registerReq) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = normalizeEmail(r.Email)
}

func (r registerReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, required("Name is required", nameRules)...),
		validation.Field(&r.Email, required("Email is required", emailRules)...),
		validation.Field(&r.Password, required("Password is required", passwordRules)...),
	)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *loginReq) normalize() {
	r.Email = normalizeEmail(r.Email)
}

func (r loginReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, required("Email is required", emailRules)...),
		validation.Field(&r.Password, validation.Required.Error("Password is required")),
	)
}

// createUserReq is the admin-style create; the password may be omitted.
type createUserReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *createUserReq) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = normalizeEmail(r.Email)
}

func (r createUserReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, required("Name is required", nameRules)...),
		validation.Field(&r.Email, required("Email is required", emailRules)...),
		validation.Field(&r.Password, passwordRules...),
	)
}

// updateUserReq fields are all optional; empty strings count as absent.
type updateUserReq struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (r *updateUserReq) normalize() {
	r.Name = trimmedOrNil(r.Name, strings.TrimSpace)
	r.Email = trimmedOrNil(r.Email, normalizeEmail)
	if r.Password != nil && *r.Password == "" {
		r.Password = nil
	}
}

func (r updateUserReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, nameRules...),
		validation.Field(&r.Email, emailRules...),
		validation.Field(&r.Password, passwordRules...),
	)
}

func trimmedOrNil(s *string, norm func(string) string) *string {
	if s == nil {
		return nil
	}
	v := norm(*s)
	if v == "" {
		return nil
	}
	return &v
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

type payload interface {
	normalize()
	Validate() error
}

// decode reads, normalizes and validates a JSON body. On failure it has
// already written the 400 response and returns false.
func decode(w http.ResponseWriter, r *http.Request, dst payload) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.Fail(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	dst.normalize()

	err := dst.Validate()
	if err == nil {
		return true
	}

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		response.Fail(w, http.StatusBadRequest, "Validation failed")
		return false
	}
	response.JSON(w, http.StatusBadRequest, response.Envelope{
		Message: "Validation failed",
		Errors:  fieldErrors(verrs),
	})
	return false
}

func fieldErrors(verrs validation.Errors) []response.FieldError {
	fields := make([]string, 0, len(verrs))
	for f := range verrs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	out := make([]response.FieldError, 0, len(fields))
	for _, f := range fields {
		out = append(out, response.FieldError{Field: f, Message: verrs[f].Error()})
	}
	return out
}
