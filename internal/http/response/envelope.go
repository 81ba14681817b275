// Package response renders the JSON envelope every endpoint answers with:
// {success, message?, data?, errors?}.
package response

import (
	"encoding/json"
	"net/http"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
	// Error and Stack carry diagnostic detail; Stack is only set outside production.
	Error string `json:"error,omitempty"`
	Stack string `json:"stack,omitempty"`
}

func JSON(w http.ResponseWriter, status int, env Envelope) {
	write(w, status, env)
}

// Document writes a 200 success body whose fields sit next to success and
// message instead of under data.
func Document(w http.ResponseWriter, message string, fields map[string]any) {
	body := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		body[k] = v
	}
	body["success"] = true
	body["message"] = message
	write(w, http.StatusOK, body)
}

func write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func OK(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func Created(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Success: false, Message: message})
}
