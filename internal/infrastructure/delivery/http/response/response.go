// Package response writes the JSON bodies of the HTTP surface.
package response

import (
	"encoding/json"
	"net/http"

	"savestream/internal/entity"
)

// Check is the POST /check_url response.
type Check struct {
	Valid bool              `json:"valid"`
	Info  *entity.VideoInfo `json:"info,omitempty"`
	Error string            `json:"error,omitempty"`
}

// Message is a plain informational response.
type Message struct {
	Message string `json:"message"`
}

// Error is a plain error response.
type Error struct {
	Error string `json:"error"`
}

// JSON marshals v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	bytes, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err = w.Write(bytes); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// OK writes v with status 200.
func OK(w http.ResponseWriter, v any) {
	JSON(w, http.StatusOK, v)
}

// Accepted writes an informational message with status 202.
func Accepted(w http.ResponseWriter, message string) {
	JSON(w, http.StatusAccepted, Message{Message: message})
}

// BadRequest writes an error message with status 400.
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, Error{Error: message})
}

// Conflict writes an error message with status 409.
func Conflict(w http.ResponseWriter, message string) {
	JSON(w, http.StatusConflict, Error{Error: message})
}

// NotFound writes an error message with status 404.
func NotFound(w http.ResponseWriter, message string) {
	JSON(w, http.StatusNotFound, Error{Error: message})
}

// InternalServerError writes an error message with status 500.
func InternalServerError(w http.ResponseWriter, message string) {
	JSON(w, http.StatusInternalServerError, Error{Error: message})
}
