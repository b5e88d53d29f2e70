package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"ms-content/internal/content"
	"ms-content/internal/slug"
)

// errorEnvelope is the wire shape every failure takes, per the admin UI
// contract: {"error": "..."}.
type errorEnvelope struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, errorEnvelope{Error: message})
}

// WriteServiceError maps service sentinel errors onto HTTP statuses.
// Anything unrecognized is a storage/internal failure: the envelope is still
// returned, the process never crashes on a handler error.
func WriteServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, content.ErrNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, content.ErrValidation), errors.Is(err, slug.ErrExhausted):
		WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, content.ErrRateLimited):
		WriteError(w, http.StatusTooManyRequests, err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
