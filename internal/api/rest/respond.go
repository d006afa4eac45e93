package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/velorent/velorent-auth/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload) //nolint:errcheck // headers already sent
	}
}

// decodeJSON reads one JSON body. A syntactically broken body is a 422;
// semantic validation stays with the handler.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "malformed JSON body"})
		return false
	}
	return true
}

// handleError maps the service error taxonomy onto HTTP status codes.
// Infrastructure failures surface as a generic 500; the detail stays in logs.
func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrEmailTaken),
		errors.Is(err, model.ErrNationalIDTaken):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, model.ErrUnderage),
		errors.Is(err, model.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, model.ErrInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired token"})
	case errors.Is(err, model.ErrInvalidCredentials),
		errors.Is(err, model.ErrInvalidCode),
		errors.Is(err, model.ErrCodeExpired),
		errors.Is(err, model.ErrWeakPassword),
		errors.Is(err, model.ErrTokenMismatch),
		errors.Is(err, model.ErrNotFound):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		h.logger.Error("REST handler: internal error", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
