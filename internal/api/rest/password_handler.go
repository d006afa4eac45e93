package rest

import (
	"net/http"
)

type requestPasswordChangeRequest struct {
	Email string `json:"email"`
}

func (h *Handler) handleRequestPasswordChange(w http.ResponseWriter, r *http.Request) {
	var req requestPasswordChangeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "email is required"})
		return
	}

	if err := h.resets.Request(r.Context(), req.Email); err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "password change email sent"})
}

type changePasswordRequest struct {
	NewPassword string `json:"new_password"`
	Code        string `json:"code"`
}

func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.resets.Change(r.Context(), req.Code, req.NewPassword); err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "password changed"})
}

type checkCodeRequest struct {
	Code string `json:"code"`
}

func (h *Handler) handleCheckChangePasswordCode(w http.ResponseWriter, r *http.Request) {
	var req checkCodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	valid, err := h.resets.Check(r.Context(), req.Code)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"valid": valid})
}
