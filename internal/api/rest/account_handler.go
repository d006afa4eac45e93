package rest

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/velorent/velorent-auth/internal/service"
)

type signupRequest struct {
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Surname    string  `json:"surname"`
	BirthDate  string  `json:"birth_date"`
	NationalID string  `json:"id_card"`
	Phone      *string `json:"phone,omitempty"`
}

func (req signupRequest) toParams() (service.SignupParams, string) {
	if req.Email == "" || req.Name == "" || req.Surname == "" || req.NationalID == "" {
		return service.SignupParams{}, "email, name, surname and id_card are required"
	}

	birthDate, err := time.Parse(birthDateLayout, req.BirthDate)
	if err != nil {
		return service.SignupParams{}, "birth_date must be formatted DD-MM-YYYY"
	}

	return service.SignupParams{
		Email:      req.Email,
		Name:       req.Name,
		Surname:    req.Surname,
		BirthDate:  birthDate,
		NationalID: req.NationalID,
		Phone:      req.Phone,
	}, ""
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	params, problem := req.toParams()
	if problem != "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: problem})
		return
	}

	if err := h.accounts.SignupClient(r.Context(), params); err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "account created, password sent by email"})
}

type registerEmployeeRequest struct {
	Access string `json:"access"`
	signupRequest
}

func (h *Handler) handleRegisterEmployee(w http.ResponseWriter, r *http.Request) {
	var req registerEmployeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if _, err := h.requireAdmin(r, req.Access); err != nil {
		h.handleError(w, err)
		return
	}

	params, problem := req.toParams()
	if problem != "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: problem})
		return
	}

	if err := h.accounts.RegisterEmployee(r.Context(), params); err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "employee registered, password sent by email"})
}

type employeeResponse struct {
	publicUser
	BirthDate  string  `json:"birth_date"`
	NationalID string  `json:"national_id"`
	Phone      *string `json:"phone"`
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	var req accessRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if _, err := h.requireAdmin(r, req.Access); err != nil {
		h.handleError(w, err)
		return
	}

	employees, err := h.accounts.ListEmployees(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	out := make([]employeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, employeeResponse{
			publicUser: toPublicUser(e.User),
			BirthDate:  e.Info.BirthDate.Format(birthDateLayout),
			NationalID: e.Info.NationalID,
			Phone:      e.Info.Phone,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

type deleteEmployeeRequest struct {
	Access     string `json:"access"`
	EmployeeID string `json:"employee_id"`
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	var req deleteEmployeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if _, err := h.requireAdmin(r, req.Access); err != nil {
		h.handleError(w, err)
		return
	}

	id, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "employee_id must be a valid UUID"})
		return
	}

	if err := h.accounts.DeleteEmployee(r.Context(), id); err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "employee deleted"})
}

type changePhoneRequest struct {
	Access string `json:"access"`
	Phone  string `json:"phone"`
}

func (h *Handler) handleChangePhone(w http.ResponseWriter, r *http.Request) {
	var req changePhoneRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	claims, err := h.auth.Authenticate(r.Context(), req.Access)
	if err != nil {
		h.handleError(w, err)
		return
	}
	if req.Phone == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "phone is required"})
		return
	}

	if err := h.accounts.ChangePhone(r.Context(), claims.UserID, req.Phone); err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "phone updated"})
}
