package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/velorent/velorent-auth/internal/logger"
	"github.com/velorent/velorent-auth/internal/model"
	"github.com/velorent/velorent-auth/internal/service"
)

// AuthService covers session lifecycle operations.
type AuthService interface {
	Login(ctx context.Context, email, password string, code *int) (service.LoginResult, error)
	Refresh(ctx context.Context, presented string) (service.LoginResult, error)
	Logout(ctx context.Context, access string) error
	Authenticate(ctx context.Context, access string) (model.SessionClaims, error)
}

// AccountService covers account provisioning and profile operations.
type AccountService interface {
	SignupClient(ctx context.Context, params service.SignupParams) error
	RegisterEmployee(ctx context.Context, params service.SignupParams) error
	ListEmployees(ctx context.Context) ([]service.Employee, error)
	DeleteEmployee(ctx context.Context, id uuid.UUID) error
	ChangePhone(ctx context.Context, userID uuid.UUID, phone string) error
}

// PasswordResetService covers the email-code password reset flow.
type PasswordResetService interface {
	Request(ctx context.Context, email string) error
	Check(ctx context.Context, code string) (bool, error)
	Change(ctx context.Context, code, newPassword string) error
}

// Pinger reports storage liveness for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler wires the HTTP surface to the service layer.
type Handler struct {
	auth        AuthService
	accounts    AccountService
	resets      PasswordResetService
	db          Pinger
	refreshTTL  time.Duration
	frontendURL string
	logger      *logger.Logger
}

// NewHandler creates the REST handler. refreshTTL bounds the refresh cookie
// lifetime and frontendURL is the single origin allowed by CORS.
func NewHandler(
	auth AuthService,
	accounts AccountService,
	resets PasswordResetService,
	db Pinger,
	refreshTTL time.Duration,
	frontendURL string,
	l *logger.Logger,
) *Handler {
	return &Handler{
		auth:        auth,
		accounts:    accounts,
		resets:      resets,
		db:          db,
		refreshTTL:  refreshTTL,
		frontendURL: frontendURL,
		logger:      l,
	}
}

// Routes builds the router with middleware and all endpoints mounted.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(h.requestLogger)
	r.Use(h.recoverPanics)
	r.Use(h.cors)

	r.Get("/health", h.handleHealth)

	r.Post("/signup", h.handleSignup)
	r.Post("/login", h.handleLogin)
	r.Get("/refresh", h.handleRefresh)
	r.Post("/logout", h.handleLogout)

	r.Post("/requestpasswordchange", h.handleRequestPasswordChange)
	r.Post("/changepassword", h.handleChangePassword)
	r.Post("/checkchangepasswordcode", h.handleCheckChangePasswordCode)

	r.Post("/employees", h.handleListEmployees)
	r.Post("/registeremployee", h.handleRegisterEmployee)
	r.Post("/deleteemployee", h.handleDeleteEmployee)

	r.Post("/changephone", h.handleChangePhone)

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			h.logger.Error("REST handler: health check failed", "error", err.Error())
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "database unreachable"})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
