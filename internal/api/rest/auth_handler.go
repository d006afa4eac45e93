package rest

import (
	"net/http"

	"github.com/velorent/velorent-auth/internal/model"
)

const refreshCookieName = "refresh_token"

// birthDateLayout is the wire format for dates, day first.
const birthDateLayout = "02-01-2006"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Code     *int   `json:"code,omitempty"`
}

type publicUser struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Role    string `json:"role"`
}

type publicUserInfo struct {
	BirthDate  string  `json:"birth_date"`
	NationalID string  `json:"national_id"`
	Phone      *string `json:"phone"`
}

type sessionResponse struct {
	Access   string          `json:"access"`
	PubUser  publicUser      `json:"pub_user"`
	UserInfo *publicUserInfo `json:"user_info"`
}

func toPublicUser(user model.User) publicUser {
	return publicUser{
		ID:      user.ID.String(),
		Email:   user.Email,
		Name:    user.Name,
		Surname: user.Surname,
		Role:    string(user.Role),
	}
}

func toPublicUserInfo(info *model.UserInfo) *publicUserInfo {
	if info == nil {
		return nil
	}
	return &publicUserInfo{
		BirthDate:  info.BirthDate.Format(birthDateLayout),
		NationalID: info.NationalID,
		Phone:      info.Phone,
	}
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "email and password are required"})
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password, req.Code)
	if err != nil {
		h.handleError(w, err)
		return
	}

	if result.TwoFactorSent {
		writeJSON(w, http.StatusOK, messageResponse{Message: "2FA email sent"})
		return
	}

	h.setRefreshCookie(w, result.RefreshToken)
	writeJSON(w, http.StatusOK, sessionResponse{
		Access:   result.AccessToken,
		PubUser:  toPublicUser(result.User),
		UserInfo: toPublicUserInfo(result.Info),
	})
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "refresh cookie missing"})
		return
	}

	result, err := h.auth.Refresh(r.Context(), cookie.Value)
	if err != nil {
		h.clearRefreshCookie(w)
		h.handleError(w, err)
		return
	}

	h.setRefreshCookie(w, result.RefreshToken)
	writeJSON(w, http.StatusOK, map[string]string{"access": result.AccessToken})
}

type accessRequest struct {
	Access string `json:"access"`
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req accessRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.auth.Logout(r.Context(), req.Access); err != nil {
		h.handleError(w, err)
		return
	}

	h.clearRefreshCookie(w)
	writeJSON(w, http.StatusOK, messageResponse{Message: "logged out"})
}

// requireAdmin authenticates the presented access token and admits admins only.
func (h *Handler) requireAdmin(r *http.Request, access string) (model.SessionClaims, error) {
	claims, err := h.auth.Authenticate(r.Context(), access)
	if err != nil {
		return claims, err
	}

	switch claims.Role {
	case model.RoleAdmin:
		return claims, nil
	case model.RoleEmployee, model.RoleClient:
		return claims, model.ErrForbidden
	default:
		return claims, model.ErrUnknownRole
	}
}

func (h *Handler) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/refresh",
		MaxAge:   int(h.refreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func (h *Handler) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/refresh",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
