package rest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/velorent/velorent-auth/internal/mocks"
	"github.com/velorent/velorent-auth/internal/model"
	"github.com/velorent/velorent-auth/internal/service"
	"github.com/velorent/velorent-auth/internal/testutil"
)

func newTestHandler(auth *mocks.AuthService, accounts *mocks.AccountService, resets *mocks.PasswordResetService) *Handler {
	return NewHandler(auth, accounts, resets, nil, 7*24*time.Hour, "https://app.velorent.test", testutil.MakeNoopLogger())
}

func doRequest(h *Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func refreshCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == refreshCookieName {
			return c
		}
	}
	return nil
}

func TestHandleLogin_ClientSuccess(t *testing.T) {
	user := model.User{ID: uuid.New(), Email: "c@example.com", Name: "Ada", Surname: "Lovelace", Role: model.RoleClient}
	phone := "+34600000000"
	info := &model.UserInfo{UserID: user.ID, BirthDate: time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC), NationalID: "X123", Phone: &phone}

	auth := &mocks.AuthService{}
	auth.On("Login", mock.Anything, "c@example.com", "secret", (*int)(nil)).
		Return(service.LoginResult{AccessToken: "acc", RefreshToken: "ref", User: user, Info: info}, nil).Once()

	h := newTestHandler(auth, &mocks.AccountService{}, &mocks.PasswordResetService{})
	rec := doRequest(h, http.MethodPost, "/login", `{"email":"c@example.com","password":"secret"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access":"acc"`)
	assert.Contains(t, rec.Body.String(), `"birth_date":"14-03-1990"`)

	cookie := refreshCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Equal(t, "ref", cookie.Value)
	assert.Equal(t, "/refresh", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
}

func TestHandleLogin_TwoFactorPending(t *testing.T) {
	auth := &mocks.AuthService{}
	auth.On("Login", mock.Anything, "e@example.com", "secret", (*int)(nil)).
		Return(service.LoginResult{TwoFactorSent: true}, nil).Once()

	h := newTestHandler(auth, &mocks.AccountService{}, &mocks.PasswordResetService{})
	rec := doRequest(h, http.MethodPost, "/login", `{"email":"e@example.com","password":"secret"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "2FA email sent")
	assert.Nil(t, refreshCookie(t, rec))
}

func TestHandleLogin_WithCode(t *testing.T) {
	code := 123456
	auth := &mocks.AuthService{}
	auth.On("Login", mock.Anything, "e@example.com", "secret", &code).
		Return(service.LoginResult{AccessToken: "acc", RefreshToken: "ref", User: model.User{ID: uuid.New(), Role: model.RoleEmployee}}, nil).Once()

	h := newTestHandler(auth, &mocks.AccountService{}, &mocks.PasswordResetService{})
	rec := doRequest(h, http.MethodPost, "/login", `{"email":"e@example.com","password":"secret","code":123456}`)

	require.Equal(t, http.StatusOK, rec.Code)
	auth.AssertExpectations(t)
}

func TestHandleLogin_BadCredentials(t *testing.T) {
	auth := &mocks.AuthService{}
	auth.On("Login", mock.Anything, "c@example.com", "nope", (*int)(nil)).
		Return(service.LoginResult{}, model.ErrInvalidCredentials).Once()

	h := newTestHandler(auth, &mocks.AccountService{}, &mocks.PasswordResetService{})
	rec := doRequest(h, http.MethodPost, "/login", `{"email":"c@example.com","password":"nope"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleLogin_MissingFields(t *testing.T) {
	h := newTestHandler(&mocks.AuthService{}, &mocks.AccountService{}, &mocks.PasswordResetService{})
	rec := doRequest(h, http.MethodPost, "/login", `{"email":"c@example.com"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleLogin_MalformedBody(t *testing.T) {
	h := newTestHandler(&mocks.AuthService{}, &mocks.AccountService{}, &mocks.PasswordResetService{})
	rec := doRequest(h, http.MethodPost, "/login", `{"email":`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleRefresh_RotatesCookie(t *testing.T) {
	auth := &mocks.AuthService{}
	auth.On("Refresh", mock.Anything, "old-refresh").
		Return(service.LoginResult{AccessToken: "new-acc", RefreshToken: "new-ref"}, nil).Once()

	h := newTestHandler(auth, &mocks.AccountService{}, &mocks.PasswordResetService{})

	req := httptest.NewRequest(http.MethodGet, "/refresh", nil)
	req.AddCookie(&http.Cookie{Name: refreshCookieName, Value: "old-refresh"})
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access":"new-acc"`)

	cookie := refreshCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Equal(t, "new-ref", cookie.Value)
}

func TestHandleRefresh_NoCookie(t *testing.T) {
	h := newTestHandler(&mocks.AuthService{}, &mocks.AccountService{}, &mocks.PasswordResetService{})
	rec := doRequest(h, http.MethodGet, "/refresh", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleRefresh_StaleToken(t *testing.T) {
	auth := &mocks.AuthService{}
	auth.On("Refresh", mock.Anything, "superseded").
		Return(service.LoginResult{}, model.ErrTokenMismatch).Once()

	h := newTestHandler(auth, &mocks.AccountService{}, &mocks.PasswordResetService{})

	req := httptest.NewRequest(http.MethodGet, "/refresh", nil)
	req.AddCookie(&http.Cookie{Name: refreshCookieName, Value: "superseded"})
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// the stale cookie is cleared so the client stops replaying it
	cookie := refreshCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestHandleRefresh_GarbageToken(t *testing.T) {
	auth := &mocks.AuthService{}
	auth.On("Refresh", mock.Anything, "garbage").
		Return(service.LoginResult{}, model.ErrInvalidToken).Once()

	h := newTestHandler(auth, &mocks.AccountService{}, &mocks.PasswordResetService{})

	req := httptest.NewRequest(http.MethodGet, "/refresh", nil)
	req.AddCookie(&http.Cookie{Name: refreshCookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleLogout(t *testing.T) {
	auth := &mocks.AuthService{}
	auth.On("Logout", mock.Anything, "acc").Return(nil).Once()

	h := newTestHandler(auth, &mocks.AccountService{}, &mocks.PasswordResetService{})
	rec := doRequest(h, http.MethodPost, "/logout", `{"access":"acc"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	cookie := refreshCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
}

func TestHandleLogout_InvalidToken(t *testing.T) {
	auth := &mocks.AuthService{}
	auth.On("Logout", mock.Anything, "expired").Return(model.ErrInvalidToken).Once()

	h := newTestHandler(auth, &mocks.AccountService{}, &mocks.PasswordResetService{})
	rec := doRequest(h, http.MethodPost, "/logout", `{"access":"expired"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	h := newTestHandler(&mocks.AuthService{}, &mocks.AccountService{}, &mocks.PasswordResetService{})
	rec := doRequest(h, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestCORSPreflight(t *testing.T) {
	h := newTestHandler(&mocks.AuthService{}, &mocks.AccountService{}, &mocks.PasswordResetService{})
	rec := doRequest(h, http.MethodOptions, "/login", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.velorent.test", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}
