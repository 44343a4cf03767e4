package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush/employee-admin/internal/models"
)

type mockAuthenticator struct {
	loginFunc  func(ctx context.Context, username, password, userAgent string) (string, error)
	logoutFunc func(ctx context.Context, id *Identity) error
}

func (m *mockAuthenticator) Login(ctx context.Context, username, password, userAgent string) (string, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, username, password, userAgent)
	}
	return "", errors.New("not implemented")
}

func (m *mockAuthenticator) Logout(ctx context.Context, id *Identity) error {
	if m.logoutFunc != nil {
		return m.logoutFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func newTestHandler(m *mockAuthenticator) *Handler {
	return NewHandler(m, NewCookieHelper(false, 30*24*time.Hour))
}

func loginRequest(t *testing.T, target string, body interface{}) *http.Request {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "X")
	return req
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == AccessTokenCookie {
			return c
		}
	}
	return nil
}

func TestHandler_Login_Success(t *testing.T) {
	var gotAgent string
	h := newTestHandler(&mockAuthenticator{
		loginFunc: func(_ context.Context, username, password, userAgent string) (string, error) {
			gotAgent = userAgent
			return "signed-token", nil
		},
	})

	rec := httptest.NewRecorder()
	h.Login(rec, loginRequest(t, "/login", models.LoginRequest{Username: testUser, Password: testPassword}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "X", gotAgent)

	var resp models.LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Auth)
	assert.Equal(t, testUser, resp.Name)
	assert.Empty(t, resp.RedirectTo)

	c := sessionCookie(rec)
	require.NotNil(t, c)
	assert.Equal(t, "signed-token", c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 30*24*60*60, c.MaxAge)
}

func TestHandler_Login_ReturnsDecodedRedirect(t *testing.T) {
	h := newTestHandler(&mockAuthenticator{
		loginFunc: func(context.Context, string, string, string) (string, error) { return "tok", nil },
	})

	target := LoginRedirect("/login", "/users?x=1")
	rec := httptest.NewRecorder()
	h.Login(rec, loginRequest(t, target, models.LoginRequest{Username: "a", Password: "b"}))

	var resp models.LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "/users?x=1", resp.RedirectTo)
}

func TestHandler_Login_Failure(t *testing.T) {
	h := newTestHandler(&mockAuthenticator{
		loginFunc: func(context.Context, string, string, string) (string, error) {
			return "", ErrInvalidCredentials
		},
	})

	rec := httptest.NewRecorder()
	h.Login(rec, loginRequest(t, "/login", models.LoginRequest{Username: "a", Password: "b"}))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"auth":false}`, rec.Body.String())
	assert.Nil(t, sessionCookie(rec))
}

func TestHandler_Login_MalformedBody(t *testing.T) {
	h := newTestHandler(&mockAuthenticator{})

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"auth":false}`, rec.Body.String())
}

func TestHandler_Logout(t *testing.T) {
	var ended *Identity
	h := newTestHandler(&mockAuthenticator{
		logoutFunc: func(_ context.Context, id *Identity) error {
			ended = id
			return nil
		},
	})

	id := &Identity{Username: testUser, SessionID: "sid"}
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req = req.WithContext(WithIdentity(req.Context(), id))
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"logout successfully"}`, rec.Body.String())
	assert.Equal(t, id, ended)

	c := sessionCookie(rec)
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
	assert.Less(t, c.MaxAge, 0)
}

func TestHandler_Logout_WithoutIdentity(t *testing.T) {
	h := newTestHandler(&mockAuthenticator{})

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodGet, "/logout", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_Session(t *testing.T) {
	h := newTestHandler(&mockAuthenticator{})

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req = req.WithContext(WithIdentity(req.Context(), &Identity{Username: testUser, SessionID: "sid"}))
	rec := httptest.NewRecorder()
	h.Session(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"auth":true,"name":"Hukum Gupta"}`, rec.Body.String())
}
