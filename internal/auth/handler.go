package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/ayush/employee-admin/internal/apperr"
	"github.com/ayush/employee-admin/internal/httpx"
	"github.com/ayush/employee-admin/internal/models"
)

// Authenticator is the part of the gate the handlers drive.
type Authenticator interface {
	Login(ctx context.Context, username, password, userAgent string) (string, error)
	Logout(ctx context.Context, id *Identity) error
}

// Handler holds auth-related HTTP handlers.
type Handler struct {
	gate    Authenticator
	cookies *CookieHelper
}

func NewHandler(gate Authenticator, cookies *CookieHelper) *Handler {
	return &Handler{gate: gate, cookies: cookies}
}

// Login authenticates a user and sets the session cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusUnauthorized, models.LoginResponse{Auth: false})
		return
	}

	token, err := h.gate.Login(r.Context(), req.Username, req.Password, r.UserAgent())
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("username", req.Username).Msg("login failed")
		httpx.WriteJSON(w, http.StatusUnauthorized, models.LoginResponse{Auth: false})
		return
	}

	h.cookies.Set(w, token)
	hlog.FromRequest(r).Info().Str("username", req.Username).Msg("login")

	resp := models.LoginResponse{Auth: true, Name: req.Username}
	if path, ok := ReturnPath(r.URL.Query().Get(ReturnPathParam)); ok {
		resp.RedirectTo = path
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// Logout destroys the current session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFrom(r.Context())
	if !ok {
		httpx.WriteError(w, r, apperr.ErrUnauthorized)
		return
	}

	h.cookies.Clear(w)
	if err := h.gate.Logout(r.Context(), id); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "logout successfully")
}

// Session reports the authenticated user, letting the client refresh its cached
// login state from the server.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFrom(r.Context())
	if !ok {
		httpx.WriteError(w, r, apperr.ErrUnauthorized)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, models.LoginResponse{Auth: true, Name: id.Username})
}
