package handler

// ADMIN AUTH FLOW:
//  1. POST /api/admin/login with {"username", "password"}.
//  2. AuthService verifies the bcrypt hash and signs a JWT.
//  3. We answer {"token", "user"} and also set the token as an HttpOnly
//     cookie, so a browser front-end never has to touch it from JavaScript
//     while scripts and curl can still send it as a Bearer header.
//  4. auth.RequireAuth guards everything else under /api/admin.

import (
	"log/slog"
	"net/http"

	"github.com/ghiffarsabda/kormimvp/internal/auth"
	"github.com/ghiffarsabda/kormimvp/internal/model"
	"github.com/ghiffarsabda/kormimvp/internal/schema"
	"github.com/ghiffarsabda/kormimvp/internal/service"
)

type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: authService, logger: logger}
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// HandleLogin handles POST /api/admin/login.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in schema.LoginInput
	if err := decode(w, r, &in); err != nil {
		respondError(w, r, h.logger, err, "Failed to log in")
		return
	}

	res, err := h.auth.Login(r.Context(), in.Username, in.Password)
	if err != nil {
		respondError(w, r, h.logger, err, "Failed to log in")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    res.Token,
		Path:     "/api",
		MaxAge:   h.auth.TokenTTL(),
		HttpOnly: true, // not readable from JavaScript
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, LoginResponse{Token: res.Token, User: res.User})
}

// HandleLogout handles POST /api/admin/logout. Tokens are stateless, so this
// only asks the browser to drop the cookie.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/api",
		MaxAge:   -1, // delete now
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "logged out"})
}

// HandleMe handles GET /api/admin/me. It must sit behind auth.RequireAuth.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "valid authentication required",
		})
		return
	}

	user, err := h.auth.CurrentUser(r.Context(), userID)
	if err != nil {
		respondError(w, r, h.logger, err, "Failed to fetch account")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
