package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"vitrina/guard"
	"vitrina/models"
	"vitrina/service"
)

// AuthController handles admin login and logout
type AuthController struct {
	auth     service.AuthServiceInterface
	sessions guard.SessionLookup
	secure   bool
}

// NewAuthController creates a new AuthController
func NewAuthController(auth service.AuthServiceInterface, sessions guard.SessionLookup, secureCookies bool) *AuthController {
	return &AuthController{
		auth:     auth,
		sessions: sessions,
		secure:   secureCookies,
	}
}

type sessionStatus struct {
	Authenticated bool            `json:"autenticado"`
	Session       *models.Session `json:"sesion,omitempty"`
	Redirect      string          `json:"redirect,omitempty"`
}

// Status handles GET /login
func (c *AuthController) Status(w http.ResponseWriter, r *http.Request) {
	status := sessionStatus{}
	if token := guard.SessionToken(r); token != "" {
		if s, err := c.sessions.GetSession(r.Context(), token); err == nil {
			status = sessionStatus{Authenticated: true, Session: s, Redirect: guard.AdminPrefix}
		}
	}
	writeJSON(w, http.StatusOK, status, "LoginStatus")
}

// Login handles POST /login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Login: Failed to decode request body: %v", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := c.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Correo o contraseña incorrectos")
			return
		}
		log.Printf("❌ Login: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     guard.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, sessionStatus{Authenticated: true, Session: session, Redirect: guard.AdminPrefix}, "Login")
}

// Logout handles POST /logout
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := c.auth.Logout(r.Context(), guard.SessionToken(r)); err != nil {
		log.Printf("❌ Logout: %v", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     guard.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}
