package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-lms-auth/internal/application/auth"
	"github.com/go-lms-auth/internal/domain"
	"github.com/go-lms-auth/internal/pkg/validate"
)

const (
	defaultLoginTarget  = "/dashboard"
	defaultLogoutTarget = "/"
	defaultLoginPage    = "/login"
)

// AuthHandler handles registration, login and session endpoints. The
// service is built per request because the tab-scoped store lives on
// the request context.
type AuthHandler struct {
	svc func(r *http.Request) auth.Service
}

func NewAuthHandler(svc func(r *http.Request) auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	acct, err := h.svc(r).Register(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, AuthEnvelope{
		Profile: &domain.Profile{DisplayName: acct.DisplayName, Email: acct.Email},
		Message: "account created",
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	svc := h.svc(r)
	sess, err := svc.Login(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	redirect := defaultLoginTarget
	if dest, ok := svc.TakeIntendedDestination(r.Context()); ok {
		redirect = dest
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{Session: sess, Redirect: redirect})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc(r).Logout(r.Context()); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{Redirect: defaultLogoutTarget, Message: "signed out"})
}

func (h *AuthHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc(r).CurrentUser(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	if sess == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, SessionEnvelope{Session: sess})
}

// Require gates a client page. The path query parameter names the page
// being gated; anonymous callers get 401 with a redirect target and
// the path is remembered for after login.
func (h *AuthHandler) Require(w http.ResponseWriter, r *http.Request) {
	currentPath := r.URL.Query().Get("path")
	if currentPath == "" {
		currentPath = defaultLoginTarget
	}
	fallback := r.URL.Query().Get("fallback")
	if fallback == "" {
		fallback = defaultLoginPage
	}
	redirect, ok, err := h.svc(r).RequireAuth(r.Context(), currentPath, fallback)
	if err != nil {
		httpError(w, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusUnauthorized, AuthEnvelope{Redirect: redirect, Error: "authentication required"})
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "ok"})
}
