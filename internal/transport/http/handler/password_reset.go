package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/go-lms-auth/internal/application/auth"
	"github.com/go-lms-auth/internal/domain"
	"github.com/go-lms-auth/internal/pkg/validate"
)

// PasswordResetHandler handles the password reset flow endpoints.
type PasswordResetHandler struct {
	svc func(r *http.Request) auth.Service
}

func NewPasswordResetHandler(svc func(r *http.Request) auth.Service) *PasswordResetHandler {
	return &PasswordResetHandler{svc: svc}
}

func (h *PasswordResetHandler) Action(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "action") {
	case "request":
		var req domain.ResetCodeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := validate.Struct(&req); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		c, err := h.svc(r).SendResetCode(r.Context(), req.Email)
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ResetEnvelope{Message: "reset code sent", Code: c})
	case "confirm":
		var req domain.ResetConfirmRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := validate.Struct(&req); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if err := h.svc(r).VerifyAndReset(r.Context(), req); err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "password updated"})
	default:
		writeError(w, http.StatusBadRequest, "unknown action")
	}
}
