package handler

import (
	"encoding/json"
	"net/http"

	"github.com/panchhi-sarees/storefront-api/internal/application/session"
	"github.com/panchhi-sarees/storefront-api/internal/application/signup"
	"github.com/panchhi-sarees/storefront-api/internal/pkg/validate"
)

// AdminAuthHandler handles admin signup and login endpoints. The flow is the
// same OTP-gated one customers go through; only the staged fields differ.
type AdminAuthHandler struct {
	signups  signup.Service
	sessions session.Service
}

func NewAdminAuthHandler(signups signup.Service, sessions session.Service) *AdminAuthHandler {
	return &AdminAuthHandler{signups: signups, sessions: sessions}
}

func (h *AdminAuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req signup.BeginAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := h.signups.BeginAdmin(r.Context(), req); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "OTP sent to email"})
}

func (h *AdminAuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req signup.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	result, err := h.signups.VerifyAdmin(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, AuthEnvelope{Bearer: result.Bearer, Admin: result.Admin})
}

func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req session.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	result, err := h.sessions.AdminLogin(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{Bearer: result.Bearer, Admin: result.Admin})
}
