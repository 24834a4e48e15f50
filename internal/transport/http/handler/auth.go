package handler

import (
	"encoding/json"
	"net/http"

	"github.com/panchhi-sarees/storefront-api/internal/application/session"
	"github.com/panchhi-sarees/storefront-api/internal/application/signup"
	"github.com/panchhi-sarees/storefront-api/internal/pkg/validate"
)

// AuthHandler handles customer signup and login endpoints.
type AuthHandler struct {
	signups  signup.Service
	sessions session.Service
}

func NewAuthHandler(signups signup.Service, sessions session.Service) *AuthHandler {
	return &AuthHandler{signups: signups, sessions: sessions}
}

// Register stages the signup and emails a verification code. No account
// exists until Verify succeeds.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req signup.BeginCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := h.signups.BeginCustomer(r.Context(), req); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "OTP sent to email"})
}

func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req signup.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	result, err := h.signups.VerifyCustomer(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, AuthEnvelope{Bearer: result.Bearer, Customer: result.Customer})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req session.CustomerLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	result, err := h.sessions.CustomerLogin(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{Bearer: result.Bearer, Customer: result.Customer})
}
