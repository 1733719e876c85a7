package http

import (
	"net/http"
	"strings"

	"github.com/sgronlund/latias-backend/internal/quiz/service"
	"github.com/sgronlund/latias-backend/pkg/httpx"
	"github.com/sgronlund/latias-backend/pkg/slogx"
)

// RegisterHandler serves POST /v1/auth/register.
// Accepts application/x-www-form-urlencoded: username, password, email.
type RegisterHandler struct {
	AuthService *service.AuthService
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if !parseFormBody(w, r) {
		return
	}

	username := strings.TrimSpace(r.Form.Get("username"))
	password := r.Form.Get("password")
	email := strings.TrimSpace(r.Form.Get("email"))

	if err := h.AuthService.Register(ctx, username, password, email); err != nil {
		writeServiceError(w, log, err)
		return
	}

	log.Info("user registered", "username", username)
	httpx.WriteJSON(w, http.StatusCreated, StatusResponse{Status: "registered"})
}

// LoginHandler serves POST /v1/auth/login.
// Accepts username, password, and the caller's connection_id. The
// outcome is always 200 with a status discriminator, except for
// malformed requests; clients branch on the status string.
type LoginHandler struct {
	AuthService *service.AuthService
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if !parseFormBody(w, r) {
		return
	}

	username := strings.TrimSpace(r.Form.Get("username"))
	password := r.Form.Get("password")
	connectionID := strings.TrimSpace(r.Form.Get("connection_id"))

	outcome, err := h.AuthService.Login(ctx, username, password, connectionID)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	if outcome == service.LoginInvalidInput {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_input", "username, password and connection_id are required")
		return
	}

	log.Info("login attempt", "username", username, "outcome", outcome.String())
	httpx.WriteJSON(w, http.StatusOK, LoginResponse{Status: outcome.String()})
}

// LogoutHandler serves POST /v1/auth/logout.
// Transport disconnect notifications funnel through here too, so an
// unknown connection id is reported but not treated as an error status.
type LogoutHandler struct {
	AuthService *service.AuthService
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	if !parseFormBody(w, r) {
		return
	}

	connectionID := strings.TrimSpace(r.Form.Get("connection_id"))
	if connectionID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_input", "connection_id is required")
		return
	}

	if h.AuthService.Logout(connectionID) {
		log.Info("session closed", "connection_id", connectionID)
		httpx.WriteJSON(w, http.StatusOK, StatusResponse{Status: "logged_out"})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, StatusResponse{Status: "no_session"})
}
