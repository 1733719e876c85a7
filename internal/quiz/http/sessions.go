package http

import (
	"net/http"

	"github.com/sgronlund/latias-backend/internal/quiz/service"
	"github.com/sgronlund/latias-backend/pkg/httpx"
)

// SessionHandler serves GET /v1/sessions/{connectionID}, resolving a
// connection to the username logged in over it.
type SessionHandler struct {
	AuthService *service.AuthService
}

func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	connectionID := r.PathValue("connectionID")
	if connectionID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_input", "connection id is required")
		return
	}

	username, ok := h.AuthService.LookupUsername(connectionID)
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "no session for that connection")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, SessionResponse{Username: username})
}
