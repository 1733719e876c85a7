package http

import (
	"net/http"
	"strings"

	"github.com/sgronlund/latias-backend/internal/quiz/service"
	"github.com/sgronlund/latias-backend/pkg/httpx"
	"github.com/sgronlund/latias-backend/pkg/slogx"
)

// PasswordResetHandler serves the forgot-password endpoints:
//
//	POST /v1/password/reset   issue and mail a reset code
//	POST /v1/password/code    verify a code against an email
//	POST /v1/password/update  set the new password
type PasswordResetHandler struct {
	ResetService *service.PasswordResetService
}

// RequestReset verifies the account exists, then issues the code. The
// code travels by mail only and never appears in the response.
func (h *PasswordResetHandler) RequestReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if !parseFormBody(w, r) {
		return
	}

	email := strings.TrimSpace(r.Form.Get("email"))

	known, err := h.ResetService.CheckMail(ctx, email)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	if !known {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "no account with that email")
		return
	}

	if _, err := h.ResetService.RequestReset(ctx, email); err != nil {
		writeServiceError(w, log, err)
		return
	}

	log.Info("reset code issued", "email", email)
	httpx.WriteJSON(w, http.StatusOK, StatusResponse{Status: "code_sent"})
}

// CheckCode reports whether a submitted code matches the account.
func (h *PasswordResetHandler) CheckCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if !parseFormBody(w, r) {
		return
	}

	code := strings.TrimSpace(r.Form.Get("code"))
	email := strings.TrimSpace(r.Form.Get("email"))

	ok, err := h.ResetService.CheckCode(ctx, code, email)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, CodeCheckResponse{Valid: ok})
}

// UpdatePassword stores the replacement password. An unknown email
// still reports success; the account's existence was already settled
// earlier in the flow.
func (h *PasswordResetHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if !parseFormBody(w, r) {
		return
	}

	email := strings.TrimSpace(r.Form.Get("email"))
	password := r.Form.Get("password")

	if err := h.ResetService.UpdatePassword(ctx, email, password); err != nil {
		writeServiceError(w, log, err)
		return
	}

	log.Info("password updated", "email", email)
	httpx.WriteJSON(w, http.StatusOK, StatusResponse{Status: "updated"})
}
