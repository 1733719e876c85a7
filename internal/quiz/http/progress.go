package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/sgronlund/latias-backend/internal/quiz/service"
	"github.com/sgronlund/latias-backend/pkg/httpx"
	"github.com/sgronlund/latias-backend/pkg/slogx"
)

// ProgressHandler serves the score and coupon-balance endpoints:
//
//	POST /v1/progress/score       credit points after a correct answer
//	GET  /v1/progress/{username}  current score and balance
//	POST /v1/progress/redeem      spend balance on a coupon
type ProgressHandler struct {
	ProgressService *service.ProgressService
}

// AddScore credits points (form: username, points) and optionally
// coupon currency (form: balance) in one call.
func (h *ProgressHandler) AddScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if !parseFormBody(w, r) {
		return
	}

	username := strings.TrimSpace(r.Form.Get("username"))
	points, err := strconv.Atoi(strings.TrimSpace(r.Form.Get("points")))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_input", "points must be an integer")
		return
	}

	if err := h.ProgressService.AddScore(ctx, username, points); err != nil {
		writeServiceError(w, log, err)
		return
	}

	if raw := strings.TrimSpace(r.Form.Get("balance")); raw != "" {
		amount, err := strconv.Atoi(raw)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_input", "balance must be an integer")
			return
		}
		if err := h.ProgressService.AddBalance(ctx, username, amount); err != nil {
			writeServiceError(w, log, err)
			return
		}
	}

	log.Info("score credited", "username", username, "points", points)
	httpx.WriteJSON(w, http.StatusOK, StatusResponse{Status: "credited"})
}

// Get serves GET /v1/progress/{username}.
func (h *ProgressHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	username := r.PathValue("username")

	u, err := h.ProgressService.Progress(ctx, username)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ProgressResponse{
		Username: u.Username,
		Score:    u.Score,
		Balance:  u.Balance,
	})
}

// Redeem spends coupon balance (form: username, amount).
func (h *ProgressHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if !parseFormBody(w, r) {
		return
	}

	username := strings.TrimSpace(r.Form.Get("username"))
	amount, err := strconv.Atoi(strings.TrimSpace(r.Form.Get("amount")))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_input", "amount must be an integer")
		return
	}

	if err := h.ProgressService.SpendBalance(ctx, username, amount); err != nil {
		writeServiceError(w, log, err)
		return
	}

	log.Info("coupon redeemed", "username", username, "amount", amount)
	httpx.WriteJSON(w, http.StatusOK, StatusResponse{Status: "redeemed"})
}
