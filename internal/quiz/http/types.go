package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sgronlund/latias-backend/internal/quiz/service"
	"github.com/sgronlund/latias-backend/internal/quiz/store"
	"github.com/sgronlund/latias-backend/pkg/httpx"
)

// StatusResponse is the generic success envelope for mutating endpoints.
type StatusResponse struct {
	Status string `json:"status"`
}

// LoginResponse carries the login outcome discriminator.
type LoginResponse struct {
	Status string `json:"status"`
}

// SessionResponse resolves a connection id to its username.
type SessionResponse struct {
	Username string `json:"username"`
}

// QuestionResponse is one stored quiz question. Answers carries the
// wrong answers first and the correct answer last, the order clients
// shuffle themselves.
type QuestionResponse struct {
	Question string   `json:"question"`
	Answers  []string `json:"answers"`
	Week     int      `json:"week"`
}

// QuestionsResponse wraps a week's question list.
type QuestionsResponse struct {
	Questions []QuestionResponse `json:"questions"`
}

// CheckResponse reports an answer verdict.
type CheckResponse struct {
	Correct bool `json:"correct"`
}

// CodeCheckResponse reports a reset-code verdict.
type CodeCheckResponse struct {
	Valid bool `json:"valid"`
}

// ProgressResponse carries a user's quiz progress.
type ProgressResponse struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
	Balance  int    `json:"balance"`
}

// CountdownResponse carries the time left until the weekly rollover.
type CountdownResponse struct {
	Seconds   int    `json:"seconds"`
	Countdown string `json:"countdown"`
}

// HealthChecks itemizes dependency status for the readiness probe.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is shared by the liveness and readiness probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// KexStartResponse hands the client the public half of an exchange.
type KexStartResponse struct {
	ExchangeID string `json:"exchange_id"`
	ServerKey  int64  `json:"server_key"`
	Generator  int64  `json:"generator"`
	Prime      int64  `json:"prime"`
}

// KexFinishResponse acknowledges the computed shared value.
type KexFinishResponse struct {
	SharedKey int64 `json:"shared_key"`
}

// writeServiceError maps service and store sentinels to HTTP status
// codes. Unexpected errors are logged and hidden behind a 500.
func writeServiceError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_input", "missing or malformed field")
	case errors.Is(err, service.ErrReservedName):
		httpx.WriteError(w, http.StatusBadRequest, "reserved_name", "that username cannot be registered")
	case errors.Is(err, service.ErrInvalidEmail):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_email", "email address is malformed")
	case errors.Is(err, service.ErrTaken):
		httpx.WriteError(w, http.StatusConflict, "taken", "username or email already registered")
	case errors.Is(err, service.ErrInvalidArity):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_answer_count", "answer count does not match the bank")
	case errors.Is(err, service.ErrInvalidWeek):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_week", "week must be between 1 and 52")
	case errors.Is(err, service.ErrDuplicateQuestion):
		httpx.WriteError(w, http.StatusConflict, "duplicate_question", "question text already in the bank")
	case errors.Is(err, service.ErrBankFull):
		httpx.WriteError(w, http.StatusConflict, "bank_full", "week already holds the maximum number of questions")
	case errors.Is(err, service.ErrInsufficientBalance):
		httpx.WriteError(w, http.StatusConflict, "insufficient_balance", "balance too low for this redemption")
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "no matching record")
	default:
		log.Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "internal error")
	}
}

// parseFormBody rejects non-form content types and parses the body.
// Returns false after writing the error response.
func parseFormBody(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed form body")
		return false
	}
	return true
}
