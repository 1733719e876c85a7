package http

import (
	"net/http"
	"time"

	"github.com/sgronlund/latias-backend/internal/quiz/service"
	"github.com/sgronlund/latias-backend/internal/quiz/store"
	"github.com/sgronlund/latias-backend/pkg/httpx"
)

// LivezHandler always reports ok while the process is up.
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler also verifies the database can be reached.
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &HealthChecks{Database: "ok"}
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}

// CountdownHandler serves GET /v1/countdown: the time remaining until
// the weekly question rollover, in the string shape legacy clients show
// verbatim.
func CountdownHandler(now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seconds := service.SecondsUntilWeekReset(now())
		httpx.WriteJSON(w, http.StatusOK, CountdownResponse{
			Seconds:   seconds,
			Countdown: service.FormatCountdown(seconds),
		})
	}
}
