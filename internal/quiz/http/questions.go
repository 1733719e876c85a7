package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/sgronlund/latias-backend/internal/quiz/domain"
	"github.com/sgronlund/latias-backend/internal/quiz/service"
	"github.com/sgronlund/latias-backend/pkg/httpx"
	"github.com/sgronlund/latias-backend/pkg/slogx"
)

// BankHandler serves the per-variant question bank endpoints. Banks is
// keyed by variant name ("news", "article"); an unknown name is a 404.
type BankHandler struct {
	Banks map[string]*service.QuestionBankService
}

func (h *BankHandler) bankFor(w http.ResponseWriter, r *http.Request) (*service.QuestionBankService, bool) {
	name := r.PathValue("variant")
	bank, ok := h.Banks[name]
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, "unknown_bank", "no question bank named "+name)
		return nil, false
	}
	return bank, true
}

// parseWeek turns a week string into an int. Empty and garbage both
// collapse to zero, which the services treat as missing input.
func parseWeek(raw string) int {
	week, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return week
}

func questionResponse(q domain.Question) QuestionResponse {
	return QuestionResponse{
		Question: q.Text,
		Answers:  q.Answers(),
		Week:     q.Week,
	}
}

// AddQuestion serves POST /v1/banks/{variant}/questions.
// Form fields: question, week, and a repeated answers field with the
// wrong answers first and the correct answer last.
func (h *BankHandler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	bank, ok := h.bankFor(w, r)
	if !ok {
		return
	}
	if !parseFormBody(w, r) {
		return
	}

	text := strings.TrimSpace(r.Form.Get("question"))
	week := parseWeek(r.Form.Get("week"))
	answers := r.Form["answers"]

	if err := bank.AddQuestion(ctx, text, answers, week); err != nil {
		writeServiceError(w, log, err)
		return
	}

	log.Info("question added", "bank", bank.Variant.Name, "week", week)
	httpx.WriteJSON(w, http.StatusCreated, StatusResponse{Status: "added"})
}

// ListQuestions serves GET /v1/banks/{variant}/questions?week=N.
// An empty week is a 404, matching the services.
func (h *BankHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	bank, ok := h.bankFor(w, r)
	if !ok {
		return
	}

	week := parseWeek(r.URL.Query().Get("week"))

	qs, err := bank.QuestionsForWeek(ctx, week)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	out := QuestionsResponse{Questions: make([]QuestionResponse, 0, len(qs))}
	for _, q := range qs {
		out.Questions = append(out.Questions, questionResponse(q))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// GetQuestion serves GET /v1/banks/{variant}/question?text=...&week=N.
func (h *BankHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	bank, ok := h.bankFor(w, r)
	if !ok {
		return
	}

	text := strings.TrimSpace(r.URL.Query().Get("text"))
	week := parseWeek(r.URL.Query().Get("week"))

	q, err := bank.GetQuestion(ctx, text, week)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, questionResponse(q))
}

// ResetWeek serves DELETE /v1/banks/{variant}/weeks/{week}.
func (h *BankHandler) ResetWeek(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	bank, ok := h.bankFor(w, r)
	if !ok {
		return
	}

	week := parseWeek(r.PathValue("week"))

	done, err := bank.ResetWeek(ctx, week)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	if !done {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_week", "week is required")
		return
	}

	log.Info("week reset", "bank", bank.Variant.Name, "week", week)
	httpx.WriteJSON(w, http.StatusOK, StatusResponse{Status: "reset"})
}

// CheckAnswer serves POST /v1/banks/{variant}/check.
// Form fields: question, answer.
func (h *BankHandler) CheckAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	bank, ok := h.bankFor(w, r)
	if !ok {
		return
	}
	if !parseFormBody(w, r) {
		return
	}

	text := strings.TrimSpace(r.Form.Get("question"))
	answer := strings.TrimSpace(r.Form.Get("answer"))

	correct, err := bank.CheckAnswer(ctx, text, answer)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, CheckResponse{Correct: correct})
}
