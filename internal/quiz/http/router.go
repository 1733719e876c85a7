package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/sgronlund/latias-backend/internal/quiz/domain"
	"github.com/sgronlund/latias-backend/internal/quiz/service"
	"github.com/sgronlund/latias-backend/internal/quiz/store"
	"github.com/sgronlund/latias-backend/pkg/httpx"
	"github.com/sgronlund/latias-backend/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store           store.Store
	AuthService     *service.AuthService
	BankServices    map[string]*service.QuestionBankService
	ResetService    *service.PasswordResetService
	ProgressService *service.ProgressService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerSessions()
	r.registerPasswordReset()
	r.registerBanks()
	r.registerProgress()
	r.registerKex()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// Credential endpoints carry the strictest limits; login failures
	// keyed by both IP and the attempted username.
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(&RegisterHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(httpx.ParseRateLimitFromEnv("REGISTER", httpx.StrictLimit)),
		))

	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(&LoginHandler{AuthService: r.AuthService},
			httpx.RateLimitByIPAndFormField(
				httpx.ParseRateLimitFromEnv("LOGIN", httpx.ModerateLimit), "username"),
		))

	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(&LogoutHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(httpx.LenientLimit),
		))
}

func (r *Router) registerSessions() {
	r.Mux.Handle("GET /v1/sessions/{connectionID}",
		httpx.Chain(&SessionHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(httpx.LenientLimit),
		))
}

func (r *Router) registerPasswordReset() {
	h := &PasswordResetHandler{ResetService: r.ResetService}

	// Reset issuance keyed by the target email so one address cannot be
	// flooded from many clients.
	r.Mux.Handle("POST /v1/password/reset",
		httpx.Chain(http.HandlerFunc(h.RequestReset),
			httpx.RateLimitByIPAndFormField(
				httpx.ParseRateLimitFromEnv("RESET", httpx.StrictLimit), "email"),
		))

	r.Mux.Handle("POST /v1/password/code",
		httpx.Chain(http.HandlerFunc(h.CheckCode),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		))

	r.Mux.Handle("POST /v1/password/update",
		httpx.Chain(http.HandlerFunc(h.UpdatePassword),
			httpx.RateLimitByIP(httpx.StrictLimit),
		))
}

func (r *Router) registerBanks() {
	h := &BankHandler{Banks: r.BankServices}

	r.Mux.Handle("POST /v1/banks/{variant}/questions",
		httpx.Chain(http.HandlerFunc(h.AddQuestion),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		))

	r.Mux.Handle("GET /v1/banks/{variant}/questions",
		httpx.Chain(http.HandlerFunc(h.ListQuestions),
			httpx.RateLimitByIP(httpx.LenientLimit),
		))

	r.Mux.Handle("GET /v1/banks/{variant}/question",
		httpx.Chain(http.HandlerFunc(h.GetQuestion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		))

	r.Mux.Handle("DELETE /v1/banks/{variant}/weeks/{week}",
		httpx.Chain(http.HandlerFunc(h.ResetWeek),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		))

	r.Mux.Handle("POST /v1/banks/{variant}/check",
		httpx.Chain(http.HandlerFunc(h.CheckAnswer),
			httpx.RateLimitByIP(httpx.LenientLimit),
		))
}

func (r *Router) registerProgress() {
	h := &ProgressHandler{ProgressService: r.ProgressService}

	r.Mux.Handle("POST /v1/progress/score",
		httpx.Chain(http.HandlerFunc(h.AddScore),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		))

	r.Mux.Handle("GET /v1/progress/{username}",
		httpx.Chain(http.HandlerFunc(h.Get),
			httpx.RateLimitByIP(httpx.LenientLimit),
		))

	r.Mux.Handle("POST /v1/progress/redeem",
		httpx.Chain(http.HandlerFunc(h.Redeem),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		))
}

func (r *Router) registerKex() {
	h := NewKexHandler()

	r.Mux.Handle("POST /v1/kex/start",
		httpx.Chain(http.HandlerFunc(h.Start),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		))

	r.Mux.Handle("POST /v1/kex/finish",
		httpx.Chain(http.HandlerFunc(h.Finish),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
	r.Mux.Handle("GET /v1/countdown", CountdownHandler(time.Now))
}

// NewBankServices builds one bank service per shipped variant, keyed by
// wire name.
func NewBankServices(st store.Store) map[string]*service.QuestionBankService {
	out := make(map[string]*service.QuestionBankService)
	for _, v := range domain.Variants() {
		out[v.Name] = &service.QuestionBankService{Store: st, Variant: v}
	}
	return out
}
