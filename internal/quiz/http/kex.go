package http

import (
	"errors"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sgronlund/latias-backend/pkg/httpx"
	"github.com/sgronlund/latias-backend/pkg/idx"
	"github.com/sgronlund/latias-backend/pkg/legacykex"
	"github.com/sgronlund/latias-backend/pkg/slogx"
)

// exchangeTTL bounds how long a started handshake may wait for its
// finish call before the server forgets it.
const exchangeTTL = 5 * time.Minute

type pendingExchange struct {
	ex      *legacykex.Exchange
	started time.Time
}

// KexHandler serves the legacy key-exchange handshake:
//
//	POST /v1/kex/start   mint an exchange, return the server public key
//	POST /v1/kex/finish  take the client public key, return the shared value
//
// The handshake only obscures legacy-client passwords on the wire; see
// the legacykex package doc for why it is not a security boundary.
type KexHandler struct {
	mu      sync.Mutex
	pending map[idx.ID]pendingExchange
}

func NewKexHandler() *KexHandler {
	return &KexHandler{pending: make(map[idx.ID]pendingExchange)}
}

func (h *KexHandler) put(id idx.ID, ex *legacykex.Exchange) {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := time.Now()
	for key, p := range h.pending {
		if now.Sub(p.started) > exchangeTTL {
			delete(h.pending, key)
		}
	}
	h.pending[id] = pendingExchange{ex: ex, started: now}
}

func (h *KexHandler) take(id idx.ID) (*legacykex.Exchange, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	p, ok := h.pending[id]
	if !ok {
		return nil, false
	}
	delete(h.pending, id)
	if time.Since(p.started) > exchangeTTL {
		return nil, false
	}
	return p.ex, true
}

// Start mints a new exchange and hands the client the group parameters
// and server public key.
func (h *KexHandler) Start(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	ex, err := legacykex.NewExchange()
	if err != nil {
		log.Error("key exchange init failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	id := idx.New()
	h.put(id, ex)

	g, p := legacykex.Params()
	httpx.WriteJSON(w, http.StatusOK, KexStartResponse{
		ExchangeID: id.String(),
		ServerKey:  ex.Public().Int64(),
		Generator:  g.Int64(),
		Prime:      p.Int64(),
	})
}

// Finish consumes the exchange and returns the shared value. Form
// fields: exchange_id, client_key. Each exchange finishes at most once.
func (h *KexHandler) Finish(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	if !parseFormBody(w, r) {
		return
	}

	id, err := idx.Parse(strings.TrimSpace(r.Form.Get("exchange_id")))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_input", "malformed exchange_id")
		return
	}

	clientKey, err := strconv.ParseInt(strings.TrimSpace(r.Form.Get("client_key")), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_input", "client_key must be an integer")
		return
	}

	ex, ok := h.take(id)
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "no pending exchange with that id")
		return
	}

	shared, err := ex.SharedSecret(big.NewInt(clientKey))
	if err != nil {
		if errors.Is(err, legacykex.ErrInvalidPublicKey) {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_input", "client_key out of range")
			return
		}
		log.Error("key exchange failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, KexFinishResponse{SharedKey: shared.Int64()})
}
