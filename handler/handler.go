// Package handler exposes the checkout-session creation endpoint.
//
// Each request is an independent, stateless unit of work: method gate,
// credential gate, pricing gate, session build, provider call, response.
// An attempt either fully succeeds (a redirect URL goes back) or fully
// fails (nothing charged, nothing persisted).
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	ordering "github.com/elliottskebab/ordering"
	"github.com/elliottskebab/ordering/checkout"
	"github.com/elliottskebab/ordering/consts"
	"github.com/elliottskebab/ordering/log"
	"github.com/elliottskebab/ordering/pricing"
)

// GatewayFactory builds a provider client for one request. The credential
// is read per request, matching the serverless deployment model where the
// environment is the unit of configuration.
type GatewayFactory func(secretKey string) (ordering.Gateway, error)

// SessionHandler serves POST requests that create checkout sessions.
type SessionHandler struct {
	logger     log.Logger
	lookupEnv  func(key string) string
	newGateway GatewayFactory
	metrics    *Metrics
}

type Option func(*SessionHandler)

func WithLogger(logger log.Logger) Option {
	return func(h *SessionHandler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithEnvLookup overrides how environment values are read. For tests.
func WithEnvLookup(lookup func(key string) string) Option {
	return func(h *SessionHandler) {
		if lookup != nil {
			h.lookupEnv = lookup
		}
	}
}

// WithGatewayFactory overrides how the provider client is constructed.
func WithGatewayFactory(factory GatewayFactory) Option {
	return func(h *SessionHandler) {
		if factory != nil {
			h.newGateway = factory
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(h *SessionHandler) {
		h.metrics = m
	}
}

func New(opts ...Option) *SessionHandler {
	h := &SessionHandler{
		logger:    log.NewDefault(),
		lookupEnv: os.Getenv,
		newGateway: func(secretKey string) (ordering.Gateway, error) {
			return ordering.NewClient(ordering.WithSecretKey(secretKey))
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

type successResponse struct {
	URL string `json:"url"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := consts.AttemptReceived
	defer func() { h.metrics.Observe(status) }()

	if r.Method != http.MethodPost {
		methodErr := &ordering.InvalidMethodError{Method: r.Method}
		h.logger.Warnf("checkout attempt rejected: %v", methodErr)
		status = consts.AttemptFailed
		w.Header().Set("Allow", http.MethodPost)
		respondJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method Not Allowed"})
		return
	}

	secretKey := h.lookupEnv(consts.EnvSecretKey)
	if secretKey == "" {
		// Deployment error, not a user error. The variable name is logged,
		// its value never exists to leak.
		h.logger.Errorf("checkout attempt failed: %v", &ordering.MissingConfigurationError{Variable: consts.EnvSecretKey})
		status = consts.AttemptFailed
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Payment is not configured"})
		return
	}

	// A missing body or malformed structure degrades to an empty cart and
	// is rejected by the pricing gate below.
	var req checkout.OrderRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	status = consts.AttemptValidated

	quote := pricing.Quote(req.Cart)
	status = consts.AttemptPricingComputed
	h.logger.Debugf("checkout attempt priced: subtotal=%d delivery=%d total=%d lines=%d", quote.Subtotal, quote.DeliveryFee, quote.Total, len(req.Cart))

	sessionReq, err := ordering.BuildCheckoutSession(req.Cart, req.Customer, requestOrigin(r))
	if err != nil {
		var empty *ordering.EmptyCartError
		if errors.As(err, &empty) {
			h.logger.Infof("checkout attempt rejected: %v", err)
			status = consts.AttemptFailed
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Cart is empty or invalid"})
			return
		}
		h.logger.Errorf("checkout attempt failed building session: %v", err)
		status = consts.AttemptFailed
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Server error"})
		return
	}
	status = consts.AttemptRequestBuilt

	gateway, err := h.newGateway(secretKey)
	if err != nil {
		h.logger.Errorf("checkout attempt failed constructing gateway: %v", err)
		status = consts.AttemptFailed
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Server error"})
		return
	}

	status = consts.AttemptSubmitted
	session, err := gateway.Checkout().CreateSession(r.Context(), sessionReq)
	if err != nil {
		status = consts.AttemptFailed
		h.respondProviderFailure(w, err)
		return
	}

	status = consts.AttemptRedirected
	h.logger.Infof("checkout session created: id=%s total=%d", session.ID, quote.Total)
	respondJSON(w, http.StatusOK, successResponse{URL: session.URL})
}

func (h *SessionHandler) respondProviderFailure(w http.ResponseWriter, err error) {
	var pe *ordering.ProviderError
	if errors.As(err, &pe) {
		// Full diagnostic detail stays in the server log; the caller gets
		// the provider's message, which is written for end users.
		h.logger.Errorf("provider rejected checkout session: status=%d type=%s code=%s message=%q", pe.StatusCode, pe.Type, pe.Code, pe.Message)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Server error", Detail: pe.Message})
		return
	}

	var missing *ordering.MissingConfigurationError
	if errors.As(err, &missing) {
		h.logger.Errorf("checkout attempt failed: %v", missing)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Payment is not configured"})
		return
	}

	h.logger.Errorf("checkout session call failed: %v", err)
	respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Server error"})
}

// requestOrigin derives the redirect base from the caller: the Origin
// header when present, otherwise https://<host>.
func requestOrigin(r *http.Request) string {
	if origin := r.Header.Get("Origin"); origin != "" {
		return origin
	}
	return "https://" + r.Host
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(consts.HeaderContentType, consts.ContentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
