package ordering

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"path"

	"github.com/stremovskyy/recorder"

	"github.com/elliottskebab/ordering/checkout"
	"github.com/elliottskebab/ordering/consts"
	"github.com/elliottskebab/ordering/internal/httpclient"
	"github.com/elliottskebab/ordering/internal/signature"
	"github.com/elliottskebab/ordering/log"
)

// Client talks to the payment provider's checkout-session API.
//
// Requests carry a bearer credential and a pinned API version. The secret
// is read lazily: a client without one can be built, but any attempt to
// create a session fails with MissingConfigurationError.
type Client struct {
	cfg config

	http *httpclient.Client

	checkout *CheckoutService
}

func NewClient(opts ...Option) (Gateway, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	headers := map[string]string{}
	if cfg.apiVersion != "" {
		headers[consts.HeaderAPIVersion] = cfg.apiVersion
	}

	c := &Client{cfg: cfg}
	c.http = httpclient.New(cfg.httpClient, bearerAuth(cfg.secretKey), cfg.logger, cfg.retryAttempts, cfg.retryWait, headers, cfg.recorder, cfg.logBodies)

	c.checkout = &CheckoutService{c: c}
	return c, nil
}

// NewClientWithRecorder is a convenience constructor that attaches a recorder.
func NewClientWithRecorder(rec recorder.Recorder, opts ...Option) (Gateway, error) {
	opts = append([]Option{WithRecorder(rec)}, opts...)
	return NewClient(opts...)
}

func (c *Client) Checkout() *CheckoutService { return c.checkout }

// SetLogLevel updates the client log level when the current logger supports it.
func (c *Client) SetLogLevel(level log.Level) {
	if c == nil || c.cfg.logger == nil {
		return
	}
	if l, ok := c.cfg.logger.(interface{ SetLevel(log.Level) }); ok {
		l.SetLevel(level)
	}
}

// VerifyWebhook checks the provider's signature header against the raw
// event payload.
func (c *Client) VerifyWebhook(payload []byte, header string) error {
	if c == nil {
		return errors.New("client is nil")
	}
	if c.cfg.webhookSecret == "" {
		return &MissingConfigurationError{Variable: consts.EnvWebhookSecret}
	}
	v := &signature.Verifier{Secret: []byte(c.cfg.webhookSecret)}
	return v.Verify(payload, header)
}

// bearerAuth builds the Authorization header from the secret credential.
type bearerAuth string

func (b bearerAuth) AuthorizationHeader() (string, error) {
	if b == "" {
		return "", &MissingConfigurationError{Variable: consts.EnvSecretKey}
	}
	return "Bearer " + string(b), nil
}

func joinURL(base string, p string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", base, err)
	}
	u.Path = path.Join(u.Path, p)
	return u.String(), nil
}

func wrapProviderError(err error) error {
	if err == nil {
		return nil
	}
	var hs *httpclient.HTTPStatusError
	if errors.As(err, &hs) {
		pe := &ProviderError{StatusCode: hs.StatusCode}
		var envelope checkout.ErrorEnvelope
		if jsonErr := json.Unmarshal(hs.Body, &envelope); jsonErr == nil {
			pe.Type = envelope.Error.Type
			pe.Code = envelope.Error.Code
			pe.Message = envelope.Error.Message
		}
		return pe
	}
	return err
}

// =========================
// Checkout API
// =========================

type CheckoutService struct{ c *Client }

// CreateSession creates a checkout session and returns the redirect URL.
func (s *CheckoutService) CreateSession(ctx context.Context, req *checkout.CreateSessionRequest, runOpts ...RunOption) (*checkout.CreateSessionResponse, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	if s.c.cfg.secretKey == "" {
		return nil, &MissingConfigurationError{Variable: consts.EnvSecretKey}
	}
	if req == nil {
		return nil, &ValidationError{Fields: []FieldError{{Field: "request", Message: "is nil"}}}
	}
	if err := validateCreateSession(req); err != nil {
		return nil, err
	}

	full, err := joinURL(s.c.cfg.baseURL, consts.CheckoutSessionsPath)
	if err != nil {
		return nil, err
	}
	if shouldDryRun(runOpts, "POST", full, req) {
		return nil, nil
	}
	var out checkout.CreateSessionResponse
	_, _, err = s.c.http.DoJSON(ctx, "POST", full, req, &out)
	if err != nil {
		return nil, wrapProviderError(err)
	}
	return &out, nil
}

// =========================
// Validation
// =========================

func validateCreateSession(req *checkout.CreateSessionRequest) error {
	ve := &ValidationError{}
	if req.Mode != consts.ModePayment {
		ve.Add("mode", fmt.Sprintf("must be %q", consts.ModePayment))
	}
	if len(req.LineItems) == 0 {
		ve.Add("line_items", "must contain at least one item")
	}
	if req.SuccessURL == "" {
		ve.Add("success_url", "is required")
	}
	if req.CancelURL == "" {
		ve.Add("cancel_url", "is required")
	}
	for i, li := range req.LineItems {
		if li.PriceData.ProductData.Name == "" {
			ve.Add(fmt.Sprintf("line_items[%d].price_data.product_data.name", i), "is required")
		}
		if li.PriceData.UnitAmount <= 0 {
			ve.Add(fmt.Sprintf("line_items[%d].price_data.unit_amount", i), "must be > 0")
		}
		if li.PriceData.Currency == "" {
			ve.Add(fmt.Sprintf("line_items[%d].price_data.currency", i), "is required")
		}
		if li.Quantity <= 0 {
			ve.Add(fmt.Sprintf("line_items[%d].quantity", i), "must be > 0")
		}
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}
