package ordering

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/stremovskyy/recorder"

	"github.com/elliottskebab/ordering/consts"
	"github.com/elliottskebab/ordering/log"
)

type Option func(*config) error

type config struct {
	baseURL    string
	apiVersion string

	secretKey     string
	webhookSecret string

	httpClient *http.Client
	logger     log.Logger
	logBodies  bool

	retryAttempts int
	retryWait     time.Duration
	recorder      recorder.Recorder
}

func defaultConfig() config {
	return config{
		baseURL:    consts.DefaultAPIBaseURL,
		apiVersion: consts.DefaultAPIVersion,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     log.NewDefault(),
		// A failed checkout attempt is terminal; the customer resubmits.
		retryAttempts: 1,
		retryWait:     300 * time.Millisecond,
	}
}

// WithSecretKey sets the provider's secret credential. Without it the
// client can be constructed but CreateSession fails with
// MissingConfigurationError.
func WithSecretKey(key string) Option {
	return func(cfg *config) error {
		cfg.secretKey = strings.TrimSpace(key)
		return nil
	}
}

// WithWebhookSecret sets the shared secret used by VerifyWebhook.
func WithWebhookSecret(secret string) Option {
	return func(cfg *config) error {
		cfg.webhookSecret = strings.TrimSpace(secret)
		return nil
	}
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *config) error {
		if client == nil {
			return errors.New("http client is nil")
		}
		cfg.httpClient = client
		return nil
	}
}

// WithTimeout sets http client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *config) error {
		if timeout <= 0 {
			return errors.New("timeout must be > 0")
		}
		cfg.httpClient.Timeout = timeout
		return nil
	}
}

func WithLogger(logger log.Logger) Option {
	return func(cfg *config) error {
		if logger == nil {
			cfg.logger = log.NopLogger{}
			return nil
		}
		cfg.logger = logger
		return nil
	}
}

// WithLogHTTPBodies enables verbose request/response body logging for debugging.
//
// Disabled by default because bodies contain customer details.
func WithLogHTTPBodies(enabled bool) Option {
	return func(cfg *config) error {
		cfg.logBodies = enabled
		return nil
	}
}

// WithRecorder attaches a request/response recorder.
func WithRecorder(r recorder.Recorder) Option {
	return func(cfg *config) error {
		cfg.recorder = r
		return nil
	}
}

func WithRetry(attempts int, wait time.Duration) Option {
	return func(cfg *config) error {
		if attempts <= 0 {
			return errors.New("retry attempts must be > 0")
		}
		if wait <= 0 {
			return errors.New("retry wait must be > 0")
		}
		cfg.retryAttempts = attempts
		cfg.retryWait = wait
		return nil
	}
}

func WithBaseURL(baseURL string) Option {
	return func(cfg *config) error {
		if baseURL == "" {
			return errors.New("base url is empty")
		}
		cfg.baseURL = baseURL
		return nil
	}
}

// WithAPIVersion pins the provider API version sent on every request.
func WithAPIVersion(version string) Option {
	return func(cfg *config) error {
		if version == "" {
			return errors.New("api version is empty")
		}
		cfg.apiVersion = version
		return nil
	}
}
