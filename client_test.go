package ordering

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stremovskyy/recorder"

	"github.com/elliottskebab/ordering/checkout"
	"github.com/elliottskebab/ordering/internal/signature"
	sdklog "github.com/elliottskebab/ordering/log"
	"github.com/elliottskebab/ordering/pricing"
)

func testSessionRequest(t *testing.T) *checkout.CreateSessionRequest {
	t.Helper()
	req, err := BuildCheckoutSession(
		[]pricing.Line{{ID: "kebab_i_pita", Qty: 2}},
		checkout.CustomerInfo{Name: "Kari", Phone: "999", Address: "Bryggen 1"},
		"https://elliotts.example",
	)
	if err != nil {
		t.Fatalf("build session request: %v", err)
	}
	return req
}

func TestCreateSessionSendsAuthAndVersionHeaders(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_abc" {
			http.Error(w, "bad auth", http.StatusUnauthorized)
			t.Errorf("unexpected Authorization header %q", got)
			return
		}
		if got := r.Header.Get("Stripe-Version"); got != "2023-10-16" {
			http.Error(w, "bad version", http.StatusBadRequest)
			t.Errorf("unexpected Stripe-Version header %q", got)
			return
		}
		if r.URL.Path != "/v1/checkout/sessions" {
			http.NotFound(w, r)
			t.Errorf("unexpected path %q", r.URL.Path)
			return
		}

		body, _ := io.ReadAll(r.Body)
		var req checkout.CreateSessionRequest
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, "bad body", http.StatusBadRequest)
			t.Errorf("decode request: %v", err)
			return
		}
		if req.Mode != "payment" || len(req.LineItems) != 2 {
			http.Error(w, "bad request shape", http.StatusBadRequest)
			t.Errorf("unexpected request: %+v", req)
			return
		}
		_, _ = w.Write([]byte(`{"id":"cs_1","url":"https://pay.example/cs_1"}`))
	}))
	defer ts.Close()

	client, err := NewClient(
		WithSecretKey("sk_test_abc"),
		WithBaseURL(ts.URL),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	res, err := client.Checkout().CreateSession(context.Background(), testSessionRequest(t))
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if res.ID != "cs_1" || res.URL != "https://pay.example/cs_1" {
		t.Fatalf("unexpected response: %+v", res)
	}
}

func TestCreateSessionWithoutSecretKey(t *testing.T) {
	var hitCount int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hitCount, 1)
	}))
	defer ts.Close()

	client, err := NewClient(WithBaseURL(ts.URL))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.Checkout().CreateSession(context.Background(), testSessionRequest(t))
	var missing *MissingConfigurationError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingConfigurationError, got %T (%v)", err, err)
	}
	if missing.Variable != "STRIPE_SECRET_KEY" {
		t.Fatalf("unexpected variable: %q", missing.Variable)
	}
	if atomic.LoadInt32(&hitCount) != 0 {
		t.Fatalf("expected no HTTP calls, got %d", hitCount)
	}
}

func TestCreateSessionMapsProviderError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"type":"card_error","code":"card_declined","message":"Your card was declined."}}`))
	}))
	defer ts.Close()

	client, err := NewClient(
		WithSecretKey("sk_test_abc"),
		WithBaseURL(ts.URL),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.Checkout().CreateSession(context.Background(), testSessionRequest(t))
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProviderError, got %T (%v)", err, err)
	}
	if pe.StatusCode != http.StatusPaymentRequired || pe.Type != "card_error" || pe.Code != "card_declined" {
		t.Fatalf("unexpected provider error: %+v", pe)
	}
	if pe.Message != "Your card was declined." {
		t.Fatalf("unexpected message: %q", pe.Message)
	}
}

func TestCreateSessionValidation(t *testing.T) {
	client, err := NewClient(WithSecretKey("sk_test_abc"))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.Checkout().CreateSession(context.Background(), &checkout.CreateSessionRequest{
		Mode: "subscription",
	})
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T (%v)", err, err)
	}
	fields := map[string]bool{}
	for _, fe := range ve.Fields {
		fields[fe.Field] = true
	}
	for _, want := range []string{"mode", "line_items", "success_url", "cancel_url"} {
		if !fields[want] {
			t.Fatalf("expected field error for %q, got %+v", want, ve.Fields)
		}
	}
}

func TestDryRunSkipsHTTPCall(t *testing.T) {
	var hitCount int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hitCount, 1)
		_, _ = w.Write([]byte(`{"id":"cs_1","url":"https://pay.example/cs_1"}`))
	}))
	defer ts.Close()

	client, err := NewClient(
		WithSecretKey("sk_test_abc"),
		WithBaseURL(ts.URL),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	var (
		called    bool
		gotMethod string
		gotURL    string
		gotReq    *checkout.CreateSessionRequest
	)

	_, err = client.Checkout().CreateSession(context.Background(), testSessionRequest(t), DryRun(func(method string, url string, payload any) {
		called = true
		gotMethod = method
		gotURL = url
		if v, ok := payload.(*checkout.CreateSessionRequest); ok {
			gotReq = v
		}
	}))
	if err != nil {
		t.Fatalf("create session dry run: %v", err)
	}

	if !called {
		t.Fatalf("dry run handler was not called")
	}
	if gotMethod != "POST" {
		t.Fatalf("unexpected method: %q", gotMethod)
	}
	if gotURL != ts.URL+"/v1/checkout/sessions" {
		t.Fatalf("unexpected url: %q", gotURL)
	}
	if gotReq == nil || len(gotReq.LineItems) != 2 {
		t.Fatalf("unexpected payload: %+v", gotReq)
	}
	if atomic.LoadInt32(&hitCount) != 0 {
		t.Fatalf("expected no HTTP calls, got %d", hitCount)
	}
}

func TestNewClientWithRecorderRecordsTraffic(t *testing.T) {
	rec := &testRecorder{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"cs_1","url":"https://pay.example/cs_1"}`))
	}))
	defer ts.Close()

	client, err := NewClientWithRecorder(rec,
		WithSecretKey("sk_test_abc"),
		WithBaseURL(ts.URL),
	)
	if err != nil {
		t.Fatalf("new client with recorder: %v", err)
	}

	_, err = client.Checkout().CreateSession(context.Background(), testSessionRequest(t))
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if rec.requestCount != 1 {
		t.Fatalf("expected 1 recorded request, got %d", rec.requestCount)
	}
	if rec.responseCount != 1 {
		t.Fatalf("expected 1 recorded response, got %d", rec.responseCount)
	}
	if rec.errorCount != 0 {
		t.Fatalf("expected 0 recorded errors, got %d", rec.errorCount)
	}
}

func TestSetLogLevelEnablesDebugLogging(t *testing.T) {
	logger := &testLogger{level: sdklog.LevelInfo}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"cs_1","url":"https://pay.example/cs_1"}`))
	}))
	defer ts.Close()

	client, err := NewClient(
		WithSecretKey("sk_test_abc"),
		WithLogger(logger),
		WithBaseURL(ts.URL),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	// Before enabling debug there should be no debug logs.
	if _, err := client.Checkout().CreateSession(context.Background(), testSessionRequest(t)); err != nil {
		t.Fatalf("create session before debug: %v", err)
	}
	if logger.debugCount != 0 {
		t.Fatalf("expected 0 debug logs before enabling debug, got %d", logger.debugCount)
	}

	client.SetLogLevel(sdklog.LevelDebug)

	if _, err := client.Checkout().CreateSession(context.Background(), testSessionRequest(t)); err != nil {
		t.Fatalf("create session after debug: %v", err)
	}
	if logger.debugCount == 0 {
		t.Fatalf("expected debug logs after enabling debug level")
	}
}

func TestVerifyWebhook(t *testing.T) {
	payload := []byte(`{"type":"checkout.session.completed"}`)
	header := signature.Header([]byte("whsec_test"), payload, time.Now().Unix())

	client, err := NewClient(
		WithSecretKey("sk_test_abc"),
		WithWebhookSecret("whsec_test"),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if err := client.VerifyWebhook(payload, header); err != nil {
		t.Fatalf("expected valid webhook signature, got %v", err)
	}
	if err := client.VerifyWebhook([]byte(`{"tampered":true}`), header); err == nil {
		t.Fatalf("tampered payload must not verify")
	}

	bare, err := NewClient(WithSecretKey("sk_test_abc"))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	var missing *MissingConfigurationError
	if err := bare.VerifyWebhook(payload, header); !errors.As(err, &missing) {
		t.Fatalf("expected MissingConfigurationError without webhook secret, got %v", err)
	}
}

type testRecorder struct {
	requestCount  int
	responseCount int
	errorCount    int
}

func (t *testRecorder) RecordRequest(context.Context, *string, string, []byte, map[string]string) error {
	t.requestCount++
	return nil
}

func (t *testRecorder) RecordResponse(context.Context, *string, string, []byte, map[string]string) error {
	t.responseCount++
	return nil
}

func (t *testRecorder) RecordError(context.Context, *string, string, error, map[string]string) error {
	t.errorCount++
	return nil
}

func (t *testRecorder) RecordMetrics(context.Context, *string, string, map[string]string, map[string]string) error {
	return nil
}

func (t *testRecorder) GetRequest(context.Context, string) ([]byte, error) {
	return nil, nil
}

func (t *testRecorder) GetResponse(context.Context, string) ([]byte, error) {
	return nil, nil
}

func (t *testRecorder) FindByTag(context.Context, string) ([]string, error) {
	return nil, nil
}

func (t *testRecorder) Async() recorder.AsyncRecorder {
	return nil
}

type testLogger struct {
	level      sdklog.Level
	debugCount int
	infoCount  int
	warnCount  int
	errCount   int
}

func (t *testLogger) SetLevel(level sdklog.Level) {
	t.level = level
}

func (t *testLogger) Debugf(string, ...any) {
	if t.level <= sdklog.LevelDebug {
		t.debugCount++
	}
}

func (t *testLogger) Infof(string, ...any) {
	if t.level <= sdklog.LevelInfo {
		t.infoCount++
	}
}

func (t *testLogger) Warnf(string, ...any) {
	if t.level <= sdklog.LevelWarn {
		t.warnCount++
	}
}

func (t *testLogger) Errorf(string, ...any) {
	if t.level <= sdklog.LevelError {
		t.errCount++
	}
}
