package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/elliottskebab/ordering/handler"
	sdklog "github.com/elliottskebab/ordering/log"
)

func main() {
	// .env is optional; the production environment injects variables directly.
	_ = godotenv.Load()

	log := logrus.New()
	log.Out = os.Stdout
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	if os.Getenv("LOG_DEBUG") == "1" {
		log.Level = logrus.DebugLevel
	}

	addr := getenv("LISTEN_ADDR", ":8080")
	staticDir := getenv("STATIC_DIR", "./public")

	metrics := handler.NewMetrics(prometheus.DefaultRegisterer)
	sessions := handler.New(
		handler.WithLogger(&logrusAdapter{log: log}),
		handler.WithMetrics(metrics),
	)

	r := mux.NewRouter()
	// No .Methods filter: the session handler owns its 405 response shape.
	r.Handle("/api/create-checkout-session", sessions)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { fmt.Fprint(w, "ok") }).Methods(http.MethodGet)
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir))).Methods(http.MethodGet, http.MethodHead)

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Infof("ordering server listening on %s (static dir %s)", addr, staticDir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// logrusAdapter bridges logrus into the module's printf logger interface.
type logrusAdapter struct {
	log *logrus.Logger
}

var _ sdklog.Logger = (*logrusAdapter)(nil)

func (a *logrusAdapter) Debugf(format string, args ...any) { a.log.Debugf(format, args...) }
func (a *logrusAdapter) Infof(format string, args ...any)  { a.log.Infof(format, args...) }
func (a *logrusAdapter) Warnf(format string, args ...any)  { a.log.Warnf(format, args...) }
func (a *logrusAdapter) Errorf(format string, args ...any) { a.log.Errorf(format, args...) }
