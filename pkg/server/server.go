package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/Azure/kvsample/pkg/keyvault"
	"github.com/Azure/kvsample/pkg/version"
)

const (
	// secretPath serves the outcome of a secret fetch
	secretPath = "/api/secret"
	// readyzPathPrefix is the path for readiness probe
	readyzPathPrefix = "/readyz"
	// metricsPath serves the prometheus metrics
	metricsPath = "/metrics"

	// requestIDHeader carries the id assigned to every request
	requestIDHeader = "X-Request-Id"

	// localhost is the hostname of the localhost
	localhost = "localhost"
)

var (
	userAgent = version.GetUserAgent("server")
)

// Fetcher fetches the configured secret.
type Fetcher interface {
	FetchSecret(ctx context.Context) keyvault.Outcome
}

type Server interface {
	Run(ctx context.Context) error
}

type server struct {
	port    int
	fetcher Fetcher
	metrics http.Handler
	logger  logr.Logger
}

// NewServer returns a server instance. metricsHandler may be nil, in which
// case no metrics are served.
func NewServer(port int, fetcher Fetcher, metricsHandler http.Handler, logger logr.Logger) (Server, error) {
	if fetcher == nil {
		return nil, errors.New("fetcher is required")
	}
	if port <= 0 || port > 65535 {
		return nil, errors.Errorf("port %d is out of range", port)
	}
	return &server{
		port:    port,
		fetcher: fetcher,
		metrics: metricsHandler,
		logger:  logger,
	}, nil
}

func (s *server) router() *mux.Router {
	rtr := mux.NewRouter()
	rtr.Use(s.requestIDMiddleware)
	rtr.Path("/").Methods(http.MethodGet).HandlerFunc(s.secretHandler)
	rtr.Path(secretPath).Methods(http.MethodGet).HandlerFunc(s.secretHandler)
	rtr.PathPrefix(readyzPathPrefix).HandlerFunc(s.readyzHandler)
	if s.metrics != nil {
		rtr.Path(metricsPath).Handler(s.metrics)
	}
	return rtr
}

// Run runs the server until ctx is done
func (s *server) Run(ctx context.Context) error {
	s.logger.Info("starting the server", "port", s.port, "userAgent", userAgent)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		ReadHeaderTimeout: 5 * time.Second,
		Handler:           s.router(),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return errors.Wrap(err, "failed to serve")
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down the server")
	// shutdown the server gracefully with a 5 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func (s *server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, requestID)
		w.Header().Set("Server", userAgent)

		logger := s.logger.WithValues("requestID", requestID)
		next.ServeHTTP(w, r.WithContext(logr.NewContext(r.Context(), logger)))
	})
}

func (s *server) secretHandler(w http.ResponseWriter, r *http.Request) {
	logger := logr.FromContextOrDiscard(r.Context())
	logger.Info("received secret request", "method", r.Method, "uri", r.RequestURI)

	outcome := s.fetcher.FetchSecret(r.Context())
	logger.Info("fetched secret", "kind", outcome.Kind, "success", outcome.Success)

	// the outcome is always rendered, failures included
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(outcome.View()); err != nil {
		logger.Error(err, "failed to encode secret view")
	}
}

func (s *server) readyzHandler(w http.ResponseWriter, r *http.Request) {
	logr.FromContextOrDiscard(r.Context()).V(1).Info("received readyz request", "method", r.Method, "uri", r.RequestURI)
	fmt.Fprintf(w, "ok")
}
