package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/Azure/kvsample/pkg/keyvault"
)

var (
	rtr        *mux.Router
	testServer *httptest.Server
)

func setup() {
	rtr = mux.NewRouter()
	testServer = httptest.NewServer(rtr)
}

func teardown() {
	testServer.Close()
}

type fakeFetcher struct {
	outcome keyvault.Outcome
}

func (f fakeFetcher) FetchSecret(context.Context) keyvault.Outcome {
	return f.outcome
}

func TestSecretHandler(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		outcome  keyvault.Outcome
		wantView keyvault.View
	}{
		{
			name: "secret retrieved",
			path: secretPath,
			outcome: keyvault.Outcome{
				Kind:    keyvault.KindRetrieved,
				Success: true,
				Message: "Value pulled directly from Key Vault with 'GetSecret':",
				Secret:  "s3cr3t",
			},
			wantView: keyvault.View{
				KvSuccess: true,
				Message:   "Value pulled directly from Key Vault with 'GetSecret':",
				Secret:    "s3cr3t",
				Kind:      keyvault.KindRetrieved,
			},
		},
		{
			name: "index renders the outcome",
			path: "/",
			outcome: keyvault.Outcome{
				Kind:    keyvault.KindRetrieved,
				Success: true,
				Message: "Value pulled directly from Key Vault with 'GetSecret':",
				Secret:  "s3cr3t",
			},
			wantView: keyvault.View{
				KvSuccess: true,
				Message:   "Value pulled directly from Key Vault with 'GetSecret':",
				Secret:    "s3cr3t",
				Kind:      keyvault.KindRetrieved,
			},
		},
		{
			name: "access denied renders the detail",
			path: secretPath,
			outcome: keyvault.Outcome{
				Kind:    keyvault.KindAccessDenied,
				Message: "Unable to get secret from Key Vault!",
				Detail:  "403 Forbidden",
			},
			wantView: keyvault.View{
				KvSuccess: false,
				Message:   "Unable to get secret from Key Vault!",
				Secret:    "403 Forbidden",
				Kind:      keyvault.KindAccessDenied,
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := &server{fetcher: fakeFetcher{outcome: test.outcome}, logger: logr.Discard()}

			req, err := http.NewRequest(http.MethodGet, test.path, nil)
			if err != nil {
				t.Fatal(err)
			}
			recorder := httptest.NewRecorder()
			s.router().ServeHTTP(recorder, req)

			if recorder.Code != http.StatusOK {
				t.Errorf("expected status code %d, got %d", http.StatusOK, recorder.Code)
			}
			if ct := recorder.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected content type application/json, got %s", ct)
			}
			var got keyvault.View
			if err := json.Unmarshal(recorder.Body.Bytes(), &got); err != nil {
				t.Fatalf("failed to unmarshal body %s: %v", recorder.Body.String(), err)
			}
			if got != test.wantView {
				t.Errorf("expected view %+v, got %+v", test.wantView, got)
			}
		})
	}
}

func TestSecretHandlerMethodNotAllowed(t *testing.T) {
	s := &server{fetcher: fakeFetcher{}, logger: logr.Discard()}

	req, err := http.NewRequest(http.MethodPost, secretPath, nil)
	if err != nil {
		t.Fatal(err)
	}
	recorder := httptest.NewRecorder()
	s.router().ServeHTTP(recorder, req)

	if recorder.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status code %d, got %d", http.StatusMethodNotAllowed, recorder.Code)
	}
}

func TestRequestID(t *testing.T) {
	provided := uuid.New().String()

	tests := []struct {
		name      string
		requestID string
		wantSame  bool
	}{
		{
			name:      "request id is generated",
			requestID: "",
		},
		{
			name:      "valid request id is kept",
			requestID: provided,
			wantSame:  true,
		},
		{
			name:      "invalid request id is replaced",
			requestID: "not-a-uuid",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := &server{fetcher: fakeFetcher{}, logger: logr.Discard()}

			req, err := http.NewRequest(http.MethodGet, readyzPathPrefix, nil)
			if err != nil {
				t.Fatal(err)
			}
			if test.requestID != "" {
				req.Header.Set(requestIDHeader, test.requestID)
			}
			recorder := httptest.NewRecorder()
			s.router().ServeHTTP(recorder, req)

			got := recorder.Header().Get(requestIDHeader)
			if _, err := uuid.Parse(got); err != nil {
				t.Errorf("expected a uuid request id, got %q", got)
			}
			if test.wantSame && got != test.requestID {
				t.Errorf("expected request id %s, got %s", test.requestID, got)
			}
			if recorder.Header().Get("Server") != userAgent {
				t.Errorf("expected server header %s, got %s", userAgent, recorder.Header().Get("Server"))
			}
		})
	}
}

func TestReadyzAndMetrics(t *testing.T) {
	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("metrics"))
	})

	tests := []struct {
		name         string
		metrics      http.Handler
		path         string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "readyz",
			path:         readyzPathPrefix,
			expectedCode: http.StatusOK,
			expectedBody: "ok",
		},
		{
			name:         "metrics",
			metrics:      metricsHandler,
			path:         metricsPath,
			expectedCode: http.StatusOK,
			expectedBody: "metrics",
		},
		{
			name:         "metrics disabled",
			path:         metricsPath,
			expectedCode: http.StatusNotFound,
			expectedBody: "404 page not found\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := &server{fetcher: fakeFetcher{}, metrics: test.metrics, logger: logr.Discard()}

			req, err := http.NewRequest(http.MethodGet, test.path, nil)
			if err != nil {
				t.Fatal(err)
			}
			recorder := httptest.NewRecorder()
			s.router().ServeHTTP(recorder, req)

			if recorder.Code != test.expectedCode {
				t.Errorf("expected status code %d, got %d", test.expectedCode, recorder.Code)
			}
			if recorder.Body.String() != test.expectedBody {
				t.Errorf("expected body %q, got %q", test.expectedBody, recorder.Body.String())
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	tests := []struct {
		name    string
		port    int
		fetcher Fetcher
		wantErr bool
	}{
		{
			name:    "valid",
			port:    8080,
			fetcher: fakeFetcher{},
		},
		{
			name:    "missing fetcher",
			port:    8080,
			wantErr: true,
		},
		{
			name:    "port out of range",
			port:    0,
			fetcher: fakeFetcher{},
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewServer(test.port, test.fetcher, nil, klog.NewKlogr())
			if (err != nil) != test.wantErr {
				t.Errorf("NewServer() error = %v, wantErr %v", err, test.wantErr)
			}
		})
	}
}

func TestRunPortInUse(t *testing.T) {
	l, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	s := &server{port: l.Addr().(*net.TCPAddr).Port, fetcher: fakeFetcher{}, logger: logr.Discard()}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Run(ctx); err == nil {
		t.Errorf("Run() error = nil, want error")
	}
}

func TestRunShutdown(t *testing.T) {
	l, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatal(err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	l.Close()

	s := &server{port: port, fetcher: fakeFetcher{}, logger: logr.Discard()}
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Run(ctx)
	}()

	// the listener may not be up yet
	deadline := time.Now().Add(5 * time.Second)
	for {
		err := Probe(port)
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("Probe() = %v, want nil", err)
		}
		time.Sleep(50 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.Errorf("Run() error = %v, want nil", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Run() did not return after the context was cancelled")
	}
}
