package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"resto-backoffice/internal/logger"
)

func TestWithLogging_ThreadsOneRequestID(t *testing.T) {
	s := &Server{logger: logger.New("test")}

	var fromParam, fromContext string
	handler := s.withLogging(s.requireOwner(func(w http.ResponseWriter, r *http.Request, owner, requestID string) {
		fromParam = requestID
		fromContext = requestIDFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set(ownerHeader, "owner-1")
	rr := httptest.NewRecorder()
	handler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if fromParam == "" {
		t.Fatalf("handler received an empty request id")
	}
	if fromParam != fromContext {
		t.Errorf("request id diverged: param %q, context %q", fromParam, fromContext)
	}
}

func TestRequireOwner_RejectsMissingHeader(t *testing.T) {
	s := &Server{logger: logger.New("test")}

	called := false
	handler := s.withLogging(s.requireOwner(func(w http.ResponseWriter, r *http.Request, owner, requestID string) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rr := httptest.NewRecorder()
	handler(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
	if called {
		t.Errorf("handler ran without an owner identity")
	}
}
