package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"resto-backoffice/internal/logger"
)

type contextKey int

// requestIDKey carries the per-request id minted by withLogging
const requestIDKey contextKey = iota

// requestIDFrom returns the request id threaded through the context, minting
// one only for requests that bypassed withLogging.
func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return logger.GenerateRequestID()
}

// ownerHeader carries the authenticated merchant identity. The upstream
// gateway authenticates the caller; this service only scopes by it.
const ownerHeader = "X-Owner-ID"

// ownerID extracts the merchant scope from the request
func ownerID(r *http.Request) string {
	return r.Header.Get(ownerHeader)
}

// requireOwner rejects requests that arrive without a merchant identity
func (s *Server) requireOwner(next func(w http.ResponseWriter, r *http.Request, owner, requestID string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := requestIDFrom(r.Context())
		owner := ownerID(r)
		if owner == "" {
			writeErrorResponse(w, http.StatusUnauthorized, "missing owner identity", requestID)
			return
		}
		next(w, r, owner, requestID)
	}
}

// withLogging adds request logging around a handler
func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := logger.GenerateRequestID()
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey, requestID))

		s.logger.Debug("request_started",
			requestID,
			fmt.Sprintf("%s %s from %s", r.Method, r.URL.Path, r.RemoteAddr))

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		s.logger.Debug("request_completed",
			requestID,
			fmt.Sprintf("%s %s - %d in %dms", r.Method, r.URL.Path, rw.statusCode, duration.Milliseconds()))
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
