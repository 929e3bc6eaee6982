package api

import (
	"context"
	"net/http"
	"time"

	"resto-backoffice/internal/logger"
	"resto-backoffice/internal/services/analytics"
	"resto-backoffice/internal/services/catalog"
	"resto-backoffice/internal/services/customer"
	"resto-backoffice/internal/services/order"
	"resto-backoffice/internal/services/review"
)

// HealthChecker reports the liveness of one dependency
type HealthChecker func(ctx context.Context) error

// Server is the HTTP boundary over the core services
type Server struct {
	orders    *order.Service
	catalog   *catalog.Service
	customers *customer.Service
	reviews   *review.Service
	analytics *analytics.Service
	health    map[string]HealthChecker
	logger    *logger.Logger
	timeout   time.Duration
}

func NewServer(
	orders *order.Service,
	cat *catalog.Service,
	customers *customer.Service,
	reviews *review.Service,
	stats *analytics.Service,
	health map[string]HealthChecker,
	log *logger.Logger,
	requestTimeout time.Duration,
) *Server {
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}
	return &Server{
		orders:    orders,
		catalog:   cat,
		customers: customers,
		reviews:   reviews,
		analytics: stats,
		health:    health,
		logger:    log,
		timeout:   requestTimeout,
	}
}

// SetupRoutes sets up the HTTP routes
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /orders", s.withLogging(s.requireOwner(s.handleCreateOrder)))
	mux.HandleFunc("GET /orders", s.withLogging(s.requireOwner(s.handleListOrders)))
	mux.HandleFunc("GET /orders/{id}", s.withLogging(s.requireOwner(s.handleGetOrder)))
	mux.HandleFunc("PUT /orders/{id}/status", s.withLogging(s.requireOwner(s.handleUpdateOrderStatus)))
	mux.HandleFunc("GET /orders/{id}/history", s.withLogging(s.requireOwner(s.handleOrderHistory)))

	mux.HandleFunc("GET /dishes", s.withLogging(s.requireOwner(s.handleListDishes)))
	mux.HandleFunc("POST /dishes", s.withLogging(s.requireOwner(s.handleCreateDish)))
	mux.HandleFunc("PUT /dishes/{id}", s.withLogging(s.requireOwner(s.handleUpdateDish)))
	mux.HandleFunc("DELETE /dishes/{id}", s.withLogging(s.requireOwner(s.handleDeleteDish)))

	mux.HandleFunc("GET /categories", s.withLogging(s.handleListCategories))
	mux.HandleFunc("POST /categories", s.withLogging(s.requireOwner(s.handleCreateCategory)))

	mux.HandleFunc("GET /customers", s.withLogging(s.requireOwner(s.handleListCustomers)))
	mux.HandleFunc("POST /customers", s.withLogging(s.requireOwner(s.handleCreateCustomer)))

	mux.HandleFunc("GET /reviews", s.withLogging(s.requireOwner(s.handleListReviews)))
	mux.HandleFunc("POST /reviews", s.withLogging(s.requireOwner(s.handleCreateReview)))

	mux.HandleFunc("GET /stats/dashboard", s.withLogging(s.requireOwner(s.handleDashboard)))

	mux.HandleFunc("GET /health", s.withLogging(s.handleHealth))

	return mux
}

// requestContext derives the bounded per-request context
func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.timeout)
}

// handleHealth reports the liveness of the store and brokers
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	healthy := true
	checks := map[string]string{}
	for name, check := range s.health {
		if err := check(ctx); err != nil {
			healthy = false
			checks[name] = err.Error()
		} else {
			checks[name] = "ok"
		}
	}

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "resto-backoffice",
		"checks":    checks,
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
		response["status"] = "unhealthy"
	}
	writeJSON(w, status, response)
}
