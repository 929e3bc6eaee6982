package api

import (
	"net/http"

	"resto-backoffice/internal/models"
)

// handleListCustomers handles GET /customers
func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request, owner, requestID string) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	customers, err := s.customers.List(ctx, owner)
	if err != nil {
		writeError(w, err, requestID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"customers": customers})
}

// handleCreateCustomer handles POST /customers
func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request, owner, requestID string) {
	var req models.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, requestID)
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	customer, err := s.customers.Create(ctx, owner, &req)
	if err != nil {
		writeError(w, err, requestID)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"customer": customer})
}
