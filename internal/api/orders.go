package api

import (
	"fmt"
	"net/http"

	"resto-backoffice/internal/models"
)

// handleCreateOrder handles POST /orders
func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request, owner, requestID string) {
	var cart models.Cart
	if err := decodeJSON(r, &cart); err != nil {
		writeError(w, err, requestID)
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	order, err := s.orders.Create(ctx, owner, &cart)
	if err != nil {
		s.logger.Error("order_creation_failed", requestID,
			fmt.Sprintf("Failed to create order for %s", cart.CustomerEmail), err)
		writeError(w, err, requestID)
		return
	}

	s.logger.Info("order_created", requestID,
		fmt.Sprintf("Order %s created, total %.2f", order.OrderNumber, order.TotalAmount))
	writeJSON(w, http.StatusCreated, map[string]interface{}{"order": order})
}

// handleListOrders handles GET /orders
func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request, owner, requestID string) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	orders, err := s.orders.List(ctx, owner)
	if err != nil {
		writeError(w, err, requestID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// handleGetOrder handles GET /orders/{id}
func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request, owner, requestID string) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	order, err := s.orders.Get(ctx, owner, r.PathValue("id"))
	if err != nil {
		writeError(w, err, requestID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"order": order})
}

// handleUpdateOrderStatus handles PUT /orders/{id}/status
func (s *Server) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request, owner, requestID string) {
	var req models.StatusUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, requestID)
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	order, err := s.orders.UpdateStatus(ctx, owner, r.PathValue("id"), &req)
	if err != nil {
		s.logger.Error("status_update_failed", requestID,
			fmt.Sprintf("Failed to update order %s to %s", r.PathValue("id"), req.Status), err)
		writeError(w, err, requestID)
		return
	}

	s.logger.Info("status_updated", requestID,
		fmt.Sprintf("Order %s moved to %s", order.OrderNumber, order.Status))
	writeJSON(w, http.StatusOK, map[string]interface{}{"order": order})
}

// handleOrderHistory handles GET /orders/{id}/history
func (s *Server) handleOrderHistory(w http.ResponseWriter, r *http.Request, owner, requestID string) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	history, err := s.orders.History(ctx, owner, r.PathValue("id"))
	if err != nil {
		writeError(w, err, requestID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"history": history})
}
