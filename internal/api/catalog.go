package api

import (
	"fmt"
	"net/http"

	"resto-backoffice/internal/models"
)

// handleListDishes handles GET /dishes
func (s *Server) handleListDishes(w http.ResponseWriter, r *http.Request, owner, requestID string) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	dishes, err := s.catalog.ListDishes(ctx, owner)
	if err != nil {
		writeError(w, err, requestID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"dishes": dishes})
}

// handleCreateDish handles POST /dishes
func (s *Server) handleCreateDish(w http.ResponseWriter, r *http.Request, owner, requestID string) {
	var req models.DishRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, requestID)
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	dish, err := s.catalog.CreateDish(ctx, owner, &req)
	if err != nil {
		writeError(w, err, requestID)
		return
	}

	s.logger.Info("dish_created", requestID, fmt.Sprintf("Dish %s created", dish.Name))
	writeJSON(w, http.StatusCreated, map[string]interface{}{"dish": dish})
}

// handleUpdateDish handles PUT /dishes/{id}
func (s *Server) handleUpdateDish(w http.ResponseWriter, r *http.Request, owner, requestID string) {
	var req models.DishRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, requestID)
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	dish, err := s.catalog.UpdateDish(ctx, owner, r.PathValue("id"), &req)
	if err != nil {
		writeError(w, err, requestID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"dish": dish})
}

// handleDeleteDish handles DELETE /dishes/{id}
func (s *Server) handleDeleteDish(w http.ResponseWriter, r *http.Request, owner, requestID string) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	if err := s.catalog.DeleteDish(ctx, owner, r.PathValue("id")); err != nil {
		writeError(w, err, requestID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"deleted": true})
}

// handleListCategories handles GET /categories. Categories are shared
// reference data, so no owner identity is required to read them.
func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r.Context())
	ctx, cancel := s.requestContext(r)
	defer cancel()

	categories, err := s.catalog.ListCategories(ctx)
	if err != nil {
		writeError(w, err, requestID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

// handleCreateCategory handles POST /categories
func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request, owner, requestID string) {
	var req models.CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, requestID)
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	category, err := s.catalog.CreateCategory(ctx, &req)
	if err != nil {
		writeError(w, err, requestID)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"category": category})
}
