package api

import (
	"net/http"

	"resto-backoffice/internal/models"
)

// handleListReviews handles GET /reviews
func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request, owner, requestID string) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	reviews, err := s.reviews.List(ctx, owner)
	if err != nil {
		writeError(w, err, requestID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"reviews": reviews})
}

// handleCreateReview handles POST /reviews
func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request, owner, requestID string) {
	var req models.ReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, requestID)
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	review, err := s.reviews.Create(ctx, owner, &req)
	if err != nil {
		writeError(w, err, requestID)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"review": review})
}
