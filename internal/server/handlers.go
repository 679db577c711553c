package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/yourusername/pool-portal/internal/models"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto status codes. Validation failures are
// the client's fault; everything else is ours.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNegativeAmount),
		errors.Is(err, models.ErrUnknownCategory),
		errors.Is(err, models.ErrUpdateBodyEmpty):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		s.logger.WithError(err).Error("Request failed")
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.portal.Summary(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handlePrediction(w http.ResponseWriter, r *http.Request) {
	prediction, err := s.portal.Prediction(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, prediction)
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	var bet models.BetRequest
	if err := json.NewDecoder(r.Body).Decode(&bet); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := s.portal.Projection(r.Context(), bet)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get("limit"))
	offset, _ := strconv.Atoi(query.Get("offset"))

	page, err := s.portal.History(r.Context(), limit, offset)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	series, err := s.portal.Trends(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, series)
}

func (s *Server) handleUpdates(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := s.portal.Updates(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"updates": entries,
	})
}

func (s *Server) handleComment(w http.ResponseWriter, r *http.Request) {
	body, err := s.portal.Comment(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"comment": body,
	})
}
