package server

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/yourusername/pool-portal/internal/service"
)

// adminAuth guards the mutation endpoints with a bearer token. An empty
// configured token disables the whole admin surface.
func (s *Server) adminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := s.config.Admin.Token
		if token == "" {
			s.writeJSON(w, http.StatusForbidden, errorResponse{Error: "admin access disabled"})
			return
		}

		header := r.Header.Get("Authorization")
		provided, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleAppendOutcome(w http.ResponseWriter, r *http.Request) {
	var input service.OutcomeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	record, err := s.admin.AppendOutcome(r.Context(), input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, record)
}

func (s *Server) handleReplaceOutcomes(w http.ResponseWriter, r *http.Request) {
	var inputs []service.OutcomeInput
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	count, err := s.admin.ReplaceOutcomes(r.Context(), inputs)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (s *Server) handleAppendUpdate(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	entry, err := s.admin.AppendUpdate(r.Context(), input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleReplaceUpdates(w http.ResponseWriter, r *http.Request) {
	var inputs []service.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	count, err := s.admin.ReplaceUpdates(r.Context(), inputs)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

// handleImport triggers one feed import run outside the scheduled cadence.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	merged, err := s.importer.Run(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int{"merged": merged})
}

type commentPayload struct {
	Comment string `json:"comment"`
}

func (s *Server) handleSaveComment(w http.ResponseWriter, r *http.Request) {
	var payload commentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := s.admin.SaveComment(r.Context(), payload.Comment); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}
