package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/osusume/internal/models"
	"github.com/hyperjump/osusume/internal/scoring"
)

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req models.RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.recommendTotal.WithLabelValues("bad_request").Inc()
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("recommend request",
		zap.String("query", req.Query),
		zap.String("city", req.City),
		zap.String("category", req.Category),
		zap.Int("limit", req.Limit),
	)

	snap := s.holder.Load()
	if snap == nil {
		s.metrics.recommendTotal.WithLabelValues("error").Inc()
		s.respondError(w, http.StatusServiceUnavailable, "dataset not loaded")
		return
	}

	results, err := s.recommender.Recommend(snap, &req)
	if err != nil {
		if errors.Is(err, scoring.ErrNoCandidates) {
			s.metrics.recommendTotal.WithLabelValues("not_found").Inc()
			s.respondError(w, http.StatusNotFound, "no restaurants found matching criteria")
			return
		}
		s.logger.Error("recommend failed", zap.Error(err))
		s.metrics.recommendTotal.WithLabelValues("error").Inc()
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.metrics.recommendTotal.WithLabelValues("ok").Inc()
	s.metrics.recommendSeconds.Observe(time.Since(start).Seconds())
	s.respondJSON(w, http.StatusOK, &models.RecommendationResponse{
		Results:   results,
		Query:     req.Query,
		QueryTime: time.Since(start).Milliseconds(),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.holder.Load()
	if snap == nil {
		s.respondJSON(w, http.StatusOK, map[string]interface{}{"loaded": false})
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"loaded":          true,
		"records":         len(snap.Records),
		"places":          snap.Places(),
		"clusters":        snap.NClusters,
		"vocabulary_size": snap.Vectorizer.VocabularySize(),
		"fitted_at":       snap.FittedAt,
	})
}

// handleReload rebuilds the snapshot from the dataset and swaps it in. The
// rebuild runs exclusively here and at startup; requests never trigger a refit.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.reload == nil {
		s.respondError(w, http.StatusNotImplemented, "reload not configured")
		return
	}
	snap, err := s.reload(r.Context())
	if err != nil {
		s.logger.Error("reload failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.holder.Store(snap)
	s.logger.Info("snapshot reloaded", zap.Int("records", len(snap.Records)))
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"status": "reloaded", "records": len(snap.Records)})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
