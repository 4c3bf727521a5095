package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/brewlogapp/brewlog-server/internal/errors"
	"github.com/brewlogapp/brewlog-server/internal/http/response"
	"github.com/brewlogapp/brewlog-server/internal/service"
)

// handleBagAnalytics returns the derived statistics for one of the
// caller's bags.
func (s *Server) handleBagAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	analytics, err := s.analyticsService.BagAnalytics(ctx, chi.URLParam(r, "id"), getUserID(ctx))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, analytics, s.logger)
}

// handleFeed returns the cross-user brew timeline, newest first.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := service.FeedDefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.ValidationFailed(w, []apperrors.FieldIssue{
				{Field: "limit", Message: "must be a number"},
			}, s.logger)
			return
		}
		limit = parsed
	}

	brews, err := s.feedService.RecentBrews(ctx, limit)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, brews, s.logger)
}
