package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/brewlogapp/brewlog-server/internal/errors"
	"github.com/brewlogapp/brewlog-server/internal/http/response"
	"github.com/brewlogapp/brewlog-server/internal/service"
	"github.com/brewlogapp/brewlog-server/internal/validation"
)

// brewRequest is the request body for logging a brew. Numeric fields decode
// tolerantly so every bad field surfaces as its own issue.
type brewRequest struct {
	Method       string            `json:"method"`
	Brewer       string            `json:"brewer" validate:"omitempty,max=200"`
	Grinder      string            `json:"grinder" validate:"omitempty,max=200"`
	Dose         validation.Number `json:"dose"`
	GrindSetting validation.Number `json:"grindSetting"`
	WaterAmount  validation.Number `json:"waterAmount"`
	Rating       validation.Number `json:"rating"`
	Nutty        validation.Number `json:"nutty"`
	Acidity      validation.Number `json:"acidity"`
	Fruity       validation.Number `json:"fruity"`
	Floral       validation.Number `json:"floral"`
	Sweetness    validation.Number `json:"sweetness"`
	Chocolate    validation.Number `json:"chocolate"`
	Notes        string            `json:"notes" validate:"omitempty,max=2000"`
}

// validate checks the request and returns the service input or all issues.
func (req *brewRequest) validate(v *validation.Validator) (service.BrewInput, error) {
	var is validation.Issues

	is.RequiredString("method", req.Method)
	if err := v.Struct(&is, req); err != nil {
		return service.BrewInput{}, apperrors.Wrap(err, apperrors.CodeInternal, "validate request")
	}

	input := service.BrewInput{
		Method:       req.Method,
		Brewer:       req.Brewer,
		Grinder:      req.Grinder,
		Dose:         req.Dose.Int(&is, "dose", 0, 1000),
		GrindSetting: req.GrindSetting.Int(&is, "grindSetting", 0, 100),
		WaterAmount:  req.WaterAmount.Int(&is, "waterAmount", 0, 2000),
		Rating:       req.Rating.Float(&is, "rating", 0, 5),
		Nutty:        req.Nutty.Int(&is, "nutty", 0, 5),
		Acidity:      req.Acidity.Int(&is, "acidity", 0, 5),
		Fruity:       req.Fruity.Int(&is, "fruity", 0, 5),
		Floral:       req.Floral.Int(&is, "floral", 0, 5),
		Sweetness:    req.Sweetness.Int(&is, "sweetness", 0, 5),
		Chocolate:    req.Chocolate.Int(&is, "chocolate", 0, 5),
		Notes:        req.Notes,
	}

	if err := is.Err(); err != nil {
		return service.BrewInput{}, err
	}
	return input, nil
}

// handleCreateBrew logs a brew against one of the caller's bags.
func (s *Server) handleCreateBrew(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req brewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body", s.logger)
		return
	}

	input, err := req.validate(s.validator)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	brew, err := s.brewService.CreateBrew(ctx, chi.URLParam(r, "id"), getUserID(ctx), input)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, brew, s.logger)
}

// handleListBrews returns a bag's brew history, newest first.
func (s *Server) handleListBrews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	brews, err := s.brewService.ListBrews(ctx, chi.URLParam(r, "id"), getUserID(ctx))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, brews, s.logger)
}

// handleMarkBestBrew flags one brew as the bag's best.
func (s *Server) handleMarkBestBrew(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	brew, err := s.brewService.MarkBestBrew(ctx,
		chi.URLParam(r, "bagID"),
		getUserID(ctx),
		chi.URLParam(r, "brewID"),
	)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, brew, s.logger)
}
