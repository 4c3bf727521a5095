package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/brewlogapp/brewlog-server/internal/domain"
	apperrors "github.com/brewlogapp/brewlog-server/internal/errors"
	"github.com/brewlogapp/brewlog-server/internal/http/response"
	"github.com/brewlogapp/brewlog-server/internal/service"
	"github.com/brewlogapp/brewlog-server/internal/validation"
)

// bagRequest is the request body for creating or editing a bag.
// RoastDate decodes tolerantly so all field issues are collected in one pass.
type bagRequest struct {
	CoffeeName string          `json:"coffeeName"`
	Roaster    string          `json:"roaster"`
	Origin     string          `json:"origin" validate:"omitempty,max=200"`
	Process    string          `json:"process" validate:"omitempty,max=200"`
	RoastDate  validation.Date `json:"roastDate"`
	Notes      string          `json:"notes" validate:"omitempty,max=2000"`
}

// validate checks the request and returns the service input or all issues.
func (req *bagRequest) validate(v *validation.Validator) (service.BagInput, error) {
	var is validation.Issues

	is.RequiredString("coffeeName", req.CoffeeName)
	is.RequiredString("roaster", req.Roaster)
	if err := v.Struct(&is, req); err != nil {
		return service.BagInput{}, apperrors.Wrap(err, apperrors.CodeInternal, "validate request")
	}
	roastDate := req.RoastDate.Required(&is, "roastDate")

	if err := is.Err(); err != nil {
		return service.BagInput{}, err
	}

	return service.BagInput{
		CoffeeName: req.CoffeeName,
		Roaster:    req.Roaster,
		Origin:     req.Origin,
		Process:    req.Process,
		RoastDate:  roastDate,
		Notes:      req.Notes,
	}, nil
}

// bagDetail is the bag response shape: stored fields plus the derived
// roast age and resting status. RoastDate shadows the embedded field so
// it serializes as a calendar date.
type bagDetail struct {
	*domain.Bag
	RoastDate     *string              `json:"roastDate"`
	RoastAgeDays  *int                 `json:"roastAgeDays"`
	RestingStatus domain.RestingStatus `json:"restingStatus"`
}

// bagListItem adds the brew rollup shown in listings.
type bagListItem struct {
	bagDetail
	BrewCount     int      `json:"brewCount"`
	AverageRating *float64 `json:"averageRating"`
}

func newBagDetail(b *domain.Bag, now time.Time) bagDetail {
	age := domain.RoastAgeDays(b.RoastDate, now)
	var roastDate *string
	if b.RoastDate != nil {
		s := b.RoastDate.Format(validation.DateFormat)
		roastDate = &s
	}
	return bagDetail{
		Bag:           b,
		RoastDate:     roastDate,
		RoastAgeDays:  age,
		RestingStatus: domain.RestingFor(age),
	}
}

// handleCreateBag creates a new bag for the caller.
func (s *Server) handleCreateBag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req bagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body", s.logger)
		return
	}

	input, err := req.validate(s.validator)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	bag, err := s.bagService.CreateBag(ctx, getUserID(ctx), input)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, newBagDetail(bag, time.Now().UTC()), s.logger)
}

// handleListBags lists the caller's bags with brew rollups.
// The status query defaults to ACTIVE; an unknown status is a validation error.
func (s *Server) handleListBags(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := domain.BagStatusActive
	switch raw := r.URL.Query().Get("status"); raw {
	case "", string(domain.BagStatusActive):
	case string(domain.BagStatusArchived):
		status = domain.BagStatusArchived
	default:
		response.ValidationFailed(w, []apperrors.FieldIssue{
			{Field: "status", Message: "must be one of: ACTIVE, ARCHIVED"},
		}, s.logger)
		return
	}

	bags, err := s.bagService.ListBags(ctx, getUserID(ctx), status)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	now := time.Now().UTC()
	items := make([]bagListItem, 0, len(bags))
	for _, b := range bags {
		items = append(items, bagListItem{
			bagDetail:     newBagDetail(b.Bag, now),
			BrewCount:     b.BrewCount,
			AverageRating: b.AverageRating,
		})
	}

	response.Success(w, items, s.logger)
}

// handleGetBag fetches one of the caller's bags.
func (s *Server) handleGetBag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bag, err := s.bagService.GetBag(ctx, chi.URLParam(r, "id"), getUserID(ctx))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, newBagDetail(bag, time.Now().UTC()), s.logger)
}

// handleUpdateBag replaces the descriptive fields of a bag.
func (s *Server) handleUpdateBag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req bagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body", s.logger)
		return
	}

	input, err := req.validate(s.validator)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	bag, err := s.bagService.UpdateBag(ctx, chi.URLParam(r, "id"), getUserID(ctx), input)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, newBagDetail(bag, time.Now().UTC()), s.logger)
}

// handleArchiveBag moves a bag to ARCHIVED.
func (s *Server) handleArchiveBag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bag, err := s.bagService.ArchiveBag(ctx, chi.URLParam(r, "id"), getUserID(ctx))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, newBagDetail(bag, time.Now().UTC()), s.logger)
}

// handleUnarchiveBag returns a bag to ACTIVE.
func (s *Server) handleUnarchiveBag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bag, err := s.bagService.UnarchiveBag(ctx, chi.URLParam(r, "id"), getUserID(ctx))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, newBagDetail(bag, time.Now().UTC()), s.logger)
}
