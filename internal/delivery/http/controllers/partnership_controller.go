package controllers

import (
	"log/slog"
	"net/http"

	"sponsorhub/internal/delivery/http/helpers"
	"sponsorhub/internal/domain"
)

// RegisterPartnershipRequest is the request body for POST /events/{eventID}/partnerships.
type RegisterPartnershipRequest struct {
	CompanyID string  `json:"company_id"`
	Language  string  `json:"language"`
	PackID    *string `json:"pack_id"`
}

// Validate implements Validator.
func (r RegisterPartnershipRequest) Validate() []string {
	var errs []string
	if r.CompanyID == "" {
		errs = append(errs, "company_id is required")
	}
	return errs
}

// SuggestPackRequest is the request body for POST .../partnerships/{partnershipID}/suggestion.
type SuggestPackRequest struct {
	PackID   string `json:"pack_id"`
	Language string `json:"language"`
}

// Validate implements Validator.
func (r SuggestPackRequest) Validate() []string {
	var errs []string
	if r.PackID == "" {
		errs = append(errs, "pack_id is required")
	}
	return errs
}

// UpdateBoothLocationRequest is the request body for PATCH .../partnerships/{partnershipID}/booth-location.
type UpdateBoothLocationRequest struct {
	BoothLocation *string `json:"booth_location"`
}

// AssignOrganiserRequest is the request body for PATCH .../partnerships/{partnershipID}/organiser.
type AssignOrganiserRequest struct {
	OrganiserID *string `json:"organiser_id"`
}

// PartnershipIDResponse carries the id of the partnership a transition acted on.
type PartnershipIDResponse struct {
	ID string `json:"id"`
}

// PartnershipListResponse is the paginated partnership listing.
type PartnershipListResponse struct {
	Partnerships []*domain.Partnership  `json:"partnerships"`
	Pagination   helpers.PaginationMeta `json:"pagination"`
}

type PartnershipController struct {
	Logger  *slog.Logger
	Service domain.PartnershipService
	History domain.EmailHistoryRepository
}

func NewPartnershipController(logger *slog.Logger, svc domain.PartnershipService, history domain.EmailHistoryRepository) *PartnershipController {
	return &PartnershipController{
		Logger:  logger,
		Service: svc,
		History: history,
	}
}

// Register godoc
// @Summary Register a partnership
// @Description Registers a PENDING partnership between a company and the event, optionally with a pre-selected pack.
// @Tags partnerships
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param partnership body RegisterPartnershipRequest true "Partnership data"
// @Success 201 {object} helpers.APIResponse "data contains the partnership id"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /events/{eventID}/partnerships [post]
func (c *PartnershipController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterPartnershipRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	id, err := c.Service.Register(r.Context(), r.PathValue("eventID"), domain.RegisterPartnershipInput{
		CompanyID: req.CompanyID,
		Language:  req.Language,
		PackID:    req.PackID,
	})
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, PartnershipIDResponse{ID: id})
}

// Validate godoc
// @Summary Validate a partnership
// @Description Moves a PENDING partnership with a selected pack to VALIDATED. Validating an already VALIDATED partnership is a no-op.
// @Tags partnerships
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param partnershipID path string true "Partnership ID"
// @Success 200 {object} helpers.APIResponse "data contains the partnership id"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 412 {object} helpers.APIResponse "error.code: precondition_failed"
// @Router /events/{eventID}/partnerships/{partnershipID}/validate [post]
func (c *PartnershipController) Validate(w http.ResponseWriter, r *http.Request) {
	id, err := c.Service.Validate(r.Context(), r.PathValue("eventID"), r.PathValue("partnershipID"))
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PartnershipIDResponse{ID: id})
}

// Decline godoc
// @Summary Decline a partnership
// @Description Moves a PENDING or VALIDATED partnership to DECLINED. Declining an already DECLINED partnership is a no-op.
// @Tags partnerships
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param partnershipID path string true "Partnership ID"
// @Success 200 {object} helpers.APIResponse "data contains the partnership id"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/partnerships/{partnershipID}/decline [post]
func (c *PartnershipController) Decline(w http.ResponseWriter, r *http.Request) {
	id, err := c.Service.Decline(r.Context(), r.PathValue("eventID"), r.PathValue("partnershipID"))
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PartnershipIDResponse{ID: id})
}

// Suggest godoc
// @Summary Suggest an alternative pack
// @Description Records a pack suggestion for the sponsor to review, optionally updating the notification language.
// @Tags partnerships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param partnershipID path string true "Partnership ID"
// @Param suggestion body SuggestPackRequest true "Suggested pack"
// @Success 200 {object} helpers.APIResponse "data contains the partnership id"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/partnerships/{partnershipID}/suggestion [post]
func (c *PartnershipController) Suggest(w http.ResponseWriter, r *http.Request) {
	var req SuggestPackRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	id, err := c.Service.Suggest(r.Context(), r.PathValue("eventID"), r.PathValue("partnershipID"), req.PackID, req.Language)
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PartnershipIDResponse{ID: id})
}

// ApproveSuggestion godoc
// @Summary Approve the pending pack suggestion
// @Description Promotes the pending suggestion into the selected pack and clears it.
// @Tags partnerships
// @Produce json
// @Param eventID path string true "Event ID"
// @Param partnershipID path string true "Partnership ID"
// @Success 200 {object} helpers.APIResponse "data contains the partnership id"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/partnerships/{partnershipID}/suggestion/approve [post]
func (c *PartnershipController) ApproveSuggestion(w http.ResponseWriter, r *http.Request) {
	id, err := c.Service.ApproveSuggestion(r.Context(), r.PathValue("eventID"), r.PathValue("partnershipID"))
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PartnershipIDResponse{ID: id})
}

// DeclineSuggestion godoc
// @Summary Decline the pending pack suggestion
// @Description Drops the pending suggestion, leaving the selected pack untouched.
// @Tags partnerships
// @Produce json
// @Param eventID path string true "Event ID"
// @Param partnershipID path string true "Partnership ID"
// @Success 200 {object} helpers.APIResponse "data contains the partnership id"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/partnerships/{partnershipID}/suggestion/decline [post]
func (c *PartnershipController) DeclineSuggestion(w http.ResponseWriter, r *http.Request) {
	id, err := c.Service.DeclineSuggestion(r.Context(), r.PathValue("eventID"), r.PathValue("partnershipID"))
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PartnershipIDResponse{ID: id})
}

// Get godoc
// @Summary Get a partnership
// @Tags partnerships
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param partnershipID path string true "Partnership ID"
// @Success 200 {object} helpers.APIResponse "data contains the partnership"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/partnerships/{partnershipID} [get]
func (c *PartnershipController) Get(w http.ResponseWriter, r *http.Request) {
	p, err := c.Service.Get(r.Context(), r.PathValue("eventID"), r.PathValue("partnershipID"))
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, p)
}

// List godoc
// @Summary List partnerships for an event
// @Description Paginated listing, optionally filtered by status (PENDING, VALIDATED, DECLINED).
// @Tags partnerships
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param status query string false "Status filter"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} helpers.APIResponse "data contains partnerships and pagination"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/partnerships [get]
func (c *PartnershipController) List(w http.ResponseWriter, r *http.Request) {
	var status *domain.PartnershipStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.PartnershipStatus(s)
		switch st {
		case domain.PartnershipPending, domain.PartnershipValidated, domain.PartnershipDeclined:
			status = &st
		default:
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "unknown status filter")
			return
		}
	}
	params := helpers.ParsePagination(r)
	partnerships, total, err := c.Service.List(r.Context(), r.PathValue("eventID"), status, params)
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PartnershipListResponse{
		Partnerships: partnerships,
		Pagination:   helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// UpdateBoothLocation godoc
// @Summary Update the booth location
// @Tags partnerships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param partnershipID path string true "Partnership ID"
// @Param booth body UpdateBoothLocationRequest true "Booth location (null clears it)"
// @Success 200 {object} helpers.APIResponse "data contains the partnership id"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/partnerships/{partnershipID}/booth-location [patch]
func (c *PartnershipController) UpdateBoothLocation(w http.ResponseWriter, r *http.Request) {
	var req UpdateBoothLocationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	partnershipID := r.PathValue("partnershipID")
	if err := c.Service.UpdateBoothLocation(r.Context(), r.PathValue("eventID"), partnershipID, req.BoothLocation); err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PartnershipIDResponse{ID: partnershipID})
}

// AssignOrganiser godoc
// @Summary Assign an organiser to the partnership
// @Tags partnerships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param partnershipID path string true "Partnership ID"
// @Param organiser body AssignOrganiserRequest true "Organiser (null unassigns)"
// @Success 200 {object} helpers.APIResponse "data contains the partnership id"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/partnerships/{partnershipID}/organiser [patch]
func (c *PartnershipController) AssignOrganiser(w http.ResponseWriter, r *http.Request) {
	var req AssignOrganiserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	partnershipID := r.PathValue("partnershipID")
	if err := c.Service.AssignOrganiser(r.Context(), r.PathValue("eventID"), partnershipID, req.OrganiserID); err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PartnershipIDResponse{ID: partnershipID})
}

// EmailHistory godoc
// @Summary List the notification history of a partnership
// @Tags partnerships
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param partnershipID path string true "Partnership ID"
// @Success 200 {object} helpers.APIResponse "data contains the email history"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/partnerships/{partnershipID}/emails [get]
func (c *PartnershipController) EmailHistory(w http.ResponseWriter, r *http.Request) {
	// Scope check before touching the history table.
	p, err := c.Service.Get(r.Context(), r.PathValue("eventID"), r.PathValue("partnershipID"))
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	history, err := c.History.ListByPartnershipID(r.Context(), p.ID)
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, history)
}

func (c *PartnershipController) logError(r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
}
