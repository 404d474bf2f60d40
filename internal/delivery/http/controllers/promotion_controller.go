package controllers

import (
	"log/slog"
	"net/http"

	"sponsorhub/internal/delivery/http/helpers"
	"sponsorhub/internal/delivery/http/middleware"
	"sponsorhub/internal/domain"
)

// PromoteJobOfferRequest is the request body for POST .../job-offer-promotions.
type PromoteJobOfferRequest struct {
	CompanyID     string `json:"company_id"`
	PartnershipID string `json:"partnership_id"`
	JobOfferID    string `json:"job_offer_id"`
}

// Validate implements Validator.
func (r PromoteJobOfferRequest) Validate() []string {
	var errs []string
	if r.CompanyID == "" {
		errs = append(errs, "company_id is required")
	}
	if r.PartnershipID == "" {
		errs = append(errs, "partnership_id is required")
	}
	if r.JobOfferID == "" {
		errs = append(errs, "job_offer_id is required")
	}
	return errs
}

// DeclinePromotionRequest is the request body for POST .../promotions/{promotionID}/decline.
type DeclinePromotionRequest struct {
	Reason string `json:"reason"`
}

// PromotionIDResponse carries the id of the promotion a transition acted on.
type PromotionIDResponse struct {
	ID string `json:"id"`
}

// PromotionListResponse is the paginated promotion listing.
type PromotionListResponse struct {
	Promotions []*domain.JobOfferPromotion `json:"promotions"`
	Pagination helpers.PaginationMeta      `json:"pagination"`
}

type PromotionController struct {
	Logger  *slog.Logger
	Service domain.PromotionService
}

func NewPromotionController(logger *slog.Logger, svc domain.PromotionService) *PromotionController {
	return &PromotionController{
		Logger:  logger,
		Service: svc,
	}
}

// Promote godoc
// @Summary Promote a job offer through a partnership
// @Description Creates a PENDING promotion, or re-activates a previously DECLINED one in place. Fails with conflict while a promotion for the same pair is PENDING or APPROVED, and with forbidden once the event has ended.
// @Tags promotions
// @Accept json
// @Produce json
// @Param promotion body PromoteJobOfferRequest true "Promotion data"
// @Success 201 {object} helpers.APIResponse "data contains the promotion id"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /job-offer-promotions [post]
func (c *PromotionController) Promote(w http.ResponseWriter, r *http.Request) {
	var req PromoteJobOfferRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	id, err := c.Service.Promote(r.Context(), req.CompanyID, req.PartnershipID, req.JobOfferID)
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, PromotionIDResponse{ID: id})
}

// Approve godoc
// @Summary Approve a pending promotion
// @Tags promotions
// @Produce json
// @Security BearerAuth
// @Param promotionID path string true "Promotion ID"
// @Success 200 {object} helpers.APIResponse "data contains the reviewed promotion"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /job-offer-promotions/{promotionID}/approve [post]
func (c *PromotionController) Approve(w http.ResponseWriter, r *http.Request) {
	reviewerID, ok := middleware.OrganiserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	promo, err := c.Service.Approve(r.Context(), r.PathValue("promotionID"), reviewerID)
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, promo)
}

// Decline godoc
// @Summary Decline a pending promotion
// @Tags promotions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param promotionID path string true "Promotion ID"
// @Param decline body DeclinePromotionRequest true "Decline reason (optional)"
// @Success 200 {object} helpers.APIResponse "data contains the reviewed promotion"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /job-offer-promotions/{promotionID}/decline [post]
func (c *PromotionController) Decline(w http.ResponseWriter, r *http.Request) {
	reviewerID, ok := middleware.OrganiserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req DeclinePromotionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	promo, err := c.Service.Decline(r.Context(), r.PathValue("promotionID"), reviewerID, req.Reason)
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, promo)
}

// List godoc
// @Summary List job offer promotions for an event
// @Description Paginated listing ordered by most recent promotion first, optionally filtered by status (PENDING, APPROVED, DECLINED).
// @Tags promotions
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param status query string false "Status filter"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} helpers.APIResponse "data contains promotions and pagination"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/job-offer-promotions [get]
func (c *PromotionController) List(w http.ResponseWriter, r *http.Request) {
	var status *domain.PromotionStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.PromotionStatus(s)
		switch st {
		case domain.PromotionPending, domain.PromotionApproved, domain.PromotionDeclined:
			status = &st
		default:
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "unknown status filter")
			return
		}
	}
	params := helpers.ParsePagination(r)
	promotions, total, err := c.Service.List(r.Context(), r.PathValue("eventID"), status, params)
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PromotionListResponse{
		Promotions: promotions,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

func (c *PromotionController) logError(r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
}
