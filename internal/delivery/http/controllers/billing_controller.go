package controllers

import (
	"log/slog"
	"net/http"

	"sponsorhub/internal/delivery/http/helpers"
	"sponsorhub/internal/domain"
)

// RecordInvoiceRequest is the request body for POST .../partnerships/{partnershipID}/invoices.
type RecordInvoiceRequest struct {
	InvoiceNumber string `json:"invoice_number"`
}

// Validate implements Validator.
func (r RecordInvoiceRequest) Validate() []string {
	var errs []string
	if r.InvoiceNumber == "" {
		errs = append(errs, "invoice_number is required")
	}
	return errs
}

type BillingController struct {
	Logger  *slog.Logger
	Service domain.BillingService
}

func NewBillingController(logger *slog.Logger, svc domain.BillingService) *BillingController {
	return &BillingController{Logger: logger, Service: svc}
}

// RecordInvoice godoc
// @Summary Announce an issued invoice
// @Description Records that an invoice was issued for a validated partnership and notifies the sponsor.
// @Tags billing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param partnershipID path string true "Partnership ID"
// @Param invoice body RecordInvoiceRequest true "Invoice reference"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 412 {object} helpers.APIResponse "error.code: precondition_failed"
// @Router /events/{eventID}/partnerships/{partnershipID}/invoices [post]
func (c *BillingController) RecordInvoice(w http.ResponseWriter, r *http.Request) {
	var req RecordInvoiceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	err := c.Service.RecordInvoice(r.Context(), r.PathValue("eventID"), r.PathValue("partnershipID"), req.InvoiceNumber)
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}

// AgreementSigned godoc
// @Summary Announce a signed agreement
// @Description Records that the sponsorship agreement was countersigned for a validated partnership and notifies the sponsor.
// @Tags billing
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param partnershipID path string true "Partnership ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 412 {object} helpers.APIResponse "error.code: precondition_failed"
// @Router /events/{eventID}/partnerships/{partnershipID}/agreement-signed [post]
func (c *BillingController) AgreementSigned(w http.ResponseWriter, r *http.Request) {
	err := c.Service.RecordAgreementSigned(r.Context(), r.PathValue("eventID"), r.PathValue("partnershipID"))
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}

func (c *BillingController) logError(r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
}
