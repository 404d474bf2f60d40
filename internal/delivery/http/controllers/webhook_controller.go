package controllers

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"sponsorhub/internal/delivery/http/helpers"
	"sponsorhub/internal/domain"
)

// CreateWebhookSubscriptionRequest is the request body for POST .../webhooks.
type CreateWebhookSubscriptionRequest struct {
	URL    string `json:"url"`
	Secret string `json:"secret"`
}

// Validate implements Validator.
func (r CreateWebhookSubscriptionRequest) Validate() []string {
	var errs []string
	if r.URL == "" {
		errs = append(errs, "url is required")
	} else if u, err := url.Parse(r.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, "url must be a valid http(s) URL")
	}
	return errs
}

// WebhookController manages subscriber endpoints. Subscriptions are plain
// CRUD rows; the controller talks to the repository directly.
type WebhookController struct {
	Logger        *slog.Logger
	Subscriptions domain.WebhookSubscriptionRepository
}

func NewWebhookController(logger *slog.Logger, subs domain.WebhookSubscriptionRepository) *WebhookController {
	return &WebhookController{
		Logger:        logger,
		Subscriptions: subs,
	}
}

// Create godoc
// @Summary Subscribe an endpoint to partnership changes
// @Tags webhooks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param subscription body CreateWebhookSubscriptionRequest true "Endpoint data"
// @Success 201 {object} helpers.APIResponse "data contains the subscription"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /events/{eventID}/webhooks [post]
func (c *WebhookController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateWebhookSubscriptionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	sub := &domain.WebhookSubscription{
		EventID:   r.PathValue("eventID"),
		URL:       req.URL,
		Secret:    req.Secret,
		CreatedAt: time.Now(),
	}
	if err := c.Subscriptions.Create(r.Context(), sub); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, sub)
}

// List godoc
// @Summary List the webhook subscriptions of an event
// @Tags webhooks
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the subscriptions"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /events/{eventID}/webhooks [get]
func (c *WebhookController) List(w http.ResponseWriter, r *http.Request) {
	subs, err := c.Subscriptions.ListByEventID(r.Context(), r.PathValue("eventID"))
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, subs)
}

// Delete godoc
// @Summary Remove a webhook subscription
// @Tags webhooks
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param subscriptionID path string true "Subscription ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/webhooks/{subscriptionID} [delete]
func (c *WebhookController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.Subscriptions.Delete(r.Context(), r.PathValue("eventID"), r.PathValue("subscriptionID")); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}
