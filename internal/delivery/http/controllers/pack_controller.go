package controllers

import (
	"log/slog"
	"net/http"

	"sponsorhub/internal/delivery/http/helpers"
	"sponsorhub/internal/domain"
)

// CreatePackRequest is the request body for POST /events/{eventID}/packs.
type CreatePackRequest struct {
	Name        string `json:"name"`
	BasePrice   int64  `json:"base_price"`
	MaxQuantity *int   `json:"max_quantity"`
}

// Validate implements Validator.
func (r CreatePackRequest) Validate() []string {
	var errs []string
	if r.Name == "" {
		errs = append(errs, "name is required")
	}
	if r.BasePrice < 0 {
		errs = append(errs, "base_price must not be negative")
	}
	if r.MaxQuantity != nil && *r.MaxQuantity < 1 {
		errs = append(errs, "max_quantity must be at least 1")
	}
	return errs
}

// CreateOptionRequest is the request body for POST /events/{eventID}/options.
type CreateOptionRequest struct {
	Kind         string                     `json:"kind"`
	Price        *int64                     `json:"price"`
	Quantity     *int                       `json:"quantity"`
	Translations []domain.OptionTranslation `json:"translations"`
}

// Validate implements Validator.
func (r CreateOptionRequest) Validate() []string {
	var errs []string
	if r.Kind == "" {
		errs = append(errs, "kind is required")
	}
	if len(r.Translations) == 0 {
		errs = append(errs, "at least one translation is required")
	}
	for _, t := range r.Translations {
		if t.Language == "" || t.Name == "" {
			errs = append(errs, "each translation needs a language and a name")
			break
		}
	}
	return errs
}

// ReconcileOptionsRequest is the request body for PUT .../packs/{packID}/options.
// Required and Optional are the full target sets; options attached to the pack
// but absent from both are detached.
type ReconcileOptionsRequest struct {
	Required []string `json:"required"`
	Optional []string `json:"optional"`
}

type PackController struct {
	Logger  *slog.Logger
	Service domain.PackService
}

func NewPackController(logger *slog.Logger, svc domain.PackService) *PackController {
	return &PackController{
		Logger:  logger,
		Service: svc,
	}
}

// CreatePack godoc
// @Summary Create a sponsoring pack
// @Tags packs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param pack body CreatePackRequest true "Pack data"
// @Success 201 {object} helpers.APIResponse "data contains the created pack"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/packs [post]
func (c *PackController) CreatePack(w http.ResponseWriter, r *http.Request) {
	var req CreatePackRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	pack, err := c.Service.CreatePack(r.Context(), r.PathValue("eventID"), domain.CreatePackInput{
		Name:        req.Name,
		BasePrice:   req.BasePrice,
		MaxQuantity: req.MaxQuantity,
	})
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, pack)
}

// ListPacks godoc
// @Summary List the sponsoring packs of an event
// @Tags packs
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the packs"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/packs [get]
func (c *PackController) ListPacks(w http.ResponseWriter, r *http.Request) {
	packs, err := c.Service.ListPacks(r.Context(), r.PathValue("eventID"))
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, packs)
}

// DeletePack godoc
// @Summary Delete a sponsoring pack
// @Description Fails with conflict while any option is still attached to the pack.
// @Tags packs
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param packID path string true "Pack ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /events/{eventID}/packs/{packID} [delete]
func (c *PackController) DeletePack(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.DeletePack(r.Context(), r.PathValue("eventID"), r.PathValue("packID")); err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}

// CreateOption godoc
// @Summary Create a sponsoring option
// @Tags options
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param option body CreateOptionRequest true "Option data"
// @Success 201 {object} helpers.APIResponse "data contains the created option"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/options [post]
func (c *PackController) CreateOption(w http.ResponseWriter, r *http.Request) {
	var req CreateOptionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	option, err := c.Service.CreateOption(r.Context(), r.PathValue("eventID"), domain.CreateOptionInput{
		Kind:         domain.OptionKind(req.Kind),
		Price:        req.Price,
		Quantity:     req.Quantity,
		Translations: req.Translations,
	})
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, option)
}

// ListOptions godoc
// @Summary List the sponsoring options of an event
// @Tags options
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the options"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/options [get]
func (c *PackController) ListOptions(w http.ResponseWriter, r *http.Request) {
	options, err := c.Service.ListOptions(r.Context(), r.PathValue("eventID"))
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, options)
}

// DeleteOption godoc
// @Summary Delete a sponsoring option
// @Description Fails with conflict while the option is attached to any pack.
// @Tags options
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param optionID path string true "Option ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /events/{eventID}/options/{optionID} [delete]
func (c *PackController) DeleteOption(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.DeleteOption(r.Context(), r.PathValue("eventID"), r.PathValue("optionID")); err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}

// ReconcileOptions godoc
// @Summary Replace a pack's option configuration
// @Description Declarative replacement: the submitted required and optional sets become the pack's whole configuration. Missing options are detached, flag changes are applied in place, and the change is atomic.
// @Tags packs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param packID path string true "Pack ID"
// @Param configuration body ReconcileOptionsRequest true "Target option sets"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /events/{eventID}/packs/{packID}/options [put]
func (c *PackController) ReconcileOptions(w http.ResponseWriter, r *http.Request) {
	var req ReconcileOptionsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	err := c.Service.ReconcileOptions(r.Context(), r.PathValue("eventID"), r.PathValue("packID"), domain.OptionConfiguration{
		Required: req.Required,
		Optional: req.Optional,
	})
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}

// ListPackOptions godoc
// @Summary List a pack's option attachments
// @Tags packs
// @Produce json
// @Param eventID path string true "Event ID"
// @Param packID path string true "Pack ID"
// @Success 200 {object} helpers.APIResponse "data contains the attachments"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/packs/{packID}/options [get]
func (c *PackController) ListPackOptions(w http.ResponseWriter, r *http.Request) {
	attachments, err := c.Service.ListPackOptions(r.Context(), r.PathValue("eventID"), r.PathValue("packID"))
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, attachments)
}

func (c *PackController) logError(r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
}
