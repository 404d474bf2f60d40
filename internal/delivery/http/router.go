package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"sponsorhub/internal/delivery/http/controllers"
	"sponsorhub/internal/delivery/http/middleware"
	"sponsorhub/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes. Sponsor
// facing routes (registration, suggestion review, promotion requests) are
// public; organiser routes require a bearer token.
func NewRouter(
	partnership *controllers.PartnershipController,
	pack *controllers.PackController,
	promotion *controllers.PromotionController,
	webhook *controllers.WebhookController,
	billing *controllers.BillingController,
	auth *controllers.AuthController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier)

	// Sponsor-facing
	mux.HandleFunc("POST /events/{eventID}/partnerships", partnership.Register)
	mux.HandleFunc("POST /events/{eventID}/partnerships/{partnershipID}/suggestion/approve", partnership.ApproveSuggestion)
	mux.HandleFunc("POST /events/{eventID}/partnerships/{partnershipID}/suggestion/decline", partnership.DeclineSuggestion)
	mux.HandleFunc("POST /job-offer-promotions", promotion.Promote)
	mux.HandleFunc("GET /events/{eventID}/packs", pack.ListPacks)
	mux.HandleFunc("GET /events/{eventID}/options", pack.ListOptions)
	mux.HandleFunc("GET /events/{eventID}/packs/{packID}/options", pack.ListPackOptions)

	// Organiser: partnership review
	mux.HandleFunc("GET /events/{eventID}/partnerships", requireAuth(partnership.List))
	mux.HandleFunc("GET /events/{eventID}/partnerships/{partnershipID}", requireAuth(partnership.Get))
	mux.HandleFunc("POST /events/{eventID}/partnerships/{partnershipID}/validate", requireAuth(partnership.Validate))
	mux.HandleFunc("POST /events/{eventID}/partnerships/{partnershipID}/decline", requireAuth(partnership.Decline))
	mux.HandleFunc("POST /events/{eventID}/partnerships/{partnershipID}/suggestion", requireAuth(partnership.Suggest))
	mux.HandleFunc("PATCH /events/{eventID}/partnerships/{partnershipID}/booth-location", requireAuth(partnership.UpdateBoothLocation))
	mux.HandleFunc("PATCH /events/{eventID}/partnerships/{partnershipID}/organiser", requireAuth(partnership.AssignOrganiser))
	mux.HandleFunc("GET /events/{eventID}/partnerships/{partnershipID}/emails", requireAuth(partnership.EmailHistory))

	// Organiser: pack and option configuration
	mux.HandleFunc("POST /events/{eventID}/packs", requireAuth(pack.CreatePack))
	mux.HandleFunc("DELETE /events/{eventID}/packs/{packID}", requireAuth(pack.DeletePack))
	mux.HandleFunc("POST /events/{eventID}/options", requireAuth(pack.CreateOption))
	mux.HandleFunc("DELETE /events/{eventID}/options/{optionID}", requireAuth(pack.DeleteOption))
	mux.HandleFunc("PUT /events/{eventID}/packs/{packID}/options", requireAuth(pack.ReconcileOptions))

	// Organiser: promotion review
	mux.HandleFunc("GET /events/{eventID}/job-offer-promotions", requireAuth(promotion.List))
	mux.HandleFunc("POST /job-offer-promotions/{promotionID}/approve", requireAuth(promotion.Approve))
	mux.HandleFunc("POST /job-offer-promotions/{promotionID}/decline", requireAuth(promotion.Decline))

	// Organiser: billing milestones
	mux.HandleFunc("POST /events/{eventID}/partnerships/{partnershipID}/invoices", requireAuth(billing.RecordInvoice))
	mux.HandleFunc("POST /events/{eventID}/partnerships/{partnershipID}/agreement-signed", requireAuth(billing.AgreementSigned))

	// Organiser: webhook subscriptions
	mux.HandleFunc("POST /events/{eventID}/webhooks", requireAuth(webhook.Create))
	mux.HandleFunc("GET /events/{eventID}/webhooks", requireAuth(webhook.List))
	mux.HandleFunc("DELETE /events/{eventID}/webhooks/{subscriptionID}", requireAuth(webhook.Delete))

	// Auth
	mux.HandleFunc("POST /auth/login", auth.Login)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
