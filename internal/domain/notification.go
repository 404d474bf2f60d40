package domain

import (
	"context"
	"time"
)

// NotificationVariables is the closed set of business events a notification
// can announce. Each variant carries exactly the fields its message template
// needs. Senders dispatch with an exhaustive type switch; adding a variant
// without handling it is a programming error surfaced at send time.
type NotificationVariables interface {
	// Tag returns the stable name of the variant, used as template name and
	// persisted with the email history.
	Tag() string
}

// NewPartnershipVars announces a freshly registered partnership.
type NewPartnershipVars struct {
	EventName   string
	CompanyName string
}

// PartnershipValidatedVars announces that the organisers validated the
// partnership with the given pack.
type PartnershipValidatedVars struct {
	EventName   string
	CompanyName string
	PackName    string
}

// PartnershipDeclinedVars announces that the organisers declined the
// partnership.
type PartnershipDeclinedVars struct {
	EventName   string
	CompanyName string
}

// NewSuggestionVars announces an alternative pack suggested to the sponsor.
type NewSuggestionVars struct {
	EventName   string
	CompanyName string
	PackName    string
}

// SuggestionApprovedVars announces that the sponsor accepted the suggested
// pack.
type SuggestionApprovedVars struct {
	EventName   string
	CompanyName string
	PackName    string
}

// SuggestionDeclinedVars announces that the sponsor refused the suggested
// pack.
type SuggestionDeclinedVars struct {
	EventName   string
	CompanyName string
}

// JobOfferApprovedVars announces an approved job offer promotion.
type JobOfferApprovedVars struct {
	EventName     string
	CompanyName   string
	JobOfferTitle string
}

// JobOfferDeclinedVars announces a declined job offer promotion with the
// reviewer's reason.
type JobOfferDeclinedVars struct {
	EventName     string
	CompanyName   string
	JobOfferTitle string
	Reason        string
}

// NewInvoiceVars announces an issued invoice.
type NewInvoiceVars struct {
	EventName     string
	CompanyName   string
	InvoiceNumber string
}

// PartnershipAgreementSignedVars announces a countersigned sponsorship
// agreement.
type PartnershipAgreementSignedVars struct {
	EventName   string
	CompanyName string
}

func (NewPartnershipVars) Tag() string             { return "new_partnership" }
func (PartnershipValidatedVars) Tag() string       { return "partnership_validated" }
func (PartnershipDeclinedVars) Tag() string        { return "partnership_declined" }
func (NewSuggestionVars) Tag() string              { return "new_suggestion" }
func (SuggestionApprovedVars) Tag() string         { return "suggestion_approved" }
func (SuggestionDeclinedVars) Tag() string         { return "suggestion_declined" }
func (JobOfferApprovedVars) Tag() string           { return "job_offer_approved" }
func (JobOfferDeclinedVars) Tag() string           { return "job_offer_declined" }
func (NewInvoiceVars) Tag() string                 { return "new_invoice" }
func (PartnershipAgreementSignedVars) Tag() string { return "agreement_signed" }

// Message is one localized notification to deliver for an event.
type Message struct {
	EventSlug string
	Language  string
	To        string
	Variables NotificationVariables
}

// DeliveryStatus summarizes the outcome of a notification send.
type DeliveryStatus string

const (
	DeliverySent   DeliveryStatus = "SENT"
	DeliveryFailed DeliveryStatus = "FAILED"
)

// DeliveryResult reports what happened to a sent message. Error is the
// provider failure text, empty on success.
type DeliveryResult struct {
	Status DeliveryStatus
	To     string
	Error  string
	SentAt time.Time
}

// NotificationSender delivers one localized message. Implementations report
// the outcome instead of failing the caller: a send failure must never roll
// back the state transition that triggered it.
type NotificationSender interface {
	SendMessage(ctx context.Context, msg Message) DeliveryResult
}

// EmailHistory is the persisted record of one notification sent (or
// attempted) for a partnership.
// swagger:model EmailHistory
type EmailHistory struct {
	ID            string         `json:"id"`
	PartnershipID string         `json:"partnership_id"`
	Variable      string         `json:"variable"`
	Recipient     string         `json:"recipient"`
	Status        DeliveryStatus `json:"status"`
	Error         string         `json:"error,omitempty"`
	SentAt        time.Time      `json:"sent_at"`
}

// EmailHistoryRepository defines storage for the notification audit trail.
type EmailHistoryRepository interface {
	Create(ctx context.Context, h *EmailHistory) error
	ListByPartnershipID(ctx context.Context, partnershipID string) ([]*EmailHistory, error)
}

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders localized email content from a named
// template. Implementations fall back to a default language when no
// translation exists for the requested one.
type EmailTemplateRenderer interface {
	Render(templateName, language string, data any) (subject, htmlBody, textBody string, err error)
}
