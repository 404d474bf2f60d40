package domain

import (
	"context"
	"time"
)

// PartnershipStatus is the primary decision state of a partnership.
type PartnershipStatus string

const (
	PartnershipPending   PartnershipStatus = "PENDING"
	PartnershipValidated PartnershipStatus = "VALIDATED"
	PartnershipDeclined  PartnershipStatus = "DECLINED"
)

// Partnership is the sponsorship relationship between one company and one
// event. SelectedPackID is non-nil only once the partnership is validated (or
// a suggestion has been approved); SuggestionPackID is non-nil only while a
// pack suggestion is pending review.
// swagger:model Partnership
type Partnership struct {
	ID               string            `json:"id"`
	EventID          string            `json:"event_id"`
	CompanyID        string            `json:"company_id"`
	Status           PartnershipStatus `json:"status"`
	SelectedPackID   *string           `json:"selected_pack_id"`
	SuggestionPackID *string           `json:"suggestion_pack_id"`
	Language         string            `json:"language"`
	BoothLocation    *string           `json:"booth_location"`
	OrganiserID      *string           `json:"organiser_id"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// NewPartnership returns a PENDING partnership for the given event and
// company. ID is set by the repository on create.
func NewPartnership(eventID, companyID, language string, selectedPackID *string, now time.Time) *Partnership {
	return &Partnership{
		EventID:        eventID,
		CompanyID:      companyID,
		Status:         PartnershipPending,
		SelectedPackID: selectedPackID,
		Language:       language,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// PartnershipRepository defines storage operations for partnerships. The
// state-changing methods use conditional updates (the WHERE clause carries
// the expected current state) so that concurrent transitions on the same
// partnership are linearized by the database; they return false when the
// guard did not match.
type PartnershipRepository interface {
	Create(ctx context.Context, p *Partnership) error
	GetByID(ctx context.Context, id string) (*Partnership, error)
	GetByEventAndID(ctx context.Context, eventID, id string) (*Partnership, error)
	ListByEventID(ctx context.Context, eventID string, status *PartnershipStatus, params PaginationParams) ([]*Partnership, int, error)

	// UpdateStatus moves the partnership to a new decision state provided its
	// current state is one of allowedFrom.
	UpdateStatus(ctx context.Context, id string, to PartnershipStatus, allowedFrom ...PartnershipStatus) (bool, error)
	// SetSuggestion records a pending pack suggestion, optionally updating
	// the stored notification language.
	SetSuggestion(ctx context.Context, id, packID string, language *string) (bool, error)
	// PromoteSuggestion copies the pending suggestion into the selected pack
	// and clears it. Returns false when no suggestion is pending.
	PromoteSuggestion(ctx context.Context, id string) (bool, error)
	// ClearSuggestion drops the pending suggestion without touching the
	// selected pack. Returns false when no suggestion is pending.
	ClearSuggestion(ctx context.Context, id string) (bool, error)

	UpdateBoothLocation(ctx context.Context, id string, boothLocation *string) error
	AssignOrganiser(ctx context.Context, id string, organiserID *string) error
}

// RegisterPartnershipInput is the caller-supplied data for a new partnership.
type RegisterPartnershipInput struct {
	CompanyID string
	Language  string
	PackID    *string
}

// PartnershipService defines the decision and suggestion workflows of a
// partnership. All methods return the partnership id they acted on.
type PartnershipService interface {
	Register(ctx context.Context, eventID string, input RegisterPartnershipInput) (string, error)
	Validate(ctx context.Context, eventID, partnershipID string) (string, error)
	Decline(ctx context.Context, eventID, partnershipID string) (string, error)

	Suggest(ctx context.Context, eventID, partnershipID, packID, language string) (string, error)
	ApproveSuggestion(ctx context.Context, eventID, partnershipID string) (string, error)
	DeclineSuggestion(ctx context.Context, eventID, partnershipID string) (string, error)

	Get(ctx context.Context, eventID, partnershipID string) (*Partnership, error)
	List(ctx context.Context, eventID string, status *PartnershipStatus, params PaginationParams) ([]*Partnership, int, error)
	UpdateBoothLocation(ctx context.Context, eventID, partnershipID string, boothLocation *string) error
	AssignOrganiser(ctx context.Context, eventID, partnershipID string, organiserID *string) error
}
