package domain

import (
	"context"
	"time"
)

// JobOffer is a position a sponsor company wants to promote to attendees.
// swagger:model JobOffer
type JobOffer struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JobOfferRepository defines the interface for job offer storage.
type JobOfferRepository interface {
	GetByID(ctx context.Context, id string) (*JobOffer, error)
}

// PromotionStatus is the approval state of a job offer promotion.
type PromotionStatus string

const (
	PromotionPending  PromotionStatus = "PENDING"
	PromotionApproved PromotionStatus = "APPROVED"
	PromotionDeclined PromotionStatus = "DECLINED"
)

// JobOfferPromotion is a request to feature a job offer through a
// partnership, subject to organiser review. At most one promotion per
// (job offer, partnership) pair is PENDING or APPROVED at a time; a DECLINED
// promotion is re-activated in place on re-promotion, keeping its id.
// swagger:model JobOfferPromotion
type JobOfferPromotion struct {
	ID            string          `json:"id"`
	JobOfferID    string          `json:"job_offer_id"`
	PartnershipID string          `json:"partnership_id"`
	EventID       string          `json:"event_id"`
	Status        PromotionStatus `json:"status"`
	PromotedAt    time.Time       `json:"promoted_at"`
	ReviewedAt    *time.Time      `json:"reviewed_at"`
	ReviewedBy    *string         `json:"reviewed_by"`
	DeclineReason *string         `json:"decline_reason"`
}

// PromotionRepository defines storage operations for job offer promotions.
// Reactivate and Review are conditional updates keyed on the row's current
// status; they return false when the guard did not match, which callers
// treat as a lost race or a state conflict.
type PromotionRepository interface {
	Create(ctx context.Context, p *JobOfferPromotion) error
	GetByID(ctx context.Context, id string) (*JobOfferPromotion, error)
	GetByJobOfferAndPartnership(ctx context.Context, jobOfferID, partnershipID string) (*JobOfferPromotion, error)
	ListByEventID(ctx context.Context, eventID string, status *PromotionStatus, params PaginationParams) ([]*JobOfferPromotion, int, error)

	// Reactivate resets a DECLINED promotion to PENDING, clearing review
	// metadata and stamping promotedAt. False when the row is not DECLINED.
	Reactivate(ctx context.Context, id string, promotedAt time.Time) (bool, error)
	// Review moves a PENDING promotion to APPROVED or DECLINED with reviewer,
	// timestamp, and optional decline reason. False when not PENDING.
	Review(ctx context.Context, id string, status PromotionStatus, reviewedBy string, reviewedAt time.Time, declineReason *string) (bool, error)
}

// PromotionService defines the job offer promotion workflow.
type PromotionService interface {
	Promote(ctx context.Context, companyID, partnershipID, jobOfferID string) (string, error)
	Approve(ctx context.Context, promotionID, reviewerID string) (*JobOfferPromotion, error)
	Decline(ctx context.Context, promotionID, reviewerID, reason string) (*JobOfferPromotion, error)
	List(ctx context.Context, eventID string, status *PromotionStatus, params PaginationParams) ([]*JobOfferPromotion, int, error)
}
