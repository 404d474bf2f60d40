package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sponsorhub/internal/domain"
)

type promotionService struct {
	promotionRepo   domain.PromotionRepository
	jobOfferRepo    domain.JobOfferRepository
	partnershipRepo domain.PartnershipRepository
	eventRepo       domain.EventRepository
	companyRepo     domain.CompanyRepository
	dispatcher      domain.SideEffectDispatcher
	contextTimeout  time.Duration
}

func NewPromotionService(promotionRepo domain.PromotionRepository,
	jobOfferRepo domain.JobOfferRepository,
	partnershipRepo domain.PartnershipRepository,
	eventRepo domain.EventRepository,
	companyRepo domain.CompanyRepository,
	dispatcher domain.SideEffectDispatcher,
	timeout time.Duration,
) domain.PromotionService {
	return &promotionService{
		promotionRepo:   promotionRepo,
		jobOfferRepo:    jobOfferRepo,
		partnershipRepo: partnershipRepo,
		eventRepo:       eventRepo,
		companyRepo:     companyRepo,
		dispatcher:      dispatcher,
		contextTimeout:  timeout,
	}
}

// Promote requests promotion of a job offer through a partnership. A
// DECLINED promotion for the same (job offer, partnership) pair is
// re-activated in place, keeping its id; a PENDING or APPROVED one is a
// conflict.
func (s *promotionService) Promote(ctx context.Context, companyID, partnershipID, jobOfferID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	offer, err := s.jobOfferRepo.GetByID(ctx, jobOfferID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get job offer: %w", err)
	}
	if offer.CompanyID != companyID {
		return "", domain.ErrForbidden
	}
	partnership, err := s.partnershipRepo.GetByID(ctx, partnershipID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get partnership: %w", err)
	}
	if partnership.CompanyID != companyID {
		return "", domain.ErrForbidden
	}
	event, err := s.eventRepo.GetByID(ctx, partnership.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get event: %w", err)
	}
	if event.Ended(time.Now()) {
		return "", domain.ErrForbidden
	}

	existing, err := s.promotionRepo.GetByJobOfferAndPartnership(ctx, jobOfferID, partnershipID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("get promotion: %w", err)
	}
	if existing != nil {
		if existing.Status != domain.PromotionDeclined {
			return "", domain.ErrConflict
		}
		// Re-promotion reuses the declined row. The status guard in the
		// UPDATE keeps two concurrent re-promotions from both succeeding.
		reactivated, err := s.promotionRepo.Reactivate(ctx, existing.ID, time.Now())
		if err != nil {
			return "", fmt.Errorf("reactivate promotion: %w", err)
		}
		if !reactivated {
			return "", domain.ErrConflict
		}
		return existing.ID, nil
	}

	p := &domain.JobOfferPromotion{
		JobOfferID:    jobOfferID,
		PartnershipID: partnershipID,
		EventID:       partnership.EventID,
		Status:        domain.PromotionPending,
		PromotedAt:    time.Now(),
	}
	if err := s.promotionRepo.Create(ctx, p); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return "", domain.ErrConflict
		}
		return "", fmt.Errorf("create promotion: %w", err)
	}
	return p.ID, nil
}

func (s *promotionService) Approve(ctx context.Context, promotionID, reviewerID string) (*domain.JobOfferPromotion, error) {
	return s.review(ctx, promotionID, reviewerID, domain.PromotionApproved, nil)
}

func (s *promotionService) Decline(ctx context.Context, promotionID, reviewerID, reason string) (*domain.JobOfferPromotion, error) {
	return s.review(ctx, promotionID, reviewerID, domain.PromotionDeclined, &reason)
}

func (s *promotionService) review(ctx context.Context, promotionID, reviewerID string, status domain.PromotionStatus, reason *string) (*domain.JobOfferPromotion, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	promo, err := s.promotionRepo.GetByID(ctx, promotionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get promotion: %w", err)
	}
	if promo.Status != domain.PromotionPending {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	reviewed, err := s.promotionRepo.Review(ctx, promo.ID, status, reviewerID, now, reason)
	if err != nil {
		return nil, fmt.Errorf("review promotion: %w", err)
	}
	if !reviewed {
		return nil, domain.ErrConflict
	}
	promo.Status = status
	promo.ReviewedAt = &now
	promo.ReviewedBy = &reviewerID
	promo.DeclineReason = reason

	s.dispatchReview(ctx, promo, reason)
	return promo, nil
}

func (s *promotionService) List(ctx context.Context, eventID string, status *domain.PromotionStatus, params domain.PaginationParams) ([]*domain.JobOfferPromotion, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, fmt.Errorf("get event: %w", err)
	}
	promos, total, err := s.promotionRepo.ListByEventID(ctx, eventID, status, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list promotions: %w", err)
	}
	if promos == nil {
		promos = []*domain.JobOfferPromotion{}
	}
	return promos, total, nil
}

// dispatchReview fires the notification and webhook for a reviewed
// promotion, keyed by the promotion's partnership.
func (s *promotionService) dispatchReview(ctx context.Context, promo *domain.JobOfferPromotion, reason *string) {
	partnership, err := s.partnershipRepo.GetByID(ctx, promo.PartnershipID)
	if err != nil {
		partnership = &domain.Partnership{ID: promo.PartnershipID, EventID: promo.EventID, Language: "en"}
	}
	event, err := s.eventRepo.GetByID(ctx, promo.EventID)
	if err != nil {
		event = &domain.Event{ID: promo.EventID}
	}
	company, err := s.companyRepo.GetByID(ctx, partnership.CompanyID)
	if err != nil {
		company = &domain.Company{ID: partnership.CompanyID}
	}
	title := ""
	if offer, err := s.jobOfferRepo.GetByID(ctx, promo.JobOfferID); err == nil {
		title = offer.Title
	}

	var vars domain.NotificationVariables
	if promo.Status == domain.PromotionApproved {
		vars = domain.JobOfferApprovedVars{
			EventName:     event.Name,
			CompanyName:   company.Name,
			JobOfferTitle: title,
		}
	} else {
		declineReason := ""
		if reason != nil {
			declineReason = *reason
		}
		vars = domain.JobOfferDeclinedVars{
			EventName:     event.Name,
			CompanyName:   company.Name,
			JobOfferTitle: title,
			Reason:        declineReason,
		}
	}
	s.dispatcher.Dispatch(ctx, domain.TransitionFact{
		Event:       event,
		Company:     company,
		Partnership: partnership,
		Variables:   vars,
		WebhookType: domain.WebhookUpdated,
	})
}
