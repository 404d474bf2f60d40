package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sponsorhub/internal/domain"
)

type billingService struct {
	partnershipRepo domain.PartnershipRepository
	eventRepo       domain.EventRepository
	companyRepo     domain.CompanyRepository
	dispatcher      domain.SideEffectDispatcher
	contextTimeout  time.Duration
}

func NewBillingService(partnershipRepo domain.PartnershipRepository,
	eventRepo domain.EventRepository,
	companyRepo domain.CompanyRepository,
	dispatcher domain.SideEffectDispatcher,
	timeout time.Duration,
) domain.BillingService {
	return &billingService{
		partnershipRepo: partnershipRepo,
		eventRepo:       eventRepo,
		companyRepo:     companyRepo,
		dispatcher:      dispatcher,
		contextTimeout:  timeout,
	}
}

func (s *billingService) RecordInvoice(ctx context.Context, eventID, partnershipID, invoiceNumber string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if invoiceNumber == "" {
		return domain.ErrInvalidInput
	}
	return s.announce(ctx, eventID, partnershipID, func(event *domain.Event, company *domain.Company) domain.NotificationVariables {
		return domain.NewInvoiceVars{
			EventName:     event.Name,
			CompanyName:   company.Name,
			InvoiceNumber: invoiceNumber,
		}
	})
}

func (s *billingService) RecordAgreementSigned(ctx context.Context, eventID, partnershipID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.announce(ctx, eventID, partnershipID, func(event *domain.Event, company *domain.Company) domain.NotificationVariables {
		return domain.PartnershipAgreementSignedVars{
			EventName:   event.Name,
			CompanyName: company.Name,
		}
	})
}

// announce checks the partnership is validated, then dispatches the milestone
// notification. Billing milestones have no meaning on a pending or declined
// partnership.
func (s *billingService) announce(ctx context.Context, eventID, partnershipID string,
	vars func(event *domain.Event, company *domain.Company) domain.NotificationVariables,
) error {
	p, err := s.partnershipRepo.GetByEventAndID(ctx, eventID, partnershipID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get partnership: %w", err)
	}
	if p.Status != domain.PartnershipValidated {
		return domain.ErrPreconditionFailed
	}
	event, err := s.eventRepo.GetByID(ctx, p.EventID)
	if err != nil {
		event = &domain.Event{ID: p.EventID}
	}
	company, err := s.companyRepo.GetByID(ctx, p.CompanyID)
	if err != nil {
		company = &domain.Company{ID: p.CompanyID}
	}
	s.dispatcher.Dispatch(ctx, domain.TransitionFact{
		Event:       event,
		Company:     company,
		Partnership: p,
		Variables:   vars(event, company),
		WebhookType: domain.WebhookUpdated,
	})
	return nil
}
