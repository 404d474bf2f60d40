package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sponsorhub/internal/domain"
)

type partnershipService struct {
	partnershipRepo domain.PartnershipRepository
	eventRepo       domain.EventRepository
	companyRepo     domain.CompanyRepository
	packRepo        domain.PackRepository
	dispatcher      domain.SideEffectDispatcher
	contextTimeout  time.Duration
}

func NewPartnershipService(partnershipRepo domain.PartnershipRepository,
	eventRepo domain.EventRepository,
	companyRepo domain.CompanyRepository,
	packRepo domain.PackRepository,
	dispatcher domain.SideEffectDispatcher,
	timeout time.Duration,
) domain.PartnershipService {
	return &partnershipService{
		partnershipRepo: partnershipRepo,
		eventRepo:       eventRepo,
		companyRepo:     companyRepo,
		packRepo:        packRepo,
		dispatcher:      dispatcher,
		contextTimeout:  timeout,
	}
}

func (s *partnershipService) Register(ctx context.Context, eventID string, input domain.RegisterPartnershipInput) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get event: %w", err)
	}
	company, err := s.companyRepo.GetByID(ctx, input.CompanyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get company: %w", err)
	}
	if input.PackID != nil {
		pack, err := s.packRepo.GetByID(ctx, *input.PackID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return "", domain.ErrNotFound
			}
			return "", fmt.Errorf("get pack: %w", err)
		}
		if pack.EventID != eventID {
			return "", domain.ErrForbidden
		}
	}
	language := input.Language
	if language == "" {
		language = "en"
	}

	p := domain.NewPartnership(eventID, input.CompanyID, language, input.PackID, time.Now())
	if err := s.partnershipRepo.Create(ctx, p); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return "", domain.ErrConflict
		}
		return "", fmt.Errorf("create partnership: %w", err)
	}

	s.dispatcher.Dispatch(ctx, domain.TransitionFact{
		Event:       event,
		Company:     company,
		Partnership: p,
		Variables: domain.NewPartnershipVars{
			EventName:   event.Name,
			CompanyName: company.Name,
		},
		WebhookType: domain.WebhookCreated,
	})
	return p.ID, nil
}

// Validate commits the PENDING -> VALIDATED transition. Re-validating an
// already VALIDATED partnership is a no-op success so that at-least-once
// callers can retry safely; side effects fire once per actual transition.
func (s *partnershipService) Validate(ctx context.Context, eventID, partnershipID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.getScoped(ctx, eventID, partnershipID)
	if err != nil {
		return "", err
	}
	if p.Status == domain.PartnershipValidated {
		return p.ID, nil
	}
	if p.Status == domain.PartnershipDeclined {
		return "", domain.ErrConflict
	}
	if p.SelectedPackID == nil {
		return "", domain.ErrPreconditionFailed
	}

	updated, err := s.partnershipRepo.UpdateStatus(ctx, p.ID, domain.PartnershipValidated, domain.PartnershipPending)
	if err != nil {
		return "", fmt.Errorf("update partnership status: %w", err)
	}
	if !updated {
		// Lost a race: a concurrent transition changed the state first.
		current, err := s.partnershipRepo.GetByID(ctx, p.ID)
		if err != nil {
			return "", fmt.Errorf("reload partnership: %w", err)
		}
		if current.Status == domain.PartnershipValidated {
			return current.ID, nil
		}
		return "", domain.ErrConflict
	}
	p.Status = domain.PartnershipValidated

	s.dispatchDecision(ctx, p, func(event *domain.Event, company *domain.Company, packName string) domain.NotificationVariables {
		return domain.PartnershipValidatedVars{
			EventName:   event.Name,
			CompanyName: company.Name,
			PackName:    packName,
		}
	})
	return p.ID, nil
}

// Decline commits the transition to DECLINED from any other state.
// Re-declining is a no-op success.
func (s *partnershipService) Decline(ctx context.Context, eventID, partnershipID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.getScoped(ctx, eventID, partnershipID)
	if err != nil {
		return "", err
	}
	if p.Status == domain.PartnershipDeclined {
		return p.ID, nil
	}

	updated, err := s.partnershipRepo.UpdateStatus(ctx, p.ID, domain.PartnershipDeclined,
		domain.PartnershipPending, domain.PartnershipValidated)
	if err != nil {
		return "", fmt.Errorf("update partnership status: %w", err)
	}
	if !updated {
		// Someone else declined first; the end state is what we wanted.
		return p.ID, nil
	}
	p.Status = domain.PartnershipDeclined

	s.dispatchDecision(ctx, p, func(event *domain.Event, company *domain.Company, _ string) domain.NotificationVariables {
		return domain.PartnershipDeclinedVars{
			EventName:   event.Name,
			CompanyName: company.Name,
		}
	})
	return p.ID, nil
}

func (s *partnershipService) Suggest(ctx context.Context, eventID, partnershipID, packID, language string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.getScoped(ctx, eventID, partnershipID)
	if err != nil {
		return "", err
	}
	pack, err := s.packRepo.GetByID(ctx, packID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get pack: %w", err)
	}
	if pack.EventID != eventID {
		return "", domain.ErrNotFound
	}

	var lang *string
	if language != "" {
		lang = &language
		p.Language = language
	}
	if _, err := s.partnershipRepo.SetSuggestion(ctx, p.ID, packID, lang); err != nil {
		return "", fmt.Errorf("set suggestion: %w", err)
	}

	s.dispatchDecision(ctx, p, func(event *domain.Event, company *domain.Company, _ string) domain.NotificationVariables {
		return domain.NewSuggestionVars{
			EventName:   event.Name,
			CompanyName: company.Name,
			PackName:    pack.Name,
		}
	})
	return p.ID, nil
}

func (s *partnershipService) ApproveSuggestion(ctx context.Context, eventID, partnershipID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.getScoped(ctx, eventID, partnershipID)
	if err != nil {
		return "", err
	}
	if p.SuggestionPackID == nil {
		return "", domain.ErrNotFound
	}
	pack, err := s.packRepo.GetByID(ctx, *p.SuggestionPackID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("get suggested pack: %w", err)
	}

	promoted, err := s.partnershipRepo.PromoteSuggestion(ctx, p.ID)
	if err != nil {
		return "", fmt.Errorf("promote suggestion: %w", err)
	}
	if !promoted {
		return "", domain.ErrNotFound
	}

	packName := ""
	if pack != nil {
		packName = pack.Name
	}
	s.dispatchDecision(ctx, p, func(event *domain.Event, company *domain.Company, _ string) domain.NotificationVariables {
		return domain.SuggestionApprovedVars{
			EventName:   event.Name,
			CompanyName: company.Name,
			PackName:    packName,
		}
	})
	return p.ID, nil
}

func (s *partnershipService) DeclineSuggestion(ctx context.Context, eventID, partnershipID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.getScoped(ctx, eventID, partnershipID)
	if err != nil {
		return "", err
	}
	if p.SuggestionPackID == nil {
		return "", domain.ErrNotFound
	}

	cleared, err := s.partnershipRepo.ClearSuggestion(ctx, p.ID)
	if err != nil {
		return "", fmt.Errorf("clear suggestion: %w", err)
	}
	if !cleared {
		return "", domain.ErrNotFound
	}

	s.dispatchDecision(ctx, p, func(event *domain.Event, company *domain.Company, _ string) domain.NotificationVariables {
		return domain.SuggestionDeclinedVars{
			EventName:   event.Name,
			CompanyName: company.Name,
		}
	})
	return p.ID, nil
}

func (s *partnershipService) Get(ctx context.Context, eventID, partnershipID string) (*domain.Partnership, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.getScoped(ctx, eventID, partnershipID)
}

func (s *partnershipService) List(ctx context.Context, eventID string, status *domain.PartnershipStatus, params domain.PaginationParams) ([]*domain.Partnership, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, fmt.Errorf("get event: %w", err)
	}
	partnerships, total, err := s.partnershipRepo.ListByEventID(ctx, eventID, status, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list partnerships: %w", err)
	}
	if partnerships == nil {
		partnerships = []*domain.Partnership{}
	}
	return partnerships, total, nil
}

func (s *partnershipService) UpdateBoothLocation(ctx context.Context, eventID, partnershipID string, boothLocation *string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.getScoped(ctx, eventID, partnershipID)
	if err != nil {
		return err
	}
	if err := s.partnershipRepo.UpdateBoothLocation(ctx, p.ID, boothLocation); err != nil {
		return fmt.Errorf("update booth location: %w", err)
	}
	return nil
}

func (s *partnershipService) AssignOrganiser(ctx context.Context, eventID, partnershipID string, organiserID *string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.getScoped(ctx, eventID, partnershipID)
	if err != nil {
		return err
	}
	if err := s.partnershipRepo.AssignOrganiser(ctx, p.ID, organiserID); err != nil {
		return fmt.Errorf("assign organiser: %w", err)
	}
	return nil
}

// getScoped loads the partnership and verifies it belongs to the event.
func (s *partnershipService) getScoped(ctx context.Context, eventID, partnershipID string) (*domain.Partnership, error) {
	p, err := s.partnershipRepo.GetByEventAndID(ctx, eventID, partnershipID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get partnership: %w", err)
	}
	return p, nil
}

// dispatchDecision resolves the event, company, and selected pack name for
// the partnership and hands the transition to the dispatcher. Lookup
// failures here only degrade the notification payload; the transition has
// already committed.
func (s *partnershipService) dispatchDecision(ctx context.Context, p *domain.Partnership,
	vars func(event *domain.Event, company *domain.Company, packName string) domain.NotificationVariables,
) {
	event, err := s.eventRepo.GetByID(ctx, p.EventID)
	if err != nil {
		event = &domain.Event{ID: p.EventID}
	}
	company, err := s.companyRepo.GetByID(ctx, p.CompanyID)
	if err != nil {
		company = &domain.Company{ID: p.CompanyID}
	}
	packName := ""
	if p.SelectedPackID != nil {
		if pack, err := s.packRepo.GetByID(ctx, *p.SelectedPackID); err == nil {
			packName = pack.Name
		}
	}
	s.dispatcher.Dispatch(ctx, domain.TransitionFact{
		Event:       event,
		Company:     company,
		Partnership: p,
		Variables:   vars(event, company, packName),
		WebhookType: domain.WebhookUpdated,
	})
}
