package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sponsorhub/internal/domain"
)

type packService struct {
	packRepo       domain.PackRepository
	optionRepo     domain.OptionRepository
	packOptionRepo domain.PackOptionRepository
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

func NewPackService(packRepo domain.PackRepository,
	optionRepo domain.OptionRepository,
	packOptionRepo domain.PackOptionRepository,
	eventRepo domain.EventRepository,
	timeout time.Duration,
) domain.PackService {
	return &packService{
		packRepo:       packRepo,
		optionRepo:     optionRepo,
		packOptionRepo: packOptionRepo,
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *packService) CreatePack(ctx context.Context, eventID string, input domain.CreatePackInput) (*domain.SponsoringPack, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if input.Name == "" || input.BasePrice < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	pack := &domain.SponsoringPack{
		EventID:     eventID,
		Name:        input.Name,
		BasePrice:   input.BasePrice,
		MaxQuantity: input.MaxQuantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.packRepo.Create(ctx, pack); err != nil {
		return nil, fmt.Errorf("create pack: %w", err)
	}
	return pack, nil
}

func (s *packService) ListPacks(ctx context.Context, eventID string) ([]*domain.SponsoringPack, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	packs, err := s.packRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list packs: %w", err)
	}
	if packs == nil {
		packs = []*domain.SponsoringPack{}
	}
	return packs, nil
}

// DeletePack removes a pack. A pack with attached options cannot be deleted
// until all of them are detached.
func (s *packService) DeletePack(ctx context.Context, eventID, packID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	pack, err := s.getScopedPack(ctx, eventID, packID)
	if err != nil {
		return err
	}
	if err := s.packRepo.Delete(ctx, pack.ID); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.ErrConflict
		}
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete pack: %w", err)
	}
	return nil
}

func (s *packService) CreateOption(ctx context.Context, eventID string, input domain.CreateOptionInput) (*domain.SponsoringOption, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	switch input.Kind {
	case domain.OptionText, domain.OptionQuantitative, domain.OptionFixedQuantity, domain.OptionSelectable:
	default:
		return nil, domain.ErrInvalidInput
	}
	if len(input.Translations) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	option := &domain.SponsoringOption{
		EventID:      eventID,
		Kind:         input.Kind,
		Price:        input.Price,
		Quantity:     input.Quantity,
		Translations: input.Translations,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.optionRepo.Create(ctx, option); err != nil {
		return nil, fmt.Errorf("create option: %w", err)
	}
	return option, nil
}

func (s *packService) ListOptions(ctx context.Context, eventID string) ([]*domain.SponsoringOption, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	options, err := s.optionRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list options: %w", err)
	}
	if options == nil {
		options = []*domain.SponsoringOption{}
	}
	return options, nil
}

func (s *packService) DeleteOption(ctx context.Context, eventID, optionID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	option, err := s.optionRepo.GetByID(ctx, optionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get option: %w", err)
	}
	if option.EventID != eventID {
		return domain.ErrNotFound
	}
	if err := s.optionRepo.Delete(ctx, optionID); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete option: %w", err)
	}
	return nil
}

// ReconcileOptions replaces the pack's option configuration with the target
// sets. The full diff against the current attachments is computed before any
// mutation and applied in one transaction, so a partial failure cannot leave
// the pack half-reconfigured.
func (s *packService) ReconcileOptions(ctx context.Context, eventID, packID string, target domain.OptionConfiguration) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	pack, err := s.getScopedPack(ctx, eventID, packID)
	if err != nil {
		return err
	}

	required := dedupe(target.Required)
	optional := dedupe(target.Optional)
	for _, id := range required {
		if contains(optional, id) {
			return domain.ErrConflict
		}
	}

	all := append(append([]string{}, required...), optional...)
	if len(all) > 0 {
		options, err := s.optionRepo.ListByIDs(ctx, all)
		if err != nil {
			return fmt.Errorf("list options: %w", err)
		}
		byID := make(map[string]*domain.SponsoringOption, len(options))
		for _, o := range options {
			byID[o.ID] = o
		}
		for _, id := range all {
			option, ok := byID[id]
			if !ok {
				return domain.ErrNotFound
			}
			if option.EventID != pack.EventID {
				return domain.ErrForbidden
			}
		}
	}

	current, err := s.packOptionRepo.ListByPackID(ctx, pack.ID)
	if err != nil {
		return fmt.Errorf("list pack options: %w", err)
	}

	diff := computeOptionDiff(pack.ID, current, required, optional)
	if diff.Empty() {
		return nil
	}
	now := time.Now().UTC()
	for i := range diff.Attach {
		diff.Attach[i].AttachedAt = now
	}
	if err := s.packOptionRepo.ApplyDiff(ctx, pack.ID, diff); err != nil {
		return fmt.Errorf("apply option diff: %w", err)
	}
	return nil
}

func (s *packService) ListPackOptions(ctx context.Context, eventID, packID string) ([]*domain.PackOption, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	pack, err := s.getScopedPack(ctx, eventID, packID)
	if err != nil {
		return nil, err
	}
	attached, err := s.packOptionRepo.ListByPackID(ctx, pack.ID)
	if err != nil {
		return nil, fmt.Errorf("list pack options: %w", err)
	}
	if attached == nil {
		attached = []*domain.PackOption{}
	}
	return attached, nil
}

func (s *packService) getScopedPack(ctx context.Context, eventID, packID string) (*domain.SponsoringPack, error) {
	pack, err := s.packRepo.GetByID(ctx, packID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get pack: %w", err)
	}
	if pack.EventID != eventID {
		return nil, domain.ErrNotFound
	}
	return pack, nil
}

// computeOptionDiff returns the minimal change set that turns the current
// attachments into the target required/optional sets. Options present on
// both sides with a changed requirement flag are updated in place rather
// than detached and re-attached.
func computeOptionDiff(packID string, current []*domain.PackOption, required, optional []string) domain.OptionDiff {
	currentByID := make(map[string]*domain.PackOption, len(current))
	for _, po := range current {
		currentByID[po.OptionID] = po
	}

	var diff domain.OptionDiff
	wanted := make(map[string]bool, len(required)+len(optional))
	addTarget := func(optionID string, requiredFlag bool) {
		wanted[optionID] = true
		existing, ok := currentByID[optionID]
		if !ok {
			diff.Attach = append(diff.Attach, domain.PackOption{
				PackID:   packID,
				OptionID: optionID,
				Required: requiredFlag,
			})
			return
		}
		if existing.Required != requiredFlag {
			diff.Update = append(diff.Update, domain.PackOption{
				PackID:   packID,
				OptionID: optionID,
				Required: requiredFlag,
			})
		}
	}
	for _, id := range required {
		addTarget(id, true)
	}
	for _, id := range optional {
		addTarget(id, false)
	}
	for _, po := range current {
		if !wanted[po.OptionID] {
			diff.Detach = append(diff.Detach, po.OptionID)
		}
	}
	return diff
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
