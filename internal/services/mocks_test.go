package services

import (
	"context"
	"fmt"
	"time"

	"sponsorhub/internal/domain"
)

type mockEventRepository struct {
	events map[string]*domain.Event
	err    error
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	for _, ev := range m.events {
		if ev.Slug == slug {
			return ev, nil
		}
	}
	return nil, domain.ErrNotFound
}

type mockCompanyRepository struct {
	companies map[string]*domain.Company
}

func (m *mockCompanyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	c, ok := m.companies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

type mockPartnershipRepository struct {
	partnerships map[string]*domain.Partnership
	nextID       int
	err          error
}

func (m *mockPartnershipRepository) Create(ctx context.Context, p *domain.Partnership) error {
	if m.err != nil {
		return m.err
	}
	for _, existing := range m.partnerships {
		if existing.EventID == p.EventID && existing.CompanyID == p.CompanyID {
			return domain.ErrConflict
		}
	}
	m.nextID++
	p.ID = fmt.Sprintf("pt-%d", m.nextID)
	if m.partnerships == nil {
		m.partnerships = map[string]*domain.Partnership{}
	}
	m.partnerships[p.ID] = p
	return nil
}

func (m *mockPartnershipRepository) GetByID(ctx context.Context, id string) (*domain.Partnership, error) {
	p, ok := m.partnerships[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockPartnershipRepository) GetByEventAndID(ctx context.Context, eventID, id string) (*domain.Partnership, error) {
	p, ok := m.partnerships[id]
	if !ok || p.EventID != eventID {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockPartnershipRepository) ListByEventID(ctx context.Context, eventID string, status *domain.PartnershipStatus, params domain.PaginationParams) ([]*domain.Partnership, int, error) {
	var out []*domain.Partnership
	for _, p := range m.partnerships {
		if p.EventID != eventID {
			continue
		}
		if status != nil && p.Status != *status {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

func (m *mockPartnershipRepository) UpdateStatus(ctx context.Context, id string, to domain.PartnershipStatus, allowedFrom ...domain.PartnershipStatus) (bool, error) {
	p, ok := m.partnerships[id]
	if !ok {
		return false, nil
	}
	for _, from := range allowedFrom {
		if p.Status == from {
			p.Status = to
			return true, nil
		}
	}
	return false, nil
}

func (m *mockPartnershipRepository) SetSuggestion(ctx context.Context, id, packID string, language *string) (bool, error) {
	p, ok := m.partnerships[id]
	if !ok {
		return false, nil
	}
	p.SuggestionPackID = &packID
	if language != nil {
		p.Language = *language
	}
	return true, nil
}

func (m *mockPartnershipRepository) PromoteSuggestion(ctx context.Context, id string) (bool, error) {
	p, ok := m.partnerships[id]
	if !ok || p.SuggestionPackID == nil {
		return false, nil
	}
	p.SelectedPackID = p.SuggestionPackID
	p.SuggestionPackID = nil
	return true, nil
}

func (m *mockPartnershipRepository) ClearSuggestion(ctx context.Context, id string) (bool, error) {
	p, ok := m.partnerships[id]
	if !ok || p.SuggestionPackID == nil {
		return false, nil
	}
	p.SuggestionPackID = nil
	return true, nil
}

func (m *mockPartnershipRepository) UpdateBoothLocation(ctx context.Context, id string, boothLocation *string) error {
	p, ok := m.partnerships[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.BoothLocation = boothLocation
	return nil
}

func (m *mockPartnershipRepository) AssignOrganiser(ctx context.Context, id string, organiserID *string) error {
	p, ok := m.partnerships[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.OrganiserID = organiserID
	return nil
}

type mockPackOptionRepository struct {
	attached map[string][]*domain.PackOption
	applied  []domain.OptionDiff
	applyErr error
	listErr  error
}

func (m *mockPackOptionRepository) ListByPackID(ctx context.Context, packID string) ([]*domain.PackOption, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.attached[packID], nil
}

func (m *mockPackOptionRepository) ApplyDiff(ctx context.Context, packID string, diff domain.OptionDiff) error {
	if m.applyErr != nil {
		return m.applyErr
	}
	m.applied = append(m.applied, diff)
	current := m.attached[packID]
	next := make([]*domain.PackOption, 0, len(current)+len(diff.Attach))
	detached := make(map[string]bool, len(diff.Detach))
	for _, id := range diff.Detach {
		detached[id] = true
	}
	updated := make(map[string]bool, len(diff.Update))
	for _, po := range diff.Update {
		updated[po.OptionID] = po.Required
	}
	for _, po := range current {
		if detached[po.OptionID] {
			continue
		}
		cp := *po
		if req, ok := updated[po.OptionID]; ok {
			cp.Required = req
		}
		next = append(next, &cp)
	}
	for _, po := range diff.Attach {
		cp := po
		cp.AttachedAt = time.Now()
		next = append(next, &cp)
	}
	if m.attached == nil {
		m.attached = map[string][]*domain.PackOption{}
	}
	m.attached[packID] = next
	return nil
}

type mockPackRepository struct {
	packs       map[string]*domain.SponsoringPack
	packOptions *mockPackOptionRepository
	nextID      int
}

func (m *mockPackRepository) Create(ctx context.Context, pack *domain.SponsoringPack) error {
	m.nextID++
	pack.ID = fmt.Sprintf("pk-%d", m.nextID)
	if m.packs == nil {
		m.packs = map[string]*domain.SponsoringPack{}
	}
	m.packs[pack.ID] = pack
	return nil
}

func (m *mockPackRepository) GetByID(ctx context.Context, id string) (*domain.SponsoringPack, error) {
	p, ok := m.packs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (m *mockPackRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.SponsoringPack, error) {
	var out []*domain.SponsoringPack
	for _, p := range m.packs {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPackRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.packs[id]; !ok {
		return domain.ErrNotFound
	}
	if m.packOptions != nil && len(m.packOptions.attached[id]) > 0 {
		return domain.ErrConflict
	}
	delete(m.packs, id)
	return nil
}

type mockOptionRepository struct {
	options map[string]*domain.SponsoringOption
	nextID  int
}

func (m *mockOptionRepository) Create(ctx context.Context, option *domain.SponsoringOption) error {
	m.nextID++
	option.ID = fmt.Sprintf("op-%d", m.nextID)
	if m.options == nil {
		m.options = map[string]*domain.SponsoringOption{}
	}
	m.options[option.ID] = option
	return nil
}

func (m *mockOptionRepository) GetByID(ctx context.Context, id string) (*domain.SponsoringOption, error) {
	o, ok := m.options[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func (m *mockOptionRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.SponsoringOption, error) {
	var out []*domain.SponsoringOption
	for _, id := range ids {
		if o, ok := m.options[id]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOptionRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.SponsoringOption, error) {
	var out []*domain.SponsoringOption
	for _, o := range m.options {
		if o.EventID == eventID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOptionRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.options[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.options, id)
	return nil
}

type mockJobOfferRepository struct {
	offers map[string]*domain.JobOffer
}

func (m *mockJobOfferRepository) GetByID(ctx context.Context, id string) (*domain.JobOffer, error) {
	o, ok := m.offers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

type mockPromotionRepository struct {
	promotions map[string]*domain.JobOfferPromotion
	nextID     int
}

func (m *mockPromotionRepository) Create(ctx context.Context, p *domain.JobOfferPromotion) error {
	for _, existing := range m.promotions {
		if existing.JobOfferID == p.JobOfferID && existing.PartnershipID == p.PartnershipID {
			return domain.ErrConflict
		}
	}
	m.nextID++
	p.ID = fmt.Sprintf("pr-%d", m.nextID)
	if m.promotions == nil {
		m.promotions = map[string]*domain.JobOfferPromotion{}
	}
	m.promotions[p.ID] = p
	return nil
}

func (m *mockPromotionRepository) GetByID(ctx context.Context, id string) (*domain.JobOfferPromotion, error) {
	p, ok := m.promotions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockPromotionRepository) GetByJobOfferAndPartnership(ctx context.Context, jobOfferID, partnershipID string) (*domain.JobOfferPromotion, error) {
	for _, p := range m.promotions {
		if p.JobOfferID == jobOfferID && p.PartnershipID == partnershipID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockPromotionRepository) ListByEventID(ctx context.Context, eventID string, status *domain.PromotionStatus, params domain.PaginationParams) ([]*domain.JobOfferPromotion, int, error) {
	var out []*domain.JobOfferPromotion
	for _, p := range m.promotions {
		if p.EventID != eventID {
			continue
		}
		if status != nil && p.Status != *status {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

func (m *mockPromotionRepository) Reactivate(ctx context.Context, id string, promotedAt time.Time) (bool, error) {
	p, ok := m.promotions[id]
	if !ok || p.Status != domain.PromotionDeclined {
		return false, nil
	}
	p.Status = domain.PromotionPending
	p.PromotedAt = promotedAt
	p.ReviewedAt = nil
	p.ReviewedBy = nil
	p.DeclineReason = nil
	return true, nil
}

func (m *mockPromotionRepository) Review(ctx context.Context, id string, status domain.PromotionStatus, reviewedBy string, reviewedAt time.Time, declineReason *string) (bool, error) {
	p, ok := m.promotions[id]
	if !ok || p.Status != domain.PromotionPending {
		return false, nil
	}
	p.Status = status
	p.ReviewedBy = &reviewedBy
	p.ReviewedAt = &reviewedAt
	p.DeclineReason = declineReason
	return true, nil
}

type mockDispatcher struct {
	facts []domain.TransitionFact
}

func (m *mockDispatcher) Dispatch(ctx context.Context, fact domain.TransitionFact) {
	m.facts = append(m.facts, fact)
}

type mockNotificationSender struct {
	messages []domain.Message
	fail     bool
}

func (m *mockNotificationSender) SendMessage(ctx context.Context, msg domain.Message) domain.DeliveryResult {
	m.messages = append(m.messages, msg)
	result := domain.DeliveryResult{To: msg.To, SentAt: time.Now()}
	if m.fail {
		result.Status = domain.DeliveryFailed
		result.Error = "smtp unavailable"
		return result
	}
	result.Status = domain.DeliverySent
	return result
}

type mockWebhookDispatcher struct {
	calls      int
	eventTypes []domain.WebhookEventType
	deliveries []domain.WebhookDelivery
}

func (m *mockWebhookDispatcher) SendWebhooks(ctx context.Context, eventSlug, eventID, partnershipID string, eventType domain.WebhookEventType) []domain.WebhookDelivery {
	m.calls++
	m.eventTypes = append(m.eventTypes, eventType)
	return m.deliveries
}

type mockEmailHistoryRepository struct {
	records []*domain.EmailHistory
	err     error
}

func (m *mockEmailHistoryRepository) Create(ctx context.Context, h *domain.EmailHistory) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, h)
	return nil
}

func (m *mockEmailHistoryRepository) ListByPartnershipID(ctx context.Context, partnershipID string) ([]*domain.EmailHistory, error) {
	return m.records, nil
}

type mockMailer struct {
	sent []string
	err  error
}

func (m *mockMailer) Send(to, subject, html, text string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

type mockRenderer struct {
	rendered []string
	err      error
}

func (m *mockRenderer) Render(templateName, language string, data any) (string, string, string, error) {
	if m.err != nil {
		return "", "", "", m.err
	}
	m.rendered = append(m.rendered, templateName+":"+language)
	return "subject", "<p>body</p>", "body", nil
}
