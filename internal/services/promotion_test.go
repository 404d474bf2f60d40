package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"sponsorhub/internal/domain"
)

func newPromotionFixture() (*mockPromotionRepository, *mockPartnershipRepository, *mockEventRepository, *mockDispatcher, domain.PromotionService) {
	promotionRepo := &mockPromotionRepository{promotions: map[string]*domain.JobOfferPromotion{}}
	jobOfferRepo := &mockJobOfferRepository{offers: map[string]*domain.JobOffer{
		"jo-1": {ID: "jo-1", CompanyID: "co-1", Title: "Backend Engineer"},
		"jo-2": {ID: "jo-2", CompanyID: "co-2", Title: "Designer"},
	}}
	partnershipRepo := &mockPartnershipRepository{partnerships: map[string]*domain.Partnership{
		"pt-1": {ID: "pt-1", EventID: "ev-1", CompanyID: "co-1", Status: domain.PartnershipValidated, Language: "en"},
		"pt-2": {ID: "pt-2", EventID: "ev-ended", CompanyID: "co-1", Status: domain.PartnershipValidated},
	}}
	eventRepo := &mockEventRepository{events: map[string]*domain.Event{
		"ev-1":     {ID: "ev-1", Name: "GopherConf", Slug: "gopherconf", EndDate: time.Now().Add(30 * 24 * time.Hour)},
		"ev-ended": {ID: "ev-ended", Name: "PastConf", Slug: "pastconf", EndDate: time.Now().Add(-24 * time.Hour)},
	}}
	companyRepo := &mockCompanyRepository{companies: map[string]*domain.Company{
		"co-1": {ID: "co-1", Name: "Acme", ContactEmail: "sponsor@acme.test"},
	}}
	dispatcher := &mockDispatcher{}
	svc := NewPromotionService(promotionRepo, jobOfferRepo, partnershipRepo, eventRepo, companyRepo, dispatcher, 2*time.Second)
	return promotionRepo, partnershipRepo, eventRepo, dispatcher, svc
}

func TestPromotionService_Promote(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending promotion", func(t *testing.T) {
		repo, _, _, _, svc := newPromotionFixture()
		id, err := svc.Promote(ctx, "co-1", "pt-1", "jo-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		p := repo.promotions[id]
		if p == nil || p.Status != domain.PromotionPending {
			t.Fatalf("promotion = %+v, want PENDING", p)
		}
		if p.EventID != "ev-1" {
			t.Errorf("event id = %q, want ev-1", p.EventID)
		}
	})

	t.Run("job offer owned by another company", func(t *testing.T) {
		_, _, _, _, svc := newPromotionFixture()
		_, err := svc.Promote(ctx, "co-1", "pt-1", "jo-2")
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("partnership owned by another company", func(t *testing.T) {
		_, partnershipRepo, _, _, svc := newPromotionFixture()
		partnershipRepo.partnerships["pt-other"] = &domain.Partnership{
			ID: "pt-other", EventID: "ev-1", CompanyID: "co-2",
		}
		_, err := svc.Promote(ctx, "co-1", "pt-other", "jo-1")
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("event already ended", func(t *testing.T) {
		_, _, _, _, svc := newPromotionFixture()
		_, err := svc.Promote(ctx, "co-1", "pt-2", "jo-1")
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("pending pair conflicts", func(t *testing.T) {
		repo, _, _, _, svc := newPromotionFixture()
		repo.promotions["pr-1"] = &domain.JobOfferPromotion{
			ID: "pr-1", JobOfferID: "jo-1", PartnershipID: "pt-1", EventID: "ev-1",
			Status: domain.PromotionPending,
		}
		_, err := svc.Promote(ctx, "co-1", "pt-1", "jo-1")
		if !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("approved pair conflicts", func(t *testing.T) {
		repo, _, _, _, svc := newPromotionFixture()
		repo.promotions["pr-1"] = &domain.JobOfferPromotion{
			ID: "pr-1", JobOfferID: "jo-1", PartnershipID: "pt-1", EventID: "ev-1",
			Status: domain.PromotionApproved,
		}
		_, err := svc.Promote(ctx, "co-1", "pt-1", "jo-1")
		if !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("declined pair is re-activated in place", func(t *testing.T) {
		repo, _, _, _, svc := newPromotionFixture()
		reviewedAt := time.Now().Add(-time.Hour)
		reviewer := "org-1"
		reason := "budget"
		repo.promotions["pr-1"] = &domain.JobOfferPromotion{
			ID: "pr-1", JobOfferID: "jo-1", PartnershipID: "pt-1", EventID: "ev-1",
			Status:        domain.PromotionDeclined,
			PromotedAt:    time.Now().Add(-2 * time.Hour),
			ReviewedAt:    &reviewedAt,
			ReviewedBy:    &reviewer,
			DeclineReason: &reason,
		}
		id, err := svc.Promote(ctx, "co-1", "pt-1", "jo-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != "pr-1" {
			t.Fatalf("id = %q, want the reused pr-1", id)
		}
		p := repo.promotions["pr-1"]
		if p.Status != domain.PromotionPending {
			t.Errorf("status = %s, want PENDING", p.Status)
		}
		if p.ReviewedAt != nil || p.ReviewedBy != nil || p.DeclineReason != nil {
			t.Errorf("review metadata not cleared: %+v", p)
		}
		if len(repo.promotions) != 1 {
			t.Errorf("re-promotion must not create a second row")
		}
	})
}

func TestPromotionService_Review(t *testing.T) {
	ctx := context.Background()

	t.Run("approve records reviewer and notifies", func(t *testing.T) {
		repo, _, _, dispatcher, svc := newPromotionFixture()
		repo.promotions["pr-1"] = &domain.JobOfferPromotion{
			ID: "pr-1", JobOfferID: "jo-1", PartnershipID: "pt-1", EventID: "ev-1",
			Status: domain.PromotionPending, PromotedAt: time.Now(),
		}
		promo, err := svc.Approve(ctx, "pr-1", "org-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if promo.Status != domain.PromotionApproved {
			t.Errorf("status = %s, want APPROVED", promo.Status)
		}
		if promo.ReviewedBy == nil || *promo.ReviewedBy != "org-1" || promo.ReviewedAt == nil {
			t.Errorf("review metadata missing: %+v", promo)
		}
		if len(dispatcher.facts) != 1 {
			t.Fatalf("dispatched facts = %d, want 1", len(dispatcher.facts))
		}
		vars, ok := dispatcher.facts[0].Variables.(domain.JobOfferApprovedVars)
		if !ok {
			t.Fatalf("variables = %T, want JobOfferApprovedVars", dispatcher.facts[0].Variables)
		}
		if vars.JobOfferTitle != "Backend Engineer" {
			t.Errorf("title = %q", vars.JobOfferTitle)
		}
		if dispatcher.facts[0].WebhookType != domain.WebhookUpdated {
			t.Errorf("webhook type = %s, want UPDATED", dispatcher.facts[0].WebhookType)
		}
	})

	t.Run("decline stores the reason", func(t *testing.T) {
		repo, _, _, dispatcher, svc := newPromotionFixture()
		repo.promotions["pr-1"] = &domain.JobOfferPromotion{
			ID: "pr-1", JobOfferID: "jo-1", PartnershipID: "pt-1", EventID: "ev-1",
			Status: domain.PromotionPending, PromotedAt: time.Now(),
		}
		promo, err := svc.Decline(ctx, "pr-1", "org-1", "budget")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if promo.Status != domain.PromotionDeclined {
			t.Errorf("status = %s, want DECLINED", promo.Status)
		}
		if promo.DeclineReason == nil || *promo.DeclineReason != "budget" {
			t.Errorf("reason = %v, want budget", promo.DeclineReason)
		}
		vars, ok := dispatcher.facts[0].Variables.(domain.JobOfferDeclinedVars)
		if !ok {
			t.Fatalf("variables = %T, want JobOfferDeclinedVars", dispatcher.facts[0].Variables)
		}
		if vars.Reason != "budget" {
			t.Errorf("reason in vars = %q", vars.Reason)
		}
	})

	t.Run("reviewing a non-pending promotion conflicts", func(t *testing.T) {
		repo, _, _, _, svc := newPromotionFixture()
		repo.promotions["pr-1"] = &domain.JobOfferPromotion{
			ID: "pr-1", JobOfferID: "jo-1", PartnershipID: "pt-1", EventID: "ev-1",
			Status: domain.PromotionApproved,
		}
		if _, err := svc.Approve(ctx, "pr-1", "org-1"); !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("unknown promotion", func(t *testing.T) {
		_, _, _, _, svc := newPromotionFixture()
		if _, err := svc.Approve(ctx, "pr-missing", "org-1"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

// Full lifecycle: promote, decline with reason, re-promote (same id, reason
// cleared), approve, then a further promote conflicts.
func TestPromotionService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo, _, _, _, svc := newPromotionFixture()

	id, err := svc.Promote(ctx, "co-1", "pt-1", "jo-1")
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if repo.promotions[id].Status != domain.PromotionPending {
		t.Fatalf("status = %s, want PENDING", repo.promotions[id].Status)
	}

	if _, err := svc.Decline(ctx, id, "org-1", "budget"); err != nil {
		t.Fatalf("decline: %v", err)
	}
	if got := repo.promotions[id]; got.Status != domain.PromotionDeclined || got.DeclineReason == nil || *got.DeclineReason != "budget" {
		t.Fatalf("after decline: %+v", got)
	}

	again, err := svc.Promote(ctx, "co-1", "pt-1", "jo-1")
	if err != nil {
		t.Fatalf("re-promote: %v", err)
	}
	if again != id {
		t.Fatalf("re-promotion id = %q, want %q", again, id)
	}
	if got := repo.promotions[id]; got.Status != domain.PromotionPending || got.DeclineReason != nil {
		t.Fatalf("after re-promote: %+v", got)
	}

	if _, err := svc.Approve(ctx, id, "org-1"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := svc.Promote(ctx, "co-1", "pt-1", "jo-1"); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("promote after approve: expected ErrConflict, got %v", err)
	}
}
