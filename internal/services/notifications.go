package services

import (
	"context"
	"fmt"
	"time"

	"sponsorhub/internal/domain"
)

type notificationSender struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewNotificationSender returns a NotificationSender that renders the
// localized template for the message's variable and delivers it through the
// Mailer. It reports the outcome instead of returning an error.
func NewNotificationSender(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.NotificationSender {
	return &notificationSender{mailer: mailer, renderer: renderer}
}

func (s *notificationSender) SendMessage(ctx context.Context, msg domain.Message) domain.DeliveryResult {
	result := domain.DeliveryResult{To: msg.To, SentAt: time.Now()}
	if msg.To == "" {
		result.Status = domain.DeliveryFailed
		result.Error = "no recipient address"
		return result
	}

	// Exhaustive over the closed variable set; a variant added to the domain
	// without a template mapping here fails loudly at send time.
	switch msg.Variables.(type) {
	case domain.NewPartnershipVars,
		domain.PartnershipValidatedVars,
		domain.PartnershipDeclinedVars,
		domain.NewSuggestionVars,
		domain.SuggestionApprovedVars,
		domain.SuggestionDeclinedVars,
		domain.JobOfferApprovedVars,
		domain.JobOfferDeclinedVars,
		domain.NewInvoiceVars,
		domain.PartnershipAgreementSignedVars:
	default:
		result.Status = domain.DeliveryFailed
		result.Error = fmt.Sprintf("unknown notification variable %T", msg.Variables)
		return result
	}

	subject, htmlBody, textBody, err := s.renderer.Render(msg.Variables.Tag(), msg.Language, msg.Variables)
	if err != nil {
		result.Status = domain.DeliveryFailed
		result.Error = fmt.Sprintf("render %s: %v", msg.Variables.Tag(), err)
		return result
	}
	if err := s.mailer.Send(msg.To, subject, htmlBody, textBody); err != nil {
		result.Status = domain.DeliveryFailed
		result.Error = err.Error()
		return result
	}
	result.Status = domain.DeliverySent
	return result
}
