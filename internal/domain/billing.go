package domain

import "context"

// BillingService announces billing milestones on a validated partnership.
// Document generation and payment collection happen outside this system; the
// service only records the milestone and fires its notification and webhook.
type BillingService interface {
	// RecordInvoice announces an issued invoice by number.
	RecordInvoice(ctx context.Context, eventID, partnershipID, invoiceNumber string) error
	// RecordAgreementSigned announces a countersigned sponsorship agreement.
	RecordAgreementSigned(ctx context.Context, eventID, partnershipID string) error
}
