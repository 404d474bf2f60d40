package domain

import "context"

// TransitionFact is the committed result of a state transition, carrying
// enough context to address and localize its side effects. It is handed to
// the dispatcher only after the owning transaction has committed.
type TransitionFact struct {
	Event       *Event
	Company     *Company
	Partnership *Partnership
	Variables   NotificationVariables
	WebhookType WebhookEventType
}

// SideEffectDispatcher fires the notification and webhook fan-out for a
// committed transition. It never returns an error: side effects depend on
// state, never the reverse, so their failures are logged and recorded but do
// not reach the caller of the transition.
type SideEffectDispatcher interface {
	Dispatch(ctx context.Context, fact TransitionFact)
}
