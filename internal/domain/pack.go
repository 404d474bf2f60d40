package domain

import (
	"context"
	"time"
)

// OptionKind describes how a sponsoring option is quantified and priced.
type OptionKind string

const (
	// OptionText is a plain benefit with no quantity or choice.
	OptionText OptionKind = "TEXT"
	// OptionQuantitative lets the sponsor pick a quantity.
	OptionQuantitative OptionKind = "QUANTITATIVE"
	// OptionFixedQuantity is numeric with a quantity fixed by the organisers.
	OptionFixedQuantity OptionKind = "FIXED_QUANTITY"
	// OptionSelectable offers a list of priced choices.
	OptionSelectable OptionKind = "SELECTABLE"
)

// OptionTranslation is the localized name and description of an option.
// swagger:model OptionTranslation
type OptionTranslation struct {
	Language    string `json:"language"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SponsoringOption is an individual sponsorship benefit attachable to packs.
// swagger:model SponsoringOption
type SponsoringOption struct {
	ID           string              `json:"id"`
	EventID      string              `json:"event_id"`
	Kind         OptionKind          `json:"kind"`
	Price        *int64              `json:"price"`
	Quantity     *int                `json:"quantity"`
	Translations []OptionTranslation `json:"translations"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// Translated returns the translation for the given language, falling back to
// the first available one.
func (o *SponsoringOption) Translated(language string) OptionTranslation {
	for _, t := range o.Translations {
		if t.Language == language {
			return t
		}
	}
	if len(o.Translations) > 0 {
		return o.Translations[0]
	}
	return OptionTranslation{Language: language}
}

// SponsoringPack is a priced sponsorship tier offered by an event.
// swagger:model SponsoringPack
type SponsoringPack struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	Name        string    `json:"name"`
	BasePrice   int64     `json:"base_price"`
	MaxQuantity *int      `json:"max_quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PackOption associates an option with a pack and records whether the option
// is required for that pack.
// swagger:model PackOption
type PackOption struct {
	PackID     string    `json:"pack_id"`
	OptionID   string    `json:"option_id"`
	Required   bool      `json:"required"`
	AttachedAt time.Time `json:"attached_at"`
}

// OptionConfiguration is the target required/optional option sets for a pack,
// as submitted by the organisers.
type OptionConfiguration struct {
	Required []string
	Optional []string
}

// OptionDiff is the minimal set of changes that turns a pack's current option
// attachments into a target configuration. Attach and Update carry the
// designated requirement flag; Detach lists option ids to remove. Flag
// changes are applied in place so attachment timestamps survive.
type OptionDiff struct {
	Attach []PackOption
	Update []PackOption
	Detach []string
}

// Empty reports whether the diff changes nothing.
func (d OptionDiff) Empty() bool {
	return len(d.Attach) == 0 && len(d.Update) == 0 && len(d.Detach) == 0
}

// PackRepository defines storage operations for packs.
type PackRepository interface {
	Create(ctx context.Context, pack *SponsoringPack) error
	GetByID(ctx context.Context, id string) (*SponsoringPack, error)
	ListByEventID(ctx context.Context, eventID string) ([]*SponsoringPack, error)
	// Delete removes the pack. Returns ErrConflict while options are still
	// attached, ErrNotFound when the pack does not exist.
	Delete(ctx context.Context, id string) error
}

// OptionRepository defines storage operations for sponsoring options.
type OptionRepository interface {
	Create(ctx context.Context, option *SponsoringOption) error
	GetByID(ctx context.Context, id string) (*SponsoringOption, error)
	ListByIDs(ctx context.Context, ids []string) ([]*SponsoringOption, error)
	ListByEventID(ctx context.Context, eventID string) ([]*SponsoringOption, error)
	// Delete removes the option. Returns ErrConflict while the option is
	// attached to any pack.
	Delete(ctx context.Context, id string) error
}

// PackOptionRepository owns the pack/option junction rows. ApplyDiff is the
// only write path: it applies the whole diff inside one transaction so a
// partial failure cannot leave the pack half-reconfigured.
type PackOptionRepository interface {
	ListByPackID(ctx context.Context, packID string) ([]*PackOption, error)
	ApplyDiff(ctx context.Context, packID string, diff OptionDiff) error
}

// CreatePackInput is the caller-supplied data for a new pack.
type CreatePackInput struct {
	Name        string
	BasePrice   int64
	MaxQuantity *int
}

// CreateOptionInput is the caller-supplied data for a new option.
type CreateOptionInput struct {
	Kind         OptionKind
	Price        *int64
	Quantity     *int
	Translations []OptionTranslation
}

// PackService defines pack and option configuration operations, including
// the reconciliation of a pack's option sets.
type PackService interface {
	CreatePack(ctx context.Context, eventID string, input CreatePackInput) (*SponsoringPack, error)
	ListPacks(ctx context.Context, eventID string) ([]*SponsoringPack, error)
	DeletePack(ctx context.Context, eventID, packID string) error

	CreateOption(ctx context.Context, eventID string, input CreateOptionInput) (*SponsoringOption, error)
	ListOptions(ctx context.Context, eventID string) ([]*SponsoringOption, error)
	DeleteOption(ctx context.Context, eventID, optionID string) error

	// ReconcileOptions replaces the pack's whole option configuration with
	// the target sets, computing and applying the minimal diff atomically.
	ReconcileOptions(ctx context.Context, eventID, packID string, target OptionConfiguration) error
	ListPackOptions(ctx context.Context, eventID, packID string) ([]*PackOption, error)
}
