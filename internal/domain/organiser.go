package domain

import (
	"context"
	"time"
)

// Organiser is a member of an event team who reviews partnerships and
// promotions.
// swagger:model Organiser
type Organiser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated organiser.
type TokenIssuer interface {
	Issue(organiserID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated organiser ID.
type TokenVerifier interface {
	Verify(token string) (organiserID string, err error)
}

// OrganiserRepository defines the interface for organiser storage.
type OrganiserRepository interface {
	GetByID(ctx context.Context, id string) (*Organiser, error)
	GetByEmail(ctx context.Context, email string) (*Organiser, error)
}

// AuthService authenticates organisers.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, organiser *Organiser, err error)
}
