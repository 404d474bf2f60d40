package domain

import (
	"context"
	"time"
)

// Company represents a sponsor company.
// swagger:model Company
type Company struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contact_email"`
	ContactName  string    `json:"contact_name"`
	SiteURL      string    `json:"site_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CompanyRepository defines the interface for company storage.
type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (*Company, error)
}
