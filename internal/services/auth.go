package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sponsorhub/internal/domain"
)

const tokenExpiry = 24 * time.Hour

type authService struct {
	organiserRepo  domain.OrganiserRepository
	hasher         domain.PasswordHasher
	issuer         domain.TokenIssuer
	contextTimeout time.Duration
}

func NewAuthService(organiserRepo domain.OrganiserRepository,
	hasher domain.PasswordHasher,
	issuer domain.TokenIssuer,
	timeout time.Duration,
) domain.AuthService {
	return &authService{
		organiserRepo:  organiserRepo,
		hasher:         hasher,
		issuer:         issuer,
		contextTimeout: timeout,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.Organiser, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidInput
	}
	organiser, err := s.organiserRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrForbidden
		}
		return "", nil, fmt.Errorf("get organiser: %w", err)
	}
	if err := s.hasher.Compare(organiser.PasswordHash, organiser.Salt, password); err != nil {
		return "", nil, domain.ErrForbidden
	}
	token, err := s.issuer.Issue(organiser.ID, organiser.Email, tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, organiser, nil
}
