package customer

import (
	"context"
	"errors"
	"time"

	"bookhaven/internal/domain"
	tokenrepo "bookhaven/internal/repository/token"
	"github.com/google/uuid"
)

// tokenManager issues and validates opaque tokens persisted in the tokens
// table.
type tokenManager struct {
	repo tokenrepo.Repository
}

type tokenMeta struct {
	CustomerID string
	Kind       string
}

func newTokenManager(repo tokenrepo.Repository) *tokenManager {
	return &tokenManager{repo: repo}
}

func (m *tokenManager) Issue(ctx context.Context, customerID, kind string, ttl time.Duration) (string, error) {
	// Retry on the vanishingly unlikely uuid collision.
	for attempt := 0; attempt < 3; attempt++ {
		value := uuid.NewString()
		err := m.repo.Create(ctx, tokenrepo.Token{
			Token:      value,
			CustomerID: customerID,
			Kind:       kind,
			ExpiresAt:  time.Now().UTC().Add(ttl),
		})
		if err == nil {
			return value, nil
		}
		if !errors.Is(err, domain.ErrAlreadyExists) {
			return "", err
		}
	}
	return "", errors.New("could not issue token")
}

func (m *tokenManager) Validate(ctx context.Context, value string) (tokenMeta, bool) {
	t, err := m.repo.Get(ctx, value)
	if err != nil {
		return tokenMeta{}, false
	}
	if time.Now().UTC().After(t.ExpiresAt) {
		// Expired tokens are deleted lazily on first use after expiry.
		_ = m.repo.Delete(ctx, value)
		return tokenMeta{}, false
	}
	return tokenMeta{CustomerID: t.CustomerID, Kind: t.Kind}, true
}

func (m *tokenManager) Revoke(ctx context.Context, value string) error {
	err := m.repo.Delete(ctx, value)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}
