// Package session issues anonymous shopper identities and the bearer tokens
// that carry them.
package session

import (
	"context"
	"errors"
	"strings"
	"time"

	sessionrepo "bookstore-storefront/internal/repository/session"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// Session is what a client receives when it starts shopping.
type Session struct {
	Token     string `json:"token"`
	ShopperID string `json:"shopperId"`
	ExpiresIn int    `json:"expiresIn"`
}

type Service struct {
	tokens *tokenManager
	ttl    time.Duration
}

func New(repo sessionrepo.Repository, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Service{tokens: newTokenManager(repo), ttl: ttl}
}

// Issue creates a fresh shopper. Each shopper owns its own cart and wishlist.
func (s *Service) Issue(ctx context.Context) (Session, error) {
	shopperID := uuid.NewString()
	token, err := s.tokens.Issue(ctx, shopperID, s.ttl)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ShopperID: shopperID, ExpiresIn: s.TTLSeconds()}, nil
}

func (s *Service) LookupByToken(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidToken
	}
	return s.tokens.Validate(ctx, token)
}

func (s *Service) TTLSeconds() int {
	return int(s.ttl.Seconds())
}
