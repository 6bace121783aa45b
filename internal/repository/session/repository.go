package session

import (
	"context"
	"time"
)

// Token binds an opaque bearer token to an anonymous shopper.
type Token struct {
	Token     string
	ShopperID string
	ExpiresAt time.Time
	CreatedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, token Token) error
	Get(ctx context.Context, token string) (*Token, error)
	Delete(ctx context.Context, token string) error
}
