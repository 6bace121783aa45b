package settings

import (
	"context"

	"bookstore-storefront/internal/domain"
)

type Repository interface {
	GetSiteSettings(ctx context.Context) (*domain.SiteSettings, error)
	SaveSiteSettings(ctx context.Context, s domain.SiteSettings) error
	GetProfile(ctx context.Context, id string) (*domain.Profile, error)
	UpsertProfile(ctx context.Context, p domain.Profile) (*domain.Profile, error)
}
