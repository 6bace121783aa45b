package settings

import (
	"context"
	"errors"
	"io"
	"log"

	"bookstore-storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) GetSiteSettings(ctx context.Context) (*domain.SiteSettings, error) {
	const q = `
SELECT store_name, tagline, currency, COALESCE(hero_book_id, ''), announcement, updated_at
FROM site_settings
WHERE id = 1
`
	var s domain.SiteSettings
	err := r.pool.QueryRow(ctx, q).Scan(&s.StoreName, &s.Tagline, &s.Currency, &s.HeroBookID, &s.Announcement, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("settings repo: get error=%v", err)
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) SaveSiteSettings(ctx context.Context, s domain.SiteSettings) error {
	const q = `
INSERT INTO site_settings (id, store_name, tagline, currency, hero_book_id, announcement)
VALUES (1, $1, $2, $3, NULLIF($4, ''), $5)
ON CONFLICT (id) DO UPDATE SET
    store_name = EXCLUDED.store_name,
    tagline = EXCLUDED.tagline,
    currency = EXCLUDED.currency,
    hero_book_id = EXCLUDED.hero_book_id,
    announcement = EXCLUDED.announcement,
    updated_at = now()
`
	if _, err := r.pool.Exec(ctx, q, s.StoreName, s.Tagline, s.Currency, s.HeroBookID, s.Announcement); err != nil {
		r.logger.Printf("settings repo: save error=%v", err)
		return err
	}
	return nil
}

func (r *postgresRepo) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	const q = `
SELECT id, display_name, avatar_url, bio, created_at
FROM profiles
WHERE id = $1
`
	var p domain.Profile
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.DisplayName, &p.AvatarURL, &p.Bio, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("settings repo: profile id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("settings repo: profile id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) UpsertProfile(ctx context.Context, p domain.Profile) (*domain.Profile, error) {
	const q = `
INSERT INTO profiles (id, display_name, avatar_url, bio)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET
    display_name = EXCLUDED.display_name,
    avatar_url = EXCLUDED.avatar_url,
    bio = EXCLUDED.bio
RETURNING created_at
`
	out := p
	if err := r.pool.QueryRow(ctx, q, p.ID, p.DisplayName, p.AvatarURL, p.Bio).Scan(&out.CreatedAt); err != nil {
		r.logger.Printf("settings repo: upsert profile id=%s error=%v", p.ID, err)
		return nil, err
	}
	return &out, nil
}
