package book

import (
	"context"

	"bookstore-storefront/internal/domain"
)

// Order columns accepted by Query.OrderBy.
const (
	OrderTitle       = "title"
	OrderRating      = "rating"
	OrderPublishDate = "publish_date"
	OrderReviewCount = "review_count"
	OrderCreatedAt   = "created_at"
)

const (
	DefaultLimit = 24
	MaxLimit     = 100
)

// Query filters and pages a catalogue listing. Zero values mean "no filter".
type Query struct {
	Limit      int
	Offset     int
	OrderBy    string
	Desc       bool
	Genre      string
	Mood       string
	Format     domain.Format
	Bestseller *bool
	New        *bool
	Search     string
}

type Repository interface {
	List(ctx context.Context, q Query) ([]domain.Book, error)
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	ListRelated(ctx context.Context, id string, limit int) ([]domain.Book, error)
	ListGenres(ctx context.Context) ([]domain.GenreCount, error)
	Upsert(ctx context.Context, b domain.Book) (*domain.Book, error)
}
