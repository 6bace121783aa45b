// Package catalog serves books, moods, settings and profiles. Data-source
// failures are logged and degraded to empty or default results so browsing
// keeps working while the database is unavailable.
package catalog

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"bookstore-storefront/internal/domain"
	bookrepo "bookstore-storefront/internal/repository/book"
)

type bookRepo interface {
	List(ctx context.Context, q bookrepo.Query) ([]domain.Book, error)
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	ListRelated(ctx context.Context, id string, limit int) ([]domain.Book, error)
	ListGenres(ctx context.Context) ([]domain.GenreCount, error)
}

type settingsRepo interface {
	GetSiteSettings(ctx context.Context) (*domain.SiteSettings, error)
	GetProfile(ctx context.Context, id string) (*domain.Profile, error)
}

type Service struct {
	books    bookRepo
	settings settingsRepo
	logger   *log.Logger
}

func New(books bookRepo, settings settingsRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{books: books, settings: settings, logger: logger}
}

func (s *Service) List(ctx context.Context, q bookrepo.Query) []domain.Book {
	books, err := s.books.List(ctx, q)
	if err != nil {
		s.logger.Printf("catalog: list books degraded to empty: %v", err)
		return []domain.Book{}
	}
	return nonNil(books)
}

// Get returns domain.ErrNotFound for any lookup failure.
func (s *Service) Get(ctx context.Context, id string) (*domain.Book, error) {
	b, err := s.books.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("catalog: get book id=%s degraded to not found: %v", id, err)
		}
		return nil, domain.ErrNotFound
	}
	return b, nil
}

// Resolve looks up ids in order, leaving out books that cannot be found.
func (s *Service) Resolve(ctx context.Context, ids []string) []domain.Book {
	out := make([]domain.Book, 0, len(ids))
	for _, id := range ids {
		b, err := s.Get(ctx, id)
		if err != nil {
			continue
		}
		out = append(out, *b)
	}
	return out
}

func (s *Service) Related(ctx context.Context, id string, limit int) []domain.Book {
	books, err := s.books.ListRelated(ctx, id, limit)
	if err != nil {
		s.logger.Printf("catalog: related id=%s degraded to empty: %v", id, err)
		return []domain.Book{}
	}
	return nonNil(books)
}

func (s *Service) Genres(ctx context.Context) []domain.GenreCount {
	genres, err := s.books.ListGenres(ctx)
	if err != nil || genres == nil {
		if err != nil {
			s.logger.Printf("catalog: genres degraded to empty: %v", err)
		}
		return []domain.GenreCount{}
	}
	return genres
}

func (s *Service) Moods() []domain.Mood {
	return append([]domain.Mood(nil), domain.Moods...)
}

// BooksByMood lists books tagged with the mood. Unknown moods are not found.
func (s *Service) BooksByMood(ctx context.Context, slug string, q bookrepo.Query) (domain.Mood, []domain.Book, error) {
	m, ok := domain.LookupMood(slug)
	if !ok {
		return domain.Mood{}, nil, domain.ErrNotFound
	}
	q.Mood = m.Slug
	return m, s.List(ctx, q), nil
}

func (s *Service) Settings(ctx context.Context) domain.SiteSettings {
	st, err := s.settings.GetSiteSettings(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("catalog: settings degraded to defaults: %v", err)
		}
		return domain.DefaultSiteSettings()
	}
	return *st
}

func (s *Service) Profile(ctx context.Context, id string) domain.Profile {
	id = strings.TrimSpace(id)
	p, err := s.settings.GetProfile(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("catalog: profile id=%s degraded to guest: %v", id, err)
		}
		return domain.GuestProfile(id)
	}
	return *p
}

func nonNil(books []domain.Book) []domain.Book {
	if books == nil {
		return []domain.Book{}
	}
	return books
}
