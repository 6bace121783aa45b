package seed

import (
	"context"
	"errors"
	"strings"
	"testing"

	"bookstore-storefront/internal/domain"
	"bookstore-storefront/internal/mapper"
)

type stubBooks struct {
	items []domain.Book
}

func (s *stubBooks) Upsert(_ context.Context, b domain.Book) (*domain.Book, error) {
	s.items = append(s.items, b)
	return &b, nil
}

type stubSettings struct {
	settings domain.SiteSettings
	profiles []domain.Profile
	err      error
}

func (s *stubSettings) SaveSiteSettings(_ context.Context, st domain.SiteSettings) error {
	s.settings = st
	return s.err
}

func (s *stubSettings) UpsertProfile(_ context.Context, p domain.Profile) (*domain.Profile, error) {
	s.profiles = append(s.profiles, p)
	return &p, nil
}

func TestRowsAreValid(t *testing.T) {
	for _, row := range Rows() {
		b, err := mapper.Parse(row)
		if err != nil {
			t.Fatalf("invalid seed row: %v", err)
		}
		if b.CoverURL == "" {
			t.Fatalf("row %v resolved no cover", row["id"])
		}
	}
}

func TestLoad(t *testing.T) {
	books := &stubBooks{}
	settings := &stubSettings{}
	if err := Load(context.Background(), books, settings); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(books.items) != len(Rows()) {
		t.Fatalf("expected %d books, got %d", len(Rows()), len(books.items))
	}

	var hero *domain.Book
	for i := range books.items {
		if books.items[i].ID == settings.settings.HeroBookID {
			hero = &books.items[i]
		}
	}
	if hero == nil {
		t.Fatalf("hero book %q not seeded", settings.settings.HeroBookID)
	}
	if hero.CoverURL != "/covers/muna-madan.jpg" {
		t.Fatalf("expected local cover for hero, got %q", hero.CoverURL)
	}
	if len(settings.profiles) != 1 || settings.profiles[0].ID != "demo-reader" {
		t.Fatalf("unexpected profiles %+v", settings.profiles)
	}
}

func TestLoad_PropagatesErrors(t *testing.T) {
	err := Load(context.Background(), &stubBooks{}, &stubSettings{err: errors.New("read only")})
	if err == nil || !strings.Contains(err.Error(), "save settings") {
		t.Fatalf("expected settings error, got %v", err)
	}
}
