package seed

import (
	"context"
	"fmt"
	"log"

	"bookstore-storefront/internal/domain"
	"bookstore-storefront/internal/mapper"
	bookrepo "bookstore-storefront/internal/repository/book"
	settingsrepo "bookstore-storefront/internal/repository/settings"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookWriter interface {
	Upsert(ctx context.Context, b domain.Book) (*domain.Book, error)
}

type SettingsWriter interface {
	SaveSiteSettings(ctx context.Context, s domain.SiteSettings) error
	UpsertProfile(ctx context.Context, p domain.Profile) (*domain.Profile, error)
}

// Apply inserts the demo catalogue for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool, logger *log.Logger) error {
	return Load(ctx, bookrepo.NewPostgres(pool, logger), settingsrepo.NewPostgres(pool, logger))
}

// Load writes the demo books, then the settings row that points at one of them.
func Load(ctx context.Context, books BookWriter, settings SettingsWriter) error {
	for _, row := range Rows() {
		b, err := mapper.Parse(row)
		if err != nil {
			return fmt.Errorf("seed row: %w", err)
		}
		if _, err := books.Upsert(ctx, b); err != nil {
			return fmt.Errorf("upsert book %s: %w", b.ID, err)
		}
	}

	st := domain.DefaultSiteSettings()
	st.HeroBookID = "muna-madan"
	st.Announcement = "Free delivery inside the valley on orders over NPR 2000"
	if err := settings.SaveSiteSettings(ctx, st); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	if _, err := settings.UpsertProfile(ctx, domain.Profile{
		ID:          "demo-reader",
		DisplayName: "Demo Reader",
		Bio:         "Reads a little of everything, mostly poetry.",
	}); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// Rows returns the demo catalogue in the same shape the database yields.
// Titles with a local cover carry no cover_url of their own.
func Rows() []mapper.Row {
	return []mapper.Row{
		{
			"id":              "muna-madan",
			"title":           "Muna Madan",
			"author":          "Laxmi Prasad Devkota",
			"rating":          4.9,
			"review_count":    214,
			"price_hardcover": "650",
			"price_paperback": "350",
			"price_ebook":     "199",
			"formats":         []string{"hardcover", "paperback", "ebook"},
			"reading_time":    120,
			"genres":          []string{"Poetry", "Classic"},
			"publish_date":    "1936-01-01",
			"publisher":       "Sajha Prakashan",
			"pages":           72,
			"tags":            []string{"epic", "nepali"},
			"description":     "A narrative poem about a merchant who leaves for Lhasa and the wife he leaves behind.",
			"is_bestseller":   true,
			"mood":            []string{"melancholic", "romantic"},
		},
		{
			"id":              "palpasa-cafe",
			"title":           "Palpasa Café",
			"author":          "Narayan Wagle",
			"rating":          4.6,
			"review_count":    188,
			"price_paperback": "595",
			"price_ebook":     "299",
			"price_audiobook": "450",
			"formats":         []string{"paperback", "ebook", "audiobook"},
			"reading_time":    420,
			"genres":          []string{"Fiction", "Literary"},
			"publish_date":    "2005-09-01",
			"publisher":       "Nepalaya",
			"pages":           238,
			"tags":            []string{"war", "art"},
			"is_bestseller":   true,
			"mood":            []string{"thoughtful", "melancholic"},
		},
		{
			"id":              "seto-dharti",
			"title":           "Seto Dharti",
			"author":          "Amar Neupane",
			"rating":          4.5,
			"review_count":    96,
			"price_hardcover": "1200",
			"price_paperback": "650",
			"formats":         []string{"hardcover", "paperback"},
			"reading_time":    540,
			"genres":          []string{"Fiction"},
			"publish_date":    "2012-05-01",
			"publisher":       "FinePrint",
			"pages":           412,
			"mood":            []string{"melancholic"},
		},
		{
			"id":              "karnali-blues",
			"title":           "Karnali Blues",
			"author":          "Buddhisagar",
			"rating":          4.4,
			"review_count":    143,
			"price_paperback": "550",
			"price_ebook":     "250",
			"formats":         []string{"paperback", "ebook"},
			"reading_time":    480,
			"genres":          []string{"Fiction", "Family"},
			"publish_date":    "2010-03-01",
			"publisher":       "FinePrint",
			"pages":           344,
			"mood":            []string{"cozy", "melancholic"},
		},
		{
			"id":              "shirishko-phool",
			"title":           "Shirishko Phool",
			"author":          "Parijat",
			"rating":          4.3,
			"review_count":    77,
			"price_paperback": "300",
			"formats":         []string{"paperback"},
			"reading_time":    200,
			"genres":          []string{"Classic", "Literary"},
			"publish_date":    "1965-01-01",
			"publisher":       "Sajha Prakashan",
			"mood":            []string{"thoughtful"},
		},
		{
			"id":              "summer-love",
			"title":           "Summer Love",
			"author":          "Subin Bhattarai",
			"rating":          4.1,
			"review_count":    230,
			"price_paperback": "450",
			"price_ebook":     "199",
			"price_audiobook": "399",
			"formats":         []string{"paperback", "ebook", "audiobook"},
			"reading_time":    300,
			"genres":          []string{"Romance"},
			"publish_date":    "2012-01-01",
			"publisher":       "FinePrint",
			"is_new":          false,
			"mood":            []string{"romantic", "uplifting"},
		},
		{
			"id":              "radha",
			"title":           "Radha",
			"author":          "Krishna Dharabasi",
			"rating":          4.2,
			"review_count":    64,
			"price_hardcover": "900",
			"price_paperback": "500",
			"formats":         []string{"hardcover", "paperback"},
			"reading_time":    360,
			"genres":          []string{"Mythology", "Fiction"},
			"publish_date":    "2005-01-01",
			"publisher":       "Sajha Prakashan",
			"mood":            []string{"thoughtful", "romantic"},
		},
		{
			"id":           "himalayan-trails",
			"title":        "Himalayan Trails",
			"author":       "Demo Author",
			"cover_url":    "https://images.example.com/covers/himalayan-trails.jpg",
			"rating":       3.9,
			"review_count": 5,
			"price_ebook":  "150",
			"formats":      []string{"ebook"},
			"reading_time": 90,
			"genres":       []string{"Travel"},
			"publish_date": "2025-06-01",
			"isbn":         "9789937000000",
			"is_new":       true,
			"mood":         []string{"adventurous"},
		},
	}
}
