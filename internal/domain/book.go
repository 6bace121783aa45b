package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Format is one of the sellable editions of a book.
type Format string

const (
	FormatHardcover Format = "hardcover"
	FormatPaperback Format = "paperback"
	FormatEbook     Format = "ebook"
	FormatAudiobook Format = "audiobook"
)

// Formats lists every sellable edition in display order.
var Formats = []Format{FormatHardcover, FormatPaperback, FormatEbook, FormatAudiobook}

// ParseFormat normalises s and reports whether it names a known format.
func ParseFormat(s string) (Format, bool) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, true
		}
	}
	return "", false
}

// Prices maps a format to its price. A nil amount means the format has no price.
type Prices map[Format]*decimal.Decimal

// For returns the price of f, treating a missing price as zero.
func (p Prices) For(f Format) decimal.Decimal {
	if amount := p[f]; amount != nil {
		return *amount
	}
	return decimal.Zero
}

// Book is an immutable snapshot of a catalogue entry.
type Book struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	CoverURL     string    `json:"coverUrl"`
	Rating       float64   `json:"rating"`
	ReviewCount  int       `json:"reviewCount"`
	Price        Prices    `json:"price"`
	Formats      []Format  `json:"formats"`
	ReadingTime  int       `json:"readingTime"`
	Genres       []string  `json:"genres"`
	Description  string    `json:"description"`
	Excerpt      string    `json:"excerpt"`
	PublishDate  string    `json:"publishDate"`
	Publisher    string    `json:"publisher"`
	Pages        *int      `json:"pages,omitempty"`
	ISBN         *string   `json:"isbn,omitempty"`
	Tags         []string  `json:"tags"`
	IsBestseller *bool     `json:"isBestseller,omitempty"`
	IsNew        *bool     `json:"isNew,omitempty"`
	Mood         []string  `json:"mood,omitempty"`
	CreatedAt    time.Time `json:"-"`
}

// SellsIn reports whether the book lists f among its formats.
func (b Book) SellsIn(f Format) bool {
	for _, have := range b.Formats {
		if have == f {
			return true
		}
	}
	return false
}
