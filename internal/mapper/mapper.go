// Package mapper turns untyped catalogue rows into domain books.
//
// A Row carries the data source's snake_case column names. Parse validates
// every field and reports all problems at once; Map is the lenient variant
// used where a partially populated book is preferable to no book at all.
package mapper

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"bookstore-storefront/internal/domain"
)

// Row is a single record as returned by the data source, prior to mapping.
type Row map[string]any

// FieldError describes one missing or malformed column.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError collects every field problem found in a row.
type ValidationError struct {
	ID     string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	if e.ID != "" {
		return fmt.Sprintf("book row %s: %s", e.ID, strings.Join(parts, "; "))
	}
	return "book row: " + strings.Join(parts, "; ")
}

// Has reports whether field was flagged.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// priceColumns maps each per-format price column to its format.
var priceColumns = []struct {
	column string
	format domain.Format
}{
	{"price_hardcover", domain.FormatHardcover},
	{"price_paperback", domain.FormatPaperback},
	{"price_ebook", domain.FormatEbook},
	{"price_audiobook", domain.FormatAudiobook},
}

type parser struct {
	row  Row
	errs []FieldError
}

func (p *parser) fail(field string, err error) {
	reason := err.Error()
	if errors.Is(err, errMissing) {
		reason = "required"
	}
	p.errs = append(p.errs, FieldError{Field: field, Reason: reason})
}

// required reads a column that must be present; optional reads one that may
// be absent but must be well formed when set. Both return ok=false when the
// value could not be used.
func (p *parser) required(field string) (any, bool) {
	v, present := p.row[field]
	if !present || v == nil {
		p.fail(field, errMissing)
		return nil, false
	}
	return v, true
}

func (p *parser) optional(field string) (any, bool) {
	v, present := p.row[field]
	if !present || v == nil {
		return nil, false
	}
	return v, true
}

func (p *parser) str(field string, mandatory bool) string {
	v, ok := p.lookup(field, mandatory)
	if !ok {
		return ""
	}
	s, err := asString(v)
	if err != nil {
		p.fail(field, err)
	}
	if mandatory && err == nil && strings.TrimSpace(s) == "" {
		p.fail(field, errors.New("must not be blank"))
	}
	return s
}

func (p *parser) list(field string, mandatory bool) []string {
	v, ok := p.lookup(field, mandatory)
	if !ok {
		if mandatory {
			return nil
		}
		return []string{}
	}
	out, err := asStrings(v)
	if err != nil {
		p.fail(field, err)
		return []string{}
	}
	return out
}

func (p *parser) nonNegativeInt(field string, mandatory bool) (int, bool) {
	v, ok := p.lookup(field, mandatory)
	if !ok {
		return 0, false
	}
	n, err := asInt(v)
	if err != nil {
		p.fail(field, err)
		return 0, false
	}
	if n < 0 {
		p.fail(field, errors.New("must not be negative"))
		return n, true
	}
	return n, true
}

func (p *parser) boolean(field string) *bool {
	v, ok := p.optional(field)
	if !ok {
		return nil
	}
	b, err := asBool(v)
	if err != nil {
		if !errors.Is(err, errMissing) {
			p.fail(field, err)
		}
		return nil
	}
	return &b
}

func (p *parser) lookup(field string, mandatory bool) (any, bool) {
	if mandatory {
		return p.required(field)
	}
	return p.optional(field)
}

// Parse maps row onto a Book. The returned book is always populated on a
// best-effort basis; err is a *ValidationError when any field was missing or
// malformed.
func Parse(row Row) (domain.Book, error) {
	p := &parser{row: row}

	book := domain.Book{
		ID:          p.str("id", true),
		Title:       p.str("title", true),
		Author:      p.str("author", true),
		Description: p.str("description", false),
		Excerpt:     p.str("excerpt", false),
		Publisher:   p.str("publisher", false),
		Genres:      p.list("genres", false),
		Tags:        p.list("tags", false),
	}

	book.CoverURL = ResolveCover(book.Title, p.str("cover_url", false))

	if v, ok := p.required("rating"); ok {
		rating, err := asFloat(v)
		switch {
		case err != nil:
			p.fail("rating", err)
		case rating < 0 || rating > 5:
			p.fail("rating", fmt.Errorf("%v is outside 0..5", rating))
			book.Rating = rating
		default:
			book.Rating = rating
		}
	}

	book.ReviewCount, _ = p.nonNegativeInt("review_count", true)
	book.ReadingTime, _ = p.nonNegativeInt("reading_time", false)
	if pages, ok := p.nonNegativeInt("pages", false); ok {
		book.Pages = &pages
	}

	book.Price = domain.Prices{}
	for _, pc := range priceColumns {
		v, ok := p.optional(pc.column)
		if !ok {
			continue
		}
		amount, err := asDecimal(v)
		if err != nil {
			if !errors.Is(err, errMissing) {
				p.fail(pc.column, err)
			}
			continue
		}
		if amount.IsNegative() {
			p.fail(pc.column, errors.New("must not be negative"))
			continue
		}
		book.Price[pc.format] = &amount
	}

	rawFormats := p.list("formats", true)
	book.Formats = make([]domain.Format, 0, len(rawFormats))
	for _, raw := range rawFormats {
		f, ok := domain.ParseFormat(raw)
		if !ok {
			p.fail("formats", fmt.Errorf("%w %q", domain.ErrUnknownFormat, raw))
			continue
		}
		if !book.SellsIn(f) {
			book.Formats = append(book.Formats, f)
		}
	}

	if v, ok := p.optional("publish_date"); ok {
		date, err := asDate(v)
		if err != nil {
			p.fail("publish_date", err)
		}
		book.PublishDate = date
	}

	if v, ok := p.optional("isbn"); ok {
		isbn, err := asString(v)
		if err != nil {
			p.fail("isbn", err)
		} else if isbn = strings.TrimSpace(isbn); isbn != "" {
			book.ISBN = &isbn
		}
	}

	book.IsBestseller = p.boolean("is_bestseller")
	book.IsNew = p.boolean("is_new")

	if v, ok := p.optional("mood"); ok {
		moods, err := asStrings(v)
		if err != nil {
			p.fail("mood", err)
		} else {
			book.Mood = moods
		}
	}

	if len(p.errs) == 0 {
		return book, nil
	}
	sort.SliceStable(p.errs, func(i, j int) bool { return p.errs[i].Field < p.errs[j].Field })
	return book, &ValidationError{ID: book.ID, Fields: p.errs}
}

// Map is the lenient total mapping: missing or malformed fields leave zero
// values behind instead of failing.
func Map(row Row) domain.Book {
	book, _ := Parse(row)
	return book
}

// ToRow is the inverse of Parse, used when writing books back to the store.
func ToRow(b domain.Book) Row {
	row := Row{
		"id":           b.ID,
		"title":        b.Title,
		"author":       b.Author,
		"cover_url":    b.CoverURL,
		"rating":       b.Rating,
		"review_count": b.ReviewCount,
		"reading_time": b.ReadingTime,
		"genres":       nonNil(b.Genres),
		"description":  b.Description,
		"excerpt":      b.Excerpt,
		"publisher":    b.Publisher,
		"tags":         nonNil(b.Tags),
	}
	formats := make([]string, 0, len(b.Formats))
	for _, f := range b.Formats {
		formats = append(formats, string(f))
	}
	row["formats"] = formats
	for _, pc := range priceColumns {
		if amount := b.Price[pc.format]; amount != nil {
			row[pc.column] = *amount
		} else {
			row[pc.column] = nil
		}
	}
	row["publish_date"] = nilIfEmpty(b.PublishDate)
	row["pages"] = derefInt(b.Pages)
	row["isbn"] = derefString(b.ISBN)
	row["is_bestseller"] = derefBool(b.IsBestseller)
	row["is_new"] = derefBool(b.IsNew)
	if b.Mood != nil {
		row["mood"] = b.Mood
	} else {
		row["mood"] = nil
	}
	return row
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func derefInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func derefString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func derefBool(v *bool) any {
	if v == nil {
		return nil
	}
	return *v
}
