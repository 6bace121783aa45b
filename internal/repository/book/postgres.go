package book

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"bookstore-storefront/internal/domain"
	"bookstore-storefront/internal/mapper"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const columns = `id, title, author, cover_url, rating, review_count,
price_hardcover, price_paperback, price_ebook, price_audiobook,
formats, reading_time, genres, description, excerpt, publish_date, publisher,
pages, isbn, tags, is_bestseller, is_new, mood, created_at`

var orderColumns = map[string]string{
	OrderTitle:       "title",
	OrderRating:      "rating",
	OrderPublishDate: "publish_date",
	OrderReviewCount: "review_count",
	OrderCreatedAt:   "created_at",
}

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

func (r *postgresRepo) List(ctx context.Context, q Query) ([]domain.Book, error) {
	sql, args := buildList(q)
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		r.logger.Printf("book repo: list error=%v", err)
		return nil, err
	}
	result, err := r.collect(rows)
	if err != nil {
		r.logger.Printf("book repo: list rows error=%v", err)
		return nil, err
	}
	r.logger.Printf("book repo: list count=%d", len(result))
	return result, nil
}

// buildList renders the listing query. Only whitelisted columns reach the
// ORDER BY clause; every filter value travels as a bind parameter.
func buildList(q Query) (string, []any) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Genre != "" {
		where = append(where, arg(q.Genre)+" = ANY(genres)")
	}
	if q.Mood != "" {
		where = append(where, arg(strings.ToLower(q.Mood))+" = ANY(mood)")
	}
	if q.Format != "" {
		where = append(where, arg(string(q.Format))+" = ANY(formats)")
	}
	if q.Bestseller != nil {
		where = append(where, "COALESCE(is_bestseller, false) = "+arg(*q.Bestseller))
	}
	if q.New != nil {
		where = append(where, "COALESCE(is_new, false) = "+arg(*q.New))
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		p := arg("%" + s + "%")
		where = append(where, "(title ILIKE "+p+" OR author ILIKE "+p+")")
	}

	var b strings.Builder
	b.WriteString("SELECT " + columns + "\nFROM books")
	if len(where) > 0 {
		b.WriteString("\nWHERE " + strings.Join(where, " AND "))
	}

	order, ok := orderColumns[q.OrderBy]
	if !ok {
		order = "created_at"
	}
	dir := "ASC"
	if q.Desc || q.OrderBy == "" {
		dir = "DESC"
	}
	fmt.Fprintf(&b, "\nORDER BY %s %s NULLS LAST, id ASC", order, dir)

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	b.WriteString("\nLIMIT " + arg(limit))
	if q.Offset > 0 {
		b.WriteString(" OFFSET " + arg(q.Offset))
	}
	return b.String(), args
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	q := "SELECT " + columns + "\nFROM books\nWHERE id = $1"
	rows, err := r.pool.Query(ctx, q, id)
	if err != nil {
		r.logger.Printf("book repo: get id=%s error=%v", id, err)
		return nil, err
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToMap)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("book repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("book repo: get id=%s error=%v", id, err)
		return nil, err
	}
	b, err := mapper.Parse(row)
	if err != nil {
		r.logger.Printf("book repo: get id=%s invalid row: %v", id, err)
		return nil, err
	}
	r.logger.Printf("book repo: get id=%s title=%q", id, b.Title)
	return &b, nil
}

func (r *postgresRepo) ListRelated(ctx context.Context, id string, limit int) ([]domain.Book, error) {
	if limit <= 0 || limit > MaxLimit {
		limit = 4
	}
	q := "SELECT " + columns + `
FROM books
WHERE id <> $1
ORDER BY genres && COALESCE((SELECT genres FROM books WHERE id = $1), '{}') DESC, rating DESC, id ASC
LIMIT $2`
	rows, err := r.pool.Query(ctx, q, id, limit)
	if err != nil {
		r.logger.Printf("book repo: related id=%s error=%v", id, err)
		return nil, err
	}
	result, err := r.collect(rows)
	if err != nil {
		r.logger.Printf("book repo: related rows id=%s error=%v", id, err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) ListGenres(ctx context.Context) ([]domain.GenreCount, error) {
	const q = `
SELECT g, count(*)::int
FROM books, unnest(genres) AS g
GROUP BY g
ORDER BY count(*) DESC, g ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("book repo: genres error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.GenreCount
	for rows.Next() {
		var g domain.GenreCount
		if err := rows.Scan(&g.Genre, &g.Books); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("book repo: genres rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, b domain.Book) (*domain.Book, error) {
	const q = `
INSERT INTO books (id, title, author, cover_url, rating, review_count,
    price_hardcover, price_paperback, price_ebook, price_audiobook,
    formats, reading_time, genres, description, excerpt, publish_date, publisher,
    pages, isbn, tags, is_bestseller, is_new, mood)
VALUES ($1, $2, $3, $4, $5, $6,
    CAST($7::text AS numeric), CAST($8::text AS numeric), CAST($9::text AS numeric), CAST($10::text AS numeric),
    $11, $12, $13, $14, $15, CAST($16::text AS date), $17,
    $18, $19, $20, $21, $22, $23)
ON CONFLICT (id) DO UPDATE SET
    title = EXCLUDED.title,
    author = EXCLUDED.author,
    cover_url = EXCLUDED.cover_url,
    rating = EXCLUDED.rating,
    review_count = EXCLUDED.review_count,
    price_hardcover = EXCLUDED.price_hardcover,
    price_paperback = EXCLUDED.price_paperback,
    price_ebook = EXCLUDED.price_ebook,
    price_audiobook = EXCLUDED.price_audiobook,
    formats = EXCLUDED.formats,
    reading_time = EXCLUDED.reading_time,
    genres = EXCLUDED.genres,
    description = EXCLUDED.description,
    excerpt = EXCLUDED.excerpt,
    publish_date = EXCLUDED.publish_date,
    publisher = EXCLUDED.publisher,
    pages = EXCLUDED.pages,
    isbn = EXCLUDED.isbn,
    tags = EXCLUDED.tags,
    is_bestseller = EXCLUDED.is_bestseller,
    is_new = EXCLUDED.is_new,
    mood = EXCLUDED.mood
RETURNING id, created_at
`
	if strings.TrimSpace(b.ID) == "" {
		return nil, errors.New("book repo: upsert requires an id")
	}
	row := mapper.ToRow(b)
	res := b
	err := r.pool.QueryRow(ctx, q,
		row["id"],
		row["title"],
		row["author"],
		row["cover_url"],
		row["rating"],
		row["review_count"],
		priceText(row["price_hardcover"]),
		priceText(row["price_paperback"]),
		priceText(row["price_ebook"]),
		priceText(row["price_audiobook"]),
		row["formats"],
		row["reading_time"],
		row["genres"],
		row["description"],
		row["excerpt"],
		row["publish_date"],
		row["publisher"],
		row["pages"],
		row["isbn"],
		row["tags"],
		row["is_bestseller"],
		row["is_new"],
		row["mood"],
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Printf("book repo: upsert id=%s title=%q error=%v", b.ID, b.Title, err)
		return nil, err
	}
	r.logger.Printf("book repo: upserted id=%s title=%q", res.ID, res.Title)
	return &res, nil
}

// collect converts result rows through the mapper. Rows that fail validation
// are logged and left out of the listing.
func (r *postgresRepo) collect(rows pgx.Rows) ([]domain.Book, error) {
	raw, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}
	result := make([]domain.Book, 0, len(raw))
	for _, m := range raw {
		b, err := mapper.Parse(m)
		if err != nil {
			r.logger.Printf("book repo: skip invalid row: %v", err)
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func priceText(v any) any {
	if d, ok := v.(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}
