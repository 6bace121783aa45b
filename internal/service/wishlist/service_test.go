package wishlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookstore-storefront/internal/domain"
	"bookstore-storefront/internal/kvstore"
	"bookstore-storefront/internal/persist"
)

type stubBooks struct {
	books map[string]domain.Book
}

func (s *stubBooks) Get(_ context.Context, id string) (*domain.Book, error) {
	b, ok := s.books[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (s *stubBooks) Resolve(ctx context.Context, ids []string) []domain.Book {
	out := []domain.Book{}
	for _, id := range ids {
		if b, err := s.Get(ctx, id); err == nil {
			out = append(out, *b)
		}
	}
	return out
}

func catalogue() *stubBooks {
	return &stubBooks{books: map[string]domain.Book{
		"radha":       {ID: "radha", Title: "Radha"},
		"summer-love": {ID: "summer-love", Title: "Summer Love"},
	}}
}

func TestAddListRemove(t *testing.T) {
	svc := New(catalogue(), kvstore.NewMemory(), nil, 0, nil)
	ctx := context.Background()

	for _, id := range []string{"radha", "summer-love", "radha"} {
		if err := svc.Add(ctx, "s1", id); err != nil {
			t.Fatalf("Add %s: %v", id, err)
		}
	}
	v, err := svc.List(ctx, "s1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(v.IDs) != 2 || v.IDs[0] != "radha" || len(v.Books) != 2 {
		t.Fatalf("unexpected wishlist %+v", v)
	}

	if err := svc.Remove(ctx, "s1", "radha"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	in, _ := svc.Contains(ctx, "s1", "radha")
	if in {
		t.Fatalf("expected radha to be removed")
	}
}

func TestAddUnknownBook(t *testing.T) {
	svc := New(catalogue(), kvstore.NewMemory(), nil, 0, nil)
	if err := svc.Add(context.Background(), "s1", "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Toggle(context.Background(), "s1", "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from toggle, got %v", err)
	}
}

func TestToggleRemovesWithdrawnBook(t *testing.T) {
	books := catalogue()
	svc := New(books, kvstore.NewMemory(), nil, 0, nil)
	ctx := context.Background()

	in, err := svc.Toggle(ctx, "s1", "radha")
	if err != nil || !in {
		t.Fatalf("expected radha added, got %v %v", in, err)
	}
	delete(books.books, "radha")

	in, err = svc.Toggle(ctx, "s1", "radha")
	if err != nil || in {
		t.Fatalf("expected radha removed, got %v %v", in, err)
	}
	v, _ := svc.List(ctx, "s1")
	if v.IDs == nil || len(v.IDs) != 0 {
		t.Fatalf("expected empty id list, got %#v", v.IDs)
	}
}

func TestListDropsUnresolvableBooks(t *testing.T) {
	books := catalogue()
	svc := New(books, kvstore.NewMemory(), nil, 0, nil)
	ctx := context.Background()
	_ = svc.Add(ctx, "s1", "radha")
	_ = svc.Add(ctx, "s1", "summer-love")
	delete(books.books, "radha")

	v, _ := svc.List(ctx, "s1")
	if len(v.IDs) != 2 || len(v.Books) != 1 || v.Books[0].ID != "summer-love" {
		t.Fatalf("unexpected wishlist %+v", v)
	}
}

func TestPersistsAndRehydrates(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	w := persist.NewWriter(kv, nil, time.Second)
	w.Start()

	first := New(catalogue(), kv, w, time.Second, nil)
	_ = first.Add(ctx, "s1", "summer-love")
	_ = first.Add(ctx, "s1", "radha")
	w.Close()

	second := New(catalogue(), kv, nil, 0, nil)
	v, err := second.List(ctx, "s1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(v.IDs) != 2 || v.IDs[0] != "summer-love" || v.IDs[1] != "radha" {
		t.Fatalf("unexpected rehydrated ids %v", v.IDs)
	}
}
