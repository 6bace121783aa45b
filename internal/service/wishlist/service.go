package wishlist

import (
	"context"
	"io"
	"log"
	"time"

	"bookstore-storefront/internal/domain"
	"bookstore-storefront/internal/kvstore"
	"bookstore-storefront/internal/persist"
	"bookstore-storefront/internal/store/registry"
	wishliststore "bookstore-storefront/internal/store/wishlist"
)

type bookLookup interface {
	Get(ctx context.Context, id string) (*domain.Book, error)
	Resolve(ctx context.Context, ids []string) []domain.Book
}

// View lists the wishlist ids in insertion order and the books that could be
// resolved for them.
type View struct {
	IDs   []string      `json:"ids"`
	Books []domain.Book `json:"books"`
}

type Service struct {
	books     bookLookup
	kv        kvstore.Store
	persister wishliststore.Persister
	wait      time.Duration
	logger    *log.Logger

	stores *registry.Registry[*wishliststore.Store]
}

func New(books bookLookup, kv kvstore.Store, persister wishliststore.Persister, wait time.Duration, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Service{
		books:     books,
		kv:        kv,
		persister: persister,
		wait:      wait,
		logger:    logger,
	}
	s.stores = registry.New(s.load, registry.DefaultIdle)
	return s
}

func (s *Service) List(ctx context.Context, shopperID string) (View, error) {
	st, err := s.store(ctx, shopperID)
	if err != nil {
		return View{}, err
	}
	ids := st.IDs()
	if ids == nil {
		ids = []string{}
	}
	return View{IDs: ids, Books: s.books.Resolve(ctx, ids)}, nil
}

func (s *Service) Contains(ctx context.Context, shopperID, bookID string) (bool, error) {
	st, err := s.store(ctx, shopperID)
	if err != nil {
		return false, err
	}
	return st.Contains(bookID), nil
}

// Add only accepts books present in the catalogue.
func (s *Service) Add(ctx context.Context, shopperID, bookID string) error {
	st, err := s.store(ctx, shopperID)
	if err != nil {
		return err
	}
	if !st.Contains(bookID) {
		if _, err := s.books.Get(ctx, bookID); err != nil {
			return err
		}
	}
	s.await(ctx, shopperID, st.Add(bookID))
	return nil
}

func (s *Service) Remove(ctx context.Context, shopperID, bookID string) error {
	st, err := s.store(ctx, shopperID)
	if err != nil {
		return err
	}
	s.await(ctx, shopperID, st.Remove(bookID))
	return nil
}

// Toggle reports membership after the toggle. Removing never consults the
// catalogue, so books withdrawn from sale can still be dropped.
func (s *Service) Toggle(ctx context.Context, shopperID, bookID string) (bool, error) {
	st, err := s.store(ctx, shopperID)
	if err != nil {
		return false, err
	}
	if !st.Contains(bookID) {
		if _, err := s.books.Get(ctx, bookID); err != nil {
			return false, err
		}
	}
	in, res := st.Toggle(bookID)
	s.await(ctx, shopperID, res)
	return in, nil
}

func (s *Service) store(ctx context.Context, shopperID string) (*wishliststore.Store, error) {
	return s.stores.Get(ctx, shopperID)
}

func (s *Service) load(ctx context.Context, shopperID string) (*wishliststore.Store, error) {
	st, err := wishliststore.Load(ctx, s.kv, wishliststore.Key(shopperID), s.persister, s.logger)
	if err != nil {
		s.logger.Printf("wishlist service: load shopper=%s error=%v", shopperID, err)
		return nil, err
	}
	return st, nil
}

func (s *Service) await(ctx context.Context, shopperID string, res *persist.Result) {
	if s.wait <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, s.wait)
	defer cancel()
	if err := res.Wait(ctx); err != nil {
		s.logger.Printf("wishlist service: persist shopper=%s error=%v", shopperID, err)
	}
}
