package cart

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"bookstore-storefront/internal/domain"
	"bookstore-storefront/internal/kvstore"
	"bookstore-storefront/internal/persist"
	cartstore "bookstore-storefront/internal/store/cart"
	"bookstore-storefront/internal/store/registry"
	"github.com/shopspring/decimal"
)

type bookLookup interface {
	Get(ctx context.Context, id string) (*domain.Book, error)
}

// View is a cart together with its derived totals.
type View struct {
	Items      []domain.CartItem `json:"items"`
	TotalItems int               `json:"totalItems"`
	TotalPrice decimal.Decimal   `json:"totalPrice"`
}

// Service keeps one cart store per shopper, loading each from the kv store on
// first use.
type Service struct {
	books     bookLookup
	kv        kvstore.Store
	persister cartstore.Persister
	wait      time.Duration
	logger    *log.Logger

	stores *registry.Registry[*cartstore.Store]
}

// New builds the service. wait bounds how long a mutation waits for its
// snapshot to be written; zero returns without waiting.
func New(books bookLookup, kv kvstore.Store, persister cartstore.Persister, wait time.Duration, logger *log.Logger) *Service {
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

func (s *Service) Get(ctx context.Context, shopperID string) (View, error) {
	st, err := s.store(ctx, shopperID)
	if err != nil {
		return View{}, err
	}
	return view(st), nil
}

// Add resolves the book, checks the format is sold and adds quantity copies at
// the format's current price.
func (s *Service) Add(ctx context.Context, shopperID, bookID string, format domain.Format, quantity int) (View, error) {
	if quantity < 1 {
		return View{}, domain.ErrInvalidQuantity
	}
	f, ok := domain.ParseFormat(string(format))
	if !ok {
		return View{}, fmt.Errorf("%w %q", domain.ErrUnknownFormat, format)
	}
	book, err := s.books.Get(ctx, strings.TrimSpace(bookID))
	if err != nil {
		return View{}, err
	}
	if !book.SellsIn(f) {
		return View{}, fmt.Errorf("%w: %s in %s", domain.ErrFormatUnavailable, book.ID, f)
	}

	st, err := s.store(ctx, shopperID)
	if err != nil {
		return View{}, err
	}
	res := st.AddItem(domain.CartItem{
		BookID:   book.ID,
		Format:   f,
		Quantity: quantity,
		Price:    book.Price.For(f),
	})
	s.await(ctx, shopperID, res)
	return view(st), nil
}

// Update sets the quantity of an existing entry.
func (s *Service) Update(ctx context.Context, shopperID, bookID string, format domain.Format, quantity int) (View, error) {
	if quantity < 1 {
		return View{}, domain.ErrInvalidQuantity
	}
	st, err := s.store(ctx, shopperID)
	if err != nil {
		return View{}, err
	}
	if !contains(st, bookID, format) {
		return View{}, domain.ErrNotFound
	}
	s.await(ctx, shopperID, st.UpdateQuantity(bookID, format, quantity))
	return view(st), nil
}

func (s *Service) Remove(ctx context.Context, shopperID, bookID string, format domain.Format) (View, error) {
	st, err := s.store(ctx, shopperID)
	if err != nil {
		return View{}, err
	}
	s.await(ctx, shopperID, st.RemoveItem(bookID, format))
	return view(st), nil
}

func (s *Service) Clear(ctx context.Context, shopperID string) (View, error) {
	st, err := s.store(ctx, shopperID)
	if err != nil {
		return View{}, err
	}
	s.await(ctx, shopperID, st.ClearCart())
	return view(st), nil
}

func (s *Service) store(ctx context.Context, shopperID string) (*cartstore.Store, error) {
	return s.stores.Get(ctx, shopperID)
}

func (s *Service) load(ctx context.Context, shopperID string) (*cartstore.Store, error) {
	st, err := cartstore.Load(ctx, s.kv, cartstore.Key(shopperID), s.persister, s.logger)
	if err != nil {
		s.logger.Printf("cart service: load shopper=%s error=%v", shopperID, err)
		return nil, err
	}
	return st, nil
}

// await gives the snapshot write up to s.wait to finish. Failures are logged
// and never surface to the caller.
func (s *Service) await(ctx context.Context, shopperID string, res *persist.Result) {
	if s.wait <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, s.wait)
	defer cancel()
	if err := res.Wait(ctx); err != nil {
		s.logger.Printf("cart service: persist shopper=%s error=%v", shopperID, err)
	}
}

func contains(st *cartstore.Store, bookID string, format domain.Format) bool {
	key := domain.CartKey{BookID: bookID, Format: format}
	for _, it := range st.Items() {
		if it.Key() == key {
			return true
		}
	}
	return false
}

func view(st *cartstore.Store) View {
	items := st.Items()
	if items == nil {
		items = []domain.CartItem{}
	}
	return View{Items: items, TotalItems: st.TotalItems(), TotalPrice: st.TotalPrice()}
}
