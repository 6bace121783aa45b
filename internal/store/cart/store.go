// Package cart holds one shopper's cart: an ordered collection of distinct
// (book, format) purchase intents.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"

	"bookstore-storefront/internal/domain"
	"bookstore-storefront/internal/kvstore"
	"bookstore-storefront/internal/persist"
	"github.com/shopspring/decimal"
)

// Namespace is the key prefix cart snapshots are persisted under.
const Namespace = "cart-storage"

// Key returns the persistence key for a shopper's cart.
func Key(shopperID string) string {
	return Namespace + ":" + shopperID
}

// Persister accepts serialized snapshots.
type Persister interface {
	Enqueue(key string, data []byte) *persist.Result
}

type snapshot struct {
	Items []domain.CartItem `json:"items"`
}

// Store is safe for concurrent use; every operation runs to completion before
// the next one starts.
type Store struct {
	mu        sync.Mutex
	items     []domain.CartItem
	key       string
	persister Persister
	logger    *log.Logger
}

// New returns an empty cart persisting under key.
func New(key string, persister Persister, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{key: key, persister: persister, logger: logger, items: []domain.CartItem{}}
}

// Load rehydrates the cart saved under key. A missing or unreadable snapshot
// yields an empty cart; only the read itself can fail.
func Load(ctx context.Context, kv kvstore.Store, key string, persister Persister, logger *log.Logger) (*Store, error) {
	s := New(key, persister, logger)
	data, ok, err := kv.Load(ctx, key)
	if err != nil {
		return s, fmt.Errorf("load cart %s: %w", key, err)
	}
	if !ok {
		return s, nil
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Printf("cart store: discard unreadable snapshot key=%s error=%v", key, err)
		return s, nil
	}
	s.items = dedupe(snap.Items)
	return s, nil
}

// dedupe merges entries sharing a key so a hand-edited snapshot cannot break
// the uniqueness invariant.
func dedupe(items []domain.CartItem) []domain.CartItem {
	out := make([]domain.CartItem, 0, len(items))
	index := make(map[domain.CartKey]int, len(items))
	for _, it := range items {
		if i, ok := index[it.Key()]; ok {
			out[i].Quantity += it.Quantity
			continue
		}
		index[it.Key()] = len(out)
		out = append(out, it)
	}
	return out
}

// AddItem merges item into an existing entry with the same book and format,
// accumulating quantity and keeping the original price, or appends it.
func (s *Store) AddItem(item domain.CartItem) *persist.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(item.Key()); i >= 0 {
		s.items[i].Quantity += item.Quantity
	} else {
		s.items = append(s.items, item)
	}
	return s.persistLocked()
}

// RemoveItem drops the matching entry; absent entries are ignored.
func (s *Store) RemoveItem(bookID string, format domain.Format) *persist.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(domain.CartKey{BookID: bookID, Format: format}); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
	return s.persistLocked()
}

// UpdateQuantity overwrites the quantity of the matching entry, if any.
func (s *Store) UpdateQuantity(bookID string, format domain.Format, quantity int) *persist.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(domain.CartKey{BookID: bookID, Format: format}); i >= 0 {
		s.items[i].Quantity = quantity
	}
	return s.persistLocked()
}

// ClearCart empties the cart.
func (s *Store) ClearCart() *persist.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []domain.CartItem{}
	return s.persistLocked()
}

// TotalItems is the sum of quantities, not the number of entries.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// TotalPrice is the sum of price times quantity.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// Items returns a copy of the cart in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CartItem(nil), s.items...)
}

func (s *Store) indexOf(key domain.CartKey) int {
	for i, it := range s.items {
		if it.Key() == key {
			return i
		}
	}
	return -1
}

func (s *Store) persistLocked() *persist.Result {
	if s.persister == nil {
		return persist.Completed(nil)
	}
	data, err := json.Marshal(snapshot{Items: s.items})
	if err != nil {
		s.logger.Printf("cart store: encode snapshot key=%s error=%v", s.key, err)
		return persist.Completed(err)
	}
	return s.persister.Enqueue(s.key, data)
}
