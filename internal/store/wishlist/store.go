// Package wishlist holds one shopper's favourite books as an insertion-ordered
// set of identifiers.
package wishlist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"

	"bookstore-storefront/internal/kvstore"
	"bookstore-storefront/internal/persist"
)

// Namespace is the key prefix wishlist snapshots are persisted under.
const Namespace = "wishlist-storage"

// Key returns the persistence key for a shopper's wishlist.
func Key(shopperID string) string {
	return Namespace + ":" + shopperID
}

// Persister accepts serialized snapshots.
type Persister interface {
	Enqueue(key string, data []byte) *persist.Result
}

type snapshot struct {
	Items []string `json:"items"`
}

type Store struct {
	mu        sync.Mutex
	ids       []string
	key       string
	persister Persister
	logger    *log.Logger
}

func New(key string, persister Persister, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{key: key, persister: persister, logger: logger, ids: []string{}}
}

// Load rehydrates the wishlist saved under key, dropping duplicate ids.
func Load(ctx context.Context, kv kvstore.Store, key string, persister Persister, logger *log.Logger) (*Store, error) {
	s := New(key, persister, logger)
	data, ok, err := kv.Load(ctx, key)
	if err != nil {
		return s, fmt.Errorf("load wishlist %s: %w", key, err)
	}
	if !ok {
		return s, nil
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Printf("wishlist store: discard unreadable snapshot key=%s error=%v", key, err)
		return s, nil
	}
	for _, id := range snap.Items {
		if s.indexOf(id) < 0 {
			s.ids = append(s.ids, id)
		}
	}
	return s, nil
}

// Add appends bookID unless it is already present.
func (s *Store) Add(bookID string) *persist.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(bookID) < 0 {
		s.ids = append(s.ids, bookID)
	}
	return s.persistLocked()
}

// Remove drops bookID if present.
func (s *Store) Remove(bookID string) *persist.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(bookID); i >= 0 {
		s.ids = append(s.ids[:i], s.ids[i+1:]...)
	}
	return s.persistLocked()
}

// Contains reports membership without side effects.
func (s *Store) Contains(bookID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(bookID) >= 0
}

// Toggle removes bookID when present and appends it otherwise. It returns the
// membership after the toggle.
func (s *Store) Toggle(bookID string) (bool, *persist.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in := false
	if i := s.indexOf(bookID); i >= 0 {
		s.ids = append(s.ids[:i], s.ids[i+1:]...)
	} else {
		s.ids = append(s.ids, bookID)
		in = true
	}
	return in, s.persistLocked()
}

// IDs returns a copy of the wishlist in insertion order.
func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.ids...)
}

func (s *Store) indexOf(bookID string) int {
	for i, id := range s.ids {
		if id == bookID {
			return i
		}
	}
	return -1
}

func (s *Store) persistLocked() *persist.Result {
	if s.persister == nil {
		return persist.Completed(nil)
	}
	data, err := json.Marshal(snapshot{Items: s.ids})
	if err != nil {
		s.logger.Printf("wishlist store: encode snapshot key=%s error=%v", s.key, err)
		return persist.Completed(err)
	}
	return s.persister.Enqueue(s.key, data)
}
