package cart

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"testing"
	"time"

	"bookstore-storefront/internal/domain"
	"bookstore-storefront/internal/kvstore"
	"bookstore-storefront/internal/persist"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(bookID string, f domain.Format, qty int, price int64) domain.CartItem {
	return domain.CartItem{BookID: bookID, Format: f, Quantity: qty, Price: decimal.NewFromInt(price)}
}

func TestAddItem_MergesQuantityForSameKey(t *testing.T) {
	s := New(Key("s1"), nil, nil)
	for _, q := range []int{1, 2, 4} {
		s.AddItem(item("b1", domain.FormatPaperback, q, 800))
	}

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestAddItem_KeepsOriginalPriceOnMerge(t *testing.T) {
	s := New(Key("s1"), nil, nil)
	s.AddItem(item("b1", domain.FormatHardcover, 1, 1000))
	s.AddItem(item("b1", domain.FormatHardcover, 1, 1200))

	items := s.Items()
	require.Len(t, items, 1)
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(1000)))
	assert.True(t, s.TotalPrice().Equal(decimal.NewFromInt(2000)))
}

func TestAddItem_DifferentFormatsAreDistinctEntries(t *testing.T) {
	s := New(Key("s1"), nil, nil)
	s.AddItem(item("b1", domain.FormatHardcover, 1, 1000))
	s.AddItem(item("b1", domain.FormatEbook, 1, 300))
	s.AddItem(item("b2", domain.FormatHardcover, 1, 900))

	items := s.Items()
	require.Len(t, items, 3)
	assert.Equal(t, domain.FormatHardcover, items[0].Format)
	assert.Equal(t, domain.FormatEbook, items[1].Format)
	assert.Equal(t, "b2", items[2].BookID)
}

func TestRemoveItem(t *testing.T) {
	s := New(Key("s1"), nil, nil)
	s.AddItem(item("b1", domain.FormatHardcover, 1, 1000))
	s.AddItem(item("b1", domain.FormatEbook, 2, 300))

	s.RemoveItem("b1", domain.FormatAudiobook)
	assert.Len(t, s.Items(), 2, "removing an absent key is a no-op")

	s.RemoveItem("b1", domain.FormatHardcover)
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, domain.FormatEbook, items[0].Format)
}

func TestUpdateQuantity(t *testing.T) {
	s := New(Key("s1"), nil, nil)
	s.AddItem(item("b1", domain.FormatPaperback, 1, 800))

	s.UpdateQuantity("b1", domain.FormatPaperback, 5)
	s.UpdateQuantity("missing", domain.FormatPaperback, 9)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)

	s.UpdateQuantity("b1", domain.FormatPaperback, 0)
	assert.Equal(t, 0, s.Items()[0].Quantity, "the store does not validate quantity")
}

func TestClearCart(t *testing.T) {
	s := New(Key("s1"), nil, nil)
	s.AddItem(item("b1", domain.FormatPaperback, 1, 800))
	s.ClearCart()
	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.TotalItems())
	assert.True(t, s.TotalPrice().IsZero())
}

func TestTotals(t *testing.T) {
	s := New(Key("s1"), nil, nil)
	s.AddItem(item("b1", domain.FormatHardcover, 2, 1000))
	s.AddItem(item("b2", domain.FormatEbook, 3, 300))
	s.AddItem(domain.CartItem{BookID: "b3", Format: domain.FormatAudiobook, Quantity: 1, Price: decimal.RequireFromString("249.50")})

	assert.Equal(t, 6, s.TotalItems())
	assert.Equal(t, "3149.5", s.TotalPrice().String())
}

func TestRandomOperationsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := New(Key("s1"), nil, nil)
	books := []string{"b1", "b2", "b3"}

	for step := 0; step < 500; step++ {
		bookID := books[rng.Intn(len(books))]
		format := domain.Formats[rng.Intn(len(domain.Formats))]
		switch rng.Intn(5) {
		case 0, 1:
			s.AddItem(item(bookID, format, 1+rng.Intn(3), int64(100*(1+rng.Intn(10)))))
		case 2:
			s.RemoveItem(bookID, format)
		case 3:
			s.UpdateQuantity(bookID, format, 1+rng.Intn(5))
		case 4:
			if rng.Intn(20) == 0 {
				s.ClearCart()
			}
		}

		items := s.Items()
		seen := map[domain.CartKey]bool{}
		wantItems := 0
		wantPrice := decimal.Zero
		for _, it := range items {
			require.False(t, seen[it.Key()], "duplicate key %v at step %d", it.Key(), step)
			seen[it.Key()] = true
			wantItems += it.Quantity
			wantPrice = wantPrice.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
		require.Equal(t, wantItems, s.TotalItems())
		require.True(t, wantPrice.Equal(s.TotalPrice()))
	}
}

type recordingPersister struct {
	keys      []string
	snapshots []string
	err       error
}

func (r *recordingPersister) Enqueue(key string, data []byte) *persist.Result {
	r.keys = append(r.keys, key)
	r.snapshots = append(r.snapshots, string(data))
	return persist.Completed(r.err)
}

func TestEveryMutationPersistsFullSnapshot(t *testing.T) {
	p := &recordingPersister{}
	s := New(Key("s1"), p, nil)

	s.AddItem(item("b1", domain.FormatPaperback, 1, 800))
	s.AddItem(item("b2", domain.FormatEbook, 1, 300))
	s.UpdateQuantity("b1", domain.FormatPaperback, 3)
	s.RemoveItem("b2", domain.FormatEbook)
	s.ClearCart()

	require.Len(t, p.snapshots, 5)
	for _, k := range p.keys {
		assert.Equal(t, "cart-storage:s1", k)
	}
	assert.JSONEq(t, `{"items":[{"bookId":"b1","format":"paperback","quantity":1,"price":"800"},{"bookId":"b2","format":"ebook","quantity":1,"price":"300"}]}`, p.snapshots[1])
	assert.JSONEq(t, `{"items":[{"bookId":"b1","format":"paperback","quantity":3,"price":"800"}]}`, p.snapshots[3])
	assert.JSONEq(t, `{"items":[]}`, p.snapshots[4])
}

func TestPersistenceFailureIsOnlyVisibleToWaiters(t *testing.T) {
	p := &recordingPersister{err: errors.New("redis down")}
	s := New(Key("s1"), p, nil)

	res := s.AddItem(item("b1", domain.FormatPaperback, 1, 800))
	assert.Len(t, s.Items(), 1, "state changes regardless of persistence")
	assert.EqualError(t, res.Wait(context.Background()), "redis down")
}

func TestLoad_RehydratesThroughWriter(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	w := persist.NewWriter(kv, nil, time.Second)
	w.Start()
	defer w.Close()

	s, err := Load(ctx, kv, Key("s1"), w, nil)
	require.NoError(t, err)
	assert.Empty(t, s.Items())

	s.AddItem(item("b1", domain.FormatPaperback, 2, 800))
	res := s.AddItem(item("b2", domain.FormatEbook, 1, 300))
	require.NoError(t, res.Wait(ctx))

	again, err := Load(ctx, kv, Key("s1"), w, nil)
	require.NoError(t, err)
	assert.Equal(t, s.Items(), again.Items())
	assert.Equal(t, 3, again.TotalItems())
}

func TestLoad_UnreadableSnapshotStartsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	require.NoError(t, kv.Save(ctx, Key("s1"), []byte("not json")))

	s, err := Load(ctx, kv, Key("s1"), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, s.Items())
}

func TestLoad_MergesDuplicateEntries(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	raw, err := json.Marshal(snapshot{Items: []domain.CartItem{
		item("b1", domain.FormatPaperback, 1, 800),
		item("b1", domain.FormatPaperback, 2, 800),
	}})
	require.NoError(t, err)
	require.NoError(t, kv.Save(ctx, Key("s1"), raw))

	s, err := Load(ctx, kv, Key("s1"), nil, nil)
	require.NoError(t, err)
	require.Len(t, s.Items(), 1)
	assert.Equal(t, 3, s.TotalItems())
}
