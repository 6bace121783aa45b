package persist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"bookstore-storefront/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gatedStore struct {
	mu      sync.Mutex
	saves   []string
	entered chan struct{}
	release chan struct{}
	err     error
}

func newGatedStore() *gatedStore {
	return &gatedStore{entered: make(chan struct{}, 16), release: make(chan struct{})}
}

func (g *gatedStore) Load(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (g *gatedStore) Save(_ context.Context, key string, data []byte) error {
	g.entered <- struct{}{}
	<-g.release
	g.mu.Lock()
	defer g.mu.Unlock()
	g.saves = append(g.saves, key+"="+string(data))
	return g.err
}

func (g *gatedStore) recorded() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.saves...)
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestWriter_SavesSnapshot(t *testing.T) {
	kv := kvstore.NewMemory()
	w := NewWriter(kv, nil, time.Second)
	w.Start()
	defer w.Close()

	res := w.Enqueue("cart-storage:s1", []byte(`{"items":[]}`))
	require.NoError(t, res.Wait(waitCtx(t)))

	data, ok, err := kv.Load(context.Background(), "cart-storage:s1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"items":[]}`, string(data))
}

func TestWriter_CoalescesQueuedSnapshotsForSameKey(t *testing.T) {
	kv := newGatedStore()
	w := NewWriter(kv, nil, time.Second)
	w.Start()

	first := w.Enqueue("k", []byte("v1"))
	<-kv.entered // writer is now blocked inside Save(v1)

	second := w.Enqueue("k", []byte("v2"))
	third := w.Enqueue("k", []byte("v3"))
	other := w.Enqueue("j", []byte("x"))

	select {
	case <-second.Done():
		t.Fatalf("second snapshot finished before the first write was released")
	default:
	}

	close(kv.release)
	ctx := waitCtx(t)
	require.NoError(t, first.Wait(ctx))
	require.NoError(t, second.Wait(ctx))
	require.NoError(t, third.Wait(ctx))
	require.NoError(t, other.Wait(ctx))
	w.Close()

	assert.Equal(t, []string{"k=v1", "k=v3", "j=x"}, kv.recorded())
}

func TestWriter_ReportsSaveErrorsToWaiters(t *testing.T) {
	kv := newGatedStore()
	kv.err = errors.New("disk full")
	close(kv.release)
	w := NewWriter(kv, nil, time.Second)
	w.Start()
	defer w.Close()

	res := w.Enqueue("k", []byte("v"))
	err := res.Wait(waitCtx(t))
	assert.EqualError(t, err, "disk full")
	assert.EqualError(t, res.Err(), "disk full")
}

func TestWriter_CloseFlushesAndRejectsLateWrites(t *testing.T) {
	kv := kvstore.NewMemory()
	w := NewWriter(kv, nil, time.Second)
	w.Start()

	res := w.Enqueue("k", []byte("v"))
	w.Close()

	select {
	case <-res.Done():
	default:
		t.Fatalf("expected pending write to be flushed by Close")
	}
	assert.NoError(t, res.Err())

	late := w.Enqueue("k", []byte("late"))
	assert.ErrorIs(t, late.Wait(waitCtx(t)), ErrClosed)
	w.Close()
}

func TestWriter_CloseWithoutStartFlushesAndReturns(t *testing.T) {
	kv := kvstore.NewMemory()
	w := NewWriter(kv, nil, time.Second)
	res := w.Enqueue("k", []byte(`{"items":[]}`))

	closed := make(chan struct{})
	go func() {
		w.Close()
		w.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatalf("Close blocked on a writer that was never started")
	}

	require.NoError(t, res.Wait(waitCtx(t)))
	data, ok, err := kv.Load(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"items":[]}`, string(data))

	w.Start()
	assert.ErrorIs(t, w.Enqueue("k", nil).Wait(waitCtx(t)), ErrClosed)
}

func TestResult_WaitHonoursContext(t *testing.T) {
	res := newResult()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, res.Wait(ctx), context.Canceled)
	assert.NoError(t, res.Err())

	done := Completed(nil)
	assert.NoError(t, done.Wait(context.Background()))
}
