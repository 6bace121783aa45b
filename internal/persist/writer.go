// Package persist writes store snapshots to a kvstore in the background.
//
// Enqueue never blocks. Snapshots are full copies of a collection, so when a
// key already has a write waiting, the newer snapshot replaces it and both
// callers are answered by the single write that follows.
package persist

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"bookstore-storefront/internal/kvstore"
)

// ErrClosed is reported for snapshots enqueued after Close.
var ErrClosed = errors.New("persist: writer closed")

// Result is the outcome of one enqueued snapshot.
type Result struct {
	done chan struct{}
	err  error
}

func newResult() *Result {
	return &Result{done: make(chan struct{})}
}

// Completed returns a Result that has already finished with err.
func Completed(err error) *Result {
	r := newResult()
	r.finish(err)
	return r
}

func (r *Result) finish(err error) {
	r.err = err
	close(r.done)
}

// Done is closed once the snapshot has been written or has failed.
func (r *Result) Done() <-chan struct{} {
	return r.done
}

// Err returns the write error. It is only meaningful after Done is closed.
func (r *Result) Err() error {
	select {
	case <-r.done:
		return r.err
	default:
		return nil
	}
}

// Wait blocks until the write completes or ctx ends.
func (r *Result) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

type pendingWrite struct {
	data    []byte
	waiters []*Result
}

// Writer serialises snapshot writes to a kvstore.Store.
type Writer struct {
	kv      kvstore.Store
	logger  *log.Logger
	timeout time.Duration

	mu      sync.Mutex
	pending map[string]*pendingWrite
	order   []string
	started bool
	closed  bool

	wake    chan struct{}
	closeCh chan struct{}
	doneCh  chan struct{}
}

// NewWriter builds a writer; call Start before enqueueing.
func NewWriter(kv kvstore.Store, logger *log.Logger, timeout time.Duration) *Writer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Writer{
		kv:      kv,
		logger:  logger,
		timeout: timeout,
		pending: make(map[string]*pendingWrite),
		wake:    make(chan struct{}, 1),
		closeCh: make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// Start runs the write loop until Close is called; pending snapshots are
// flushed before the loop exits.
func (w *Writer) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started || w.closed {
		return
	}
	w.started = true
	go w.loop()
}

// Enqueue schedules data to be saved under key.
func (w *Writer) Enqueue(key string, data []byte) *Result {
	res := newResult()

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		res.finish(ErrClosed)
		return res
	}
	if p, ok := w.pending[key]; ok {
		p.data = data
		p.waiters = append(p.waiters, res)
	} else {
		w.pending[key] = &pendingWrite{data: data, waiters: []*Result{res}}
		w.order = append(w.order, key)
	}
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
	return res
}

// Close stops accepting snapshots and waits for queued ones to be written.
// A writer that was never started flushes its queue on the calling goroutine.
func (w *Writer) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.doneCh
		return
	}
	w.closed = true
	started := w.started
	w.mu.Unlock()

	if !started {
		w.drain()
		close(w.doneCh)
		return
	}
	close(w.closeCh)
	<-w.doneCh
}

func (w *Writer) loop() {
	defer close(w.doneCh)
	for {
		select {
		case <-w.wake:
			w.drain()
		case <-w.closeCh:
			w.drain()
			return
		}
	}
}

func (w *Writer) drain() {
	for {
		key, p, ok := w.next()
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
		err := w.kv.Save(ctx, key, p.data)
		cancel()
		if err != nil {
			w.logger.Printf("persist: save key=%s bytes=%d error=%v", key, len(p.data), err)
		}
		for _, res := range p.waiters {
			res.finish(err)
		}
	}
}

func (w *Writer) next() (string, *pendingWrite, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.order) == 0 {
		return "", nil, false
	}
	key := w.order[0]
	w.order = w.order[1:]
	p := w.pending[key]
	delete(w.pending, key)
	return key, p, true
}
