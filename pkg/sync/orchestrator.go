// Package sync drives the background push/pull/reconcile loop against
// the desktop backend.
package sync

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/twoem/whiz-pos-apk/pkg/kv"
	"github.com/twoem/whiz-pos-apk/pkg/model"
	"github.com/twoem/whiz-pos-apk/pkg/state"
	"github.com/twoem/whiz-pos-apk/pkg/transport"
)

const defaultInterval = 10 * time.Second

// Transport is the slice of the HTTP client the loop needs.
type Transport interface {
	CheckConnection(ctx context.Context) error
	Pull(ctx context.Context) (*transport.PullResponse, error)
	Push(ctx context.Context, queue []model.Operation) (transport.PushResult, error)
}

// Orchestrator runs the periodic sync cycle. Each tick is
// push -> pull -> merge -> remove acknowledged queue items, in that
// order; removal before the pull would let the merge treat a
// just-pushed record as gone instead of pending.
type Orchestrator struct {
	store  *state.Store
	client Transport
	snap   kv.Store // optional; snapshot persisted after each reconcile
	log    *zap.SugaredLogger

	interval time.Duration
	syncing  atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	ticksSkipped atomic.Uint64
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithInterval overrides the tick interval.
func WithInterval(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(o *Orchestrator) {
		o.log = log
	}
}

// WithSnapshotStore persists the state snapshot after every successful
// reconcile.
func WithSnapshotStore(store kv.Store) Option {
	return func(o *Orchestrator) {
		o.snap = store
	}
}

// New creates an orchestrator over the given store and transport.
func New(store *state.Store, client Transport, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:    store,
		client:   client,
		interval: defaultInterval,
		log:      zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Start launches the loop. It is a no-op if already running.
func (o *Orchestrator) Start(ctx context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancel != nil {
		return
	}
	ctx, o.cancel = context.WithCancel(ctx)

	ticker := time.NewTicker(o.interval)
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				o.Tick(ctx)
			}
		}
	}()

	o.log.Infow("sync loop started", "interval", o.interval)
}

// Stop tears the loop down and waits for an in-flight tick to settle.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	cancel := o.cancel
	o.cancel = nil
	o.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	o.wg.Wait()
	o.log.Infow("sync loop stopped")
}

// Tick runs one sync cycle. The loop is inert while the terminal is not
// connected or has no endpoint, and a tick is skipped outright while a
// previous one is still in flight.
func (o *Orchestrator) Tick(ctx context.Context) {
	conn := o.store.Connection()
	if !conn.IsConnected || conn.APIURL == "" {
		return
	}
	if !o.syncing.CompareAndSwap(false, true) {
		o.ticksSkipped.Add(1)
		o.log.Debugw("tick skipped, previous cycle still running")
		return
	}
	defer o.syncing.Store(false)

	// Snapshot the queue; items enqueued mid-cycle stay for next tick.
	queue := o.store.Queue()

	var pendingAck []model.Operation
	if len(queue) > 0 {
		result, err := o.client.Push(ctx, queue)
		switch {
		case err != nil:
			// A failed push must not block an opportunistic pull.
			o.log.Warnw("sync push failed", "queued", len(queue), "error", err)
		case result.Success:
			pendingAck = queue
			o.log.Infow("sync push accepted", "operations", len(queue))
		default:
			o.log.Warnw("sync push rejected", "message", result.Message)
		}
	}

	data, err := o.client.Pull(ctx)
	if err != nil {
		// Queue stays untouched: a failed pull is not a failed push,
		// but acknowledged items are only removed after a merge.
		o.log.Warnw("sync pull failed", "error", err)
		return
	}
	o.apply(data)

	if len(pendingAck) > 0 {
		o.store.RemoveSyncedItems(pendingAck)
	}

	o.persist()
}

// apply feeds each returned collection to its merge entry point.
// Omitted collections leave local state alone.
func (o *Orchestrator) apply(data *transport.PullResponse) {
	if data == nil {
		return
	}
	if data.Products != nil {
		o.store.SetProducts(data.Products)
	}
	if data.Users != nil {
		o.store.SetUsers(data.Users)
	}
	if data.Expenses != nil {
		o.store.SetExpenses(data.Expenses)
	}
	if data.Salaries != nil {
		o.store.SetSalaries(data.Salaries)
	}
	if data.CreditCustomers != nil {
		o.store.SetCreditCustomers(data.CreditCustomers)
	}
	if data.Transactions != nil {
		o.store.SetTransactions(data.Transactions)
	}
}

func (o *Orchestrator) persist() {
	if o.snap == nil {
		return
	}
	if err := o.store.Save(o.snap); err != nil {
		o.log.Warnw("snapshot save failed", "error", err)
	}
}

// SyncNow pushes the current queue immediately and removes it on
// acceptance. This is the manual "sync pending" action; the periodic
// cycle remains the path that merges pulls.
func (o *Orchestrator) SyncNow(ctx context.Context) error {
	queue := o.store.Queue()
	if len(queue) == 0 {
		return nil
	}
	result, err := o.client.Push(ctx, queue)
	if err != nil {
		return err
	}
	if !result.Success {
		return ErrPushRejected
	}
	o.store.RemoveSyncedItems(queue)
	o.persist()
	return nil
}

// TicksSkipped reports how many ticks the overlap guard suppressed.
func (o *Orchestrator) TicksSkipped() uint64 {
	return o.ticksSkipped.Load()
}

// Connect runs the operator-facing connect flow: normalize the URL,
// store the endpoint, probe it, then mark the terminal connected and
// attempt a best-effort initial pull. The settings keep IsConnected
// false when the probe fails, and the probe's error is surfaced to the
// operator verbatim.
func (o *Orchestrator) Connect(ctx context.Context, rawURL, apiKey string) error {
	url := NormalizeURL(rawURL)
	key := strings.TrimSpace(apiKey)
	disconnected := false
	o.store.SetConnection(model.ConnectionPatch{APIURL: &url, APIKey: &key, IsConnected: &disconnected})

	if err := o.client.CheckConnection(ctx); err != nil {
		return err
	}

	connected := true
	o.store.SetConnection(model.ConnectionPatch{IsConnected: &connected})
	o.log.Infow("connected", "url", url)

	// Connection is good even if the first pull is not; don't block
	// login on it.
	data, err := o.client.Pull(ctx)
	if err != nil {
		o.log.Warnw("initial sync failed after connect", "error", err)
	} else {
		if data.Products != nil {
			o.store.SetProducts(data.Products)
		}
		if data.Categories != nil {
			o.store.SetCategories(data.Categories)
		}
		if data.Users != nil {
			o.store.SetUsers(data.Users)
		}
	}

	o.persist()
	return nil
}

// NormalizeURL trims the input, defaults the scheme to http and strips
// a trailing slash.
func NormalizeURL(raw string) string {
	url := strings.TrimSpace(raw)
	if url == "" {
		return ""
	}
	if !strings.HasPrefix(url, "http") {
		url = "http://" + url
	}
	return strings.TrimSuffix(url, "/")
}
