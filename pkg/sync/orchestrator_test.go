package sync

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/twoem/whiz-pos-apk/pkg/kv"
	"github.com/twoem/whiz-pos-apk/pkg/model"
	"github.com/twoem/whiz-pos-apk/pkg/state"
	"github.com/twoem/whiz-pos-apk/pkg/transport"
)

// fakeTransport scripts push/pull outcomes and records what was pushed.
type fakeTransport struct {
	mu       sync.Mutex
	pushErr  error
	pushResp transport.PushResult
	pullErr  error
	pullResp *transport.PullResponse
	pushed   [][]model.Operation

	pushEntered chan struct{} // closed once Push is reached
	pushGate    chan struct{} // when set, Push blocks until the gate closes
}

func (f *fakeTransport) CheckConnection(ctx context.Context) error {
	return nil
}

func (f *fakeTransport) Push(ctx context.Context, queue []model.Operation) (transport.PushResult, error) {
	if f.pushEntered != nil {
		close(f.pushEntered)
		f.pushEntered = nil
	}
	if f.pushGate != nil {
		<-f.pushGate
	}
	f.mu.Lock()
	f.pushed = append(f.pushed, queue)
	f.mu.Unlock()
	return f.pushResp, f.pushErr
}

func (f *fakeTransport) Pull(ctx context.Context) (*transport.PullResponse, error) {
	if f.pullErr != nil {
		return nil, f.pullErr
	}
	return f.pullResp, nil
}

func (f *fakeTransport) pushCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pushed)
}

func connectedStore() *state.Store {
	s := state.New()
	url := "http://192.168.0.2:3000"
	connected := true
	s.SetConnection(model.ConnectionPatch{APIURL: &url, IsConnected: &connected})
	return s
}

func TestTickEndToEnd(t *testing.T) {
	s := connectedStore()
	tx := model.Transaction{ID: "T1", Total: decimal.NewFromInt(500), PaymentMethod: model.PayCash, Status: model.StatusCompleted}
	s.AddTransaction(tx)
	s.AddToSyncQueue(model.NewTransactionOp(tx))

	ft := &fakeTransport{
		pushResp: transport.PushResult{Success: true},
		pullResp: &transport.PullResponse{Transactions: []model.Transaction{tx}},
	}
	o := New(s, ft)

	o.Tick(context.Background())

	if s.QueueLen() != 0 {
		t.Errorf("queue length = %d, want 0 after acked cycle", s.QueueLen())
	}
	txs := s.Transactions()
	if len(txs) != 1 || txs[0].ID != "T1" {
		t.Errorf("transactions = %v, want exactly one T1", txs)
	}
	if ft.pushCount() != 1 {
		t.Errorf("pushes = %d, want 1", ft.pushCount())
	}
}

func TestTickPushOkPullFails(t *testing.T) {
	s := connectedStore()
	tx := model.Transaction{ID: "T1"}
	s.AddTransaction(tx)
	s.AddToSyncQueue(model.NewTransactionOp(tx))

	ft := &fakeTransport{
		pushResp: transport.PushResult{Success: true},
		pullErr:  errors.New("boom"),
	}
	New(s, ft).Tick(context.Background())

	// A failed pull ends the tick before removal: the pushed item stays
	// queued for the next cycle and local collections are untouched.
	if s.QueueLen() != 1 {
		t.Errorf("queue length = %d, want 1", s.QueueLen())
	}
	if txs := s.Transactions(); len(txs) != 1 || txs[0].ID != "T1" {
		t.Errorf("transactions = %v, must be unchanged", txs)
	}
}

func TestTickPushFailsPullProceeds(t *testing.T) {
	s := connectedStore()
	s.AddToSyncQueue(model.NewTransactionOp(model.Transaction{ID: "T1"}))

	ft := &fakeTransport{
		pushErr:  errors.New("timeout"),
		pullResp: &transport.PullResponse{Products: []model.Product{{ID: "P1", Category: "A"}}},
	}
	New(s, ft).Tick(context.Background())

	// Push failure must not block the pull, and must not ack anything.
	if len(s.Products()) != 1 {
		t.Error("pull result was not applied after a push failure")
	}
	if s.QueueLen() != 1 {
		t.Error("failed push must keep the queue")
	}
}

func TestTickPushRejected(t *testing.T) {
	s := connectedStore()
	s.AddToSyncQueue(model.NewTransactionOp(model.Transaction{ID: "T1"}))

	ft := &fakeTransport{
		pushResp: transport.PushResult{Success: false, Message: "bad key"},
		pullResp: &transport.PullResponse{},
	}
	New(s, ft).Tick(context.Background())

	if s.QueueLen() != 1 {
		t.Error("rejected push must keep the queue")
	}
}

func TestTickInertWhenDisconnected(t *testing.T) {
	s := state.New() // no url, not connected
	s.AddToSyncQueue(model.NewTransactionOp(model.Transaction{ID: "T1"}))

	ft := &fakeTransport{pullResp: &transport.PullResponse{}}
	New(s, ft).Tick(context.Background())

	if ft.pushCount() != 0 {
		t.Error("disconnected terminal must not touch the network")
	}
}

func TestTickOmittedCollectionsLeaveStateAlone(t *testing.T) {
	s := connectedStore()
	s.SetProducts([]model.Product{{ID: "P1", Category: "A"}})

	ft := &fakeTransport{pullResp: &transport.PullResponse{Users: []model.User{{ID: "U1"}}}}
	New(s, ft).Tick(context.Background())

	if len(s.Products()) != 1 {
		t.Error("omitted products collection must not clear local products")
	}
	if len(s.Users()) != 1 {
		t.Error("present users collection must be applied")
	}
}

func TestTickOverlapGuard(t *testing.T) {
	s := connectedStore()
	s.AddToSyncQueue(model.NewTransactionOp(model.Transaction{ID: "T1"}))

	entered := make(chan struct{})
	gate := make(chan struct{})
	ft := &fakeTransport{
		pushEntered: entered,
		pushGate:    gate,
		pushResp:    transport.PushResult{Success: true},
		pullResp:    &transport.PullResponse{},
	}
	o := New(s, ft)

	done := make(chan struct{})
	go func() {
		o.Tick(context.Background())
		close(done)
	}()
	<-entered

	// Second tick arrives while the first is blocked in Push: skipped.
	o.Tick(context.Background())
	if o.TicksSkipped() != 1 {
		t.Errorf("skipped = %d, want 1", o.TicksSkipped())
	}

	close(gate)
	<-done

	if ft.pushCount() != 1 {
		t.Errorf("pushes = %d, overlapping ticks must not double-push", ft.pushCount())
	}
}

func TestTickPersistsSnapshot(t *testing.T) {
	s := connectedStore()
	store := kv.NewMemoryStore()

	ft := &fakeTransport{pullResp: &transport.PullResponse{Products: []model.Product{{ID: "P1", Category: "A"}}}}
	New(s, ft, WithSnapshotStore(store)).Tick(context.Background())

	restored := state.New()
	if err := restored.Load(store); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(restored.Products()) != 1 {
		t.Error("reconciled state was not persisted")
	}
}

func TestSyncNow(t *testing.T) {
	s := connectedStore()
	s.AddToSyncQueue(model.NewTransactionOp(model.Transaction{ID: "T1"}))

	ft := &fakeTransport{pushResp: transport.PushResult{Success: true}}
	o := New(s, ft)

	if err := o.SyncNow(context.Background()); err != nil {
		t.Fatalf("SyncNow failed: %v", err)
	}
	if s.QueueLen() != 0 {
		t.Error("manual sync must remove accepted items")
	}

	// Rejection keeps the queue and reports it.
	s.AddToSyncQueue(model.NewTransactionOp(model.Transaction{ID: "T2"}))
	ft.pushResp = transport.PushResult{Success: false}
	if err := o.SyncNow(context.Background()); !errors.Is(err, ErrPushRejected) {
		t.Errorf("err = %v, want ErrPushRejected", err)
	}
	if s.QueueLen() != 1 {
		t.Error("rejected manual sync must keep the queue")
	}
}

func TestConnectFlow(t *testing.T) {
	s := state.New()
	ft := &fakeTransport{pullResp: &transport.PullResponse{
		Products:   []model.Product{{ID: "P1", Category: "A"}},
		Categories: []string{"A", "Z"},
		Users:      []model.User{{ID: "U1"}},
	}}
	o := New(s, ft)

	if err := o.Connect(context.Background(), "  192.168.0.2:3000/ ", "key "); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	conn := s.Connection()
	if conn.APIURL != "http://192.168.0.2:3000" {
		t.Errorf("url = %q", conn.APIURL)
	}
	if conn.APIKey != "key" {
		t.Errorf("key = %q", conn.APIKey)
	}
	if !conn.IsConnected {
		t.Error("successful probe must mark the terminal connected")
	}
	if len(s.Products()) != 1 || len(s.Users()) != 1 {
		t.Error("initial pull was not applied")
	}
	// A server-provided category list overrides the derived one.
	if got := s.Categories(); len(got) != 2 || got[1] != "Z" {
		t.Errorf("categories = %v", got)
	}
}

func TestConnectInitialPullFailureIsNotFatal(t *testing.T) {
	s := state.New()
	ft := &fakeTransport{pullErr: errors.New("boom")}

	if err := New(s, ft).Connect(context.Background(), "192.168.0.2:3000", "k"); err != nil {
		t.Fatalf("Connect must tolerate a failed initial pull, got %v", err)
	}
	if !s.Connection().IsConnected {
		t.Error("connection succeeded, flag must be set")
	}
}

func TestNormalizeURL(t *testing.T) {
	cases := map[string]string{
		"192.168.0.2:3000":          "http://192.168.0.2:3000",
		"http://host:3000/":         "http://host:3000",
		"https://pos.example.com":   "https://pos.example.com",
		"  host.local:8080/  ":      "http://host.local:8080",
		"":                          "",
	}
	for in, want := range cases {
		if got := NormalizeURL(in); got != want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", in, got, want)
		}
	}
}
