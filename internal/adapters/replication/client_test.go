package replication

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/sony/gobreaker"

	"clinic-dispense/internal/platform/changefeed"
)

type peerServer struct {
	mu      sync.Mutex
	changes []changePayload
	fail    bool
}

func (p *peerServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(healthPath, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc(changesPath, func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.fail {
			http.Error(w, "peer unavailable", http.StatusInternalServerError)
			return
		}
		var in changePayload
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad payload", http.StatusBadRequest)
			return
		}
		p.changes = append(p.changes, in)
		w.WriteHeader(http.StatusAccepted)
	})
	return mux
}

func (p *peerServer) received() []changePayload {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]changePayload, len(p.changes))
	copy(out, p.changes)
	return out
}

func TestClient_DeliversChanges(t *testing.T) {
	peer := &peerServer{}
	ts := httptest.NewServer(peer.handler())
	defer ts.Close()

	c, err := New(ts.URL, Options{})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}

	at := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	err = c.RecordChanged(context.Background(), changefeed.Change{
		Entity: "dispense",
		ID:     "d1",
		Op:     changefeed.OpUpdate,
		At:     at,
	})
	if err != nil {
		t.Fatalf("record changed: %v", err)
	}

	// Close drains the queue before returning.
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	got := peer.received()
	if len(got) != 1 {
		t.Fatalf("expected 1 delivered change, got %d", len(got))
	}
	if got[0].Entity != "dispense" || got[0].ID != "d1" || got[0].Op != "update" {
		t.Fatalf("unexpected payload %+v", got[0])
	}
	if !got[0].At.Equal(at) {
		t.Fatalf("expected at %v, got %v", at, got[0].At)
	}
}

func TestClient_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	peer := &peerServer{fail: true}
	ts := httptest.NewServer(peer.handler())
	defer ts.Close()

	c, err := New(ts.URL, Options{})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	ch := changefeed.Change{Entity: "patient", ID: "p1", Op: changefeed.OpCreate, At: time.Now()}
	for i := 0; i < 5; i++ {
		if err := c.send(ch); err == nil {
			t.Fatalf("send %d: expected failure from peer", i)
		}
	}

	// Five straight failures trip the breaker; the next send never reaches
	// the peer.
	err = c.send(ch)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("expected open breaker, got %v", err)
	}
}

func TestClient_FullQueueDropsChange(t *testing.T) {
	peer := &peerServer{}
	ts := httptest.NewServer(peer.handler())
	defer ts.Close()

	c, err := New(ts.URL, Options{QueueSize: 1})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	// Worker not started, so the first change sits in the queue and the
	// second must be dropped without blocking or erroring.
	ctx := context.Background()
	if err := c.RecordChanged(ctx, changefeed.Change{Entity: "patient", ID: "p1"}); err != nil {
		t.Fatalf("first change: %v", err)
	}
	if err := c.RecordChanged(ctx, changefeed.Change{Entity: "patient", ID: "p2"}); err != nil {
		t.Fatalf("dropped change should not error: %v", err)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestClient_ClosedRejectsWork(t *testing.T) {
	peer := &peerServer{}
	ts := httptest.NewServer(peer.handler())
	defer ts.Close()

	c, err := New(ts.URL, Options{})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if err := c.RecordChanged(context.Background(), changefeed.Change{Entity: "patient", ID: "p1"}); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed on record, got %v", err)
	}
	if err := c.Connect(context.Background()); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed on connect, got %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestClient_RequiresPeerURL(t *testing.T) {
	if _, err := New("", Options{}); err == nil {
		t.Fatalf("expected error for missing peer url")
	}
	if _, err := New("::bad::", Options{}); err == nil {
		t.Fatalf("expected error for malformed peer url")
	}
}
