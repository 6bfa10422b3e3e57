// Package changefeed fans record mutations out to in-process subscribers.
// Adapters that mirror data elsewhere (replication, cache warmers) subscribe
// here instead of being called from every domain service directly.
package changefeed

import (
	"sync"
	"time"
)

// Op identifies what happened to the record.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Change describes one committed mutation. It carries identifiers only;
// subscribers that need the full record re-read it from storage.
type Change struct {
	Entity string
	ID     string
	Op     Op
	At     time.Time
}

// Handler receives changes. Publish calls handlers synchronously, so a
// handler that does slow work must hand it off to its own goroutine.
type Handler func(Change)

type Feed struct {
	mu   sync.RWMutex
	subs []Handler
}

func New() *Feed {
	return &Feed{}
}

func (f *Feed) Subscribe(h Handler) {
	if f == nil || h == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, h)
}

// Publish delivers c to every subscriber. A nil feed drops changes, which
// lets services publish unconditionally.
func (f *Feed) Publish(c Change) {
	if f == nil {
		return
	}
	f.mu.RLock()
	subs := make([]Handler, len(f.subs))
	copy(subs, f.subs)
	f.mu.RUnlock()

	for _, h := range subs {
		h(c)
	}
}
