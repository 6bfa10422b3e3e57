// Package spool implements printing.Printer on top of a spool directory.
// A single worker goroutine drains a bounded queue and writes each document
// to disk, where the print daemon or a share watcher picks it up.
package spool

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"clinic-dispense/internal/platform/metrics"
	"clinic-dispense/internal/ports/printing"

	"go.uber.org/zap"
)

const defaultQueueSize = 32

var (
	ErrNotConnected = errors.New("spool printer not connected")
	ErrQueueFull    = errors.New("print queue full")
	ErrClosed       = errors.New("spool printer closed")
)

type Options struct {
	QueueSize int
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
}

type Spooler struct {
	dir     string
	metrics *metrics.Metrics
	log     *zap.Logger
	now     func() time.Time

	mu        sync.Mutex
	queue     chan job
	connected bool
	closed    bool
	drained   chan struct{}
}

type job struct {
	name string
	doc  []byte
	done chan error
}

type ticket struct {
	done chan error
}

func (t ticket) Done() <-chan error { return t.done }

func New(dir string, opts Options) *Spooler {
	size := opts.QueueSize
	if size <= 0 {
		size = defaultQueueSize
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Spooler{
		dir:     dir,
		metrics: opts.Metrics,
		log:     log,
		now:     time.Now,
		queue:   make(chan job, size),
		drained: make(chan struct{}),
	}
}

// Connect prepares the spool directory and starts the worker. The probe
// write surfaces a read-only mount now instead of on the first label.
func (s *Spooler) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.connected {
		return nil
	}
	if s.dir == "" {
		return fmt.Errorf("spool: directory not configured")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("spool: create %s: %w", s.dir, err)
	}
	probe, err := os.CreateTemp(s.dir, ".probe-*")
	if err != nil {
		return fmt.Errorf("spool: %s not writable: %w", s.dir, err)
	}
	probe.Close()
	os.Remove(probe.Name())

	s.connected = true
	go s.work()
	s.log.Info("spool printer connected", zap.String("dir", s.dir))
	return nil
}

// Submit enqueues a document and returns immediately. The ticket resolves
// once the file is on disk. A full queue rejects rather than blocks so the
// request path never stalls behind a slow disk.
func (s *Spooler) Submit(ctx context.Context, name string, doc []byte) (printing.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	if !s.connected {
		return nil, ErrNotConnected
	}
	j := job{name: name, doc: doc, done: make(chan error, 1)}
	select {
	case s.queue <- j:
		s.metrics.SetPrintQueueDepth(len(s.queue))
		return ticket{done: j.done}, nil
	default:
		return nil, ErrQueueFull
	}
}

// Close stops accepting work and waits for queued documents to flush.
func (s *Spooler) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	wasConnected := s.connected
	close(s.queue)
	s.mu.Unlock()

	if wasConnected {
		<-s.drained
	}
	return nil
}

func (s *Spooler) work() {
	for j := range s.queue {
		err := s.write(j.name, j.doc)
		s.metrics.SetPrintQueueDepth(len(s.queue))
		if err != nil {
			s.log.Error("spool write failed", zap.String("name", j.name), zap.Error(err))
		} else {
			s.log.Debug("label spooled", zap.String("name", j.name), zap.Int("bytes", len(j.doc)))
		}
		j.done <- err
		close(j.done)
	}
	close(s.drained)
}

// write lands the document atomically: temp file first, then rename, so a
// watcher on the directory never reads a half-written PDF.
func (s *Spooler) write(name string, doc []byte) error {
	final := filepath.Join(s.dir, fmt.Sprintf("%s-%d.pdf", filepath.Base(name), s.now().UnixNano()))
	tmp, err := os.CreateTemp(s.dir, ".spool-*")
	if err != nil {
		return fmt.Errorf("spool temp: %w", err)
	}
	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("spool write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("spool close: %w", err)
	}
	if err := os.Rename(tmp.Name(), final); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("spool rename: %w", err)
	}
	return nil
}
