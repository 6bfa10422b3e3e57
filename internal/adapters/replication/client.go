// Package replication ships record changes to a peer practice server over
// HTTP. Delivery is asynchronous and best effort; a circuit breaker keeps a
// dead peer from tying up the worker with doomed requests.
package replication

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"clinic-dispense/internal/platform/changefeed"
	"clinic-dispense/internal/platform/httpclient"
	"clinic-dispense/internal/platform/metrics"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	defaultQueueSize = 256
	defaultTimeout   = 10 * time.Second
	changesPath      = "/v1/replication/changes"
	healthPath       = "/v1/replication/health"
)

var ErrClosed = errors.New("replication client closed")

type Options struct {
	Timeout   time.Duration
	QueueSize int
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
}

type Client struct {
	http    *httpclient.Client
	breaker *gobreaker.CircuitBreaker
	metrics *metrics.Metrics
	log     *zap.Logger

	mu      sync.Mutex
	queue   chan changefeed.Change
	started bool
	closed  bool
	drained chan struct{}
}

type changePayload struct {
	Entity string    `json:"entity"`
	ID     string    `json:"id"`
	Op     string    `json:"op"`
	At     time.Time `json:"at"`
}

func New(peerURL string, opts Options) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(peerURL, opts.Timeout)
	if err != nil {
		return nil, fmt.Errorf("replication: %w", err)
	}
	if hc.BaseURL == "" {
		return nil, errors.New("replication: peer url required")
	}
	size := opts.QueueSize
	if size <= 0 {
		size = defaultQueueSize
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	c := &Client{
		http:    hc,
		metrics: opts.Metrics,
		log:     log,
		queue:   make(chan changefeed.Change, size),
		drained: make(chan struct{}),
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "replication",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("replication breaker state change",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return c, nil
}

// Connect starts the delivery worker and pings the peer. A failed ping is
// reported but the worker runs anyway; the breaker takes over from there.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if !c.started {
		c.started = true
		go c.work()
	}
	c.mu.Unlock()

	if err := c.http.DoJSON(ctx, http.MethodGet, healthPath, nil, nil, nil); err != nil {
		return fmt.Errorf("replication: peer unreachable: %w", err)
	}
	return nil
}

// RecordChanged queues one change for delivery. A full queue drops the
// change; the peer reconciles on its next full pull.
func (c *Client) RecordChanged(ctx context.Context, ch changefeed.Change) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	select {
	case c.queue <- ch:
		return nil
	default:
		c.metrics.IncReplicationFailures()
		c.log.Warn("replication queue full, change dropped",
			zap.String("entity", ch.Entity),
			zap.String("id", ch.ID),
		)
		return nil
	}
}

func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	wasStarted := c.started
	close(c.queue)
	c.mu.Unlock()

	if wasStarted {
		<-c.drained
	}
	return nil
}

func (c *Client) work() {
	for ch := range c.queue {
		if err := c.send(ch); err != nil {
			c.metrics.IncReplicationFailures()
			c.log.Warn("replication send failed",
				zap.String("entity", ch.Entity),
				zap.String("id", ch.ID),
				zap.Error(err),
			)
		}
	}
	close(c.drained)
}

func (c *Client) send(ch changefeed.Change) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	payload := changePayload{
		Entity: ch.Entity,
		ID:     ch.ID,
		Op:     string(ch.Op),
		At:     ch.At,
	}
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.http.DoJSON(ctx, http.MethodPost, changesPath, nil, payload, nil)
	})
	return err
}
