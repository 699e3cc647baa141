package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrQueueFull is returned when the async buffer cannot take another event.
var ErrQueueFull = errors.New("event queue full")

// AsyncConfig tunes the background dispatch pool.
type AsyncConfig struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
}

type pendingEvent struct {
	eventType string
	data      interface{}
	attempt   int
}

// AsyncPublisher hands events to a pool of workers so request handlers never
// wait on the broker. Failed publishes are retried with a fixed delay.
type AsyncPublisher struct {
	next   Publisher
	logger *zap.Logger

	maxRetries int
	retryDelay time.Duration

	queue  chan pendingEvent
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// NewAsyncPublisher starts the workers immediately. Close stops them after the
// buffer is drained and then closes next.
func NewAsyncPublisher(next Publisher, cfg AsyncConfig, logger *zap.Logger) *AsyncPublisher {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 64
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 500 * time.Millisecond
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &AsyncPublisher{
		next:       next,
		logger:     logger,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		queue:      make(chan pendingEvent, cfg.BufferSize),
		ctx:        ctx,
		cancel:     cancel,
	}
	for i := 0; i < cfg.Workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Publish enqueues the event without blocking.
func (p *AsyncPublisher) Publish(ctx context.Context, eventType string, data interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return errors.New("event publisher closed")
	}
	select {
	case p.queue <- pendingEvent{eventType: eventType, data: data}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close flushes queued events, stops the workers and closes the wrapped publisher.
func (p *AsyncPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
	p.cancel()
	return p.next.Close()
}

func (p *AsyncPublisher) worker() {
	defer p.wg.Done()
	for event := range p.queue {
		p.deliver(event)
	}
}

func (p *AsyncPublisher) deliver(event pendingEvent) {
	for {
		err := p.next.Publish(p.ctx, event.eventType, event.data)
		if err == nil {
			return
		}
		if event.attempt >= p.maxRetries {
			p.logger.Error("event dropped after retries", zap.String("type", event.eventType), zap.Int("attempts", event.attempt+1), zap.Error(err))
			return
		}
		event.attempt++
		p.logger.Warn("event publish failed, retrying", zap.String("type", event.eventType), zap.Int("attempt", event.attempt), zap.Error(err))

		timer := time.NewTimer(p.retryDelay)
		select {
		case <-p.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}
