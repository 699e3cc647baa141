package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type flakyPublisher struct {
	mu       sync.Mutex
	failures int
	calls    int
	types    []string
	closed   bool
	block    chan struct{}
}

func (f *flakyPublisher) Publish(_ context.Context, eventType string, _ interface{}) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failures > 0 {
		f.failures--
		return errors.New("broker down")
	}
	f.types = append(f.types, eventType)
	return nil
}

func (f *flakyPublisher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func TestAsyncPublisherDeliversAndCloses(t *testing.T) {
	next := &flakyPublisher{}
	pub := NewAsyncPublisher(next, AsyncConfig{Workers: 2}, zap.NewNop())

	require.NoError(t, pub.Publish(context.Background(), CourseCreated, nil))
	require.NoError(t, pub.Publish(context.Background(), NoteCreated, nil))
	require.NoError(t, pub.Close())

	assert.ElementsMatch(t, []string{CourseCreated, NoteCreated}, next.types)
	assert.True(t, next.closed)
	assert.Error(t, pub.Publish(context.Background(), NoteCreated, nil))
	assert.NoError(t, pub.Close())
}

func TestAsyncPublisherRetries(t *testing.T) {
	next := &flakyPublisher{failures: 2}
	pub := NewAsyncPublisher(next, AsyncConfig{MaxRetries: 3, RetryDelay: time.Millisecond}, nil)

	require.NoError(t, pub.Publish(context.Background(), EnrollmentCreated, nil))
	require.NoError(t, pub.Close())

	assert.Equal(t, 3, next.calls)
	assert.Equal(t, []string{EnrollmentCreated}, next.types)
}

func TestAsyncPublisherGivesUp(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	next := &flakyPublisher{failures: 10}
	pub := NewAsyncPublisher(next, AsyncConfig{MaxRetries: 1, RetryDelay: time.Millisecond}, zap.New(core))

	require.NoError(t, pub.Publish(context.Background(), AssignmentCreated, nil))
	require.NoError(t, pub.Close())

	assert.Equal(t, 2, next.calls)
	assert.Empty(t, next.types)
	assert.Equal(t, 1, logs.FilterMessage("event dropped after retries").Len())
}

func TestAsyncPublisherQueueFull(t *testing.T) {
	next := &flakyPublisher{block: make(chan struct{})}
	pub := NewAsyncPublisher(next, AsyncConfig{Workers: 1, BufferSize: 1}, nil)

	var full bool
	for i := 0; i < 5; i++ {
		if errors.Is(pub.Publish(context.Background(), NoteCreated, nil), ErrQueueFull) {
			full = true
			break
		}
	}
	assert.True(t, full)

	close(next.block)
	require.NoError(t, pub.Close())
}

func TestAsyncPublisherHonoursCancelledContext(t *testing.T) {
	pub := NewAsyncPublisher(NopPublisher{}, AsyncConfig{}, nil)
	defer pub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, pub.Publish(ctx, NoteCreated, nil), context.Canceled)
}
