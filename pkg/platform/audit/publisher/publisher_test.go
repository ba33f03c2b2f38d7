package publisher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "unitconv/pkg/platform/audit"
	"unitconv/pkg/platform/audit/store/memory"
	"unitconv/pkg/platform/sentinel"
	"unitconv/pkg/requestcontext"
)

func conversion(input string) audit.Event {
	return audit.Event{Action: audit.EventConversionPerformed, Dimension: "length", Input: input}
}

func TestPublisher_SyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	err := pub.Emit(context.Background(), conversion("10mm"))
	require.NoError(t, err)

	events, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, audit.EventConversionPerformed, events[0].Action)
	assert.Equal(t, audit.CategoryOperations, events[0].Category)
}

func TestPublisher_AsyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(10))

	err := pub.Emit(context.Background(), audit.Event{Action: audit.EventInputRejected, Input: "10xyz"})
	require.NoError(t, err)
	pub.Close()

	events, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, audit.CategoryRejection, events[0].Category)
}

func TestPublisher_AsyncDrainsOnClose(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(100))

	for range 10 {
		require.NoError(t, pub.Emit(context.Background(), conversion("1km")))
	}

	pub.Close()

	events, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, events, 10, "all events should be drained on close")
}

func TestPublisher_BufferFull_DropsEvent(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(1))
	defer pub.Close()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := pub.Emit(context.Background(), conversion("1km"))
			if err != nil {
				assert.ErrorIs(t, err, ErrBufferFull)
			}
		}()
	}
	wg.Wait()
}

func TestPublisher_EmitAfterClose(t *testing.T) {
	pub := NewPublisher(memory.NewInMemoryStore(), WithAsyncBuffer(1))
	pub.Close()
	pub.Close()

	err := pub.Emit(context.Background(), conversion("1km"))
	assert.ErrorIs(t, err, sentinel.ErrClosed)
}

func TestPublisher_EnrichesFromContext(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	fixed := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), fixed)
	ctx = requestcontext.WithRequestID(ctx, "req-1")
	ctx = requestcontext.WithTraceID(ctx, "trace-1")

	require.NoError(t, pub.Emit(ctx, conversion("1km")))

	events, _ := store.ListAll(ctx)
	require.Len(t, events, 1)
	assert.Equal(t, fixed, events[0].Timestamp)
	assert.Equal(t, "req-1", events[0].RequestID)
	assert.Equal(t, "trace-1", events[0].TraceID)
}

func TestPublisher_PreservesExistingTimestamp(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	customTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	event := conversion("1km")
	event.Timestamp = customTime

	require.NoError(t, pub.Emit(context.Background(), event))

	events, _ := store.ListAll(context.Background())
	require.Len(t, events, 1)
	assert.Equal(t, customTime, events[0].Timestamp)
}

func TestPublisher_ContextCancellation(t *testing.T) {
	blocked := make(chan struct{})
	store := &blockingStore{release: blocked}
	pub := NewPublisher(store, WithAsyncBuffer(1))
	defer func() {
		close(blocked)
		pub.Close()
	}()

	// The worker takes the first event and blocks; the second fills the buffer.
	_ = pub.Emit(context.Background(), conversion("1km"))
	time.Sleep(20 * time.Millisecond)
	_ = pub.Emit(context.Background(), conversion("2km"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := pub.Emit(ctx, conversion("3km"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled) || errors.Is(err, ErrBufferFull),
		"expected context.Canceled or buffer full error, got: %v", err)
}

type blockingStore struct {
	release chan struct{}
}

func (b *blockingStore) Append(context.Context, audit.Event) error {
	<-b.release
	return nil
}
