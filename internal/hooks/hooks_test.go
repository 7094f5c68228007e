package hooks

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/soyeahso/enlight/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager() *Manager {
	return NewManager(logging.New(nil, "silent"))
}

func noop(context.Context, Payload) error { return nil }

func TestManager_On_And_Emit(t *testing.T) {
	m := testManager()

	var got Payload
	m.On(EventPluginLoaded, "test", func(_ context.Context, p Payload) error {
		got = p
		return nil
	})

	m.Emit(context.Background(), Payload{
		Event:     EventPluginLoaded,
		Namespace: "Core",
		Plugin:    "Statistics",
		Data:      map[string]any{"class": "Acme_Plugins_Core_Statistics_Bootstrap"},
	})

	assert.Equal(t, EventPluginLoaded, got.Event)
	assert.Equal(t, "Core", got.Namespace)
	assert.Equal(t, "Statistics", got.Plugin)
	assert.Equal(t, "Acme_Plugins_Core_Statistics_Bootstrap", got.String("class"))
	assert.Empty(t, got.String("missing"))
}

func TestManager_Emit_Order(t *testing.T) {
	m := testManager()

	var order []string
	m.On(EventPluginMissing, "first", func(context.Context, Payload) error {
		order = append(order, "first")
		return nil
	})
	m.On(EventPluginMissing, "second", func(context.Context, Payload) error {
		order = append(order, "second")
		return nil
	})

	m.Emit(context.Background(), Payload{Event: EventPluginMissing})
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestManager_Emit_HandlerErrorDoesNotStop(t *testing.T) {
	m := testManager()

	var secondCalled bool
	m.On(EventPluginLoaded, "failing", func(context.Context, Payload) error {
		return errors.New("handler broke")
	})
	m.On(EventPluginLoaded, "second", func(context.Context, Payload) error {
		secondCalled = true
		return nil
	})

	m.Emit(context.Background(), Payload{Event: EventPluginLoaded})
	assert.True(t, secondCalled)
}

func TestManager_Emit_NoHandlers(t *testing.T) {
	m := testManager()
	m.Emit(context.Background(), Payload{Event: EventNamespaceScanned})
}

func TestManager_Off(t *testing.T) {
	m := testManager()

	var removed, kept int
	m.On(EventPluginLoaded, "remove-me", func(context.Context, Payload) error {
		removed++
		return nil
	})
	m.On(EventPluginLoaded, "keep-me", func(context.Context, Payload) error {
		kept++
		return nil
	})

	m.Emit(context.Background(), Payload{Event: EventPluginLoaded})
	m.Off(EventPluginLoaded, "remove-me")
	m.Emit(context.Background(), Payload{Event: EventPluginLoaded})

	assert.Equal(t, 1, removed)
	assert.Equal(t, 2, kept)
}

func TestManager_EmitAsync(t *testing.T) {
	m := testManager()

	var count atomic.Int32
	var wg sync.WaitGroup
	wg.Add(2)
	for _, name := range []string{"async1", "async2"} {
		m.On(EventNamespaceScanned, name, func(context.Context, Payload) error {
			count.Add(1)
			wg.Done()
			return nil
		})
	}

	m.EmitAsync(context.Background(), Payload{Event: EventNamespaceScanned})

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("async handlers did not complete in time")
	}
	assert.Equal(t, int32(2), count.Load())
}

func TestManager_CountAndEvents(t *testing.T) {
	m := testManager()
	assert.Equal(t, 0, m.Count(EventPluginLoaded))

	m.On(EventPluginLoaded, "h1", noop)
	m.On(EventPluginLoaded, "h2", noop)
	m.On(EventNamespaceCreated, "h3", noop)

	assert.Equal(t, 2, m.Count(EventPluginLoaded))
	assert.Equal(t, []string{EventNamespaceCreated, EventPluginLoaded}, m.Events())
}

func TestNewManager_NilLogger(t *testing.T) {
	m := NewManager(nil)
	require.NotNil(t, m)
	m.On(EventPluginLoaded, "h", func(context.Context, Payload) error { return errors.New("x") })
	m.Emit(context.Background(), Payload{Event: EventPluginLoaded})
}

func TestAllEvents(t *testing.T) {
	require.Len(t, AllEvents, 4)
	assert.Contains(t, AllEvents, EventPluginLoaded)
	assert.Contains(t, AllEvents, EventPluginMissing)
}
