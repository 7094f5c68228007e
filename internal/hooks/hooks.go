// Package hooks dispatches plugin lifecycle events to registered handlers.
package hooks

import (
	"context"
	"slices"
	"sync"

	"github.com/soyeahso/enlight/internal/logging"
)

// Lifecycle events raised by plugin namespaces.
const (
	EventNamespaceCreated = "namespace_created"
	EventNamespaceScanned = "namespace_scanned"
	EventPluginLoaded     = "plugin_loaded"
	EventPluginMissing    = "plugin_missing"
)

// AllEvents lists all known hook event names.
var AllEvents = []string{
	EventNamespaceCreated,
	EventNamespaceScanned,
	EventPluginLoaded,
	EventPluginMissing,
}

// Payload carries event data to hook handlers.
type Payload struct {
	Event     string         `json:"event"`
	Namespace string         `json:"namespace"`
	Plugin    string         `json:"plugin,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// String returns Data[key] as a string, or "" when missing.
func (p Payload) String(key string) string {
	s, _ := p.Data[key].(string)
	return s
}

// Handler handles a hook event. A returned error is logged and does not
// stop the remaining handlers.
type Handler func(ctx context.Context, p Payload) error

type namedHandler struct {
	name    string
	handler Handler
}

// Manager keeps handler registrations per event.
type Manager struct {
	mu       sync.RWMutex
	handlers map[string][]namedHandler
	log      *logging.Logger
}

// NewManager creates a hook manager.
func NewManager(log *logging.Logger) *Manager {
	if log == nil {
		log = logging.Nop()
	}
	return &Manager{
		handlers: make(map[string][]namedHandler),
		log:      log.Sub("hooks"),
	}
}

// On registers a named handler for event.
func (m *Manager) On(event, name string, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[event] = append(m.handlers[event], namedHandler{name: name, handler: handler})
	m.log.Debug().Str("event", event).Str("handler", name).Msg("hook registered")
}

// Off removes every handler called name from event.
func (m *Manager) Off(event, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[event] = slices.DeleteFunc(m.handlers[event], func(h namedHandler) bool {
		return h.name == name
	})
}

func (m *Manager) snapshot(event string) []namedHandler {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.handlers[event])
}

// Emit calls the handlers for p.Event synchronously in registration order.
func (m *Manager) Emit(ctx context.Context, p Payload) {
	for _, h := range m.snapshot(p.Event) {
		if err := h.handler(ctx, p); err != nil {
			m.log.Warn().
				Err(err).
				Str("event", p.Event).
				Str("handler", h.name).
				Msg("hook handler error")
		}
	}
}

// EmitAsync calls each handler in its own goroutine and returns immediately.
func (m *Manager) EmitAsync(ctx context.Context, p Payload) {
	for _, h := range m.snapshot(p.Event) {
		go func(h namedHandler) {
			if err := h.handler(ctx, p); err != nil {
				m.log.Warn().
					Err(err).
					Str("event", p.Event).
					Str("handler", h.name).
					Msg("async hook handler error")
			}
		}(h)
	}
}

// Count returns the number of handlers registered for event.
func (m *Manager) Count(event string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.handlers[event])
}

// Events returns the sorted names of events with at least one handler.
func (m *Manager) Events() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]string, 0, len(m.handlers))
	for event, handlers := range m.handlers {
		if len(handlers) > 0 {
			events = append(events, event)
		}
	}
	slices.Sort(events)
	return events
}
