package plugin

import (
	"context"
	"fmt"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/soyeahso/enlight/internal/hooks"
)

// Manager owns a set of namespaces sharing one class loader and one set of
// options.
type Manager struct {
	classes ClassLoader
	opts    options

	mu         sync.RWMutex
	namespaces *orderedmap.OrderedMap[string, *Namespace]
}

// NewManager creates a manager. opts apply to every namespace it creates.
func NewManager(classes ClassLoader, opts ...Option) *Manager {
	return &Manager{
		classes:    classes,
		opts:       buildOptions(opts),
		namespaces: orderedmap.New[string, *Namespace](),
	}
}

// Namespace returns the namespace called name, creating it on first use.
func (m *Manager) Namespace(name string) *Namespace {
	m.mu.Lock()
	ns, ok := m.namespaces.Get(name)
	if !ok {
		ns = newNamespace(name, m.classes, m.opts)
		m.namespaces.Set(name, ns)
	}
	m.mu.Unlock()

	if !ok && m.opts.hooks != nil {
		m.opts.hooks.Emit(context.Background(), hooks.Payload{
			Event:     hooks.EventNamespaceCreated,
			Namespace: name,
		})
	}
	return ns
}

// Lookup returns an existing namespace.
func (m *Manager) Lookup(name string) (*Namespace, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.namespaces.Get(name)
}

// Namespaces returns all namespaces in creation order.
func (m *Manager) Namespaces() []*Namespace {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Namespace, 0, m.namespaces.Len())
	for pair := m.namespaces.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// LoadAll loads every plugin of every namespace, stopping at the first error.
func (m *Manager) LoadAll() error {
	for _, ns := range m.Namespaces() {
		if err := ns.LoadAll(); err != nil {
			return fmt.Errorf("namespace %s: %w", ns.Name(), err)
		}
	}
	return nil
}
