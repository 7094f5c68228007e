package plugin

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/soyeahso/enlight/internal/logging"
)

const (
	classSeparator = "_"
	classSuffix    = "Bootstrap"
)

// ClassName builds the class identifier of a plugin bootstrap by joining
// prefix, name and the "Bootstrap" suffix with underscores. An empty prefix
// is left out.
func ClassName(prefix, name string) string {
	parts := make([]string, 0, 3)
	if prefix != "" {
		parts = append(parts, prefix)
	}
	return strings.Join(append(parts, name, classSuffix), classSeparator)
}

// ClassLoader makes the factory for a class available. file is the
// bootstrap file that was discovered for the class.
type ClassLoader interface {
	LoadClass(class, file string) (Factory, error)
}

// ClassLoaderFunc adapts a function to the ClassLoader interface.
type ClassLoaderFunc func(class, file string) (Factory, error)

func (f ClassLoaderFunc) LoadClass(class, file string) (Factory, error) {
	return f(class, file)
}

// FactoryRegistry is a ClassLoader backed by factories registered at startup.
type FactoryRegistry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	log       *logging.Logger
}

// NewFactoryRegistry creates an empty registry. log may be nil.
func NewFactoryRegistry(log *logging.Logger) *FactoryRegistry {
	if log == nil {
		log = logging.Nop()
	}
	return &FactoryRegistry{
		factories: make(map[string]Factory),
		log:       log.Sub("classes"),
	}
}

// Register binds a factory to a class identifier.
func (r *FactoryRegistry) Register(class string, f Factory) error {
	if class == "" {
		return fmt.Errorf("register factory: empty class name")
	}
	if f == nil {
		return fmt.Errorf("register factory %s: nil factory", class)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[class]; exists {
		return fmt.Errorf("class already registered: %s", class)
	}
	r.factories[class] = f
	r.log.Debug().Str("class", class).Msg("factory registered")
	return nil
}

// MustRegister is Register that panics on error.
func (r *FactoryRegistry) MustRegister(class string, f Factory) {
	if err := r.Register(class, f); err != nil {
		panic(err)
	}
}

// LoadClass returns the factory registered for class.
func (r *FactoryRegistry) LoadClass(class, file string) (Factory, error) {
	r.mu.RLock()
	f, ok := r.factories[class]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s (bootstrap %s)", ErrClassNotFound, class, file)
	}
	return f, nil
}

// Classes returns the registered class identifiers, sorted.
func (r *FactoryRegistry) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.factories))
	for class := range r.factories {
		out = append(out, class)
	}
	slices.Sort(out)
	return out
}
