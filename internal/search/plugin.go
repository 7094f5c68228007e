package search

import (
	"fmt"

	"github.com/soyeahso/enlight/internal/plugin"
)

// Prefix is the class prefix of the search plugins.
const Prefix = "Enlight_Search_Plugins"

// DefaultNamespace is the namespace conventionally holding the search plugins.
const DefaultNamespace = "Search"

// PluginSorting is the name of the sorting plugin.
const PluginSorting = "Sorting"

// SortingPlugin exposes a Dispatcher as a namespace plugin.
type SortingPlugin struct {
	plugin.Base
	*Dispatcher
}

// Register adds the sorting plugin factory to reg. The plugin dispatches to
// the last-name handler followed by extra.
func Register(reg *plugin.FactoryRegistry, extra ...SortingHandler) error {
	handlers := append([]SortingHandler{LastNameSortingHandler{}}, extra...)
	err := reg.Register(plugin.ClassName(Prefix, PluginSorting), func(name string, ns *plugin.Namespace) (plugin.Bootstrap, error) {
		return &SortingPlugin{Base: plugin.NewBase(name, ns), Dispatcher: NewDispatcher(handlers...)}, nil
	})
	if err != nil {
		return fmt.Errorf("register search plugin %s: %w", PluginSorting, err)
	}
	return nil
}
