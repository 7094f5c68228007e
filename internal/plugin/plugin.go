// Package plugin locates, instantiates and caches plugin bootstraps that
// live in convention-named directories below registered prefix paths.
//
// A plugin called "Statistics" registered under the prefix path
// ("Acme_Plugins_Core", "/plugins/Core") is expected at
// /plugins/Core/Statistics/Bootstrap.yaml and is built by the factory
// registered for the class "Acme_Plugins_Core_Statistics_Bootstrap".
package plugin

// Bootstrap is the entry point object of a plugin.
type Bootstrap interface {
	// Name returns the plugin name the bootstrap was created for.
	Name() string

	// Namespace returns the namespace that instantiated the plugin.
	Namespace() *Namespace
}

// Factory builds the bootstrap for a class. It receives the plugin name and
// the owning namespace, which the plugin may call back into.
type Factory func(name string, ns *Namespace) (Bootstrap, error)

// Base is an embeddable Bootstrap implementation.
type Base struct {
	name string
	ns   *Namespace
}

// NewBase returns a Base for the given plugin name and namespace.
func NewBase(name string, ns *Namespace) Base {
	return Base{name: name, ns: ns}
}

func (b Base) Name() string          { return b.name }
func (b Base) Namespace() *Namespace { return b.ns }

// PluginInfo describes where a loaded plugin came from.
type PluginInfo struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	Class     string `json:"class"`
	Prefix    string `json:"prefix"`
	File      string `json:"file"`
}

// PrefixPath is a registered (prefix, directory) pair.
type PrefixPath struct {
	Prefix string `json:"prefix"`
	Path   string `json:"path"`
}
