// Package controller provides the built-in controller plugins: Json,
// ViewRenderer, ScriptRenderer and JsonRequest.
package controller

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/soyeahso/enlight/internal/plugin"
)

// Prefix is the class prefix of the controller plugins.
const Prefix = "Enlight_Controller_Plugins"

// Options configures the controller plugin factories.
type Options struct {
	// Fs holds the templates. Defaults to the OS filesystem.
	Fs afero.Fs

	// TemplateDir is the root of view and script templates.
	TemplateDir string

	// TemplateCacheSize bounds the parsed view templates kept in memory.
	TemplateCacheSize int
}

// DefaultTemplateCacheSize is used when Options.TemplateCacheSize is not set.
const DefaultTemplateCacheSize = 128

// Register adds the controller plugin factories to reg.
func Register(reg *plugin.FactoryRegistry, opts Options) error {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.TemplateCacheSize <= 0 {
		opts.TemplateCacheSize = DefaultTemplateCacheSize
	}
	templates := newTemplateSource(opts.Fs, opts.TemplateDir)

	factories := map[string]plugin.Factory{
		plugin.PluginJSON: func(name string, ns *plugin.Namespace) (plugin.Bootstrap, error) {
			return NewJSON(name, ns), nil
		},
		plugin.PluginViewRenderer: func(name string, ns *plugin.Namespace) (plugin.Bootstrap, error) {
			return newViewRenderer(name, ns, templates, opts.TemplateCacheSize)
		},
		plugin.PluginScriptRenderer: func(name string, ns *plugin.Namespace) (plugin.Bootstrap, error) {
			return newScriptRenderer(name, ns, templates), nil
		},
		plugin.PluginJSONRequest: func(name string, ns *plugin.Namespace) (plugin.Bootstrap, error) {
			return NewJSONRequest(name, ns), nil
		},
	}

	for _, name := range []string{
		plugin.PluginJSON,
		plugin.PluginViewRenderer,
		plugin.PluginScriptRenderer,
		plugin.PluginJSONRequest,
	} {
		if err := reg.Register(plugin.ClassName(Prefix, name), factories[name]); err != nil {
			return fmt.Errorf("register controller plugin %s: %w", name, err)
		}
	}
	return nil
}
