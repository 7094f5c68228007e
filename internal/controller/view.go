package controller

import (
	"fmt"
	"html/template"
	"io"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/soyeahso/enlight/internal/plugin"
)

// ViewRenderer renders HTML templates. The most recently used parsed
// templates are cached by name.
type ViewRenderer struct {
	plugin.Base
	source *templateSource
	cache  *lru.Cache[string, *template.Template]

	mu       sync.Mutex
	noRender bool
}

func newViewRenderer(name string, ns *plugin.Namespace, source *templateSource, cacheSize int) (*ViewRenderer, error) {
	cache, err := lru.New[string, *template.Template](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("template cache: %w", err)
	}
	return &ViewRenderer{
		Base:   plugin.NewBase(name, ns),
		source: source,
		cache:  cache,
	}, nil
}

// SetNoRender turns rendering off or back on.
func (v *ViewRenderer) SetNoRender(noRender bool) {
	v.mu.Lock()
	v.noRender = noRender
	v.mu.Unlock()
}

func (v *ViewRenderer) NoRender() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.noRender
}

// Render executes the template name with data. It writes nothing while
// rendering is turned off.
func (v *ViewRenderer) Render(w io.Writer, name string, data any) error {
	if v.NoRender() {
		return nil
	}
	tmpl, err := v.template(name)
	if err != nil {
		return err
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

func (v *ViewRenderer) template(name string) (*template.Template, error) {
	if tmpl, ok := v.cache.Get(name); ok {
		return tmpl, nil
	}
	text, err := v.source.read(name)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	v.cache.Add(name, tmpl)
	return tmpl, nil
}
