package controller

import (
	"fmt"
	"io"
	"text/template"

	"github.com/soyeahso/enlight/internal/plugin"
)

// ScriptContentType is the content type of rendered scripts.
const ScriptContentType = "text/javascript"

// ScriptRenderer renders script templates without HTML escaping.
type ScriptRenderer struct {
	plugin.Base
	source *templateSource
}

func newScriptRenderer(name string, ns *plugin.Namespace, source *templateSource) *ScriptRenderer {
	return &ScriptRenderer{Base: plugin.NewBase(name, ns), source: source}
}

func (s *ScriptRenderer) ContentType() string { return ScriptContentType }

// RenderScript executes the script template name with data.
func (s *ScriptRenderer) RenderScript(w io.Writer, name string, data any) error {
	text, err := s.source.read(name)
	if err != nil {
		return err
	}
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return fmt.Errorf("parse script %s: %w", name, err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render script %s: %w", name, err)
	}
	return nil
}
