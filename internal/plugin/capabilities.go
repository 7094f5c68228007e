package plugin

import (
	"fmt"
	"io"
	"net/http"
	"reflect"
)

// Names of the well-known controller plugins.
const (
	PluginJSON           = "Json"
	PluginViewRenderer   = "ViewRenderer"
	PluginScriptRenderer = "ScriptRenderer"
	PluginJSONRequest    = "JsonRequest"
)

// JSONRenderer writes response data as JSON, optionally wrapped in a
// JSONP callback.
type JSONRenderer interface {
	Bootstrap
	SetPadding(callback string)
	RenderJSON(w io.Writer, data any) error
}

// ViewRenderer renders named view templates.
type ViewRenderer interface {
	Bootstrap
	SetNoRender(bool)
	NoRender() bool
	Render(w io.Writer, template string, data any) error
}

// ScriptRenderer renders named script templates.
type ScriptRenderer interface {
	Bootstrap
	ContentType() string
	RenderScript(w io.Writer, template string, data any) error
}

// JSONRequestParser extracts request parameters from JSON bodies and
// JSON-encoded parameters.
type JSONRequestParser interface {
	Bootstrap
	ParseRequest(r *http.Request) (map[string]any, error)
}

// Lookup returns the plugin name from ns narrowed to T. A plugin that
// exists but does not implement T yields a *NotFoundError with
// ReasonTypeMismatch.
func Lookup[T Bootstrap](ns *Namespace, name string) (T, error) {
	var zero T

	p, err := ns.Get(name, true)
	if err != nil {
		return zero, err
	}

	t, ok := p.(T)
	if !ok {
		return zero, &NotFoundError{
			Plugin:    name,
			Namespace: ns.Name(),
			Reason:    ReasonTypeMismatch,
			Expected:  reflect.TypeOf((*T)(nil)).Elem().String(),
			Actual:    fmt.Sprintf("%T", p),
		}
	}
	return t, nil
}

// JSON returns the Json controller plugin.
func (ns *Namespace) JSON() (JSONRenderer, error) {
	return Lookup[JSONRenderer](ns, PluginJSON)
}

// ViewRenderer returns the ViewRenderer controller plugin.
func (ns *Namespace) ViewRenderer() (ViewRenderer, error) {
	return Lookup[ViewRenderer](ns, PluginViewRenderer)
}

// ScriptRenderer returns the ScriptRenderer controller plugin.
func (ns *Namespace) ScriptRenderer() (ScriptRenderer, error) {
	return Lookup[ScriptRenderer](ns, PluginScriptRenderer)
}

// JSONRequest returns the JsonRequest controller plugin.
func (ns *Namespace) JSONRequest() (JSONRequestParser, error) {
	return Lookup[JSONRequestParser](ns, PluginJSONRequest)
}
