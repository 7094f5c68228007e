package controller

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"

	"github.com/soyeahso/enlight/internal/plugin"
)

// callbackPattern limits JSONP callbacks to dotted identifiers.
var callbackPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)*$`)

// JSON renders response data as JSON.
type JSON struct {
	plugin.Base
	padding string
	pretty  bool
}

func NewJSON(name string, ns *plugin.Namespace) *JSON {
	return &JSON{Base: plugin.NewBase(name, ns)}
}

// SetPadding wraps subsequent output in a JSONP callback. An empty
// callback disables padding.
func (j *JSON) SetPadding(callback string) { j.padding = callback }

// Padding returns the current JSONP callback.
func (j *JSON) Padding() string { return j.padding }

// SetPretty enables indented output.
func (j *JSON) SetPretty(pretty bool) { j.pretty = pretty }

// RenderJSON writes data to w.
func (j *JSON) RenderJSON(w io.Writer, data any) error {
	if j.padding != "" && !callbackPattern.MatchString(j.padding) {
		return fmt.Errorf("invalid jsonp callback %q", j.padding)
	}

	var (
		body []byte
		err  error
	)
	if j.pretty {
		body, err = json.MarshalIndent(data, "", "  ")
	} else {
		body, err = json.Marshal(data)
	}
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	if j.padding == "" {
		_, err = w.Write(body)
		return err
	}
	_, err = fmt.Fprintf(w, "%s(%s);", j.padding, body)
	return err
}
