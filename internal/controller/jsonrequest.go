package controller

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/soyeahso/enlight/internal/plugin"
)

// maxJSONBody caps the request body read by ParseRequest.
const maxJSONBody = 10 << 20

// JSONRequest turns JSON request bodies and JSON-encoded parameters into
// request parameters.
type JSONRequest struct {
	plugin.Base
	parseInput  bool
	parseParams []string
}

func NewJSONRequest(name string, ns *plugin.Namespace) *JSONRequest {
	return &JSONRequest{Base: plugin.NewBase(name, ns), parseInput: true}
}

// SetParseInput controls whether application/json bodies are decoded.
func (j *JSONRequest) SetParseInput(parse bool) { j.parseInput = parse }

// SetParseParams names query or form parameters whose values hold JSON.
func (j *JSONRequest) SetParseParams(params []string) {
	j.parseParams = append([]string(nil), params...)
}

// ParseRequest returns the request parameters. Query and form values come
// first, a decoded JSON object body overrides them, and every configured
// JSON parameter is replaced by its decoded value.
func (j *JSONRequest) ParseRequest(r *http.Request) (map[string]any, error) {
	params := make(map[string]any)

	isJSON := false
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		isJSON = err == nil && mediaType == "application/json"
	}

	if !isJSON {
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("parse form: %w", err)
		}
	}
	for key, values := range r.URL.Query() {
		params[key] = last(values)
	}
	for key, values := range r.PostForm {
		params[key] = last(values)
	}

	if isJSON && j.parseInput && r.Body != nil {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBody))
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		if len(body) > 0 {
			var input map[string]any
			if err := json.Unmarshal(body, &input); err != nil {
				return nil, fmt.Errorf("decode json body: %w", err)
			}
			for key, value := range input {
				params[key] = value
			}
		}
	}

	for _, key := range j.parseParams {
		raw, ok := params[key].(string)
		if !ok || raw == "" {
			continue
		}
		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			return nil, fmt.Errorf("decode json param %s: %w", key, err)
		}
		params[key] = value
	}

	return params, nil
}

func last(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[len(values)-1]
}
