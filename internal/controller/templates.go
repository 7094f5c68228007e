package controller

import (
	"fmt"
	"path"

	"github.com/spf13/afero"
)

// templateSource reads template files below a root directory.
type templateSource struct {
	fs   afero.Fs
	root string
}

func newTemplateSource(fs afero.Fs, root string) *templateSource {
	return &templateSource{fs: afero.NewBasePathFs(fs, root), root: root}
}

func (s *templateSource) read(name string) (string, error) {
	if s.root == "" {
		return "", fmt.Errorf("template %s: no template directory configured", name)
	}
	data, err := afero.ReadFile(s.fs, path.Clean("/"+name))
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", name, err)
	}
	return string(data), nil
}
