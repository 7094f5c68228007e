package plugin

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// testBootstrap records the class it was built for.
type testBootstrap struct {
	Base
	class string
}

func testFactory(class string) Factory {
	return func(name string, ns *Namespace) (Bootstrap, error) {
		return &testBootstrap{Base: NewBase(name, ns), class: class}, nil
	}
}

// testClasses returns a registry with a test factory per class.
func testClasses(classes ...string) *FactoryRegistry {
	reg := NewFactoryRegistry(nil)
	for _, class := range classes {
		reg.MustRegister(class, testFactory(class))
	}
	return reg
}

// countingFs counts Stat calls, i.e. bootstrap discovery probes.
type countingFs struct {
	afero.Fs
	stats atomic.Int32
}

func (c *countingFs) Stat(name string) (os.FileInfo, error) {
	c.stats.Add(1)
	return c.Fs.Stat(name)
}

func writeBootstrap(t *testing.T, fs afero.Fs, dir, name, content string) {
	t.Helper()
	pluginDir := filepath.Join(dir, name)
	require.NoError(t, fs.MkdirAll(pluginDir, 0o755))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(pluginDir, DefaultBootstrapFile), []byte(content), 0o644))
}
