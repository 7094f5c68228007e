package plugin

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soyeahso/enlight/internal/hooks"
)

func TestManager_NamespaceGetOrCreate(t *testing.T) {
	hm := hooks.NewManager(nil)
	var created []string
	hm.On(hooks.EventNamespaceCreated, "test", func(_ context.Context, p hooks.Payload) error {
		created = append(created, p.Namespace)
		return nil
	})

	m := NewManager(testClasses(), WithFs(afero.NewMemMapFs()), WithHooks(hm))

	core := m.Namespace("Core")
	assert.Same(t, core, m.Namespace("Core"))
	m.Namespace("Frontend")

	got, ok := m.Lookup("Frontend")
	require.True(t, ok)
	assert.Equal(t, "Frontend", got.Name())

	_, ok = m.Lookup("Backend")
	assert.False(t, ok)

	names := []string{}
	for _, ns := range m.Namespaces() {
		names = append(names, ns.Name())
	}
	assert.Equal(t, []string{"Core", "Frontend"}, names)
	assert.Equal(t, []string{"Core", "Frontend"}, created)
}

func TestManager_LoadAll(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeBootstrap(t, fs, "/plugins/Core", "Stats", "")
	writeBootstrap(t, fs, "/plugins/Frontend", "Seo", "")

	m := NewManager(testClasses("Core_Stats_Bootstrap", "Frontend_Seo_Bootstrap"), WithFs(fs))
	m.Namespace("Core").AddPrefixPath("Core", "/plugins/Core")
	m.Namespace("Frontend").AddPrefixPath("Frontend", "/plugins/Frontend")

	require.NoError(t, m.LoadAll())
	assert.Equal(t, []string{"Stats"}, m.Namespace("Core").List())
	assert.Equal(t, []string{"Seo"}, m.Namespace("Frontend").List())
}

func TestManager_LoadAllError(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeBootstrap(t, fs, "/plugins/Core", "Unknown", "")

	m := NewManager(testClasses(), WithFs(fs))
	m.Namespace("Core").AddPrefixPath("Core", "/plugins/Core")

	err := m.LoadAll()
	assert.ErrorIs(t, err, ErrClassNotFound)
	assert.ErrorContains(t, err, "namespace Core")
}
