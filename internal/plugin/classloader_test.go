package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassName(t *testing.T) {
	tests := []struct {
		prefix, name, want string
	}{
		{"Acme_Plugins_Core", "Statistics", "Acme_Plugins_Core_Statistics_Bootstrap"},
		{"Enlight_Controller_Plugins", "Json", "Enlight_Controller_Plugins_Json_Bootstrap"},
		{"", "Bare", "Bare_Bootstrap"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassName(tt.prefix, tt.name))
		})
	}
}

func TestFactoryRegistry_Register(t *testing.T) {
	reg := NewFactoryRegistry(nil)

	require.NoError(t, reg.Register("B_Bootstrap", testFactory("B")))
	require.NoError(t, reg.Register("A_Bootstrap", testFactory("A")))
	assert.Equal(t, []string{"A_Bootstrap", "B_Bootstrap"}, reg.Classes())

	err := reg.Register("A_Bootstrap", testFactory("A"))
	assert.ErrorContains(t, err, "already registered")

	assert.Error(t, reg.Register("", testFactory("x")))
	assert.Error(t, reg.Register("C_Bootstrap", nil))
}

func TestFactoryRegistry_MustRegisterPanics(t *testing.T) {
	reg := testClasses("A_Bootstrap")
	assert.Panics(t, func() { reg.MustRegister("A_Bootstrap", testFactory("A")) })
}

func TestFactoryRegistry_LoadClass(t *testing.T) {
	reg := testClasses("A_Bootstrap")

	f, err := reg.LoadClass("A_Bootstrap", "/plugins/A/Bootstrap.yaml")
	require.NoError(t, err)
	require.NotNil(t, f)

	_, err = reg.LoadClass("Missing_Bootstrap", "/plugins/Missing/Bootstrap.yaml")
	assert.ErrorIs(t, err, ErrClassNotFound)
	assert.ErrorContains(t, err, "Missing_Bootstrap")
	assert.ErrorContains(t, err, "/plugins/Missing/Bootstrap.yaml")
}

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		err  *NotFoundError
		want string
	}{
		{
			&NotFoundError{Plugin: "Json", Namespace: "Controller"},
			`plugin "Json" in namespace "Controller" not found`,
		},
		{
			&NotFoundError{Plugin: "Json", Namespace: "Controller", Reason: ReasonNoBootstrap},
			`plugin "Json" in namespace "Controller" not found: no bootstrap file`,
		},
		{
			&NotFoundError{Plugin: "Json", Namespace: "Controller", Reason: ReasonTypeMismatch,
				Expected: "plugin.JSONRenderer", Actual: "*plugin.testBootstrap"},
			`plugin "Json" in namespace "Controller" not found: type mismatch: want plugin.JSONRenderer, got *plugin.testBootstrap`,
		},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
		assert.ErrorIs(t, tt.err, ErrPluginNotFound)
	}
}
