package config

// Config is the root configuration for enlight.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging,omitempty"`
	Store      StoreConfig      `yaml:"store,omitempty"`
	Plugins    PluginsConfig    `yaml:"plugins,omitempty"`
	Controller ControllerConfig `yaml:"controller,omitempty"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level        string `yaml:"level,omitempty"`        // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
	ConsoleStyle string `yaml:"consoleStyle,omitempty"` // "pretty" | "compact" | "json"
}

// StoreConfig locates the plugin inventory database.
type StoreConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"` // defaults to true
	Path    string `yaml:"path,omitempty"`    // empty means <base>/data/enlight.db
}

// PluginsConfig declares plugin namespaces and where their plugins live.
type PluginsConfig struct {
	BootstrapFile string            `yaml:"bootstrapFile,omitempty"`
	Namespaces    []NamespaceConfig `yaml:"namespaces,omitempty"`
}

// NamespaceConfig declares one namespace.
type NamespaceConfig struct {
	Name        string             `yaml:"name"`
	PrefixPaths []PrefixPathConfig `yaml:"prefixPaths,omitempty"`
	Preload     []string           `yaml:"preload,omitempty"` // plugin names loaded at startup
}

// PrefixPathConfig maps a class prefix to a plugin directory.
type PrefixPathConfig struct {
	Prefix string `yaml:"prefix"`
	Path   string `yaml:"path"`
}

// ControllerConfig configures the controller plugins.
type ControllerConfig struct {
	TemplateDir       string `yaml:"templateDir,omitempty"`
	TemplateCacheSize int    `yaml:"templateCacheSize,omitempty"`
}

// StoreEnabled reports whether the inventory store is in use.
func (c *Config) StoreEnabled() bool {
	return c.Store.Enabled == nil || *c.Store.Enabled
}

// Namespace returns the named namespace config and whether it exists.
func (c *Config) Namespace(name string) (*NamespaceConfig, bool) {
	for i := range c.Plugins.Namespaces {
		if c.Plugins.Namespaces[i].Name == name {
			return &c.Plugins.Namespaces[i], true
		}
	}
	return nil, false
}
