package config

import "fmt"

// DefaultNamespace is the namespace holding the controller plugins.
const DefaultNamespace = "Controller"

// DefaultBootstrapFile is the per-plugin descriptor file name.
const DefaultBootstrapFile = "Bootstrap.yaml"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		Logging: LoggingConfig{
			Level:        "info",
			ConsoleStyle: "pretty",
		},
		Plugins: PluginsConfig{
			BootstrapFile: DefaultBootstrapFile,
			Namespaces: []NamespaceConfig{
				{Name: DefaultNamespace},
			},
		},
	}
}
