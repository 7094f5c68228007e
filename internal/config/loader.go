package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} patterns in strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars replaces ${VAR} patterns with environment variable values.
// Unset variables are left unchanged.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// expandPathFields processes environment variable references in every
// filesystem path so plugin directories can be written as ${HOME}/plugins.
func expandPathFields(cfg *Config) {
	cfg.Store.Path = expandEnvVars(cfg.Store.Path)
	cfg.Controller.TemplateDir = expandEnvVars(cfg.Controller.TemplateDir)
	for i := range cfg.Plugins.Namespaces {
		ns := &cfg.Plugins.Namespaces[i]
		for j := range ns.PrefixPaths {
			ns.PrefixPaths[j].Path = expandEnvVars(ns.PrefixPaths[j].Path)
		}
	}
}

// Load reads the config file, applies environment overrides, and returns
// a merged Config. Missing files produce defaults only.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}

	applyDefaults(&cfg)
	expandPathFields(&cfg)
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// LoadRaw reads the config file into a generic map for path-based access.
func LoadRaw(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

// SaveRaw writes a generic map back to a YAML config file.
func SaveRaw(path string, raw map[string]any) error {
	data, err := yaml.Marshal(raw)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// applyDefaults fills zero-value fields with sensible defaults.
func applyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.ConsoleStyle == "" {
		cfg.Logging.ConsoleStyle = "pretty"
	}
	if cfg.Plugins.BootstrapFile == "" {
		cfg.Plugins.BootstrapFile = DefaultBootstrapFile
	}
	if _, ok := cfg.Namespace(DefaultNamespace); !ok {
		cfg.Plugins.Namespaces = append(cfg.Plugins.Namespaces, NamespaceConfig{Name: DefaultNamespace})
	}
}

// applyEnvOverrides reads ENLIGHT_* environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ENLIGHT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("ENLIGHT_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("ENLIGHT_PLUGIN_PATH"); v != "" {
		ns, _ := cfg.Namespace(DefaultNamespace)
		ns.PrefixPaths = append(ns.PrefixPaths, ParsePluginPath(v)...)
	}
}

// ParsePluginPath parses a list of prefix=path entries separated by the
// OS path list separator. An entry without '=' has an empty prefix.
func ParsePluginPath(s string) []PrefixPathConfig {
	var out []PrefixPathConfig
	for _, entry := range filepath.SplitList(s) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		prefix, path, ok := strings.Cut(entry, "=")
		if !ok {
			prefix, path = "", entry
		}
		out = append(out, PrefixPathConfig{Prefix: prefix, Path: path})
	}
	return out
}
