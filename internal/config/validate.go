package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Config for issues. Returns nil if valid.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	// Logging validation
	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	validConsoleStyles := []string{"pretty", "compact", "json"}
	if cfg.Logging.ConsoleStyle != "" && !slices.Contains(validConsoleStyles, cfg.Logging.ConsoleStyle) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.consoleStyle",
			Message: fmt.Sprintf("must be one of %v, got %q", validConsoleStyles, cfg.Logging.ConsoleStyle),
		})
	}

	if cfg.Controller.TemplateCacheSize < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "controller.templateCacheSize",
			Message: fmt.Sprintf("must not be negative, got %d", cfg.Controller.TemplateCacheSize),
		})
	}

	// Plugin validation
	if strings.ContainsAny(cfg.Plugins.BootstrapFile, `/\`) {
		issues = append(issues, ValidationIssue{
			Path:    "plugins.bootstrapFile",
			Message: fmt.Sprintf("must be a file name, got %q", cfg.Plugins.BootstrapFile),
		})
	}

	seen := make(map[string]bool)
	for i, ns := range cfg.Plugins.Namespaces {
		base := fmt.Sprintf("plugins.namespaces.%d", i)
		if ns.Name == "" {
			issues = append(issues, ValidationIssue{Path: base + ".name", Message: "name is required"})
		} else if seen[ns.Name] {
			issues = append(issues, ValidationIssue{
				Path:    base + ".name",
				Message: fmt.Sprintf("duplicate namespace %q", ns.Name),
			})
		}
		seen[ns.Name] = true

		for j, pp := range ns.PrefixPaths {
			if pp.Path == "" {
				issues = append(issues, ValidationIssue{
					Path:    fmt.Sprintf("%s.prefixPaths.%d.path", base, j),
					Message: "path is required",
				})
			}
		}
		for j, name := range ns.Preload {
			if name == "" {
				issues = append(issues, ValidationIssue{
					Path:    fmt.Sprintf("%s.preload.%d", base, j),
					Message: "plugin name is required",
				})
			}
		}
	}

	return issues
}
