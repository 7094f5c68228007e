package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/soyeahso/enlight/internal/config"
	"github.com/soyeahso/enlight/internal/controller"
	"github.com/soyeahso/enlight/internal/hooks"
	"github.com/soyeahso/enlight/internal/logging"
	"github.com/soyeahso/enlight/internal/plugin"
	"github.com/soyeahso/enlight/internal/search"
	"github.com/soyeahso/enlight/internal/store"
)

// app bundles the components built from the configuration.
type app struct {
	log       *logging.Logger
	hooks     *hooks.Manager
	classes   *plugin.FactoryRegistry
	plugins   *plugin.Manager
	db        *store.DB
	inventory *store.Inventory
}

// newApp wires class registry, hooks, inventory and namespaces from cfg.
// Preloaded plugins are loaded before it returns.
func newApp(ctx context.Context, cfg config.Config, paths config.Paths, log *logging.Logger) (*app, error) {
	if issues := config.Validate(&cfg); len(issues) > 0 {
		for _, issue := range issues {
			log.Error().Str("path", issue.Path).Msg(issue.Message)
		}
		return nil, fmt.Errorf("config validation failed with %d issue(s)", len(issues))
	}

	a := &app{
		log:     log,
		hooks:   hooks.NewManager(log),
		classes: plugin.NewFactoryRegistry(log),
	}

	templateDir := cfg.Controller.TemplateDir
	if templateDir == "" {
		templateDir = paths.Templates
	}
	if err := controller.Register(a.classes, controller.Options{
		TemplateDir:       templateDir,
		TemplateCacheSize: cfg.Controller.TemplateCacheSize,
	}); err != nil {
		return nil, err
	}
	if err := search.Register(a.classes); err != nil {
		return nil, err
	}

	if cfg.StoreEnabled() {
		storePath := cfg.Store.Path
		if storePath == "" {
			storePath = paths.StorePath()
		}
		db, err := store.Open(ctx, storePath, log)
		if err != nil {
			return nil, fmt.Errorf("open inventory: %w", err)
		}
		a.db = db
		a.inventory = store.NewInventory(db)
		a.inventory.Attach(a.hooks)
	}

	a.plugins = plugin.NewManager(a.classes,
		plugin.WithLogger(log),
		plugin.WithHooks(a.hooks),
		plugin.WithBootstrapFile(cfg.Plugins.BootstrapFile),
	)

	for _, nc := range cfg.Plugins.Namespaces {
		ns := a.plugins.Namespace(nc.Name)
		prefixPaths := nc.PrefixPaths
		if len(prefixPaths) == 0 {
			prefixPaths = defaultPrefixPaths(nc.Name, paths)
		}
		for _, pp := range prefixPaths {
			ns.AddPrefixPath(pp.Prefix, pp.Path)
		}
		for _, name := range nc.Preload {
			if err := ns.Load(name, true); err != nil {
				a.Close()
				return nil, fmt.Errorf("preload %s/%s: %w", nc.Name, name, err)
			}
		}
	}

	return a, nil
}

// defaultPrefixPaths maps the built-in namespaces to <plugins>/<namespace>.
func defaultPrefixPaths(namespace string, paths config.Paths) []config.PrefixPathConfig {
	dir := filepath.Join(paths.Plugins, namespace)
	switch namespace {
	case config.DefaultNamespace:
		return []config.PrefixPathConfig{{Prefix: controller.Prefix, Path: dir}}
	case search.DefaultNamespace:
		return []config.PrefixPathConfig{{Prefix: search.Prefix, Path: dir}}
	default:
		return []config.PrefixPathConfig{{Path: dir}}
	}
}

// namespace returns a configured namespace.
func (a *app) namespace(name string) (*plugin.Namespace, error) {
	ns, ok := a.plugins.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("namespace %q not configured", name)
	}
	return ns, nil
}

// Close releases the inventory database.
func (a *app) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
