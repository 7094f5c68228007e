package plugin

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/soyeahso/enlight/internal/hooks"
	"github.com/soyeahso/enlight/internal/logging"
)

// Namespace resolves plugin names to bootstraps found below its prefix
// paths and caches every successfully instantiated bootstrap.
//
// Lookups are first-match-wins over the prefix paths in registration order.
// Failed lookups are not cached, so a plugin that appears on disk later can
// still be loaded.
type Namespace struct {
	name          string
	classes       ClassLoader
	fs            afero.Fs
	bootstrapFile string
	hooks         *hooks.Manager
	log           *logging.Logger

	mu          sync.RWMutex
	prefixPaths *orderedmap.OrderedMap[string, string] // dir -> prefix
	plugins     map[string]Bootstrap
	infos       map[string]PluginInfo
	order       []string
}

// NewNamespace creates an empty namespace that builds bootstraps through classes.
func NewNamespace(name string, classes ClassLoader, opts ...Option) *Namespace {
	return newNamespace(name, classes, buildOptions(opts))
}

func newNamespace(name string, classes ClassLoader, o options) *Namespace {
	return &Namespace{
		name:          name,
		classes:       classes,
		fs:            o.fs,
		bootstrapFile: o.bootstrapFile,
		hooks:         o.hooks,
		log:           o.log.Sub("plugins").With("namespace", name),
		prefixPaths:   orderedmap.New[string, string](),
		plugins:       make(map[string]Bootstrap),
		infos:         make(map[string]PluginInfo),
	}
}

// Name returns the namespace name.
func (ns *Namespace) Name() string { return ns.name }

// AddPrefixPath registers a directory whose subdirectories hold plugins
// with class names starting with prefix. Leading and trailing underscores
// are trimmed from prefix. The directory does not need to exist yet.
// Paths added later are searched after the ones added before; re-adding a
// known directory replaces its prefix but keeps its position.
func (ns *Namespace) AddPrefixPath(prefix, path string) *Namespace {
	prefix = strings.Trim(prefix, classSeparator)
	dir := ns.resolveDir(path)

	ns.mu.Lock()
	ns.prefixPaths.Set(dir, prefix)
	ns.mu.Unlock()

	ns.log.Debug().Str("prefix", prefix).Str("path", dir).Msg("prefix path added")
	return ns
}

// PrefixPaths returns the registered prefix paths in lookup order.
func (ns *Namespace) PrefixPaths() []PrefixPath {
	ns.mu.RLock()
	defer ns.mu.RUnlock()

	out := make([]PrefixPath, 0, ns.prefixPaths.Len())
	for pair := ns.prefixPaths.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, PrefixPath{Prefix: pair.Value, Path: pair.Key})
	}
	return out
}

// Load instantiates the plugin name from the first prefix path holding its
// bootstrap file. It does nothing when the plugin is already loaded. When
// no bootstrap exists, Load returns a *NotFoundError if required is set and
// nil otherwise; in both cases nothing is cached.
func (ns *Namespace) Load(name string, required bool) error {
	if ns.has(name) {
		return nil
	}

	if validName(name) {
		for _, pp := range ns.PrefixPaths() {
			file := ns.bootstrapPath(pp.Path, name)
			if !ns.exists(file) {
				continue
			}
			return ns.initPlugin(name, pp.Prefix, file)
		}
	}

	ns.emit(hooks.EventPluginMissing, name, nil)
	if required {
		return &NotFoundError{Plugin: name, Namespace: ns.name, Reason: ReasonNoBootstrap}
	}
	ns.log.Debug().Str("plugin", name).Msg("plugin not found")
	return nil
}

// LoadAll instantiates every plugin found directly below the prefix paths
// that is not loaded yet. Prefix paths are scanned in registration order and
// directories within a path in name order. Missing prefix directories are
// skipped.
func (ns *Namespace) LoadAll() error {
	loaded := 0
	for _, pp := range ns.PrefixPaths() {
		entries, err := afero.ReadDir(ns.fs, pp.Path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				ns.log.Debug().Str("path", pp.Path).Msg("prefix path does not exist")
				continue
			}
			return fmt.Errorf("scan %s: %w", pp.Path, err)
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			name := entry.Name()
			if ns.has(name) {
				continue
			}
			file := ns.bootstrapPath(pp.Path, name)
			if !ns.exists(file) {
				continue
			}
			if err := ns.initPlugin(name, pp.Prefix, file); err != nil {
				return err
			}
			loaded++
		}
	}

	ns.log.Debug().Int("loaded", loaded).Msg("namespace scanned")
	ns.emit(hooks.EventNamespaceScanned, "", map[string]any{"loaded": loaded})
	return nil
}

// Get returns the plugin name, loading it first when necessary. A plugin
// that cannot be found yields a *NotFoundError if required is set and
// (nil, nil) otherwise.
func (ns *Namespace) Get(name string, required bool) (Bootstrap, error) {
	if !ns.has(name) {
		if err := ns.Load(name, required); err != nil {
			return nil, err
		}
	}

	ns.mu.RLock()
	p, ok := ns.plugins[name]
	ns.mu.RUnlock()

	if ok && p != nil {
		return p, nil
	}
	if required {
		return nil, &NotFoundError{Plugin: name, Namespace: ns.name, Reason: ReasonNoBootstrap}
	}
	return nil, nil
}

// List returns the names of the loaded plugins in load order.
func (ns *Namespace) List() []string {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	out := make([]string, len(ns.order))
	copy(out, ns.order)
	return out
}

// Count returns the number of loaded plugins.
func (ns *Namespace) Count() int {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	return len(ns.plugins)
}

// Info returns where the loaded plugin name came from.
func (ns *Namespace) Info(name string) (PluginInfo, bool) {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	info, ok := ns.infos[name]
	return info, ok
}

// Manifest reads the bootstrap file of the loaded plugin name.
func (ns *Namespace) Manifest(name string) (*Manifest, error) {
	info, ok := ns.Info(name)
	if !ok {
		return nil, &NotFoundError{Plugin: name, Namespace: ns.name}
	}
	return LoadManifest(ns.fs, info.File)
}

func (ns *Namespace) initPlugin(name, prefix, file string) error {
	class := ClassName(prefix, name)

	factory, err := ns.classes.LoadClass(class, file)
	if err != nil {
		return fmt.Errorf("load class %s: %w", class, err)
	}

	p, err := factory(name, ns)
	if err != nil {
		return fmt.Errorf("instantiate %s: %w", class, err)
	}
	if p == nil {
		return fmt.Errorf("instantiate %s: factory returned nil", class)
	}

	info := PluginInfo{Name: name, Namespace: ns.name, Class: class, Prefix: prefix, File: file}

	ns.mu.Lock()
	if _, exists := ns.plugins[name]; !exists {
		ns.order = append(ns.order, name)
	}
	ns.plugins[name] = p
	ns.infos[name] = info
	ns.mu.Unlock()

	ns.log.Info().Str("plugin", name).Str("class", class).Str("file", file).Msg("plugin loaded")
	ns.emit(hooks.EventPluginLoaded, name, map[string]any{
		"class":  class,
		"prefix": prefix,
		"file":   file,
	})
	return nil
}

func (ns *Namespace) has(name string) bool {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	_, ok := ns.plugins[name]
	return ok
}

func (ns *Namespace) bootstrapPath(dir, name string) string {
	return filepath.Join(dir, name, ns.bootstrapFile)
}

// exists reports whether file is present and not a directory.
func (ns *Namespace) exists(file string) bool {
	fi, err := ns.fs.Stat(file)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			ns.log.Warn().Err(err).Str("file", file).Msg("stat bootstrap")
		}
		return false
	}
	return !fi.IsDir()
}

// resolveDir makes path absolute and clean with a trailing separator.
// Symlinks are resolved for existing directories on the OS filesystem.
func (ns *Namespace) resolveDir(path string) string {
	dir, err := filepath.Abs(path)
	if err != nil {
		dir = filepath.Clean(path)
	}
	if _, ok := ns.fs.(*afero.OsFs); ok {
		if real, err := filepath.EvalSymlinks(dir); err == nil {
			dir = real
		}
	}
	return strings.TrimSuffix(dir, string(filepath.Separator)) + string(filepath.Separator)
}

func (ns *Namespace) emit(event, plugin string, data map[string]any) {
	if ns.hooks == nil {
		return
	}
	ns.hooks.Emit(context.Background(), hooks.Payload{
		Event:     event,
		Namespace: ns.name,
		Plugin:    plugin,
		Data:      data,
	})
}

// validName rejects names that would escape the prefix directory.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
