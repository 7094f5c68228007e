package plugin

import (
	"github.com/spf13/afero"

	"github.com/soyeahso/enlight/internal/hooks"
	"github.com/soyeahso/enlight/internal/logging"
)

// DefaultBootstrapFile is the file expected inside every plugin directory.
const DefaultBootstrapFile = "Bootstrap.yaml"

// Option configures a Namespace or Manager.
type Option func(*options)

type options struct {
	fs            afero.Fs
	log           *logging.Logger
	hooks         *hooks.Manager
	bootstrapFile string
}

func buildOptions(opts []Option) options {
	o := options{
		fs:            afero.NewOsFs(),
		log:           logging.Nop(),
		bootstrapFile: DefaultBootstrapFile,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithFs sets the filesystem used for discovery. Defaults to the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(o *options) {
		if fs != nil {
			o.fs = fs
		}
	}
}

func WithLogger(log *logging.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithHooks publishes lifecycle events to hm.
func WithHooks(hm *hooks.Manager) Option {
	return func(o *options) { o.hooks = hm }
}

// WithBootstrapFile overrides the bootstrap file name.
func WithBootstrapFile(name string) Option {
	return func(o *options) {
		if name != "" {
			o.bootstrapFile = name
		}
	}
}
