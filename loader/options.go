package loader

import (
	"log/slog"

	"github.com/royalcat/rdensity/rdnew"
)

type options struct {
	logger    *slog.Logger
	projector rdnew.Projector
	cacheDir  string
	cacheKey  string
	saveCache bool
	progress  bool
}

func loadOptions(opts ...Option) options {
	options := options{
		logger:    slog.Default(),
		projector: rdnew.RD{},
	}
	for _, o := range opts {
		o.apply(&options)
	}
	return options
}

type Option interface {
	apply(*options)
}

type loggerOption struct{ l *slog.Logger }

func (o loggerOption) apply(opts *options) {
	opts.logger = o.l
}

// Default: slog.Default()
func WithLogger(l *slog.Logger) Option {
	return loggerOption{l}
}

type projectorOption struct{ p rdnew.Projector }

func (o projectorOption) apply(opts *options) {
	opts.projector = o.p
}

// Default: rdnew.RD
func WithProjector(p rdnew.Projector) Option {
	return projectorOption{p}
}

type cacheOption struct {
	dir, key string
	save     bool
}

func (o cacheOption) apply(opts *options) {
	opts.cacheDir = o.dir
	opts.cacheKey = o.key
	opts.saveCache = o.save
}

// WithCache reads <dir>/<key> instead of the sources when it exists. With
// save set, a fresh load is written there. Default: no cache.
func WithCache(dir, key string, save bool) Option {
	return cacheOption{dir: dir, key: key, save: save}
}

type progressOption bool

func (o progressOption) apply(opts *options) {
	opts.progress = bool(o)
}

// Default: false
func WithProgress(enabled bool) Option {
	return progressOption(enabled)
}
