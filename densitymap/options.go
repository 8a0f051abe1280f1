package densitymap

import (
	"log/slog"

	"github.com/royalcat/rdensity/rdnew"
)

type options struct {
	logger    *slog.Logger
	projector rdnew.Projector
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
