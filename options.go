package opfgo

import (
	"github.com/hupe1980/opfgo/compress"
	"github.com/hupe1980/opfgo/resource"
	"github.com/hupe1980/opfgo/subgraph"
)

type options struct {
	logger      *Logger
	metrics     MetricsCollector
	controller  *resource.Controller
	compression *compress.Type // nil: derive from the file or blob name
	concurrency int
}

// Option configures file and repository operations.
type Option func(*options)

func newOptions(optFns []Option) options {
	o := options{
		logger:      NoopLogger(),
		metrics:     NoopMetricsCollector{},
		concurrency: 4,
	}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetrics sets the metrics collector. A nil collector disables metrics.
func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}

// WithController attaches a resource controller that budgets decoded
// datasets, throttles repository IO and bounds parallel loads.
func WithController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// WithCompression forces the container format instead of deriving it from
// the .zst or .lz4 extension.
func WithCompression(t compress.Type) Option {
	return func(o *options) {
		o.compression = &t
	}
}

// WithConcurrency sets how many datasets Repository.LoadAll decodes at once.
// Values below 1 are treated as 1.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.concurrency = n
	}
}

func (o *options) compressionFor(name string) compress.Type {
	if o.compression != nil {
		return *o.compression
	}
	return compress.TypeFromPath(name)
}

func (o *options) subgraphOptions() []subgraph.Option {
	if o.controller == nil {
		return nil
	}
	return []subgraph.Option{subgraph.WithController(o.controller)}
}
