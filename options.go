package prealloc

type options struct {
	allocator        Allocator
	tag              Tag
	logger           *Logger
	metricsCollector MetricsCollector
}

// defaultOptions backs every Array constructed without options, including
// the zero value.
var defaultOptions = &options{
	allocator:        HeapAllocator{},
	metricsCollector: NoopMetricsCollector{},
}

// Option configures how an Array obtains and reports overflow storage.
//
// The resolved configuration is shared by an Array and its clones, and
// travels together with the overflow region on Swap.
type Option func(*options)

// WithAllocator configures the allocator consulted for every overflow region.
//
// If nil is passed, HeapAllocator is used.
//
// Example with a budgeted controller:
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 64 << 20})
//	arr := prealloc.New[int, [16]int, prealloc.Plain[int]](
//	    prealloc.WithAllocator(rc),
//	    prealloc.WithTag("conn.keys"),
//	)
func WithAllocator(a Allocator) Option {
	return func(o *options) {
		if a == nil {
			a = HeapAllocator{}
		}
		o.allocator = a
	}
}

// WithTag configures the accounting tag passed to the allocator.
func WithTag(tag Tag) Option {
	return func(o *options) {
		o.tag = tag
	}
}

// WithLogger configures structured logging of storage transitions.
// Pass nil to disable logging (the default).
func WithLogger(l *Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for storage events.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &prealloc.BasicMetricsCollector{}
//	arr := prealloc.New[int, [4]int, prealloc.Plain[int]](prealloc.WithMetricsCollector(metrics))
//	// ... use arr ...
//	stats := metrics.GetStats()
//	fmt.Printf("spills: %d, refused: %d\n", stats.SpillCount, stats.ReserveErrors)
func WithMetricsCollector(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metricsCollector = m
	}
}

func resolveOptions(optFns []Option) *options {
	if len(optFns) == 0 {
		return defaultOptions
	}
	o := *defaultOptions
	for _, fn := range optFns {
		fn(&o)
	}
	return &o
}
