package store

// Option adjusts a single save or load call.
type Option func(*callOptions)

type callOptions struct {
	skipCache bool
}

// WithoutCache makes this call bypass the cache: a save will not record its
// content and a load will neither consult nor populate the cache. Other
// callers and later calls are unaffected.
func WithoutCache() Option {
	return func(o *callOptions) {
		o.skipCache = true
	}
}

func applyOptions(opts []Option) callOptions {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
