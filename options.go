package gridpath

// Option is a functional option for configuring a Searcher.
type Option func(*searcherConfig)

type searcherConfig struct {
	metric   MetricID
	memLimit int
}

func defaultConfig() searcherConfig {
	return searcherConfig{
		metric:   MetricChebyshev,
		memLimit: 0, // unlimited
	}
}

// WithMetric selects the heuristic pair. MetricChebyshev is the default.
func WithMetric(id MetricID) Option {
	return func(c *searcherConfig) {
		c.metric = id
	}
}

// WithMemoryLimit caps the total bytes the searcher's arena, hash map, and
// open list may hold. Growth beyond the limit surfaces as OutOfMemory from
// the search calls. 0 means unlimited.
func WithMemoryLimit(bytes int) Option {
	return func(c *searcherConfig) {
		c.memLimit = bytes
	}
}
