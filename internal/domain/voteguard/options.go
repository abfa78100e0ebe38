package voteguard

// Option applies a configuration option to the in-memory guard.
type Option func(*memoryGuard)

// WithMaxSize bounds the number of keys kept in memory. Zero or negative
// values make the guard unbounded.
func WithMaxSize(size int) Option {
	return func(g *memoryGuard) {
		g.maxSize = size
	}
}
