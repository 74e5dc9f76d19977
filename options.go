package layout

const (
	// DefaultCapacity is the number of items a leaf holds before it splits.
	DefaultCapacity = 200
	// DefaultMinNodeSize is the width/height at or below which nodes never
	// split, whatever their item count.
	DefaultMinNodeSize = 10
)

// Option configures a Quadtree during creation.
//
// Example:
//
//	tree := layout.NewQuadtree[*layout.Rectangle](world,
//	    layout.WithCapacity(32),
//	    layout.WithMinNodeSize(4))
type Option func(*options)

type options struct {
	capacity    int
	minNodeSize int
}

func defaultOptions() options {
	return options{
		capacity:    DefaultCapacity,
		minNodeSize: DefaultMinNodeSize,
	}
}

// WithCapacity sets the per node item count that triggers a split. Values
// below 1 are ignored with a warning.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n < 1 {
			Logger().Warn("layout: ignoring quadtree capacity", "capacity", n, "default", DefaultCapacity)
			return
		}
		o.capacity = n
	}
}

// WithMinNodeSize sets the size at or below which a node is never split.
// Values below 1 are ignored with a warning.
func WithMinNodeSize(n int) Option {
	return func(o *options) {
		if n < 1 {
			Logger().Warn("layout: ignoring quadtree minimum node size", "size", n, "default", DefaultMinNodeSize)
			return
		}
		o.minNodeSize = n
	}
}
