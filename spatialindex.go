package layout

// SpatialIndexer is what the layout model needs from a spatial index: keyed
// insertion and removal, a full walk, and a walk over a query box.
type SpatialIndexer[T Spatial] interface {
	Count() int
	Each(f func(obj T))
	Contains(obj T) bool
	Insert(obj T) error
	Remove(obj T) (bool, error)
	Query(bb BoundingBox, f func(obj T))
}

var (
	_ SpatialIndexer[Point]      = (*Quadtree[Point])(nil)
	_ SpatialIndexer[*Rectangle] = (*Quadtree[*Rectangle])(nil)
)

// Count returns the number of stored entries without walking the tree.
func (q *Quadtree[T]) Count() int {
	return q.count
}

// Each calls f for every stored entry in breadth first node order.
func (q *Quadtree[T]) Each(f func(obj T)) {
	for obj := range q.All() {
		f(obj)
	}
}

// Query calls f for every entry whose box intersects bb.
func (q *Quadtree[T]) Query(bb BoundingBox, f func(obj T)) {
	for obj := range q.Region(bb) {
		f(obj)
	}
}
