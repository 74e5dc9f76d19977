package layout

import "iter"

// RegionIterator walks the entries whose bounding box intersects a query box.
//
// It descends to the deepest node containing the query box, walks that
// subtree like an Iterator, then climbs the parent chain and checks the
// entries held by each ancestor. Entries anywhere else lie in quadrants
// disjoint from the query box and are never looked at.
//
// The same invalidation rules as for Iterator apply.
type RegionIterator[T Spatial] struct {
	tree  *Quadtree[T]
	stamp uint64
	query BoundingBox

	sub *Iterator[T]
	up  nodeID // ancestor being scanned once sub is exhausted
	pos int

	done bool
	err  error
}

// IterRegion returns an iterator over the entries intersecting bb.
func (q *Quadtree[T]) IterRegion(bb BoundingBox) *RegionIterator[T] {
	r := &RegionIterator[T]{
		tree:  q,
		stamp: q.stamp,
		query: bb,
		up:    noNode,
	}
	if q.count == 0 {
		r.finish(nil)
		return r
	}
	scope, err := q.descend(q.root, bb)
	if err != nil {
		r.finish(err)
		return r
	}
	r.sub = q.iterFrom(scope)
	r.up = q.nodes[scope].parent
	r.seek()
	return r
}

// IterRegionBounds is IterRegion for a box given by its bounds.
func (q *Quadtree[T]) IterRegionBounds(minX, maxX, minY, maxY int) *RegionIterator[T] {
	return q.IterRegion(NewBoundingBox(minX, maxX, minY, maxY))
}

func (r *RegionIterator[T]) seek() {
	for !r.sub.Done() {
		if r.sub.Item().BoundingBox().Intersects(r.query) {
			return
		}
		r.sub.Advance()
	}
	if err := r.sub.Err(); err != nil {
		r.finish(err)
		return
	}
	for r.up != noNode {
		n := &r.tree.nodes[r.up]
		for ; r.pos < len(n.items); r.pos++ {
			if n.items[r.pos].BoundingBox().Intersects(r.query) {
				return
			}
		}
		r.up = n.parent
		r.pos = 0
	}
	r.finish(nil)
}

func (r *RegionIterator[T]) finish(err error) {
	r.done = true
	r.err = err
	r.up = noNode
	r.pos = 0
}

func (r *RegionIterator[T]) stale() bool {
	if !r.done && r.tree.stamp != r.stamp {
		r.finish(ErrStaleIterator)
	}
	return r.err != nil
}

// Done reports whether the iterator is exhausted or invalidated.
func (r *RegionIterator[T]) Done() bool {
	r.stale()
	return r.done
}

// Item returns the current entry, or the zero T once Done.
func (r *RegionIterator[T]) Item() T {
	var zero T
	if r.stale() || r.done {
		return zero
	}
	if !r.sub.Done() {
		return r.sub.Item()
	}
	return r.tree.nodes[r.up].items[r.pos]
}

// Advance moves to the next intersecting entry. It is a no-op once Done.
func (r *RegionIterator[T]) Advance() {
	if r.stale() || r.done {
		return
	}
	if !r.sub.Done() {
		r.sub.Advance()
	} else {
		r.pos++
	}
	r.seek()
}

func (r *RegionIterator[T]) Err() error {
	r.stale()
	return r.err
}

// Query returns the box the iterator filters on.
func (r *RegionIterator[T]) Query() BoundingBox {
	return r.query
}

// Equal reports whether both iterators are exhausted, or whether they filter
// on the same box and sit at the same position.
func (r *RegionIterator[T]) Equal(other *RegionIterator[T]) bool {
	if r.done && other.done {
		return true
	}
	if r.done != other.done || r.tree != other.tree || r.query != other.query {
		return false
	}
	return r.sub.Equal(other.sub) && r.up == other.up && r.pos == other.pos
}

// Region returns the entries intersecting bb as a sequence.
func (q *Quadtree[T]) Region(bb BoundingBox) iter.Seq[T] {
	return func(yield func(T) bool) {
		for r := q.IterRegion(bb); !r.Done(); r.Advance() {
			if !yield(r.Item()) {
				return
			}
		}
	}
}
