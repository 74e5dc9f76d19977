package layout

import (
	"iter"
	"slices"
)

// Iterator walks every entry of a Quadtree, or of one of its subtrees. Nodes
// are visited breadth first; the entries of a node come out in insertion
// order.
//
// An Iterator is positioned on its first entry when created:
//
//	for it := tree.Iter(); !it.Done(); it.Advance() {
//	    use(it.Item())
//	}
//
// Any Insert, Remove or Clear on the tree invalidates the iterator. A stale
// iterator reports Done and Err returns ErrStaleIterator.
type Iterator[T Spatial] struct {
	tree  *Quadtree[T]
	stamp uint64

	queue []nodeID
	cur   nodeID
	pos   int
	done  bool
	err   error
}

// Iter returns an iterator over the whole tree.
func (q *Quadtree[T]) Iter() *Iterator[T] {
	return q.iterFrom(q.root)
}

func (q *Quadtree[T]) iterFrom(id nodeID) *Iterator[T] {
	it := &Iterator[T]{
		tree:  q,
		stamp: q.stamp,
		queue: []nodeID{id},
		cur:   noNode,
	}
	it.seek()
	return it
}

// seek settles on the next entry at or after the cursor, pulling nodes off
// the queue as the current one runs dry.
func (it *Iterator[T]) seek() {
	for {
		if it.cur != noNode && it.pos < len(it.tree.nodes[it.cur].items) {
			return
		}
		if len(it.queue) == 0 {
			it.finish(nil)
			return
		}
		it.cur, it.queue = it.queue[0], it.queue[1:]
		it.pos = 0
		if n := &it.tree.nodes[it.cur]; !n.isLeaf() {
			it.queue = append(it.queue, n.children[:]...)
		}
	}
}

func (it *Iterator[T]) finish(err error) {
	it.done = true
	it.err = err
	it.cur = noNode
	it.pos = 0
	it.queue = nil
}

func (it *Iterator[T]) stale() bool {
	if !it.done && it.tree.stamp != it.stamp {
		it.finish(ErrStaleIterator)
	}
	return it.err != nil
}

// Done reports whether the iterator is exhausted or invalidated.
func (it *Iterator[T]) Done() bool {
	it.stale()
	return it.done
}

// Item returns the current entry, or the zero T once Done.
func (it *Iterator[T]) Item() T {
	var zero T
	if it.stale() || it.done {
		return zero
	}
	return it.tree.nodes[it.cur].items[it.pos]
}

// Advance moves to the next entry. It is a no-op once Done.
func (it *Iterator[T]) Advance() {
	if it.stale() || it.done {
		return
	}
	it.pos++
	it.seek()
}

// Err returns ErrStaleIterator if the tree changed under the iterator.
func (it *Iterator[T]) Err() error {
	it.stale()
	return it.err
}

// Equal reports whether both iterators walk the same tree and sit at the same
// position with the same pending nodes.
func (it *Iterator[T]) Equal(other *Iterator[T]) bool {
	return it.tree == other.tree &&
		it.cur == other.cur &&
		it.pos == other.pos &&
		it.done == other.done &&
		slices.Equal(it.queue, other.queue)
}

// All returns every stored entry as a sequence. The sequence ends early if
// the tree is modified while it runs.
//
// Example:
//
//	for obj := range tree.All() {
//	    fmt.Println(obj.BoundingBox())
//	}
func (q *Quadtree[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for it := q.Iter(); !it.Done(); it.Advance() {
			if !yield(it.Item()) {
				return
			}
		}
	}
}
