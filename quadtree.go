package layout

import (
	"fmt"
	"log/slog"
	"slices"
)

// Quadtree is a region quadtree over items with integer bounding boxes.
//
// Every item lives in the deepest node whose box fully contains the item's
// box. Items straddling a quadrant cut stay in the coarser node. A leaf splits
// into four quadrants once it holds Capacity items, unless its box is at or
// below the minimum node size; such leaves simply keep growing. A node whose
// four children are empty leaves collapses back into a leaf when an item is
// removed beneath it.
//
// The tree is not safe for concurrent use. Iterators must not outlive a
// mutation; see Iterator.
type Quadtree[T Spatial] struct {
	nodes       []node[T]
	pooledNodes nodeID
	root        nodeID

	capacity    int
	minNodeSize int

	count int
	stamp uint64
}

// NewQuadtree returns an empty tree covering world. Items outside world are
// accepted and kept in the root.
func NewQuadtree[T Spatial](world BoundingBox, opts ...Option) *Quadtree[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	q := &Quadtree[T]{
		pooledNodes: noNode,
		capacity:    o.capacity,
		minNodeSize: o.minNodeSize,
	}
	q.root = q.nodeFromPool(world, noNode)
	return q
}

func (q *Quadtree[T]) Bounds() BoundingBox {
	return q.nodes[q.root].bb
}

func (q *Quadtree[T]) Width() int  { return q.Bounds().Width() }
func (q *Quadtree[T]) Height() int { return q.Bounds().Height() }

func (q *Quadtree[T]) Capacity() int    { return q.capacity }
func (q *Quadtree[T]) MinNodeSize() int { return q.minNodeSize }

// IsLeaf reports whether the root has no children.
func (q *Quadtree[T]) IsLeaf() bool {
	return q.nodes[q.root].isLeaf()
}

// TotalSize counts the items of every node.
func (q *Quadtree[T]) TotalSize() int {
	return q.subtreeSize(q.root)
}

func (q *Quadtree[T]) subtreeSize(id nodeID) int {
	n := &q.nodes[id]
	size := len(n.items)
	if !n.isLeaf() {
		for _, c := range n.children {
			size += q.subtreeSize(c)
		}
	}
	return size
}

// Depth is 1 for a lone leaf and grows by one per level of children.
func (q *Quadtree[T]) Depth() int {
	return q.subtreeDepth(q.root)
}

func (q *Quadtree[T]) subtreeDepth(id nodeID) int {
	n := &q.nodes[id]
	if n.isLeaf() {
		return 1
	}
	deepest := 0
	for _, c := range n.children {
		deepest = max(deepest, q.subtreeDepth(c))
	}
	return 1 + deepest
}

func (q *Quadtree[T]) splittable(bb BoundingBox) bool {
	return bb.Width() > q.minNodeSize && bb.Height() > q.minNodeSize
}

// Insert stores item. Duplicates are kept as separate entries. At most one
// node is split per call.
func (q *Quadtree[T]) Insert(item T) error {
	bb := item.BoundingBox()
	id, err := q.descend(q.root, bb)
	if err != nil {
		return fmt.Errorf("insert %v: %w", bb, err)
	}

	n := &q.nodes[id]
	if n.isLeaf() && len(n.items) >= q.capacity && q.splittable(n.bb) {
		if err := q.split(id); err != nil {
			return fmt.Errorf("insert %v: %w", bb, err)
		}
		if id, err = q.descend(id, bb); err != nil {
			return fmt.Errorf("insert %v: %w", bb, err)
		}
	}

	n = &q.nodes[id]
	n.items = append(n.items, item)
	q.count++
	q.stamp++
	return nil
}

// split turns the leaf id into a parent of four quadrants and moves every
// local item that fits into a quadrant down one level.
func (q *Quadtree[T]) split(id nodeID) error {
	quads := q.nodes[id].bb.quadrants()
	for i, bb := range quads {
		c := q.nodeFromPool(bb, id)
		q.nodes[id].children[i] = c
	}

	n := &q.nodes[id]
	items := n.items
	kept := items[:0]
	for _, item := range items {
		target, err := q.descend(id, item.BoundingBox())
		if err != nil {
			return err
		}
		if target == id {
			kept = append(kept, item)
			continue
		}
		t := &q.nodes[target]
		t.items = append(t.items, item)
	}
	clear(items[len(kept):])
	n.items = kept

	Logger().Debug("layout: split quadtree node",
		slog.Int("node", int(id)),
		slog.String("box", n.bb.String()),
		slog.Int("items", len(items)),
		slog.Int("kept", len(kept)))
	return nil
}

// Remove deletes one entry equal to item. It reports false when no such entry
// exists. After the removal a parent whose four children are all empty leaves
// is collapsed; the check looks at immediate children only and moves upward
// only while collapses keep leaving empty leaves behind.
func (q *Quadtree[T]) Remove(item T) (bool, error) {
	bb := item.BoundingBox()
	id, err := q.descend(q.root, bb)
	if err != nil {
		return false, fmt.Errorf("remove %v: %w", bb, err)
	}

	n := &q.nodes[id]
	i := slices.Index(n.items, item)
	if i < 0 {
		return false, nil
	}
	n.items = slices.Delete(n.items, i, i+1)
	q.count--
	q.stamp++

	candidate := id
	if n.isLeaf() {
		candidate = n.parent
	}
	for candidate != noNode {
		collapsed, err := q.collapse(candidate)
		if err != nil {
			return true, fmt.Errorf("remove %v: %w", bb, err)
		}
		c := &q.nodes[candidate]
		if !collapsed || len(c.items) > 0 {
			break
		}
		candidate = c.parent
	}
	return true, nil
}

// collapse drops the children of id if each of them is an empty leaf.
func (q *Quadtree[T]) collapse(id nodeID) (bool, error) {
	n, err := q.node(id)
	if err != nil {
		return false, err
	}
	if n.isLeaf() {
		return false, nil
	}
	for _, c := range n.children {
		child, err := q.node(c)
		if err != nil {
			return false, err
		}
		if !child.isLeaf() || len(child.items) > 0 {
			return false, nil
		}
	}
	for _, c := range n.children {
		q.nodeRecycle(c)
	}
	n.children = leafChildren

	Logger().Debug("layout: collapsed quadtree node",
		slog.Int("node", int(id)),
		slog.String("box", n.bb.String()),
		slog.Int("items", len(n.items)))
	return true, nil
}

// Contains reports whether an entry equal to item is stored.
func (q *Quadtree[T]) Contains(item T) bool {
	id, err := q.descend(q.root, item.BoundingBox())
	if err != nil {
		return false
	}
	return slices.Contains(q.nodes[id].items, item)
}

// Clear drops every item and node, keeping the world box and options.
func (q *Quadtree[T]) Clear() {
	world := q.Bounds()
	clear(q.nodes)
	q.nodes = q.nodes[:0]
	q.pooledNodes = noNode
	q.root = q.nodeFromPool(world, noNode)
	q.count = 0
	q.stamp++
}

// NodeInfo describes one node for VisitNodes.
type NodeInfo struct {
	Bounds BoundingBox
	Depth  int
	Items  int
	Leaf   bool
}

// VisitNodes walks the nodes breadth first, root first, children in NW, NE,
// SW, SE order. Returning false from f stops the walk.
func (q *Quadtree[T]) VisitNodes(f func(NodeInfo) bool) {
	type entry struct {
		id    nodeID
		depth int
	}
	queue := []entry{{q.root, 1}}
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		n := &q.nodes[e.id]
		if !f(NodeInfo{Bounds: n.bb, Depth: e.depth, Items: len(n.items), Leaf: n.isLeaf()}) {
			return
		}
		if !n.isLeaf() {
			for _, c := range n.children {
				queue = append(queue, entry{c, e.depth + 1})
			}
		}
	}
}
