package layout

import "fmt"

// nodeID is a handle into a Quadtree's node arena. Handles stay valid until
// the node is recycled by a collapse.
type nodeID int32

const noNode nodeID = -1

// leafChildren marks a node without children.
var leafChildren = [4]nodeID{noNode, noNode, noNode, noNode}

type node[T Spatial] struct {
	bb       BoundingBox
	items    []T
	parent   nodeID
	children [4]nodeID // NW, NE, SW, SE
	pooled   bool
}

func (n *node[T]) isLeaf() bool {
	return n.children[0] == noNode
}

// node resolves a handle. A handle that is out of range or points at a
// recycled slot means the tree is corrupt.
func (q *Quadtree[T]) node(id nodeID) (*node[T], error) {
	if id < 0 || int(id) >= len(q.nodes) || q.nodes[id].pooled {
		return nil, fmt.Errorf("%w: node %d does not resolve (arena size %d)", ErrInconsistent, id, len(q.nodes))
	}
	return &q.nodes[id], nil
}

// nodeFromPool hands out a fresh leaf. Recycled slots are reused before the
// arena grows. Growing may move the arena, so callers must not hold *node
// pointers across this call.
func (q *Quadtree[T]) nodeFromPool(bb BoundingBox, parent nodeID) nodeID {
	var items []T
	id := q.pooledNodes
	if id != noNode {
		q.pooledNodes = q.nodes[id].parent
		items = q.nodes[id].items
	} else {
		q.nodes = append(q.nodes, node[T]{})
		id = nodeID(len(q.nodes) - 1)
	}
	q.nodes[id] = node[T]{
		bb:       bb,
		items:    items,
		parent:   parent,
		children: leafChildren,
	}
	return id
}

// nodeRecycle returns a slot to the pool. The parent field links the free
// list while the slot is pooled.
func (q *Quadtree[T]) nodeRecycle(id nodeID) {
	n := &q.nodes[id]
	clear(n.items)
	*n = node[T]{
		items:    n.items[:0],
		parent:   q.pooledNodes,
		children: leafChildren,
		pooled:   true,
	}
	q.pooledNodes = id
}

// descend walks from the node from towards the deepest node whose box fully
// contains bb. Children are tried in NW, NE, SW, SE order and the first one
// containing bb wins. When no child contains bb the current node is the
// answer, even if its own box does not contain bb (only possible at the
// root).
func (q *Quadtree[T]) descend(from nodeID, bb BoundingBox) (nodeID, error) {
	id := from
	for {
		n, err := q.node(id)
		if err != nil {
			return noNode, err
		}
		if n.isLeaf() {
			return id, nil
		}
		next := noNode
		for _, c := range n.children {
			child, err := q.node(c)
			if err != nil {
				return noNode, err
			}
			if child.bb.Contains(bb) {
				next = c
				break
			}
		}
		if next == noNode {
			return id, nil
		}
		id = next
	}
}
