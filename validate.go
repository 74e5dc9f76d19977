package layout

import "fmt"

// Validate checks the structural invariants of the tree:
//
//   - every node has zero or four children, and children point back at it
//   - the four children partition the parent box at its center
//   - a non-root node's entries lie inside its box
//   - an entry of an inner node fits in none of its quadrants
//   - every arena slot is either reachable from the root or pooled
//   - the cached count matches the entries actually stored
//
// Violations are reported wrapped in ErrInconsistent.
func (q *Quadtree[T]) Validate() error {
	reached := 0
	stored := 0
	queue := []nodeID{q.root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		n, err := q.node(id)
		if err != nil {
			return err
		}
		reached++
		stored += len(n.items)

		for _, item := range n.items {
			bb := item.BoundingBox()
			if id != q.root && !n.bb.Contains(bb) {
				return q.invalid(id, "entry %v outside node box %v", bb, n.bb)
			}
		}
		if n.isLeaf() {
			for _, c := range n.children {
				if c != noNode {
					return q.invalid(id, "leaf has a partial child set %v", n.children)
				}
			}
			continue
		}

		quads := n.bb.quadrants()
		for i, c := range n.children {
			child, err := q.node(c)
			if err != nil {
				return err
			}
			if child.parent != id {
				return q.invalid(c, "parent is %d, want %d", child.parent, id)
			}
			if child.bb != quads[i] {
				return q.invalid(c, "box %v, want quadrant %v", child.bb, quads[i])
			}
			queue = append(queue, c)
		}
		for _, item := range n.items {
			bb := item.BoundingBox()
			for _, quad := range quads {
				if quad.Contains(bb) {
					return q.invalid(id, "entry %v belongs in quadrant %v", bb, quad)
				}
			}
		}
	}

	pooled := 0
	for id := q.pooledNodes; id != noNode; id = q.nodes[id].parent {
		if !q.nodes[id].pooled {
			return q.invalid(id, "free list holds a live node")
		}
		pooled++
		if pooled > len(q.nodes) {
			return q.invalid(id, "free list cycles")
		}
	}
	if reached+pooled != len(q.nodes) {
		return fmt.Errorf("%w: %d reachable and %d pooled nodes in an arena of %d",
			ErrInconsistent, reached, pooled, len(q.nodes))
	}
	if stored != q.count {
		return fmt.Errorf("%w: %d entries stored, count says %d", ErrInconsistent, stored, q.count)
	}
	return nil
}

func (q *Quadtree[T]) invalid(id nodeID, format string, args ...any) error {
	return fmt.Errorf("%w: node %d: %s", ErrInconsistent, id, fmt.Sprintf(format, args...))
}
