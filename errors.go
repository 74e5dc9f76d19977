package layout

import "errors"

var (
	// ErrInconsistent reports a broken internal invariant: a node handle that
	// does not resolve, or a tree shape Validate rejects. It should never be
	// returned by a correctly built tree.
	ErrInconsistent = errors.New("layout: quadtree is internally inconsistent")

	// ErrStaleIterator is reported by an iterator advanced after the tree it
	// walks was modified.
	ErrStaleIterator = errors.New("layout: iterator used after tree mutation")
)
