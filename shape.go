package layout

// Boundable is implemented by everything that can be stored in a Quadtree.
// The returned box is the item's spatial key; it must not change while the
// item is stored.
type Boundable interface {
	BoundingBox() BoundingBox
}

// Spatial is the element constraint of Quadtree. Value types and pointer
// types both qualify as long as they are comparable; Remove matches stored
// items with ==.
type Spatial interface {
	comparable
	Boundable
}

// Shape is the capability set shared by the layout primitives.
type Shape interface {
	Boundable
	Contains(x, y int) bool
	ContainsBox(bb BoundingBox) bool
	Translate(dx, dy int)
}

var (
	_ Shape = (*Point)(nil)
	_ Shape = (*Rectangle)(nil)
)
