package layout

// Rectangle is an axis aligned shape whose bounding box is the shape itself.
type Rectangle struct {
	bb BoundingBox
}

func NewRectangle(minX, maxX, minY, maxY int) *Rectangle {
	return &Rectangle{bb: NewBoundingBox(minX, maxX, minY, maxY)}
}

func (r *Rectangle) BoundingBox() BoundingBox {
	return r.bb
}

func (r *Rectangle) Width() int  { return r.bb.Width() }
func (r *Rectangle) Height() int { return r.bb.Height() }

func (r *Rectangle) Contains(x, y int) bool {
	return r.bb.ContainsPoint(x, y)
}

func (r *Rectangle) ContainsBox(bb BoundingBox) bool {
	return r.bb.Contains(bb)
}

func (r *Rectangle) Translate(dx, dy int) {
	r.bb.Translate(dx, dy)
}

func (r *Rectangle) String() string {
	return "rect" + r.bb.String()
}
