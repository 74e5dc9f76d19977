package layout

import "fmt"

// Point is a degenerate shape. Its bounding box has zero area.
type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

func (p Point) Equal(other Point) bool {
	return p.X == other.X && p.Y == other.Y
}

func (p Point) BoundingBox() BoundingBox {
	return NewPointBox(p.X, p.Y)
}

func (p Point) Contains(x, y int) bool {
	return p.X == x && p.Y == y
}

// ContainsBox is true only for the point's own degenerate box.
func (p Point) ContainsBox(bb BoundingBox) bool {
	return bb == p.BoundingBox()
}

func (p *Point) Translate(dx, dy int) {
	p.X += dx
	p.Y += dy
}

func (p Point) Add(other Point) Point {
	return Point{p.X + other.X, p.Y + other.Y}
}

func (p Point) Sub(other Point) Point {
	return Point{p.X - other.X, p.Y - other.Y}
}
