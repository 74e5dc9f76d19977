package layout

import "fmt"

// BoundingBox is an axis aligned box on the integer layout grid. Both bounds
// are inclusive. The constructor and every setter keep minX <= maxX and
// minY <= maxY by reordering values, never by rejecting them.
type BoundingBox struct {
	minX, maxX, minY, maxY int
}

func NewBoundingBox(minX, maxX, minY, maxY int) BoundingBox {
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return BoundingBox{minX: minX, maxX: maxX, minY: minY, maxY: maxY}
}

// NewPointBox returns the degenerate box covering the single point (x, y).
func NewPointBox(x, y int) BoundingBox {
	return BoundingBox{minX: x, maxX: x, minY: y, maxY: y}
}

func (bb BoundingBox) MinX() int { return bb.minX }
func (bb BoundingBox) MaxX() int { return bb.maxX }
func (bb BoundingBox) MinY() int { return bb.minY }
func (bb BoundingBox) MaxY() int { return bb.maxY }

func (bb BoundingBox) Width() int {
	return bb.maxX - bb.minX
}

func (bb BoundingBox) Height() int {
	return bb.maxY - bb.minY
}

func (bb BoundingBox) CenterX() int {
	return bb.minX + bb.Width()/2
}

func (bb BoundingBox) CenterY() int {
	return bb.minY + bb.Height()/2
}

func (bb BoundingBox) Area() int {
	return bb.Width() * bb.Height()
}

// IsPoint reports whether the box has zero width and zero height.
func (bb BoundingBox) IsPoint() bool {
	return bb.minX == bb.maxX && bb.minY == bb.maxY
}

// Intersects reports whether the two boxes overlap on both axes. Touching
// edges count as an overlap.
func (a BoundingBox) Intersects(b BoundingBox) bool {
	return a.minX <= b.maxX && b.minX <= a.maxX && a.minY <= b.maxY && b.minY <= a.maxY
}

// Contains reports whether other lies entirely inside bb.
func (bb BoundingBox) Contains(other BoundingBox) bool {
	return bb.minX <= other.minX && bb.maxX >= other.maxX && bb.minY <= other.minY && bb.maxY >= other.maxY
}

func (bb BoundingBox) ContainsPoint(x, y int) bool {
	return bb.minX <= x && bb.maxX >= x && bb.minY <= y && bb.maxY >= y
}

func (a BoundingBox) Merge(b BoundingBox) BoundingBox {
	return BoundingBox{
		minX: min(a.minX, b.minX),
		maxX: max(a.maxX, b.maxX),
		minY: min(a.minY, b.minY),
		maxY: max(a.maxY, b.maxY),
	}
}

func (a BoundingBox) Equal(b BoundingBox) bool {
	return a == b
}

func (bb *BoundingBox) SetMinX(x int) {
	bb.minX, bb.maxX = min(x, bb.maxX), max(x, bb.maxX)
}

func (bb *BoundingBox) SetMaxX(x int) {
	bb.minX, bb.maxX = min(x, bb.minX), max(x, bb.minX)
}

func (bb *BoundingBox) SetMinY(y int) {
	bb.minY, bb.maxY = min(y, bb.maxY), max(y, bb.maxY)
}

func (bb *BoundingBox) SetMaxY(y int) {
	bb.minY, bb.maxY = min(y, bb.minY), max(y, bb.minY)
}

func (bb *BoundingBox) Translate(dx, dy int) {
	bb.minX += dx
	bb.maxX += dx
	bb.minY += dy
	bb.maxY += dy
}

// Offset returns a translated copy of bb.
func (bb BoundingBox) Offset(dx, dy int) BoundingBox {
	bb.Translate(dx, dy)
	return bb
}

// quadrants cuts bb at its center into NW, NE, SW and SE. The center column
// and row belong to the west and north quadrants, so the four never overlap.
// bb must be at least 1 wide and 1 high.
func (bb BoundingBox) quadrants() [4]BoundingBox {
	cx, cy := bb.CenterX(), bb.CenterY()
	return [4]BoundingBox{
		{minX: bb.minX, maxX: cx, minY: bb.minY, maxY: cy},
		{minX: cx + 1, maxX: bb.maxX, minY: bb.minY, maxY: cy},
		{minX: bb.minX, maxX: cx, minY: cy + 1, maxY: bb.maxY},
		{minX: cx + 1, maxX: bb.maxX, minY: cy + 1, maxY: bb.maxY},
	}
}

func (bb BoundingBox) String() string {
	return fmt.Sprintf("(%d,%d)x(%d,%d)", bb.minX, bb.maxX, bb.minY, bb.maxY)
}
