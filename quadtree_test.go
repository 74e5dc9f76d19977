package layout

import (
	"errors"
	"math/rand"
	"testing"
)

// block is a value type item; equal blocks are interchangeable.
type block struct {
	bb BoundingBox
}

func (b block) BoundingBox() BoundingBox { return b.bb }

func mustInsert[T Spatial](t *testing.T, q *Quadtree[T], items ...T) {
	t.Helper()
	for _, item := range items {
		if err := q.Insert(item); err != nil {
			t.Fatalf("Insert(%v) = %v", item, err)
		}
	}
}

func mustRemove[T Spatial](t *testing.T, q *Quadtree[T], item T) {
	t.Helper()
	ok, err := q.Remove(item)
	if err != nil {
		t.Fatalf("Remove(%v) = %v", item, err)
	}
	if !ok {
		t.Fatalf("Remove(%v) found nothing", item)
	}
}

func mustValidate[T Spatial](t *testing.T, q *Quadtree[T]) {
	t.Helper()
	if err := q.Validate(); err != nil {
		t.Fatal(err)
	}
}

func checkShape[T Spatial](t *testing.T, q *Quadtree[T], size, depth int) {
	t.Helper()
	if got := q.TotalSize(); got != size {
		t.Errorf("TotalSize() = %d, want %d", got, size)
	}
	if got := q.Count(); got != size {
		t.Errorf("Count() = %d, want %d", got, size)
	}
	if got := q.Depth(); got != depth {
		t.Errorf("Depth() = %d, want %d", got, depth)
	}
	mustValidate(t, q)
}

func TestNewQuadtree(t *testing.T) {
	world := NewBoundingBox(0, 200, 0, 100)
	q := NewQuadtree[block](world)
	if q.Bounds() != world || q.Width() != 200 || q.Height() != 100 {
		t.Errorf("Bounds() = %v, want %v", q.Bounds(), world)
	}
	if q.Capacity() != DefaultCapacity || q.MinNodeSize() != DefaultMinNodeSize {
		t.Errorf("options = %d/%d, want defaults", q.Capacity(), q.MinNodeSize())
	}
	if !q.IsLeaf() {
		t.Error("new tree should be a single leaf")
	}
	checkShape(t, q, 0, 1)
}

func TestQuadtreeSameItemSplitsOnce(t *testing.T) {
	q := NewQuadtree[block](NewBoundingBox(0, 100, 0, 100), WithCapacity(4))
	item := block{NewBoundingBox(5, 10, 5, 10)}

	mustInsert(t, q, item, item)
	checkShape(t, q, 2, 1)

	mustInsert(t, q, item, item)
	checkShape(t, q, 4, 1)

	mustInsert(t, q, item)
	checkShape(t, q, 5, 2)
	if q.IsLeaf() {
		t.Error("root should have split")
	}
}

func TestQuadtreeDepthRoundTrip(t *testing.T) {
	q := NewQuadtree[Point](NewBoundingBox(0, 100, 0, 100), WithCapacity(10))
	var points []Point
	for i := 0; i < 11; i++ {
		points = append(points, Point{i * 9, 100 - i*9})
	}

	mustInsert(t, q, points[:10]...)
	checkShape(t, q, 10, 1)

	mustInsert(t, q, points[10])
	checkShape(t, q, 11, 2)

	for _, p := range points {
		mustRemove(t, q, p)
	}
	checkShape(t, q, 0, 1)
}

func TestQuadtreeMinNodeSize(t *testing.T) {
	q := NewQuadtree[Point](NewBoundingBox(0, 10, 0, 10), WithCapacity(1))
	for i := 0; i < 5; i++ {
		mustInsert(t, q, Point{i, i})
	}
	checkShape(t, q, 5, 1)

	q = NewQuadtree[Point](NewBoundingBox(0, 11, 0, 11), WithCapacity(1))
	mustInsert(t, q, Point{0, 0}, Point{11, 11})
	checkShape(t, q, 2, 2)
}

func TestQuadtreeDuplicatesAndMissing(t *testing.T) {
	q := NewQuadtree[Point](NewBoundingBox(0, 100, 0, 100))
	p := Point{7, 7}
	mustInsert(t, q, p, p, p)

	seen := 0
	for got := range q.All() {
		if got != p {
			t.Errorf("All() yielded %v, want %v", got, p)
		}
		seen++
	}
	if seen != 3 {
		t.Errorf("All() yielded %d entries, want 3", seen)
	}

	mustRemove(t, q, p)
	checkShape(t, q, 2, 1)
	if !q.Contains(p) {
		t.Error("Contains() = false after removing one of three")
	}

	ok, err := q.Remove(Point{1, 1})
	if ok || err != nil {
		t.Errorf("Remove(absent) = %v, %v, want false, nil", ok, err)
	}
	checkShape(t, q, 2, 1)
}

func TestQuadtreeStraddlerStaysInParent(t *testing.T) {
	q := NewQuadtree[*Rectangle](NewBoundingBox(0, 100, 0, 100), WithCapacity(1), WithMinNodeSize(1))
	straddler := NewRectangle(40, 60, 40, 60)
	corner := NewRectangle(1, 2, 1, 2)
	mustInsert(t, q, straddler, corner)
	checkShape(t, q, 2, 2)

	var infos []NodeInfo
	q.VisitNodes(func(info NodeInfo) bool {
		infos = append(infos, info)
		return true
	})
	if len(infos) != 5 {
		t.Fatalf("VisitNodes saw %d nodes, want 5", len(infos))
	}
	if infos[0].Items != 1 || infos[0].Leaf || infos[0].Depth != 1 {
		t.Errorf("root = %+v, want one item, inner node", infos[0])
	}
	if infos[1].Items != 1 || !infos[1].Leaf || infos[1].Bounds != NewBoundingBox(0, 50, 0, 50) {
		t.Errorf("NW = %+v, want one item in (0,50)x(0,50)", infos[1])
	}
}

func TestQuadtreeOutsideWorld(t *testing.T) {
	q := NewQuadtree[*Rectangle](NewBoundingBox(0, 100, 0, 100), WithCapacity(1), WithMinNodeSize(1))
	far := NewRectangle(500, 510, -20, -10)
	mustInsert(t, q, NewRectangle(1, 2, 1, 2), far, NewRectangle(80, 90, 80, 90))
	mustValidate(t, q)
	if !q.Contains(far) {
		t.Fatal("Contains(far) = false")
	}

	var found []*Rectangle
	q.Query(NewBoundingBox(505, 600, -15, 0), func(r *Rectangle) {
		found = append(found, r)
	})
	if len(found) != 1 || found[0] != far {
		t.Errorf("Query found %v, want [%v]", found, far)
	}
	mustRemove(t, q, far)
	checkShape(t, q, 2, 2)
}

func TestQuadtreeCollapse(t *testing.T) {
	q := NewQuadtree[Point](NewBoundingBox(0, 100, 0, 100), WithCapacity(1), WithMinNodeSize(1))
	a, b := Point{1, 1}, Point{90, 90}
	mustInsert(t, q, a, b)
	checkShape(t, q, 2, 2)

	mustRemove(t, q, a)
	checkShape(t, q, 1, 2)

	mustRemove(t, q, b)
	checkShape(t, q, 0, 1)
}

func TestQuadtreeCollapseClimbs(t *testing.T) {
	q := NewQuadtree[Point](NewBoundingBox(0, 100, 0, 100), WithCapacity(1), WithMinNodeSize(1))
	points := []Point{{1, 1}, {2, 2}, {3, 3}}
	mustInsert(t, q, points...)
	checkShape(t, q, 3, 3)

	for _, p := range points {
		mustRemove(t, q, p)
	}
	checkShape(t, q, 0, 1)
}

func TestQuadtreeCollapseIsShallow(t *testing.T) {
	q := NewQuadtree[*Rectangle](NewBoundingBox(0, 100, 0, 100), WithCapacity(1), WithMinNodeSize(1))
	straddler := NewRectangle(40, 60, 40, 60)
	a, b := NewRectangle(1, 1, 1, 1), NewRectangle(2, 2, 2, 2)
	mustInsert(t, q, straddler, a, b)
	checkShape(t, q, 3, 3)

	// NW is an inner node, so the root keeps its children.
	mustRemove(t, q, straddler)
	checkShape(t, q, 2, 3)

	mustRemove(t, q, a)
	mustRemove(t, q, b)
	checkShape(t, q, 0, 1)
}

func TestQuadtreeClear(t *testing.T) {
	q := NewQuadtree[Point](NewBoundingBox(0, 100, 0, 100), WithCapacity(1), WithMinNodeSize(1))
	mustInsert(t, q, Point{1, 1}, Point{2, 2}, Point{99, 99})
	q.Clear()
	checkShape(t, q, 0, 1)
	mustInsert(t, q, Point{5, 5})
	checkShape(t, q, 1, 1)
}

func TestQuadtreeInterfaceItems(t *testing.T) {
	q := NewQuadtree[Shape](NewBoundingBox(0, 100, 0, 100), WithCapacity(2))
	p := &Point{10, 10}
	r := NewRectangle(20, 30, 20, 30)
	mustInsert(t, q, Shape(p), Shape(r), Shape(&Point{10, 10}))

	if !q.Contains(p) || !q.Contains(r) {
		t.Error("Contains() = false for stored shapes")
	}
	if q.Contains(&Point{10, 10}) {
		t.Error("pointer items should match by identity")
	}
	mustRemove(t, q, Shape(p))
	checkShape(t, q, 2, 2)
}

func randomRectangle(rng *rand.Rand, world int) *Rectangle {
	x, y := rng.Intn(world+1), rng.Intn(world+1)
	w, h := rng.Intn(12), rng.Intn(12)
	return NewRectangle(x, min(x+w, world), y, min(y+h, world))
}

func TestQuadtreeRandomInsertRemove(t *testing.T) {
	capacities := []int{1, 2, 3, 4, 7, 16, 33, 64, 100, 150, 199, 200}
	for _, capacity := range capacities {
		rng := rand.New(rand.NewSource(int64(capacity)))
		q := NewQuadtree[*Rectangle](NewBoundingBox(0, 100, 0, 100), WithCapacity(capacity))

		rects := make([]*Rectangle, 1000)
		for i := range rects {
			rects[i] = randomRectangle(rng, 100)
		}
		mustInsert(t, q, rects...)
		if q.TotalSize() != len(rects) {
			t.Fatalf("capacity %d: TotalSize() = %d, want %d", capacity, q.TotalSize(), len(rects))
		}
		mustValidate(t, q)

		seen := map[*Rectangle]int{}
		q.Each(func(r *Rectangle) { seen[r]++ })
		for _, r := range rects {
			if seen[r] != 1 {
				t.Fatalf("capacity %d: %v visited %d times", capacity, r, seen[r])
			}
		}

		rng.Shuffle(len(rects), func(i, j int) { rects[i], rects[j] = rects[j], rects[i] })
		for i, r := range rects {
			mustRemove(t, q, r)
			if want := len(rects) - i - 1; q.TotalSize() != want {
				t.Fatalf("capacity %d: TotalSize() = %d, want %d", capacity, q.TotalSize(), want)
			}
		}
		checkShape(t, q, 0, 1)
	}
}

func TestQuadtreeCorruptHandle(t *testing.T) {
	q := NewQuadtree[Point](NewBoundingBox(0, 100, 0, 100), WithCapacity(1), WithMinNodeSize(1))
	mustInsert(t, q, Point{1, 1}, Point{90, 90})
	q.nodes[q.root].children[2] = 99

	if err := q.Insert(Point{1, 90}); !errors.Is(err, ErrInconsistent) {
		t.Errorf("Insert on corrupt tree = %v, want ErrInconsistent", err)
	}
	if _, err := q.Remove(Point{1, 90}); !errors.Is(err, ErrInconsistent) {
		t.Errorf("Remove on corrupt tree = %v, want ErrInconsistent", err)
	}
	if err := q.Validate(); !errors.Is(err, ErrInconsistent) {
		t.Errorf("Validate() = %v, want ErrInconsistent", err)
	}
}

func TestValidateDetectsBadCount(t *testing.T) {
	q := NewQuadtree[Point](NewBoundingBox(0, 100, 0, 100))
	mustInsert(t, q, Point{1, 1})
	q.count = 3
	if err := q.Validate(); !errors.Is(err, ErrInconsistent) {
		t.Errorf("Validate() = %v, want ErrInconsistent", err)
	}
}

func TestValidateDetectsMisplacedEntry(t *testing.T) {
	q := NewQuadtree[Point](NewBoundingBox(0, 100, 0, 100), WithCapacity(1), WithMinNodeSize(1))
	mustInsert(t, q, Point{1, 1}, Point{90, 90})
	root := &q.nodes[q.root]
	root.items = append(root.items, Point{2, 2})
	q.count++
	if err := q.Validate(); !errors.Is(err, ErrInconsistent) {
		t.Errorf("Validate() = %v, want ErrInconsistent", err)
	}
}
