package arena

import "math"

// Positioned is implemented by anything a SpatialMap can index.
type Positioned interface {
	Pos() Vector2D
}

// SpatialMap is a uniform-grid bucket index over a toroidal world, sized
// ceil(Width) x ceil(Height) with one-world-unit cells. It is not
// thread-safe: only Field mutates it, and only between the two parallel
// phases of a tick (spec.md §5).
//
// The bucket-array shape follows the teacher's SpatialGrid (spatial.go);
// the wrap-aware region query is new — the teacher's grid clamps queries
// to the map edges instead of wrapping them, which is wrong for a torus.
type SpatialMap[T Positioned] struct {
	world WorldSize
	cols  int
	rows  int
	cells [][]T
}

// NewSpatialMap creates an empty index over world, pre-reserving reserve
// slots per cell (spec.md's SPATIAL_MAP_RESERVE_COUNT knob) to cut down on
// append-driven reallocation during a busy tick.
func NewSpatialMap[T Positioned](world WorldSize, reserve int) *SpatialMap[T] {
	cols := int(math.Ceil(world.Width))
	rows := int(math.Ceil(world.Height))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	cells := make([][]T, cols*rows)
	if reserve > 0 {
		for i := range cells {
			cells[i] = make([]T, 0, reserve)
		}
	}
	return &SpatialMap[T]{world: world, cols: cols, rows: rows, cells: cells}
}

func (m *SpatialMap[T]) cellIndex(p Vector2D) int {
	p = m.world.Wrap(p)
	cx := int(p.X)
	cy := int(p.Y)
	if cx >= m.cols {
		cx = m.cols - 1
	}
	if cy >= m.rows {
		cy = m.rows - 1
	}
	return cy*m.cols + cx
}

func wrapCellIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Insert canonicalises e's position and places it in the owning cell.
func (m *SpatialMap[T]) Insert(e T) {
	idx := m.cellIndex(e.Pos())
	m.cells[idx] = append(m.cells[idx], e)
}

// Clear discards all entries but keeps each bucket's backing array.
func (m *SpatialMap[T]) Clear() {
	for i := range m.cells {
		m.cells[i] = m.cells[i][:0]
	}
}

// EraseIf removes every element matching pred.
func (m *SpatialMap[T]) EraseIf(pred func(T) bool) {
	for i, bucket := range m.cells {
		kept := bucket[:0]
		for _, e := range bucket {
			if !pred(e) {
				kept = append(kept, e)
			}
		}
		m.cells[i] = kept
	}
}

// Iter calls fn for every element currently in the map. Order is
// unspecified.
func (m *SpatialMap[T]) Iter(fn func(T)) {
	for _, bucket := range m.cells {
		for _, e := range bucket {
			fn(e)
		}
	}
}

// Len returns the total number of elements across all cells.
func (m *SpatialMap[T]) Len() int {
	n := 0
	for _, bucket := range m.cells {
		n += len(bucket)
	}
	return n
}

// Region appends to out every element whose cell overlaps the open disk of
// radius r around center, wrapping across the torus seam as needed. The
// result is a superset of the disk: callers must re-test candidates with
// Unwrap + squared distance.
func (m *SpatialMap[T]) Region(center Vector2D, r float64, out []T) []T {
	center = m.world.Wrap(center)

	minCX := int(math.Floor(center.X - r))
	maxCX := int(math.Floor(center.X + r))
	minCY := int(math.Floor(center.Y - r))
	maxCY := int(math.Floor(center.Y + r))

	xCount := maxCX - minCX + 1
	if xCount > m.cols {
		xCount = m.cols
	}
	yCount := maxCY - minCY + 1
	if yCount > m.rows {
		yCount = m.rows
	}

	for j := 0; j < yCount; j++ {
		wcy := wrapCellIndex(minCY+j, m.rows)
		rowBase := wcy * m.cols
		for i := 0; i < xCount; i++ {
			wcx := wrapCellIndex(minCX+i, m.cols)
			out = append(out, m.cells[rowBase+wcx]...)
		}
	}
	return out
}
