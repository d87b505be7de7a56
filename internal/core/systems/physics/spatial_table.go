package physics

import (
	"fmt"
	"math"

	"github.com/zeusync/torophy/pkg/toroidal"
)

// Pair is a broad-phase candidate. A is the body whose insertion produced it.
type Pair struct {
	A int
	B int
}

// SpatialTable is a uniform grid over a toroidal space. It is rebuilt every
// step: Clear, then Insert every collidable body, then read Pairs.
//
// Cell size is a tuning knob; one to two times the average shape size works well.
type SpatialTable struct {
	columns         int
	rows            int
	cellSize        float64
	inverseCellSize float64
	cells           [][]int
	pairs           []Pair

	// per-insert dedup: seen[id] == stamp means id was already paired in this insert
	seen  []uint32
	stamp uint32
}

func NewSpatialTable(width, height uint32, cellSize float64) (*SpatialTable, error) {
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCellSize, cellSize)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", toroidal.ErrInvalidBounds, width, height)
	}

	columns := max(int(math.Ceil(float64(width)/cellSize)), 1)
	rows := max(int(math.Ceil(float64(height)/cellSize)), 1)

	return &SpatialTable{
		columns:         columns,
		rows:            rows,
		cellSize:        cellSize,
		inverseCellSize: 1 / cellSize,
		cells:           make([][]int, columns*rows),
	}, nil
}

func (t *SpatialTable) Columns() int { return t.columns }

func (t *SpatialTable) Rows() int { return t.rows }

func (t *SpatialTable) CellSize() float64 { return t.cellSize }

// Pairs returns the candidates gathered since the last Clear.
// The slice is reused by the table; copy it to keep it across steps.
func (t *SpatialTable) Pairs() []Pair { return t.pairs }

// Occupancy is the number of (cell, body) entries currently stored.
func (t *SpatialTable) Occupancy() int {
	n := 0
	for _, cell := range t.cells {
		n += len(cell)
	}
	return n
}

func (t *SpatialTable) Clear() {
	for i := range t.cells {
		t.cells[i] = t.cells[i][:0]
	}
	t.pairs = t.pairs[:0]
}

// Insert registers id in every cell covered by box, which must already be
// wrapped into the space. A box with Left > Right (or Top > Bottom) straddles
// the domain edge and the walk wraps around the grid.
func (t *SpatialTable) Insert(id int, box toroidal.AABB) {
	left := t.column(box.Left)
	right := t.column(box.Right)
	top := t.row(box.Top)
	bottom := t.row(box.Bottom)

	xLength := right - left + 1
	if box.Left > box.Right {
		xLength = right + t.columns - left + 1
	}
	yLength := bottom - top + 1
	if box.Top > box.Bottom {
		yLength = bottom + t.rows - top + 1
	}
	xLength = min(xLength, t.columns)
	yLength = min(yLength, t.rows)

	t.nextStamp()
	t.mark(id)

	x := left
	for range xLength {
		y := top
		for range yLength {
			index := y*t.columns + x
			for _, stored := range t.cells[index] {
				if t.mark(stored) {
					t.pairs = append(t.pairs, Pair{A: id, B: stored})
				}
			}
			t.cells[index] = append(t.cells[index], id)
			y = (y + 1) % t.rows
		}
		x = (x + 1) % t.columns
	}
}

func (t *SpatialTable) column(coordinate float64) int {
	return clampCell(int(coordinate*t.inverseCellSize), t.columns)
}

func (t *SpatialTable) row(coordinate float64) int {
	return clampCell(int(coordinate*t.inverseCellSize), t.rows)
}

func clampCell(cell, limit int) int {
	if cell < 0 {
		return 0
	}
	if cell >= limit {
		return limit - 1
	}
	return cell
}

func (t *SpatialTable) nextStamp() {
	t.stamp++
	if t.stamp == 0 {
		clear(t.seen)
		t.stamp = 1
	}
}

// mark records id for the current insert and reports whether it was new.
func (t *SpatialTable) mark(id int) bool {
	if id >= len(t.seen) {
		grown := make([]uint32, max(id+1, 2*len(t.seen)))
		copy(grown, t.seen)
		t.seen = grown
	}
	if t.seen[id] == t.stamp {
		return false
	}
	t.seen[id] = t.stamp
	return true
}
