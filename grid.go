package gridpath

import "math/bits"

// RasterGrid is a concrete rectangular grid with one bit per cell, row
// major, bit set = walkable. The bitmap layout matches the on-disk map
// format, so a memory-mapped file region can back a grid without copying.
type RasterGrid struct {
	width, height uint32
	cells         []byte
	readonly      bool
}

// NewRasterGrid returns a w by h grid with every cell walkable.
func NewRasterGrid(w, h uint32) *RasterGrid {
	g := &RasterGrid{
		width:  w,
		height: h,
		cells:  make([]byte, cellBytes(w, h)),
	}
	for i := range g.cells {
		g.cells[i] = 0xFF
	}
	return g
}

// cellBytes is the bitmap size for a w by h grid.
func cellBytes(w, h uint32) int {
	return int((uint64(w)*uint64(h) + 7) / 8)
}

// Width returns the grid width in cells.
func (g *RasterGrid) Width() uint32 { return g.width }

// Height returns the grid height in cells.
func (g *RasterGrid) Height() uint32 { return g.height }

// Walkable reports whether (x, y) is inside the grid and walkable.
// Coordinates that wrapped below zero fail the unsigned bounds check.
func (g *RasterGrid) Walkable(x, y uint32) bool {
	if x >= g.width || y >= g.height {
		return false
	}
	i := uint64(y)*uint64(g.width) + uint64(x)
	return g.cells[i>>3]&(1<<(i&7)) != 0
}

// SetWalkable marks a cell. Out-of-range positions are ignored. Panics on
// a grid backed by a read-only mapping.
func (g *RasterGrid) SetWalkable(x, y uint32, walkable bool) {
	if x >= g.width || y >= g.height {
		return
	}
	if g.readonly {
		panic("gridpath: SetWalkable on a read-only grid")
	}
	i := uint64(y)*uint64(g.width) + uint64(x)
	if walkable {
		g.cells[i>>3] |= 1 << (i & 7)
	} else {
		g.cells[i>>3] &^= 1 << (i & 7)
	}
}

// CountWalkable returns the number of walkable cells.
func (g *RasterGrid) CountWalkable() int {
	total := uint64(g.width) * uint64(g.height)
	if total == 0 {
		return 0
	}
	sum := 0
	full := int(total / 8)
	for _, b := range g.cells[:full] {
		sum += bits.OnesCount8(b)
	}
	if rem := total % 8; rem != 0 {
		mask := byte(1<<rem) - 1
		sum += bits.OnesCount8(g.cells[full] & mask)
	}
	return sum
}

// Clone returns a mutable deep copy, including of read-only grids.
func (g *RasterGrid) Clone() *RasterGrid {
	cells := make([]byte, len(g.cells))
	copy(cells, g.cells)
	return &RasterGrid{width: g.width, height: g.height, cells: cells}
}
