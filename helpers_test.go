package gridpath

import (
	"encoding/binary"
	"hash/fnv"
	randv2 "math/rand/v2"
	"strings"
	"testing"
)

// Named seeds for deterministic reproduction.
const (
	testSeed1 = 0x1234567890ABCDEF
	testSeed2 = 0xFEDCBA9876543210
)

func newTestRNG(t testing.TB) *randv2.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return randv2.New(randv2.NewPCG(testSeed1^s1, testSeed2^s2))
}

// gridFrom builds a grid from rows of '.' (walkable) and '#' (blocked).
// Origin is top-left, x grows right, y grows down.
func gridFrom(t testing.TB, rows ...string) *RasterGrid {
	t.Helper()
	g, err := ParseMap([]byte(strings.Join(rows, "\n")))
	if err != nil {
		t.Fatalf("bad test grid: %v", err)
	}
	return g
}

// randomGrid fills a w by h grid with obstacle noise at the given density.
func randomGrid(rng *randv2.Rand, w, h uint32, density float64) *RasterGrid {
	g := NewRasterGrid(w, h)
	for y := uint32(0); y < h; y++ {
		for x := uint32(0); x < w; x++ {
			if rng.Float64() < density {
				g.SetWalkable(x, y, false)
			}
		}
	}
	return g
}

// randomWalkable picks a walkable cell by rejection sampling, or ok=false
// if the grid appears fully blocked.
func randomWalkable(rng *randv2.Rand, g *RasterGrid) (Position, bool) {
	for i := 0; i < 10000; i++ {
		x := rng.Uint32N(g.Width())
		y := rng.Uint32N(g.Height())
		if g.Walkable(x, y) {
			return Pos(x, y), true
		}
	}
	return InvalidPos, false
}

// solve runs a full search and returns the result plus the appended cells.
func solve(t testing.TB, g *RasterGrid, start, end Position, stride int, flags Flags) (Result, []Position) {
	t.Helper()
	s := NewSearcher(g)
	var path PathVector
	res := s.FindPath(&path, start, end, stride, flags)
	return res, path.Positions()
}

// pathCost sums the accurate Chebyshev cost of a waypoint path, including
// the implicit leading segment from start.
func pathCost(start Position, path []Position) Score {
	cost := Score(0)
	prev := start
	for _, p := range path {
		cost += Chebyshev(prev, p)
		prev = p
	}
	return cost
}

// checkPathWalkable fails the test if any emitted cell is blocked.
func checkPathWalkable(t *testing.T, g *RasterGrid, path []Position) {
	t.Helper()
	for i, p := range path {
		if !g.Walkable(p.X, p.Y) {
			t.Errorf("path[%d] = (%d,%d) is not walkable", i, p.X, p.Y)
		}
	}
}

// checkNoTunneling fails the test if any diagonal step in the path (the
// start-prefixed cell sequence) has both flanking cardinals blocked.
func checkNoTunneling(t *testing.T, g *RasterGrid, start Position, path []Position) {
	t.Helper()
	prev := start
	for i, p := range path {
		dx := delta(p.X, prev.X)
		dy := delta(p.Y, prev.Y)
		if dx != 0 && dy != 0 && abs32(dx) == 1 && abs32(dy) == 1 {
			if !g.Walkable(p.X, prev.Y) && !g.Walkable(prev.X, p.Y) {
				t.Errorf("step %d tunnels through corner (%d,%d)->(%d,%d)",
					i, prev.X, prev.Y, p.X, p.Y)
			}
		}
		prev = p
	}
}
