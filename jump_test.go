// jump_test.go exercises the scanners directly: forced-neighbor detection
// on cardinal scans, corner patterns on diagonal scans, goal termination,
// and step accounting.
package gridpath

import "testing"

// scanSearcher builds a searcher whose goal is far away so scans terminate
// on grid features only.
func scanSearcher(g *RasterGrid) *Searcher[*RasterGrid] {
	s := NewSearcher(g)
	s.endPos = InvalidPos
	return s
}

func TestJumpXForcedNeighbor(t *testing.T) {
	// Wall above ends at x=3; the first cell past its corner is forced.
	g := gridFrom(t,
		"####...",
		".......",
		".......",
	)
	s := scanSearcher(g)

	got := s.jumpX(Pos(0, 1), 1)
	if got != Pos(3, 1) {
		t.Fatalf("jumpX = %v, want (3,1)", got)
	}
	if s.StepsDone() == 0 {
		t.Error("scan accounted no steps")
	}
}

func TestJumpXBlockedRunIsInvalid(t *testing.T) {
	g := gridFrom(t,
		"...",
		"..#",
		"...",
	)
	s := scanSearcher(g)

	if got := s.jumpX(Pos(0, 1), 1); got.Valid() {
		t.Fatalf("jumpX = %v, want invalid", got)
	}
	// Scanning off the map edge is likewise a dead end.
	if got := s.jumpX(Pos(0, 0), -1); got.Valid() {
		t.Fatalf("jumpX off-edge = %v, want invalid", got)
	}
}

func TestJumpXStopsAtGoal(t *testing.T) {
	g := gridFrom(t, ".....")
	s := NewSearcher(g)
	s.endPos = Pos(3, 0)

	if got := s.jumpX(Pos(0, 0), 1); got != Pos(3, 0) {
		t.Fatalf("jumpX = %v, want the goal (3,0)", got)
	}
}

func TestJumpYForcedNeighbor(t *testing.T) {
	g := gridFrom(t,
		"#..",
		"#..",
		"...",
		"...",
	)
	s := scanSearcher(g)

	// The wall on the left ends after y=1; the scan stops on the cell that
	// sees the opening ahead.
	if got := s.jumpY(Pos(1, 0), 1); got != Pos(1, 1) {
		t.Fatalf("jumpY = %v, want (1,1)", got)
	}
}

func TestJumpDiagStopsAtForcedPattern(t *testing.T) {
	// Moving (1,1) from (1,1): the blocked cell left of the scan line
	// with a walkable cell diagonally past it forces a stop.
	g := gridFrom(t,
		".....",
		"#....",
		".....",
		".....",
		".....",
	)
	s := scanSearcher(g)

	got := s.jumpDiag(Pos(1, 1), 1, 1)
	// At (1,1): walkable(0,2) && !walkable(0,1) holds, so the scan stops
	// where it stands.
	if got != Pos(1, 1) {
		t.Fatalf("jumpDiag = %v, want (1,1)", got)
	}
}

func TestJumpDiagPromotesCardinalFind(t *testing.T) {
	// The diagonal itself is clear, but after one step its rightward
	// sub-scan sees the wall corner at y=2, promoting the diagonal cell to
	// a jump point.
	g := gridFrom(t,
		".......",
		".......",
		"...##..",
		".......",
	)
	s := scanSearcher(g)

	got := s.jumpDiag(Pos(0, 0), 1, 1)
	if !got.Valid() {
		t.Fatal("jumpDiag found nothing")
	}
	// The promoted cell lies on the scan diagonal.
	if got.X != got.Y {
		t.Fatalf("jumpDiag = %v, not on the scan diagonal", got)
	}
}

func TestJumpDiagRefusesCornerTunnel(t *testing.T) {
	// Both flanking cardinals blocked: the diagonal must not squeeze
	// through.
	g := gridFrom(t,
		".#.",
		"#..",
		"...",
	)
	s := scanSearcher(g)

	if got := s.jumpDiag(Pos(0, 0), 1, 1); got.Valid() {
		t.Fatalf("jumpDiag = %v, want invalid (corner tunnel)", got)
	}
}

func TestStepAccountingAccumulates(t *testing.T) {
	g := gridFrom(t, "..........")
	s := scanSearcher(g)

	s.jumpX(Pos(0, 0), 1) // runs to the edge: 9 steps
	first := s.StepsDone()
	if first == 0 {
		t.Fatal("no steps accounted")
	}
	s.jumpX(Pos(0, 0), 1)
	if s.StepsDone() != 2*first {
		t.Errorf("StepsDone = %d after two identical scans, want %d", s.StepsDone(), 2*first)
	}
}
