package gridpath

// Jump scanners. Each walks the grid from an already-walkable cell in a
// unit direction until it finds a jump point: the goal, a cell with a
// forced neighbor, or (diagonally) a cell whose cardinal sub-scan finds
// one. They return InvalidPos when the scan runs into an obstacle first.
//
// The scanners are iterative rather than recursive, both for stack safety
// on large open maps and so every grid step can be charged against the
// incremental step budget.

// jump dispatches on the direction from src to p (unit components).
func (s *Searcher[G]) jump(p, src Position) Position {
	debugAssert(s.walkable(p.X, p.Y))

	dx := delta(p.X, src.X)
	dy := delta(p.Y, src.Y)
	debugAssert(dx != 0 || dy != 0)

	switch {
	case dx != 0 && dy != 0:
		return s.jumpDiag(p, dx, dy)
	case dx != 0:
		return s.jumpX(p, dx)
	case dy != 0:
		return s.jumpY(p, dy)
	}

	debugAssert(false)
	return InvalidPos
}

// jumpDiag scans diagonally. The current cell is a jump point when either
// forced-neighbor pattern holds around it, or when a cardinal sub-scan from
// its x or y neighbor finds a jump point. Advancing requires the diagonal
// target walkable and at least one of the two flanking cardinals walkable,
// which forbids tunneling through a corner.
func (s *Searcher[G]) jumpDiag(p Position, dx, dy int32) Position {
	debugAssert(s.walkable(p.X, p.Y))
	debugAssert(dx != 0 && dy != 0)

	endpos := s.endPos
	steps := 0

	for {
		if p == endpos {
			break
		}

		steps++
		x, y := p.X, p.Y

		if (s.walkable(add(x, -dx), add(y, dy)) && !s.walkable(add(x, -dx), y)) ||
			(s.walkable(add(x, dx), add(y, -dy)) && !s.walkable(x, add(y, -dy))) {
			break
		}

		gdx := s.walkable(add(x, dx), y)
		gdy := s.walkable(x, add(y, dy))

		if gdx && s.jumpX(Pos(add(x, dx), y), dx).Valid() {
			break
		}
		if gdy && s.jumpY(Pos(x, add(y, dy)), dy).Valid() {
			break
		}

		if (gdx || gdy) && s.walkable(add(x, dx), add(y, dy)) {
			p.X = add(p.X, dx)
			p.Y = add(p.Y, dy)
		} else {
			p = InvalidPos
			break
		}
	}
	s.stepsDone += steps
	s.stepsRemain -= steps
	return p
}

// jumpX scans along the x axis. The two perpendicular neighbors of each
// cell form a 2-bit mask; a holds the complement of the previous cell's
// mask, so a&b is non-zero exactly when a perpendicular neighbor became
// walkable while the cell diagonally behind it was blocked: a forced
// neighbor, making the current cell a jump point.
func (s *Searcher[G]) jumpX(p Position, dx int32) Position {
	debugAssert(dx != 0)
	debugAssert(s.walkable(p.X, p.Y))

	y := p.Y
	endpos := s.endPos
	steps := 0

	a := ^(b2u(s.walkable(p.X, y+1)) | b2u(s.walkable(p.X, y-1))<<1)

	for {
		xx := add(p.X, dx)
		b := b2u(s.walkable(xx, y+1)) | b2u(s.walkable(xx, y-1))<<1

		if a&b != 0 || p == endpos {
			break
		}
		if !s.walkable(xx, y) {
			p = InvalidPos
			break
		}

		p.X = xx
		a = ^b
		steps++
	}

	s.stepsDone += steps
	s.stepsRemain -= steps
	return p
}

// jumpY is jumpX along the y axis.
func (s *Searcher[G]) jumpY(p Position, dy int32) Position {
	debugAssert(dy != 0)
	debugAssert(s.walkable(p.X, p.Y))

	x := p.X
	endpos := s.endPos
	steps := 0

	a := ^(b2u(s.walkable(x+1, p.Y)) | b2u(s.walkable(x-1, p.Y))<<1)

	for {
		yy := add(p.Y, dy)
		b := b2u(s.walkable(x+1, yy)) | b2u(s.walkable(x-1, yy))<<1

		if a&b != 0 || p == endpos {
			break
		}
		if !s.walkable(x, yy) {
			p = InvalidPos
			break
		}

		p.Y = yy
		a = ^b
		steps++
	}

	s.stepsDone += steps
	s.stepsRemain -= steps
	return p
}

func b2u(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}
