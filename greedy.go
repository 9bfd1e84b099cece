package gridpath

// findPathGreedy tries to connect start to end with one diagonal run
// followed by one axis-aligned run, checking walkability at every cell
// (diagonal steps also require a walkable flanking cardinal, the usual
// anti-tunneling rule). On success it links the parent chain
// start -> corner -> end, materializing at most one corner node, and the
// search is over before it began. Any blocked cell fails the attempt and
// the full search runs instead.
func (s *Searcher[G]) findPathGreedy(nIdx, endIdx int) bool {
	midpos := InvalidPos
	x := s.storage.at(nIdx).pos.X
	y := s.storage.at(nIdx).pos.Y
	endpos := s.storage.at(endIdx).pos

	debugAssert(x != endpos.X || y != endpos.Y) // not to be called when start == end
	debugAssert(nIdx != endIdx)

	dx := delta(endpos.X, x)
	dy := delta(endpos.Y, y)
	adx := abs32(dx)
	ady := abs32(dy)
	dx = sgn32(dx)
	dy = sgn32(dy)

	// Diagonal leg first.
	if x != endpos.X && y != endpos.Y {
		debugAssert(dx != 0 && dy != 0)
		minlen := adx
		if ady < minlen {
			minlen = ady
		}
		tx := add(x, dx*minlen)
		for x != tx {
			if s.walkable(x, y) && (s.walkable(add(x, dx), y) || s.walkable(x, add(y, dy))) {
				x = add(x, dx)
				y = add(y, dy)
			} else {
				return false
			}
		}

		if !s.walkable(x, y) {
			return false
		}

		midpos = Pos(x, y)
	}

	// Aligned to at least one axis now; finish along the other.
	debugAssert(x == endpos.X || y == endpos.Y)

	if !(x == endpos.X && y == endpos.Y) {
		for x != endpos.X {
			x = add(x, dx)
			if !s.walkable(x, y) {
				return false
			}
		}
		for y != endpos.Y {
			y = add(y, dy)
			if !s.walkable(x, y) {
				return false
			}
		}
		debugAssert(x == endpos.X && y == endpos.Y)
	}

	if midpos.Valid() {
		// Creating the corner node may grow the arena; nIdx/endIdx remain
		// the only valid handles.
		midIdx, ok := s.nodemap.lookupOrCreate(midpos.X, midpos.Y)
		if !ok {
			return false
		}
		debugAssert(midIdx != nIdx)
		s.storage.setParent(midIdx, nIdx)
		if midIdx != endIdx {
			s.storage.setParent(endIdx, midIdx)
		}
	} else {
		s.storage.setParent(endIdx, nIdx)
	}

	return true
}
