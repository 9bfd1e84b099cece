package gridpath

// generatePath walks parent offsets from the goal node back to the start
// and appends the cells to path in start-to-goal order. The start cell is
// omitted; the goal cell is always last.
//
// stride 0 emits waypoints only. stride k > 0 interpolates positions every
// k cells along each straight segment; every waypoint is still emitted
// regardless of spacing. All emitted positions lie on straight lines with
// no obstruction between consecutive ones.
//
// When the sink drops a write, the appended range is rolled back and
// OutOfMemory returned; the search state is untouched, so the call may be
// retried.
func (s *Searcher[G]) generatePath(path PathSink, stride int) Result {
	if s.endNodeIdx == noNodeIdx {
		return NoPath
	}
	offset := path.Size()
	added := 0

	endNode := s.storage.at(s.endNodeIdx)
	if !endNode.hasParent() {
		return NoPath
	}

	if stride > 0 {
		nextIdx := s.endNodeIdx
		prevIdx := s.storage.parentIdx(nextIdx)
		for {
			next := s.storage.at(nextIdx)
			prev := s.storage.at(prevIdx)
			x, y := next.pos.X, next.pos.Y
			dx := delta(prev.pos.X, x)
			dy := delta(prev.pos.Y, y)
			adx := abs32(dx)
			ady := abs32(dy)
			// Segments between waypoints are straight: axis-aligned or
			// exactly diagonal.
			debugAssert(dx == 0 || dy == 0 || adx == ady)
			steps := int(adx)
			if int(ady) > steps {
				steps = int(ady)
			}
			sdx := int32(stride) * sgn32(dx)
			sdy := int32(stride) * sgn32(dy)
			var dxa, dya int32
			for i := 0; i < steps; i += stride {
				path.PushBack(Pos(add(x, dxa), add(y, dya)))
				added++
				dxa += sdx
				dya += sdy
			}
			nextIdx = prevIdx
			if !s.storage.at(nextIdx).hasParent() {
				break
			}
			prevIdx = s.storage.parentIdx(nextIdx)
		}
	} else {
		nextIdx := s.endNodeIdx
		for {
			n := s.storage.at(nextIdx)
			debugAssert(int(n.parentOffs) != 0)
			path.PushBack(n.pos)
			added++
			nextIdx = s.storage.parentIdx(nextIdx)
			if !s.storage.at(nextIdx).hasParent() {
				break
			}
		}
	}

	// A sink may silently drop appends; detect the short write and roll
	// back to the original length.
	if path.Size() != offset+added {
		path.Resize(offset)
		return OutOfMemory
	}

	// The chain was traversed goal-to-start; flip the appended range.
	for i, j := offset, path.Size()-1; i < j; i, j = i+1, j-1 {
		path.Swap(i, j)
	}
	return FoundPath
}
