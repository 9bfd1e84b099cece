package gridpath

// Flags tune a single search. Zero value is the default behavior: JPS with
// the greedy shortcut and endpoint walkability checks.
type Flags uint32

const (
	// NoGreedy disables the greedy straight-line attempt that runs before
	// the search proper. A performance knob only; it never changes
	// optimality. Useful when the caller already did a line-of-sight check.
	NoGreedy Flags = 1 << iota

	// AStarOnly runs standard A* over the full 8-neighborhood instead of
	// JPS. Usually much slower, but it avoids JPS's area scans, which can
	// win when grid lookups are expensive. Expands a node per visited cell,
	// so it also uses more memory.
	AStarOnly

	// NoStartCheck treats the start cell as walkable even if the grid says
	// otherwise.
	NoStartCheck

	// NoEndCheck treats the end cell as walkable even if the grid says
	// otherwise.
	NoEndCheck
)

// Result is the outcome of a search phase.
type Result uint8

const (
	// NoPath means the search exhausted the open list without reaching the
	// goal, or an endpoint failed its walkability check.
	NoPath Result = iota

	// FoundPath means a path exists; call FindPathFinish to materialize it.
	FoundPath

	// NeedMoreSteps means the step budget ran out; call FindPathStep again.
	NeedMoreSteps

	// EmptyPath means start equals end and the cell is walkable. The start
	// cell is omitted from output, so there is nothing to emit.
	EmptyPath

	// OutOfMemory means an internal growth hit the searcher's memory limit.
	// Recoverable: raise the limit or free memory elsewhere and re-init;
	// after OutOfMemory from FindPathFinish the found path is still intact
	// and finish may simply be retried.
	OutOfMemory
)

func (r Result) String() string {
	switch r {
	case NoPath:
		return "no-path"
	case FoundPath:
		return "found-path"
	case NeedMoreSteps:
		return "need-more-steps"
	case EmptyPath:
		return "empty-path"
	case OutOfMemory:
		return "out-of-memory"
	}
	return "unknown"
}

// Grid is the walkability oracle. Implementations are responsible for their
// own bounds checking: out-of-range queries, including coordinates that
// wrapped below zero, must return false. The oracle must not mutate hidden
// state during a search.
type Grid interface {
	Walkable(x, y uint32) bool
}

// GridFunc adapts a plain function to the Grid interface.
type GridFunc func(x, y uint32) bool

// Walkable calls f(x, y).
func (f GridFunc) Walkable(x, y uint32) bool { return f(x, y) }

// Searcher runs repeated path queries over one grid. Internal storage is
// cleared, not freed, between searches, so allocations amortize across
// queries.
//
// A Searcher is not safe for concurrent use and must not be copied after
// creation. Independent Searcher instances may run in parallel on a
// read-only grid.
type Searcher[G Grid] struct {
	grid   G
	metric metricFuncs
	budget memBudget

	storage arena
	open    openList
	nodemap nodeMap

	endPos     Position
	endNodeIdx int
	flags      Flags

	stepsRemain int
	stepsDone   int
}

// NewSearcher creates a Searcher over grid. The grid must stay valid for
// the life of the searcher.
func NewSearcher[G Grid](grid G, opts ...Option) *Searcher[G] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	s := &Searcher[G]{
		grid:       grid,
		metric:     metricFor(cfg.metric),
		budget:     memBudget{limit: cfg.memLimit},
		endPos:     InvalidPos,
		endNodeIdx: noNodeIdx,
	}
	s.storage.nodes.budget = &s.budget
	s.open.storage = &s.storage
	s.open.idxHeap.budget = &s.budget
	s.nodemap.storage = &s.storage
	s.nodemap.budget = &s.budget
	return s
}

const noNodeIdx = -1

func (s *Searcher[G]) walkable(x, y uint32) bool { return s.grid.Walkable(x, y) }

// clear resets per-search state. Container memory is kept.
func (s *Searcher[G]) clear() {
	s.open.clear()
	s.nodemap.clear()
	s.storage.clear()
	s.endNodeIdx = noNodeIdx
	s.stepsDone = 0
}

// FreeMemory releases all internal storage. Never required for correctness
// or performance; the next search simply reallocates. Aborts any search in
// progress.
func (s *Searcher[G]) FreeMemory() {
	s.open.dealloc()
	s.nodemap.dealloc()
	s.storage.dealloc()
	s.endNodeIdx = noNodeIdx
	s.stepsDone = 0
}

// StepsDone counts jump-scan steps plus A*-mode expansions for the current
// or last search. Use it to calibrate FindPathStep limits.
func (s *Searcher[G]) StepsDone() int { return s.stepsDone }

// NodesExpanded is the number of nodes materialized in the arena.
func (s *Searcher[G]) NodesExpanded() int { return s.storage.size() }

// MemoryInUse is the total byte size of the arena, hash map, and open list.
func (s *Searcher[G]) MemoryInUse() int {
	return s.storage.memSize() + s.nodemap.memSize() + s.open.memSize()
}

// getNode returns the arena index for a cell known to be walkable, creating
// the node on first use.
func (s *Searcher[G]) getNode(pos Position) (int, bool) {
	debugAssert(s.walkable(pos.X, pos.Y))
	return s.nodemap.lookupOrCreate(pos.X, pos.Y)
}

// relax updates the node at jnIdx with a candidate parent. Both nodes are
// addressed by index because the arena may have grown since the caller
// resolved them. Reports false on out-of-memory from the heap push.
func (s *Searcher[G]) relax(jp Position, jnIdx, parentIdx int) bool {
	jn := s.storage.at(jnIdx)
	parent := s.storage.at(parentIdx)
	debugAssert(jn.pos == jp)

	extraG := s.metric.accurate(jp, parent.pos)
	newG := parent.g + extraG
	if jn.isOpen() && newG >= jn.g {
		return true
	}

	jn.g = newG
	jn.f = newG + s.metric.estimate(jp, s.endPos)
	s.storage.setParent(jnIdx, parentIdx)
	if !jn.isOpen() {
		if !s.open.push(jnIdx) {
			return false
		}
		jn.flags |= nodeOpen
		return true
	}
	s.open.fix(jnIdx)
	return true
}

// identifySuccessors expands the popped node at nIdx: prune neighbors, jump
// each (JPS) or take it directly (A*), then relax. Reports false on
// out-of-memory.
func (s *Searcher[G]) identifySuccessors(nIdx int) bool {
	np := s.storage.at(nIdx).pos
	var buf [8]Position
	var num int
	if s.flags&AStarOnly != 0 {
		num = s.neighborsAStar(nIdx, &buf)
	} else {
		num = s.neighborsJPS(nIdx, &buf)
	}

	for i := num - 1; i >= 0; i-- {
		// A neighbor is only emitted for a walkable cell, so the jump
		// scanners may assume a walkable starting point.
		jp := buf[i]
		if s.flags&AStarOnly == 0 {
			jp = s.jump(buf[i], np)
			if !jp.Valid() {
				continue
			}
		}
		// The cell is a confirmed jump point; materialize its node. This
		// may grow the arena, so nIdx is the only valid way back to n.
		jnIdx, ok := s.getNode(jp)
		if !ok {
			return false
		}
		debugAssert(jnIdx != nIdx)
		if !s.storage.at(jnIdx).isClosed() {
			if !s.relax(jp, jnIdx, nIdx) {
				return false
			}
		}
	}
	return true
}

// FindPathInit starts a new search from start to end, aborting any search
// in progress. Returns EmptyPath when start equals end and the cell is
// walkable (nothing will be emitted, since the start cell is omitted from
// output). With NoStartCheck or NoEndCheck set, the start==end shortcut is
// skipped and init continues as for distinct endpoints; the goal node then
// never gets a parent, so FindPathFinish reports NoPath. Returns
// NeedMoreSteps when the caller should begin calling FindPathStep, or
// FoundPath when the greedy shortcut already connected the endpoints.
func (s *Searcher[G]) FindPathInit(start, end Position, flags Flags) Result {
	// Resets counters and bookkeeping only; container memory is untouched.
	s.clear()
	s.flags = flags
	s.endPos = end

	if start == end && flags&(NoStartCheck|NoEndCheck) == 0 {
		// A path exists only if the single cell is walkable, and the
		// output omits the start cell either way.
		if s.walkable(end.X, end.Y) {
			return EmptyPath
		}
		return NoPath
	}

	if flags&NoStartCheck == 0 && !s.walkable(start.X, start.Y) {
		return NoPath
	}
	if flags&NoEndCheck == 0 && !s.walkable(end.X, end.Y) {
		return NoPath
	}

	// Node creation may grow the arena, so only indices are kept.
	endIdx, ok := s.nodemap.lookupOrCreate(end.X, end.Y)
	if !ok {
		return OutOfMemory
	}
	s.endNodeIdx = endIdx

	startIdx, ok := s.nodemap.lookupOrCreate(start.X, start.Y)
	if !ok {
		return OutOfMemory
	}

	if flags&NoGreedy == 0 {
		// Try the quick way out first.
		if s.findPathGreedy(startIdx, s.endNodeIdx) {
			return FoundPath
		}
	}

	if !s.open.push(startIdx) {
		return OutOfMemory
	}
	return NeedMoreSteps
}

// FindPathStep advances the search. limit bounds the work done in this
// call, measured in scan steps (see StepsDone); 0 runs the search to a
// terminal result in one call. Returns NeedMoreSteps while the budget keeps
// expiring, then FoundPath, NoPath, or OutOfMemory.
func (s *Searcher[G]) FindPathStep(limit int) Result {
	s.stepsRemain = limit
	unlimited := limit == 0
	for {
		if s.open.empty() {
			return NoPath
		}
		nIdx := s.open.popMin()
		n := s.storage.at(nIdx)
		n.flags |= nodeClosed
		if n.pos == s.endPos {
			return FoundPath
		}
		if !s.identifySuccessors(nIdx) {
			return OutOfMemory
		}
		if !unlimited && s.stepsRemain < 0 {
			return NeedMoreSteps
		}
	}
}

// FindPathFinish reconstructs the found path into path. See generatePath
// for the stride contract. The search state stays valid, so finish may be
// called again, including after an OutOfMemory from a full sink.
func (s *Searcher[G]) FindPathFinish(path PathSink, stride int) Result {
	return s.generatePath(path, stride)
}

// FindPath runs a complete search and appends the result to path. It is
// equivalent to FindPathInit + FindPathStep(0) until terminal +
// FindPathFinish. EmptyPath is a success with nothing appended.
func (s *Searcher[G]) FindPath(path PathSink, start, end Position, stride int, flags Flags) Result {
	res := s.FindPathInit(start, end, flags)
	if res == EmptyPath {
		return EmptyPath
	}
	for res == NeedMoreSteps {
		res = s.FindPathStep(0)
	}
	if res == FoundPath {
		return s.FindPathFinish(path, stride)
	}
	return res
}

// FindPath is the one-shot convenience helper. It appends the path (start
// cell omitted) to path and returns the number of scan steps done, at least
// 1 on success and 0 on failure. For repeated queries, keep a Searcher
// instead.
func FindPath[G Grid](path PathSink, grid G, start, end Position, stride int, flags Flags, opts ...Option) int {
	s := NewSearcher(grid, opts...)
	res := s.FindPath(path, start, end, stride, flags)
	if res != FoundPath && res != EmptyPath {
		return 0
	}
	if s.stepsDone == 0 {
		return 1
	}
	return s.stepsDone
}
