// Package gridpath implements high-performance pathfinding over uniform-cost
// 8-connected 2D grids using Jump Point Search, with a plain A* mode for
// comparison and for grids with expensive lookups.
//
// Cells are either walkable or blocked; there are no per-cell costs. On such
// grids JPS is usually much faster than A*, as long as the walkability check
// is cheap.
//
// # Basic Usage
//
// One-shot pathfinding:
//
//	grid, err := gridpath.ParseMap(mapBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	var path gridpath.PathVector
//	steps := gridpath.FindPath(&path, grid, gridpath.Pos(0, 0), gridpath.Pos(90, 40), 0, 0)
//	if steps == 0 {
//	    // no path
//	}
//	// path holds the waypoints; the start cell is omitted.
//
// For repeated queries, keep a Searcher so internal storage is reused:
//
//	s := gridpath.NewSearcher(grid)
//	var path gridpath.PathVector
//	for _, q := range queries {
//	    path.Clear()
//	    if res := s.FindPath(&path, q.from, q.to, 0, 0); res == gridpath.FoundPath {
//	        ...
//	    }
//	}
//
// # Incremental Searches
//
// Long searches can be spread across frames with a step budget:
//
//	res := s.FindPathInit(start, end, 0)
//	for res == gridpath.NeedMoreSteps {
//	    res = s.FindPathStep(10000)
//	    // yield to the rest of the frame here
//	}
//	if res == gridpath.FoundPath {
//	    res = s.FindPathFinish(&path, 0)
//	}
//
// The grid must not change between steps; use (*RasterGrid).Digest to check
// that in tests. StepsDone calibrates a good limit value.
//
// # Package Structure
//
// The implementation is organized as follows:
//
//   - Search driver: searcher.go (Searcher, FindPathInit/Step/Finish, relax),
//     greedy.go (straight-line shortcut), path.go (reconstruction, stride)
//   - JPS core: jump.go (cardinal/diagonal scanners), neighbors.go (pruning)
//   - Storage: node.go (arena, parent offsets), nodemap.go (position hash),
//     openlist.go (f-ordered index heap), podvec.go (growth and budget)
//   - Grids: grid.go (RasterGrid), mapfile.go (text parsing, binary format,
//     mmap open), digest.go (content fingerprint)
//   - Batch: batch.go (parallel many-query solving)
//   - Configuration: options.go (Option, With* functions), heuristic.go
//   - Platform: fallocate_*.go, fadvise_*.go, prefault_*.go (OS hints)
package gridpath
