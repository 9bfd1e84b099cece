// Bench is a benchmarking tool comparing JPS and A* search performance,
// query throughput, and memory usage on synthetic or loaded maps.
//
// Usage:
//
//	go run ./cmd/bench -width 512 -height 512 -density 0.3 -searches 1000
//
// Flags:
//
//	-width     Generated map width in cells (default: 512)
//	-height    Generated map height in cells (default: 512)
//	-density   Obstacle fraction for generated maps (default: 0.3)
//	-seed      Noise seed for generated maps (default: 0x1234)
//	-map       Load a map instead of generating (text or .grd binary)
//	-searches  Number of random queries (default: 1000)
//	-algo      Algorithm: jps, astar, or both (default: both)
//	-stride    Output stride, 0 = waypoints only (default: 0)
//	-workers   Parallel workers, 1 = sequential (default: 1)
package main

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	mrand "math/rand/v2"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/spaolacci/murmur3"

	"github.com/tamirms/gridpath"
)

// getMaxRSS returns the maximum resident set size in bytes.
// Uses getrusage(RUSAGE_SELF) which tracks peak RSS since process start.
func getMaxRSS() uint64 {
	var rusage syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &rusage); err != nil {
		return 0
	}
	// On macOS, MaxRss is in bytes. On Linux, it's in kilobytes.
	maxRSS := uint64(rusage.Maxrss)
	if runtime.GOOS == "linux" {
		maxRSS *= 1024 // Convert KB to bytes on Linux
	}
	return maxRSS
}

// generateGrid fills a grid with murmur3-derived obstacle noise: each cell
// hashes (x, y) under the seed and is blocked when the hash falls below the
// density threshold. Deterministic for a given seed and size.
func generateGrid(width, height uint32, density float64, seed uint32) *gridpath.RasterGrid {
	g := gridpath.NewRasterGrid(width, height)
	threshold := uint32(density * float64(^uint32(0)))
	var cell [8]byte
	for y := uint32(0); y < height; y++ {
		for x := uint32(0); x < width; x++ {
			binary.LittleEndian.PutUint32(cell[0:4], x)
			binary.LittleEndian.PutUint32(cell[4:8], y)
			if murmur3.Sum32WithSeed(cell[:], seed) < threshold {
				g.SetWalkable(x, y, false)
			}
		}
	}
	return g
}

// loadGrid opens either a binary .grd map or a textual map.
func loadGrid(path string) (*gridpath.RasterGrid, error) {
	if strings.HasSuffix(path, ".grd") {
		m, err := gridpath.OpenMap(path)
		if err != nil {
			return nil, err
		}
		// Leak the mapping for the process lifetime; this is a one-shot tool.
		if err := m.Verify(); err != nil {
			return nil, err
		}
		m.Prefault()
		return m.Grid().Clone(), nil
	}
	return gridpath.ParseMapFile(path)
}

// randomWalkableCells picks n walkable cells, uniformly-ish, by rejection
// sampling.
func randomWalkableCells(g *gridpath.RasterGrid, n int, rng *mrand.Rand) []gridpath.Position {
	cells := make([]gridpath.Position, 0, n)
	for len(cells) < n {
		x := rng.Uint32N(g.Width())
		y := rng.Uint32N(g.Height())
		if g.Walkable(x, y) {
			cells = append(cells, gridpath.Pos(x, y))
		}
	}
	return cells
}

func runAlgo(name string, grid *gridpath.RasterGrid, reqs []gridpath.BatchRequest, workers int) {
	start := time.Now()
	results, err := gridpath.SolveBatch(context.Background(), grid, reqs, workers)
	elapsed := time.Since(start)
	if err != nil {
		fmt.Printf("%s: batch failed: %v\n", name, err)
		return
	}

	found := 0
	totalSteps := 0
	totalCells := 0
	for _, r := range results {
		if r.Result == gridpath.FoundPath || r.Result == gridpath.EmptyPath {
			found++
			totalCells += len(r.Path)
		}
		totalSteps += r.Steps
	}

	// A fresh searcher reports the per-instance memory footprint for one
	// representative query.
	s := gridpath.NewSearcher(grid)
	var path gridpath.PathVector
	s.FindPath(&path, reqs[0].Start, reqs[0].End, reqs[0].Stride, reqs[0].Flags)

	fmt.Printf("%s:\n", name)
	fmt.Printf("  found:          %d / %d\n", found, len(results))
	fmt.Printf("  time:           %v (%.0f queries/sec)\n", elapsed, float64(len(results))/elapsed.Seconds())
	fmt.Printf("  scan steps:     %d total, %.0f avg\n", totalSteps, float64(totalSteps)/float64(len(results)))
	fmt.Printf("  path cells:     %d total\n", totalCells)
	fmt.Printf("  searcher mem:   %d bytes (nodes expanded: %d)\n", s.MemoryInUse(), s.NodesExpanded())
}

func main() {
	widthFlag := flag.Uint("width", 512, "generated map width")
	heightFlag := flag.Uint("height", 512, "generated map height")
	densityFlag := flag.Float64("density", 0.3, "obstacle fraction for generated maps")
	seedFlag := flag.Uint("seed", 0x1234, "noise seed for generated maps")
	mapFlag := flag.String("map", "", "map file to load instead of generating")
	searchesFlag := flag.Int("searches", 1000, "number of random queries")
	algoFlag := flag.String("algo", "both", "algorithm: jps, astar, or both")
	strideFlag := flag.Int("stride", 0, "output stride (0 = waypoints only)")
	workersFlag := flag.Int("workers", 1, "parallel workers")
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file")
	flag.Parse()

	var grid *gridpath.RasterGrid
	if *mapFlag != "" {
		var err error
		grid, err = loadGrid(*mapFlag)
		if err != nil {
			fmt.Printf("Failed to load map: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Loaded %s: %dx%d, %d walkable cells\n",
			*mapFlag, grid.Width(), grid.Height(), grid.CountWalkable())
	} else {
		fmt.Println("Generating map...")
		grid = generateGrid(uint32(*widthFlag), uint32(*heightFlag), *densityFlag, uint32(*seedFlag))
		fmt.Printf("Generated %dx%d, density %.2f, %d walkable cells\n",
			grid.Width(), grid.Height(), *densityFlag, grid.CountWalkable())
	}
	fmt.Printf("Map digest: %016x\n", grid.Digest())

	rng := mrand.New(mrand.NewPCG(uint64(*seedFlag), 0x9E3779B97F4A7C15))
	endpoints := randomWalkableCells(grid, *searchesFlag*2, rng)

	jpsReqs := make([]gridpath.BatchRequest, *searchesFlag)
	astarReqs := make([]gridpath.BatchRequest, *searchesFlag)
	for i := range jpsReqs {
		jpsReqs[i] = gridpath.BatchRequest{
			Start:  endpoints[2*i],
			End:    endpoints[2*i+1],
			Stride: *strideFlag,
		}
		astarReqs[i] = jpsReqs[i]
		astarReqs[i].Flags = gridpath.AStarOnly
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Printf("could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Printf("could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	switch *algoFlag {
	case "jps":
		runAlgo("JPS", grid, jpsReqs, *workersFlag)
	case "astar":
		runAlgo("A*", grid, astarReqs, *workersFlag)
	case "both":
		runAlgo("JPS", grid, jpsReqs, *workersFlag)
		runAlgo("A*", grid, astarReqs, *workersFlag)
	default:
		fmt.Printf("unknown algorithm %q\n", *algoFlag)
		os.Exit(1)
	}

	fmt.Printf("Peak RSS: %.1f MB\n", float64(getMaxRSS())/(1024*1024))
}
