package gridpath

import (
	"fmt"
	"testing"
)

func benchmarkFindPath(b *testing.B, size uint32, flags Flags) {
	rng := newTestRNG(b)
	g := randomGrid(rng, size, size, 0.3)
	g.SetWalkable(0, 0, true)
	g.SetWalkable(size-1, size-1, true)

	s := NewSearcher(g)
	var path PathVector

	b.ResetTimer()
	b.ReportAllocs()
	for range b.N {
		path.Clear()
		s.FindPath(&path, Pos(0, 0), Pos(size-1, size-1), 0, flags)
	}
}

func BenchmarkJPS64(b *testing.B)    { benchmarkFindPath(b, 64, 0) }
func BenchmarkJPS256(b *testing.B)   { benchmarkFindPath(b, 256, 0) }
func BenchmarkJPS1024(b *testing.B)  { benchmarkFindPath(b, 1024, 0) }
func BenchmarkAStar64(b *testing.B)  { benchmarkFindPath(b, 64, AStarOnly) }
func BenchmarkAStar256(b *testing.B) { benchmarkFindPath(b, 256, AStarOnly) }

func BenchmarkNodeMap(b *testing.B) {
	for _, n := range []int{1000, 10000} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for range b.N {
				m, st, _ := newTestNodeMap()
				for i := 0; i < n; i++ {
					if _, ok := m.lookupOrCreate(uint32(i%211), uint32(i/211)); !ok {
						b.Fatal("create failed")
					}
				}
				_ = st
			}
		})
	}
}

func BenchmarkGridDigest(b *testing.B) {
	g := NewRasterGrid(1024, 1024)
	b.SetBytes(int64(len(g.cells)))
	b.ResetTimer()
	for range b.N {
		_ = g.Digest()
	}
}
