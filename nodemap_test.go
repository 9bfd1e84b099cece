package gridpath

import "testing"

func newTestNodeMap() (*nodeMap, *arena, *memBudget) {
	budget := &memBudget{}
	st := &arena{}
	st.nodes.budget = budget
	return &nodeMap{storage: st, budget: budget}, st, budget
}

func TestNodeMapLookupIsIdempotent(t *testing.T) {
	m, st, _ := newTestNodeMap()

	idx, ok := m.lookupOrCreate(3, 7)
	if !ok {
		t.Fatal("first lookup failed")
	}
	if got := st.at(idx).pos; got != Pos(3, 7) {
		t.Fatalf("node pos = %v, want (3,7)", got)
	}
	if st.at(idx).flags != 0 || st.at(idx).g != 0 || st.at(idx).f != 0 || st.at(idx).parentOffs != 0 {
		t.Error("fresh node is not zeroed")
	}

	again, ok := m.lookupOrCreate(3, 7)
	if !ok || again != idx {
		t.Fatalf("second lookup = (%d, %v), want (%d, true)", again, ok, idx)
	}
	if st.size() != 1 {
		t.Fatalf("arena size = %d after duplicate lookup, want 1", st.size())
	}
}

// Cells that collide on both hash functions must still resolve by exact
// coordinates. hash1(x,y)=x^y collides for (a,b) and (b,a); hash2 separates
// them, and (5,5)/(10,10)-style pairs collide on hash1 only. (1<<20|5, 0)
// and (5, 16) collide on hash2 and share a bucket, so only the coordinate
// confirm tells them apart.
func TestNodeMapCollisions(t *testing.T) {
	m, st, _ := newTestNodeMap()

	pairs := []Position{
		{3, 12}, {12, 3}, // hash1 collision, hash2 differs
		{5, 5}, {10, 10}, {15, 15}, // hash1 = 0 for all
		{1<<20 | 5, 0}, {5, 16}, // hash2 collision, same bucket
	}
	indices := make(map[Position]int)
	for _, p := range pairs {
		idx, ok := m.lookupOrCreate(p.X, p.Y)
		if !ok {
			t.Fatalf("create %v failed", p)
		}
		indices[p] = idx
	}
	if st.size() != len(pairs) {
		t.Fatalf("arena size = %d, want %d", st.size(), len(pairs))
	}
	for _, p := range pairs {
		idx, ok := m.lookupOrCreate(p.X, p.Y)
		if !ok || idx != indices[p] {
			t.Errorf("lookup %v = %d, want %d", p, idx, indices[p])
		}
	}
}

func TestNodeMapRehash(t *testing.T) {
	m, st, _ := newTestNodeMap()

	// Push well past the initial capacity (16 buckets x load factor 8) to
	// force several rehashes.
	const n = 3000
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		x := uint32(i % 97)
		y := uint32(i / 97)
		idx, ok := m.lookupOrCreate(x, y)
		if !ok {
			t.Fatalf("create (%d,%d) failed", x, y)
		}
		indices = append(indices, idx)
	}
	if st.size() > n {
		t.Fatalf("arena size = %d, want <= %d", st.size(), n)
	}
	if len(m.buckets) <= mapInitialBuckets {
		t.Fatalf("bucket count = %d, expected growth past %d", len(m.buckets), mapInitialBuckets)
	}

	// Every node still resolves to its original index after rehashing.
	for i := 0; i < n; i++ {
		x := uint32(i % 97)
		y := uint32(i / 97)
		idx, ok := m.lookupOrCreate(x, y)
		if !ok || idx != indices[i] {
			t.Fatalf("lookup (%d,%d) = (%d,%v), want %d", x, y, idx, ok, indices[i])
		}
	}
}

func TestNodeMapClearKeepsBuckets(t *testing.T) {
	m, st, budget := newTestNodeMap()

	for i := 0; i < 300; i++ {
		if _, ok := m.lookupOrCreate(uint32(i), uint32(i*3)); !ok {
			t.Fatalf("create %d failed", i)
		}
	}
	bucketCount := len(m.buckets)
	memBefore := m.memSize()

	m.clear()
	st.clear()

	if len(m.buckets) != bucketCount {
		t.Errorf("bucket count changed across clear: %d -> %d", bucketCount, len(m.buckets))
	}
	if m.memSize() != memBefore {
		t.Errorf("memSize changed across clear: %d -> %d", memBefore, m.memSize())
	}

	// The map is immediately reusable.
	idx, ok := m.lookupOrCreate(1, 2)
	if !ok || idx != 0 {
		t.Fatalf("lookup after clear = (%d,%v), want (0,true)", idx, ok)
	}

	m.dealloc()
	st.dealloc()
	if budget.used != 0 {
		t.Errorf("budget.used = %d after dealloc, want 0", budget.used)
	}
}

func TestNodeMapBudgetFailure(t *testing.T) {
	budget := &memBudget{limit: 100}
	st := &arena{}
	st.nodes.budget = budget
	m := &nodeMap{storage: st, budget: budget}

	// The initial bucket array alone exceeds 100 bytes, so the very first
	// create reports failure instead of crashing.
	if _, ok := m.lookupOrCreate(0, 0); ok {
		t.Fatal("create succeeded under an impossible budget")
	}
}
