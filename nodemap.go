package gridpath

const (
	// mapLoadFactor is entries per bucket before the bucket count doubles.
	// Roughly one cache line of hashLoc entries.
	mapLoadFactor = 8

	// mapInitialBuckets must be a power of two greater than 1.
	mapInitialBuckets = 16
)

// hashLoc is one bucket entry: a cheap full-width filter hash plus the index
// of the node in the arena. The map owns no node data; rehashing never
// touches nodes.
type hashLoc struct {
	hash2 uint32
	idx   uint32
}

// hash1 picks the bucket. Only the low bits are used, so it needs to mix
// the low bits well.
func hash1(x, y uint32) uint32 { return x ^ y }

// hash2 is checked before the (x,y) confirm against the arena node. It is
// built to lose as little of the coordinates as possible.
func hash2(x, y uint32) uint32 { return y<<16 ^ x }

// nodeMap maps a position to its arena index, creating the node on first
// lookup. Bucket count is always a power of two.
type nodeMap struct {
	storage *arena
	buckets []podVec[hashLoc]
	budget  *memBudget
}

// bucketsHeaderBytes is the budget charge for the bucket array itself.
func bucketsHeaderBytes(n int) int {
	return n * elemSize[podVec[hashLoc]]()
}

// clear empties every bucket but keeps the bucket array and each bucket's
// capacity for the next search.
func (m *nodeMap) clear() {
	for i := range m.buckets {
		m.buckets[i].clear()
	}
}

func (m *nodeMap) dealloc() {
	for i := range m.buckets {
		m.buckets[i].dealloc()
	}
	if m.budget != nil {
		m.budget.release(bucketsHeaderBytes(cap(m.buckets)))
	}
	m.buckets = nil
}

func (m *nodeMap) memSize() int {
	sum := bucketsHeaderBytes(cap(m.buckets))
	for i := range m.buckets {
		sum += m.buckets[i].memSize()
	}
	return sum
}

// lookupOrCreate returns the arena index of the node for (x,y), allocating
// a zeroed node when none exists yet. ok=false means out of memory, either
// from arena growth, bucket entry growth, or a partially failed rehash.
func (m *nodeMap) lookupOrCreate(x, y uint32) (int, bool) {
	h := hash1(x, y)
	h2 := hash2(x, y)
	var b *podVec[hashLoc]
	if ksz := len(m.buckets); ksz > 0 {
		b = &m.buckets[h&uint32(ksz-1)]
		for _, loc := range b.data {
			if loc.hash2 != h2 {
				continue
			}
			// hash2 is a filter; confirm against the node's coordinates.
			n := m.storage.at(int(loc.idx))
			if n.pos.X == x && n.pos.Y == y {
				return int(loc.idx), true
			}
		}
	}

	// Enlarge if the load factor was exceeded; re-pick the bucket if the
	// bucket array changed.
	switch newsz := m.enlarge(); {
	case newsz > 1:
		b = &m.buckets[h&uint32(newsz-1)]
	case newsz == 1:
		return 0, false
	}
	if b == nil {
		// The initial bucket allocation was rejected by the budget.
		return 0, false
	}

	if !b.push(hashLoc{hash2: h2, idx: uint32(m.storage.size())}) {
		return 0, false
	}

	idx, ok := m.storage.allocNode()
	if !ok {
		return 0, false
	}
	n := m.storage.at(idx)
	n.pos = Position{X: x, Y: y}
	return idx, true
}

// enlarge doubles the bucket count when the arena outgrows the load factor
// and reinserts every arena node.
//
// Returns 0 when nothing had to be done (including when the bucket array
// itself could not grow: the map still works, just more loaded), 1 when
// reinsertion failed partway (the map is unusable and the search must
// report out-of-memory), and the new bucket count otherwise.
func (m *nodeMap) enlarge() int {
	n := m.storage.size()
	oldsz := len(m.buckets)
	if n < oldsz*mapLoadFactor {
		return 0
	}

	newsz := mapInitialBuckets
	if oldsz > 0 {
		newsz = oldsz * 2
	}

	if m.budget != nil && !m.budget.reserve(bucketsHeaderBytes(newsz)-bucketsHeaderBytes(cap(m.buckets))) {
		return 0
	}

	grown := make([]podVec[hashLoc], newsz)
	// Old buckets keep their entry storage; only their contents are
	// redistributed.
	copy(grown, m.buckets)
	for i := 0; i < oldsz; i++ {
		grown[i].clear()
	}
	for i := range grown {
		grown[i].budget = m.budget
	}
	m.buckets = grown

	mask := uint32(newsz - 1)
	for i := 0; i < n; i++ {
		p := m.storage.at(i).pos
		if !m.buckets[hash1(p.X, p.Y)&mask].push(hashLoc{hash2: hash2(p.X, p.Y), idx: uint32(i)}) {
			return 1
		}
	}
	return newsz
}
