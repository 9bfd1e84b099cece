package gridpath

// openList is a binary min-heap of arena indices ordered by each node's f
// score. The node's open flag, not heap membership, is the source of truth
// for "is on the open list"; the heap stores no back-indices, so fix scans
// linearly. The heap stays small under JPS and node storage is contiguous,
// so the scan is cheap in practice.
// TODO: store a heap-position field in each node if fix ever shows up in
// profiles.
type openList struct {
	storage *arena
	idxHeap podVec[uint32]
}

func (o *openList) clear() { o.idxHeap.clear() }

func (o *openList) dealloc() { o.idxHeap.dealloc() }

func (o *openList) empty() bool { return o.idxHeap.empty() }

func (o *openList) memSize() int { return o.idxHeap.memSize() }

func (o *openList) less(i, j int) bool {
	return o.storage.at(int(*o.idxHeap.at(i))).f < o.storage.at(int(*o.idxHeap.at(j))).f
}

func (o *openList) swap(i, j int) {
	a, b := o.idxHeap.at(i), o.idxHeap.at(j)
	*a, *b = *b, *a
}

// push adds an arena index. Reports false when the heap cannot grow.
func (o *openList) push(idx int) bool {
	if !o.idxHeap.push(uint32(idx)) {
		return false
	}
	o.up(o.idxHeap.size() - 1)
	return true
}

// popMin removes and returns the arena index with the smallest f.
func (o *openList) popMin() int {
	debugAssert(!o.idxHeap.empty())
	n := o.idxHeap.size() - 1
	root := int(*o.idxHeap.at(0))
	o.swap(0, n)
	o.idxHeap.data = o.idxHeap.data[:n]
	if n > 1 {
		o.down(0)
	}
	return root
}

// fix restores heap order after the node at arena index idx decreased its f.
// Locates the entry by linear scan.
func (o *openList) fix(idx int) {
	target := uint32(idx)
	for i := 0; i < o.idxHeap.size(); i++ {
		if *o.idxHeap.at(i) == target {
			o.down(i)
			o.up(i)
			return
		}
	}
	debugAssert(false) // node expected on the heap
}

func (o *openList) up(j int) {
	for {
		i := (j - 1) / 2 // parent
		if i == j || !o.less(j, i) {
			break
		}
		o.swap(i, j)
		j = i
	}
}

func (o *openList) down(i int) {
	n := o.idxHeap.size()
	for {
		j1 := 2*i + 1
		if j1 >= n {
			break
		}
		j := j1 // left child
		if j2 := j1 + 1; j2 < n && o.less(j2, j1) {
			j = j2 // right child
		}
		if !o.less(j, i) {
			break
		}
		o.swap(i, j)
		i = j
	}
}
