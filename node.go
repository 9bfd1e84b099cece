package gridpath

// Node flags. A node may be open and later also closed; closed wins every
// check. With a consistent heuristic the first pop of a node is optimal, so
// closed nodes are never re-opened.
const (
	nodeOpen   = 1
	nodeClosed = 2
)

// node lives only inside the searcher's arena, so all nodes are linearly
// adjacent in memory. parentOffs is a signed slot delta to the parent node
// in the same arena (0 = no parent). Offsets survive arena growth; raw
// pointers do not, which is why the engine passes arena indices across any
// call that can allocate.
type node struct {
	f, g       Score
	pos        Position
	parentOffs int32
	flags      uint8
}

func (n *node) hasParent() bool { return n.parentOffs != 0 }

func (n *node) isOpen() bool { return n.flags&nodeOpen != 0 }

func (n *node) isClosed() bool { return n.flags&nodeClosed != 0 }

// arena is the append-only node pool. Nodes are never removed individually;
// the pool is cleared as a whole between searches.
type arena struct {
	nodes podVec[node]
}

func (a *arena) clear() { a.nodes.clear() }

func (a *arena) dealloc() { a.nodes.dealloc() }

func (a *arena) size() int { return a.nodes.size() }

func (a *arena) at(i int) *node { return a.nodes.at(i) }

func (a *arena) memSize() int { return a.nodes.memSize() }

// allocNode appends a zeroed node and returns its index, or ok=false when
// the memory budget rejects the growth.
func (a *arena) allocNode() (int, bool) {
	return a.nodes.alloc()
}

// setParent links child to parent by slot offset.
func (a *arena) setParent(childIdx, parentIdx int) {
	debugAssert(childIdx != parentIdx)
	a.at(childIdx).parentOffs = int32(parentIdx - childIdx)
}

// parentIdx resolves a node's parent index. Only valid when hasParent().
func (a *arena) parentIdx(idx int) int {
	debugAssert(a.at(idx).hasParent())
	return idx + int(a.at(idx).parentOffs)
}
