package meshsimplify

import "sort"

// noNode is the sentinel "no node" index used by orderedErrors' linked list.
const noNode = ^uint32(0)

type oeNode struct {
	err        float64
	prev, next uint32
	live       bool
}

// block is one of the √N-sized anchor ranges spec §4.E/§9 describes: a
// contiguous run of the sorted list, identified by the edge id of its
// first node. Blocks are kept in ascending-err order, matching the list.
type block struct {
	start  uint32
	length int
}

// orderedErrors is component E: a doubly-linked list over edge ids, kept
// sorted ascending by collapse error, with a sparse array of anchor
// "flags" into the list so insert/remove/rekey can locate their target
// block in O(log(#blocks)) and then splice within a block of ~O(√N) nodes,
// rather than scanning the whole list (Remove may scan every block when
// many edges share one error value).
//
// Edge ids here are canonical half-edge indices: for an undirected edge
// represented by half-edges {h, twin(h)}, exactly one of the two (the
// smaller index) is ever used as the node id.
type orderedErrors struct {
	nodes     []oeNode
	head      uint32
	blocks    []block
	count     int
	blockSize int
}

func newOrderedErrors(capacity int) *orderedErrors {
	oe := &orderedErrors{
		nodes: make([]oeNode, capacity),
		head:  noNode,
	}
	for i := range oe.nodes {
		oe.nodes[i] = oeNode{prev: noNode, next: noNode}
	}
	oe.resizeTarget()
	return oe
}

func (oe *orderedErrors) resizeTarget() {
	n := oe.count
	if n < 1 {
		n = 1
	}
	target := 1
	for target*target < n {
		target++
	}
	oe.blockSize = target
}

// blockIndexFor returns the index into oe.blocks whose range contains err,
// i.e. the last block whose start node's err is <= err (or the last block,
// if err exceeds everything currently stored).
func (oe *orderedErrors) blockIndexFor(err float64) int {
	if len(oe.blocks) == 0 {
		return -1
	}
	i := sort.Search(len(oe.blocks), func(i int) bool {
		return oe.nodes[oe.blocks[i].start].err > err
	})
	if i == 0 {
		return 0
	}
	return i - 1
}

// Insert adds edge with the given error. edge must not already be live.
func (oe *orderedErrors) Insert(edge uint32, err float64) {
	oe.nodes[edge] = oeNode{err: err, live: true, prev: noNode, next: noNode}
	oe.count++

	if oe.head == noNode {
		oe.head = edge
		oe.blocks = []block{{start: edge, length: 1}}
		oe.resizeTarget()
		return
	}

	bi := oe.blockIndexFor(err)
	if bi < 0 {
		bi = 0
	}

	// Linear scan within block bi (and, if err is smaller than the whole
	// block's range, possibly the block boundary itself) to find the
	// node to insert before.
	cur := oe.blocks[bi].start
	var before uint32 = noNode
	for n := 0; n < oe.blocks[bi].length; n++ {
		if oe.nodes[cur].err > err {
			before = cur
			break
		}
		cur = oe.nodes[cur].next
	}
	if before == noNode {
		// Goes at the end of this block (or end of the list, if this is
		// the last block).
		before = cur
	}

	oe.spliceBefore(edge, before)
	oe.blocks[bi].length++

	if before == oe.blocks[bi].start {
		oe.blocks[bi].start = edge
	}
	if oe.nodes[edge].prev == noNode {
		oe.head = edge
		if len(oe.blocks) > 0 {
			oe.blocks[0].start = edge
		}
	}

	oe.resizeTarget()
	if oe.blocks[bi].length > 2*oe.blockSize && oe.blocks[bi].length > 1 {
		oe.splitBlock(bi)
	}
}

// spliceBefore inserts `edge`'s node into the linked list immediately
// before `before` (or at the tail, if before==noNode).
func (oe *orderedErrors) spliceBefore(edge, before uint32) {
	if before == noNode {
		// Append at the tail.
		tail := oe.tail()
		oe.nodes[edge].prev = tail
		oe.nodes[edge].next = noNode
		if tail != noNode {
			oe.nodes[tail].next = edge
		} else {
			oe.head = edge
		}
		return
	}
	prev := oe.nodes[before].prev
	oe.nodes[edge].prev = prev
	oe.nodes[edge].next = before
	oe.nodes[before].prev = edge
	if prev != noNode {
		oe.nodes[prev].next = edge
	} else {
		oe.head = edge
	}
}

func (oe *orderedErrors) tail() uint32 {
	if oe.head == noNode {
		return noNode
	}
	cur := oe.head
	for oe.nodes[cur].next != noNode {
		cur = oe.nodes[cur].next
	}
	return cur
}

// Remove unlinks edge from the list. edge must currently be live.
func (oe *orderedErrors) Remove(edge uint32) {
	node := oe.nodes[edge]
	if !node.live {
		return
	}

	// Locate the owning block before unlinking: blockContaining walks the
	// list via .next pointers, which must still include edge.
	bi := oe.blockContaining(edge)

	if node.prev != noNode {
		oe.nodes[node.prev].next = node.next
	}
	if node.next != noNode {
		oe.nodes[node.next].prev = node.prev
	}
	if oe.head == edge {
		oe.head = node.next
	}

	oe.nodes[edge] = oeNode{prev: noNode, next: noNode}
	oe.count--

	if bi < 0 {
		return
	}
	oe.blocks[bi].length--

	if oe.blocks[bi].length == 0 {
		oe.blocks = append(oe.blocks[:bi], oe.blocks[bi+1:]...)
	} else if oe.blocks[bi].start == edge {
		oe.blocks[bi].start = node.next
	}

	oe.resizeTarget()
	if len(oe.blocks) > 1 {
		oe.mergeIfUnderfull(bi)
	}
}

// blockContaining returns the index of the block whose range currently
// holds edge, found by locating the block via edge's error and confirming
// with a scan of that block and its two neighbours (blocks hold ~O(√N)
// nodes); if edge is in none of them, every block is scanned.
func (oe *orderedErrors) blockContaining(edge uint32) int {
	bi := oe.blockIndexFor(oe.nodes[edge].err)
	if bi < 0 {
		return -1
	}
	// When several nodes share an error value, that value can span
	// several blocks and the binary search can land on any of them; try
	// the found block and its neighbours first, then every block.
	for _, cand := range []int{bi, bi - 1, bi + 1} {
		if cand < 0 || cand >= len(oe.blocks) {
			continue
		}
		cur := oe.blocks[cand].start
		for n := 0; n < oe.blocks[cand].length; n++ {
			if cur == edge {
				return cand
			}
			cur = oe.nodes[cur].next
		}
	}
	for cand := range oe.blocks {
		cur := oe.blocks[cand].start
		for n := 0; n < oe.blocks[cand].length; n++ {
			if cur == edge {
				return cand
			}
			cur = oe.nodes[cur].next
		}
	}
	return bi
}

func (oe *orderedErrors) splitBlock(bi int) {
	b := oe.blocks[bi]
	half := b.length / 2
	cur := b.start
	for n := 0; n < half; n++ {
		cur = oe.nodes[cur].next
	}
	newBlock := block{start: cur, length: b.length - half}
	oe.blocks[bi].length = half
	tail := append([]block{}, oe.blocks[bi+1:]...)
	oe.blocks = append(oe.blocks[:bi+1], append([]block{newBlock}, tail...)...)
}

func (oe *orderedErrors) mergeIfUnderfull(bi int) {
	if bi >= len(oe.blocks) {
		bi = len(oe.blocks) - 1
	}
	if bi < 0 {
		return
	}
	if oe.blocks[bi].length >= (oe.blockSize+1)/2 {
		return
	}
	// Merge with the following block if present, else the preceding one.
	if bi+1 < len(oe.blocks) {
		oe.blocks[bi].length += oe.blocks[bi+1].length
		oe.blocks = append(oe.blocks[:bi+1], oe.blocks[bi+2:]...)
	} else if bi > 0 {
		oe.blocks[bi-1].length += oe.blocks[bi].length
		oe.blocks = append(oe.blocks[:bi], oe.blocks[bi+1:]...)
	}
}

// Rekey removes and reinserts edge with a new error. Equivalent to
// Remove+Insert; kept as one call so callers don't have to.
func (oe *orderedErrors) Rekey(edge uint32, newErr float64) {
	oe.Remove(edge)
	oe.Insert(edge, newErr)
}

// Cheapest returns the smallest-error live edge, or ok=false if the list
// is empty or its minimum exceeds budget.
func (oe *orderedErrors) Cheapest(budget float64) (edge uint32, err float64, ok bool) {
	if oe.head == noNode {
		return 0, 0, false
	}
	err = oe.nodes[oe.head].err
	if err > budget {
		return 0, 0, false
	}
	return oe.head, err, true
}

func (oe *orderedErrors) Live(edge uint32) bool {
	return oe.nodes[edge].live
}

// FirstUntried walks the sorted list from its cheapest entry and returns
// the first live, under-budget edge whose id is not present in tried. It
// backs the driver's per-sweep retry cursor (spec §4.F): unlike re-querying
// Cheapest after a rejection, it lets the caller advance past an edge that
// keeps failing its validity checks without losing track of the other,
// more expensive but still collapsible edges behind it in the list.
func (oe *orderedErrors) FirstUntried(budget float64, tried map[uint32]bool) (edge uint32, err float64, ok bool) {
	for cur := oe.head; cur != noNode; cur = oe.nodes[cur].next {
		e := oe.nodes[cur].err
		if e > budget {
			return 0, 0, false
		}
		if !tried[cur] {
			return cur, e, true
		}
	}
	return 0, 0, false
}
