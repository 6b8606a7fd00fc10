package sherwood

import "math/bits"

// Tree stores a complete binary tree of depth D in a flat array of
// length 2^(D+1)-1 (spec §3): index 0 is the root, and node i's children
// live at 2i+1 (left) and 2i+2 (right). There are no parent/child
// pointers; a Null-status slot marks a subtree early-terminated before
// reaching depth D.
type Tree[F Feature, S Aggregator[S]] struct {
	MaxDepth int
	Nodes    []Node[F, S]
}

// NewTree allocates a tree for the given maximum depth with every slot
// Null. maxDepth is the number of splitting levels (root at level 0): a
// maxDepth of 0 can only ever produce a single-leaf tree, maxDepth of 1
// allows one split, and so on (spec §5's depth-convention decision).
func NewTree[F Feature, S Aggregator[S]](maxDepth int) *Tree[F, S] {
	size := (1 << (maxDepth + 1)) - 1
	return &Tree[F, S]{MaxDepth: maxDepth, Nodes: make([]Node[F, S], size)}
}

// NodeCount returns the number of slots in the flat array (2^(D+1)-1).
func (t *Tree[F, S]) NodeCount() int {
	return len(t.Nodes)
}

// GetNode returns node i.
func (t *Tree[F, S]) GetNode(i int) Node[F, S] {
	return t.Nodes[i]
}

// levelOf returns node i's level (root is level 0), which is
// floor(log2(i+1)).
func levelOf(i int) int {
	return bits.Len(uint(i+1)) - 1
}

// leftChild and rightChild give node i's children in the flat array.
func leftChild(i int) int  { return 2*i + 1 }
func rightChild(i int) int { return 2*i + 2 }

// LeftChild and RightChild expose the flat-array child-index arithmetic
// to callers outside the package (e.g. internal/treeviz) that need to
// walk a tree's structure without re-deriving the layout.
func LeftChild(i int) int  { return leftChild(i) }
func RightChild(i int) int { return rightChild(i) }

// Descend walks from the root following SplitCandidate nodes until it
// reaches a Leaf, returning that leaf's array index. Reaching a Null
// node before a Leaf is an invariant violation (spec §4.5, §7) and
// panics with ErrCorruptTree rather than returning an error, since it
// can only happen if the tree was never validated.
func (t *Tree[F, S]) Descend(data DataPointCollection, sampleIndex int) int {
	i := 0
	for t.Nodes[i].Status == SplitCandidate {
		node := t.Nodes[i]
		if node.Feature.Response(data, sampleIndex) < node.Threshold {
			i = leftChild(i)
		} else {
			i = rightChild(i)
		}
	}
	if t.Nodes[i].Status != Leaf {
		panic(ErrCorruptTree)
	}
	return i
}

// Apply descends every sample in data independently, returning a slice
// of leaf indices in input sample order.
func (t *Tree[F, S]) Apply(data DataPointCollection) []int {
	n := data.Count()
	leaves := make([]int, n)
	for s := 0; s < n; s++ {
		leaves[s] = t.Descend(data, s)
	}
	return leaves
}

// CheckValid verifies that every reachable node is SplitCandidate or
// Leaf and that every SplitCandidate has two non-Null children (spec
// §4.5).
func (t *Tree[F, S]) CheckValid() bool {
	return t.checkValidFrom(0)
}

func (t *Tree[F, S]) checkValidFrom(i int) bool {
	if i >= len(t.Nodes) {
		return false
	}
	switch t.Nodes[i].Status {
	case Leaf:
		return true
	case SplitCandidate:
		l, r := leftChild(i), rightChild(i)
		if l >= len(t.Nodes) || r >= len(t.Nodes) {
			return false
		}
		if t.Nodes[l].Status == Null || t.Nodes[r].Status == Null {
			return false
		}
		return t.checkValidFrom(l) && t.checkValidFrom(r)
	default:
		return false
	}
}
