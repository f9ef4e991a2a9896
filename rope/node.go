package rope

import (
	"strings"

	"github.com/inkwell-editor/inkwell/strutil"
)

// node is a single vertex of the rope tree: either a leaf owning one
// contiguous UTF-8 string, or a branch exclusively owning two children. Both
// kinds cache the four counters spec.md requires so that every public query
// can be answered in O(log N) by descent rather than a full rescan.
//
// Every mutating operation in this package is a pure function: it takes a
// *node (or several) and returns a *new* *node, never touching the node it
// was given. This replaces the in-place, mem::swap-based rotation style of
// the source material with recursive functions that return a subtree root
// by value, per the re-architecture guidance this core follows.
type node struct {
	leaf  bool
	text  string // valid only when leaf
	left  *node  // valid only when !leaf
	right *node  // valid only when !leaf

	scalars     int
	graphemes   int
	terminators int
	height      int
}

func newLeaf(text string) *node {
	scalars, graphemeCount, terminators := strutil.Counts(text)
	return &node{
		leaf:        true,
		text:        text,
		scalars:     scalars,
		graphemes:   graphemeCount,
		terminators: terminators,
		height:      1,
	}
}

func newBranch(left, right *node) *node {
	h := left.height
	if right.height > h {
		h = right.height
	}
	return &node{
		leaf:        false,
		left:        left,
		right:       right,
		scalars:     left.scalars + right.scalars,
		graphemes:   left.graphemes + right.graphemes,
		terminators: left.terminators + right.terminators,
		height:      h + 1,
	}
}

// collectText flattens a subtree into its full string. Merge calls it on
// subtrees whose total grapheme count has already dropped below MinLeaf;
// Rope.String calls it on the whole tree.
func collectText(n *node) string {
	if n.leaf {
		return n.text
	}
	var b strings.Builder
	b.Grow(byteLenEstimate(n))
	collectInto(n, &b)
	return b.String()
}

func byteLenEstimate(n *node) int {
	// a rough estimate; scalar count is a lower bound on byte length only
	// for ASCII, but it's good enough as a Grow() hint.
	return n.scalars
}

func collectInto(n *node, b *strings.Builder) {
	if n.leaf {
		b.WriteString(n.text)
		return
	}
	collectInto(n.left, b)
	collectInto(n.right, b)
}

// rotateLeft and rotateRight are the two classic AVL rotations, expressed
// as pure functions that build new branch nodes rather than swapping
// pointers in place.
func rotateLeft(n *node) *node {
	r := n.right
	newLeftChild := newBranch(n.left, r.left)
	return newBranch(newLeftChild, r.right)
}

func rotateRight(n *node) *node {
	l := n.left
	newRightChild := newBranch(l.right, n.right)
	return newBranch(l.left, newRightChild)
}

// rebalance restores the AVL invariant at n, assuming both children are
// already balanced (true whenever rebalance is applied bottom-up after a
// single-leaf mutation). Single rotation when the heavy child leans the same
// way as its parent, double rotation when it leans the other way.
func rebalance(n *node) *node {
	if n.leaf {
		return n
	}
	left, right := n.left, n.right
	diff := left.height - right.height
	switch {
	case diff > 1:
		if !left.leaf && left.left.height < left.right.height {
			left = rotateLeft(left)
		}
		n = rotateRight(newBranch(left, right))
	case diff < -1:
		if !right.leaf && right.right.height < right.left.height {
			right = rotateRight(right)
		}
		n = rotateLeft(newBranch(left, right))
	}
	return n
}

// splitIfLarge replaces an oversized leaf with a balanced branch of two
// grapheme-aligned halves, recursing in case a half is still too large.
func splitIfLarge(n *node, cfg Config) *node {
	if !n.leaf || n.graphemes <= cfg.MaxLeaf {
		return n
	}
	mid := n.graphemes / 2
	left, right, err := strutil.SplitAtGrapheme(n.text, mid)
	if err != nil {
		// n.graphemes was computed from n.text, so mid is always valid.
		panic("rope: invariant violated: " + err.Error())
	}
	return rebalance(newBranch(splitIfLarge(newLeaf(left), cfg), splitIfLarge(newLeaf(right), cfg)))
}

// mergeIfSmall collapses a branch whose total grapheme count has dropped
// below MinLeaf into a single leaf.
func mergeIfSmall(n *node, cfg Config) *node {
	if n.leaf || n.graphemes >= cfg.MinLeaf {
		return n
	}
	return newLeaf(collectText(n))
}

// buildBalanced assembles a sequence of leaves into a height-balanced tree
// using a monotone stack merge: while the two topmost entries have equal
// height, merge them, then rebalance. Any remaining height differences at
// the end are folded in right-to-left. The result height is bounded by
// ceil(log2(len(leaves))) + 1, matching the construction bound in spec.md.
func buildBalanced(leaves []*node) *node {
	if len(leaves) == 0 {
		return newLeaf("")
	}
	stack := make([]*node, 0, len(leaves))
	for _, leaf := range leaves {
		stack = append(stack, leaf)
		for len(stack) >= 2 && stack[len(stack)-1].height == stack[len(stack)-2].height {
			top := stack[len(stack)-1]
			second := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			stack = append(stack, rebalance(newBranch(second, top)))
		}
	}
	for len(stack) > 1 {
		top := stack[len(stack)-1]
		second := stack[len(stack)-2]
		stack = stack[:len(stack)-2]
		stack = append(stack, rebalance(newBranch(second, top)))
	}
	return stack[0]
}

// splitIntoLeaves divides s into leaves of at most cfg.MaxLeaf graphemes
// apiece, in order.
func splitIntoLeaves(s string, cfg Config) []*node {
	if s == "" {
		return []*node{newLeaf("")}
	}
	gs := strutil.Graphemes(s)
	leaves := make([]*node, 0, len(gs)/cfg.MaxLeaf+1)
	for i := 0; i < len(gs); i += cfg.MaxLeaf {
		end := i + cfg.MaxLeaf
		if end > len(gs) {
			end = len(gs)
		}
		leaves = append(leaves, newLeaf(strings.Join(gs[i:end], "")))
	}
	return leaves
}
