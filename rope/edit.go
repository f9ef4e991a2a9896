package rope

import "github.com/inkwell-editor/inkwell/strutil"

// insertLeaf descends by left-child scalar count until it reaches a leaf,
// mutates it (in the pure, value-returning sense), and rebuilds ancestors on
// the way back: refresh counts, split if the leaf grew past MaxLeaf, and
// rebalance. This never performs seam repair itself; the caller (Insert)
// funnels through repairSeam afterwards, exactly as spec.md requires.
func insertLeaf(n *node, at int, text string, cfg Config) *node {
	if n.leaf {
		if text == "" {
			return n
		}
		combined := n.graphemes + strutil.GraphemeCount(text)
		if combined <= cfg.MaxLeaf {
			newText, err := strutil.InsertAtScalar(n.text, at, text)
			if err != nil {
				panic("rope: invariant violated: " + err.Error())
			}
			return splitIfLarge(newLeaf(newText), cfg)
		}

		// The inserted text does not fit in this leaf's remaining budget.
		switch {
		case at == 0:
			return rebalance(newBranch(fromStringNode(text, cfg), n))
		case at == n.scalars:
			return rebalance(newBranch(n, fromStringNode(text, cfg)))
		default:
			left, right, err := strutil.SplitAtScalar(n.text, at)
			if err != nil {
				panic("rope: invariant violated: " + err.Error())
			}
			mid := fromStringNode(text, cfg)
			return rebalance(newBranch(rebalance(newBranch(newLeaf(left), mid)), newLeaf(right)))
		}
	}

	if at < n.left.scalars {
		newLeft := insertLeaf(n.left, at, text, cfg)
		return rebalance(newBranch(newLeft, n.right))
	}
	newRight := insertLeaf(n.right, at-n.left.scalars, text, cfg)
	return rebalance(newBranch(n.left, newRight))
}

// removeRange recursively removes the scalar range [a,b), dispatching the
// portion of the range that falls in each child, clamped at the split.
func removeRange(n *node, a, b int, cfg Config) *node {
	if n.leaf {
		newText, err := strutil.RemoveBetweenScalars(n.text, a, b)
		if err != nil {
			panic("rope: invariant violated: " + err.Error())
		}
		return newLeaf(newText)
	}

	lcc := n.left.scalars
	newLeft, newRight := n.left, n.right
	if a < lcc {
		newLeft = removeRange(n.left, a, min(b, lcc), cfg)
	}
	if b > lcc {
		newRight = removeRange(n.right, max(a-lcc, 0), b-lcc, cfg)
	}
	merged := mergeIfSmall(newBranch(newLeft, newRight), cfg)
	if merged.leaf {
		return merged
	}
	return rebalance(merged)
}

// isLeafBoundary reports whether scalar index i sits exactly on the
// boundary between two leaves of n (as opposed to inside one).
func isLeafBoundary(n *node, i int) bool {
	if n.leaf {
		return i == 0 || i == n.scalars
	}
	lcc := n.left.scalars
	switch {
	case i < lcc:
		return isLeafBoundary(n.left, i)
	case i > lcc:
		return isLeafBoundary(n.right, i-lcc)
	default:
		return true
	}
}

// appendAtBoundary descends to the leaf whose right edge sits exactly at
// global scalar offset i and appends extra to its text. It is only ever
// called with an i that isLeafBoundary has already confirmed.
func appendAtBoundary(n *node, i int, extra string, cfg Config) *node {
	if n.leaf {
		return splitIfLarge(newLeaf(n.text+extra), cfg)
	}
	if i <= n.left.scalars {
		return rebalance(newBranch(appendAtBoundary(n.left, i, extra, cfg), n.right))
	}
	return rebalance(newBranch(n.left, appendAtBoundary(n.right, i-n.left.scalars, extra, cfg)))
}

// removeAtBoundary descends to the leaf whose left edge sits exactly at
// global scalar offset j and removes its first cnt scalars.
func removeAtBoundary(n *node, j, cnt int, cfg Config) *node {
	if n.leaf {
		newText, err := strutil.RemoveBetweenScalars(n.text, 0, cnt)
		if err != nil {
			panic("rope: invariant violated: " + err.Error())
		}
		return newLeaf(newText)
	}
	var merged *node
	if j < n.left.scalars {
		merged = mergeIfSmall(newBranch(removeAtBoundary(n.left, j, cnt, cfg), n.right), cfg)
	} else {
		merged = mergeIfSmall(newBranch(n.left, removeAtBoundary(n.right, j-n.left.scalars, cnt, cfg)), cfg)
	}
	if merged.leaf {
		return merged
	}
	return rebalance(merged)
}

// repairSeam is the single place the grapheme-seam invariant is enforced.
// Given a scalar index i that may sit on a leaf boundary, it checks whether
// the grapheme ending just before i and the grapheme starting at i merge
// under UAX #29 (CRLF only, per this core's documented restriction) and, if
// so, moves the right-hand grapheme's bytes across the seam: appended onto
// the end of the left-adjacent leaf, then removed from the front of the
// right-adjacent leaf. Each leaf's cached grapheme count is recomputed from
// its own text on every mutation, so once the CR and LF share a leaf, UAX
// #29 segmentation naturally counts them as the single CRLF cluster they
// are.
func repairSeam(n *node, i int, cfg Config) *node {
	if i <= 0 || i >= n.scalars {
		return n
	}
	if !isLeafBoundary(n, i) {
		return n
	}
	gi, err := scalarToGrapheme(n, i)
	if err != nil || gi <= 0 || gi >= n.graphemes {
		return n
	}
	left := graphemeAt(n, gi-1)
	right := graphemeAt(n, gi)
	if !strutil.GraphemesMerge(left, right) {
		return n
	}

	extraScalars := strutil.ScalarCount(right)
	n = appendAtBoundary(n, i, right, cfg)
	n = removeAtBoundary(n, i+extraScalars, extraScalars, cfg)
	return n
}

// Append concatenates other onto the end of r, rebalancing and repairing
// the seam at the join point. If either side is empty, the other is
// returned unchanged (modulo config).
func (r *Rope) Append(other *Rope) *Rope {
	if r.root.scalars == 0 {
		return &Rope{root: other.root, cfg: r.cfg}
	}
	if other.root.scalars == 0 {
		return &Rope{root: r.root, cfg: r.cfg}
	}
	joinAt := r.root.scalars
	combined := rebalance(newBranch(r.root, other.root))
	combined = repairSeam(combined, joinAt, r.cfg)
	return &Rope{root: combined, cfg: r.cfg}
}

// splitNodeAt recursively splits n at scalar index pos, returning the left
// and right subtrees. Whichever side contains pos recurses; the other side
// is carried over wholesale.
func splitNodeAt(n *node, pos int) (*node, *node) {
	if n.leaf {
		left, right, err := strutil.SplitAtScalar(n.text, pos)
		if err != nil {
			panic("rope: invariant violated: " + err.Error())
		}
		return newLeaf(left), newLeaf(right)
	}
	lcc := n.left.scalars
	if pos <= lcc {
		ll, lr := splitNodeAt(n.left, pos)
		return ll, rebalance(newBranch(lr, n.right))
	}
	rl, rr := splitNodeAt(n.right, pos-lcc)
	return rebalance(newBranch(n.left, rl)), rr
}

// SplitAtScalar splits r at scalar index i, returning a Rope holding
// [0, i) and a Rope holding [i, scalar_count). r itself is unchanged (this
// package's ropes are immutable, so both halves are new Ropes and the
// caller discards or keeps the receiver as needed).
func (r *Rope) SplitAtScalar(i int) (*Rope, *Rope, error) {
	if i < 0 || i > r.root.scalars {
		return nil, nil, errIndex("scalar", i, r.root.scalars)
	}
	left, right := splitNodeAt(r.root, i)
	return &Rope{root: left, cfg: r.cfg}, &Rope{root: right, cfg: r.cfg}, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
