package rectpack

import "iter"

// A NodeID is a handle to a node in a Tree.
type NodeID int32

const (
	// RootNode is the root of every non-empty tree.
	RootNode NodeID = 0
	// NoNode is the handle for a missing node.
	NoNode NodeID = -1
)

// A node is a region of a Tree. A node is either a free leaf, an occupied
// leaf, or an interior node with two children.
type node struct {
	bounds   Rect
	parent   NodeID
	left     NodeID
	right    NodeID
	occupied bool
	occupant Occupant
}

func (n *node) hasChildren() bool {
	return n.left != NoNode
}

// A Tree is a guillotine packer which partitions its bounds with a binary
// tree. Each placement splits a free leaf with one straight cut, leaving a
// region exactly as wide or as tall as the placed rectangle on the left and
// the remainder on the right. Nodes are never removed or merged.
//
// Padding is reserved on the cut side of every split, so neighboring
// rectangles are at least Padding apart. No padding is reserved along the
// outer edges of the bounds.
type Tree struct {
	Padding int32

	nodes []node
	count int
}

// Name implements the Packer interface.
func (*Tree) Name() string {
	return "Guillotine"
}

// Reset implements the Packer interface.
func (t *Tree) Reset(bounds Point) {
	t.nodes = append(t.nodes[:0], node{
		bounds: Rect{Max: bounds},
		parent: NoNode,
		left:   NoNode,
		right:  NoNode,
	})
	t.count = 0
}

// AddRect implements the Packer interface. The rectangle's index is its
// position in insertion order.
func (t *Tree) AddRect(size Point) (pos Point, ok bool) {
	id, ok := t.Place(size, t.count)
	if !ok {
		return Point{}, false
	}
	return t.nodes[id].bounds.Min, true
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Bounds returns the region covered by a node.
func (t *Tree) Bounds(id NodeID) Rect {
	return t.nodes[id].bounds
}

// Parent returns the parent of a node, or NoNode for the root.
func (t *Tree) Parent(id NodeID) NodeID {
	return t.nodes[id].parent
}

// Children returns the children of a node. Returns false if the node is a
// leaf.
func (t *Tree) Children(id NodeID) (left, right NodeID, ok bool) {
	n := &t.nodes[id]
	if !n.hasChildren() {
		return NoNode, NoNode, false
	}
	return n.left, n.right, true
}

// Root returns the root of the tree containing the given node.
func (t *Tree) Root(id NodeID) NodeID {
	for {
		p := t.nodes[id].parent
		if p == NoNode {
			return id
		}
		id = p
	}
}

// Place places a rectangle with the given caller index in the tree. Returns
// the occupied leaf, or false if there is no free region large enough.
func (t *Tree) Place(size Point, index int) (NodeID, bool) {
	if len(t.nodes) == 0 || size.X <= 0 || size.Y <= 0 {
		return NoNode, false
	}
	id, ok := t.place(RootNode, size, index)
	if ok {
		t.count++
	}
	return id, ok
}

func (t *Tree) place(id NodeID, size Point, index int) (NodeID, bool) {
	n := &t.nodes[id]
	if n.hasChildren() {
		left, right := n.left, n.right
		if r, ok := t.place(left, size, index); ok {
			return r, true
		}
		return t.place(right, size, index)
	}
	if n.occupied {
		return NoNode, false
	}
	b := n.bounds
	bw, bh := b.Dx(), b.Dy()
	if size.X > bw || size.Y > bh {
		return NoNode, false
	}
	if size.X == bw && size.Y == bh {
		n.occupied = true
		n.occupant = Occupant{
			Index: index,
			Order: t.count,
			Rect:  b,
		}
		return id, true
	}
	var left, right Rect
	if bw-size.X > bh-size.Y {
		left = XYWH(b.Min.X, b.Min.Y, size.X, bh)
		right = XYWH(b.Min.X+size.X+t.Padding, b.Min.Y, nonNeg(bw-size.X-t.Padding), bh)
	} else {
		left = XYWH(b.Min.X, b.Min.Y, bw, size.Y)
		right = XYWH(b.Min.X, b.Min.Y+size.Y+t.Padding, bw, nonNeg(bh-size.Y-t.Padding))
	}
	// Appending may move the arena, so n is not used past this point.
	l := t.add(id, left)
	r := t.add(id, right)
	t.nodes[id].left = l
	t.nodes[id].right = r
	return t.place(l, size, index)
}

func (t *Tree) add(parent NodeID, bounds Rect) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{
		bounds: bounds,
		parent: parent,
		left:   NoNode,
		right:  NoNode,
	})
	return id
}

func nonNeg(x int32) int32 {
	if x < 0 {
		return 0
	}
	return x
}

// Occupant returns the rectangle placed in a node. Returns false if the node
// is not an occupied leaf.
func (t *Tree) Occupant(id NodeID) (Occupant, bool) {
	n := &t.nodes[id]
	return n.occupant, n.occupied
}

// Occupants returns the occupied leaves under the given node, in tree order:
// a node's left subtree comes before its right subtree. Tree order is not
// insertion order; sort by Occupant.Order to recover insertion order.
func (t *Tree) Occupants(from NodeID) iter.Seq[Occupant] {
	return func(yield func(Occupant) bool) {
		if int(from) >= len(t.nodes) || from < 0 {
			return
		}
		t.walk(from, yield)
	}
}

func (t *Tree) walk(id NodeID, yield func(Occupant) bool) bool {
	n := &t.nodes[id]
	if n.occupied {
		return yield(n.occupant)
	}
	if n.hasChildren() {
		return t.walk(n.left, yield) && t.walk(n.right, yield)
	}
	return true
}

// TightBounds returns the smallest rectangle containing every rectangle
// placed in the tree containing the given node. Returns false if nothing has
// been placed.
func (t *Tree) TightBounds(id NodeID) (r Rect, ok bool) {
	if len(t.nodes) == 0 {
		return r, false
	}
	for o := range t.Occupants(t.Root(id)) {
		if ok {
			r = r.Union(o.Rect)
		} else {
			r = o.Rect
			ok = true
		}
	}
	return r, ok
}
