// Package history tracks an in-memory tree of Hex moves. It backs undo and
// rematch replay; nothing here touches storage.
package history

import "termhex/types"

// Move is one stone placement: a flat board action and the color that
// played it.
type Move struct {
	Action int
	Color  types.Color
}

// Node represents a single position in the move tree.
type Node struct {
	Move     Move // zero value for root
	Parent   *Node
	Children []*Node // First child = main line
}

// Tree tracks moves with a cursor, so stepping back and replaying a
// different continuation forms variations instead of losing history.
type Tree struct {
	Root    *Node
	Current *Node
}

// NewTree creates a new move tree with an empty root node.
func NewTree() *Tree {
	root := &Node{}
	return &Tree{Root: root, Current: root}
}

// AddMove adds a child move to the current node and advances to it.
// If a child with the same move already exists, navigates to it instead of creating a duplicate.
func (t *Tree) AddMove(move Move) *Node {
	for _, child := range t.Current.Children {
		if child.Move == move {
			t.Current = child
			return child
		}
	}
	node := &Node{
		Move:   move,
		Parent: t.Current,
	}
	t.Current.Children = append(t.Current.Children, node)
	t.Current = node
	return node
}

// Back moves current to its parent. Returns false if already at root.
func (t *Tree) Back() bool {
	if t.Current == t.Root {
		return false
	}
	t.Current = t.Current.Parent
	return true
}

// PathFromRoot returns the moves from root to current, in play order.
func (t *Tree) PathFromRoot() []Move {
	var path []Move
	node := t.Current
	for node != t.Root {
		path = append(path, node.Move)
		node = node.Parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Depth returns the number of moves from root to current.
func (t *Tree) Depth() int {
	n := 0
	for node := t.Current; node != t.Root; node = node.Parent {
		n++
	}
	return n
}

