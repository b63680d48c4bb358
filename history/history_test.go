package history

import (
	"testing"

	"termhex/types"
)

func TestNewTree(t *testing.T) {
	tree := NewTree()
	if tree.Root == nil {
		t.Fatal("root should not be nil")
	}
	if tree.Current != tree.Root {
		t.Fatal("current should be root")
	}
	if tree.Root.Move != (Move{}) {
		t.Fatalf("root move should be zero, got %+v", tree.Root.Move)
	}
}

func TestTreeAddMove(t *testing.T) {
	tree := NewTree()
	m := Move{Action: 12, Color: types.Black}
	node := tree.AddMove(m)
	if node.Move != m {
		t.Fatalf("expected %+v, got %+v", m, node.Move)
	}
	if tree.Current != node {
		t.Fatal("current should advance to new node")
	}
	if node.Parent != tree.Root {
		t.Fatal("parent should be root")
	}
	if len(tree.Root.Children) != 1 {
		t.Fatalf("root should have 1 child, got %d", len(tree.Root.Children))
	}
}

func TestAddMoveDedup(t *testing.T) {
	tree := NewTree()
	m := Move{Action: 12, Color: types.Black}
	node1 := tree.AddMove(m)
	tree.Back()
	node2 := tree.AddMove(m) // same move, should navigate not create
	if node1 != node2 {
		t.Fatal("duplicate move should navigate to existing node, not create new one")
	}
	if len(tree.Root.Children) != 1 {
		t.Fatalf("root should still have 1 child, got %d", len(tree.Root.Children))
	}
}

func TestAddMoveBranching(t *testing.T) {
	tree := NewTree()
	tree.AddMove(Move{Action: 12, Color: types.Black})
	tree.Back()
	tree.AddMove(Move{Action: 4, Color: types.Black}) // different move, should create branch
	if len(tree.Root.Children) != 2 {
		t.Fatalf("root should have 2 children, got %d", len(tree.Root.Children))
	}
	if tree.Root.Children[0].Move.Action != 12 {
		t.Fatalf("first child should be action 12, got %d", tree.Root.Children[0].Move.Action)
	}
	if tree.Root.Children[1].Move.Action != 4 {
		t.Fatalf("second child should be action 4, got %d", tree.Root.Children[1].Move.Action)
	}
}

func TestBack(t *testing.T) {
	tree := NewTree()
	// Back at root should return false
	if tree.Back() {
		t.Fatal("back at root should return false")
	}

	tree.AddMove(Move{Action: 12, Color: types.Black})
	if !tree.Back() {
		t.Fatal("back should return true")
	}
	if tree.Current != tree.Root {
		t.Fatal("should be back at root")
	}
}

func TestPathFromRootAndDepth(t *testing.T) {
	tree := NewTree()
	moves := []Move{
		{Action: 12, Color: types.Black},
		{Action: 5, Color: types.White},
		{Action: 13, Color: types.Black},
	}
	for _, m := range moves {
		tree.AddMove(m)
	}

	path := tree.PathFromRoot()
	if len(path) != 3 {
		t.Fatalf("expected path of 3, got %d", len(path))
	}
	for i, m := range moves {
		if path[i] != m {
			t.Fatalf("path[%d] = %+v, want %+v", i, path[i], m)
		}
	}
	if tree.Depth() != 3 {
		t.Fatalf("expected depth 3, got %d", tree.Depth())
	}

	tree.Back()
	if tree.Depth() != 2 {
		t.Fatalf("expected depth 2 after back, got %d", tree.Depth())
	}
	if len(tree.PathFromRoot()) != 2 {
		t.Fatal("path should shrink with cursor")
	}
}

func TestPathFollowsCursorAcrossBranches(t *testing.T) {
	tree := NewTree()
	tree.AddMove(Move{Action: 12, Color: types.Black})
	tree.Back()
	tree.AddMove(Move{Action: 4, Color: types.Black})
	tree.AddMove(Move{Action: 5, Color: types.White})

	path := tree.PathFromRoot()
	if len(path) != 2 {
		t.Fatalf("expected path of 2, got %d", len(path))
	}
	if path[0].Action != 4 || path[1].Action != 5 {
		t.Fatalf("path should follow the replayed branch, got %+v", path)
	}
	// The abandoned first move stays in the tree.
	if len(tree.Root.Children) != 2 {
		t.Fatalf("root should keep both branches, got %d", len(tree.Root.Children))
	}
}
