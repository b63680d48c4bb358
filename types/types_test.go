package types

import "testing"

func TestBoardStateDimensions(t *testing.T) {
	bs := NewBoardState(7)
	if bs.Width() != 7 || bs.Height() != 7 {
		t.Fatalf("expected 7x7, got %dx%d", bs.Width(), bs.Height())
	}
	if len(bs.Board) != bs.Width()*bs.Height() {
		t.Fatalf("board length %d does not match dimensions", len(bs.Board))
	}
}

func TestBoardStateCopyIsIndependent(t *testing.T) {
	bs := NewBoardState(3)
	bs.Board[4] = Black
	cp := bs.Copy()
	cp.Board[4] = White
	if bs.At(1, 1) != Black {
		t.Fatal("mutating the copy changed the original")
	}
}
