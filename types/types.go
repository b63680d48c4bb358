// Package types contains shared data structures for termhex.
package types

// Color identifies the contents of a board cell and, for non-empty values,
// one of the two players. Black owns the top and bottom edges of the board,
// White owns the left and right edges.
type Color int

const (
	Empty Color = iota
	Black
	White
)

// Other returns the opposing color. Other of Empty is Empty.
func (c Color) Other() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

func (c Color) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	}
	return "Empty"
}

// BoardState represents a snapshot of a Hex game as seen across the engine
// boundary. Board is row-major with Size*Size cells.
type BoardState struct {
	MoveNumber int     `json:"move_number"`
	ToMove     Color   `json:"to_move"`
	Phase      string  `json:"phase"` // "playing", "finished"
	Size       int     `json:"size"`
	Board      []Color `json:"board"`
	Outcome    string  `json:"outcome"`
	LastMove   struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"last_move"`
}

// Finished returns true if the game is over.
func (b *BoardState) Finished() bool {
	return b.Phase == "finished"
}

// Width returns the number of columns. Hex boards are square, so Width and
// Height both report Size.
func (b *BoardState) Width() int {
	return b.Size
}

// Height returns the number of rows.
func (b *BoardState) Height() int {
	return b.Size
}

// At returns the cell at column x, row y.
func (b *BoardState) At(x, y int) Color {
	return b.Board[y*b.Size+x]
}

// Copy returns an independent copy of the snapshot.
func (b *BoardState) Copy() *BoardState {
	cp := *b
	cp.Board = make([]Color, len(b.Board))
	copy(cp.Board, b.Board)
	return &cp
}

// NewBoardState creates a new empty board snapshot of the given size.
// Black moves first by convention.
func NewBoardState(size int) *BoardState {
	bs := &BoardState{
		ToMove: Black,
		Phase:  "playing",
		Size:   size,
		Board:  make([]Color, size*size),
	}
	bs.LastMove.X = -1
	bs.LastMove.Y = -1
	return bs
}

// BoardPos represents a position on the board.
type BoardPos struct {
	X int
	Y int
}
