package hex

import "fmt"

// InvalidMoveError reports a move targeting an occupied cell. The move is
// rejected without modifying the game, so the caller may pick another cell.
type InvalidMoveError struct {
	X int
	Y int
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("illegal move: cell (%d, %d) is occupied", e.X, e.Y)
}

// OutOfRangeError reports an action identifier outside [0, Limit).
type OutOfRangeError struct {
	Action int
	Limit  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("action %d out of range [0, %d)", e.Action, e.Limit)
}
