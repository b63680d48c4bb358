// Package hex implements the Hex board engine: cell occupancy, turn order,
// and incremental detection of a winning edge-to-edge connection. A Game is
// not safe for concurrent use; give each goroutine its own Copy.
package hex

import "termhex/types"

// Game holds the full state of one Hex game.
type Game struct {
	size    int
	board   []types.Color // row-major size*size
	active  types.Color
	empty   int
	regions [2]*regionGrid // indexed by color-1
	done    bool
	winner  types.Color // Empty while undecided or drawn
}

// NewGame creates an empty board of the given side length with active to
// move. An Empty active color defaults to Black.
func NewGame(size int, active types.Color) *Game {
	if active == types.Empty {
		active = types.Black
	}
	return &Game{
		size:   size,
		board:  make([]types.Color, size*size),
		active: active,
		empty:  size * size,
		regions: [2]*regionGrid{
			newRegionGrid(size, types.Black),
			newRegionGrid(size, types.White),
		},
	}
}

// NewGameFromBoard creates a game from a pre-placed position. board is
// row-major with size*size cells and is copied. If regions is nil, the
// connectivity grids are rebuilt by replaying insert for every stone in
// row-major order; passing a snapshot from Regions skips that replay when
// resetting the same starting position repeatedly.
func NewGameFromBoard(active types.Color, size int, board []types.Color, regions *Regions) *Game {
	g := &Game{
		size:   size,
		board:  make([]types.Color, size*size),
		active: active,
	}
	copy(g.board, board)
	for _, c := range g.board {
		if c == types.Empty {
			g.empty++
		}
	}

	if regions != nil {
		r := regions.clone()
		r.black.resetNext()
		r.white.resetNext()
		g.regions = [2]*regionGrid{r.black, r.white}
	} else {
		g.regions = [2]*regionGrid{
			newRegionGrid(size, types.Black),
			newRegionGrid(size, types.White),
		}
		for i, c := range g.board {
			if c == types.Empty {
				continue
			}
			g.regionFor(c).insert(i/size, i%size)
		}
	}

	if active == types.Empty {
		g.active = types.Black
	}
	g.checkLoaded()
	return g
}

// checkLoaded evaluates terminal conditions for a freshly loaded position.
func (g *Game) checkLoaded() {
	for _, c := range []types.Color{types.Black, types.White} {
		if g.regionFor(c).connected() {
			g.done = true
			g.winner = c
			return
		}
	}
	if g.empty == 0 {
		g.done = true
	}
}

func (g *Game) regionFor(c types.Color) *regionGrid {
	return g.regions[c-1]
}

// Move applies a stone of the active color at action after validating it.
// It returns the winner, or Empty if the game has no winner yet. A rejected
// move leaves the game completely unchanged.
func (g *Game) Move(action int) (types.Color, error) {
	if action < 0 || action >= g.size*g.size {
		return types.Empty, &OutOfRangeError{Action: action, Limit: g.size * g.size}
	}
	if g.board[action] != types.Empty {
		y, x := g.ActionToCoord(action)
		return types.Empty, &InvalidMoveError{X: x, Y: y}
	}
	return g.MoveFast(action), nil
}

// MoveFast applies a stone of the active color at action without any
// validity check. Behavior is undefined when the target cell is occupied or
// the action is out of range; callers that cannot guarantee a legal move
// must use Move instead.
func (g *Game) MoveFast(action int) types.Color {
	y, x := g.ActionToCoord(action)
	g.board[action] = g.active
	g.empty--

	r := g.regionFor(g.active)
	r.insert(y, x)

	if r.connected() {
		g.done = true
		g.winner = g.active
	} else if g.empty == 0 {
		// Unreachable on a true Hex board, kept so a relaxed topology
		// still terminates.
		g.done = true
	}

	// The nominal turn passes even on a terminal move; Winner, not
	// Active, reports the outcome.
	g.active = g.active.Other()
	return g.winner
}

// PossibleActions returns the actions for all empty cells in row-major
// order. The order carries no meaning but is stable for reproducibility.
func (g *Game) PossibleActions() []int {
	actions := make([]int, 0, g.empty)
	for i, c := range g.board {
		if c == types.Empty {
			actions = append(actions, i)
		}
	}
	return actions
}

// Copy returns an independent deep copy, for rollouts that must not touch
// the original.
func (g *Game) Copy() *Game {
	cp := &Game{
		size:   g.size,
		board:  make([]types.Color, len(g.board)),
		active: g.active,
		empty:  g.empty,
		done:   g.done,
		winner: g.winner,
	}
	copy(cp.board, g.board)
	cp.regions[0] = g.regions[0].clone()
	cp.regions[1] = g.regions[1].clone()
	return cp
}

// Regions returns a snapshot of both connectivity grids, suitable for
// passing to NewGameFromBoard later.
func (g *Game) Regions() *Regions {
	return &Regions{
		black: g.regions[0].clone(),
		white: g.regions[1].clone(),
	}
}

// ActionToCoord converts a flat action to (row, column).
func (g *Game) ActionToCoord(action int) (y, x int) {
	return action / g.size, action % g.size
}

// CoordToAction converts (row, column) to a flat action.
func (g *Game) CoordToAction(y, x int) int {
	return y*g.size + x
}

// Size returns the board side length.
func (g *Game) Size() int { return g.size }

// At returns the cell at row y, column x.
func (g *Game) At(y, x int) types.Color { return g.board[y*g.size+x] }

// Board returns a copy of the row-major cell grid.
func (g *Game) Board() []types.Color {
	b := make([]types.Color, len(g.board))
	copy(b, g.board)
	return b
}

// EmptyCells returns the number of unoccupied cells.
func (g *Game) EmptyCells() int { return g.empty }

// Done returns true once the game is terminal. No further moves may be
// applied to a terminal game.
func (g *Game) Done() bool { return g.done }

// Winner returns the winning color, or Empty if the game is undecided or
// ended with a full board and no connection.
func (g *Game) Winner() types.Color { return g.winner }

// Active returns the color to move. Note that the turn passes even on the
// terminal move, so after a win Active is the loser; use Winner for the
// outcome.
func (g *Game) Active() types.Color { return g.active }
