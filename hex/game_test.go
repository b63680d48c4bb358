package hex

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termhex/types"
)

// hexNeighbors is the six-neighbor relation used by the reference checks,
// independent of the padded-grid implementation.
var hexNeighbors = [6][2]int{
	{-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0},
}

// bfsConnected reports, straight from the raw board, whether c's two home
// edges are joined through same-color cells.
func bfsConnected(board []types.Color, size int, c types.Color) bool {
	visited := make([]bool, size*size)
	var queue []int
	for i := 0; i < size; i++ {
		idx := i // Black's near edge: row 0
		if c == types.White {
			idx = i * size // White's near edge: column 0
		}
		if board[idx] == c && !visited[idx] {
			visited[idx] = true
			queue = append(queue, idx)
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		y, x := cur/size, cur%size
		if (c == types.Black && y == size-1) || (c == types.White && x == size-1) {
			return true
		}
		for _, d := range hexNeighbors {
			ny, nx := y+d[0], x+d[1]
			if ny < 0 || ny >= size || nx < 0 || nx >= size {
				continue
			}
			ni := ny*size + nx
			if !visited[ni] && board[ni] == c {
				visited[ni] = true
				queue = append(queue, ni)
			}
		}
	}
	return false
}

// components flood-fills the raw board and returns, per cell of color c,
// a component id; cells of other colors get -1.
func components(board []types.Color, size int, c types.Color) []int {
	comp := make([]int, size*size)
	for i := range comp {
		comp[i] = -1
	}
	next := 0
	for start, cell := range board {
		if cell != c || comp[start] != -1 {
			continue
		}
		comp[start] = next
		queue := []int{start}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			y, x := cur/size, cur%size
			for _, d := range hexNeighbors {
				ny, nx := y+d[0], x+d[1]
				if ny < 0 || ny >= size || nx < 0 || nx >= size {
					continue
				}
				ni := ny*size + nx
				if board[ni] == c && comp[ni] == -1 {
					comp[ni] = next
					queue = append(queue, ni)
				}
			}
		}
		next++
	}
	return comp
}

// checkInvariants cross-checks the tracker against the reference BFS: label
// equality must coincide with component membership, empty count must match
// the grid, and the connectivity flags must agree.
func checkInvariants(t *testing.T, g *Game) {
	t.Helper()
	board := g.Board()
	size := g.Size()

	emptyCount := 0
	for _, c := range board {
		if c == types.Empty {
			emptyCount++
		}
	}
	require.Equal(t, emptyCount, g.EmptyCells())

	for _, c := range []types.Color{types.Black, types.White} {
		comp := components(board, size, c)
		labelOf := map[int]int{}
		compOf := map[int]int{}
		for i, cell := range board {
			if cell != c {
				continue
			}
			y, x := i/size, i%size
			label := g.regionFor(c).labelAt(y, x)
			require.NotEqual(t, labelNone, label, "occupied cell (%d,%d) must be labeled", y, x)
			if prev, ok := labelOf[comp[i]]; ok {
				require.Equal(t, prev, label, "component split across labels at (%d,%d)", y, x)
			} else {
				labelOf[comp[i]] = label
			}
			if prev, ok := compOf[label]; ok {
				require.Equal(t, prev, comp[i], "label shared across components at (%d,%d)", y, x)
			} else {
				compOf[label] = comp[i]
			}
		}
		require.Equal(t, bfsConnected(board, size, c), g.regionFor(c).connected(),
			"connectivity flag for %s disagrees with BFS", c)
	}
}

// playRandom plays a full random game on the given size, checking the
// invariants after every move, and returns the winner and the move list.
func playRandom(t *testing.T, size int, seed int64) (types.Color, []int) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	g := NewGame(size, types.Black)
	var moves []int
	for !g.Done() {
		actions := g.PossibleActions()
		require.NotEmpty(t, actions)
		a := actions[rng.Intn(len(actions))]
		_, err := g.Move(a)
		require.NoError(t, err)
		moves = append(moves, a)
		checkInvariants(t, g)
	}
	require.NotEqual(t, types.Empty, g.Winner(), "Hex games cannot draw")
	return g.Winner(), moves
}

func TestRandomGamesMatchReference(t *testing.T) {
	for _, size := range []int{2, 3, 5, 7} {
		for seed := int64(0); seed < 4; seed++ {
			playRandom(t, size, seed)
		}
	}
}

func TestWinDetectedExactlyOnCompletingMove(t *testing.T) {
	// Replaying a finished game: no false positive before the final move.
	winner, moves := playRandom(t, 5, 42)
	g := NewGame(5, types.Black)
	for i, a := range moves {
		require.False(t, g.Done(), "terminal before move %d", i)
		w, err := g.Move(a)
		require.NoError(t, err)
		if i < len(moves)-1 {
			assert.Equal(t, types.Empty, w)
		} else {
			assert.Equal(t, winner, w)
		}
	}
	assert.True(t, g.Done())
}

func TestCenterDiagonalWin(t *testing.T) {
	// Black takes the center of a 3x3 board, then the two anti-diagonal
	// corners, linking the top and bottom edges on the final stone.
	g := NewGame(3, types.Black)

	w, err := g.Move(g.CoordToAction(1, 1)) // Black center
	require.NoError(t, err)
	require.Equal(t, types.Empty, w)
	_, err = g.Move(g.CoordToAction(1, 0)) // White
	require.NoError(t, err)

	w, err = g.Move(g.CoordToAction(0, 2)) // Black, touches top edge
	require.NoError(t, err)
	require.Equal(t, types.Empty, w)
	require.False(t, g.Done())
	_, err = g.Move(g.CoordToAction(1, 2)) // White
	require.NoError(t, err)

	w, err = g.Move(g.CoordToAction(2, 0)) // Black, completes the chain
	require.NoError(t, err)
	assert.Equal(t, types.Black, w)
	assert.True(t, g.Done())
	assert.Equal(t, types.Black, g.Winner())
}

func TestSingleCellBoardWinsImmediately(t *testing.T) {
	for _, first := range []types.Color{types.Black, types.White} {
		g := NewGame(1, first)
		w, err := g.Move(0)
		require.NoError(t, err)
		assert.Equal(t, first, w)
		assert.True(t, g.Done())
	}
}

func TestOccupiedCellRejectedWithoutStateChange(t *testing.T) {
	g := NewGame(4, types.Black)
	_, err := g.Move(g.CoordToAction(2, 1))
	require.NoError(t, err)

	emptyBefore := g.EmptyCells()
	activeBefore := g.Active()
	boardBefore := g.Board()

	_, err = g.Move(g.CoordToAction(2, 1))
	require.Error(t, err)
	var invalid *InvalidMoveError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, 2, invalid.Y)
	assert.Equal(t, 1, invalid.X)

	assert.Equal(t, emptyBefore, g.EmptyCells())
	assert.Equal(t, activeBefore, g.Active())
	assert.Equal(t, boardBefore, g.Board())
}

func TestOutOfRangeActionRejected(t *testing.T) {
	g := NewGame(3, types.Black)
	for _, action := range []int{-1, 9, 100} {
		_, err := g.Move(action)
		require.Error(t, err)
		var oor *OutOfRangeError
		require.True(t, errors.As(err, &oor))
		assert.Equal(t, action, oor.Action)
		assert.Equal(t, 9, oor.Limit)
	}
	assert.Equal(t, 9, g.EmptyCells())
}

func TestTurnFlipsEvenOnTerminalMove(t *testing.T) {
	g := NewGame(1, types.Black)
	_, err := g.Move(0)
	require.NoError(t, err)
	// The nominal turn advances on the winning move; the outcome is read
	// from Winner, never from Active.
	assert.Equal(t, types.White, g.Active())
	assert.Equal(t, types.Black, g.Winner())
}

func TestPossibleActionsRowMajor(t *testing.T) {
	g := NewGame(3, types.Black)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, g.PossibleActions())

	_, err := g.Move(4)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 5, 6, 7, 8}, g.PossibleActions())
}

func TestDeterminism(t *testing.T) {
	_, moves := playRandom(t, 5, 7)
	a := NewGame(5, types.Black)
	b := NewGame(5, types.Black)
	for _, m := range moves {
		wa, err := a.Move(m)
		require.NoError(t, err)
		wb, err := b.Move(m)
		require.NoError(t, err)
		assert.Equal(t, wa, wb)
		assert.Equal(t, a.Board(), b.Board())
	}
	assert.Equal(t, a.Winner(), b.Winner())
	assert.Equal(t, a.Done(), b.Done())
}

func TestCopyIndependence(t *testing.T) {
	g := NewGame(4, types.Black)
	_, err := g.Move(5)
	require.NoError(t, err)

	cp := g.Copy()
	assert.Equal(t, g.Board(), cp.Board())
	assert.Equal(t, g.Active(), cp.Active())

	// Mutating the copy leaves the source untouched.
	_, err = cp.Move(6)
	require.NoError(t, err)
	assert.Equal(t, types.Empty, g.At(1, 2))
	assert.Equal(t, 15, g.EmptyCells())

	// And the other way around.
	_, err = g.Move(9)
	require.NoError(t, err)
	assert.Equal(t, types.Empty, cp.At(2, 1))
	checkInvariants(t, g)
	checkInvariants(t, cp)
}

func TestMoveFastMatchesMove(t *testing.T) {
	_, moves := playRandom(t, 5, 13)
	safe := NewGame(5, types.Black)
	fast := NewGame(5, types.Black)
	for _, m := range moves {
		ws, err := safe.Move(m)
		require.NoError(t, err)
		wf := fast.MoveFast(m)
		assert.Equal(t, ws, wf)
	}
	assert.Equal(t, safe.Board(), fast.Board())
	assert.Equal(t, safe.Winner(), fast.Winner())
}

func TestNewGameFromBoardReplaysFloodFill(t *testing.T) {
	// Stop a random game midway and rebuild from the raw board alone.
	rng := rand.New(rand.NewSource(3))
	g := NewGame(5, types.Black)
	for i := 0; i < 10 && !g.Done(); i++ {
		actions := g.PossibleActions()
		_, err := g.Move(actions[rng.Intn(len(actions))])
		require.NoError(t, err)
	}

	rebuilt := NewGameFromBoard(g.Active(), 5, g.Board(), nil)
	checkInvariants(t, rebuilt)
	assert.Equal(t, g.Board(), rebuilt.Board())
	assert.Equal(t, g.EmptyCells(), rebuilt.EmptyCells())
	assert.Equal(t, g.Active(), rebuilt.Active())

	// Both games must agree on every continuation.
	for !g.Done() {
		actions := g.PossibleActions()
		a := actions[rng.Intn(len(actions))]
		wg, err := g.Move(a)
		require.NoError(t, err)
		wr, err := rebuilt.Move(a)
		require.NoError(t, err)
		assert.Equal(t, wg, wr)
	}
	assert.Equal(t, g.Winner(), rebuilt.Winner())
}

func TestNewGameFromBoardWithCachedRegions(t *testing.T) {
	g := NewGame(5, types.Black)
	for _, a := range []int{12, 3, 7, 18} {
		_, err := g.Move(a)
		require.NoError(t, err)
	}
	board := g.Board()
	regions := g.Regions()

	// Resetting from the snapshot must behave exactly like the original.
	for seed := int64(0); seed < 3; seed++ {
		rng := rand.New(rand.NewSource(seed))
		a := NewGameFromBoard(g.Active(), 5, board, regions.clone())
		b := g.Copy()
		checkInvariants(t, a)
		for !a.Done() {
			actions := a.PossibleActions()
			m := actions[rng.Intn(len(actions))]
			wa, err := a.Move(m)
			require.NoError(t, err)
			wb, err := b.Move(m)
			require.NoError(t, err)
			require.Equal(t, wb, wa)
		}
		assert.Equal(t, b.Winner(), a.Winner())
	}
}

func TestFromBoardDetectsFinishedPosition(t *testing.T) {
	// A board where White already spans left to right.
	board := make([]types.Color, 9)
	board[3], board[4], board[5] = types.White, types.White, types.White
	g := NewGameFromBoard(types.Black, 3, board, nil)
	assert.True(t, g.Done())
	assert.Equal(t, types.White, g.Winner())
}
