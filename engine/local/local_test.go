package local

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termhex/engine"
	"termhex/types"
)

type moveEvent struct {
	x, y  int
	color types.Color
	state *types.BoardState
}

func newTestEngine(cfg engine.GameConfig) (*LocalEngine, chan moveEvent, chan string) {
	e := NewLocalEngine(cfg)
	moves := make(chan moveEvent, 64)
	ends := make(chan string, 4)
	e.OnMove(func(x, y int, c types.Color, bs *types.BoardState) {
		moves <- moveEvent{x: x, y: y, color: c, state: bs}
	})
	e.OnGameEnd(func(outcome string) {
		ends <- outcome
	})
	return e, moves, ends
}

func waitMove(t *testing.T, ch chan moveEvent) moveEvent {
	t.Helper()
	select {
	case m := <-ch:
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a move callback")
		return moveEvent{}
	}
}

func waitEnd(t *testing.T, ch chan string) string {
	t.Helper()
	select {
	case o := <-ch:
		return o
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the game-end callback")
		return ""
	}
}

// firstFreePolicy always takes the lowest free action. Deterministic, so
// tests never depend on RNG behavior.
func firstFreePolicy(board *types.BoardState, toMove types.Color, info engine.PolicyInfo) (int, error) {
	for i, c := range board.Board {
		if c == types.Empty {
			return i, nil
		}
	}
	return 0, errors.New("no legal moves")
}

func TestPlayerMoveGetsOpponentReply(t *testing.T) {
	e, moves, _ := newTestEngine(engine.GameConfig{
		BoardSize:   5,
		PlayerColor: types.Black,
		FirstPlayer: types.Black,
		Opponent:    firstFreePolicy,
	})
	require.NoError(t, e.Connect())
	require.True(t, e.IsMyTurn())

	require.NoError(t, e.PlayMove(2, 2))

	first := waitMove(t, moves)
	assert.Equal(t, types.Black, first.color)
	assert.Equal(t, 2, first.x)
	assert.Equal(t, 2, first.y)
	assert.Equal(t, types.Black, first.state.At(2, 2))

	second := waitMove(t, moves)
	assert.Equal(t, types.White, second.color)
	assert.Equal(t, 0, second.x) // lowest free action is (0,0)
	assert.Equal(t, 0, second.y)
	assert.Equal(t, 2, second.state.MoveNumber)
	assert.True(t, e.IsMyTurn())
}

func TestOpponentOpensWhenPlayerIsSecond(t *testing.T) {
	e, moves, _ := newTestEngine(engine.GameConfig{
		BoardSize:   5,
		PlayerColor: types.White,
		FirstPlayer: types.Black,
		Opponent:    firstFreePolicy,
	})
	require.NoError(t, e.Connect())

	opening := waitMove(t, moves)
	assert.Equal(t, types.Black, opening.color)
	assert.Equal(t, 1, opening.state.MoveNumber)
	assert.True(t, e.IsMyTurn())
}

func TestIllegalMovesRejected(t *testing.T) {
	e, moves, _ := newTestEngine(engine.GameConfig{
		BoardSize:   5,
		PlayerColor: types.Black,
		Opponent:    firstFreePolicy,
	})
	require.NoError(t, e.Connect())

	require.NoError(t, e.PlayMove(2, 2))
	waitMove(t, moves) // own move
	waitMove(t, moves) // opponent took (0,0)

	// Own stone and the opponent's stone are both occupied.
	assert.Error(t, e.PlayMove(2, 2))
	assert.Error(t, e.PlayMove(0, 0))
	assert.True(t, e.IsMyTurn(), "a rejected move must not consume the turn")
	assert.Equal(t, 2, e.GetBoardState().MoveNumber)
}

func TestOffBoardMoveRejected(t *testing.T) {
	e, _, _ := newTestEngine(engine.GameConfig{
		BoardSize:   5,
		PlayerColor: types.Black,
		Opponent:    firstFreePolicy,
	})
	require.NoError(t, e.Connect())

	assert.Error(t, e.PlayMove(5, 0))
	assert.Error(t, e.PlayMove(0, 5))
	assert.Error(t, e.PlayMove(-1, 0))
	assert.Error(t, e.PlayMove(0, -1))

	bs := e.GetBoardState()
	assert.Equal(t, 0, bs.MoveNumber)
	// A flat conversion of (5,0) would wrap onto the next row.
	assert.Equal(t, types.Empty, bs.At(0, 1))
	assert.Equal(t, -1, bs.LastMove.X)
	assert.Equal(t, -1, bs.LastMove.Y)
	assert.True(t, e.IsMyTurn(), "a rejected move must not consume the turn")
}

func TestNotYourTurnWhileOpponentThinks(t *testing.T) {
	release := make(chan struct{})
	blocking := func(board *types.BoardState, toMove types.Color, info engine.PolicyInfo) (int, error) {
		<-release
		return firstFreePolicy(board, toMove, info)
	}
	e, moves, _ := newTestEngine(engine.GameConfig{
		BoardSize:   5,
		PlayerColor: types.Black,
		Opponent:    blocking,
	})
	require.NoError(t, e.Connect())

	require.NoError(t, e.PlayMove(1, 1))
	waitMove(t, moves)

	assert.False(t, e.IsMyTurn())
	assert.Error(t, e.PlayMove(2, 2))

	close(release)
	waitMove(t, moves)
	assert.True(t, e.IsMyTurn())
}

func TestWinEndsGameWithoutOpponentReply(t *testing.T) {
	e, moves, ends := newTestEngine(engine.GameConfig{
		BoardSize:   1,
		PlayerColor: types.Black,
		Opponent:    firstFreePolicy,
	})
	require.NoError(t, e.Connect())

	require.NoError(t, e.PlayMove(0, 0))
	m := waitMove(t, moves)
	assert.Equal(t, types.Black, m.color)
	assert.Equal(t, "Black wins by connection", waitEnd(t, ends))

	bs := e.GetBoardState()
	assert.True(t, bs.Finished())
	assert.Error(t, e.PlayMove(0, 0), "no moves accepted once terminal")

	select {
	case extra := <-moves:
		t.Fatalf("unexpected move after the game ended: %+v", extra)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestOpponentErrorForfeits(t *testing.T) {
	broken := func(board *types.BoardState, toMove types.Color, info engine.PolicyInfo) (int, error) {
		return 0, errors.New("engine crashed")
	}
	e, moves, ends := newTestEngine(engine.GameConfig{
		BoardSize:   3,
		PlayerColor: types.Black,
		Opponent:    broken,
	})
	require.NoError(t, e.Connect())
	require.NoError(t, e.PlayMove(0, 0))
	waitMove(t, moves)

	assert.Equal(t, "Black wins by forfeit", waitEnd(t, ends))
	assert.True(t, e.GetBoardState().Finished())
}

func TestRematchResetsState(t *testing.T) {
	e, moves, ends := newTestEngine(engine.GameConfig{
		BoardSize:   1,
		PlayerColor: types.Black,
		Opponent:    firstFreePolicy,
	})
	require.NoError(t, e.Connect())
	require.NoError(t, e.PlayMove(0, 0))
	waitMove(t, moves)
	waitEnd(t, ends)

	// Second Connect starts over from the cached initial position.
	require.NoError(t, e.Connect())
	bs := e.GetBoardState()
	assert.Equal(t, 0, bs.MoveNumber)
	assert.False(t, bs.Finished())
	assert.Equal(t, types.Empty, bs.At(0, 0))

	require.NoError(t, e.PlayMove(0, 0))
	waitMove(t, moves)
	assert.Equal(t, "Black wins by connection", waitEnd(t, ends))
}

func TestUndoRewindsToPlayersTurn(t *testing.T) {
	e, moves, _ := newTestEngine(engine.GameConfig{
		BoardSize:   5,
		PlayerColor: types.Black,
		Opponent:    firstFreePolicy,
	})
	require.NoError(t, e.Connect())

	require.NoError(t, e.PlayMove(2, 2))
	waitMove(t, moves)
	waitMove(t, moves)
	require.Equal(t, 2, e.GetBoardState().MoveNumber)

	require.NoError(t, e.Undo())
	bs := e.GetBoardState()
	assert.Equal(t, 0, bs.MoveNumber)
	assert.Equal(t, types.Empty, bs.At(2, 2))
	assert.Equal(t, types.Empty, bs.At(0, 0))
	assert.True(t, e.IsMyTurn())

	// The freed cells are playable again.
	require.NoError(t, e.PlayMove(0, 0))
	m := waitMove(t, moves)
	assert.Equal(t, types.Black, m.color)
}

func TestUndoWithNothingToUndo(t *testing.T) {
	e, _, _ := newTestEngine(engine.GameConfig{
		BoardSize:   5,
		PlayerColor: types.Black,
		Opponent:    firstFreePolicy,
	})
	require.NoError(t, e.Connect())
	assert.Error(t, e.Undo())
}

func TestSeededRandomOpponentIsReproducible(t *testing.T) {
	run := func() []types.Color {
		e, moves, _ := newTestEngine(engine.GameConfig{
			BoardSize:   5,
			PlayerColor: types.Black,
			Seed:        99,
		})
		require.NoError(t, e.Connect())
		// Four exchanges give neither side the five stones a 5x5
		// crossing needs, so both callbacks arrive every iteration.
		var last *types.BoardState
		for i := 0; i < 4; i++ {
			bs := e.GetBoardState()
			played := false
			for a, c := range bs.Board {
				if c == types.Empty {
					require.NoError(t, e.PlayMove(a%5, a/5))
					played = true
					break
				}
			}
			require.True(t, played)
			waitMove(t, moves)
			last = waitMove(t, moves).state
		}
		return last.Board
	}

	assert.Equal(t, run(), run())
}
