// Package local implements the GameEngine interface on the in-process hex
// core, driving an opponent policy between the player's moves.
package local

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"termhex/engine"
	"termhex/hex"
	"termhex/history"
	"termhex/types"
)

var debugLog *slog.Logger

func init() {
	f, err := os.Create(filepath.Join(os.TempDir(), "termhex-debug.log"))
	if err != nil {
		debugLog = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}
	debugLog = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// LocalEngine implements the GameEngine interface over a hex.Game.
type LocalEngine struct {
	cfg      engine.GameConfig
	opponent engine.Policy

	game           *hex.Game
	initialRegions *hex.Regions // cached across rematches
	hist           *history.Tree
	boardState     *types.BoardState
	myTurn         bool
	gameOver       bool
	lastPlayerMove int // flat action, -1 if none
	lastOwnMove    int

	moveCallback func(x, y int, color types.Color, boardState *types.BoardState)
	endCallback  func(outcome string)

	log *slog.Logger
	mu  sync.Mutex
}

// NewLocalEngine creates a new engine with the given configuration.
func NewLocalEngine(cfg engine.GameConfig) *LocalEngine {
	if cfg.PlayerColor == types.Empty {
		cfg.PlayerColor = types.Black
	}
	if cfg.FirstPlayer == types.Empty {
		cfg.FirstPlayer = types.Black
	}
	opponent := cfg.Opponent
	if opponent == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		opponent = RandomPolicy(seed)
	}
	return &LocalEngine{
		cfg:        cfg,
		opponent:   opponent,
		boardState: types.NewBoardState(cfg.BoardSize),
		log:        debugLog.With("game", uuid.NewString()),
	}
}

// Connect initializes a fresh game. The first call computes and caches the
// starting position's connectivity grids; rematches rebuild from the cache
// instead of replaying the flood fill.
func (e *LocalEngine) Connect() error {
	e.mu.Lock()
	if e.cfg.BoardSize < 1 {
		e.mu.Unlock()
		return fmt.Errorf("invalid board size %d", e.cfg.BoardSize)
	}

	if e.initialRegions == nil {
		e.game = hex.NewGame(e.cfg.BoardSize, e.cfg.FirstPlayer)
		e.initialRegions = e.game.Regions()
	} else {
		e.game = hex.NewGameFromBoard(e.cfg.FirstPlayer, e.cfg.BoardSize,
			make([]types.Color, e.cfg.BoardSize*e.cfg.BoardSize), e.initialRegions)
	}

	e.hist = history.NewTree()
	e.gameOver = false
	e.lastPlayerMove = -1
	e.lastOwnMove = -1
	e.boardState = types.NewBoardState(e.cfg.BoardSize)
	e.boardState.ToMove = e.cfg.FirstPlayer
	e.myTurn = e.cfg.PlayerColor == e.cfg.FirstPlayer
	opponentFirst := !e.myTurn
	e.mu.Unlock()

	e.log.Debug("game started",
		"size", e.cfg.BoardSize,
		"player", e.cfg.PlayerColor.String(),
		"first", e.cfg.FirstPlayer.String())

	if opponentFirst {
		go e.triggerOpponentMove()
	}
	return nil
}

// GetBoardState returns the current board state.
func (e *LocalEngine) GetBoardState() *types.BoardState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.boardState
}

// PlayMove plays the human player's move at the given coordinates.
func (e *LocalEngine) PlayMove(x, y int) error {
	e.mu.Lock()
	if e.gameOver {
		e.mu.Unlock()
		return fmt.Errorf("game is over")
	}
	if !e.myTurn {
		e.mu.Unlock()
		return fmt.Errorf("not your turn")
	}
	// Flat actions wrap row boundaries, so bad coordinates must be caught
	// before converting.
	if x < 0 || y < 0 || x >= e.cfg.BoardSize || y >= e.cfg.BoardSize {
		e.mu.Unlock()
		return fmt.Errorf("move (%d, %d) is off the board", x, y)
	}

	action := e.game.CoordToAction(y, x)
	winner, err := e.game.Move(action)
	if err != nil {
		e.mu.Unlock()
		return err
	}

	e.hist.AddMove(history.Move{Action: action, Color: e.cfg.PlayerColor})
	e.lastPlayerMove = action
	e.applyToSnapshot(x, y, e.cfg.PlayerColor)
	e.myTurn = false
	outcome := e.finishIfOver(winner)
	snapshot := e.boardState.Copy()
	e.mu.Unlock()

	e.log.Debug("player move", "x", x, "y", y)

	// Callbacks run outside the lock to prevent deadlock.
	if e.moveCallback != nil {
		e.moveCallback(x, y, e.cfg.PlayerColor, snapshot)
	}
	if outcome != "" {
		if e.endCallback != nil {
			e.endCallback(outcome)
		}
		return nil
	}

	go e.triggerOpponentMove()
	return nil
}

// triggerOpponentMove asks the opponent policy for a move and applies it.
func (e *LocalEngine) triggerOpponentMove() {
	e.mu.Lock()
	if e.gameOver || e.myTurn {
		e.mu.Unlock()
		return
	}
	color := e.cfg.PlayerColor.Other()
	info := engine.PolicyInfo{
		LastPlayerMove: e.lastPlayerMove,
		LastOwnMove:    e.lastOwnMove,
	}
	board := e.boardState.Copy()
	e.mu.Unlock()

	// The policy sees only a snapshot; runs unlocked so a slow policy
	// never blocks GetBoardState.
	action, err := e.opponent(board, color, info)

	e.mu.Lock()
	if e.gameOver {
		e.mu.Unlock()
		return
	}
	var winner types.Color
	if err == nil {
		winner, err = e.game.Move(action)
	}
	if err != nil {
		// A policy that cannot produce a legal move forfeits.
		e.gameOver = true
		e.boardState.Phase = "finished"
		e.boardState.Outcome = fmt.Sprintf("%s wins by forfeit", e.cfg.PlayerColor)
		outcome := e.boardState.Outcome
		e.mu.Unlock()

		e.log.Debug("opponent forfeit", "err", err)
		if e.endCallback != nil {
			e.endCallback(outcome)
		}
		return
	}

	y, x := e.game.ActionToCoord(action)
	e.hist.AddMove(history.Move{Action: action, Color: color})
	e.lastOwnMove = action
	e.applyToSnapshot(x, y, color)
	e.myTurn = true
	outcome := e.finishIfOver(winner)
	snapshot := e.boardState.Copy()
	e.mu.Unlock()

	e.log.Debug("opponent move", "x", x, "y", y)

	if e.moveCallback != nil {
		e.moveCallback(x, y, color, snapshot)
	}
	if outcome != "" && e.endCallback != nil {
		e.endCallback(outcome)
	}
}

// applyToSnapshot records a move on the boardState snapshot.
// Must be called while holding the lock.
func (e *LocalEngine) applyToSnapshot(x, y int, c types.Color) {
	e.boardState.Board[y*e.cfg.BoardSize+x] = c
	e.boardState.LastMove.X = x
	e.boardState.LastMove.Y = y
	e.boardState.MoveNumber++
	e.boardState.ToMove = c.Other()
}

// finishIfOver transitions the snapshot to finished when the game is
// terminal, returning the outcome text, or "" while play continues.
// Must be called while holding the lock.
func (e *LocalEngine) finishIfOver(winner types.Color) string {
	if !e.game.Done() {
		return ""
	}
	e.gameOver = true
	e.boardState.Phase = "finished"
	if winner == types.Empty {
		e.boardState.Outcome = "Draw (board full)"
	} else {
		e.boardState.Outcome = fmt.Sprintf("%s wins by connection", winner)
	}
	return e.boardState.Outcome
}

// Undo rewinds the game to the start of the player's previous turn,
// stepping past the opponent's reply as well. The shortened history is
// replayed onto a fresh game built from the cached initial position; replay
// uses the unchecked move path, since every replayed move was validated
// when first played.
func (e *LocalEngine) Undo() error {
	e.mu.Lock()
	if e.gameOver {
		e.mu.Unlock()
		return fmt.Errorf("game is over")
	}
	if !e.myTurn {
		e.mu.Unlock()
		return fmt.Errorf("cannot undo while the opponent is thinking")
	}
	if !e.hist.Back() {
		e.mu.Unlock()
		return fmt.Errorf("nothing to undo")
	}
	e.rebuildLocked()
	if !e.myTurn && e.hist.Back() {
		e.rebuildLocked()
	}
	// If the opponent opened the game and its opening was undone, it is
	// to move again.
	opponentToMove := !e.myTurn
	e.mu.Unlock()

	e.log.Debug("undo", "depth", e.hist.Depth())
	if opponentToMove {
		go e.triggerOpponentMove()
	}
	return nil
}

// rebuildLocked reconstructs game and snapshot from the history cursor.
// Must be called while holding the lock.
func (e *LocalEngine) rebuildLocked() {
	size := e.cfg.BoardSize
	e.game = hex.NewGameFromBoard(e.cfg.FirstPlayer, size,
		make([]types.Color, size*size), e.initialRegions)

	bs := types.NewBoardState(size)
	bs.ToMove = e.cfg.FirstPlayer
	e.lastPlayerMove = -1
	e.lastOwnMove = -1
	for _, m := range e.hist.PathFromRoot() {
		e.game.MoveFast(m.Action)
		y, x := e.game.ActionToCoord(m.Action)
		bs.Board[m.Action] = m.Color
		bs.LastMove.X = x
		bs.LastMove.Y = y
		bs.MoveNumber++
		bs.ToMove = m.Color.Other()
		if m.Color == e.cfg.PlayerColor {
			e.lastPlayerMove = m.Action
		} else {
			e.lastOwnMove = m.Action
		}
	}
	e.boardState = bs
	e.myTurn = bs.ToMove == e.cfg.PlayerColor
}

// IsMyTurn returns true if it's the human player's turn.
func (e *LocalEngine) IsMyTurn() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.myTurn && !e.gameOver
}

// GetPlayerColor returns the human player's color.
func (e *LocalEngine) GetPlayerColor() types.Color {
	return e.cfg.PlayerColor
}

// OnMove registers a callback for when a move is played.
func (e *LocalEngine) OnMove(callback func(x, y int, color types.Color, boardState *types.BoardState)) {
	e.moveCallback = callback
}

// OnGameEnd registers a callback for when the game ends.
func (e *LocalEngine) OnGameEnd(callback func(outcome string)) {
	e.endCallback = callback
}

// Close shuts down the engine.
func (e *LocalEngine) Close() {
	e.mu.Lock()
	e.gameOver = true
	e.mu.Unlock()
	e.log.Debug("engine closed")
}
