// Package engine defines the interface for Hex game engines.
package engine

import "termhex/types"

// PolicyInfo carries auxiliary context handed to an opponent policy.
type PolicyInfo struct {
	// LastPlayerMove is the flat action of the human player's most recent
	// move, or -1 before the player has moved.
	LastPlayerMove int

	// LastOwnMove is the flat action of the policy's own previous move,
	// or -1 on its first turn.
	LastOwnMove int
}

// Policy chooses a move for toMove on the given position. The returned
// action is a flat index in [0, Size*Size); row = action / Size,
// column = action % Size. The engine applies the normal move-validity
// check to the choice and nothing else.
type Policy func(board *types.BoardState, toMove types.Color, info PolicyInfo) (int, error)

// GameEngine defines the interface for playing Hex against an engine.
type GameEngine interface {
	// Connect initializes the game. Calling it again starts a rematch
	// with the same configuration.
	Connect() error

	// GetBoardState returns the current board state.
	GetBoardState() *types.BoardState

	// PlayMove plays a move at the given coordinates.
	// Returns an error if the move is illegal.
	PlayMove(x, y int) error

	// IsMyTurn returns true if it's the human player's turn.
	IsMyTurn() bool

	// GetPlayerColor returns the human player's color.
	GetPlayerColor() types.Color

	// OnMove registers a callback for when a move is played (by either
	// player). boardState is a copy and safe to retain.
	OnMove(func(x, y int, color types.Color, boardState *types.BoardState))

	// Undo rewinds the game to the start of the player's previous turn,
	// discarding the opponent's reply along with the player's last move.
	Undo() error

	// OnGameEnd registers a callback for when the game ends.
	OnGameEnd(func(outcome string))

	// Close shuts down the engine.
	Close()
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	BoardSize   int
	PlayerColor types.Color // color the human plays
	FirstPlayer types.Color // color that moves first; Empty means Black
	Opponent    Policy      // nil selects the built-in random policy
	Seed        int64       // opponent RNG seed; 0 derives one from the clock
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		BoardSize:   11,
		PlayerColor: types.Black,
		FirstPlayer: types.Black,
	}
}
