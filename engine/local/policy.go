package local

import (
	"errors"
	"math/rand"

	"termhex/engine"
	"termhex/types"
)

// RandomPolicy returns a Policy that picks uniformly among the empty cells,
// scanned in row-major order. The seed fixes the opponent's choices, so a
// game against it is reproducible.
func RandomPolicy(seed int64) engine.Policy {
	rng := rand.New(rand.NewSource(seed))
	return func(board *types.BoardState, toMove types.Color, info engine.PolicyInfo) (int, error) {
		actions := make([]int, 0, len(board.Board))
		for i, c := range board.Board {
			if c == types.Empty {
				actions = append(actions, i)
			}
		}
		if len(actions) == 0 {
			return 0, errors.New("no legal moves")
		}
		return actions[rng.Intn(len(actions))], nil
	}
}
