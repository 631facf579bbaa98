package main

import "math/rand/v2"

// Strategy picks a move for side among the keys of moves. Callers guarantee
// moves is non-empty; implementations must not mutate board or moves.
type Strategy interface {
	Name() StrategyName
	SelectMove(board Board, side PlayerColor, moves ReversibleMap, rng *rand.Rand) Move
}

func pickRandom(candidates []Move, rng *rand.Rand) Move {
	return candidates[rng.IntN(len(candidates))]
}
