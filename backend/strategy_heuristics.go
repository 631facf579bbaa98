package main

import "math/rand/v2"

var orthogonal = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

type RandomStrategy struct{}

func (RandomStrategy) Name() StrategyName { return StrategyRandom }

func (RandomStrategy) SelectMove(_ Board, _ PlayerColor, moves ReversibleMap, rng *rand.Rand) Move {
	return pickRandom(moves.Candidates(), rng)
}

// CaptureCountStrategy plays the move flipping the most (maximize) or the
// fewest disks, choosing uniformly among ties.
type CaptureCountStrategy struct {
	maximize bool
}

func (s CaptureCountStrategy) Name() StrategyName {
	if s.maximize {
		return StrategyMaximize
	}
	return StrategyMinimize
}

func (s CaptureCountStrategy) SelectMove(_ Board, _ PlayerColor, moves ReversibleMap, rng *rand.Rand) Move {
	return pickBest(moves.Candidates(), rng, func(move Move) int {
		if s.maximize {
			return len(moves[move])
		}
		return -len(moves[move])
	})
}

// OpennessStrategy minimises the number of distinct empty cells orthogonally
// adjacent to the disks a move flips.
type OpennessStrategy struct{}

func (OpennessStrategy) Name() StrategyName { return StrategyOpenness }

func (OpennessStrategy) SelectMove(board Board, _ PlayerColor, moves ReversibleMap, rng *rand.Rand) Move {
	return pickBest(moves.Candidates(), rng, func(move Move) int {
		return -openness(board, moves[move])
	})
}

func openness(board Board, captures []Move) int {
	seen := make(map[Move]struct{})
	for _, captured := range captures {
		for _, d := range orthogonal {
			neighbor := Move{Row: captured.Row + d[0], Col: captured.Col + d[1]}
			if board.IsEmpty(neighbor.Row, neighbor.Col) {
				seen[neighbor] = struct{}{}
			}
		}
	}
	return len(seen)
}

// EvennessStrategy prefers moves into an empty region of odd size.
type EvennessStrategy struct{}

func (EvennessStrategy) Name() StrategyName { return StrategyEvenness }

func (EvennessStrategy) SelectMove(board Board, _ PlayerColor, moves ReversibleMap, rng *rand.Rand) Move {
	candidates := moves.Candidates()
	odd := make([]Move, 0, len(candidates))
	for _, candidate := range candidates {
		if emptyRegionSize(board, candidate)%2 == 1 {
			odd = append(odd, candidate)
		}
	}
	if len(odd) > 0 {
		return pickRandom(odd, rng)
	}
	return pickRandom(candidates, rng)
}

// emptyRegionSize flood-fills 4-directionally through empty cells from start,
// counting start itself.
func emptyRegionSize(board Board, start Move) int {
	visited := map[Move]struct{}{start: {}}
	stack := []Move{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range orthogonal {
			next := Move{Row: cur.Row + d[0], Col: cur.Col + d[1]}
			if _, ok := visited[next]; ok || !board.IsEmpty(next.Row, next.Col) {
				continue
			}
			visited[next] = struct{}{}
			stack = append(stack, next)
		}
	}
	return len(visited)
}

func pickBest(candidates []Move, rng *rand.Rand, score func(Move) int) Move {
	var best []Move
	bestScore := 0
	for i, candidate := range candidates {
		s := score(candidate)
		switch {
		case i == 0 || s > bestScore:
			bestScore = s
			best = append(best[:0], candidate)
		case s == bestScore:
			best = append(best, candidate)
		}
	}
	return pickRandom(best, rng)
}
