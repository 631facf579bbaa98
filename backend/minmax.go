package main

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const DefaultMinmaxDepth = 5

// searchInf bounds every reachable score, terminal sentinels included.
const searchInf = evalInf + 1

type SearchStats struct {
	Start     time.Time
	Elapsed   time.Duration
	Nodes     int64
	TTProbes  int64
	TTHits    int64
	TTStores  int64
	Cutoffs   int64
	Terminals int64
	Passes    int64
}

// MinmaxStrategy is a depth-limited minimax search with alpha-beta pruning
// over the positional evaluation, memoised in a transposition cache that
// survives between games.
type MinmaxStrategy struct {
	depth    int
	cache    *TranspositionCache
	logStats bool
	stats    SearchStats
}

func NewMinmaxStrategy(depth int, cache *TranspositionCache) *MinmaxStrategy {
	if depth < 1 {
		depth = 1
	}
	if cache == nil {
		cache = NewTranspositionCache()
	}
	return &MinmaxStrategy{depth: depth, cache: cache}
}

func (m *MinmaxStrategy) Name() StrategyName { return StrategyMinmax }

func (m *MinmaxStrategy) Depth() int { return m.depth }

func (m *MinmaxStrategy) Cache() *TranspositionCache { return m.cache }

func (m *MinmaxStrategy) SetDepth(depth int) {
	if depth < 1 {
		depth = 1
	}
	m.depth = depth
}

func (m *MinmaxStrategy) LastStats() SearchStats { return m.stats }

func (m *MinmaxStrategy) SelectMove(board Board, side PlayerColor, moves ReversibleMap, _ *rand.Rand) Move {
	_, move := m.Search(board, side, m.depth)
	if m.logStats {
		logSearchStats(m.stats, m.depth, m.cache)
	}
	if moves.Contains(move) {
		return move
	}
	// A cache written by another build can disagree with the live move map.
	fmt.Printf("[ai:minmax] cached move %s is not legal, falling back\n", move)
	return moves.Candidates()[0]
}

// Search runs minimax from board with side both moving and optimizing. At
// depth 0 it returns the static evaluation and NoMove.
func (m *MinmaxStrategy) Search(board Board, side PlayerColor, depth int) (int, Move) {
	m.stats = SearchStats{Start: time.Now()}
	eval, move := m.search(board, side, side, depth, searchInf)
	m.stats.Elapsed = time.Since(m.stats.Start)
	return eval, move
}

// search returns the value of board for optimizing. bound is the best value
// the parent already holds: a maximizing node stops once it reaches bound, a
// minimizing node once it falls to bound.
func (m *MinmaxStrategy) search(board Board, optimizing, toMove PlayerColor, depth, bound int) (int, Move) {
	m.stats.Nodes++
	key := ttKey(optimizing, toMove, depth)
	boardKey := board.Encode()
	maximizing := toMove == optimizing

	m.stats.TTProbes++
	if entry, ok := m.cache.Probe(key, boardKey); ok && entryUsable(entry, maximizing, bound) {
		m.stats.TTHits++
		return entry.Eval, entry.Move
	}

	if depth == 0 {
		eval := EvaluateBoard(board, optimizing)
		m.store(key, boardKey, TTEntry{Eval: eval, Move: NoMove, Flag: TTExact})
		return eval, NoMove
	}

	moves := ReversibleMoves(board, toMove)
	if len(moves) == 0 {
		m.stats.Passes++
		opponent := otherPlayer(toMove)
		var eval int
		if len(ReversibleMoves(board, opponent)) == 0 {
			m.stats.Terminals++
			eval = terminalScore(board, optimizing)
		} else {
			eval, _ = m.search(board, optimizing, opponent, depth-1, unbounded(optimizing, opponent))
		}
		m.store(key, boardKey, TTEntry{Eval: eval, Move: NoMove, Flag: TTExact})
		return eval, NoMove
	}

	best := searchInf
	if maximizing {
		best = -searchInf
	}
	bestMove := NoMove
	flag := TTExact
	opponent := otherPlayer(toMove)
	for _, candidate := range moves.Candidates() {
		next, err := ApplyMove(board, toMove, candidate, moves)
		if err != nil {
			continue
		}
		var eval int
		if gameEndsAfter(next) {
			m.stats.Terminals++
			eval = terminalScore(next, optimizing)
		} else {
			eval, _ = m.search(next, optimizing, opponent, depth-1, best)
		}
		if bestMove == NoMove || (maximizing && eval > best) || (!maximizing && eval < best) {
			best = eval
			bestMove = candidate
		}
		if maximizing && best >= bound {
			flag = TTLower
			m.stats.Cutoffs++
			break
		}
		if !maximizing && best <= bound {
			flag = TTUpper
			m.stats.Cutoffs++
			break
		}
	}
	m.store(key, boardKey, TTEntry{Eval: best, Move: bestMove, Flag: flag})
	return best, bestMove
}

func (m *MinmaxStrategy) store(key, boardKey string, entry TTEntry) {
	m.stats.TTStores++
	m.cache.Store(key, boardKey, entry)
}

// entryUsable accepts exact entries, and bounds only when they already prove
// the cutoff the current node would take.
func entryUsable(entry TTEntry, maximizing bool, bound int) bool {
	switch entry.Flag {
	case TTExact:
		return true
	case TTLower:
		return maximizing && entry.Eval >= bound
	case TTUpper:
		return !maximizing && entry.Eval <= bound
	default:
		return false
	}
}

func unbounded(optimizing, toMove PlayerColor) int {
	if toMove == optimizing {
		return searchInf
	}
	return -searchInf
}

// gameEndsAfter reports whether board is finished: full, or no move for either side.
func gameEndsAfter(board Board) bool {
	if board.CountEmpty() == 0 {
		return true
	}
	return len(ReversibleMoves(board, PlayerBlack)) == 0 && len(ReversibleMoves(board, PlayerWhite)) == 0
}

func logSearchStats(stats SearchStats, depth int, cache *TranspositionCache) {
	elapsed := stats.Elapsed
	nps := 0.0
	if elapsed > 0 {
		nps = float64(stats.Nodes) / elapsed.Seconds()
	}
	hitRate := 0.0
	if stats.TTProbes > 0 {
		hitRate = float64(stats.TTHits) * 100.0 / float64(stats.TTProbes)
	}
	fmt.Printf("[ai:minmax] t=%dms depth=%d nodes=%d nps=%.0f tt_size=%d tt_probe=%d tt_hit=%d tt_hit_rate=%.1f%% tt_store=%d cutoffs=%d terminals=%d passes=%d\n",
		elapsed.Milliseconds(),
		depth,
		stats.Nodes,
		nps,
		cache.Count(),
		stats.TTProbes,
		stats.TTHits,
		hitRate,
		stats.TTStores,
		stats.Cutoffs,
		stats.Terminals,
		stats.Passes,
	)
}
