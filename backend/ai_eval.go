package main

const evalInf = 1_000_000_000

// Positional weights before any disk reaches the outer ring of the field.
var openingWeights = [BoardSize][BoardSize]int{
	{30, -12, 0, -1, -1, 0, -12, 30},
	{-12, -15, -3, -3, -3, -3, -15, -12},
	{0, -3, 0, -1, -1, 0, -3, 0},
	{-1, -3, -1, -1, -1, -1, -3, -1},
	{-1, -3, -1, -1, -1, -1, -3, -1},
	{0, -3, 0, -1, -1, 0, -3, 0},
	{-12, -15, -3, -3, -3, -3, -15, -12},
	{30, -12, 0, -1, -1, 0, -12, 30},
}

var midgameWeights = [BoardSize][BoardSize]int{
	{120, -20, 20, 5, 5, 20, -20, 120},
	{-20, -40, -5, -5, -5, -5, -40, -20},
	{20, -5, 15, 3, 3, 15, -5, 20},
	{5, -5, 3, 3, 3, 3, -5, 5},
	{5, -5, 3, 3, 3, 3, -5, 5},
	{20, -5, 15, 3, 3, 15, -5, 20},
	{-20, -40, -5, -5, -5, -5, -40, -20},
	{120, -20, 20, 5, 5, 20, -20, 120},
}

// weightsFor picks the midgame table as soon as a disk touches the edge.
func weightsFor(board Board) *[BoardSize][BoardSize]int {
	if board.TouchesEdge() {
		return &midgameWeights
	}
	return &openingWeights
}

// EvaluateBoard scores board for optimizing: positive favours optimizing.
func EvaluateBoard(board Board, optimizing PlayerColor) int {
	weights := weightsFor(board)
	score := 0
	for row := 1; row <= BoardSize; row++ {
		for col := 1; col <= BoardSize; col++ {
			score += weights[row-1][col-1] * int(board.At(row, col))
		}
	}
	return score * int(optimizing)
}

// terminalScore is the sentinel assigned to a finished game.
func terminalScore(board Board, optimizing PlayerColor) int {
	own, opponent, _ := CountDisks(board, optimizing)
	switch ClassifyResult(own, opponent) {
	case ResultWin:
		return evalInf
	case ResultLose:
		return -evalInf
	default:
		return 0
	}
}
