package main

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// renderBoard draws an 8x8 status board (1 black, -1 white, 0 empty) on a
// green felt when the terminal supports colour.
func renderBoard(out *termenv.Output, board [][]int) string {
	felt := out.Color("#1b5e20")
	black := out.Color("#000000")
	white := out.Color("#ffffff")
	grid := out.Color("#a5d6a7")

	var sb strings.Builder
	sb.WriteString("   a b c d e f g h\n")
	for r, row := range board {
		fmt.Fprintf(&sb, "%2d ", r+1)
		for _, cell := range row {
			var glyph termenv.Style
			switch cell {
			case 1:
				glyph = out.String("X").Foreground(black).Bold()
			case -1:
				glyph = out.String("O").Foreground(white).Bold()
			default:
				glyph = out.String(".").Foreground(grid)
			}
			sb.WriteString(glyph.Background(felt).String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderSummary(out *termenv.Output, player, cpu string, tally Tally) string {
	header := out.String(fmt.Sprintf("%s vs %s", player, cpu)).Bold().Underline()
	wins := out.String(fmt.Sprintf("wins %d", tally.Wins)).Foreground(out.Color("2"))
	losses := out.String(fmt.Sprintf("losses %d", tally.Losses)).Foreground(out.Color("1"))
	draws := out.String(fmt.Sprintf("draws %d", tally.Draws)).Foreground(out.Color("3"))
	average := 0.0
	if tally.Played > 0 {
		average = float64(tally.Disks) / float64(tally.Played)
	}
	return fmt.Sprintf("%s\n%d games: %s, %s, %s (avg %.1f disks)",
		header.String(), tally.Played, wins.String(), losses.String(), draws.String(), average)
}
