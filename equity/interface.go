package equity

import "github.com/domino14/shenzhen/game"

// Calculator scores a position. Higher is better; the solver treats WinScore
// as a solved board.
type Calculator interface {
	Equity(st *game.GameState) float64
}
