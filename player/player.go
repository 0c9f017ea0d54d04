// Package player implements the two Player producers: a Human
// reading algebraic-pair moves from a line-oriented stream, and a
// Computer driving search.Engine. Both share the single Player
// contract the referee (gochess/) alternates between.
package player

import (
	"errors"

	"github.com/markassa/gochess/board"
)

// ErrResign is returned by ChooseMove when a player has no move to
// offer (Human typed a resignation, or — in practice — a Computer
// facing a terminal position upstream of search).
var ErrResign = errors.New("player: resign")

// ErrIllegalMove is the recoverable illegal-move kind: the
// Human Player's read loop reprompts on this, it is never fatal.
var ErrIllegalMove = errors.New("player: illegal move")

// Player is the single contract both Human and Computer implement:
// choose a move, report color, and choose a promotion kind when a
// pawn reaches the last rank.
type Player interface {
	Color() board.Color
	ChooseMove(b *board.Board) (from, to board.Loc, err error)
	board.ChoosePromotion
}
