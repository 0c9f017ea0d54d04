// Package eval implements the two position evaluators: a
// cheap material-sum evaluator and a phase-aware evaluator with
// per-phase positional terms. Both return an integer from the
// supplied color's point of view.
package eval

import "github.com/markassa/gochess/board"

// pieceWeight is a flat per-kind material table, the simplest
// possible material count.
var pieceWeight = map[board.Kind]int{
	board.King:   200,
	board.Queen:  9,
	board.Rook:   5,
	board.Bishop: 3,
	board.Knight: 3,
	board.Pawn:   1,
}

// material sums live-piece weight for us minus them.
func material(b *board.Board, us board.Color) int {
	score := 0
	for _, slot := range b.LiveSlots(us) {
		score += pieceWeight[b.SlotKind(slot)]
	}
	for _, slot := range b.LiveSlots(us.Other()) {
		score -= pieceWeight[b.SlotKind(slot)]
	}
	return score
}

// Fast is the cheap evaluator: material sum plus a castle-file
// incentive.
func Fast(b *board.Board, us board.Color) int {
	score := material(b, us)

	if b.Rights()&us.RightsMask() == 0 {
		kingLoc := ourKingLoc(b, us)
		if kingLoc.File() == 2 || kingLoc.File() == 6 {
			score += 2
		} else {
			score -= 2
		}
	}
	return score
}

func ourKingLoc(b *board.Board, us board.Color) board.Loc {
	for _, slot := range b.LiveSlots(us) {
		if b.SlotKind(slot) == board.King {
			return b.SlotLoc(slot)
		}
	}
	return board.NewLoc(4, 0)
}
