// Package search implements the depth-limited negamax-shaped
// alpha-beta tree: an alternation of "my turn" (maximizing)
// and "their turn" (minimizing) plies, terminal detection after
// each trial move (self-check via Board.InCheck, then whether the
// other side has any legal reply), and reservoir-sampled root move
// selection.
package search

import (
	"math/rand"

	"github.com/markassa/gochess/board"
)

// Constants outside the normal evaluator range.
const (
	Win   = 15000
	Loss  = -Win
	Stale = 14000

	// ignoreMax/ignoreMin are the "ignore" sentinel: a
	// return value outside the normal range used to communicate
	// "this trial move was illegal" up one level without affecting
	// alpha/beta, because it can never win a max or min comparison.
	ignoreMax = -1 << 30
	ignoreMin = 1 << 30
)

// lookAheadBonus is L(d) = floor(d/2). Terminal values found on our
// plies get +L(d) and those found on their plies get -L(d), so a
// deeper mate for us scores higher than a shallow one, and a deeper
// loss or stalemate against us scores lower than a shallow one.
func lookAheadBonus(d int) int { return d / 2 }

// EvalFunc evaluates a position from us's point of view.
type EvalFunc func(b *board.Board, us board.Color) int

// TerminalKind classifies how a root search concluded.
type TerminalKind int

const (
	NotTerminal TerminalKind = iota
	WinForUs
	LossForUs
	Stalemate
)

// Result is the outcome of a root Search call.
type Result struct {
	From, To board.Loc
	Value    int
	Terminal TerminalKind

	// NoMove is true only when the side to move had no legal move at
	// all before the root loop ran (checkmate already delivered, or
	// already stalemated): From/To are zero and there is nothing to
	// apply. A terminal result found by the root loop itself (e.g. the
	// move that delivers mate, or the move that stalemates the
	// opponent) still carries a real From/To and NoMove is false.
	NoMove bool
}

// Engine runs the search for one side over one shared Board.
type Engine struct {
	Board *board.Board
	Us    board.Color
	Depth int
	Eval  EvalFunc
	Log   Logger
	Stats Stats

	rng *rand.Rand
}

// NewEngine builds an Engine. depth is the already-clamped,
// already-phase-adjusted search depth. A nil log defaults to
// NulLogger, and a nil rng seeds its own source.
func NewEngine(b *board.Board, us board.Color, depth int, eval EvalFunc, log Logger, rng *rand.Rand) *Engine {
	if log == nil {
		log = NulLogger{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Engine{Board: b, Us: us, Depth: depth, Eval: eval, Log: log, rng: rng}
}

// alwaysQueen is the promotion chooser used for every trial-apply
// inside the tree; only the move actually committed by the referee
// asks the real Player.
type alwaysQueen struct{}

func (alwaysQueen) ChoosePromotion() board.Kind { return board.Queen }

var internalPromotion alwaysQueen

// hasLegalMove reports whether color has at least one move that does
// not leave color's own king in check.
func (e *Engine) hasLegalMove(color board.Color) bool {
	b := e.Board
	for _, slot := range b.LiveSlots(color) {
		from := b.SlotLoc(slot)
		for _, to := range b.GenerateMoves(color, from) {
			if !b.Apply(internalPromotion, color, from, to) {
				continue
			}
			illegal := b.LeavesOwnKingInCheck(color)
			b.Undo()
			if !illegal {
				return true
			}
		}
	}
	return false
}

// Search runs the root algorithm and returns the chosen move.
func (e *Engine) Search() Result {
	e.Log.BeginSearch()
	defer e.Log.EndSearch()

	b := e.Board
	if !e.hasLegalMove(e.Us) {
		if b.InCheck(e.Us) {
			return Result{Value: Loss, Terminal: LossForUs, NoMove: true}
		}
		return Result{Value: Stale, Terminal: Stalemate, NoMove: true}
	}

	const noValue = ignoreMax - 1
	best := noValue
	var bestFrom, bestTo board.Loc
	var bestTerminal TerminalKind
	seenAtBest := 0

	for _, slot := range b.LiveSlots(e.Us) {
		from := b.SlotLoc(slot)
		for _, to := range b.GenerateMoves(e.Us, from) {
			if !b.Apply(internalPromotion, e.Us, from, to) {
				continue
			}
			e.Stats.Nodes++

			var value int
			var terminal TerminalKind
			if b.LeavesOwnKingInCheck(e.Us) {
				value = ignoreMax
				e.Stats.Ignored++
			} else {
				them := e.Us.Other()
				if !e.hasLegalMove(them) {
					if b.InCheck(them) {
						value = Win + lookAheadBonus(1)
						terminal = WinForUs
					} else {
						value = -Stale + lookAheadBonus(1)
						terminal = Stalemate
					}
				} else {
					value = e.searchMin(1, best, ignoreMin)
				}
			}
			b.Undo()

			if value > best {
				best = value
				bestFrom, bestTo = from, to
				bestTerminal = terminal
				seenAtBest = 1
			} else if value == best {
				seenAtBest++
				if e.rng.Intn(seenAtBest) == 0 {
					bestFrom, bestTo = from, to
					bestTerminal = terminal
				}
			}
		}
	}

	e.Log.PrintRoot(e.Stats, best, bestFrom, bestTo)
	return Result{From: bestFrom, To: bestTo, Value: best, Terminal: bestTerminal}
}

// searchMax is a "my turn" node: the position reflects the opponent's
// last move (or the root), and e.Us chooses among its own moves.
func (e *Engine) searchMax(depth, alpha, beta int) int {
	b := e.Board
	if depth >= e.Depth {
		e.Stats.Leaves++
		return e.Eval(b, e.Us)
	}

	best := ignoreMax
	for _, slot := range b.LiveSlots(e.Us) {
		from := b.SlotLoc(slot)
		for _, to := range b.GenerateMoves(e.Us, from) {
			if !b.Apply(internalPromotion, e.Us, from, to) {
				continue
			}
			e.Stats.Nodes++

			var value int
			if b.LeavesOwnKingInCheck(e.Us) {
				value = ignoreMax
				e.Stats.Ignored++
			} else {
				them := e.Us.Other()
				if !e.hasLegalMove(them) {
					if b.InCheck(them) {
						value = Win + lookAheadBonus(depth+1)
					} else {
						value = -Stale + lookAheadBonus(depth+1)
					}
				} else {
					value = e.searchMin(depth+1, alpha, beta)
				}
			}
			b.Undo()

			if value > best {
				best = value
			}
			if value > alpha {
				alpha = value
			}
			if beta <= alpha {
				e.Stats.Pruned++
				return best
			}
		}
	}
	return best
}

// searchMin is a "their turn" node: e.Us's opponent chooses among its
// own moves to minimize e.Us's eventual value.
func (e *Engine) searchMin(depth, alpha, beta int) int {
	b := e.Board
	if depth >= e.Depth {
		e.Stats.Leaves++
		return e.Eval(b, e.Us)
	}

	them := e.Us.Other()
	worst := ignoreMin
	for _, slot := range b.LiveSlots(them) {
		from := b.SlotLoc(slot)
		for _, to := range b.GenerateMoves(them, from) {
			if !b.Apply(internalPromotion, them, from, to) {
				continue
			}
			e.Stats.Nodes++

			var value int
			if b.LeavesOwnKingInCheck(them) {
				value = ignoreMin
				e.Stats.Ignored++
			} else {
				if !e.hasLegalMove(e.Us) {
					if b.InCheck(e.Us) {
						value = Loss - lookAheadBonus(depth+1)
					} else {
						value = Stale - lookAheadBonus(depth+1)
					}
				} else {
					value = e.searchMax(depth+1, alpha, beta)
				}
			}
			b.Undo()

			if value < worst {
				worst = value
			}
			if value < beta {
				beta = value
			}
			if beta <= alpha {
				e.Stats.Pruned++
				return worst
			}
		}
	}
	return worst
}
