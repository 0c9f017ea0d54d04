package player

import (
	"math/rand"

	"github.com/markassa/gochess/board"
	"github.com/markassa/gochess/eval"
	"github.com/markassa/gochess/search"
)

// Computer drives search.Engine to pick a move. It always answers
// ChoosePromotion with Queen: promotion kind only matters for a
// human's own pawns, and the engine's internal search trial-applies
// assume Queen too, so a real Computer move and the tree that chose
// it never disagree about what its own promoted pawns become.
type Computer struct {
	color      board.Color
	depth      int
	simpleEval bool
	rng        *rand.Rand
	log        search.Logger
}

// NewComputer builds a Computer. depth is the Options-clamped search
// depth before any endgame bump; simpleEval selects Fast over Full.
func NewComputer(color board.Color, depth int, simpleEval bool, rng *rand.Rand, log search.Logger) *Computer {
	return &Computer{color: color, depth: depth, simpleEval: simpleEval, rng: rng, log: log}
}

func (c *Computer) Color() board.Color { return c.color }

func (c *Computer) ChoosePromotion() board.Kind { return board.Queen }

// ChooseMove runs the search. When the root value is terminal it
// also sets the Board's game-over status string; it only reports
// ErrResign (with no move) when the engine had no legal move to
// start with (res.NoMove) — a terminal result the root loop reached
// by playing an actual move (mating the opponent, or stalemating
// them) is still returned so the referee can apply and print it.
func (c *Computer) ChooseMove(b *board.Board) (board.Loc, board.Loc, error) {
	depth := c.depth
	evalFn := eval.Fast
	if !c.simpleEval {
		phase := eval.DetectPhase(b)
		if phase == eval.Endgame {
			depth += eval.EndgameDepthBonus
		}
		evalFn = func(b *board.Board, us board.Color) int { return eval.Full(b, us, phase) }
	}

	engine := search.NewEngine(b, c.color, depth, evalFn, c.log, c.rng)
	res := engine.Search()

	switch res.Terminal {
	case search.WinForUs:
		b.Status = "Computer wins!"
	case search.LossForUs:
		b.Status = "Human wins!"
	case search.Stalemate:
		b.Status = "Stalemate"
	}
	if res.NoMove {
		return 0, 0, ErrResign
	}
	return res.From, res.To, nil
}
