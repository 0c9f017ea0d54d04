package player

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/markassa/gochess/board"
)

func TestHumanParsesAndValidatesMove(t *testing.T) {
	b, err := board.NewStandardBoard()
	require.NoError(t, err)

	in := strings.NewReader("e2-e4\n")
	var out bytes.Buffer
	h := NewHuman(board.White, in, &out)

	from, to, err := h.ChooseMove(b)
	require.NoError(t, err)
	require.Equal(t, board.NewLoc(4, 1), from)
	require.Equal(t, board.NewLoc(4, 3), to)
}

func TestHumanRepromptsOnIllegalMoveThenAccepts(t *testing.T) {
	b, err := board.NewStandardBoard()
	require.NoError(t, err)

	in := strings.NewReader("e2-e5\ne2-e4\n")
	var out bytes.Buffer
	h := NewHuman(board.White, in, &out)

	from, to, err := h.ChooseMove(b)
	require.NoError(t, err)
	require.Equal(t, board.NewLoc(4, 1), from)
	require.Equal(t, board.NewLoc(4, 3), to)
	require.Contains(t, out.String(), ErrIllegalMove.Error())
}

func TestHumanRepromptsOnUnparsableInputThenAccepts(t *testing.T) {
	b, err := board.NewStandardBoard()
	require.NoError(t, err)

	in := strings.NewReader("nonsense\ne2-e4\n")
	var out bytes.Buffer
	h := NewHuman(board.White, in, &out)

	from, to, err := h.ChooseMove(b)
	require.NoError(t, err)
	require.Equal(t, board.NewLoc(4, 1), from)
	require.Equal(t, board.NewLoc(4, 3), to)
}

func TestHumanResignKeyword(t *testing.T) {
	b, err := board.NewStandardBoard()
	require.NoError(t, err)

	in := strings.NewReader("resign\n")
	var out bytes.Buffer
	h := NewHuman(board.White, in, &out)

	_, _, err = h.ChooseMove(b)
	require.ErrorIs(t, err, ErrResign)
}

func TestHumanPromotionLetter(t *testing.T) {
	var cells board.Cells
	for f := 0; f < 8; f++ {
		for r := 0; r < 8; r++ {
			cells[f][r] = '.'
		}
	}
	cells[0][0] = 'k'
	cells[7][7] = 'K' // h8 black king, clear of the b7 pawn's attacks
	cells[1][6] = 'p' // b7 white pawn

	b, err := board.Setup(cells, board.White)
	require.NoError(t, err)

	in := strings.NewReader("b7-b8n\n")
	var out bytes.Buffer
	h := NewHuman(board.White, in, &out)

	from, to, err := h.ChooseMove(b)
	require.NoError(t, err)
	require.Equal(t, board.NewLoc(1, 6), from)
	require.Equal(t, board.NewLoc(1, 7), to)
	require.Equal(t, board.Knight, h.ChoosePromotion())
}

func TestComputerFindsMateAndSetsStatus(t *testing.T) {
	var cells board.Cells
	for f := 0; f < 8; f++ {
		for r := 0; r < 8; r++ {
			cells[f][r] = '.'
		}
	}
	cells[0][5] = 'k' // a6 white king
	cells[7][0] = 'r' // h1 white rook
	cells[0][7] = 'K' // a8 black king
	b, err := board.Setup(cells, board.White)
	require.NoError(t, err)

	c := NewComputer(board.White, 2, true, rand.New(rand.NewSource(1)), nil)
	from, to, err := c.ChooseMove(b)
	require.NoError(t, err)
	require.Equal(t, "Computer wins!", b.Status)
	require.Equal(t, board.NewLoc(7, 0), from, "rook must move from h1")
	require.Equal(t, board.NewLoc(7, 7), to, "rook must land on h8, delivering mate")
}

func TestComputerResignsWhenAlreadyCheckmated(t *testing.T) {
	// White king a8 is already mated: rook h8 checks along rank 8,
	// rook b7 (defended by the black king on a6) covers a7/b7, rook
	// h8 covers b8 too. White has no piece but the king and no move.
	var cells board.Cells
	for f := 0; f < 8; f++ {
		for r := 0; r < 8; r++ {
			cells[f][r] = '.'
		}
	}
	cells[0][7] = 'k' // a8 white king, already mated
	cells[7][7] = 'r' // h8 black rook checks along rank 8
	cells[1][6] = 'r' // b7 black rook seals off a7/b7/b8
	cells[0][5] = 'K' // a6 black king defends b7
	b, err := board.Setup(cells, board.White)
	require.NoError(t, err)

	c := NewComputer(board.White, 2, true, rand.New(rand.NewSource(1)), nil)
	from, to, err := c.ChooseMove(b)
	require.ErrorIs(t, err, ErrResign)
	require.Equal(t, "Human wins!", b.Status)
	require.Equal(t, board.Loc(0), from)
	require.Equal(t, board.Loc(0), to)
}
