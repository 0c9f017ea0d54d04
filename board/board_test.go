package board

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// cmpSnapshot is the go-cmp equivalent of snapshot equality, used for
// the round-trip property tests; AllowUnexported is needed since
// snapshot and roster both carry unexported fields.
func cmpSnapshot(t *testing.T, before, after snapshot) {
	t.Helper()
	if diff := cmp.Diff(before, after, cmp.AllowUnexported(snapshot{}, rosterEntry{})); diff != "" {
		t.Fatalf("board state not restored by Undo (-before +after):\n%s", diff)
	}
}

type fixedPromotion struct{ kind Kind }

func (f fixedPromotion) ChoosePromotion() Kind { return f.kind }

var queenPromotion = fixedPromotion{Queen}

// snapshot captures everything Undo is responsible for restoring,
// skipping the apply/undo stack itself (whose slice header differs
// between "never touched" and "pushed then popped" even when the
// stack is logically empty both times).
type snapshot struct {
	sideToMove   Color
	rights       Rights
	hasEnPassant bool
	enPassant    Loc
	roster       roster
	grid         [8][8]int8
	initialFile  [numSlots]int8
	status       string
}

func snapshotOf(b *Board) snapshot {
	return snapshot{
		sideToMove:   b.sideToMove,
		rights:       b.rights,
		hasEnPassant: b.hasEnPassant,
		enPassant:    b.enPassant,
		roster:       b.roster,
		grid:         b.grid,
		initialFile:  b.initialFile,
		status:       b.Status,
	}
}

func TestNewStandardBoardSetup(t *testing.T) {
	b, err := NewStandardBoard()
	require.NoError(t, err)
	require.NoError(t, b.Verify())
	require.Equal(t, White, b.SideToMove())
	require.Equal(t, AllRights, b.Rights())
	require.Len(t, b.LiveSlots(White), 16)
	require.Len(t, b.LiveSlots(Black), 16)
}

func TestApplyUndoRoundTrip(t *testing.T) {
	b, err := NewStandardBoard()
	require.NoError(t, err)

	before := snapshotOf(b)
	ok := b.Apply(queenPromotion, White, NewLoc(4, 1), NewLoc(4, 3)) // e2-e4
	require.True(t, ok)
	require.NoError(t, b.Verify())
	require.Equal(t, Black, b.SideToMove())

	require.NoError(t, b.Undo())
	cmpSnapshot(t, before, snapshotOf(b))
}

func TestApplyRejectsIllegalMove(t *testing.T) {
	b, err := NewStandardBoard()
	require.NoError(t, err)
	ok := b.Apply(queenPromotion, White, NewLoc(4, 1), NewLoc(4, 4)) // e2-e5, too far
	require.False(t, ok)
}

func TestEnPassantCapture(t *testing.T) {
	cells := StandardCells()
	b, err := Setup(cells, White)
	require.NoError(t, err)

	require.True(t, b.Apply(queenPromotion, White, NewLoc(4, 1), NewLoc(4, 3)))  // e2-e4
	require.True(t, b.Apply(queenPromotion, Black, NewLoc(0, 6), NewLoc(0, 5)))  // a7-a6 (waiting move)
	require.True(t, b.Apply(queenPromotion, White, NewLoc(4, 3), NewLoc(4, 4)))  // e4-e5
	require.True(t, b.Apply(queenPromotion, Black, NewLoc(3, 6), NewLoc(3, 4)))  // d7-d5, sets en passant target d6

	target, has := b.EnPassant()
	require.True(t, has)
	require.Equal(t, NewLoc(3, 5), target) // d6

	before := snapshotOf(b)
	ok := b.Apply(queenPromotion, White, NewLoc(4, 4), NewLoc(3, 5)) // exd6 en passant
	require.True(t, ok)
	require.NoError(t, b.Verify())

	_, stillThere := b.SlotAt(3, 4)
	require.False(t, stillThere, "captured black pawn must be removed from d5")

	require.NoError(t, b.Undo())
	cmpSnapshot(t, before, snapshotOf(b))
}

func TestPromotion(t *testing.T) {
	var cells Cells
	for f := 0; f < 8; f++ {
		for r := 0; r < 8; r++ {
			cells[f][r] = '.'
		}
	}
	cells[0][0] = 'k'
	cells[7][7] = 'K' // black king on h8, clear of the b7 pawn's attacks
	cells[1][6] = 'p' // white pawn on b7

	b, err := Setup(cells, White)
	require.NoError(t, err)

	ok := b.Apply(fixedPromotion{Queen}, White, NewLoc(1, 6), NewLoc(1, 7))
	require.True(t, ok)
	slot, present := b.SlotAt(1, 7)
	require.True(t, present)
	require.Equal(t, Queen, b.SlotKind(slot))

	require.NoError(t, b.Undo())
	slot, present = b.SlotAt(1, 6)
	require.True(t, present)
	require.Equal(t, Pawn, b.SlotKind(slot))
}

func TestCastlingRightsRoundTrip(t *testing.T) {
	var cells Cells
	for f := 0; f < 8; f++ {
		for r := 0; r < 8; r++ {
			cells[f][r] = '.'
		}
	}
	cells[4][0] = 'k'
	cells[0][0] = 'r'
	cells[7][0] = 'r'
	cells[4][7] = 'K'
	cells[0][7] = 'R'
	cells[7][7] = 'R'

	b, err := Setup(cells, White)
	require.NoError(t, err)
	require.Equal(t, AllRights, b.Rights())

	before := snapshotOf(b)
	ok := b.Apply(queenPromotion, White, NewLoc(4, 0), NewLoc(6, 0)) // O-O
	require.True(t, ok)
	require.False(t, b.Rights().Has(WhiteOO))
	require.False(t, b.Rights().Has(WhiteOOO))
	require.True(t, b.Rights().Has(BlackOO))
	require.True(t, b.Rights().Has(BlackOOO))

	rookSlot, present := b.SlotAt(5, 0)
	require.True(t, present)
	require.Equal(t, Rook, b.SlotKind(rookSlot))

	require.NoError(t, b.Undo())
	cmpSnapshot(t, before, snapshotOf(b))
}

func TestCastlingBlockedWhileInCheck(t *testing.T) {
	var cells Cells
	for f := 0; f < 8; f++ {
		for r := 0; r < 8; r++ {
			cells[f][r] = '.'
		}
	}
	cells[4][0] = 'k'
	cells[7][0] = 'r'
	cells[4][7] = 'K'
	cells[4][5] = 'R' // rook on e6 checks white king on e1

	b, err := Setup(cells, White)
	require.NoError(t, err)
	require.True(t, b.InCheck(White))
	require.False(t, b.ValidateMove(White, NewLoc(4, 0), NewLoc(6, 0)))
}

func TestGeneratorSoundnessAndCompleteness(t *testing.T) {
	b, err := NewStandardBoard()
	require.NoError(t, err)

	for _, color := range [2]Color{White, Black} {
		for _, slot := range b.LiveSlots(color) {
			from := b.SlotLoc(slot)
			generated := b.GenerateMoves(color, from)
			for f := 0; f < 8; f++ {
				for r := 0; r < 8; r++ {
					to := NewLoc(f, r)
					want := containsLoc(generated, to)
					got := b.ValidateMove(color, from, to)
					require.Equal(t, want, got, "from=%s to=%s", from, to)
				}
			}
		}
	}
}

func TestInCheckSymmetry(t *testing.T) {
	var cells Cells
	for f := 0; f < 8; f++ {
		for r := 0; r < 8; r++ {
			cells[f][r] = '.'
		}
	}
	cells[4][0] = 'k'
	cells[4][7] = 'K'
	cells[0][3] = 'r' // a4 white rook, off both kings' rank/file

	b, err := Setup(cells, White)
	require.NoError(t, err)
	require.False(t, b.InCheck(White))
	require.False(t, b.InCheck(Black))
}
