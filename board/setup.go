package board

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Cells is the 8x8 character board: uppercase is Black,
// lowercase is White, '.' is empty. Cells[file][rank] matches the
// grid's own [file][rank] indexing. In YAML it marshals as 8 strings
// of 8 characters each (files a-h left to right, rank 8 down to rank
// 1 top to bottom, matching a chess diagram) instead of raw bytes, so
// a hand-authored options file can use ordinary piece letters.
type Cells [8][8]byte

var kindBySymbol = map[byte]Kind{
	'k': King, 'q': Queen, 'r': Rook, 'b': Bishop, 'n': Knight, 'p': Pawn,
}

// MarshalYAML renders Cells as 8 rank rows, rank 8 first.
func (c Cells) MarshalYAML() (interface{}, error) {
	rows := make([]string, 8)
	for i := 0; i < 8; i++ {
		rank := 7 - i
		row := make([]byte, 8)
		for f := 0; f < 8; f++ {
			row[f] = c[f][rank]
		}
		rows[i] = string(row)
	}
	return rows, nil
}

// UnmarshalYAML parses the 8 rank rows produced by MarshalYAML.
func (c *Cells) UnmarshalYAML(value *yaml.Node) error {
	var rows []string
	if err := value.Decode(&rows); err != nil {
		return err
	}
	if len(rows) != 8 {
		return fmt.Errorf("board: cells must have 8 rank rows, got %d", len(rows))
	}
	for i, row := range rows {
		if len(row) != 8 {
			return fmt.Errorf("board: rank row %d must be 8 characters, got %d", i, len(row))
		}
		rank := 7 - i
		for f := 0; f < 8; f++ {
			c[f][rank] = row[f]
		}
	}
	return nil
}

// StandardCells returns the standard initial position.
func StandardCells() Cells {
	var c Cells
	for f := 0; f < 8; f++ {
		for r := 0; r < 8; r++ {
			c[f][r] = '.'
		}
	}
	backRank := []byte{'r', 'n', 'b', 'q', 'k', 'b', 'n', 'r'}
	for f := 0; f < 8; f++ {
		c[f][0] = backRank[f]
		c[f][1] = 'p'
		c[f][6] = 'P'
		c[f][7] = toUpperSymbol(backRank[f])
	}
	return c
}

func toUpperSymbol(b byte) byte {
	return b - 'a' + 'A'
}

// NewStandardBoard builds the default initial position, White to
// move, full castling rights.
func NewStandardBoard() (*Board, error) {
	return Setup(StandardCells(), White)
}

type placement struct {
	color Color
	kind  Kind
	loc   Loc
}

// Setup builds a Board's roster and grid from cells. It fails
// with ErrInvalidPosition if the grid would violate a core position invariant.
func Setup(cells Cells, sideToMove Color) (*Board, error) {
	var byColor [2][]placement
	for f := 0; f < 8; f++ {
		for r := 0; r < 8; r++ {
			ch := cells[f][r]
			if ch == '.' || ch == 0 {
				continue
			}
			lower := ch
			color := White
			if ch >= 'A' && ch <= 'Z' {
				color = Black
				lower = ch - 'A' + 'a'
			}
			kind, ok := kindBySymbol[lower]
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece symbol %q", ErrInvalidPosition, ch)
			}
			if kind == Pawn && (r == 0 || r == 7) {
				return nil, fmt.Errorf("%w: pawn on back rank", ErrInvalidPosition)
			}
			byColor[color] = append(byColor[color], placement{color, kind, NewLoc(f, r)})
		}
	}

	b := &Board{sideToMove: sideToMove, rights: AllRights}
	for f := 0; f < 8; f++ {
		for r := 0; r < 8; r++ {
			b.grid[f][r] = emptySlot
		}
	}

	for _, color := range [2]Color{White, Black} {
		if err := b.placeSide(color, byColor[color]); err != nil {
			return nil, err
		}
	}

	if b.InCheck(sideToMove.Other()) {
		return nil, fmt.Errorf("%w: side not to move is in check", ErrInvalidPosition)
	}
	return b, nil
}

// placeSide assigns pieces into color's fixed slots. Kings, rooks
// (up to 2), bishops (up to 2), knights (up to 2) and one queen take
// their canonical slots; pawns fill the pawn slots in order, and any
// extra non-pawn piece (e.g. a second queen from an already-promoted
// pawn) takes a pawn slot left over after them, overwriting its kind
// exactly as an in-game promotion would.
func (b *Board) placeSide(color Color, pieces []placement) error {
	base := slotBase(color)
	var kings, queens, rooks, bishops, knights, pawns []placement
	for _, p := range pieces {
		switch p.kind {
		case King:
			kings = append(kings, p)
		case Queen:
			queens = append(queens, p)
		case Rook:
			rooks = append(rooks, p)
		case Bishop:
			bishops = append(bishops, p)
		case Knight:
			knights = append(knights, p)
		case Pawn:
			pawns = append(pawns, p)
		}
	}
	if len(kings) != 1 {
		return fmt.Errorf("%w: %s must have exactly one king", ErrInvalidPosition, color)
	}

	var overflow []placement
	place := func(slot int, p placement) {
		b.roster[slot] = rosterEntry{Square: NewSquare(color, p.loc.File(), p.loc.Rank()), Kind: p.kind}
		b.grid[p.loc.File()][p.loc.Rank()] = int8(slot)
		b.initialFile[slot] = int8(p.loc.File())
	}

	place(base+slotKing, kings[0])

	if len(queens) > 0 {
		place(base+slotQueen, queens[0])
		overflow = append(overflow, queens[1:]...)
	}
	rookSlots := []int{base + slotRook0, base + slotRook1}
	for i, p := range rooks {
		if i < len(rookSlots) {
			place(rookSlots[i], p)
		} else {
			overflow = append(overflow, p)
		}
	}
	bishopSlots := []int{base + slotBishop0, base + slotBishop1}
	for i, p := range bishops {
		if i < len(bishopSlots) {
			place(bishopSlots[i], p)
		} else {
			overflow = append(overflow, p)
		}
	}
	knightSlots := []int{base + slotKnight0, base + slotKnight1}
	for i, p := range knights {
		if i < len(knightSlots) {
			place(knightSlots[i], p)
		} else {
			overflow = append(overflow, p)
		}
	}

	pawnSlot := base + slotPawn0
	for _, p := range pawns {
		if pawnSlot >= base+slotPawnN {
			return fmt.Errorf("%w: %s has too many pawns", ErrInvalidPosition, color)
		}
		place(pawnSlot, p)
		pawnSlot++
	}
	for _, p := range overflow {
		if pawnSlot >= base+slotPawnN {
			return fmt.Errorf("%w: %s has too many pieces", ErrInvalidPosition, color)
		}
		place(pawnSlot, p)
		pawnSlot++
	}

	for s := pawnSlot; s < base+slotPawnN; s++ {
		b.roster[s] = rosterEntry{Square: Empty, Kind: Pawn}
	}
	return nil
}

// Verify re-checks the invariants that must hold outside a
// half-applied move: one king per color, at most 16 live pieces per
// color, no pawns on the back ranks, and grid/roster consistency. Not
// on the apply/undo hot path; available to callers (and tests) that
// want to assert consistency after a batch of moves.
func (b *Board) Verify() error {
	for _, color := range [2]Color{White, Black} {
		kings := 0
		live := 0
		for s := slotBase(color); s < slotBase(color)+slotsPerSide; s++ {
			e := b.roster[s]
			if !e.Square.Alive() {
				continue
			}
			live++
			if e.Kind == King {
				kings++
			}
			if e.Kind == Pawn && (e.Square.Rank() == 0 || e.Square.Rank() == 7) {
				return fmt.Errorf("%w: pawn on back rank", ErrInternalInvariantViolation)
			}
			if got, present := b.SlotAt(e.Square.File(), e.Square.Rank()); !present || got != s {
				return fmt.Errorf("%w: grid/roster mismatch at %s", ErrInternalInvariantViolation, e.Square)
			}
		}
		if kings != 1 {
			return fmt.Errorf("%w: %s has %d kings", ErrInternalInvariantViolation, color, kings)
		}
		if live > 16 {
			return fmt.Errorf("%w: %s has %d live pieces", ErrInternalInvariantViolation, color, live)
		}
	}
	for f := 0; f < 8; f++ {
		for r := 0; r < 8; r++ {
			s := b.grid[f][r]
			if s == emptySlot {
				continue
			}
			e := b.roster[s]
			if !e.Square.Alive() || e.Square.File() != f || e.Square.Rank() != r {
				return fmt.Errorf("%w: grid cell (%d,%d) points to stale slot %d", ErrInternalInvariantViolation, f, r, s)
			}
		}
	}
	return nil
}
