// Package board implements the packed-byte board representation,
// piece roster, move generation and apply/undo of the engine core.
package board

const emptySlot int8 = -128

// Board owns all position state: the 32-slot roster, the 8x8 grid of
// slot indices, castling rights, the en-passant target, and the
// apply/undo stack.
type Board struct {
	roster roster
	grid   [8][8]int8

	sideToMove Color
	rights     Rights

	hasEnPassant bool
	enPassant    Loc

	stack []undoRecord

	// initialFile records, per slot, the file it started the game on.
	// Frozen at Setup; used by the full evaluator's "off home file"
	// minor-piece development term, which is meaningful
	// relative to wherever this particular game actually started a
	// piece, not a hard-coded standard-setup assumption.
	initialFile [numSlots]int8

	// Status is a human-readable game-over string ("Computer wins!",
	// "Human wins!", "Stalemate") set by the search once it
	// determines the root value is terminal. Empty while
	// the game is ongoing.
	Status string
}

// undoRecord carries everything needed to invert one apply.
type undoRecord struct {
	movedSlot       int8
	movedPrevSquare Square

	capturedSlot       int8 // emptySlot if no capture
	capturedPrevSquare Square

	isCastle       bool
	rookSlot       int8
	rookPrevSquare Square

	promoted         bool
	promotedPrevKind Kind

	prevRights       Rights
	prevHasEnPassant bool
	prevEnPassant    Loc

	prevStatus string
}

// SideToMove returns the color on move.
func (b *Board) SideToMove() Color { return b.sideToMove }

// Rights returns the current castling-rights byte.
func (b *Board) Rights() Rights { return b.rights }

// EnPassant returns the current en-passant target and whether one is
// set.
func (b *Board) EnPassant() (Loc, bool) { return b.enPassant, b.hasEnPassant }

// kingLoc returns the location of color's (always-exactly-one) king.
func (b *Board) kingLoc(color Color) Loc {
	return locOf(b.roster[slotBase(color)+slotKing].Square)
}

// InCheck reports whether color's king is attacked by a live piece of
// the opposite color.
func (b *Board) InCheck(color Color) bool {
	return b.attackedBy(color.Other(), b.kingLoc(color))
}

// LiveSlots returns, in fixed slot order, the slots of color that
// currently hold a live piece. Root move selection iterates pieces in
// this order.
func (b *Board) LiveSlots(color Color) []int {
	lo := slotBase(color)
	out := make([]int, 0, slotsPerSide)
	for s := lo; s < lo+slotsPerSide; s++ {
		if b.roster[s].Square.Alive() {
			out = append(out, s)
		}
	}
	return out
}

// SlotAt returns the slot index at (file, rank), or false if empty.
func (b *Board) SlotAt(file, rank int) (int, bool) {
	s := b.grid[file][rank]
	if s == emptySlot {
		return 0, false
	}
	return int(s), true
}

// SlotKind returns the current kind of slot.
func (b *Board) SlotKind(slot int) Kind { return b.roster[slot].Kind }

// SlotLoc returns the current location of slot; only meaningful if
// the slot is alive.
func (b *Board) SlotLoc(slot int) Loc { return locOf(b.roster[slot].Square) }

// SlotAlive reports whether slot currently holds a live piece.
func (b *Board) SlotAlive(slot int) bool { return b.roster[slot].Square.Alive() }

// SlotInitialFile returns the file slot started this game on.
func (b *Board) SlotInitialFile(slot int) int { return int(b.initialFile[slot]) }

// ValidateMove answers whether moving the piece mover owns from
// fromLoc to toLoc is geometrically/occupancy legal, ignoring
// self-check.
func (b *Board) ValidateMove(mover Color, from, to Loc) bool {
	slot, present := b.SlotAt(from.File(), from.Rank())
	if !present || slotColor(slot) != mover {
		return false
	}
	return b.pieceValidate(b.roster[slot].Kind, mover, from, to)
}

// GenerateMoves enumerates legal (ignoring self-check) destinations
// for the piece at from, which must belong to mover.
func (b *Board) GenerateMoves(mover Color, from Loc) []Loc {
	slot, present := b.SlotAt(from.File(), from.Rank())
	if !present || slotColor(slot) != mover {
		return nil
	}
	return b.pieceGenerate(b.roster[slot].Kind, mover, from)
}

// ChoosePromotion is implemented by a mover (Player) asked which kind
// a pawn reaching the last rank should become.
type ChoosePromotion interface {
	ChoosePromotion() Kind
}

// Apply performs the move if ValidateMove passes, pushing an undo
// record; it does the rook hop for castling, sets/consumes the
// en-passant target, and asks mover for a promotion kind when a pawn
// reaches the last rank. Returns false without side effects if the
// move is illegal.
func (b *Board) Apply(mover ChoosePromotion, color Color, from, to Loc) bool {
	if !b.ValidateMove(color, from, to) {
		return false
	}

	slot, _ := b.SlotAt(from.File(), from.Rank())
	rec := undoRecord{
		movedSlot:        int8(slot),
		movedPrevSquare:  b.roster[slot].Square,
		capturedSlot:     emptySlot,
		prevRights:       b.rights,
		prevHasEnPassant: b.hasEnPassant,
		prevEnPassant:    b.enPassant,
		prevStatus:       b.Status,
	}

	kind := b.roster[slot].Kind
	isDoubleStep := kind == Pawn && abs(to.Rank()-from.Rank()) == 2
	isEnPassantCapture := kind == Pawn && from.File() != to.File() && b.hasEnPassant && to == b.enPassant
	isCastle := kind == King && abs(to.File()-from.File()) == 2

	if isEnPassantCapture {
		capturedRank := from.Rank()
		capturedFile := to.File()
		capSlot, _ := b.SlotAt(capturedFile, capturedRank)
		rec.capturedSlot = int8(capSlot)
		rec.capturedPrevSquare = b.roster[capSlot].Square
		b.removeFromGrid(b.roster[capSlot].Square)
		b.roster[capSlot].Square = Empty
	} else if capSlot, present := b.SlotAt(to.File(), to.Rank()); present {
		rec.capturedSlot = int8(capSlot)
		rec.capturedPrevSquare = b.roster[capSlot].Square
		b.roster[capSlot].Square = Empty
	}

	b.relocate(slot, to)

	if isCastle {
		rec.isCastle = true
		homeRank := from.Rank()
		rookFromFile, rookToFile := 0, 3
		if to.File() == 6 {
			rookFromFile, rookToFile = 7, 5
		}
		rookSlot, _ := b.SlotAt(rookFromFile, homeRank)
		rec.rookSlot = int8(rookSlot)
		rec.rookPrevSquare = b.roster[rookSlot].Square
		b.relocate(rookSlot, NewLoc(rookToFile, homeRank))
	}

	b.clearRightsOn(color, kind, from)
	if rec.capturedSlot != emptySlot {
		b.clearRightsOnCapture(rec.capturedSlot, rec.capturedPrevSquare)
	}

	b.hasEnPassant = false
	if isDoubleStep {
		b.hasEnPassant = true
		b.enPassant = NewLoc(from.File(), (from.Rank()+to.Rank())/2)
	}

	lastRank := 7
	if color == Black {
		lastRank = 0
	}
	if kind == Pawn && to.Rank() == lastRank {
		rec.promoted = true
		rec.promotedPrevKind = Pawn
		newKind := mover.ChoosePromotion()
		if newKind != Queen && newKind != Knight {
			newKind = Queen
		}
		b.roster[slot].Kind = newKind
	}

	b.sideToMove = color.Other()
	b.stack = append(b.stack, rec)
	return true
}

// Undo pops the last undo record and exactly reverses it.
func (b *Board) Undo() error {
	if len(b.stack) == 0 {
		return ErrInternalInvariantViolation
	}
	rec := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]

	if rec.promoted {
		b.roster[rec.movedSlot].Kind = rec.promotedPrevKind
	}
	if rec.isCastle {
		b.removeFromGrid(b.roster[rec.rookSlot].Square)
		b.roster[rec.rookSlot].Square = rec.rookPrevSquare
		b.grid[rec.rookPrevSquare.File()][rec.rookPrevSquare.Rank()] = rec.rookSlot
	}

	b.removeFromGrid(b.roster[rec.movedSlot].Square)
	b.roster[rec.movedSlot].Square = rec.movedPrevSquare
	b.grid[rec.movedPrevSquare.File()][rec.movedPrevSquare.Rank()] = rec.movedSlot

	if rec.capturedSlot != emptySlot {
		b.roster[rec.capturedSlot].Square = rec.capturedPrevSquare
		b.grid[rec.capturedPrevSquare.File()][rec.capturedPrevSquare.Rank()] = rec.capturedSlot
	}

	b.rights = rec.prevRights
	b.hasEnPassant = rec.prevHasEnPassant
	b.enPassant = rec.prevEnPassant
	b.Status = rec.prevStatus
	b.sideToMove = b.sideToMove.Other()
	return nil
}

// LeavesOwnKingInCheck reports, after Apply, whether mover's own king
// is attacked; callers undo if true.
func (b *Board) LeavesOwnKingInCheck(mover Color) bool {
	return b.InCheck(mover)
}

func (b *Board) relocate(slot int, to Loc) {
	b.removeFromGrid(b.roster[slot].Square)
	color := slotColor(slot)
	b.roster[slot].Square = NewSquare(color, to.File(), to.Rank())
	b.grid[to.File()][to.Rank()] = int8(slot)
}

func (b *Board) removeFromGrid(s Square) {
	if !s.Alive() {
		return
	}
	b.grid[s.File()][s.Rank()] = emptySlot
}

func (b *Board) clearRightsOn(color Color, kind Kind, from Loc) {
	homeRank := 0
	if color == Black {
		homeRank = 7
	}
	if from.Rank() != homeRank {
		return
	}
	ooBit, oooBit := WhiteOO, WhiteOOO
	if color == Black {
		ooBit, oooBit = BlackOO, BlackOOO
	}
	switch {
	case kind == King:
		b.rights = b.rights.Clear(ooBit | oooBit)
	case kind == Rook && from.File() == 7:
		b.rights = b.rights.Clear(ooBit)
	case kind == Rook && from.File() == 0:
		b.rights = b.rights.Clear(oooBit)
	}
}

func (b *Board) clearRightsOnCapture(slot int8, sq Square) {
	if b.roster[slot].Kind != Rook {
		return
	}
	color := slotColor(int(slot))
	homeRank := 0
	if color == Black {
		homeRank = 7
	}
	if sq.Rank() != homeRank {
		return
	}
	ooBit, oooBit := WhiteOO, WhiteOOO
	if color == Black {
		ooBit, oooBit = BlackOO, BlackOOO
	}
	switch sq.File() {
	case 7:
		b.rights = b.rights.Clear(ooBit)
	case 0:
		b.rights = b.rights.Clear(oooBit)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
