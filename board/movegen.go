package board

// Per-piece move generation. Sliders ray-walk until blocked;
// leapers test a fixed offset table; pawns handle push/double-
// push/capture/en-passant/promotion-as-single-move. validate is
// implemented as set membership against generate, which is what
// makes the generator's soundness and completeness hold by
// construction.

var (
	diagonalDirs   = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	orthogonalDirs = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	knightOffsets  = [8][2]int{
		{-2, -1}, {-2, 1}, {2, -1}, {2, 1},
		{-1, -2}, {-1, 2}, {1, -2}, {1, 2},
	}
	kingOffsets = [8][2]int{
		{-1, -1}, {-1, 0}, {-1, 1}, {0, -1},
		{0, 1}, {1, -1}, {1, 0}, {1, 1},
	}
)

// slotAt returns the slot index occupying (file, rank), or emptySlot.
func (b *Board) slotAt(file, rank int) int8 {
	return b.grid[file][rank]
}

// occupant reports whether (file, rank) holds a live piece and, if
// so, which color it belongs to.
func (b *Board) occupant(file, rank int) (Color, bool) {
	s := b.slotAt(file, rank)
	if s == emptySlot {
		return White, false
	}
	return slotColor(int(s)), true
}

func (b *Board) sliderGenerate(color Color, from Loc, dirs [4][2]int) []Loc {
	var out []Loc
	f0, r0 := from.File(), from.Rank()
	for _, d := range dirs {
		f, r := f0+d[0], r0+d[1]
		for onBoard(f, r) {
			occ, present := b.occupant(f, r)
			if !present {
				out = append(out, NewLoc(f, r))
				f, r = f+d[0], r+d[1]
				continue
			}
			if occ != color {
				out = append(out, NewLoc(f, r))
			}
			break
		}
	}
	return out
}

func (b *Board) leaperGenerate(color Color, from Loc, offsets [8][2]int) []Loc {
	var out []Loc
	f0, r0 := from.File(), from.Rank()
	for _, d := range offsets {
		f, r := f0+d[0], r0+d[1]
		if !onBoard(f, r) {
			continue
		}
		if occ, present := b.occupant(f, r); !present || occ != color {
			out = append(out, NewLoc(f, r))
		}
	}
	return out
}

// kingLeaps is the king's one-step move set, excluding castling. Used
// both as half of kingGenerate and, on its own, for check detection
// (attacks), so that castleDestinations' own inCheck call can never
// recurse back into castling.
func (b *Board) kingLeaps(color Color, from Loc) []Loc {
	return b.leaperGenerate(color, from, kingOffsets)
}

func (b *Board) kingGenerate(color Color, from Loc) []Loc {
	out := b.kingLeaps(color, from)
	return append(out, b.castleDestinations(color, from)...)
}

func (b *Board) pawnGenerate(color Color, from Loc) []Loc {
	var out []Loc
	dir, homeRank := 1, 1
	if color == Black {
		dir, homeRank = -1, 6
	}
	f0, r0 := from.File(), from.Rank()

	r1 := r0 + dir
	oneClear := false
	if onBoard(f0, r1) {
		if _, present := b.occupant(f0, r1); !present {
			out = append(out, NewLoc(f0, r1))
			oneClear = true
		}
	}
	if oneClear && r0 == homeRank {
		r2 := r0 + 2*dir
		if _, present := b.occupant(f0, r2); !present {
			out = append(out, NewLoc(f0, r2))
		}
	}
	for _, df := range [2]int{-1, 1} {
		f, r := f0+df, r0+dir
		if !onBoard(f, r) {
			continue
		}
		to := NewLoc(f, r)
		if occ, present := b.occupant(f, r); present && occ != color {
			out = append(out, to)
			continue
		}
		if b.hasEnPassant && to == b.enPassant {
			out = append(out, to)
		}
	}
	return out
}

// pieceGenerate dispatches to the generator for kind.
func (b *Board) pieceGenerate(kind Kind, color Color, from Loc) []Loc {
	switch kind {
	case Bishop:
		return b.sliderGenerate(color, from, diagonalDirs)
	case Rook:
		return b.sliderGenerate(color, from, orthogonalDirs)
	case Queen:
		out := b.sliderGenerate(color, from, diagonalDirs)
		return append(out, b.sliderGenerate(color, from, orthogonalDirs)...)
	case Knight:
		return b.leaperGenerate(color, from, knightOffsets)
	case King:
		return b.kingGenerate(color, from)
	case Pawn:
		return b.pawnGenerate(color, from)
	}
	return nil
}

func containsLoc(locs []Loc, to Loc) bool {
	for _, l := range locs {
		if l == to {
			return true
		}
	}
	return false
}

// pieceValidate answers whether to is among kind's generated
// destinations from from; see the package doc comment above.
func (b *Board) pieceValidate(kind Kind, color Color, from, to Loc) bool {
	return containsLoc(b.pieceGenerate(kind, color, from), to)
}

// attacks reports whether the piece of kind/color on from attacks
// to, for check detection. King attacks never include castling (a
// castling move cannot give check and would otherwise recurse into
// inCheck through castleDestinations). Pawns attack only their two
// forward diagonals, whether or not the target square is occupied.
func (b *Board) attacks(kind Kind, color Color, from, to Loc) bool {
	if kind == King {
		return containsLoc(b.kingLeaps(color, from), to)
	}
	if kind == Pawn {
		dir := 1
		if color == Black {
			dir = -1
		}
		return abs(to.File()-from.File()) == 1 && to.Rank()-from.Rank() == dir
	}
	return b.pieceValidate(kind, color, from, to)
}

// attackedBy reports whether any live piece of color attacker
// attacks sq.
func (b *Board) attackedBy(attacker Color, sq Loc) bool {
	lo := slotBase(attacker)
	for slot := lo; slot < lo+slotsPerSide; slot++ {
		e := b.roster[slot]
		if !e.Square.Alive() {
			continue
		}
		if b.attacks(e.Kind, attacker, locOf(e.Square), sq) {
			return true
		}
	}
	return false
}

// castleDestinations returns the king's legal castling landing
// squares: rights bit still set, path empty, king not
// currently in check, and the king does not transit or land on an
// attacked square.
func (b *Board) castleDestinations(color Color, from Loc) []Loc {
	homeRank := 0
	if color == Black {
		homeRank = 7
	}
	if from.Rank() != homeRank || from.File() != 4 {
		return nil
	}
	if b.attackedBy(color.Other(), from) {
		return nil
	}

	ooBit, oooBit := WhiteOO, WhiteOOO
	if color == Black {
		ooBit, oooBit = BlackOO, BlackOOO
	}

	var out []Loc
	opp := color.Other()
	if b.rights.Has(ooBit) &&
		b.filesEmpty(homeRank, 5, 6) &&
		b.rookAt(color, 7, homeRank) &&
		!b.attackedBy(opp, NewLoc(5, homeRank)) &&
		!b.attackedBy(opp, NewLoc(6, homeRank)) {
		out = append(out, NewLoc(6, homeRank))
	}
	if b.rights.Has(oooBit) &&
		b.filesEmpty(homeRank, 1, 3) &&
		b.rookAt(color, 0, homeRank) &&
		!b.attackedBy(opp, NewLoc(3, homeRank)) &&
		!b.attackedBy(opp, NewLoc(2, homeRank)) {
		out = append(out, NewLoc(2, homeRank))
	}
	return out
}

func (b *Board) filesEmpty(rank, fileLo, fileHi int) bool {
	for f := fileLo; f <= fileHi; f++ {
		if _, present := b.occupant(f, rank); present {
			return false
		}
	}
	return true
}

func (b *Board) rookAt(color Color, file, rank int) bool {
	s := b.slotAt(file, rank)
	if s == emptySlot {
		return false
	}
	return slotColor(int(s)) == color && b.roster[s].Kind == Rook
}
