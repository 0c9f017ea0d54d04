package eval

import "github.com/markassa/gochess/board"

// Phase is the opening/middle/endgame label computed once per root
// search call. The detector's home-rank counting criteria can
// misclassify positions that did not arise from a standard initial
// setup; this is kept as-is rather than "fixed" to a cleaner
// piece-count phase function.
type Phase int

const (
	Opening Phase = iota
	Middle
	Endgame
)

// DetectPhase runs the phase detector: opening while at
// least 7 of the 14 non-pawn back-rank pieces are still on their
// side's home rank and at least 9 of the 16 pawns are still on their
// home rank; endgame when fewer than 7 pieces are live in total
// (the counter literally sums over all 32 slots, not just Black's —
// an intentional quirk preserved deliberately, not a Black-specific rule
// despite the name); middle otherwise.
func DetectPhase(b *board.Board) Phase {
	backRank := 0
	homeRank := 0
	totalLive := 0
	for _, color := range [2]board.Color{board.White, board.Black} {
		kingHome, pawnHome := 0, 1
		if color == board.Black {
			kingHome, pawnHome = 7, 6
		}
		for _, slot := range b.LiveSlots(color) {
			totalLive++
			loc := b.SlotLoc(slot)
			k := b.SlotKind(slot)
			if k != board.Pawn && k != board.King && loc.Rank() == kingHome {
				backRank++
			}
			if k == board.Pawn && loc.Rank() == pawnHome {
				homeRank++
			}
		}
	}
	if backRank > 6 && homeRank >= 9 {
		return Opening
	}
	if totalLive < 7 {
		return Endgame
	}
	return Middle
}

// EndgameDepthBonus is added to the search depth once endgame is
// detected.
const EndgameDepthBonus = 2

// centerSquares are the literal rank-major destination-square
// encodings (d4,e4,d5,e5) the centre-attack term keys on, carried
// over verbatim: these constants are part of the contract.
var centerSquares = map[int]bool{27: true, 28: true, 35: true, 36: true}

func rankMajorIndex(loc board.Loc) int { return loc.Rank()*8 + loc.File() }

// Term weights, named individually so each can be tuned on its own.
const (
	centerAttackWeight       = 1
	minorDevWeight           = 1
	castleBonusWeight        = 2
	kingShelterWeight        = 2
	rookOpenFileWeight       = 2
	passedPawnWeight         = 3
	pawnAggressionWeight     = 1
	kingCentralizationWeight = 1
)

// shelterSquares gives the literal 3-pawn-wedge board-index constants
// per color and castled wing.
func shelterSquares(color board.Color, kingsideCastled bool) [3]int {
	rank := 1
	if color == board.Black {
		rank = 6
	}
	files := [3]int{0, 1, 2}
	if kingsideCastled {
		files = [3]int{5, 6, 7}
	}
	var out [3]int
	for i, f := range files {
		out[i] = rank*8 + f
	}
	return out
}

// Full is the phase-aware evaluator.
func Full(b *board.Board, us board.Color, phase Phase) int {
	switch phase {
	case Opening:
		return material(b, us) +
			centerAttack(b, us) +
			minorDevelopment(b, us) +
			castleBonus(b, us) +
			kingShelter(b, us)
	case Middle:
		return material(b, us) +
			kingShelter(b, us) +
			rookOpenFile(b, us) +
			passedPawns(b, us) +
			pawnAggression(b, us)
	default: // Endgame
		return material(b, us) + kingCentralization(b, us)
	}
}

func centerAttack(b *board.Board, us board.Color) int {
	count := 0
	for _, slot := range b.LiveSlots(us) {
		for _, to := range b.GenerateMoves(us, b.SlotLoc(slot)) {
			if centerSquares[rankMajorIndex(to)] {
				count++
			}
		}
	}
	return count * centerAttackWeight
}

func minorDevelopment(b *board.Board, us board.Color) int {
	count := 0
	for _, slot := range b.LiveSlots(us) {
		k := b.SlotKind(slot)
		if k != board.Knight && k != board.Bishop {
			continue
		}
		if b.SlotLoc(slot).File() != b.SlotInitialFile(slot) {
			count++
		}
	}
	return count * minorDevWeight
}

func castleBonus(b *board.Board, us board.Color) int {
	if b.Rights()&us.RightsMask() != 0 {
		return 0
	}
	kingLoc := ourKingLoc(b, us)
	if kingLoc.File() == 2 || kingLoc.File() == 6 {
		return castleBonusWeight
	}
	return -castleBonusWeight
}

func kingShelter(b *board.Board, us board.Color) int {
	kingLoc := ourKingLoc(b, us)
	kingside := kingLoc.File() == 6
	if kingLoc.File() != 2 && !kingside {
		return 0
	}
	wedge := shelterSquares(us, kingside)
	matches := 0
	for _, slot := range b.LiveSlots(us) {
		if b.SlotKind(slot) != board.Pawn {
			continue
		}
		idx := rankMajorIndex(b.SlotLoc(slot))
		for _, w := range wedge {
			if idx == w {
				matches++
			}
		}
	}
	if matches == len(wedge) {
		return kingShelterWeight
	}
	return 0
}

func rookOpenFile(b *board.Board, us board.Color) int {
	score := 0
	for _, slot := range b.LiveSlots(us) {
		if b.SlotKind(slot) != board.Rook {
			continue
		}
		file := b.SlotLoc(slot).File()
		if fileHasNoPawns(b, file) {
			score += rookOpenFileWeight
		}
	}
	return score
}

func fileHasNoPawns(b *board.Board, file int) bool {
	for _, color := range [2]board.Color{board.White, board.Black} {
		for _, slot := range b.LiveSlots(color) {
			if b.SlotKind(slot) == board.Pawn && b.SlotLoc(slot).File() == file {
				return false
			}
		}
	}
	return true
}

func passedPawns(b *board.Board, us board.Color) int {
	score := 0
	them := us.Other()
	for _, slot := range b.LiveSlots(us) {
		if b.SlotKind(slot) != board.Pawn {
			continue
		}
		loc := b.SlotLoc(slot)
		if isPassed(b, them, loc, us) {
			score += passedPawnWeight
		}
	}
	return score
}

func isPassed(b *board.Board, them board.Color, loc board.Loc, us board.Color) bool {
	dir := 1
	if us == board.Black {
		dir = -1
	}
	for _, slot := range b.LiveSlots(them) {
		if b.SlotKind(slot) != board.Pawn {
			continue
		}
		oloc := b.SlotLoc(slot)
		if abs(oloc.File()-loc.File()) > 1 {
			continue
		}
		if dir > 0 && oloc.Rank() > loc.Rank() {
			return false
		}
		if dir < 0 && oloc.Rank() < loc.Rank() {
			return false
		}
	}
	return true
}

func pawnAggression(b *board.Board, us board.Color) int {
	count := 0
	for _, slot := range b.LiveSlots(us) {
		if b.SlotKind(slot) != board.Pawn {
			continue
		}
		r := b.SlotLoc(slot).Rank()
		if us == board.White && r >= 4 {
			count++
		}
		if us == board.Black && r <= 3 {
			count++
		}
	}
	return count * pawnAggressionWeight
}

func kingCentralization(b *board.Board, us board.Color) int {
	loc := ourKingLoc(b, us)
	dFile := min(loc.File(), 7-loc.File())
	dRank := min(loc.Rank(), 7-loc.Rank())
	return (dFile + dRank) * kingCentralizationWeight
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
