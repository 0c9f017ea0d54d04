package player

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/markassa/gochess/board"
)

// reMove anchors the move syntax: a file/rank pair, a dash, a second
// file/rank pair, and an optional trailing promotion letter.
var reMove = regexp.MustCompile(`^([a-hA-H])([1-8])-([a-hA-H])([1-8])([qQnN])?$`)

var promotionByLetter = map[byte]board.Kind{
	'q': board.Queen,
	'n': board.Knight,
}

// Human reads "e2-e4"-style moves from a line-oriented stream,
// reprompting on a parse failure or an illegal move.
type Human struct {
	color     board.Color
	in        *bufio.Scanner
	out       io.Writer
	promotion board.Kind
}

// NewHuman builds a Human reading from in and writing prompts/errors
// to out.
func NewHuman(color board.Color, in io.Reader, out io.Writer) *Human {
	return &Human{color: color, in: bufio.NewScanner(in), out: out, promotion: board.Queen}
}

func (h *Human) Color() board.Color { return h.color }

// ChoosePromotion returns whichever promotion letter accompanied the
// most recently parsed move, defaulting to Queen.
func (h *Human) ChoosePromotion() board.Kind { return h.promotion }

// ChooseMove reads lines until it gets a move that is both
// syntactically valid and legal against b, or the stream says
// "resign" / is exhausted.
func (h *Human) ChooseMove(b *board.Board) (board.Loc, board.Loc, error) {
	for {
		fmt.Fprintf(h.out, "%s to move: ", h.color)
		if !h.in.Scan() {
			return 0, 0, ErrResign
		}
		line := strings.TrimSpace(h.in.Text())
		if strings.EqualFold(line, "resign") {
			return 0, 0, ErrResign
		}

		m := reMove.FindStringSubmatch(line)
		if m == nil {
			fmt.Fprintf(h.out, "could not parse %q, expected e2-e4\n", line)
			continue
		}

		from := parseSquare(m[1], m[2])
		to := parseSquare(m[3], m[4])
		h.promotion = board.Queen
		if len(m[5]) == 1 {
			if kind, ok := promotionByLetter[lower(m[5][0])]; ok {
				h.promotion = kind
			}
		}

		if !b.ValidateMove(h.color, from, to) {
			fmt.Fprintf(h.out, "%v: %s-%s\n", ErrIllegalMove, from, to)
			continue
		}
		return from, to, nil
	}
}

func parseSquare(file, rank string) board.Loc {
	f := int(lower(file[0]) - 'a')
	r := int(rank[0] - '1')
	return board.NewLoc(f, r)
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c - 'A' + 'a'
	}
	return c
}
