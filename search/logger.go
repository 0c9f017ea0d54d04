package search

import "github.com/markassa/gochess/board"

// Stats is ambient search observability: node and leaf counts plus
// pruning/ignoring counters, trimmed down to what this engine tracks.
type Stats struct {
	Nodes   uint64
	Leaves  uint64
	Pruned  uint64
	Ignored uint64
}

// Logger receives search progress as the tree is walked, with a
// no-op default for callers that don't care.
type Logger interface {
	BeginSearch()
	EndSearch()
	PrintRoot(stats Stats, value int, from, to board.Loc)
}

// NulLogger discards everything.
type NulLogger struct{}

func (NulLogger) BeginSearch()                                          {}
func (NulLogger) EndSearch()                                            {}
func (NulLogger) PrintRoot(Stats, int, board.Loc, board.Loc)            {}
