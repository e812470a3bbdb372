// Package diffmatchpatch implements the Myers O(ND) diff algorithm, a Bitap
// fuzzy locator, and context-bearing patches over generic symbol
// sequences. It generalizes the classic Google diff-match-patch library
// (ported to Go by sergi/go-diff, the library this package is grounded on)
// from strings to any symbol.Sequence[T].
package diffmatchpatch

import (
	"log/slog"
	"time"

	"github.com/csga5000/HtmlDiffFormatter/symbol"
)

// Op tags a Diff as a deletion, insertion, or untouched span.
type Op int8

const (
	OpDelete Op = -1
	OpEqual  Op = 0
	OpInsert Op = 1
)

func (op Op) String() string {
	switch op {
	case OpDelete:
		return "DELETE"
	case OpInsert:
		return "INSERT"
	case OpEqual:
		return "EQUAL"
	default:
		return "UNKNOWN"
	}
}

// DMP holds the configuration for diff, match, and patch operations over
// symbol sequences of payload type T. A *DMP[T] value is owned by one
// caller at a time: its configuration fields are read-only during an
// operation, but nothing stops separate *DMP[T] values, or the same value
// between non-overlapping calls, being used from different goroutines.
type DMP[T symbol.Element] struct {
	// DiffTimeout bounds diff_main's wall-clock budget. Zero or negative
	// disables the deadline entirely.
	DiffTimeout time.Duration
	// DiffEditCost is the cost, in symbols, of an empty edit operation;
	// used by DiffCleanupEfficiency.
	DiffEditCost int
	// MatchThreshold is the score ceiling above which MatchBitap reports
	// no match (0.0 = perfection, 1.0 = very loose).
	MatchThreshold float64
	// MatchDistance controls how heavily match_bitap penalizes a match
	// far from the expected location.
	MatchDistance int
	// PatchDeleteThreshold bounds how different a located region may be
	// from a patch's original content before PatchApply gives up on it.
	PatchDeleteThreshold float64
	// PatchMargin is the number of equal symbols of rolling context kept
	// on each side of a patch.
	PatchMargin int
	// MatchMaxBits bounds the pattern length MatchBitap's bit-parallel
	// state can represent.
	MatchMaxBits int

	// Logger receives Debug/Warn diagnostics (deadline overruns, patches
	// that fail to apply). Defaults to slog.Default() when nil.
	Logger *slog.Logger
}

// New returns a *DMP[T] with the library's default configuration:
// DiffTimeout 1s, DiffEditCost 4, MatchThreshold 0.5, MatchDistance 1000,
// PatchDeleteThreshold 0.5, PatchMargin 4, MatchMaxBits 32.
func New[T symbol.Element]() *DMP[T] {
	return &DMP[T]{
		DiffTimeout:          time.Second,
		DiffEditCost:         4,
		MatchThreshold:       0.5,
		MatchDistance:        1000,
		PatchDeleteThreshold: 0.5,
		PatchMargin:          4,
		MatchMaxBits:         32,
	}
}

func (dmp *DMP[T]) logger() *slog.Logger {
	if dmp.Logger != nil {
		return dmp.Logger
	}
	return slog.Default()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
