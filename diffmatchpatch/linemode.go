package diffmatchpatch

import (
	"context"
	"strings"
	"time"

	"github.com/csga5000/HtmlDiffFormatter/symbol"
)

// lineToken stands in for one "line" - a maximal run of symbols ending
// right after one whose text contains a newline - while diffLineMode
// diffs at that coarser grain. Its Text is a single synthetic rune
// encoding the line's index in the registry, so the generic bisection
// engine can run over lineToken sequences exactly as it would over any
// other symbol.Element.
type lineToken struct{ id int }

func (l lineToken) Text() string { return string(rune(l.id)) }

// lineRegistry assigns a stable integer id to each distinct line seen
// (lines are compared by their concatenated text) and remembers the
// original, fine-grained symbols each id stands for.
type lineRegistry[T symbol.Element] struct {
	ids   map[string]int
	lines []symbol.Sequence[T]
}

func newLineRegistry[T symbol.Element]() *lineRegistry[T] {
	r := &lineRegistry[T]{ids: map[string]int{}}
	r.lines = append(r.lines, nil) // id 0 reserved, mirrors the classic munge's empty sentinel
	return r
}

func (r *lineRegistry[T]) munge(groups []symbol.Sequence[T]) symbol.Sequence[lineToken] {
	seq := make(symbol.Sequence[lineToken], 0, len(groups))
	for _, g := range groups {
		key := g.Text()
		id, ok := r.ids[key]
		if !ok {
			id = len(r.lines)
			r.ids[key] = id
			r.lines = append(r.lines, g)
		}
		seq = append(seq, symbol.New(lineToken{id}))
	}
	return seq
}

func (r *lineRegistry[T]) expand(seq symbol.Sequence[lineToken]) symbol.Sequence[T] {
	var out symbol.Sequence[T]
	for _, tok := range seq {
		out = append(out, r.lines[tok.Payload.id]...)
	}
	return out
}

// groupByLineBreak splits seq into maximal runs, each ending right after
// a symbol whose text contains "\n". A Chunk sequence from the line
// parser is already one symbol per line, so this is a no-op there; over
// finer-grained sequences (e.g. runes) it reconstructs line boundaries
// from the raw text.
func groupByLineBreak[T symbol.Element](seq symbol.Sequence[T]) []symbol.Sequence[T] {
	var groups []symbol.Sequence[T]
	start := 0
	for i, s := range seq {
		if strings.ContainsRune(s.Text(), '\n') {
			groups = append(groups, seq[start:i+1])
			start = i + 1
		}
	}
	if start < len(seq) {
		groups = append(groups, seq[start:])
	}
	return groups
}

// diffLineMode speeds up diffing of two large sequences by first diffing
// at line granularity (where "line" is generalized to any symbol run
// ending in a newline), then re-diffing at full granularity each run of
// lines that was both deleted and inserted (a replaced block). Runs that
// are only inserted or only deleted are kept as whole lines.
func (dmp *DMP[T]) diffLineMode(ctx context.Context, a, b symbol.Sequence[T], deadline time.Time) []Diff[T] {
	registry := newLineRegistry[T]()
	ca := registry.munge(groupByLineBreak(a))
	cb := registry.munge(groupByLineBreak(b))

	coarse := New[lineToken]()
	coarse.DiffTimeout = dmp.DiffTimeout
	coarse.Logger = dmp.Logger
	coarseDiffs := coarse.diffMain(ctx, ca, cb, false, deadline)

	diffs := make([]Diff[T], 0, len(coarseDiffs))
	for _, cd := range coarseDiffs {
		diffs = append(diffs, Diff[T]{cd.Op, registry.expand(cd.Symbols)})
	}
	diffs = dmp.DiffCleanupSemantic(diffs)

	// Re-diff, at full granularity, each maximal run of delete+insert
	// produced by the coarse pass: the line-level bisection only promises
	// a correct script at line granularity, so a changed line still needs
	// a fine-grained pass to find the symbol-level edits within it.
	diffs = append(diffs, Diff[T]{OpEqual, nil})
	pointer := 0
	countDelete, countInsert := 0, 0
	var textDelete, textInsert symbol.Sequence[T]

	for pointer < len(diffs) {
		switch diffs[pointer].Op {
		case OpInsert:
			countInsert++
			textInsert = append(textInsert, diffs[pointer].Symbols...)
		case OpDelete:
			countDelete++
			textDelete = append(textDelete, diffs[pointer].Symbols...)
		case OpEqual:
			if countDelete >= 1 && countInsert >= 1 {
				sub := dmp.diffMain(ctx, textDelete, textInsert, false, deadline)
				diffs = spliceDiffs(diffs, pointer-countDelete-countInsert, countDelete+countInsert, sub...)
				pointer = pointer - countDelete - countInsert + len(sub)
			}
			countInsert, countDelete = 0, 0
			textDelete, textInsert = nil, nil
		}
		pointer++
	}
	if len(diffs) > 0 && diffs[len(diffs)-1].Op == OpEqual && len(diffs[len(diffs)-1].Symbols) == 0 {
		diffs = diffs[:len(diffs)-1]
	}
	return diffs
}
