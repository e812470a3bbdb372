package parser

import "github.com/csga5000/HtmlDiffFormatter/symbol"

// PredicateBoundary starts a new symbol whenever pred(rune) flips value
// relative to the rune before it. The first character always continues
// the current (first) symbol, since there is no preceding rune to flip
// against.
func PredicateBoundary(s string, pred func(rune) bool) symbol.Sequence[Chunk] {
	runes := []rune(s)
	if len(runes) == 0 {
		return symbol.Sequence[Chunk]{symbol.New(Chunk(""))}
	}

	var seq symbol.Sequence[Chunk]
	start := 0
	state := pred(runes[0])
	for i := 1; i < len(runes); i++ {
		cur := pred(runes[i])
		if cur != state {
			seq = append(seq, symbol.New(Chunk(string(runes[start:i]))))
			start = i
			state = cur
		}
	}
	seq = append(seq, symbol.New(Chunk(string(runes[start:]))))
	return seq
}

// Word splits s by alternating runs of letter-or-digit characters and
// everything else.
func Word(s string) symbol.Sequence[Chunk] {
	return PredicateBoundary(s, isWordRune)
}
