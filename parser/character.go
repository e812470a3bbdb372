package parser

import "github.com/csga5000/HtmlDiffFormatter/symbol"

// Character parses s into one symbol per Unicode code point.
func Character(s string) symbol.Sequence[Rune] {
	runes := []rune(s)
	seq := make(symbol.Sequence[Rune], len(runes))
	for i, r := range runes {
		seq[i] = symbol.New(Rune(r))
	}
	return seq
}
