package parser

import (
	"strings"

	"github.com/csga5000/HtmlDiffFormatter/symbol"
)

// Delimited splits s on any rune in delims. Like Line, each symbol carries
// its terminating delimiter (except the last symbol), so concatenating
// every symbol's text reproduces s exactly.
func Delimited(s string, delims string) symbol.Sequence[Chunk] {
	var seq symbol.Sequence[Chunk]
	start := 0
	for i, r := range s {
		if strings.ContainsRune(delims, r) {
			end := i + len(string(r))
			seq = append(seq, symbol.New(Chunk(s[start:end])))
			start = end
		}
	}
	seq = append(seq, symbol.New(Chunk(s[start:])))
	return seq
}
