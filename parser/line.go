package parser

import (
	"strings"

	"github.com/csga5000/HtmlDiffFormatter/symbol"
)

// Line splits s into one symbol per line. Each symbol carries its
// terminating "\n", except the final one, so that simply concatenating
// every symbol's text reproduces s exactly - the same contract the HTML
// parser upholds. An empty trailing segment is retained when s ends with
// "\n": Line("a\n") yields "a\n" then "".
func Line(s string) symbol.Sequence[Chunk] {
	var seq symbol.Sequence[Chunk]
	start := 0
	for {
		i := strings.IndexByte(s[start:], '\n')
		if i == -1 {
			seq = append(seq, symbol.New(Chunk(s[start:])))
			return seq
		}
		end := start + i + 1
		seq = append(seq, symbol.New(Chunk(s[start:end])))
		start = end
	}
}
