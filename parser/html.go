package parser

import (
	"strings"

	"github.com/csga5000/HtmlDiffFormatter/symbol"
)

// TextParser is the shape of the inner parser HTML delegates to for
// anything outside tags and comments.
type TextParser func(string) symbol.Sequence[Chunk]

// HTML parses s, emitting one symbol per HTML tag ("<...>"), one symbol per
// HTML comment ("<!-- ... -->"), and running Word over every run of text
// outside tags and comments. Comment detection takes priority over tag
// detection; inside a comment, "<" and ">" are literal until the closing
// "-->". Word is the default inner text parser so that, e.g., diffing
// "<p>Hello world</p>" against "<p>Hello brave world</p>" can isolate
// "brave " as a standalone insertion - see HTMLWithTextParser to use a
// different granularity.
//
// Concatenating every produced symbol's text reproduces s exactly.
func HTML(s string) symbol.Sequence[Chunk] {
	return HTMLWithTextParser(s, Word)
}

// HTMLWithTextParser is HTML, parameterized over the parser used for text
// outside tags and comments.
func HTMLWithTextParser(s string, textParser TextParser) symbol.Sequence[Chunk] {
	var seq symbol.Sequence[Chunk]
	flush := func(text string) {
		if text == "" {
			return
		}
		seq = append(seq, textParser(text)...)
	}

	pending := strings.Builder{}
	i := 0
	for i < len(s) {
		if s[i] != '<' {
			pending.WriteByte(s[i])
			i++
			continue
		}

		if strings.HasPrefix(s[i:], "<!--") {
			end := strings.Index(s[i+4:], "-->")
			flush(pending.String())
			pending.Reset()
			if end == -1 {
				// Unterminated comment: the rest of the input is literal.
				seq = append(seq, symbol.New(Chunk(s[i:])))
				return seq
			}
			closeAt := i + 4 + end + 3
			seq = append(seq, symbol.New(Chunk(s[i:closeAt])))
			i = closeAt
			continue
		}

		tagEnd := scanTagEnd(s, i)
		if tagEnd == -1 {
			// No closing '>': treat the rest as literal text.
			pending.WriteString(s[i:])
			break
		}
		flush(pending.String())
		pending.Reset()
		seq = append(seq, symbol.New(Chunk(s[i:tagEnd])))
		i = tagEnd
	}
	flush(pending.String())
	return seq
}

// scanTagEnd returns the index just past the '>' that closes the tag
// starting at s[start] (s[start] == '<'), or -1 if none is found.
// Quote-aware so a '>' inside a quoted attribute value does not end the
// tag early.
func scanTagEnd(s string, start int) int {
	var quote byte
	for i := start + 1; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '>':
			return i + 1
		}
	}
	return -1
}
