package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/csga5000/HtmlDiffFormatter/parser"
)

func TestCharacterRoundTrip(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"", "hello", "héllo wörld", "a\nb"} {
		seq := parser.Character(s)
		assert.Equal(t, s, parser.Read(seq))
	}
}

func TestLineRoundTrip(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"", "a", "a\nb", "a\nb\n", "\n", "\n\n"} {
		seq := parser.Line(s)
		assert.Equal(t, s, parser.Read(seq))
	}
}

func TestLineTrailingEmptySegment(t *testing.T) {
	t.Parallel()
	seq := parser.Line("a\n")
	assert.Len(t, seq, 2)
	assert.Equal(t, "a\n", seq[0].Text())
	assert.Equal(t, "", seq[1].Text())
}

func TestDelimitedRoundTrip(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"", "a,b;c", "a,,b", ",", "nodelim"} {
		seq := parser.Delimited(s, ",;")
		assert.Equal(t, s, parser.Read(seq))
	}
}

func TestWordAlternatesRuns(t *testing.T) {
	t.Parallel()
	seq := parser.Word("Hello, world!")
	var texts []string
	for _, s := range seq {
		texts = append(texts, s.Text())
	}
	assert.Equal(t, []string{"Hello", ", ", "world", "!"}, texts)
	assert.Equal(t, "Hello, world!", parser.Read(seq))
}

func TestPredicateBoundaryEmptyInput(t *testing.T) {
	t.Parallel()
	seq := parser.PredicateBoundary("", func(r rune) bool { return true })
	assert.Equal(t, "", parser.Read(seq))
}

func TestHTMLRoundTrip(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"<p>Hello world</p>",
		`<a href="x>y">link</a>`,
		"<!-- a comment with <tag> inside --> text",
		"plain text, no tags",
		"<br/>broken <unterminated",
		"<!-- unterminated comment",
	}
	for _, s := range inputs {
		seq := parser.HTML(s)
		assert.Equal(t, s, parser.Read(seq))
	}
}

func TestHTMLSegmentsTagsAndComments(t *testing.T) {
	t.Parallel()
	seq := parser.HTML("<p>Hi</p><!-- c -->")
	var texts []string
	for _, s := range seq {
		texts = append(texts, s.Text())
	}
	assert.Equal(t, []string{"<p>", "Hi", "</p>", "<!-- c -->"}, texts)
}
