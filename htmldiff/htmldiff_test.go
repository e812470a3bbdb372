package htmldiff_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/csga5000/HtmlDiffFormatter/diffmatchpatch"
	"github.com/csga5000/HtmlDiffFormatter/htmldiff"
	"github.com/csga5000/HtmlDiffFormatter/parser"
)

// assertBalancedTags walks s with the x/net/html tokenizer and fails the
// test if any start tag is left unclosed or closed out of order. This
// is the "HTML validity" property: parsing the renderer's output must
// find a matched open/close pair for every tag present in the inputs,
// however non-trivial the diff. Only tags written in self-closing form
// ("<br/>") are exempt; a void element written without the slash
// ("<br>") is pushed like any other start tag and reported as unclosed.
func assertBalancedTags(t *testing.T, s string) {
	t.Helper()
	z := html.NewTokenizer(strings.NewReader(s))
	var stack []string
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			require.Empty(t, stack, "unclosed tags remain: %v", stack)
			return
		case html.StartTagToken:
			name, _ := z.TagName()
			stack = append(stack, string(name))
		case html.SelfClosingTagToken:
			// no-op: self-closing, never pushed.
		case html.EndTagToken:
			name, _ := z.TagName()
			require.NotEmpty(t, stack, "end tag %q with nothing open", name)
			require.Equal(t, stack[len(stack)-1], string(name), "mismatched end tag")
			stack = stack[:len(stack)-1]
		}
	}
}

func newDMP() *diffmatchpatch.DMP[parser.Chunk] {
	return diffmatchpatch.New[parser.Chunk]()
}

func TestDiffIdentity(t *testing.T) {
	t.Parallel()
	input := "<p>Hello <b>world</b></p>"
	got := htmldiff.Diff(newDMP(), input, input, htmldiff.DefaultFormatter)
	assert.Equal(t, input, got)
}

func TestDiffInsertedWord(t *testing.T) {
	t.Parallel()
	got := htmldiff.Diff(newDMP(), "<p>Hello world</p>", "<p>Hello brave world</p>", htmldiff.DefaultFormatter)
	assert.Equal(t,
		`<p>Hello <ins style="text-decoration: underline;color: green;">brave </ins>world</p>`,
		got)
	assertBalancedTags(t, got)
}

func TestDiffDeletedElementStaysValid(t *testing.T) {
	t.Parallel()
	got := htmldiff.Diff(newDMP(), "<div><p>one</p><p>two</p></div>", "<div><p>two</p></div>", htmldiff.DefaultFormatter)
	assertBalancedTags(t, got)
	assert.Contains(t, got, "<del")
	assert.Contains(t, got, "one")
}

func TestDiffMixedOperationTagStaysValid(t *testing.T) {
	t.Parallel()
	got := htmldiff.Diff(newDMP(), "<p>old text here</p>", "<p>new text here</p>", htmldiff.DefaultFormatter)
	assertBalancedTags(t, got)
	assert.Contains(t, got, "<p>")
	assert.Contains(t, got, "</p>")
}

func TestDiffUnterminatedTagDoesNotPanic(t *testing.T) {
	t.Parallel()
	// Neither input closes its outer <div>; the renderer must still
	// produce something rather than panicking on a missing end-tag.
	var got string
	assert.NotPanics(t, func() {
		got = htmldiff.Diff(newDMP(), "<div>old", "<div>new", htmldiff.DefaultFormatter)
	})
	assert.Contains(t, got, "<div>")
}

func TestDiffCommentTreatedAsSelfClosing(t *testing.T) {
	t.Parallel()
	got := htmldiff.Diff(newDMP(), "<p><!-- a -->one</p>", "<p><!-- b -->one</p>", htmldiff.DefaultFormatter)
	assertBalancedTags(t, got)
}

func TestCustomFormatterIsUsed(t *testing.T) {
	t.Parallel()
	loud := func(text string, op diffmatchpatch.Op) string {
		if op == diffmatchpatch.OpInsert {
			return "[[" + text + "]]"
		}
		return text
	}
	got := htmldiff.Diff(newDMP(), "<p>hi</p>", "<p>hi there</p>", loud)
	assert.Contains(t, got, "[[")
	assert.NotContains(t, got, "<ins")
}

func TestChildSegmentsLogicErrorOnLeaf(t *testing.T) {
	t.Parallel()
	dmp := newDMP()
	diffs := dmp.DiffMain(parser.HTML("<br/>"), parser.HTML("<br/>"))
	segs := htmldiff.Segments(diffs)
	require.Len(t, segs, 1)
	require.False(t, segs[0].IsContainer())

	_, err := segs[0].ChildSegments()
	require.Error(t, err)
	var htmlErr *htmldiff.Error
	require.ErrorAs(t, err, &htmlErr)
	assert.Equal(t, htmldiff.LogicError, htmlErr.Kind)
}

func TestChildSegmentsOnContainer(t *testing.T) {
	t.Parallel()
	dmp := newDMP()
	diffs := dmp.DiffMain(parser.HTML("<p>hi</p>"), parser.HTML("<p>hi</p>"))
	segs := htmldiff.Segments(diffs)
	require.Len(t, segs, 1)
	require.True(t, segs[0].IsContainer())

	children, err := segs[0].ChildSegments()
	require.NoError(t, err)
	assert.NotEmpty(t, children)
}
