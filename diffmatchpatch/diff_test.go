package diffmatchpatch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/csga5000/HtmlDiffFormatter/symbol"
)

// textString lets plain strings satisfy symbol.Element for these tests,
// the same helper symbol_test.go uses.
type textString string

func (s textString) Text() string { return string(s) }

// chars splits s into one textString symbol per rune, for tests that care
// about character-granularity diffing rather than word or line chunks.
func chars(s string) symbol.Sequence[textString] {
	runes := []rune(s)
	payloads := make([]textString, len(runes))
	for i, r := range runes {
		payloads[i] = textString(r)
	}
	return symbol.Of(payloads...)
}

func TestDiffCommonPrefix(t *testing.T) {
	t.Parallel()
	dmp := New[textString]()
	assert.Equal(t, 0, dmp.DiffCommonPrefix(chars("abc"), chars("xyz")))
	assert.Equal(t, 4, dmp.DiffCommonPrefix(chars("1234abcdef"), chars("1234xyz")))
	assert.Equal(t, 4, dmp.DiffCommonPrefix(chars("1234"), chars("1234xyz")))
}

func TestDiffCommonSuffix(t *testing.T) {
	t.Parallel()
	dmp := New[textString]()
	assert.Equal(t, 0, dmp.DiffCommonSuffix(chars("abc"), chars("xyz")))
	assert.Equal(t, 4, dmp.DiffCommonSuffix(chars("abcdef1234"), chars("xyz1234")))
	assert.Equal(t, 4, dmp.DiffCommonSuffix(chars("1234"), chars("xyz1234")))
}

func TestDiffCommonOverlap(t *testing.T) {
	t.Parallel()
	dmp := New[textString]()
	assert.Equal(t, 0, dmp.DiffCommonOverlap(chars(""), chars("abcd")))
	assert.Equal(t, 2, dmp.DiffCommonOverlap(chars("abcd"), chars("cdef")))
	assert.Equal(t, 4, dmp.DiffCommonOverlap(chars("1234"), chars("1234")))
	assert.Equal(t, 1, dmp.DiffCommonOverlap(chars("123"), chars("3124")))
}

func TestDiffMainIdentity(t *testing.T) {
	t.Parallel()
	dmp := New[textString]()
	for _, s := range []string{"", "abc", "<p>Hello</p>"} {
		diffs := dmp.DiffMain(chars(s), chars(s))
		if s == "" {
			assert.Empty(t, diffs)
			continue
		}
		if assert.Len(t, diffs, 1) {
			assert.Equal(t, OpEqual, diffs[0].Op)
			assert.True(t, diffs[0].Symbols.Equal(chars(s)))
		}
	}
}

func TestDiffMainBasic(t *testing.T) {
	t.Parallel()
	dmp := New[textString]()
	diffs := dmp.DiffMain(chars("abc"), chars("abd"))
	want := []Diff[textString]{
		{OpEqual, chars("ab")},
		{OpDelete, chars("c")},
		{OpInsert, chars("d")},
	}
	if assert.Len(t, diffs, len(want)) {
		for i := range want {
			assert.Equal(t, want[i].Op, diffs[i].Op)
			assert.True(t, diffs[i].Symbols.Equal(want[i].Symbols), "diff %d: %v", i, diffs[i])
		}
	}
}

// TestDiffMainCoverage checks the coverage invariant: reassembling text1
// from the non-insert spans and text2 from the non-delete spans always
// reproduces the original inputs, whatever shape the edit script takes.
func TestDiffMainCoverage(t *testing.T) {
	t.Parallel()
	dmp := New[textString]()
	pairs := [][2]string{
		{"", ""},
		{"abc", ""},
		{"", "abc"},
		{"The quick brown fox", "The slow brown dog"},
		{"<p>Hello world</p>", "<p>Hello brave world</p>"},
	}
	for _, p := range pairs {
		a, b := chars(p[0]), chars(p[1])
		diffs := dmp.DiffMain(a, b)
		assert.True(t, dmp.DiffText1(diffs).Equal(a), "text1 mismatch for %q/%q", p[0], p[1])
		assert.True(t, dmp.DiffText2(diffs).Equal(b), "text2 mismatch for %q/%q", p[0], p[1])
	}
}

func TestDiffLevenshtein(t *testing.T) {
	t.Parallel()
	dmp := New[textString]()
	diffs := []Diff[textString]{
		{OpDelete, chars("abc")},
		{OpInsert, chars("1234")},
		{OpEqual, chars("xyz")},
	}
	assert.Equal(t, 4, dmp.DiffLevenshtein(diffs))

	diffs = []Diff[textString]{
		{OpEqual, chars("xyz")},
		{OpDelete, chars("abc")},
		{OpInsert, chars("1234")},
	}
	assert.Equal(t, 4, dmp.DiffLevenshtein(diffs))
}

func TestDiffXIndex(t *testing.T) {
	t.Parallel()
	dmp := New[textString]()
	diffs := []Diff[textString]{
		{OpDelete, chars("a")},
		{OpInsert, chars("1234")},
		{OpEqual, chars("xyz")},
	}
	assert.Equal(t, 5, dmp.DiffXIndex(diffs, 2))

	diffs = []Diff[textString]{
		{OpEqual, chars("a")},
		{OpDelete, chars("1234")},
		{OpEqual, chars("xyz")},
	}
	assert.Equal(t, 1, dmp.DiffXIndex(diffs, 3))
}
