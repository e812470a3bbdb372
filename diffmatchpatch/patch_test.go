package diffmatchpatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchRoundTrip(t *testing.T) {
	t.Parallel()
	dmp := New[textString]()

	text1 := chars("The quick brown fox jumps over the lazy dog.")
	text2 := chars("That quick brown fox jumped over a lazy dog.")

	patches := dmp.PatchMakeFromTexts(text1, text2)
	require.Len(t, patches, 2)

	got, results := dmp.PatchApply(patches, text1)
	assert.Equal(t, []bool{true, true}, results)
	assert.True(t, got.Equal(text2), "got %q, want %q", got.Text(), text2.Text())
}

func TestPatchToTextFromTextRoundTrip(t *testing.T) {
	t.Parallel()
	dmp := New[textString]()

	text1 := chars("The quick brown fox jumps over the lazy dog.")
	text2 := chars("That quick brown fox jumped over a lazy dog.")
	patches := dmp.PatchMakeFromTexts(text1, text2)

	text := dmp.PatchToText(patches)
	roundTripped, err := dmp.PatchFromText(text, chars)
	require.NoError(t, err)
	require.Len(t, roundTripped, len(patches))

	for i := range patches {
		assert.Equal(t, patches[i].Start1, roundTripped[i].Start1, "patch %d", i)
		assert.Equal(t, patches[i].Start2, roundTripped[i].Start2, "patch %d", i)
		assert.Equal(t, patches[i].Length1, roundTripped[i].Length1, "patch %d", i)
		assert.Equal(t, patches[i].Length2, roundTripped[i].Length2, "patch %d", i)
	}

	got, results := dmp.PatchApply(roundTripped, text1)
	assert.Equal(t, []bool{true, true}, results)
	assert.True(t, got.Equal(text2))
}

func TestPatchFromTextRejectsBadHeader(t *testing.T) {
	t.Parallel()
	dmp := New[textString]()

	_, err := dmp.PatchFromText("not a patch header\n", chars)
	require.Error(t, err)
	var dmpErr *Error
	require.ErrorAs(t, err, &dmpErr)
	assert.Equal(t, InvalidInput, dmpErr.Kind)
}

func TestPatchApplyOnUnrelatedTextFails(t *testing.T) {
	t.Parallel()
	dmp := New[textString]()

	text1 := chars("The quick brown fox jumps over the lazy dog.")
	text2 := chars("That quick brown fox jumped over a lazy dog.")
	patches := dmp.PatchMakeFromTexts(text1, text2)

	_, results := dmp.PatchApply(patches, chars("completely unrelated content"))
	assert.Contains(t, results, false)
}

func TestPatchAddPaddingPadsFirstAndLastDiffs(t *testing.T) {
	t.Parallel()
	dmp := New[textString]()
	dmp.PatchMargin = 4

	patches := []Patch[textString]{{
		Diffs:   []Diff[textString]{{OpDelete, chars("a")}, {OpInsert, chars("b")}},
		Start1:  0,
		Start2:  0,
		Length1: 1,
		Length2: 1,
	}}
	padding := dmp.PatchAddPadding(patches)
	require.Len(t, padding, dmp.PatchMargin)

	first := patches[0].Diffs[0]
	last := patches[0].Diffs[len(patches[0].Diffs)-1]
	assert.Equal(t, OpEqual, first.Op)
	assert.Equal(t, OpEqual, last.Op)
	assert.Len(t, first.Symbols, dmp.PatchMargin)
	assert.Len(t, last.Symbols, dmp.PatchMargin)
}

func TestPatchSplitMaxBreaksLongPatches(t *testing.T) {
	t.Parallel()
	dmp := New[textString]()
	dmp.MatchMaxBits = 32

	longPrefix := make([]rune, 100)
	for i := range longPrefix {
		longPrefix[i] = 'x'
	}
	text1 := chars(string(longPrefix) + "end")
	text2 := chars("end")

	patches := dmp.PatchSplitMax(dmp.PatchMakeFromTexts(text1, text2))
	require.Greater(t, len(patches), 1)
	for _, p := range patches {
		assert.LessOrEqual(t, p.Length1, dmp.MatchMaxBits)
	}
}
