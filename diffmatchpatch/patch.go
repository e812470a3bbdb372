package diffmatchpatch

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/csga5000/HtmlDiffFormatter/symbol"
)

// Patch is one context-bearing hunk: a run of diffs plus the source and
// destination offsets (in symbols) it applies at.
type Patch[T symbol.Element] struct {
	Diffs            []Diff[T]
	Start1, Start2   int
	Length1, Length2 int
}

// String renders p in GNU-unified-diff style: a "@@ -start1,len1
// +start2,len2 @@" header (1-based, matching diff(1)) followed by one
// percent-escaped line per diff.
func (p Patch[T]) String() string {
	coords1 := patchCoords(p.Start1, p.Length1)
	coords2 := patchCoords(p.Start2, p.Length2)

	var b strings.Builder
	b.WriteString("@@ -" + coords1 + " +" + coords2 + " @@\n")
	for _, d := range p.Diffs {
		switch d.Op {
		case OpInsert:
			b.WriteByte('+')
		case OpDelete:
			b.WriteByte('-')
		case OpEqual:
			b.WriteByte(' ')
		}
		b.WriteString(encodeURIComponent(d.Symbols.Text()))
		b.WriteByte('\n')
	}
	return b.String()
}

func patchCoords(start, length int) string {
	switch length {
	case 0:
		return strconv.Itoa(start) + ",0"
	case 1:
		return strconv.Itoa(start + 1)
	default:
		return strconv.Itoa(start+1) + "," + strconv.Itoa(length)
	}
}

// PatchMakeFromTexts computes a and b's diff and turns it into patches.
func (dmp *DMP[T]) PatchMakeFromTexts(a, b symbol.Sequence[T]) []Patch[T] {
	diffs := dmp.DiffMain(a, b)
	if len(diffs) > 2 {
		diffs = dmp.DiffCleanupSemantic(diffs)
		diffs = dmp.DiffCleanupEfficiency(diffs)
	}
	return dmp.PatchMakeFromTextAndDiffs(a, diffs)
}

// PatchMakeFromDiffs turns diffs into patches, deriving the source text
// from diffs itself (DiffText1).
func (dmp *DMP[T]) PatchMakeFromDiffs(diffs []Diff[T]) []Patch[T] {
	return dmp.PatchMakeFromTextAndDiffs(dmp.DiffText1(diffs), diffs)
}

// PatchMakeFromTextAndDiffs turns diffs, known to describe edits against
// source text a, into patches with rolling context. Splitting the three
// overloads the classic library packs into a single variadic PatchMake
// into named constructors avoids a runtime type switch on the second
// argument.
func (dmp *DMP[T]) PatchMakeFromTextAndDiffs(a symbol.Sequence[T], diffs []Diff[T]) []Patch[T] {
	if len(diffs) == 0 {
		return nil
	}

	var patches []Patch[T]
	var patch Patch[T]
	charCount1, charCount2 := 0, 0
	prepatchText := a
	postpatchText := a.Clone()

	for i, d := range diffs {
		if len(patch.Diffs) == 0 && d.Op != OpEqual {
			patch.Start1 = charCount1
			patch.Start2 = charCount2
		}

		switch d.Op {
		case OpInsert:
			patch.Diffs = append(patch.Diffs, d)
			patch.Length2 += len(d.Symbols)
			postpatchText = symbol.Concat(postpatchText[:charCount2], d.Symbols, postpatchText[charCount2:])
		case OpDelete:
			patch.Length1 += len(d.Symbols)
			patch.Diffs = append(patch.Diffs, d)
			postpatchText = symbol.Concat(postpatchText[:charCount2], postpatchText[charCount2+len(d.Symbols):])
		case OpEqual:
			if len(d.Symbols) <= 2*dmp.PatchMargin && len(patch.Diffs) != 0 && i != len(diffs)-1 {
				patch.Diffs = append(patch.Diffs, d)
				patch.Length1 += len(d.Symbols)
				patch.Length2 += len(d.Symbols)
			}
			if len(d.Symbols) >= 2*dmp.PatchMargin && len(patch.Diffs) != 0 {
				dmp.PatchAddContext(&patch, prepatchText)
				patches = append(patches, patch)
				patch = Patch[T]{}
				prepatchText = postpatchText
				charCount1 = charCount2
			}
		}

		if d.Op != OpInsert {
			charCount1 += len(d.Symbols)
		}
		if d.Op != OpDelete {
			charCount2 += len(d.Symbols)
		}
	}
	if len(patch.Diffs) != 0 {
		dmp.PatchAddContext(&patch, prepatchText)
		patches = append(patches, patch)
	}
	return patches
}

// PatchAddContext grows patch with rolling equal-symbol context from
// text (the pre-patch source) until its pattern is unique in text, up to
// MatchMaxBits-2*PatchMargin, then adds one more margin's worth for
// good measure.
func (dmp *DMP[T]) PatchAddContext(patch *Patch[T], text symbol.Sequence[T]) {
	if len(text) == 0 {
		return
	}

	pattern := text[patch.Start2 : patch.Start2+patch.Length1]
	padding := 0

	for text.Index(pattern, 0) != text.LastIndex(pattern) &&
		len(pattern) < dmp.MatchMaxBits-2*dmp.PatchMargin {
		padding += dmp.PatchMargin
		start := maxInt(0, patch.Start2-padding)
		end := minInt(len(text), patch.Start2+patch.Length1+padding)
		pattern = text[start:end]
	}
	padding += dmp.PatchMargin

	prefixStart := maxInt(0, patch.Start2-padding)
	prefix := text[prefixStart:patch.Start2]
	if len(prefix) != 0 {
		patch.Diffs = append([]Diff[T]{{OpEqual, prefix}}, patch.Diffs...)
	}
	suffixEnd := minInt(len(text), patch.Start2+patch.Length1+padding)
	suffix := text[patch.Start2+patch.Length1 : suffixEnd]
	if len(suffix) != 0 {
		patch.Diffs = append(patch.Diffs, Diff[T]{OpEqual, suffix})
	}

	patch.Start1 -= len(prefix)
	patch.Start2 -= len(prefix)
	patch.Length1 += len(prefix) + len(suffix)
	patch.Length2 += len(prefix) + len(suffix)
}

// PatchDeepCopy returns patches with every symbol slice cloned, so
// mutating the result (as PatchApply does internally) cannot alias the
// caller's patches.
func (dmp *DMP[T]) PatchDeepCopy(patches []Patch[T]) []Patch[T] {
	out := make([]Patch[T], len(patches))
	for i, p := range patches {
		diffs := make([]Diff[T], len(p.Diffs))
		for j, d := range p.Diffs {
			diffs[j] = Diff[T]{d.Op, d.Symbols.Clone()}
		}
		out[i] = Patch[T]{Diffs: diffs, Start1: p.Start1, Start2: p.Start2, Length1: p.Length1, Length2: p.Length2}
	}
	return out
}

// PatchApply locates each patch's context in text with MatchMain (falling
// back to a fresh diff, then DiffXIndex, when the context has drifted)
// and applies whichever it finds, returning the patched text and a
// per-patch success flag. A patch that cannot be located, or whose
// located content is too dissimilar per PatchDeleteThreshold, is
// reported as failed and left unapplied; later patches' expected
// locations are still adjusted by the offset the failure implies.
func (dmp *DMP[T]) PatchApply(patches []Patch[T], text symbol.Sequence[T]) (symbol.Sequence[T], []bool) {
	if len(patches) == 0 {
		return text.Clone(), nil
	}

	patches = dmp.PatchDeepCopy(patches)
	padding := dmp.PatchAddPadding(patches)
	text = symbol.Concat(padding, text, padding)
	patches = dmp.PatchSplitMax(patches)

	delta := 0
	results := make([]bool, len(patches))
	for i, p := range patches {
		expectedLoc := p.Start2 + delta
		text1 := dmp.DiffText1(p.Diffs)

		var startLoc, endLoc int
		endLoc = -1
		if dmp.MatchMaxBits > 0 && len(text1) > dmp.MatchMaxBits {
			startLoc = dmp.MatchMain(text, text1[:dmp.MatchMaxBits], expectedLoc)
			if startLoc != -1 {
				endLoc = dmp.MatchMain(text, text1[len(text1)-dmp.MatchMaxBits:], expectedLoc+len(text1)-dmp.MatchMaxBits)
				if endLoc == -1 || startLoc >= endLoc {
					startLoc = -1
				}
			}
		} else {
			startLoc = dmp.MatchMain(text, text1, expectedLoc)
		}

		if startLoc == -1 {
			results[i] = false
			dmp.logger().Warn("PatchApply: patch context not found", "index", i, "expectedLoc", expectedLoc)
			delta -= p.Length2 - p.Length1
			continue
		}

		results[i] = true
		delta = startLoc - expectedLoc
		var text2 symbol.Sequence[T]
		if endLoc == -1 {
			text2 = text[startLoc:minInt(startLoc+len(text1), len(text))]
		} else {
			text2 = text[startLoc:minInt(endLoc+dmp.MatchMaxBits, len(text))]
		}

		if text1.Equal(text2) {
			text = symbol.Concat(text[:startLoc], dmp.DiffText2(p.Diffs), text[startLoc+len(text1):])
			continue
		}

		diffs := dmp.DiffMain(text1, text2)
		if dmp.MatchMaxBits > 0 && len(text1) > dmp.MatchMaxBits &&
			float64(dmp.DiffLevenshtein(diffs))/float64(len(text1)) > dmp.PatchDeleteThreshold {
			results[i] = false
			dmp.logger().Warn("PatchApply: located context too dissimilar to apply", "index", i, "startLoc", startLoc)
			continue
		}

		diffs = dmp.DiffCleanupSemanticLossless(diffs)
		index1 := 0
		for _, d := range p.Diffs {
			if d.Op != OpEqual {
				index2 := dmp.DiffXIndex(diffs, index1)
				switch d.Op {
				case OpInsert:
					text = symbol.Concat(text[:startLoc+index2], d.Symbols, text[startLoc+index2:])
				case OpDelete:
					delEnd := startLoc + dmp.DiffXIndex(diffs, index1+len(d.Symbols))
					text = symbol.Concat(text[:startLoc+index2], text[delEnd:])
				}
			}
			if d.Op != OpDelete {
				index1 += len(d.Symbols)
			}
		}
	}
	text = text[len(padding) : len(text)-len(padding)]
	return text, results
}

// PatchAddPadding prepends and appends a PatchMargin-long sequence of
// default-constructed sentinel symbols to patches' leading and trailing
// context, growing or inserting an equality as needed, and shifts every
// patch's Start1/Start2 forward by that margin. Returns the sentinel
// sequence so PatchApply can pad the text it matches against and strip
// the padding back off afterward. T has no natural "blank" payload to
// borrow the way string text can borrow a spare printable character, so
// the sentinel is T's zero value repeated. That value can also occur in
// real input: for parser.Chunk it is the empty chunk, which parser.Line
// emits after a trailing newline.
func (dmp *DMP[T]) PatchAddPadding(patches []Patch[T]) symbol.Sequence[T] {
	paddingLength := dmp.PatchMargin
	var zero T
	padding := make(symbol.Sequence[T], paddingLength)
	for i := range padding {
		padding[i] = symbol.New(zero)
	}
	if len(patches) == 0 {
		return padding
	}

	for i := range patches {
		patches[i].Start1 += paddingLength
		patches[i].Start2 += paddingLength
	}

	first := &patches[0]
	if len(first.Diffs) == 0 || first.Diffs[0].Op != OpEqual {
		first.Diffs = append([]Diff[T]{{OpEqual, padding}}, first.Diffs...)
		first.Start1 -= paddingLength
		first.Start2 -= paddingLength
		first.Length1 += paddingLength
		first.Length2 += paddingLength
	} else if paddingLength > len(first.Diffs[0].Symbols) {
		extra := paddingLength - len(first.Diffs[0].Symbols)
		first.Diffs[0].Symbols = symbol.Concat(padding[len(first.Diffs[0].Symbols):], first.Diffs[0].Symbols)
		first.Start1 -= extra
		first.Start2 -= extra
		first.Length1 += extra
		first.Length2 += extra
	}

	last := &patches[len(patches)-1]
	if len(last.Diffs) == 0 || last.Diffs[len(last.Diffs)-1].Op != OpEqual {
		last.Diffs = append(last.Diffs, Diff[T]{OpEqual, padding})
		last.Length1 += paddingLength
		last.Length2 += paddingLength
	} else if paddingLength > len(last.Diffs[len(last.Diffs)-1].Symbols) {
		tail := &last.Diffs[len(last.Diffs)-1]
		extra := paddingLength - len(tail.Symbols)
		tail.Symbols = symbol.Concat(tail.Symbols, padding[:extra])
		last.Length1 += extra
		last.Length2 += extra
	}

	return padding
}

// PatchSplitMax breaks up any patch whose source span exceeds
// MatchMaxBits, since MatchBitap cannot represent a pattern longer than
// that. Left as a no-op when MatchMaxBits is disabled (<= 0).
func (dmp *DMP[T]) PatchSplitMax(patches []Patch[T]) []Patch[T] {
	patchSize := dmp.MatchMaxBits
	if patchSize <= 0 {
		return patches
	}

	var out []Patch[T]
	for _, bigpatch := range patches {
		if bigpatch.Length1 <= patchSize {
			out = append(out, bigpatch)
			continue
		}

		start1, start2 := bigpatch.Start1, bigpatch.Start2
		var precontext symbol.Sequence[T]
		diffs := append([]Diff[T]{}, bigpatch.Diffs...)

		for len(diffs) != 0 {
			patch := Patch[T]{Start1: start1 - len(precontext), Start2: start2 - len(precontext)}
			empty := true
			if len(precontext) != 0 {
				patch.Length1 = len(precontext)
				patch.Length2 = len(precontext)
				patch.Diffs = append(patch.Diffs, Diff[T]{OpEqual, precontext})
			}

			for len(diffs) != 0 && patch.Length1 < patchSize-dmp.PatchMargin {
				op := diffs[0].Op
				symbols := diffs[0].Symbols
				switch {
				case op == OpInsert:
					patch.Length2 += len(symbols)
					start2 += len(symbols)
					patch.Diffs = append(patch.Diffs, diffs[0])
					diffs = diffs[1:]
					empty = false
				case op == OpDelete && len(patch.Diffs) == 1 && patch.Diffs[0].Op == OpEqual && len(symbols) > 2*patchSize:
					patch.Length1 += len(symbols)
					start1 += len(symbols)
					empty = false
					patch.Diffs = append(patch.Diffs, diffs[0])
					diffs = diffs[1:]
				default:
					take := minInt(len(symbols), maxInt(0, patchSize-patch.Length1-dmp.PatchMargin))
					piece := symbols[:take]
					patch.Length1 += len(piece)
					start1 += len(piece)
					if op == OpEqual {
						patch.Length2 += len(piece)
						start2 += len(piece)
					} else {
						empty = false
					}
					patch.Diffs = append(patch.Diffs, Diff[T]{op, piece})
					if take == len(symbols) {
						diffs = diffs[1:]
					} else {
						diffs = append([]Diff[T]{{op, symbols[take:]}}, diffs[1:]...)
					}
				}
			}

			precontext = dmp.DiffText2(patch.Diffs)
			if len(precontext) > dmp.PatchMargin {
				precontext = precontext[len(precontext)-dmp.PatchMargin:]
			}

			remaining1 := dmp.DiffText1(diffs)
			var postcontext symbol.Sequence[T]
			if len(remaining1) > dmp.PatchMargin {
				postcontext = remaining1[:dmp.PatchMargin]
			} else {
				postcontext = remaining1
			}
			if len(postcontext) != 0 {
				patch.Length1 += len(postcontext)
				patch.Length2 += len(postcontext)
				if n := len(patch.Diffs); n != 0 && patch.Diffs[n-1].Op == OpEqual {
					patch.Diffs[n-1].Symbols = symbol.Concat(patch.Diffs[n-1].Symbols, postcontext)
				} else {
					patch.Diffs = append(patch.Diffs, Diff[T]{OpEqual, postcontext})
				}
			}
			if !empty {
				out = append(out, patch)
			}
		}
	}
	return out
}

// PatchToText concatenates patches' String() form, the wire format for a
// patch set.
func (dmp *DMP[T]) PatchToText(patches []Patch[T]) string {
	var b strings.Builder
	for i := range patches {
		b.WriteString(patches[i].String())
	}
	return b.String()
}

var patchHeaderRegexp = regexp.MustCompile(`^@@ -(\d+),?(\d*) \+(\d+),?(\d*) @@$`)

// PatchFromText parses PatchToText's format back into patches. parse
// reconstructs each line's symbols from its decoded text, the same role
// it plays in DiffFromDelta.
func (dmp *DMP[T]) PatchFromText(text string, parse func(string) symbol.Sequence[T]) ([]Patch[T], error) {
	if text == "" {
		return nil, nil
	}

	var patches []Patch[T]
	lines := strings.Split(text, "\n")
	i := 0
	for i < len(lines) {
		if lines[i] == "" {
			i++
			continue
		}
		m := patchHeaderRegexp.FindStringSubmatch(lines[i])
		if m == nil {
			return nil, newError(InvalidInput, fmt.Sprintf("invalid patch header %q", lines[i]), nil)
		}
		var patch Patch[T]
		patch.Start1, _ = strconv.Atoi(m[1])
		switch {
		case m[2] == "":
			patch.Start1--
			patch.Length1 = 1
		case m[2] == "0":
			patch.Length1 = 0
		default:
			patch.Start1--
			patch.Length1, _ = strconv.Atoi(m[2])
		}
		patch.Start2, _ = strconv.Atoi(m[3])
		switch {
		case m[4] == "":
			patch.Start2--
			patch.Length2 = 1
		case m[4] == "0":
			patch.Length2 = 0
		default:
			patch.Start2--
			patch.Length2, _ = strconv.Atoi(m[4])
		}
		i++

		for i < len(lines) && lines[i] != "" {
			line := lines[i]
			sign := line[0]
			if sign == '@' {
				break
			}
			decoded, err := decodeURIComponent(line[1:])
			if err != nil {
				return nil, err
			}
			symbols := parse(decoded)
			switch sign {
			case '-':
				patch.Diffs = append(patch.Diffs, Diff[T]{OpDelete, symbols})
			case '+':
				patch.Diffs = append(patch.Diffs, Diff[T]{OpInsert, symbols})
			case ' ':
				patch.Diffs = append(patch.Diffs, Diff[T]{OpEqual, symbols})
			default:
				return nil, newError(InvalidInput, fmt.Sprintf("invalid patch operator %q", string(sign)), nil)
			}
			i++
		}
		patches = append(patches, patch)
	}
	return patches, nil
}
