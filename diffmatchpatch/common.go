package diffmatchpatch

import "github.com/csga5000/HtmlDiffFormatter/symbol"

// DiffCommonPrefix returns the number of symbols common to the start of
// a and b.
func (dmp *DMP[T]) DiffCommonPrefix(a, b symbol.Sequence[T]) int {
	n := minInt(len(a), len(b))
	for i := 0; i < n; i++ {
		if !a[i].Equal(b[i]) {
			return i
		}
	}
	return n
}

// DiffCommonSuffix returns the number of symbols common to the end of
// a and b.
func (dmp *DMP[T]) DiffCommonSuffix(a, b symbol.Sequence[T]) int {
	n := minInt(len(a), len(b))
	for i := 0; i < n; i++ {
		if !a[len(a)-1-i].Equal(b[len(b)-1-i]) {
			return i
		}
	}
	return n
}

// DiffCommonOverlap returns the length of the longest run such that the
// end of a overlaps the start of b.
func (dmp *DMP[T]) DiffCommonOverlap(a, b symbol.Sequence[T]) int {
	aLen, bLen := len(a), len(b)
	if aLen == 0 || bLen == 0 {
		return 0
	}
	if aLen > bLen {
		a = a[aLen-bLen:]
	} else if bLen > aLen {
		b = b[:aLen]
	}
	n := minInt(len(a), len(b))
	if a.Equal(b) {
		return n
	}

	best := 0
	length := 1
	for length <= n {
		pattern := a[n-length:]
		found := b.Index(pattern, 0)
		if found == -1 {
			return best
		}
		length += found
		if found == 0 {
			best = length
			length++
		}
	}
	return best
}

// DiffXIndex returns the equivalent location in b's text of location
// loc within a's text, given the edit script diffs that turns a into b.
func (dmp *DMP[T]) DiffXIndex(diffs []Diff[T], loc int) int {
	chars1, chars2 := 0, 0
	lastChars1, lastChars2 := 0, 0
	var lastDiff *Diff[T]
	for i := range diffs {
		d := &diffs[i]
		if d.Op != OpInsert {
			chars1 += len(d.Symbols)
		}
		if d.Op != OpDelete {
			chars2 += len(d.Symbols)
		}
		if chars1 > loc {
			lastDiff = d
			break
		}
		lastChars1, lastChars2 = chars1, chars2
	}
	if lastDiff != nil && lastDiff.Op == OpDelete {
		return lastChars2
	}
	return lastChars2 + (loc - lastChars1)
}

// DiffLevenshtein returns the Levenshtein edit distance implied by diffs:
// the number of inserted symbols plus the number of deleted symbols,
// counting a co-located insert/delete pair once for the longer side.
func (dmp *DMP[T]) DiffLevenshtein(diffs []Diff[T]) int {
	levenshtein := 0
	insertions, deletions := 0, 0
	for _, d := range diffs {
		switch d.Op {
		case OpInsert:
			insertions += len(d.Symbols)
		case OpDelete:
			deletions += len(d.Symbols)
		case OpEqual:
			levenshtein += maxInt(insertions, deletions)
			insertions, deletions = 0, 0
		}
	}
	levenshtein += maxInt(insertions, deletions)
	return levenshtein
}

// DiffText1 reconstructs the source sequence (a) implied by diffs.
func (dmp *DMP[T]) DiffText1(diffs []Diff[T]) symbol.Sequence[T] {
	var out symbol.Sequence[T]
	for _, d := range diffs {
		if d.Op != OpInsert {
			out = append(out, d.Symbols...)
		}
	}
	return out
}

// DiffText2 reconstructs the destination sequence (b) implied by diffs.
func (dmp *DMP[T]) DiffText2(diffs []Diff[T]) symbol.Sequence[T] {
	var out symbol.Sequence[T]
	for _, d := range diffs {
		if d.Op != OpDelete {
			out = append(out, d.Symbols...)
		}
	}
	return out
}
