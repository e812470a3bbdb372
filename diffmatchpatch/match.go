package diffmatchpatch

import "github.com/csga5000/HtmlDiffFormatter/symbol"

// MatchMain locates the best instance of pattern in text near loc, using
// an exact match if one exists at or near loc and falling back to the
// fuzzy Bitap search otherwise. Returns -1 if no match scores within
// MatchThreshold.
func (dmp *DMP[T]) MatchMain(text, pattern symbol.Sequence[T], loc int) int {
	loc = maxInt(0, minInt(loc, len(text)))
	switch {
	case text.Equal(pattern):
		return 0
	case len(text) == 0:
		return -1
	case loc+len(pattern) <= len(text) && text[loc:loc+len(pattern)].Equal(pattern):
		return loc
	}
	return dmp.MatchBitap(text, pattern, loc)
}

// MatchBitap implements the Baeza-Yates/Gonnet bitap algorithm: a
// bit-parallel approximate string search that tolerates up to
// len(pattern) substitutions, weighted against distance from loc by
// MatchDistance, and gives up once the best possible score exceeds
// MatchThreshold.
func (dmp *DMP[T]) MatchBitap(text, pattern symbol.Sequence[T], loc int) int {
	if dmp.MatchMaxBits != 0 && len(pattern) > dmp.MatchMaxBits {
		panic("pattern too long for MatchBitap")
	}

	alphabet := dmp.MatchAlphabet(pattern)

	scoreThreshold := dmp.MatchThreshold
	if bestLoc := text.Index(pattern, 0); bestLoc != -1 {
		scoreThreshold = minFloat(dmp.matchBitapScore(0, bestLoc, loc, len(pattern)), scoreThreshold)
		if bestLoc = text.LastIndex(pattern); bestLoc != -1 {
			scoreThreshold = minFloat(dmp.matchBitapScore(0, bestLoc, loc, len(pattern)), scoreThreshold)
		}
	}

	matchmask := 1 << uint(len(pattern)-1)
	bestLoc := -1

	binMax := len(pattern) + len(text)
	var lastRd []int
	for d := 0; d < len(pattern); d++ {
		binMin, binMid := 0, binMax
		for binMin < binMid {
			if dmp.matchBitapScore(d, loc+binMid, loc, len(pattern)) <= scoreThreshold {
				binMin = binMid
			} else {
				binMax = binMid
			}
			binMid = (binMax-binMin)/2 + binMin
		}
		binMax = binMid
		start := maxInt(1, loc-binMid+1)
		finish := minInt(loc+binMid, len(text)) + len(pattern)

		rd := make([]int, finish+2)
		rd[finish+1] = (1 << uint(d)) - 1

		for j := finish; j >= start; j-- {
			var charMatch int
			if j-1 < len(text) {
				charMatch = alphabet[text[j-1].Payload]
			}
			if d == 0 {
				rd[j] = ((rd[j+1] << 1) | 1) & charMatch
			} else {
				rd[j] = (((rd[j+1]<<1)|1)&charMatch)|(((lastRd[j+1]|lastRd[j])<<1)|1) | lastRd[j+1]
			}
			if rd[j]&matchmask != 0 {
				score := dmp.matchBitapScore(d, j-1, loc, len(pattern))
				if score <= scoreThreshold {
					scoreThreshold = score
					bestLoc = j - 1
					if bestLoc > loc {
						start = maxInt(1, 2*loc-bestLoc)
					} else {
						break
					}
				}
			}
		}
		if dmp.matchBitapScore(d+1, loc, loc, len(pattern)) > scoreThreshold {
			break
		}
		lastRd = rd
	}
	return bestLoc
}

func (dmp *DMP[T]) matchBitapScore(e, x, loc, patternLen int) float64 {
	accuracy := float64(e) / float64(patternLen)
	proximity := absInt(loc - x)
	if dmp.MatchDistance == 0 {
		if proximity == 0 {
			return accuracy
		}
		return 1.0
	}
	return accuracy + float64(proximity)/float64(dmp.MatchDistance)
}

// MatchAlphabet builds the Bitap bit-vector alphabet for pattern: for each
// distinct symbol, a bitmask with a 1 at every position that symbol
// occurs, counting from the pattern's last position.
func (dmp *DMP[T]) MatchAlphabet(pattern symbol.Sequence[T]) map[T]int {
	s := map[T]int{}
	for i, sym := range pattern {
		s[sym.Payload] |= 1 << uint(len(pattern)-i-1)
	}
	return s
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
