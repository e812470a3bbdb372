package diffmatchpatch

import "github.com/csga5000/HtmlDiffFormatter/symbol"

func spliceDiffs[T symbol.Element](diffs []Diff[T], index, amount int, elements ...Diff[T]) []Diff[T] {
	tail := append([]Diff[T]{}, diffs[index+amount:]...)
	return append(diffs[:index], append(elements, tail...)...)
}

// DiffCleanupSemantic increases the human readability of diffs by
// sacrificing diff minimality: it eliminates equalities too small to be
// meaningful relative to the edits around them, then hands off to
// DiffCleanupSemanticLossless, then resolves overlapping delete/insert
// pairs (e.g. "abcxxx"/"xxxdef" -> "abc"/"xxx"/"def") in favor of whichever
// order keeps the larger overlap as a plain equality.
func (dmp *DMP[T]) DiffCleanupSemantic(diffs []Diff[T]) []Diff[T] {
	changes := false
	var equalities []int
	var lastEquality symbol.Sequence[T]
	pointer := 0
	lenInsertions1, lenDeletions1 := 0, 0
	lenInsertions2, lenDeletions2 := 0, 0

	for pointer < len(diffs) {
		if diffs[pointer].Op == OpEqual {
			equalities = append(equalities, pointer)
			lenInsertions1, lenDeletions1 = lenInsertions2, lenDeletions2
			lenInsertions2, lenDeletions2 = 0, 0
			lastEquality = diffs[pointer].Symbols
		} else {
			if diffs[pointer].Op == OpInsert {
				lenInsertions2 += len(diffs[pointer].Symbols)
			} else {
				lenDeletions2 += len(diffs[pointer].Symbols)
			}
			diff1 := maxInt(lenInsertions1, lenDeletions1)
			diff2 := maxInt(lenInsertions2, lenDeletions2)
			if len(lastEquality) > 0 && len(lastEquality) <= diff1 && len(lastEquality) <= diff2 {
				insPoint := equalities[len(equalities)-1]
				diffs = spliceDiffs(diffs, insPoint, 0, Diff[T]{OpDelete, lastEquality})
				diffs[insPoint+1].Op = OpInsert

				equalities = equalities[:len(equalities)-1]
				if len(equalities) > 0 {
					equalities = equalities[:len(equalities)-1]
				}
				if len(equalities) > 0 {
					pointer = equalities[len(equalities)-1]
				} else {
					pointer = -1
				}

				lenInsertions1, lenDeletions1 = 0, 0
				lenInsertions2, lenDeletions2 = 0, 0
				lastEquality = nil
				changes = true
			}
		}
		pointer++
	}

	if changes {
		diffs = dmp.DiffCleanupMerge(diffs)
	}
	diffs = dmp.DiffCleanupSemanticLossless(diffs)

	pointer = 1
	for pointer < len(diffs) {
		if diffs[pointer-1].Op == OpDelete && diffs[pointer].Op == OpInsert {
			deletion := diffs[pointer-1].Symbols
			insertion := diffs[pointer].Symbols
			overlap1 := dmp.DiffCommonOverlap(deletion, insertion)
			overlap2 := dmp.DiffCommonOverlap(insertion, deletion)
			if overlap1 >= overlap2 {
				if overlap1*2 >= len(deletion) || overlap1*2 >= len(insertion) {
					diffs = spliceDiffs(diffs, pointer, 0, Diff[T]{OpEqual, insertion[:overlap1]})
					diffs[pointer-1].Symbols = deletion[:len(deletion)-overlap1]
					diffs[pointer+1].Symbols = insertion[overlap1:]
					pointer++
				}
			} else {
				if overlap2*2 >= len(deletion) || overlap2*2 >= len(insertion) {
					diffs = spliceDiffs(diffs, pointer, 0, Diff[T]{OpEqual, deletion[:overlap2]})
					diffs[pointer-1].Op = OpInsert
					diffs[pointer-1].Symbols = insertion[:len(insertion)-overlap2]
					diffs[pointer+1].Op = OpDelete
					diffs[pointer+1].Symbols = deletion[overlap2:]
					pointer++
				}
			}
			pointer++
		}
		pointer++
	}

	return diffs
}

// DiffCleanupSemanticLossless looks for a single edit surrounded on both
// sides by equalities and slides it sideways, symbol by symbol, to the
// position with the best combined symbol.SequenceBoundaryScore, so the edit lands
// on a natural boundary (word, sentence, line) instead of mid-token.
func (dmp *DMP[T]) DiffCleanupSemanticLossless(diffs []Diff[T]) []Diff[T] {
	pointer := 1
	for pointer < len(diffs)-1 {
		if diffs[pointer-1].Op == OpEqual && diffs[pointer+1].Op == OpEqual {
			equality1 := diffs[pointer-1].Symbols
			edit := diffs[pointer].Symbols
			equality2 := diffs[pointer+1].Symbols

			commonOffset := dmp.DiffCommonSuffix(equality1, edit)
			if commonOffset > 0 {
				commonSeq := edit[len(edit)-commonOffset:]
				equality1 = equality1[:len(equality1)-commonOffset]
				edit = symbol.Concat(commonSeq, edit[:len(edit)-commonOffset])
				equality2 = symbol.Concat(commonSeq, equality2)
			}

			bestEquality1, bestEdit, bestEquality2 := equality1, edit, equality2
			bestScore := symbol.SequenceBoundaryScore(equality1, edit) + symbol.SequenceBoundaryScore(edit, equality2)

			for len(edit) != 0 && len(equality2) != 0 && edit[0].Equal(equality2[0]) {
				equality1 = append(append(symbol.Sequence[T]{}, equality1...), edit[0])
				edit = symbol.Concat(edit[1:], equality2[:1])
				equality2 = equality2[1:]
				score := symbol.SequenceBoundaryScore(equality1, edit) + symbol.SequenceBoundaryScore(edit, equality2)
				if score >= bestScore {
					bestScore = score
					bestEquality1, bestEdit, bestEquality2 = equality1, edit, equality2
				}
			}

			if !bestEquality1.Equal(diffs[pointer-1].Symbols) {
				if len(bestEquality1) != 0 {
					diffs[pointer-1].Symbols = bestEquality1
				} else {
					diffs = spliceDiffs(diffs, pointer-1, 1)
					pointer--
				}
				diffs[pointer].Symbols = bestEdit
				if len(bestEquality2) != 0 {
					diffs[pointer+1].Symbols = bestEquality2
				} else {
					diffs = spliceDiffs(diffs, pointer+1, 1)
					pointer--
				}
			}
		}
		pointer++
	}
	return diffs
}

// DiffCleanupEfficiency reduces the number of edits, at the possible cost
// of diff minimality, by eliminating equalities whose symbol span is too
// short to be worth an operation boundary, per DiffEditCost.
func (dmp *DMP[T]) DiffCleanupEfficiency(diffs []Diff[T]) []Diff[T] {
	changes := false
	var equalities []int
	var lastEquality symbol.Sequence[T]
	pointer := 0
	preIns, preDel, postIns, postDel := false, false, false, false

	for pointer < len(diffs) {
		if diffs[pointer].Op == OpEqual {
			if len(diffs[pointer].Symbols) < dmp.DiffEditCost && (postIns || postDel) {
				equalities = append(equalities, pointer)
				preIns, preDel = postIns, postDel
				lastEquality = diffs[pointer].Symbols
			} else {
				equalities = nil
				lastEquality = nil
			}
			postIns, postDel = false, false
		} else {
			if diffs[pointer].Op == OpDelete {
				postDel = true
			} else {
				postIns = true
			}

			sumPres := 0
			for _, v := range []bool{preIns, preDel, postIns, postDel} {
				if v {
					sumPres++
				}
			}
			if len(lastEquality) > 0 &&
				((preIns && preDel && postIns && postDel) ||
					(len(lastEquality) < dmp.DiffEditCost/2 && sumPres == 3)) {
				insPoint := equalities[len(equalities)-1]
				diffs = spliceDiffs(diffs, insPoint, 0, Diff[T]{OpDelete, lastEquality})
				diffs[insPoint+1].Op = OpInsert

				equalities = equalities[:len(equalities)-1]
				lastEquality = nil

				if preIns && preDel {
					postIns, postDel = true, true
					equalities = nil
				} else {
					if len(equalities) > 0 {
						equalities = equalities[:len(equalities)-1]
					}
					if len(equalities) > 0 {
						pointer = equalities[len(equalities)-1]
					} else {
						pointer = -1
					}
					postIns, postDel = false, false
				}
				changes = true
			}
		}
		pointer++
	}

	if changes {
		diffs = dmp.DiffCleanupMerge(diffs)
	}
	return diffs
}

// DiffCleanupMerge reorders and merges like-typed adjacent diffs, factors
// common affixes out of a co-located delete/insert pair into the
// neighboring equality, and then sweeps for single edits that can slide
// across an equality to eliminate it outright. Idempotent: a second call
// on its own output is a no-op.
func (dmp *DMP[T]) DiffCleanupMerge(diffs []Diff[T]) []Diff[T] {
	diffs = append(diffs, Diff[T]{OpEqual, nil})
	pointer := 0
	countDelete, countInsert := 0, 0
	var textDelete, textInsert symbol.Sequence[T]

	for pointer < len(diffs) {
		switch diffs[pointer].Op {
		case OpInsert:
			countInsert++
			textInsert = append(textInsert, diffs[pointer].Symbols...)
			pointer++
		case OpDelete:
			countDelete++
			textDelete = append(textDelete, diffs[pointer].Symbols...)
			pointer++
		case OpEqual:
			if countDelete+countInsert > 1 {
				if countDelete != 0 && countInsert != 0 {
					commonLen := dmp.DiffCommonPrefix(textInsert, textDelete)
					if commonLen != 0 {
						x := pointer - countDelete - countInsert
						if x > 0 && diffs[x-1].Op == OpEqual {
							diffs[x-1].Symbols = symbol.Concat(diffs[x-1].Symbols, textInsert[:commonLen])
						} else {
							diffs = append([]Diff[T]{{OpEqual, textInsert[:commonLen]}}, diffs...)
							pointer++
						}
						textInsert = textInsert[commonLen:]
						textDelete = textDelete[commonLen:]
					}
					commonLen = dmp.DiffCommonSuffix(textInsert, textDelete)
					if commonLen != 0 {
						insIdx := len(textInsert) - commonLen
						delIdx := len(textDelete) - commonLen
						diffs[pointer].Symbols = symbol.Concat(textInsert[insIdx:], diffs[pointer].Symbols)
						textInsert = textInsert[:insIdx]
						textDelete = textDelete[:delIdx]
					}
				}
				switch {
				case countDelete == 0:
					diffs = spliceDiffs(diffs, pointer-countInsert, countDelete+countInsert, Diff[T]{OpInsert, textInsert})
				case countInsert == 0:
					diffs = spliceDiffs(diffs, pointer-countDelete, countDelete+countInsert, Diff[T]{OpDelete, textDelete})
				default:
					diffs = spliceDiffs(diffs, pointer-countDelete-countInsert, countDelete+countInsert,
						Diff[T]{OpDelete, textDelete}, Diff[T]{OpInsert, textInsert})
				}

				pointer = pointer - countDelete - countInsert + 1
				if countDelete != 0 {
					pointer++
				}
				if countInsert != 0 {
					pointer++
				}
			} else if pointer != 0 && diffs[pointer-1].Op == OpEqual {
				diffs[pointer-1].Symbols = symbol.Concat(diffs[pointer-1].Symbols, diffs[pointer].Symbols)
				diffs = append(diffs[:pointer], diffs[pointer+1:]...)
			} else {
				pointer++
			}
			countInsert, countDelete = 0, 0
			textDelete, textInsert = nil, nil
		}
	}

	if len(diffs[len(diffs)-1].Symbols) == 0 {
		diffs = diffs[:len(diffs)-1]
	}

	changes := false
	pointer = 1
	for pointer < len(diffs)-1 {
		if diffs[pointer-1].Op == OpEqual && diffs[pointer+1].Op == OpEqual {
			if diffs[pointer].Symbols.HasSuffix(diffs[pointer-1].Symbols) {
				prevLen := len(diffs[pointer-1].Symbols)
				diffs[pointer].Symbols = symbol.Concat(diffs[pointer-1].Symbols, diffs[pointer].Symbols[:len(diffs[pointer].Symbols)-prevLen])
				diffs[pointer+1].Symbols = symbol.Concat(diffs[pointer-1].Symbols[:prevLen], diffs[pointer+1].Symbols)
				diffs = spliceDiffs(diffs, pointer-1, 1)
				changes = true
			} else if diffs[pointer].Symbols.HasPrefix(diffs[pointer+1].Symbols) {
				nextLen := len(diffs[pointer+1].Symbols)
				diffs[pointer-1].Symbols = symbol.Concat(diffs[pointer-1].Symbols, diffs[pointer+1].Symbols)
				diffs[pointer].Symbols = symbol.Concat(diffs[pointer].Symbols[nextLen:], diffs[pointer+1].Symbols)
				diffs = spliceDiffs(diffs, pointer+1, 1)
				changes = true
			}
		}
		pointer++
	}

	if changes {
		diffs = dmp.DiffCleanupMerge(diffs)
	}
	return diffs
}
