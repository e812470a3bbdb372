package diffmatchpatch

import (
	"context"
	"time"

	"github.com/csga5000/HtmlDiffFormatter/symbol"
)

// Diff is a single tagged chunk of a diff list: an operation paired with
// the symbols it applies to.
type Diff[T symbol.Element] struct {
	Op      Op
	Symbols symbol.Sequence[T]
}

// DiffMain finds an edit script that, applied to a, yields b. It runs
// under dmp.DiffTimeout; on deadline overrun it degrades to a single
// [DELETE a, INSERT b] pair rather than failing.
func (dmp *DMP[T]) DiffMain(a, b symbol.Sequence[T]) []Diff[T] {
	return dmp.DiffMainContext(context.Background(), a, b)
}

// DiffMainContext is DiffMain, additionally honoring ctx cancellation at
// the entrypoint. The recursive bisection itself still polls a monotonic
// wall-clock deadline the way the algorithm always has - threading
// ctx.Done() through every recursive call of a hot loop would dominate the
// profile for no benefit, since the deadline already bounds worst-case
// runtime.
func (dmp *DMP[T]) DiffMainContext(ctx context.Context, a, b symbol.Sequence[T]) []Diff[T] {
	if err := ctx.Err(); err != nil {
		return []Diff[T]{{OpDelete, a}, {OpInsert, b}}
	}
	deadline := dmp.deadline()
	return dmp.diffMain(ctx, a, b, true, deadline)
}

// deadline returns the absolute time diff_main must stop by, or the zero
// Time if DiffTimeout disables the deadline.
func (dmp *DMP[T]) deadline() time.Time {
	if dmp.DiffTimeout <= 0 {
		return time.Time{}
	}
	return time.Now().Add(dmp.DiffTimeout)
}

func deadlineExceeded(deadline time.Time) bool {
	return !deadline.IsZero() && time.Now().After(deadline)
}

func (dmp *DMP[T]) diffMain(ctx context.Context, a, b symbol.Sequence[T], checklines bool, deadline time.Time) []Diff[T] {
	if a.Equal(b) {
		if len(a) > 0 {
			return []Diff[T]{{OpEqual, a}}
		}
		return nil
	}

	commonPrefix := dmp.DiffCommonPrefix(a, b)
	prefix := a[:commonPrefix]
	a = a[commonPrefix:]
	b = b[commonPrefix:]

	commonSuffix := dmp.DiffCommonSuffix(a, b)
	suffix := a[len(a)-commonSuffix:]
	a = a[:len(a)-commonSuffix]
	b = b[:len(b)-commonSuffix]

	diffs := dmp.diffCompute(ctx, a, b, checklines, deadline)

	var result []Diff[T]
	if len(prefix) > 0 {
		result = append(result, Diff[T]{OpEqual, prefix})
	}
	result = append(result, diffs...)
	if len(suffix) > 0 {
		result = append(result, Diff[T]{OpEqual, suffix})
	}
	return dmp.DiffCleanupMerge(result)
}

// diffCompute finds the differences between a and b, which are assumed to
// share no common prefix or suffix.
func (dmp *DMP[T]) diffCompute(ctx context.Context, a, b symbol.Sequence[T], checklines bool, deadline time.Time) []Diff[T] {
	if len(a) == 0 {
		return []Diff[T]{{OpInsert, b}}
	}
	if len(b) == 0 {
		return []Diff[T]{{OpDelete, a}}
	}

	long, short := b, a
	op, longIsA := OpInsert, false
	if len(a) > len(b) {
		long, short = a, b
		op, longIsA = OpDelete, true
	}

	if i := long.Index(short, 0); i != -1 {
		var diffs []Diff[T]
		if i > 0 {
			diffs = append(diffs, Diff[T]{op, long[:i]})
		}
		diffs = append(diffs, Diff[T]{OpEqual, short})
		if i+len(short) < len(long) {
			diffs = append(diffs, Diff[T]{op, long[i+len(short):]})
		}
		_ = longIsA
		return diffs
	}

	if len(short) == 1 {
		return []Diff[T]{{OpDelete, a}, {OpInsert, b}}
	}

	if hm := dmp.diffHalfMatch(a, b); hm != nil {
		diffsHead := dmp.diffMain(ctx, hm.aHead, hm.bHead, checklines, deadline)
		diffsTail := dmp.diffMain(ctx, hm.aTail, hm.bTail, checklines, deadline)
		out := make([]Diff[T], 0, len(diffsHead)+1+len(diffsTail))
		out = append(out, diffsHead...)
		out = append(out, Diff[T]{OpEqual, hm.mid})
		out = append(out, diffsTail...)
		return out
	}

	if checklines && len(a) > 100 && len(b) > 100 {
		return dmp.diffLineMode(ctx, a, b, deadline)
	}

	return dmp.diffBisect(ctx, a, b, deadline)
}

// diffBisect finds the middle snake of the edit graph between a and b
// (Myers 1986, "An O(ND) Difference Algorithm and Its Variations"), splits
// the problem at that point, and returns the recursively constructed diff.
func (dmp *DMP[T]) diffBisect(ctx context.Context, a, b symbol.Sequence[T], deadline time.Time) []Diff[T] {
	aLen, bLen := len(a), len(b)
	maxD := (aLen + bLen + 1) / 2
	vOffset := maxD
	vLen := 2 * maxD
	v1 := make([]int, vLen)
	v2 := make([]int, vLen)
	for i := range v1 {
		v1[i] = -1
		v2[i] = -1
	}
	v1[vOffset+1] = 0
	v2[vOffset+1] = 0

	delta := aLen - bLen
	front := delta%2 != 0

	k1start, k1end, k2start, k2end := 0, 0, 0, 0
	for d := 0; d < maxD; d++ {
		if deadlineExceeded(deadline) {
			break
		}

		for k1 := -d + k1start; k1 <= d-k1end; k1 += 2 {
			k1Offset := vOffset + k1
			var x1 int
			if k1 == -d || (k1 != d && v1[k1Offset-1] < v1[k1Offset+1]) {
				x1 = v1[k1Offset+1]
			} else {
				x1 = v1[k1Offset-1] + 1
			}
			y1 := x1 - k1
			for x1 < aLen && y1 < bLen && a[x1].Equal(b[y1]) {
				x1++
				y1++
			}
			v1[k1Offset] = x1
			switch {
			case x1 > aLen:
				k1end += 2
			case y1 > bLen:
				k1start += 2
			case front:
				k2Offset := vOffset + delta - k1
				if k2Offset >= 0 && k2Offset < vLen && v2[k2Offset] != -1 {
					x2 := aLen - v2[k2Offset]
					if x1 >= x2 {
						return dmp.diffBisectSplit(ctx, a, b, x1, y1, deadline)
					}
				}
			}
		}

		for k2 := -d + k2start; k2 <= d-k2end; k2 += 2 {
			k2Offset := vOffset + k2
			var x2 int
			if k2 == -d || (k2 != d && v2[k2Offset-1] < v2[k2Offset+1]) {
				x2 = v2[k2Offset+1]
			} else {
				x2 = v2[k2Offset-1] + 1
			}
			y2 := x2 - k2
			for x2 < aLen && y2 < bLen && a[aLen-x2-1].Equal(b[bLen-y2-1]) {
				x2++
				y2++
			}
			v2[k2Offset] = x2
			switch {
			case x2 > aLen:
				k2end += 2
			case y2 > bLen:
				k2start += 2
			case !front:
				k1Offset := vOffset + delta - k2
				if k1Offset >= 0 && k1Offset < vLen && v1[k1Offset] != -1 {
					x1 := v1[k1Offset]
					y1 := vOffset + x1 - k1Offset
					mirroredX2 := aLen - x2
					if x1 >= mirroredX2 {
						return dmp.diffBisectSplit(ctx, a, b, x1, y1, deadline)
					}
				}
			}
		}
	}

	// No commonality at all, or the deadline was hit.
	if deadlineExceeded(deadline) {
		dmp.logger().Debug("diffBisect: deadline exceeded, returning trivial diff")
	}
	return []Diff[T]{{OpDelete, a}, {OpInsert, b}}
}

func (dmp *DMP[T]) diffBisectSplit(ctx context.Context, a, b symbol.Sequence[T], x, y int, deadline time.Time) []Diff[T] {
	aHead, aTail := a[:x], a[x:]
	bHead, bTail := b[:y], b[y:]
	diffsHead := dmp.diffMain(ctx, aHead, bHead, false, deadline)
	diffsTail := dmp.diffMain(ctx, aTail, bTail, false, deadline)
	out := make([]Diff[T], 0, len(diffsHead)+len(diffsTail))
	out = append(out, diffsHead...)
	out = append(out, diffsTail...)
	return out
}

type halfMatch[T symbol.Element] struct {
	aHead, aTail, bHead, bTail, mid symbol.Sequence[T]
}

// diffHalfMatch checks whether a and b share a common substring at least
// half the length of the longer of the two, which lets diffCompute split
// the problem in two instead of bisecting the whole thing. Disabled when
// the timeout is disabled, since it can produce a non-minimal diff.
func (dmp *DMP[T]) diffHalfMatch(a, b symbol.Sequence[T]) *halfMatch[T] {
	if dmp.DiffTimeout <= 0 {
		return nil
	}

	long, short := b, a
	aIsLong := false
	if len(a) > len(b) {
		long, short = a, b
		aIsLong = true
	}
	if len(long) < 4 || len(short)*2 < len(long) {
		return nil
	}

	hm1 := dmp.diffHalfMatchAt(long, short, (len(long)+3)/4)
	hm2 := dmp.diffHalfMatchAt(long, short, (len(long)+1)/2)

	var hm *rawHalfMatch[T]
	switch {
	case hm1 == nil && hm2 == nil:
		return nil
	case hm2 == nil:
		hm = hm1
	case hm1 == nil:
		hm = hm2
	case len(hm1.mid) > len(hm2.mid):
		hm = hm1
	default:
		hm = hm2
	}

	if aIsLong {
		return &halfMatch[T]{hm.longHead, hm.longTail, hm.shortHead, hm.shortTail, hm.mid}
	}
	return &halfMatch[T]{hm.shortHead, hm.shortTail, hm.longHead, hm.longTail, hm.mid}
}

type rawHalfMatch[T symbol.Element] struct {
	longHead, longTail, shortHead, shortTail, mid symbol.Sequence[T]
}

// diffHalfMatchAt checks whether a 1/4-length seed of long, taken starting
// at i, also occurs in short, and if so whether growing that seed yields a
// common substring at least half the length of long.
func (dmp *DMP[T]) diffHalfMatchAt(long, short symbol.Sequence[T], i int) *rawHalfMatch[T] {
	seed := long[i : i+len(long)/4]

	var best rawHalfMatch[T]
	bestLen := 0

	j := short.Index(seed, 0)
	for j != -1 {
		prefixLen := dmp.DiffCommonPrefix(long[i:], short[j:])
		suffixLen := dmp.DiffCommonSuffix(long[:i], short[:j])
		if bestLen < suffixLen+prefixLen {
			bestLen = suffixLen + prefixLen
			best = rawHalfMatch[T]{
				longHead:  long[:i-suffixLen],
				longTail:  long[i+prefixLen:],
				shortHead: short[:j-suffixLen],
				shortTail: short[j+prefixLen:],
				mid:       symbol.Concat(short[j-suffixLen : j], short[j:j+prefixLen]),
			}
		}
		j = short.Index(seed, j+1)
	}

	if bestLen*2 >= len(long) {
		return &best
	}
	return nil
}
