package htmldiff

import "github.com/csga5000/HtmlDiffFormatter/diffmatchpatch"

// Formatter turns one span of same-operation text into its marked-up
// form. It is a plain function rather than a single-method interface,
// matching parser's own function-typed parsers/readers - there is
// exactly one concrete implementation callers need by default
// (DefaultFormatter), and a function value is trivial to swap out for
// testing or for a caller's own styling.
type Formatter func(text string, op diffmatchpatch.Op) string

// DefaultFormatter wraps deleted text in a line-through red <del> and
// inserted text in an underlined green <ins>, leaving equal text
// untouched. It never escapes text: a span handed to it may be literal
// document text, but it may equally be the raw markup of an entire
// inserted or deleted subtree (e.g. "<b>word</b>"), and escaping that
// would turn valid tags into literal "&lt;b&gt;" text - breaking the
// well-formedness Render otherwise guarantees. A caller whose text spans
// are never markup (only ever plain content) can wrap DefaultFormatter to
// add HTML-escaping itself.
func DefaultFormatter(text string, op diffmatchpatch.Op) string {
	switch op {
	case diffmatchpatch.OpDelete:
		return `<del style="text-decoration: line-through;color: red;">` + text + `</del>`
	case diffmatchpatch.OpInsert:
		return `<ins style="text-decoration: underline;color: green;">` + text + `</ins>`
	default:
		return text
	}
}

// uniformOp reports the single operation seg's entire subtree (seg plus
// every descendant) shares, if it shares one.
func uniformOp(seg *DiffSeg) (diffmatchpatch.Op, bool) {
	for _, c := range seg.children {
		op, ok := uniformOp(c)
		if !ok || op != seg.Op {
			return seg.Op, false
		}
	}
	return seg.Op, true
}

// rawText reconstructs the literal source markup of seg's entire
// subtree: its own text followed by every descendant's, in order. A
// synthesized end-tag contributes nothing, since it was never present in
// the source.
func rawText(seg *DiffSeg) string {
	if len(seg.children) == 0 {
		return seg.Text
	}
	var b []byte
	b = append(b, seg.Text...)
	for _, c := range seg.children {
		b = append(b, rawText(c)...)
	}
	return string(b)
}

// emit renders seg and its subtree, routing through f for every maximal
// same-operation span.
func emit(seg *DiffSeg, f Formatter) string {
	if op, uniform := uniformOp(seg); uniform {
		return f(rawText(seg), op)
	}

	// Mixed operations: seg is necessarily a container (a leaf's subtree
	// is always uniform), so its own opening tag text is emitted as-is
	// and each child is either folded into a coalesced run of the same
	// uniform operation or, if itself mixed, rendered recursively.
	var b []byte
	b = append(b, seg.Text...)
	i := 0
	for i < len(seg.children) {
		op, ok := uniformOp(seg.children[i])
		if !ok {
			b = append(b, emit(seg.children[i], f)...)
			i++
			continue
		}
		j := i + 1
		for j < len(seg.children) {
			nextOp, nextOK := uniformOp(seg.children[j])
			if !nextOK || nextOp != op {
				break
			}
			j++
		}
		var run []byte
		for k := i; k < j; k++ {
			run = append(run, rawText(seg.children[k])...)
		}
		b = append(b, f(string(run), op)...)
		i = j
	}
	return string(b)
}
