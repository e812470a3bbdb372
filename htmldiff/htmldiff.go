// Package htmldiff renders the diff between two HTML documents as a third,
// syntactically valid HTML document that visually marks inserted and
// deleted regions.
//
// The hard part is not computing the diff - that is diffmatchpatch's job,
// run over the symbol stream parser.HTML produces. It is reconstructing a
// tree-shaped change set from that flat, tag-boundary-ignorant edit list,
// so markers never straddle a "<" or ">" and the result stays valid
// markup even when entire elements were inserted or deleted.
package htmldiff

import (
	"log/slog"

	"github.com/csga5000/HtmlDiffFormatter/diffmatchpatch"
	"github.com/csga5000/HtmlDiffFormatter/parser"
)

// Diff computes the diff between HTML documents a and b and renders it as
// a single HTML string using f. It is the library's main entry point:
// parse both documents with parser.HTML, diff the resulting symbol
// streams with dmp, reconstruct the tag tree, and emit.
//
// Every tag the reconstruction had to close on the source's behalf - an
// unterminated element, or one whose nearest end-tag turned out to belong
// to an enclosing element - is logged at Debug via dmp.Logger (or
// slog.Default() if dmp.Logger is nil), the same fallback diffmatchpatch
// itself uses for its own diagnostics.
func Diff(dmp *diffmatchpatch.DMP[parser.Chunk], a, b string, f Formatter) string {
	symA := parser.HTML(a)
	symB := parser.HTML(b)
	diffs := dmp.DiffMain(symA, symB)
	diffs = dmp.DiffCleanupSemantic(diffs)

	roots := Segments(diffs)
	logSynthesizedTags(dmp.Logger, roots)

	var out []byte
	for _, root := range roots {
		out = append(out, emit(root, f)...)
	}
	return string(out)
}

func logSynthesizedTags(logger *slog.Logger, segs []*DiffSeg) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, seg := range segs {
		for _, c := range seg.children {
			if c.Synthesized {
				logger.Debug("htmldiff: synthesized missing end tag", "tag", seg.TagName)
			}
		}
		logSynthesizedTags(logger, seg.children)
	}
}

// Render turns a diff list over HTML symbols directly into marked-up HTML,
// skipping Diff's own parse/diff step - useful for a caller that already
// has a diff list (e.g. from parser.HTML plus its own cleanup pipeline).
func Render(diffs []diffmatchpatch.Diff[parser.Chunk], f Formatter) string {
	roots := Segments(diffs)
	var out []byte
	for _, root := range roots {
		out = append(out, emit(root, f)...)
	}
	return string(out)
}

// Segments reconstructs the tag tree for diffs without rendering it,
// exposing the intermediate DiffSeg forest for callers that want to
// inspect or walk it directly instead of going straight to HTML text.
func Segments(diffs []diffmatchpatch.Diff[parser.Chunk]) []*DiffSeg {
	return buildForest(flatten(diffs))
}

// DiffSeg is one node of the reconstructed HTML diff tree: either a leaf
// (plain text, a self-closing tag, or a comment) or a container (a
// start-tag paired with its matching, possibly synthesized, end-tag).
//
// Non-tag segments never have children; IsContainer reports exactly the
// condition under which ChildSegments may return children.
type DiffSeg struct {
	// Text is the segment's raw source text: the literal tag/comment
	// text for a tag segment, or the literal content for a text
	// segment. A synthesized end-tag (see ChildSegments) has an empty
	// Text, since it never appeared in the source.
	Text string
	// Op is the operation this segment was produced under. For a
	// container, Op is overwritten by its end-tag's operation once the
	// end-tag is found, since the diff tends to attribute a closing tag
	// to whichever change happened to surround it.
	Op diffmatchpatch.Op
	// IsTag reports whether this segment is a tag or comment, as opposed
	// to plain text.
	IsTag bool
	// IsStartTag reports whether a tag segment opens (true) or closes
	// (false) an element. Meaningless for comments and text.
	IsStartTag bool
	// SelfClosing reports whether a tag segment is self-closing, either
	// because it ends "/>" or because its name is in the fixed
	// always-self-closing set (voidTagNames). Comments are always
	// self-closing.
	SelfClosing bool
	// TagName is the tag's element name, lower-cased, or "!--" for a
	// comment. Empty for plain text.
	TagName string
	// Synthesized reports whether this segment is a manufactured end-tag
	// standing in for one the source never closed - see
	// synthesizedEndTag.
	Synthesized bool

	// children backs ChildSegments; only ever populated when
	// IsContainer() is true.
	children []*DiffSeg
}

// IsContainer reports whether this segment is a non-self-closing start
// tag, the only shape of segment allowed to carry children.
func (d *DiffSeg) IsContainer() bool {
	return d.IsTag && d.IsStartTag && !d.SelfClosing
}

// ChildSegments returns d's children in document order, the final one
// always being the matching (possibly synthesized) end-tag. It reports a
// LogicError if d is not a container - reading children off a leaf is a
// programming mistake in the caller, not a malformed-input condition.
func (d *DiffSeg) ChildSegments() ([]*DiffSeg, error) {
	if !d.IsContainer() {
		return nil, newError(LogicError, "DiffSeg is not a container: it has no children")
	}
	return d.children, nil
}
