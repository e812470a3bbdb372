package htmldiff

// buildForest groups a flat segment list into a forest of DiffSegs: every
// start-tag consumes following segments as its children up to its
// matching end-tag, recursively. A stray end-tag with no open start-tag
// anywhere in scope is left as a bare leaf rather than discarded.
func buildForest(flat []*DiffSeg) []*DiffSeg {
	var roots []*DiffSeg
	i := 0
	for i < len(flat) {
		nodes, next := buildNodes(flat, i)
		roots = append(roots, nodes...)
		if next >= len(flat) {
			break
		}
		roots = append(roots, flat[next])
		i = next + 1
	}
	return roots
}

// buildNodes collects siblings starting at flat[start] until it runs out
// of input or hits an end-tag, which it reports back to its caller
// without consuming - the caller is the one that knows whether that
// end-tag is the one it's waiting for.
func buildNodes(flat []*DiffSeg, start int) ([]*DiffSeg, int) {
	var nodes []*DiffSeg
	i := start
	for i < len(flat) {
		seg := flat[i]

		if seg.IsTag && !seg.IsStartTag {
			return nodes, i
		}

		if seg.IsContainer() {
			children, next := buildNodes(flat, i+1)
			if next < len(flat) && flat[next].TagName == seg.TagName {
				endTag := flat[next]
				children = append(children, endTag)
				seg.Op = endTag.Op
				seg.children = children
				i = next + 1
			} else {
				seg.children = append(children, synthesizedEndTag(seg))
				i = next
			}
			nodes = append(nodes, seg)
			continue
		}

		nodes = append(nodes, seg)
		i++
	}
	return nodes, i
}

// synthesizedEndTag stands in for a missing closing tag, either because
// the source document never closed the element or because the nearest
// end-tag in the flat stream turned out to belong to an enclosing
// element instead. It carries the parent's operation and no source text,
// since it never appeared in the original markup.
func synthesizedEndTag(parent *DiffSeg) *DiffSeg {
	return &DiffSeg{
		IsTag:       true,
		IsStartTag:  false,
		TagName:     parent.TagName,
		Op:          parent.Op,
		Synthesized: true,
	}
}
