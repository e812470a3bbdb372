package htmldiff

import (
	"strings"

	"github.com/csga5000/HtmlDiffFormatter/diffmatchpatch"
	"github.com/csga5000/HtmlDiffFormatter/parser"
)

// voidTagNames is the fixed set of elements recognized as self-closing
// without needing a trailing "/", lower-cased for case-insensitive
// comparison against a parsed tag name.
var voidTagNames = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "command": true,
	"embed": true, "hr": true, "img": true, "input": true, "keygen": true,
	"link": true, "meta": true, "param": true, "source": true,
	"track": true, "wbr": true, "!doctype": true,
}

// flatten turns every symbol of every diff into a leaf DiffSeg carrying
// that symbol's text and the diff's operation, then classifies each as a
// comment, tag, or plain text. Comment detection takes priority over tag
// detection, matching parser.HTML's own tokenization priority.
func flatten(diffs []diffmatchpatch.Diff[parser.Chunk]) []*DiffSeg {
	var out []*DiffSeg
	for _, d := range diffs {
		for _, sym := range d.Symbols {
			out = append(out, classify(string(sym.Payload), d.Op))
		}
	}
	return out
}

func classify(text string, op diffmatchpatch.Op) *DiffSeg {
	seg := &DiffSeg{Text: text, Op: op}
	trimmed := strings.TrimSpace(text)

	switch {
	case strings.HasPrefix(trimmed, "<!--"):
		seg.IsTag = true
		seg.IsStartTag = true
		seg.SelfClosing = true
		seg.TagName = "!--"
	case strings.HasPrefix(trimmed, "<"):
		seg.IsTag = true
		body := trimmed[1:]
		seg.IsStartTag = !strings.HasPrefix(body, "/")
		if !seg.IsStartTag {
			body = body[1:]
		}
		seg.TagName = strings.ToLower(scanTagName(body))
		inner := strings.TrimSuffix(trimmed, ">")
		seg.SelfClosing = strings.HasSuffix(strings.TrimSpace(inner), "/") || voidTagNames[seg.TagName]
	default:
		// plain text, not a tag.
	}
	return seg
}

// scanTagName reads a tag's element name: everything from the start of
// body up to the first whitespace, "/", or ">".
func scanTagName(body string) string {
	for i := 0; i < len(body); i++ {
		switch c := body[i]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '/' || c == '>':
			return body[:i]
		}
	}
	return body
}
