package diffmatchpatch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/csga5000/HtmlDiffFormatter/symbol"
)

// DiffToDelta encodes diffs as a compact, source-relative delta: each
// diff becomes one "=n", "-n", or "+text" token (n counting symbols, not
// bytes), tab-separated, with inserted text percent-escaped. Applying the
// delta against DiffText1(diffs) with DiffFromDelta reconstructs diffs
// exactly.
func (dmp *DMP[T]) DiffToDelta(diffs []Diff[T]) string {
	var b strings.Builder
	for _, d := range diffs {
		switch d.Op {
		case OpInsert:
			b.WriteByte('+')
			b.WriteString(encodeURIComponent(d.Symbols.Text()))
		case OpDelete:
			b.WriteByte('-')
			b.WriteString(strconv.Itoa(len(d.Symbols)))
		case OpEqual:
			b.WriteByte('=')
			b.WriteString(strconv.Itoa(len(d.Symbols)))
		}
		b.WriteByte('\t')
	}
	out := b.String()
	if len(out) != 0 {
		out = out[:len(out)-1]
	}
	return out
}

// DiffFromDelta reconstructs the diffs delta describes against text1. It
// needs parse to turn the decoded text of an insertion back into
// symbols of type T, since a delta only records an insertion's text, not
// its original symbol boundaries.
func (dmp *DMP[T]) DiffFromDelta(text1 symbol.Sequence[T], delta string, parse func(string) symbol.Sequence[T]) ([]Diff[T], error) {
	if delta == "" {
		return nil, nil
	}
	var diffs []Diff[T]
	pointer := 0
	for _, token := range strings.Split(delta, "\t") {
		if token == "" {
			continue
		}
		param := token[1:]
		switch token[0] {
		case '+':
			text, err := decodeURIComponent(param)
			if err != nil {
				return nil, err
			}
			diffs = append(diffs, Diff[T]{OpInsert, parse(text)})
		case '-', '=':
			n, err := strconv.Atoi(param)
			if err != nil {
				return nil, newError(InvalidInput, fmt.Sprintf("invalid length in delta token %q", token), err)
			}
			if n < 0 {
				return nil, newError(InvalidInput, fmt.Sprintf("negative length in delta token %q", token), nil)
			}
			if pointer+n > len(text1) {
				return nil, newError(InvalidInput, "delta span exceeds source text", nil)
			}
			span := text1[pointer : pointer+n]
			pointer += n
			if token[0] == '=' {
				diffs = append(diffs, Diff[T]{OpEqual, span})
			} else {
				diffs = append(diffs, Diff[T]{OpDelete, span})
			}
		default:
			return nil, newError(InvalidInput, fmt.Sprintf("invalid diff operator %q in delta", string(token[0])), nil)
		}
	}
	if pointer != len(text1) {
		return nil, newError(InvalidInput, "delta length does not match source text length", nil)
	}
	return diffs, nil
}
