// Package parser turns strings into symbol.Sequence values and back.
//
// A parser is a plain function, string -> symbol.Sequence[T]; a reader is a
// plain function, symbol.Sequence[T] -> string. Both are functions rather
// than single-method interfaces because there is exactly one concrete
// reader per symbol kind here - an interface would add a vtable
// indirection for no benefit.
package parser

import (
	"unicode"

	"github.com/csga5000/HtmlDiffFormatter/symbol"
)

// Rune is the payload type for the Character parser: one symbol per Unicode
// code point.
type Rune rune

// Text returns the single-character textual form of r.
func (r Rune) Text() string { return string(rune(r)) }

// Chunk is the payload type for every other built-in parser: an arbitrary
// string fragment (a line, a word, an HTML tag literal, a comment, a run of
// delimiter-separated text, ...).
type Chunk string

// Text returns c's textual form, which is c itself.
func (c Chunk) Text() string { return string(c) }

// Reader turns a symbol sequence back into a string. Every built-in reader
// in this package is exactly Read - symbols here always carry their own
// full textual form, so there is nothing a dedicated per-kind reader could
// do beyond joining - but the name documents the contract symbol parsers
// must uphold: parse then Read must reproduce the original input exactly.
func Read[T symbol.Element](seq symbol.Sequence[T]) string {
	return seq.Text()
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
