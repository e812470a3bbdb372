package symbol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/csga5000/HtmlDiffFormatter/symbol"
)

// textString lets plain strings satisfy symbol.Element for these tests.
type textString string

func (s textString) Text() string { return string(s) }

func TestBoundaryScoreRange(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		a, b textString
		want int
	}{
		{"blank line", "foo\n\n", "bar", 5},
		{"blank line start", "foo", "\n\nbar", 5},
		{"line break", "foo\n", "bar", 4},
		{"end of sentence", "foo.", " bar", 3},
		{"whitespace", "foo ", "bar", 2},
		{"non alphanumeric", "foo,", "bar", 1},
		{"plain", "foo", "bar", 0},
		{"empty left", "", "bar", 5},
		{"empty right", "foo", "", 5},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			got := symbol.BoundaryScore[textString](c.a, c.b)
			assert.Equal(t, c.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 5)
		})
	}
}

func TestSymbolEqual(t *testing.T) {
	t.Parallel()

	a := symbol.New[textString]("hi")
	b := symbol.New[textString]("hi")
	c := symbol.New[textString]("bye")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.Equal(t, "hi", a.Text())
}
