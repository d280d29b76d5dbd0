package lex

import (
	"unicode/utf8"

	"github.com/dekarrin/cicak/lexerr"
)

// TabWidth is the number of columns a tab character advances the column by.
const TabWidth = 4

// Tracker tracks how much of its content has been consumed and the line and
// column of the next unconsumed character. Line and column are kept up to date
// as each character is consumed; Rescan can be used to recompute them from the
// start of the content.
type Tracker struct {
	content string

	// number of characters consumed.
	index int

	// number of bytes consumed.
	offset int

	line   int
	column int
}

// NewTracker creates a Tracker at the start of content.
func NewTracker(content string) *Tracker {
	return &Tracker{
		content: content,
		line:    1,
	}
}

// Increment records that ch, which is size bytes long in the content, has
// been consumed.
func (t *Tracker) Increment(ch rune, size int) {
	t.index++
	t.offset += size

	if ch == '\n' {
		t.line++
		t.column = 0
	} else if ch == '\t' {
		t.column += TabWidth
	} else {
		t.column++
	}
}

// Index returns the number of characters consumed so far.
func (t *Tracker) Index() int {
	return t.index
}

// Offset returns the number of bytes consumed so far.
func (t *Tracker) Offset() int {
	return t.offset
}

// Content returns the full text being tracked.
func (t *Tracker) Content() string {
	return t.content
}

// Point returns the position of the next unconsumed character.
func (t *Tracker) Point() lexerr.Point {
	return lexerr.Point{Line: t.line, Column: t.column}
}

// Rescan computes the position of the next unconsumed character by reading
// the content from its start. It always gives the same result as Point but
// takes time proportional to the number of consumed characters.
func (t *Tracker) Rescan() lexerr.Point {
	p := lexerr.Point{Line: 1}

	count := 0
	for _, ch := range t.content {
		if count >= t.index {
			break
		}
		if ch == '\n' {
			p.Line++
			p.Column = 0
		} else {
			p.Column++
			if ch == '\t' {
				p.Column += TabWidth - 1
			}
		}
		count++
	}

	return p
}

// Cursor reads characters one at a time from source text with one character
// of lookahead. Positions of consumed characters are tracked with a Tracker.
//
// Cursor should not be used directly; call NewCursor to create one.
type Cursor struct {
	pt   *Tracker
	last lexerr.Point
}

// NewCursor creates a Cursor at the start of src.
func NewCursor(src string) *Cursor {
	pt := NewTracker(src)
	return &Cursor{
		pt:   pt,
		last: pt.Point(),
	}
}

// Next consumes the next character and returns it. If at the end of input,
// ok will be false and nothing is consumed.
func (c *Cursor) Next() (ch rune, ok bool) {
	ch, size := c.decode()
	if size == 0 {
		return 0, false
	}

	c.last = c.pt.Point()
	c.pt.Increment(ch, size)
	return ch, true
}

// Peek returns the next character without consuming it. If at the end of
// input, ok will be false.
func (c *Cursor) Peek() (ch rune, ok bool) {
	ch, size := c.decode()
	return ch, size > 0
}

func (c *Cursor) decode() (rune, int) {
	// invalid UTF-8 decodes as utf8.RuneError of width 1 so that every byte
	// is still consumed exactly once.
	return utf8.DecodeRuneInString(c.pt.content[c.pt.offset:])
}

// Pos returns the position of the next unconsumed character, or of the end of
// input if everything has been consumed.
func (c *Cursor) Pos() lexerr.Point {
	return c.pt.Point()
}

// Last returns the position of the most recently consumed character. Before
// anything has been consumed it is the start of input.
func (c *Cursor) Last() lexerr.Point {
	return c.last
}

// Offset returns the byte offset of the next unconsumed character.
func (c *Cursor) Offset() int {
	return c.pt.offset
}

// Slice returns the source text from byte offset start up to but not
// including byte offset end. The returned string shares memory with the
// source.
func (c *Cursor) Slice(start, end int) string {
	return c.pt.content[start:end]
}

// SpanNext returns err spanned at the position of the next unconsumed
// character. It must be called before anything further is consumed.
func (c *Cursor) SpanNext(err error) *lexerr.SpannedError {
	return lexerr.Span(err, c.Pos())
}

// SpanLast returns err spanned at the position of the most recently consumed
// character. It must be called before anything further is consumed.
func (c *Cursor) SpanLast(err error) *lexerr.SpannedError {
	return lexerr.Span(err, c.Last())
}
