// Package lex converts cicak source text into tokens.
//
// Tokenize makes a single left-to-right pass over the source. Each character
// read is classified and produces exactly one token, with runs of whitespace,
// runs of line breaks, numbers, identifiers, and quoted strings each being
// consumed whole by a dedicated sub-scanner. The first fault found stops the
// scan; it is returned as a *lexerr.SpannedError giving the position of the
// offending character.
package lex

import (
	"math"

	"github.com/dekarrin/cicak/lexerr"
)

// maxSourceLen is the largest source, in bytes, whose positions are
// guaranteed to fit in an int. The worst case is a source made entirely of
// tabs.
const maxSourceLen = math.MaxInt / TabWidth

var punctuation = map[rune]Token{
	'/': Tok(Slash),
	';': Tok(Semicolon),
	':': Tok(Colon),
	',': Tok(Comma),
	'.': Tok(Dot),
	'@': Tok(At),
	'=': Tok(Equal),
	'+': Tok(Plus),
	'-': Tok(Minus),
	'<': Compare(Left),
	'>': Compare(Right),
	'{': Delim(Curly, Open),
	'}': Delim(Curly, Closed),
	'[': Delim(Square, Open),
	']': Delim(Square, Closed),
}

// Tokenize reads all tokens from src. If src contains no tokens, the returned
// slice is nil. If a fault is found, no tokens are returned and the error is a
// *lexerr.SpannedError wrapping a lexerr.LexError.
//
// Lexemes of the returned tokens share memory with src.
func Tokenize(src string) ([]Token, error) {
	if len(src) > maxSourceLen {
		return nil, lexerr.Span(lexerr.Runtime(lexerr.ErrSourceTooLarge), lexerr.Point{Line: 1})
	}

	var tokens []Token

	c := NewCursor(src)
	for {
		start := c.Offset()
		pos := c.Pos()

		ch, ok := c.Next()
		if !ok {
			break
		}

		var tok Token

		if punc, isPunc := punctuation[ch]; isPunc {
			tok = punc
		} else {
			var err error

			switch {
			case ch == '"':
				tok, err = scanString(c)
			case ch == ' ' || ch == '\t':
				scanRun(c, isSpace)
				tok = Tok(Spaces)
			case ch == '\r' || ch == '\n':
				scanRun(c, isNewline)
				tok = Tok(Newlines)
			case isDigit(ch):
				tok, err = scanNumber(c, start)
			case ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z'):
				tok = scanIdent(c, start)
			default:
				err = c.SpanLast(lexerr.UnexpectedChar(ch))
			}

			if err != nil {
				return nil, err
			}
		}

		tok.Start = start
		tok.End = c.Offset()
		tok.Lexeme = c.Slice(tok.Start, tok.End)
		tok.Pos = pos
		tokens = append(tokens, tok)
	}

	return tokens, nil
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t'
}

func isNewline(ch rune) bool {
	return ch == '\r' || ch == '\n'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

// scanRun consumes characters for as long as they match.
func scanRun(c *Cursor, match func(rune) bool) {
	for {
		ch, ok := c.Peek()
		if !ok || !match(ch) {
			return
		}
		c.Next()
	}
}
