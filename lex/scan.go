package lex

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dekarrin/cicak/lexerr"
)

// maxHexDigits is the most hex digits a \u{...} escape may contain.
const maxHexDigits = 6

var simpleEscapes = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'0':  0,
	'"':  '"',
	'\'': '\'',
	'\\': '\\',
}

// scanIdent reads the rest of an identifier whose first character, at byte
// offset start, has already been consumed.
func scanIdent(c *Cursor, start int) Token {
	scanRun(c, func(ch rune) bool {
		return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
	})

	return Identifier(c.Slice(start, c.Offset()))
}

// scanNumber reads the rest of a number whose first digit, at byte offset
// start, has already been consumed.
func scanNumber(c *Cursor, start int) (Token, error) {
	var seenDot bool

	for {
		ch, ok := c.Peek()
		if !ok || !(isDigit(ch) || ch == '.') {
			break
		}
		if ch == '.' {
			if seenDot {
				return Token{}, c.SpanNext(lexerr.Number(lexerr.TooManyDecimalPoints))
			}
			seenDot = true
		}
		c.Next()
	}

	kind := Integer
	if seenDot {
		kind = Decimal
	}
	return Num(kind, c.Slice(start, c.Offset())), nil
}

// scanString reads the rest of a string literal whose opening quote has
// already been consumed, up to and including the closing quote.
func scanString(c *Cursor) (Token, error) {
	var sb strings.Builder

	for {
		ch, ok := c.Next()
		if !ok {
			return Token{}, c.SpanNext(lexerr.String(lexerr.ErrUnterminatedString))
		}

		switch ch {
		case '"':
			return Str(sb.String()), nil
		case '\\':
			escaped, ok := c.Next()
			if !ok {
				return Token{}, c.SpanNext(lexerr.UnexpectedEOF())
			}

			if escaped == 'u' {
				decoded, err := scanUnicodeEscape(c)
				if err != nil {
					return Token{}, err
				}
				sb.WriteRune(decoded)
			} else if decoded, known := simpleEscapes[escaped]; known {
				sb.WriteRune(decoded)
			} else {
				return Token{}, c.SpanLast(lexerr.String(lexerr.Unknown(escaped)))
			}
		default:
			sb.WriteRune(ch)
		}
	}
}

// scanUnicodeEscape reads the {HEX} part of a \u{HEX} escape and returns the
// character it encodes.
func scanUnicodeEscape(c *Cursor) (rune, error) {
	unicodeErr := func(e lexerr.UnicodeEscapeError) error {
		return lexerr.String(lexerr.Unicode(e))
	}

	if ch, ok := c.Peek(); !ok || ch != '{' {
		return 0, c.SpanNext(unicodeErr(lexerr.MissingOpeningBrace))
	}
	c.Next()

	digitsStart := c.Offset()
	digitsPos := c.Pos()

	for {
		ch, ok := c.Next()
		if !ok {
			return 0, c.SpanNext(unicodeErr(lexerr.InvalidHexDigits))
		}
		if ch == '}' {
			break
		}
		if ch == '"' {
			// the string ended before the escape did.
			return 0, c.SpanLast(unicodeErr(lexerr.MissingClosingBrace))
		}
		if !isHexDigit(ch) {
			return 0, c.SpanLast(unicodeErr(lexerr.InvalidHexDigits))
		}
	}

	// every char between the braces is an ASCII hex digit, so byte length is
	// the digit count.
	hex := c.Slice(digitsStart, c.Offset()-1)
	if len(hex) < 1 || len(hex) > maxHexDigits {
		return 0, lexerr.Span(unicodeErr(lexerr.InvalidHexDigits), digitsPos)
	}

	code, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || !utf8.ValidRune(rune(code)) {
		return 0, lexerr.Span(unicodeErr(lexerr.InvalidHexDigits), digitsPos)
	}

	return rune(code), nil
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}
