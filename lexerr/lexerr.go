// Package lexerr contains the errors produced while tokenizing cicak source
// text. Every fault is reported as a SpannedError, which pairs a LexError with
// the Point in the source it was raised at. A LexError may wrap a more specific
// cause (a StringError, which may itself wrap a UnicodeEscapeError, or a
// NumberError), and the full chain of causes is rendered by
// SpannedError.FullMessage.
//
// All of the leaf variants are comparable values, so errors.Is can be called
// against the sentinel errors declared in this package, and errors.As can be
// used to pull a variant out of the chain to inspect its data.
package lexerr

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceTooLarge is the cause of a Runtime LexError returned when the
	// source text is too large for its positions to be tracked.
	ErrSourceTooLarge = errors.New("source text too large to track positions in")
)

// Sentinel values for use with errors.Is.
var (
	ErrUnterminatedString   = StringError{Kind: UnterminatedStringLiteral}
	ErrMissingOpeningBrace  = UnicodeEscapeError(MissingOpeningBrace)
	ErrMissingClosingBrace  = UnicodeEscapeError(MissingClosingBrace)
	ErrInvalidHexDigits     = UnicodeEscapeError(InvalidHexDigits)
	ErrTooManyDecimalPoints = NumberError(TooManyDecimalPoints)
)

// Point is a location in source text.
type Point struct {
	// Line is the 1-indexed line number.
	Line int

	// Column is the 0-indexed count of characters since the last newline. Tab
	// characters are counted as 4 columns wide.
	Column int
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// UnicodeEscapeError is a fault in a \u{...} escape sequence within a string
// literal.
type UnicodeEscapeError int

const (
	MissingOpeningBrace UnicodeEscapeError = iota + 1
	MissingClosingBrace
	InvalidHexDigits
)

func (e UnicodeEscapeError) Error() string {
	switch e {
	case MissingOpeningBrace:
		return "missing opening '{' in unicode escape"
	case MissingClosingBrace:
		return "missing closing '}' in unicode escape"
	case InvalidHexDigits:
		return "invalid hex digits in unicode escape"
	default:
		return fmt.Sprintf("UnicodeEscapeError(%d)", int(e))
	}
}

// StringErrorKind is the type of fault a StringError describes.
type StringErrorKind int

const (
	UnterminatedStringLiteral StringErrorKind = iota + 1
	UnknownEscape
	UnicodeEscape
)

// StringError is a fault within a quoted string literal.
type StringError struct {
	Kind StringErrorKind

	// Escape is the character following the backslash. Only set when Kind is
	// UnknownEscape.
	Escape rune

	// Unicode is the specific unicode escape fault. Only set when Kind is
	// UnicodeEscape.
	Unicode UnicodeEscapeError
}

func (e StringError) Error() string {
	switch e.Kind {
	case UnterminatedStringLiteral:
		return "unterminated string literal"
	case UnknownEscape:
		return fmt.Sprintf("unknown escape sequence: \\%c", e.Escape)
	case UnicodeEscape:
		return "malformed unicode escape sequence"
	default:
		return fmt.Sprintf("StringError(%d)", int(e.Kind))
	}
}

// Unwrap returns the UnicodeEscapeError the StringError wraps, or nil if it is
// not a UnicodeEscape error.
func (e StringError) Unwrap() error {
	if e.Kind == UnicodeEscape && e.Unicode != 0 {
		return e.Unicode
	}
	return nil
}

// Unknown returns a StringError for an unsupported escape character.
func Unknown(ch rune) StringError {
	return StringError{Kind: UnknownEscape, Escape: ch}
}

// Unicode returns a StringError wrapping the given unicode escape fault.
func Unicode(e UnicodeEscapeError) StringError {
	return StringError{Kind: UnicodeEscape, Unicode: e}
}

// NumberError is a fault within a numeric literal.
type NumberError int

const (
	TooManyDecimalPoints NumberError = iota + 1
)

func (e NumberError) Error() string {
	switch e {
	case TooManyDecimalPoints:
		return "too many decimal points in number"
	default:
		return fmt.Sprintf("NumberError(%d)", int(e))
	}
}

// Kind is the top-level category of a LexError.
type Kind int

const (
	KindString Kind = iota + 1
	KindNumber
	KindUnexpectedEOF
	KindUnexpectedChar
	KindRuntime
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindNumber:
		return "Number"
	case KindUnexpectedEOF:
		return "UnexpectedEndOfInput"
	case KindUnexpectedChar:
		return "UnexpectedCharacter"
	case KindRuntime:
		return "Runtime"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// LexError is the top-level error produced by the tokenizer. It is one of
// several kinds; String, Number, and Runtime errors wrap a more specific
// cause.
//
// LexError should not be created directly; use one of the constructor
// functions in this package.
type LexError struct {
	kind  Kind
	char  rune
	cause error
}

// String returns a LexError caused by a fault in a string literal.
func String(cause StringError) LexError {
	return LexError{kind: KindString, cause: cause}
}

// Number returns a LexError caused by a fault in a numeric literal.
func Number(cause NumberError) LexError {
	return LexError{kind: KindNumber, cause: cause}
}

// UnexpectedEOF returns a LexError for input that ended in the middle of a
// construct.
func UnexpectedEOF() LexError {
	return LexError{kind: KindUnexpectedEOF}
}

// UnexpectedChar returns a LexError for a character that cannot start any
// token.
func UnexpectedChar(ch rune) LexError {
	return LexError{kind: KindUnexpectedChar, char: ch}
}

// Runtime returns a LexError for a fault in the tokenizer environment rather
// than in the input text.
func Runtime(cause error) LexError {
	return LexError{kind: KindRuntime, cause: cause}
}

// Kind returns the category of the error.
func (e LexError) Kind() Kind {
	return e.kind
}

// Char returns the offending character of an UnexpectedCharacter error. It
// returns 0 for all other kinds.
func (e LexError) Char() rune {
	return e.char
}

// Error returns the message for this error only, not including that of its
// cause.
func (e LexError) Error() string {
	switch e.kind {
	case KindString, KindNumber:
		return "an error occurred during lexing (see causes)"
	case KindUnexpectedEOF:
		return "unexpected end of input"
	case KindUnexpectedChar:
		return fmt.Sprintf("unexpected character %q", e.char)
	case KindRuntime:
		return "runtime fault during lexing"
	default:
		return fmt.Sprintf("LexError(%d)", int(e.kind))
	}
}

// Unwrap gives the cause of the LexError, if it has one.
func (e LexError) Unwrap() error {
	return e.cause
}
