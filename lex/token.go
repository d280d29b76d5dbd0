package lex

import (
	"fmt"

	"github.com/dekarrin/cicak/lexerr"
)

// Class is the type of a Token.
type Class int

const (
	Slash Class = iota
	Semicolon
	Colon
	Comma
	Dot
	At
	Equal
	Plus
	Minus
	Delimiter
	Comparison
	Spaces
	Newlines
	Number
	Ident
	String
)

var classNames = map[Class]string{
	Slash:      "slash",
	Semicolon:  "semicolon",
	Colon:      "colon",
	Comma:      "comma",
	Dot:        "dot",
	At:         "at",
	Equal:      "equal",
	Plus:       "plus",
	Minus:      "minus",
	Delimiter:  "delimiter",
	Comparison: "comparison",
	Spaces:     "spaces",
	Newlines:   "newlines",
	Number:     "number",
	Ident:      "ident",
	String:     "string",
}

func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// BracketKind is the shape of a Delimiter token.
type BracketKind int

const (
	Square BracketKind = iota + 1
	Curly
)

func (bk BracketKind) String() string {
	switch bk {
	case Square:
		return "square"
	case Curly:
		return "curly"
	default:
		return fmt.Sprintf("BracketKind(%d)", int(bk))
	}
}

// DelimState is whether a Delimiter token opens or closes a group.
type DelimState int

const (
	Open DelimState = iota + 1
	Closed
)

func (ds DelimState) String() string {
	switch ds {
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("DelimState(%d)", int(ds))
	}
}

// Side is which way a Comparison token points.
type Side int

const (
	Left Side = iota + 1
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// NumberKind is whether a Number token has a decimal point.
type NumberKind int

const (
	Integer NumberKind = iota + 1
	Decimal
)

func (nk NumberKind) String() string {
	switch nk {
	case Integer:
		return "integer"
	case Decimal:
		return "decimal"
	default:
		return fmt.Sprintf("NumberKind(%d)", int(nk))
	}
}

// Token is a single lexical unit read from source text. Only the fields that
// apply to its Class are set.
type Token struct {
	Class Class

	// Bracket and State are set for Delimiter tokens.
	Bracket BracketKind
	State   DelimState

	// Side is set for Comparison tokens.
	Side Side

	// Kind is set for Number tokens.
	Kind NumberKind

	// Lexeme is the exact source text of the token. It shares memory with the
	// source it was read from.
	Lexeme string

	// Value is the decoded content of a String token, with its quotes removed
	// and all escape sequences resolved. For Number and Ident tokens it is the
	// same as Lexeme.
	Value string

	// Start and End are the byte offsets of the token in the source. End is
	// exclusive.
	Start int
	End   int

	// Pos is the position of the first character of the token.
	Pos lexerr.Point
}

// Tok returns a Token of the given class with no payload. It and the other
// constructors below are mostly useful for building expected tokens to
// compare against with Token.Equal.
func Tok(c Class) Token {
	return Token{Class: c}
}

// Delim returns a Delimiter token with the given bracket and state.
func Delim(bk BracketKind, ds DelimState) Token {
	return Token{Class: Delimiter, Bracket: bk, State: ds}
}

// Compare returns a Comparison token with the given side.
func Compare(s Side) Token {
	return Token{Class: Comparison, Side: s}
}

// Num returns a Number token of the given kind and lexeme.
func Num(nk NumberKind, lexeme string) Token {
	return Token{Class: Number, Kind: nk, Lexeme: lexeme, Value: lexeme}
}

// Identifier returns an Ident token with the given lexeme.
func Identifier(lexeme string) Token {
	return Token{Class: Ident, Lexeme: lexeme, Value: lexeme}
}

// Str returns a String token whose decoded content is value.
func Str(value string) Token {
	return Token{Class: String, Value: value}
}

// Equal returns whether tok and o are the same token, not counting where in
// the source each was read from. The raw lexeme of String tokens is also not
// compared; only their decoded content is.
func (tok Token) Equal(o Token) bool {
	if tok.Class != o.Class {
		return false
	}

	switch tok.Class {
	case Delimiter:
		return tok.Bracket == o.Bracket && tok.State == o.State
	case Comparison:
		return tok.Side == o.Side
	case Number:
		return tok.Kind == o.Kind && tok.Lexeme == o.Lexeme
	case Ident:
		return tok.Lexeme == o.Lexeme
	case String:
		return tok.Value == o.Value
	default:
		return true
	}
}

// Detail returns the class-specific payload of the token as text, or an empty
// string if its class has none.
func (tok Token) Detail() string {
	switch tok.Class {
	case Delimiter:
		return tok.Bracket.String() + " " + tok.State.String()
	case Comparison:
		return tok.Side.String()
	case Number:
		return fmt.Sprintf("%s %q", tok.Kind, tok.Lexeme)
	case Ident:
		return fmt.Sprintf("%q", tok.Lexeme)
	case String:
		return fmt.Sprintf("%q", tok.Value)
	default:
		return ""
	}
}

func (tok Token) String() string {
	detail := tok.Detail()
	if detail == "" {
		return fmt.Sprintf("(%s %s)", tok.Pos, tok.Class)
	}
	return fmt.Sprintf("(%s %s %s)", tok.Pos, tok.Class, detail)
}
