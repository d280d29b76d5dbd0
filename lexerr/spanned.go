package lexerr

import (
	"errors"
	"fmt"
	"strings"
)

// SpannedError is an error paired with the Point in the source text at which
// it was raised. It is the only error type returned by the tokenizer.
type SpannedError struct {
	// Err is the error that was raised. For errors returned by the tokenizer,
	// this is always a LexError.
	Err error

	// At is where Err was raised.
	At Point
}

// Span returns a new SpannedError for err at the given point.
func Span(err error, at Point) *SpannedError {
	return &SpannedError{Err: err, At: at}
}

// Error returns a single-line message made of the position followed by the
// message of the error and each of its causes.
func (se *SpannedError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", se.At.Line, se.At.Column, strings.Join(se.Chain(), ": "))
}

// Unwrap returns the error that was raised.
func (se *SpannedError) Unwrap() error {
	return se.Err
}

// Chain returns the message of the raised error followed by the message of
// each cause it wraps, outermost first. Each message is only that of the error
// at that link of the chain; if an error includes its cause's text in its own
// message, the repeated suffix is removed.
func (se *SpannedError) Chain() []string {
	var msgs []string

	err := se.Err
	for err != nil {
		msg := err.Error()
		next := errors.Unwrap(err)
		if next != nil {
			msg = strings.TrimSuffix(msg, ": "+next.Error())
		}
		msgs = append(msgs, msg)
		err = next
	}

	return msgs
}

// FullMessage renders the error over multiple lines: the message of the
// raised error, then one "caused by" line per wrapped cause, then the line and
// column it was raised at.
func (se *SpannedError) FullMessage() string {
	var sb strings.Builder

	chain := se.Chain()
	for i := range chain {
		if i > 0 {
			sb.WriteString("\n→ caused by: ")
		}
		sb.WriteString(chain[i])
	}

	fmt.Fprintf(&sb, "\n\n[ at line %d, column %d ]", se.At.Line, se.At.Column)
	return sb.String()
}
