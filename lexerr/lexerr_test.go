package lexerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_SpannedError_FullMessage(t *testing.T) {
	testCases := []struct {
		name   string
		err    *SpannedError
		expect string
	}{
		{
			name:   "no causes",
			err:    Span(UnexpectedChar('#'), Point{Line: 1, Column: 0}),
			expect: "unexpected character '#'\n\n[ at line 1, column 0 ]",
		},
		{
			name: "one cause",
			err:  Span(Number(TooManyDecimalPoints), Point{Line: 3, Column: 12}),
			expect: "an error occurred during lexing (see causes)\n" +
				"→ caused by: too many decimal points in number\n\n" +
				"[ at line 3, column 12 ]",
		},
		{
			name: "two causes",
			err:  Span(String(Unicode(InvalidHexDigits)), Point{Line: 2, Column: 4}),
			expect: "an error occurred during lexing (see causes)\n" +
				"→ caused by: malformed unicode escape sequence\n" +
				"→ caused by: invalid hex digits in unicode escape\n\n" +
				"[ at line 2, column 4 ]",
		},
		{
			name: "wrapping cause repeats its text",
			err:  Span(Runtime(fmt.Errorf("checking size: %w", ErrSourceTooLarge)), Point{Line: 1}),
			expect: "runtime fault during lexing\n" +
				"→ caused by: checking size\n" +
				"→ caused by: source text too large to track positions in\n\n" +
				"[ at line 1, column 0 ]",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := tc.err.FullMessage()

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_SpannedError_Error(t *testing.T) {
	assert := assert.New(t)

	err := Span(String(Unknown('z')), Point{Line: 1, Column: 3})

	assert.Equal("line 1, column 3: an error occurred during lexing (see causes): unknown escape sequence: \\z", err.Error())
}

func Test_SpannedError_errorsIs(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		target   error
		expectIs bool
	}{
		{
			name:     "too many decimal points",
			err:      Span(Number(TooManyDecimalPoints), Point{Line: 1}),
			target:   ErrTooManyDecimalPoints,
			expectIs: true,
		},
		{
			name:     "unterminated string",
			err:      Span(String(StringError{Kind: UnterminatedStringLiteral}), Point{Line: 1}),
			target:   ErrUnterminatedString,
			expectIs: true,
		},
		{
			name:     "unicode escape through string error",
			err:      Span(String(Unicode(MissingOpeningBrace)), Point{Line: 1}),
			target:   ErrMissingOpeningBrace,
			expectIs: true,
		},
		{
			name:     "different unicode escape",
			err:      Span(String(Unicode(MissingOpeningBrace)), Point{Line: 1}),
			target:   ErrInvalidHexDigits,
			expectIs: false,
		},
		{
			name:     "unknown escape by value",
			err:      Span(String(Unknown('q')), Point{Line: 1}),
			target:   Unknown('q'),
			expectIs: true,
		},
		{
			name:     "runtime cause",
			err:      Span(Runtime(ErrSourceTooLarge), Point{Line: 1}),
			target:   ErrSourceTooLarge,
			expectIs: true,
		},
		{
			name:     "unexpected char is not a string error",
			err:      Span(UnexpectedChar('#'), Point{Line: 1}),
			target:   ErrUnterminatedString,
			expectIs: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			assert.Equal(tc.expectIs, errors.Is(tc.err, tc.target))
		})
	}
}

func Test_SpannedError_errorsAs(t *testing.T) {
	assert := assert.New(t)

	var err error = Span(UnexpectedChar('$'), Point{Line: 4, Column: 2})

	var spanned *SpannedError
	if !assert.True(errors.As(err, &spanned)) {
		return
	}
	assert.Equal(Point{Line: 4, Column: 2}, spanned.At)

	var lexErr LexError
	if !assert.True(errors.As(err, &lexErr)) {
		return
	}
	assert.Equal(KindUnexpectedChar, lexErr.Kind())
	assert.Equal('$', lexErr.Char())
}
