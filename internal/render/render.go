// Package render formats token sequences and tokenizer diagnostics as text for
// display to a user.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dekarrin/cicak/lex"
	"github.com/dekarrin/cicak/lexerr"
	"github.com/dekarrin/rosed"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// minTableWidth is the narrowest a token table will be laid out.
const minTableWidth = 40

// NoTokens is what is shown for a successful tokenization of input that
// contains no tokens.
const NoTokens = "(no tokens)"

// ClassName returns the human-readable name of a token class.
func ClassName(c lex.Class) string {
	return cases.Title(language.English).String(c.String())
}

// List gives one line per token: the position, the class, and then the
// class-specific payload if there is one.
func List(tokens []lex.Token) string {
	if len(tokens) < 1 {
		return NoTokens
	}

	var sb strings.Builder
	for i := range tokens {
		tok := tokens[i]
		if i > 0 {
			sb.WriteRune('\n')
		}
		line := fmt.Sprintf("%-8s %-10s %s", tok.Pos.String(), ClassName(tok.Class), tok.Detail())
		sb.WriteString(strings.TrimRight(line, " "))
	}
	return sb.String()
}

// Table lays the tokens out in a text table with headers, no wider than
// width.
func Table(tokens []lex.Token, width int) string {
	if len(tokens) < 1 {
		return NoTokens
	}
	if width < minTableWidth {
		width = minTableWidth
	}

	data := [][]string{{"#", "Line", "Col", "Class", "Detail"}}
	for i := range tokens {
		tok := tokens[i]
		row := []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%d", tok.Pos.Line),
			fmt.Sprintf("%d", tok.Pos.Column),
			ClassName(tok.Class),
			tok.Detail(),
		}
		data = append(data, row)
	}

	tableOpts := rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, width, tableOpts).
		String()
}

// Tokens renders tokens in the given format, which must be one of "list" or
// "table".
func Tokens(tokens []lex.Token, format string, width int) string {
	if format == "table" {
		return Table(tokens, width)
	}
	return List(tokens)
}

// Diagnostic gives the message to show a user for err. If err is a
// *lexerr.SpannedError, its full multi-line message is given; otherwise it is
// just err.Error(). If width is greater than 0, each line is wrapped to it.
func Diagnostic(err error, width int) string {
	var spanned *lexerr.SpannedError
	if !errors.As(err, &spanned) {
		return err.Error()
	}

	msg := spanned.FullMessage()
	if width < 1 {
		return msg
	}

	lines := strings.Split(msg, "\n")
	for i := range lines {
		if lines[i] == "" {
			continue
		}
		lines[i] = rosed.Edit(lines[i]).Wrap(width).String()
	}
	return strings.Join(lines, "\n")
}
