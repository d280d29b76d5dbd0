package main

import (
	"strings"
	"testing"

	"github.com/dekarrin/cicak/internal/config"
	"github.com/dekarrin/cicak/internal/input"
	"github.com/dekarrin/cicak/internal/render"
	"github.com/dekarrin/cicak/lex"
	"github.com/stretchr/testify/assert"
)

func Test_repl(t *testing.T) {
	cfg := config.Default()

	listOf := func(src string) string {
		tokens, err := lex.Tokenize(src)
		if err != nil {
			panic(err)
		}
		return render.List(tokens) + "\n"
	}
	diagOf := func(src string) string {
		_, err := lex.Tokenize(src)
		if err == nil {
			panic("no error tokenizing " + src)
		}
		return render.Diagnostic(err, cfg.Output.Width) + "\n"
	}

	testCases := []struct {
		name       string
		input      string
		expectOut  string
		expectErr  string
		expectLast []lex.Token
	}{
		{
			name:       "tokens until end of input",
			input:      "a b\nc\n",
			expectOut:  listOf("a b") + listOf("c"),
			expectLast: []lex.Token{lex.Identifier("c")},
		},
		{
			name:       "whitespace-only line is tokenized",
			input:      "a\n  \t\n",
			expectOut:  listOf("a") + listOf("  \t"),
			expectLast: []lex.Token{lex.Tok(lex.Spaces)},
		},
		{
			name:       "empty line has no tokens",
			input:      "\n",
			expectOut:  render.NoTokens + "\n",
			expectLast: nil,
		},
		{
			name:       "diagnostics go to the error stream",
			input:      "x\n#\n",
			expectOut:  listOf("x"),
			expectErr:  diagOf("#"),
			expectLast: []lex.Token{lex.Identifier("x")},
		},
		{
			name:       "quit stops reading",
			input:      "x\n:quit\ny\n",
			expectOut:  listOf("x"),
			expectLast: []lex.Token{lex.Identifier("x")},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			var out, errOut strings.Builder
			reader := input.NewDirectReader(strings.NewReader(tc.input))

			last, err := repl(reader, cfg, &out, &errOut)
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.expectOut, out.String())
			assert.Equal(tc.expectErr, errOut.String())

			if !assert.Len(last, len(tc.expectLast)) {
				return
			}
			for i := range tc.expectLast {
				assert.Truef(tc.expectLast[i].Equal(last[i]), "token #%d: expected %s, got %s", i, tc.expectLast[i], last[i])
			}
		})
	}
}
