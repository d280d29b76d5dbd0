package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Parse(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    Config
		expectErr bool
	}{
		{
			name:   "empty file gives defaults",
			input:  "",
			expect: Default(),
		},
		{
			name: "all values set",
			input: `
[output]
format = "TABLE"
width = 120

[repl]
prompt = "> "

[server]
listen = ":6001"
`,
			expect: Config{
				Output: Output{Format: FormatTable, Width: 120},
				REPL:   REPL{Prompt: "> "},
				Server: Server{Listen: ":6001"},
			},
		},
		{
			name: "partial file keeps other defaults",
			input: `
[output]
width = 0
`,
			expect: Config{
				Output: Output{Format: FormatList, Width: 0},
				REPL:   REPL{Prompt: "cicak> "},
				Server: Server{Listen: "localhost:8080"},
			},
		},
		{
			name:      "unknown format",
			input:     "[output]\nformat = \"yaml\"\n",
			expectErr: true,
		},
		{
			name:      "negative width",
			input:     "[output]\nwidth = -3\n",
			expectErr: true,
		},
		{
			name:      "bad listen address",
			input:     "[server]\nlisten = \"localhost\"\n",
			expectErr: true,
		},
		{
			name:      "not toml",
			input:     "[output\n",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := Parse([]byte(tc.input))
			if tc.expectErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Load(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "cicak.toml")
	err := os.WriteFile(path, []byte("[repl]\nprompt = \"lex> \"\n"), 0660)
	if !assert.NoError(err) {
		return
	}

	actual, err := Load(path)
	if !assert.NoError(err) {
		return
	}
	assert.Equal("lex> ", actual.REPL.Prompt)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(err)
}

func Test_ParseFormat(t *testing.T) {
	assert := assert.New(t)

	f, err := ParseFormat(" List ")
	assert.NoError(err)
	assert.Equal(FormatList, f)

	_, err = ParseFormat("json")
	assert.True(errors.Is(err, ErrUnknownFormat))
}

func Test_SplitListen(t *testing.T) {
	testCases := []struct {
		name       string
		input      string
		expectAddr string
		expectPort int
		expectErr  bool
	}{
		{name: "address and port", input: "192.168.0.2:6001", expectAddr: "192.168.0.2", expectPort: 6001},
		{name: "port only", input: ":8080", expectAddr: "", expectPort: 8080},
		{name: "no port", input: "localhost", expectErr: true},
		{name: "port not a number", input: "localhost:http", expectErr: true},
		{name: "port out of range", input: ":70000", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			addr, port, err := SplitListen(tc.input)
			if tc.expectErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.expectAddr, addr)
			assert.Equal(tc.expectPort, port)
		})
	}
}
