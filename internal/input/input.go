// Package input contains readers used to get lines of source text from the
// console or other sources of input for an interactive cicak session.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// LineReader reads single lines of source text.
type LineReader interface {
	// ReadLine reads the next line, skipping blank lines unless they have
	// been allowed with AllowBlank. The line is returned without its line
	// ending but is otherwise unmodified. At end of input, the returned error
	// is io.EOF.
	ReadLine() (string, error)

	// AllowBlank sets whether lines made of only whitespace are returned by
	// ReadLine.
	AllowBlank(allow bool)

	// Close releases any resources held by the reader.
	Close() error
}

// DirectReader implements LineReader and reads lines from any generic input
// stream directly. It can be used generically with any io.Reader but does not
// sanitize the input of control and escape sequences.
//
// DirectReader should not be used directly; instead, create one with
// [NewDirectReader].
type DirectReader struct {
	r             *bufio.Reader
	blanksAllowed bool
}

// InteractiveReader implements LineReader and reads lines from stdin using a
// go implementation of the GNU Readline library. This keeps input clear of all
// typing and editing escape sequences and enables the use of line history.
// This should in general probably only be used when directly connecting to a
// TTY for input.
//
// InteractiveReader should not be used directly; instead, create one with
// [NewInteractiveReader].
type InteractiveReader struct {
	rl            *readline.Instance
	blanksAllowed bool
}

// NewDirectReader creates a new DirectReader and initializes a buffered
// reader on the provided reader.
func NewDirectReader(r io.Reader) *DirectReader {
	return &DirectReader{
		r: bufio.NewReader(r),
	}
}

// NewInteractiveReader creates a new InteractiveReader that shows the given
// prompt and initializes readline. The returned InteractiveReader must have
// Close() called on it before disposal to properly teardown readline
// resources.
func NewInteractiveReader(prompt string) (*InteractiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveReader{
		rl: rl,
	}, nil
}

// Close cleans up resources associated with the DirectReader.
func (dr *DirectReader) Close() error {
	// DirectReader holds no resources but callers should treat it as though
	// it must have Close called on it.
	return nil
}

// Close cleans up readline resources and other resources associated with the
// InteractiveReader.
func (ir *InteractiveReader) Close() error {
	return ir.rl.Close()
}

// ReadLine reads the next line from the underlying reader. Lines made of only
// whitespace are skipped unless blanks are allowed.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If any other error occurs, the returned string will be empty and
// error will be that error.
func (dr *DirectReader) ReadLine() (string, error) {
	for {
		line, err := dr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = trimLineEnding(line)

		if strings.TrimSpace(line) != "" || dr.blanksAllowed {
			return line, nil
		}
		if err == io.EOF {
			return "", io.EOF
		}
	}
}

// ReadLine reads the next line from stdin. Lines made of only whitespace are
// skipped unless blanks are allowed.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If any other error occurs, the returned string will be empty and
// error will be that error.
func (ir *InteractiveReader) ReadLine() (string, error) {
	for {
		line, err := ir.rl.Readline()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		if strings.TrimSpace(line) != "" || ir.blanksAllowed {
			return line, nil
		}
	}
}

// AllowBlank sets whether blank lines are returned. By default they are not.
func (dr *DirectReader) AllowBlank(allow bool) {
	dr.blanksAllowed = allow
}

// AllowBlank sets whether blank lines are returned. By default they are not.
func (ir *InteractiveReader) AllowBlank(allow bool) {
	ir.blanksAllowed = allow
}

func trimLineEnding(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
