/*
Cicak tokenizes cicak source text and prints the resulting tokens.

Source text is read from each FILE given, from the -c/--code flag, or
interactively from stdin. On success the tokens are printed to stdout. If a
lexical error occurs, a diagnostic giving its cause and position is printed to
stderr and the program exits with a non-zero status.

Usage:

	cicak [flags] FILE...
	cicak [flags] -c CODE
	cicak [flags] -i

The flags are:

	-v, --version
		Give the current version of cicak and then exit.

	-c, --code CODE
		Tokenize the given text instead of reading from files.

	-i, --interactive
		Start an interactive session that tokenizes each line typed until
		end of input or the line ":quit" is entered. Lexical errors are shown
		but do not end the session.

	-d, --direct
		Force reading directly from the console as opposed to using GNU
		readline based routines during an interactive session even if
		launched in a tty with stdin and stdout.

	-o, --output FORMAT
		Print tokens in the given format, one of "list" or "table". Defaults
		to the format in the config file, or "list".

	-w, --width COLUMNS
		Wrap diagnostics and lay out tables to the given width. 0 disables
		wrapping of diagnostics.

	--config FILE
		Read settings from the given TOML config file.

	--dump FILE
		Write the tokens of the last successfully tokenized input to FILE in
		REZI binary format.
*/
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/dekarrin/cicak/internal/config"
	"github.com/dekarrin/cicak/internal/input"
	"github.com/dekarrin/cicak/internal/render"
	"github.com/dekarrin/cicak/internal/version"
	"github.com/dekarrin/cicak/lex"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitLexError indicates that at least one input could not be tokenized.
	ExitLexError

	// ExitInitError indicates an unsuccessful program execution due to a
	// problem with flags, config, or reading input.
	ExitInitError
)

// quitCommand ends an interactive session.
const quitCommand = ":quit"

var (
	flagVersion     = pflag.BoolP("version", "v", false, "Give the current version of cicak and then exit.")
	flagCode        = pflag.StringP("code", "c", "", "Tokenize the given text.")
	flagInteractive = pflag.BoolP("interactive", "i", false, "Start an interactive tokenizing session.")
	flagDirect      = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible.")
	flagOutput      = pflag.StringP("output", "o", "", "Print tokens as a \"list\" or a \"table\".")
	flagWidth       = pflag.IntP("width", "w", 0, "Wrap output to the given width.")
	flagConfig      = pflag.String("config", "", "Read settings from the given TOML file.")
	flagDump        = pflag.String("dump", "", "Write a REZI binary dump of the tokens to the given file.")
)

var returnCode = ExitSuccess

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\nDo -h for help.\n", err.Error())
		returnCode = ExitInitError
		return
	}

	files := pflag.Args()
	codeGiven := pflag.Lookup("code").Changed
	if (codeGiven && len(files) > 0) || (*flagInteractive && (codeGiven || len(files) > 0)) {
		fmt.Fprintf(os.Stderr, "ERROR: only one of FILE, -c, or -i may be given\nDo -h for help.\n")
		returnCode = ExitInitError
		return
	}

	var last []lex.Token
	if *flagInteractive {
		last, err = runInteractive(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
	} else {
		var sources []source
		if codeGiven {
			sources = []source{{name: "<code>", text: *flagCode}}
		} else {
			if len(files) < 1 {
				fmt.Fprintf(os.Stderr, "ERROR: nothing to tokenize; give FILE, -c, or -i\nDo -h for help.\n")
				returnCode = ExitInitError
				return
			}
			sources, err = readSources(files)
			if err != nil {
				fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
				returnCode = ExitInitError
				return
			}
		}

		var ok bool
		last, ok = tokenizeAll(sources, cfg, len(sources) > 1)
		if !ok {
			returnCode = ExitLexError
		}
	}

	if *flagDump != "" && last != nil {
		if err := os.WriteFile(*flagDump, lex.EncodeTokens(last), 0660); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: writing dump: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
	}
}

type source struct {
	name string
	text string
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *flagConfig != "" {
		var err error
		cfg, err = config.Load(*flagConfig)
		if err != nil {
			return cfg, err
		}
	}

	if pflag.Lookup("output").Changed {
		format, err := config.ParseFormat(*flagOutput)
		if err != nil {
			return cfg, err
		}
		cfg.Output.Format = format
	}
	if pflag.Lookup("width").Changed {
		cfg.Output.Width = *flagWidth
	}

	return cfg, cfg.Validate()
}

func readSources(files []string) ([]source, error) {
	sources := make([]source, len(files))
	for i := range files {
		data, err := os.ReadFile(files[i])
		if err != nil {
			return nil, fmt.Errorf("reading source file: %w", err)
		}
		sources[i] = source{name: files[i], text: string(data)}
	}
	return sources, nil
}

// tokenizeAll tokenizes each source and prints the result. Returns the tokens
// of the last source that succeeded and whether all of them did.
func tokenizeAll(sources []source, cfg config.Config, showNames bool) ([]lex.Token, bool) {
	var last []lex.Token
	allOK := true

	for _, src := range sources {
		tokens, err := lex.Tokenize(src.text)
		if err != nil {
			allOK = false
			fmt.Fprintf(os.Stderr, "%s:\n%s\n", src.name, render.Diagnostic(err, cfg.Output.Width))
			continue
		}

		if showNames {
			fmt.Printf("%s:\n", src.name)
		}
		fmt.Printf("%s\n", render.Tokens(tokens, cfg.Output.Format.String(), cfg.Output.Width))
		last = tokens
	}

	return last, allOK
}

func runInteractive(cfg config.Config) ([]lex.Token, error) {
	var reader input.LineReader
	if *flagDirect {
		reader = input.NewDirectReader(os.Stdin)
	} else {
		ir, err := input.NewInteractiveReader(cfg.REPL.Prompt)
		if err != nil {
			return nil, err
		}
		reader = ir
	}
	defer reader.Close()

	return repl(reader, cfg, os.Stdout, os.Stderr)
}

// repl tokenizes each line read from reader until end of input or the quit
// command. Tokens go to out and diagnostics go to errOut. Returns the tokens
// of the last line that succeeded.
func repl(reader input.LineReader, cfg config.Config, out, errOut io.Writer) ([]lex.Token, error) {
	// whitespace-only lines are still source text.
	reader.AllowBlank(true)

	var last []lex.Token
	for {
		line, err := reader.ReadLine()
		if err == io.EOF || errors.Is(err, readline.ErrInterrupt) {
			return last, nil
		}
		if err != nil {
			return last, fmt.Errorf("reading input: %w", err)
		}
		if line == quitCommand {
			return last, nil
		}

		tokens, err := lex.Tokenize(line)
		if err != nil {
			fmt.Fprintf(errOut, "%s\n", render.Diagnostic(err, cfg.Output.Width))
			continue
		}

		fmt.Fprintf(out, "%s\n", render.Tokens(tokens, cfg.Output.Format.String(), cfg.Output.Width))
		last = tokens
	}
}
