// Package config loads the configuration shared by the cicak command-line
// tools from TOML files.
//
// A config file looks like:
//
//	[output]
//	format = "table"
//	width = 100
//
//	[repl]
//	prompt = "cicak> "
//
//	[server]
//	listen = "localhost:8080"
//
// Any key that is left out keeps its default value.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	ErrUnknownFormat = errors.New("output format must be one of 'list' or 'table'")
)

// Format is the way a token sequence is written out.
type Format string

func (f Format) String() string {
	return string(f)
}

const (
	FormatList  Format = "list"
	FormatTable Format = "table"
)

// ParseFormat parses a string into a Format. Case is ignored.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case FormatList.String():
		return FormatList, nil
	case FormatTable.String():
		return FormatTable, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
	}
}

// Output contains settings for writing results.
type Output struct {
	Format Format `toml:"format"`

	// Width is the column at which output is wrapped. A Width of 0 disables
	// wrapping for diagnostics; tables are always laid out at least 40
	// columns wide.
	Width int `toml:"width"`
}

// REPL contains settings for the interactive session.
type REPL struct {
	Prompt string `toml:"prompt"`
}

// Server contains settings for the tokenizer server.
type Server struct {
	// Listen is the address to listen on, in ADDRESS:PORT or :PORT format.
	Listen string `toml:"listen"`
}

// Config is the complete configuration of the cicak tools.
type Config struct {
	Output Output `toml:"output"`
	REPL   REPL   `toml:"repl"`
	Server Server `toml:"server"`
}

// Default returns the Config used when no config file is given.
func Default() Config {
	return Config{
		Output: Output{
			Format: FormatList,
			Width:  80,
		},
		REPL: REPL{
			Prompt: "cicak> ",
		},
		Server: Server{
			Listen: "localhost:8080",
		},
	}
}

// Load reads the TOML config file at path. Values not present in the file are
// set to those of Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML config data. Values not present in the data are set to
// those of Default.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	if tomlErr := toml.Unmarshal(data, &cfg); tomlErr != nil {
		return Config{}, tomlErr
	}

	format, err := ParseFormat(cfg.Output.Format.String())
	if err != nil {
		return Config{}, fmt.Errorf("in [output]: %w", err)
	}
	cfg.Output.Format = format

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate returns an error if any field of the Config is set to a value that
// cannot be used.
func (cfg Config) Validate() error {
	if _, err := ParseFormat(cfg.Output.Format.String()); err != nil {
		return fmt.Errorf("in [output]: %w", err)
	}
	if cfg.Output.Width < 0 {
		return fmt.Errorf("in [output]: width must be >= 0")
	}

	if _, _, err := SplitListen(cfg.Server.Listen); err != nil {
		return fmt.Errorf("in [server]: %w", err)
	}

	return nil
}

// SplitListen splits a listen address in ADDRESS:PORT or :PORT format into its
// address and port.
func SplitListen(listen string) (addr string, port int, err error) {
	bindParts := strings.SplitN(listen, ":", 2)
	if len(bindParts) != 2 {
		return "", 0, fmt.Errorf("listen address is not in ADDRESS:PORT or :PORT format: %q", listen)
	}

	port, err = strconv.Atoi(bindParts[1])
	if err != nil {
		return "", 0, fmt.Errorf("%q is not a valid port number", bindParts[1])
	}
	if port < 1 || port > 65535 {
		return "", 0, fmt.Errorf("port must be between 1 and 65535: %d", port)
	}

	return bindParts[0], port, nil
}
