/*
Cicakd starts a cicak tokenizer server and begins listening for new
connections.

Usage:

	cicakd [flags]
	cicakd [flags] -l [[ADDRESS]:PORT]

Once started, the server will listen for HTTP requests and respond to them
using REST protocol. Source text POSTed to /api/v1/tokens is tokenized and the
tokens are given back as JSON. By default, it will listen on localhost:8080.
This can be changed with the --listen/-l flag, the server.listen key of the
config file, or an environment variable. The flag argument must be either a
full address with port, such as "192.168.0.2:6001", or just the port preceeded
by a colon, such as ":6001".

The flags are:

	-v, --version
		Give the current version of the cicak server and then exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, will default to the value of environment variable
		CICAK_LISTEN_ADDRESS, and if that is not given, to the listen address
		in the config file, and if that is not given, to localhost:8080.

	--config FILE
		Read settings from the given TOML file. If not given, will default to
		the value of environment variable CICAK_CONFIG. If neither is given,
		built-in defaults are used.
*/
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dekarrin/cicak/internal/config"
	"github.com/dekarrin/cicak/internal/version"
	"github.com/dekarrin/cicak/server"
	"github.com/spf13/pflag"
)

const (
	EnvListen = "CICAK_LISTEN_ADDRESS"
	EnvConfig = "CICAK_CONFIG"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of the cicak server and then exit.")
	flagListen  = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagConfig  = pflag.String("config", "", "Read settings from the given TOML file.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s (cicak v%s)\n", version.ServerCurrent, version.Current)
		return
	}

	args := pflag.Args()

	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	cfg := config.Default()
	cfgPath := os.Getenv(EnvConfig)
	if pflag.Lookup("config").Changed {
		cfgPath = *flagConfig
	}
	if cfgPath != "" {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not load config: %s\n", err.Error())
			os.Exit(1)
		}
	}

	// get address info
	listenAddr := cfg.Server.Listen
	if envListen := os.Getenv(EnvListen); envListen != "" {
		listenAddr = envListen
	}
	if pflag.Lookup("listen").Changed {
		listenAddr = *flagListen
	}

	addr, port, err := config.SplitListen(listenAddr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\nDo -h for help.\n", err.Error())
		os.Exit(1)
	}

	srv := server.New()
	log.Printf("DEBUG Server initialized")

	err = srv.ServeForever(addr, port)
	log.Fatalf("FATAL %s", err)
}
