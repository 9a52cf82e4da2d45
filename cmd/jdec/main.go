// SPDX-License-Identifier: MIT

// Command jdec converts, inspects and catalogs automata and U-Structures.
//
// Usage:
//
//	jdec [-config file] [-log-level level] <command> [args]
//
// Commands:
//
//	convert <in> <out>                     convert between .json and .hdr/.bdy
//	render <in>                            print the GUI text form
//	info <in>                              print a one-line summary
//	parse [-type n] [-controllers n] -events f -states f -transitions f <out>
//	                                       build a model from GUI text files
//	protocols [-trim] [-max n] <in>        list feasible communication protocols
//	lib put <name> <in> | get <name> <out> | list | rm <name>
//	                                       manage the SQLite library
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
)

var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// env carries what every command needs.
type env struct {
	cfg    Config
	logger *slog.Logger
	stdout io.Writer
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("jdec", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", os.Getenv(envConfig), "YAML config file")
	level := fs.String("log-level", "", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, "jdec:", err)
		return 1
	}
	if *level != "" {
		cfg.LogLevel = *level
	}
	lvl, err := parseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(stderr, "jdec:", err)
		return 1
	}
	e := &env{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: lvl})),
		stdout: stdout,
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fmt.Fprintln(stderr, "usage: jdec [-config file] [-log-level level] <convert|render|info|parse|protocols|lib> [args]")
		return 2
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(stderr, "jdec: unknown command %q\n", rest[0])
		return 2
	}
	if err := cmd(e, rest[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, "jdec:", err)
			return 2
		}
		e.logger.Error("command failed", "command", rest[0], "err", err)
		return 1
	}

	return 0
}
