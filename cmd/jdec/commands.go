// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/katalvlaran/jdec/automaton"
	_ "github.com/katalvlaran/jdec/bincodec"
	"github.com/katalvlaran/jdec/codec"
	_ "github.com/katalvlaran/jdec/jsoncodec"
	"github.com/katalvlaran/jdec/library"
	"github.com/katalvlaran/jdec/protocol"
	"github.com/katalvlaran/jdec/reach"
)

var commands = map[string]func(e *env, args []string) error{
	"convert":   cmdConvert,
	"render":    cmdRender,
	"info":      cmdInfo,
	"parse":     cmdParse,
	"protocols": cmdProtocols,
	"lib":       cmdLib,
}

func usage(format string, a ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errUsage}, a...)...)
}

func (e *env) load(path string) (automaton.Model, error) {
	c, err := codec.ForPath(path)
	if err != nil {
		return nil, err
	}
	m, err := c.Load(path, automaton.WithLogger(e.logger))
	if err != nil {
		return nil, err
	}
	e.logger.Debug("loaded", "path", path, "type", m.Type().String(), "states", m.Base().NumberOfStates())

	return m, nil
}

func (e *env) save(m automaton.Model, path string) error {
	c, err := codec.ForPath(path)
	if err != nil {
		return err
	}
	if err := c.Save(m, path); err != nil {
		return err
	}
	e.logger.Debug("saved", "path", path)

	return nil
}

func cmdConvert(e *env, args []string) error {
	if len(args) != 2 {
		return usage("convert <in> <out>")
	}
	m, err := e.load(args[0])
	if err != nil {
		return err
	}

	return e.save(m, args[1])
}

func cmdRender(e *env, args []string) error {
	if len(args) != 1 {
		return usage("render <in>")
	}
	m, err := e.load(args[0])
	if err != nil {
		return err
	}
	_, err = io.WriteString(e.stdout, automaton.Render(m))

	return err
}

func cmdInfo(e *env, args []string) error {
	if len(args) != 1 {
		return usage("info <in>")
	}
	m, err := e.load(args[0])
	if err != nil {
		return err
	}
	a := m.Base()
	acc, err := reach.Accessible(a)
	if err != nil {
		return err
	}
	coacc, err := reach.CoAccessible(a)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(e.stdout, "type=%s controllers=%d events=%d states=%d transitions=%d initial=%d accessible=%d coaccessible=%d\n",
		m.Type(), a.NumberOfControllers(), a.NumberOfEvents(), a.NumberOfStates(), a.NumberOfTransitions(), a.InitialStateID(),
		len(acc), len(coacc))

	return err
}

func cmdParse(e *env, args []string) error {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	typ := fs.Uint("type", uint(automaton.TypeAutomaton), "model type (0-3)")
	controllers := fs.Int("controllers", e.cfg.Controllers, "number of controllers")
	eventsPath := fs.String("events", "", "events file")
	statesPath := fs.String("states", "", "states file")
	transitionsPath := fs.String("transitions", "", "transitions file")
	if err := fs.Parse(args); err != nil {
		return usage("parse: %v", err)
	}
	if fs.NArg() != 1 {
		return usage("parse [-type n] [-controllers n] -events f -states f -transitions f <out>")
	}
	if *controllers < 1 || *controllers > automaton.MaxControllers {
		return usage("parse: controllers must be in [1,%d]", automaton.MaxControllers)
	}
	if *typ > math.MaxUint8 || !automaton.Type(*typ).Valid() {
		return usage("parse: unknown type %d", *typ)
	}

	var text [3]string
	for i, p := range []string{*eventsPath, *statesPath, *transitionsPath} {
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		text[i] = string(data)
	}
	m, err := automaton.ParseInput(automaton.Type(*typ), text[0], text[1], text[2],
		automaton.WithControllers(*controllers), automaton.WithLogger(e.logger))
	if err != nil {
		return err
	}

	return e.save(m, fs.Arg(0))
}

func cmdProtocols(e *env, args []string) error {
	fs := flag.NewFlagSet("protocols", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	trim := fs.Bool("trim", false, "omit protocols containing a smaller feasible one")
	maxCandidates := fs.Int("max", protocol.DefaultMaxCandidates, "maximum number of candidate communications")
	if err := fs.Parse(args); err != nil {
		return usage("protocols: %v", err)
	}
	if fs.NArg() != 1 {
		return usage("protocols [-trim] [-max n] <in>")
	}
	m, err := e.load(fs.Arg(0))
	if err != nil {
		return err
	}
	u, ok := asUStructure(m)
	if !ok {
		return fmt.Errorf("protocols: %s has no communications", m.Type())
	}
	ps, err := protocol.FeasibleProtocols(u, u.Communications(), *trim,
		protocol.WithContext(context.Background()), protocol.WithMaxCandidates(*maxCandidates))
	if err != nil {
		return err
	}
	for _, p := range ps {
		parts := make([]string, len(p))
		for i, c := range p {
			parts[i] = c.TransitionData.String()
		}
		if _, err := fmt.Fprintf(e.stdout, "{%s}\n", strings.Join(parts, " ")); err != nil {
			return err
		}
	}

	return nil
}

func asUStructure(m automaton.Model) (*automaton.UStructure, bool) {
	switch v := m.(type) {
	case *automaton.UStructure:
		return v, true
	case *automaton.PrunedUStructure:
		return v.UStructure, true
	default:
		return nil, false
	}
}

func cmdLib(e *env, args []string) error {
	if len(args) == 0 {
		return usage("lib <put|get|list|rm> [args]")
	}
	store, err := library.Open(e.cfg.Library, library.WithLogger(e.logger))
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	switch sub, rest := args[0], args[1:]; {
	case sub == "put" && len(rest) == 2:
		m, err := e.load(rest[1])
		if err != nil {
			return err
		}
		entry, err := store.Put(ctx, rest[0], m)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(e.stdout, entry.ID)
		return err
	case sub == "get" && len(rest) == 2:
		m, _, err := store.Get(ctx, rest[0], automaton.WithLogger(e.logger))
		if err != nil {
			return err
		}
		return e.save(m, rest[1])
	case sub == "list" && len(rest) == 0:
		entries, err := store.List(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tTYPE\tSTATES\tEVENTS\tCONTROLLERS\tID")
		for _, en := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n", en.Name, en.Type, en.NStates, en.NEvents, en.NControllers, en.ID)
		}
		return tw.Flush()
	case sub == "rm" && len(rest) == 1:
		return store.Delete(ctx, rest[0])
	default:
		return usage("lib put <name> <in> | get <name> <out> | list | rm <name>")
	}
}
