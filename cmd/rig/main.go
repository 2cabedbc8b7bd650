// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command rig inspects rig description files: it prints the element
// tree, resolves module connectors, prints poses and can watch a
// file and resolve it again whenever it changes.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"cogentcore.org/rig/base/logx"
	"cogentcore.org/rig/rig"
	"github.com/docopt/docopt-go"
)

const version = "0.1.0"

const usage = `Rig description tool.

Usage:
    rig inspect [options] <file>
    rig resolve [options] <file> [<module>]
    rig pose [options] <file> <key>
    rig watch [options] <file>
    rig -h | --help
    rig --version

Options:
    -h --help   Show this screen.
    --version   Show version.
    --initial   Print the initial pose instead of the current one.
    --settings=<file>  Read hierarchy settings from a TOML file.
    -v          Show info messages.
    --vv        Show debug messages.
    -q          Only show errors.`

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	logx.SetDefaultLogger(os.Stderr)
	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	parser := &docopt.Parser{HelpHandler: func(err error, output string) {
		if err == nil {
			fmt.Fprintln(out, output)
		}
	}}
	opts, err := parser.ParseArgs(usage, args, version)
	if err != nil {
		return err
	}
	if opts == nil {
		// help or version was printed
		return nil
	}
	vv, _ := opts.Bool("--vv")
	v, _ := opts.Bool("-v")
	q, _ := opts.Bool("-q")
	logx.UserLevel = logx.LevelFromFlags(vv, v, q)

	tl := newTool()
	if fn, _ := opts["--settings"].(string); fn != "" {
		s, err := rig.OpenSettings(fn)
		if err != nil {
			return err
		}
		tl.settings = s
		// the verbosity flags take precedence over the settings file
		if lv, ok := logx.LevelFromString(s.LogLevel); ok && !vv && !v && !q {
			logx.UserLevel = lv
		}
	}

	file, _ := opts.String("<file>")
	switch {
	case flag(opts, "inspect"):
		return tl.inspect(file, out)
	case flag(opts, "resolve"):
		module, _ := opts["<module>"].(string)
		return tl.resolve(file, module, out)
	case flag(opts, "pose"):
		key, _ := opts.String("<key>")
		return tl.pose(file, key, flag(opts, "--initial"), out)
	case flag(opts, "watch"):
		return tl.watch(ctx, file, out)
	}
	return nil
}

func flag(opts docopt.Opts, name string) bool {
	b, _ := opts.Bool(name)
	return b
}
