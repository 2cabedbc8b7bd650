// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"cogentcore.org/rig/base/errors"
	"cogentcore.org/rig/modular"
	"cogentcore.org/rig/rig"
	"cogentcore.org/rig/rigfile"
	"cogentcore.org/rig/rules"
	"github.com/fsnotify/fsnotify"
	"github.com/muesli/termenv"
)

// tool runs the commands with the given hierarchy settings.
type tool struct {
	settings rig.Settings
}

func newTool() *tool {
	return &tool{settings: rig.DefaultSettings()}
}

func (tl *tool) load(file string) (*modular.Rig, error) {
	d, err := rigfile.Open(file)
	if err != nil {
		return nil, err
	}
	r, err := d.BuildWith(tl.settings)
	if err != nil {
		return nil, err
	}
	slog.Debug("rig: loaded", "file", file, "elements", r.Hierarchy.Len(), "modules", len(r.Modules))
	return r, nil
}

// inspect prints the element tree followed by the modules.
func (tl *tool) inspect(file string, out io.Writer) error {
	r, err := tl.load(file)
	if err != nil {
		return err
	}
	h := r.Hierarchy
	seen := map[rig.ElementKey]bool{}
	var walk func(k rig.ElementKey, depth int)
	walk = func(k rig.ElementKey, depth int) {
		line := strings.Repeat("  ", depth) + k.String()
		if tags := h.Tags(k); len(tags) > 0 {
			line += " [" + strings.Join(tags, ", ") + "]"
		}
		if seen[k] {
			fmt.Fprintln(out, line+" ...")
			return
		}
		seen[k] = true
		fmt.Fprintln(out, line)
		for _, c := range h.Children(k, false) {
			walk(c, depth+1)
		}
	}
	for _, k := range h.Children(rig.ElementKey{}, false) {
		if !k.IsTypeOf(rig.ElementTypeConnector) {
			walk(k, 0)
		}
	}
	for _, m := range r.Modules {
		fmt.Fprintf(out, "Module %s\n", m.Name)
		for _, ck := range m.Connectors {
			targets := r.Connections(ck)
			names := make([]string, len(targets))
			for i, t := range targets {
				names[i] = t.String()
			}
			fmt.Fprintf(out, "  %v -> %s\n", ck, strings.Join(names, ", "))
		}
	}
	return nil
}

func stateColor(o *termenv.Output, st rules.ResolveState) termenv.Color {
	switch st {
	case rules.DefaultTarget:
		return o.Color("2")
	case rules.PossibleTarget:
		return o.Color("4")
	}
	return o.Color("1")
}

// resolve prints the matches of every connector of the given module,
// or of all modules.
func (tl *tool) resolve(file, module string, out io.Writer) error {
	r, err := tl.load(file)
	if err != nil {
		return err
	}
	o := termenv.NewOutput(out)
	found := false
	for _, m := range r.Modules {
		if module != "" && m.Name != module {
			continue
		}
		found = true
		for _, ck := range m.Connectors {
			res, err := r.Resolve(m.Name, rig.ModulePath(ck.Name).ElementName())
			if err != nil {
				return err
			}
			state := o.String(res.State.String())
			if !res.IsValid() {
				state = state.Foreground(o.Color("1"))
			}
			fmt.Fprintf(out, "%v %s %s\n", ck, state, res.Message)
			for _, mt := range res.Matches {
				st := o.String(fmt.Sprintf("%-14s", mt.State)).Foreground(stateColor(o, mt.State))
				fmt.Fprintf(out, "  %s %v\n", st, mt.Key)
			}
			for _, mt := range res.Excluded {
				slog.Debug("excluded", "connector", ck, "target", mt.Key, "reason", mt.Message)
			}
		}
	}
	if module != "" && !found {
		return errors.Errorf("rig: %q: %w", module, modular.ErrModuleNotFound)
	}
	return nil
}

// pose prints the local and global transform of an element.
func (tl *tool) pose(file, key string, initial bool, out io.Writer) error {
	r, err := tl.load(file)
	if err != nil {
		return err
	}
	k, err := rig.ParseElementKey(key)
	if err != nil {
		return err
	}
	h := r.Hierarchy
	local, err := h.LocalTransform(k, initial)
	if err != nil {
		return err
	}
	global, err := h.GlobalTransform(k, initial)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%v\n  local  %v\n  global %v\n", k, local, global)
	return nil
}

// watch resolves the file and resolves it again on every change,
// until ctx is done.
func (tl *tool) watch(ctx context.Context, file string, out io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err)
	}
	defer watcher.Close()
	// editors often replace files, so the directory is watched
	if err := watcher.Add(filepath.Dir(file)); err != nil {
		return errors.Wrap(err)
	}
	errors.Log(tl.resolve(file, "", out))
	target := filepath.Clean(file)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			slog.Info("rig: file changed", "file", file)
			errors.Log(tl.resolve(file, "", out))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("rig: file watcher error: " + err.Error())
		}
	}
}
