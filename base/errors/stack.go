// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"path"
	"runtime"
	"strings"
)

// Debug is whether to record the call stack in errors
// created by [Wrap], [New] and [Errorf].
var Debug = true

// Stack returns the stack trace up to the caller of the
// function that called Stack, as a slice of frames.
func Stack() []runtime.Frame {
	callers := make([]uintptr, 10)
	n := runtime.Callers(3, callers)
	if n == 0 {
		return nil
	}
	frames := runtime.CallersFrames(callers[:n])
	res := []runtime.Frame{}
	for {
		frame, more := frames.Next()
		// stop once we leave program code
		if strings.Contains(frame.File, "runtime/") || strings.Contains(frame.File, "testing/") {
			break
		}
		res = append(res, frame)
		if !more {
			break
		}
	}
	return res
}

func stackNames() []string {
	fr := Stack()
	res := make([]string, 0, len(fr))
	for _, f := range fr {
		if strings.HasSuffix(path.Dir(f.Function), "base") && strings.Contains(f.Function, "errors.") {
			continue
		}
		res = append(res, path.Base(f.Function))
	}
	return res
}
