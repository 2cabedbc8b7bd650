// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides a set of error handling helpers,
// extending the standard library errors package with
// stack-annotated errors and one-line logging helpers.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error represents an error with a base error and the
// call stack at which it was created.
type Error struct {
	Base  error
	Stack []string
}

// Wrap wraps the given error into an [*Error] with a stack trace.
// It returns nil if the given error is nil.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	e := &Error{Base: err}
	if Debug {
		e.Stack = stackNames()
	}
	return e
}

// New returns a new error with the given text, wrapped with
// a stack trace via [Wrap]. It is the equivalent of [errors.New].
func New(text string) error {
	return Wrap(errors.New(text))
}

// Errorf returns a new error with the given format and arguments,
// wrapped with a stack trace via [Wrap]. It is the equivalent of [fmt.Errorf].
func Errorf(format string, a ...any) error {
	return Wrap(fmt.Errorf(format, a...))
}

// Error returns the base error string followed by the stack.
func (e *Error) Error() string {
	res := e.Base.Error()
	if len(e.Stack) > 0 {
		res += " (" + strings.Join(e.Stack, ": ") + ")"
	}
	return res
}

// Unwrap returns the underlying base error of the Error.
func (e *Error) Unwrap() error {
	return e.Base
}

// Is is [errors.Is].
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is [errors.As].
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join is [errors.Join].
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Assert panics with an [*Error] built from the given format
// and arguments if cond is false. It is used for contract
// violations that indicate a programming error.
func Assert(cond bool, format string, a ...any) {
	if !cond {
		panic(Errorf(format, a...))
	}
}
