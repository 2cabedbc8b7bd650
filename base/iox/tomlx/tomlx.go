// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tomlx reads and writes values as TOML
// using github.com/pelletier/go-toml/v2.
package tomlx

import (
	"bytes"
	"io"
	"os"

	"cogentcore.org/rig/base/errors"
	"github.com/pelletier/go-toml/v2"
)

// Read reads the given value from the given reader.
// Unknown keys are an error when strict is true.
func Read(v any, reader io.Reader, strict bool) error {
	dec := toml.NewDecoder(reader)
	if strict {
		dec.DisallowUnknownFields()
	}
	return dec.Decode(v)
}

// ReadBytes reads the given value from the given bytes.
func ReadBytes(v any, data []byte, strict bool) error {
	return Read(v, bytes.NewReader(data), strict)
}

// Open reads the given value from the given file.
func Open(v any, filename string, strict bool) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return errors.Wrap(Read(v, f, strict))
}

// OpenFiles reads the given value from the given files in order,
// so that later files override earlier ones.
func OpenFiles(v any, strict bool, filenames ...string) error {
	var errs []error
	for _, fn := range filenames {
		errs = append(errs, Open(v, fn, strict))
	}
	return errors.Join(errs...)
}

// Write writes the given value to the given writer.
func Write(v any, writer io.Writer) error {
	return toml.NewEncoder(writer).Encode(v)
}

// WriteBytes returns the given value encoded as TOML.
func WriteBytes(v any) ([]byte, error) {
	return toml.Marshal(v)
}

// Save writes the given value to the given file.
func Save(v any, filename string) error {
	b, err := WriteBytes(v)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0666)
}
