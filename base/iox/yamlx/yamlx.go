// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package yamlx reads and writes values as YAML
// using gopkg.in/yaml.v3.
package yamlx

import (
	"bytes"
	"io"
	"os"

	"cogentcore.org/rig/base/errors"
	"gopkg.in/yaml.v3"
)

// Read reads the given value from the given reader.
// Unknown keys are an error when strict is true.
func Read(v any, reader io.Reader, strict bool) error {
	dec := yaml.NewDecoder(reader)
	dec.KnownFields(strict)
	err := dec.Decode(v)
	if err == io.EOF {
		return nil
	}
	return err
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

// WriteBytes returns the given value encoded as YAML.
func WriteBytes(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Save writes the given value to the given file.
func Save(v any, filename string) error {
	b, err := WriteBytes(v)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0666)
}
