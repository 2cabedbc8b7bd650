// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package yamlx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testConfig struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

func TestReadBytes(t *testing.T) {
	var cfg testConfig
	data := []byte("name: leg\ncount: 2\n")
	assert.NoError(t, ReadBytes(&cfg, data, true))
	assert.Equal(t, testConfig{Name: "leg", Count: 2}, cfg)

	assert.Error(t, ReadBytes(&cfg, []byte("name: leg\nother: 1\n"), true))
	assert.NoError(t, ReadBytes(&cfg, nil, true))

	b, err := WriteBytes(&cfg)
	assert.NoError(t, err)
	assert.Contains(t, string(b), "name: leg")
}
