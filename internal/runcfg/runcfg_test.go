// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package runcfg_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stremme1/vsim"
	"github.com/stremme1/vsim/internal/runcfg"
)

func writeConfig(t *testing.T, s string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(fn, []byte(s), 0644))
	return fn
}

func TestLoad(t *testing.T) {
	fn := writeConfig(t, `
design: debouncer
instance: dut0
until: 1000
reset: random
seed: 42
log:
  level: debug
`)
	cfg, err := runcfg.Load(fn)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debouncer", cfg.Design)
	assert.Equal(t, uint64(1000), cfg.Until)
	// defaults are kept
	assert.Equal(t, vsim.DefaultIterationCap, cfg.IterationCap)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "debug", cfg.Logging().Level)

	mc, err := cfg.ModelConfig(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "dut0", mc.Name)
	assert.Equal(t, vsim.ResetRandom, mc.Reset)
	assert.Equal(t, uint64(42), mc.Seed)
}

func TestValidate(t *testing.T) {
	data := []struct {
		name string
		mod  func(c *runcfg.RunConfig)
	}{
		{"no design", func(c *runcfg.RunConfig) { c.Design = "" }},
		{"zero cap", func(c *runcfg.RunConfig) { c.IterationCap = 0 }},
		{"bad reset", func(c *runcfg.RunConfig) { c.Reset = "x" }},
		{"bad level", func(c *runcfg.RunConfig) { c.Log.Level = "loud" }},
		{"bad format", func(c *runcfg.RunConfig) { c.Log.Format = "xml" }},
	}
	def := runcfg.Default()
	require.NoError(t, def.Validate())
	for _, d := range data {
		c := runcfg.Default()
		d.mod(&c)
		assert.Error(t, c.Validate(), d.name)
	}
}

func TestLoad_errors(t *testing.T) {
	_, err := runcfg.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = runcfg.Load(writeConfig(t, "design: [counter"))
	assert.Error(t, err)
}
