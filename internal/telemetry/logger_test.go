// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package telemetry_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stremme1/vsim/internal/telemetry"
)

func TestParseLevel(t *testing.T) {
	data := []struct {
		in  string
		out zerolog.Level
		err bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{"WARN", zerolog.WarnLevel, false},
		{"trace", zerolog.TraceLevel, false},
		{"loud", zerolog.NoLevel, true},
	}
	for _, d := range data {
		l, err := telemetry.ParseLevel(d.in)
		if d.err {
			assert.Error(t, err, d.in)
			continue
		}
		require.NoError(t, err, d.in)
		assert.Equal(t, d.out, l, d.in)
	}
}

func TestNewLogger_file(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "vsim.log")
	log, closeFn, err := telemetry.NewLogger(telemetry.LoggingConfig{Level: "info", Format: "json", Output: fn})
	require.NoError(t, err)
	log.Debug().Msg("hidden")
	log.Info().Str("design", "counter").Msg("visible")
	require.NoError(t, closeFn())

	b, err := os.ReadFile(fn)
	require.NoError(t, err)
	out := string(b)
	assert.True(t, strings.Contains(out, `"design":"counter"`), out)
	assert.False(t, strings.Contains(out, "hidden"), out)
}

func TestNewLogger_badFormat(t *testing.T) {
	_, _, err := telemetry.NewLogger(telemetry.LoggingConfig{Format: "xml"})
	assert.Error(t, err)
}

func TestGather(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_total", Help: "test"})
	reg.MustRegister(c)
	c.Add(3)

	var b strings.Builder
	log := zerolog.New(&b).Level(zerolog.DebugLevel)
	require.NoError(t, telemetry.Gather(&log, reg))
	assert.Contains(t, b.String(), `"metric":"test_total"`)
	assert.Contains(t, b.String(), `"value":3`)
}
