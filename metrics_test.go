// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vsim_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stremme1/vsim"
	"github.com/stremme1/vsim/hwlib"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := vsim.NewMetrics(reg)
	require.NoError(t, err)
	_, err = vsim.NewMetrics(reg)
	assert.Error(t, err, "duplicate registration")

	cfg := vsim.DefaultConfig()
	cfg.Metrics = metrics
	m, err := vsim.New(hwlib.Counter(4), cfg)
	require.NoError(t, err)
	require.NoError(t, vsim.Run(context.Background(), m, 0))
	assert.Equal(t, uint64(35), m.Time())

	mfs, err := reg.Gather()
	require.NoError(t, err)
	values := make(map[string]float64)
	for _, mf := range mfs {
		for _, mt := range mf.GetMetric() {
			if c := mt.GetCounter(); c != nil {
				values[mf.GetName()] += c.GetValue()
			}
		}
	}
	// one step per time slot: 0, 5, 10, ... 35
	assert.Equal(t, 8.0, values["vsim_eval_steps_total"])
	// start + one resume per clock edge
	assert.Equal(t, 8.0, values["vsim_process_resumes_total"])
	assert.NotZero(t, values["vsim_region_iterations_total"])
	_, ok := values["vsim_convergence_failures_total"]
	assert.False(t, ok)
}

func TestMetrics_unregistered(t *testing.T) {
	metrics, err := vsim.NewMetrics(nil)
	require.NoError(t, err)
	cfg := vsim.DefaultConfig()
	cfg.Metrics = metrics
	cfg.IterationCap = 2
	m, err := vsim.New(incrementer(5), cfg)
	require.NoError(t, err)
	assert.Error(t, m.Eval())
}
