// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stremme1/vsim"
	hl "github.com/stremme1/vsim/hwlib"
	"github.com/stremme1/vsim/hwtest"
)

func TestSevenSegment(t *testing.T) {
	cfg := vsim.DefaultConfig()
	cfg.Reset = vsim.ResetRandom
	cfg.Seed = 7
	m, err := vsim.New(hl.SevenSegment, cfg)
	require.NoError(t, err)
	defer m.Close()

	st := m.State()
	num, ok := st.Lookup("num")
	require.True(t, ok)
	seg, ok := st.Lookup("seg")
	require.True(t, ok)

	// settled before any input change
	require.NoError(t, m.Eval())
	assert.Equal(t, hl.SegmentTable[st.Get(num)], st.Get(seg))

	for i := uint64(15); i < 16; i-- {
		st.Set(num, i)
		require.NoError(t, m.Eval())
		assert.Equal(t, hl.SegmentTable[i], st.Get(seg), "num=%x", i)
	}

	assert.False(t, m.EventsPending())
	_, err = m.NextTimeSlot()
	assert.Equal(t, vsim.ErrNoEvents, err)
}

func TestSevenSegmentBench(t *testing.T) {
	tr, err := hwtest.RunTrace(hl.SevenSegmentBench, vsim.DefaultConfig(), 0, "seg")
	require.NoError(t, err)
	require.Len(t, tr, 16)
	for i, e := range tr {
		assert.Equal(t, uint64(i), e.Time)
		assert.Equal(t, hl.SegmentTable[i], e.Value)
	}
}

func TestDesigns(t *testing.T) {
	assert.Equal(t, []string{"counter", "debouncer", "keypad", "sevenseg", "sevenseg_tb"}, hl.Designs())
	for _, n := range hl.Designs() {
		spec, err := hl.Design(n)
		require.NoError(t, err)
		m, err := vsim.New(spec, vsim.DefaultConfig())
		require.NoError(t, err, n)
		m.Close()
	}
	_, err := hl.Design("cpu")
	assert.Error(t, err)
}
