// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/pkg/errors"
	"github.com/stremme1/vsim"
)

// Debouncer FSM states.
//
const (
	KeyIdle     = iota // waiting for a key press
	KeyDebounce        // counting stable clock cycles
	KeyPressed         // key_valid asserted
	KeyRelease         // waiting for the key to be released
)

var keyStateNames = [...]string{"IDLE", "DEBOUNCE", "PRESSED", "RELEASE"}

// KeyStateName returns the name of a debouncer FSM state.
//
func KeyStateName(state uint64) string {
	if state < uint64(len(keyStateNames)) {
		return keyStateNames[state]
	}
	return "?"
}

// DebouncerConfig configures the Debouncer design and its testbench. Times
// are in simulation ticks.
//
type DebouncerConfig struct {
	Threshold   uint64 // stable clock cycles before a key is reported
	HalfPeriod  uint64 // clock half period
	ResetTime   uint64 // time rst_n is held low
	PressTime   uint64 // time the key is held down
	ReleaseTime uint64 // time to wait after release before finishing
	Row, Col    uint64 // key position driven by the testbench, must not be 0
	Monitor     bool   // log signal changes once out of reset
}

// DefaultDebouncerConfig uses 1ps ticks with a 3MHz clock, a 20ms debounce
// time and a 100ms key press.
//
var DefaultDebouncerConfig = DebouncerConfig{
	Threshold:   60000,
	HalfPeriod:  166000,
	ResetTime:   1000000,
	PressTime:   100000000000,
	ReleaseTime: 10000000000,
	Row:         1,
	Col:         1,
	Monitor:     true,
}

// Debouncer returns a keypad debouncer with a self checking testbench. The
// testbench holds the design in reset, presses the key at (Row, Col) for
// PressTime ticks, releases it and requests the end of the simulation after
// ReleaseTime ticks.
//
//	Inputs: clk, rst_n, key_pressed, row_idx[4], col_idx[4]
//	Outputs: key_valid, key_row[4], key_col[4]
//	Function: key_valid is asserted while a key has been held at the same
//	          position for at least Threshold clock cycles.
//
func Debouncer(cfg DebouncerConfig) *vsim.DesignSpec {
	return &vsim.DesignSpec{
		Name: "debouncer",
		Mount: func(s *vsim.Socket) error {
			if cfg.Row == 0 || cfg.Col == 0 {
				return errors.New("debouncer: key row and column must not be 0")
			}
			return mountDebouncer(s, &cfg)
		},
	}
}

type debouncer struct {
	Clk        vsim.Signal `vsim:"clk"`
	RstN       vsim.Signal `vsim:"rst_n"`
	KeyPressed vsim.Signal `vsim:"key_pressed"`
	RowIdx     vsim.Signal `vsim:"row_idx,4"`
	ColIdx     vsim.Signal `vsim:"col_idx,4"`
	KeyValid   vsim.Signal `vsim:"key_valid"`
	KeyRow     vsim.Signal `vsim:"key_row,4"`
	KeyCol     vsim.Signal `vsim:"key_col,4"`
	State      vsim.Signal `vsim:"dut.state,2"`
	NextState  vsim.Signal `vsim:"dut.next_state,2"`
	CandRow    vsim.Signal `vsim:"dut.cand_row,4"`
	CandCol    vsim.Signal `vsim:"dut.cand_col,4"`
	Count      vsim.Signal `vsim:"dut.debounce_cnt,32"`

	threshold uint64
}

// next computes the FSM next state.
//
func (d *debouncer) next(st *vsim.State) {
	state := st.Get(d.State)
	next := state
	pressed := st.Bool(d.KeyPressed)
	switch state {
	case KeyIdle:
		if pressed {
			next = KeyDebounce
		}
	case KeyDebounce:
		if !pressed || st.Get(d.RowIdx) != st.Get(d.CandRow) || st.Get(d.ColIdx) != st.Get(d.CandCol) {
			next = KeyIdle
		} else if st.Get(d.Count) >= d.threshold {
			next = KeyPressed
		}
	case KeyPressed:
		if !pressed {
			next = KeyRelease
		}
	case KeyRelease:
		if !pressed {
			next = KeyIdle
		}
	}
	st.Set(d.NextState, next)
}

// seq is the clocked part of the design, with asynchronous active low reset.
//
func (d *debouncer) seq(st *vsim.State) {
	if !st.Bool(d.RstN) {
		st.Set(d.Count, 0)
		st.Set(d.CandRow, 0)
		st.Set(d.CandCol, 0)
		st.Set(d.KeyValid, 0)
		st.Set(d.KeyRow, 0)
		st.Set(d.KeyCol, 0)
		st.Set(d.State, KeyIdle)
		return
	}
	state, next := st.Get(d.State), st.Get(d.NextState)
	pressed := st.Bool(d.KeyPressed)
	row, col := st.Get(d.RowIdx), st.Get(d.ColIdx)
	candRow, candCol := st.Get(d.CandRow), st.Get(d.CandCol)

	if state == KeyDebounce && pressed && row == candRow && col == candCol {
		if cnt := st.Get(d.Count); cnt < d.threshold {
			st.Set(d.Count, cnt+1)
		}
	} else {
		st.Set(d.Count, 0)
	}
	if state == KeyPressed {
		st.Set(d.KeyValid, 1)
		st.Set(d.KeyRow, candRow)
		st.Set(d.KeyCol, candCol)
	} else {
		st.Set(d.KeyValid, 0)
	}
	if state == KeyIdle && next == KeyDebounce && pressed && row != 0 && col != 0 {
		st.Set(d.CandRow, row)
		st.Set(d.CandCol, col)
	}
	st.Set(d.State, next)
}

func mountDebouncer(s *vsim.Socket, cfg *DebouncerConfig) error {
	d := &debouncer{threshold: cfg.Threshold}
	if err := vsim.Bind(s, d); err != nil {
		return err
	}

	monitor := false
	if cfg.Monitor {
		err := Monitor(s, &monitor,
			"col_idx", "dut.cand_col", "dut.cand_row", "dut.debounce_cnt", "key_col",
			"key_pressed", "key_row", "key_valid", "row_idx")
		if err != nil {
			return err
		}
	}

	edges, err := s.Sense("posedge clk, negedge rst_n")
	if err != nil {
		return err
	}
	delay := s.DelayTrigger()

	s.Settle(s.SettleMask(vsim.SettleFirst), d.next)
	s.Active(s.Mask(delay), d.next)
	s.NBA(s.Mask(edges...), d.seq)
	s.NBA(s.Mask(append(edges, delay)...), d.next)

	s.Initial("clock", Clock(d.Clk, cfg.HalfPeriod, 0))
	s.Initial("testbench", func(p *vsim.Proc) {
		st := p.State()
		log := p.Logger()
		log.Info().Msg("=== Debouncer Test ===")
		st.Set(d.RstN, 0)
		st.Set(d.KeyPressed, 0)
		st.Set(d.RowIdx, 0)
		st.Set(d.ColIdx, 0)
		p.Delay(cfg.ResetTime)

		st.Set(d.RstN, 1)
		log.Info().Uint64("time", p.Time()).Msg("system initialized")
		monitor = true

		log.Info().Uint64("row", cfg.Row).Uint64("col", cfg.Col).Uint64("ticks", cfg.PressTime).Msg("pressing key")
		st.Set(d.KeyPressed, 1)
		st.Set(d.RowIdx, cfg.Row)
		st.Set(d.ColIdx, cfg.Col)
		p.Delay(cfg.PressTime)

		st.Set(d.KeyPressed, 0)
		st.Set(d.RowIdx, 0)
		st.Set(d.ColIdx, 0)
		p.Delay(cfg.ReleaseTime)

		log.Info().Uint64("time", p.Time()).Msg("=== Test Complete ===")
		p.Finish()
	})
	return nil
}
