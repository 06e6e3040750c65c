// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vsim

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// A Socket is handed to a design's MountFn. It allocates signals and trigger
// bits in the model and registers region evaluators and processes.
//
// Trigger indices returned by Sense, Trigger and DelayTrigger refer to the
// Active region vector, which is also the NBA region vector. Indices returned
// by SettleTrigger refer to the Settle region vector whose bit SettleFirst is
// set only on the first Settle iteration.
//
// Sockets of parts mounted by Chip resolve signal names in the part's
// namespace.
//
type Socket struct {
	m      *Model
	parent *Socket
	prefix string
	wires  W
}

// resolve returns the full name of the named signal and whether it is wired
// to a signal of an enclosing design.
//
func (s *Socket) resolve(name string) (string, bool) {
	if s.parent == nil {
		return name, false
	}
	if w, ok := s.wires[name]; ok {
		full, _ := s.parent.resolve(w)
		return full, true
	}
	return s.parent.resolve(s.prefix + "." + name)
}

// Name returns the model instance name.
//
func (s *Socket) Name() string { return s.m.name }

// Time returns the current simulated time of the model. It is meant to be
// called from evaluators.
//
func (s *Socket) Time() uint64 { return s.m.time }

// Logger returns the model logger. Evaluators that print diagnostics should
// capture it.
//
func (s *Socket) Logger() *zerolog.Logger { return &s.m.log }

// Wire allocates a new signal of the given width in bits. If name is wired to
// a signal of an enclosing design that already exists, that signal is
// returned instead, provided the widths match.
//
func (s *Socket) Wire(name string, width int) (Signal, error) {
	full, shared := s.resolve(name)
	if shared {
		if n, ok := s.m.state.Lookup(full); ok {
			if w := s.m.state.Width(n); w != width {
				return 0, errors.Errorf("signal %s already declared with width %d, not %d", full, w, width)
			}
			return n, nil
		}
	}
	return s.m.state.alloc(full, width)
}

// Declare allocates the signals described by decl and returns them in
// declaration order. decl is a comma separated list of signal names, each
// optionally followed by its width in brackets (default 1):
//
//	sigs, err := s.Declare("clk, rst_n, row_idx[4], debounce_cnt[32]")
//
func (s *Socket) Declare(decl string) ([]Signal, error) {
	ds, err := parseDecls(decl)
	if err != nil {
		return nil, err
	}
	out := make([]Signal, 0, len(ds))
	for _, d := range ds {
		n, err := s.Wire(d.Name, d.Width)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// Signal returns the signal with the given name.
// This function panics if the signal does not exist.
//
func (s *Socket) Signal(name string) Signal {
	n, ok := s.Lookup(name)
	if !ok {
		panic("signal " + name + " does not exist")
	}
	return n
}

// Lookup returns the signal with the given name.
//
func (s *Socket) Lookup(name string) (Signal, bool) {
	full, _ := s.resolve(name)
	return s.m.state.Lookup(full)
}

// Trigger adds an Active region trigger bit sensitive to signal n.
//
func (s *Socket) Trigger(e Edge, n Signal) int {
	if e == Flag {
		panic("use Flag() to register flag triggers")
	}
	return s.m.actScan.add(e, n, s.m.state.Name(n))
}

// Flag adds an Active region trigger bit set whenever f returns true during a
// scan. desc is used in diagnostics.
//
func (s *Socket) Flag(desc string, f func() bool) int {
	return s.m.actScan.addFlag(desc, f)
}

// Sense adds one Active region trigger bit per item of the comma separated
// sensitivity list and returns their indices. Items are signal names
// optionally preceded by "posedge" or "negedge":
//
//	bits, err := s.Sense("posedge clk, negedge rst_n, key_pressed")
//
func (s *Socket) Sense(list string) ([]int, error) {
	return s.sense(list, s.m.actScan)
}

// SettleTrigger adds a Settle region trigger bit sensitive to signal n.
//
func (s *Socket) SettleTrigger(e Edge, n Signal) int {
	if e == Flag {
		panic("flag triggers are not supported in the Settle region")
	}
	return s.m.stlScan.add(e, n, s.m.state.Name(n))
}

// SettleSense is like Sense for the Settle region.
//
func (s *Socket) SettleSense(list string) ([]int, error) {
	return s.sense(list, s.m.stlScan)
}

func (s *Socket) sense(list string, sc *scanner) ([]int, error) {
	items, err := parseSenses(list)
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, len(items))
	for _, it := range items {
		n, ok := s.Lookup(it.Name)
		if !ok {
			return nil, errors.Errorf("in %q at pos %d: unknown signal %s", list, it.Pos+1, it.Name)
		}
		out = append(out, sc.add(it.Edge, n, s.m.state.Name(n)))
	}
	return out, nil
}

// DelayTrigger returns the Active region trigger bit that is set when a
// delayed process is due at the current time. Processes are resumed from the
// Active region in any iteration where this bit is set. The bit is allocated
// on first use and Initial allocates it automatically.
//
func (s *Socket) DelayTrigger() int {
	if s.m.delayBit < 0 {
		m := s.m
		m.delayBit = m.actScan.addFlag("delay scheduler awaiting current time", func() bool {
			return m.sched.AwaitingCurrentTime(m.time)
		})
	}
	return s.m.delayBit
}

// Triggers returns the number of Active region trigger bits allocated so far.
//
func (s *Socket) Triggers() int { return s.m.actScan.len() }

// SettleTriggers returns the number of Settle region trigger bits allocated so
// far.
//
func (s *Socket) SettleTriggers() int { return s.m.stlScan.len() }

// Mask returns an Active/NBA region mask with the given trigger bits set.
//
func (s *Socket) Mask(bits ...int) TriggerVec {
	return Bits(s.Triggers(), bits...)
}

// SettleMask returns a Settle region mask with the given trigger bits set.
//
func (s *Socket) SettleMask(bits ...int) TriggerVec {
	return Bits(s.SettleTriggers(), bits...)
}

// Settle registers a Settle region evaluator, run in any Settle iteration
// where a bit of mask is set.
//
func (s *Socket) Settle(mask TriggerVec, fn Evaluator) {
	s.m.stl.add(mask, fn)
}

// Active registers an Active region evaluator, run in any Active iteration
// where a bit of mask is set.
//
func (s *Socket) Active(mask TriggerVec, fn Evaluator) {
	s.m.act.add(mask, fn)
}

// NBA registers an NBA region evaluator. It runs once per NBA iteration if
// any bit of mask was set in the Active iterations since the previous NBA
// iteration.
//
func (s *Socket) NBA(mask TriggerVec, fn Evaluator) {
	s.m.nba.add(mask, fn)
}

// Static registers a function run once on the first Eval, before shadows are
// sampled and before initial processes start.
//
func (s *Socket) Static(fn Evaluator) {
	s.m.statics = append(s.m.statics, fn)
}

// Final registers a function run by Model.Final.
//
func (s *Socket) Final(fn Evaluator) {
	s.m.finals = append(s.m.finals, fn)
}

// Initial registers an initial process. Initial processes are started in
// registration order on the first Eval and run up to their first suspension
// point. If name is empty, a name is generated.
//
func (s *Socket) Initial(name string, fn ProcessFn) {
	if name == "" {
		name = "initial" + strconv.Itoa(len(s.m.procs))
	}
	s.DelayTrigger()
	s.m.procs = append(s.m.procs, newProc(s.m, name, fn))
}
