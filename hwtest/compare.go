// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing designs.
//
package hwtest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stremme1/vsim"
	"github.com/stremme1/vsim/hwlib"
)

// Event is a recorded signal change.
//
type Event struct {
	Time   uint64
	Signal string
	Value  uint64
}

func (e Event) String() string {
	return fmt.Sprintf("%d: %s=%d", e.Time, e.Signal, e.Value)
}

// Trace is a list of signal changes in simulation order.
//
type Trace []Event

// Signal returns the events of the named signal.
//
func (tr Trace) Signal(name string) Trace {
	var out Trace
	for _, e := range tr {
		if e.Signal == name {
			out = append(out, e)
		}
	}
	return out
}

// At returns the value of the named signal at time t, that is the value of
// the last recorded change at or before t.
//
func (tr Trace) At(name string, t uint64) (uint64, bool) {
	var v uint64
	found := false
	for _, e := range tr {
		if e.Time > t {
			break
		}
		if e.Signal == name {
			v, found = e.Value, true
		}
	}
	return v, found
}

func (tr Trace) String() string {
	var b strings.Builder
	for _, e := range tr {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Record returns a design that mounts spec and appends every change of the
// named signals to tr. Initial values are recorded on the first evaluation.
//
func Record(spec *vsim.DesignSpec, tr *Trace, names ...string) *vsim.DesignSpec {
	return &vsim.DesignSpec{
		Name: spec.Name,
		Mount: func(s *vsim.Socket) error {
			if err := spec.Mount(s); err != nil {
				return err
			}
			for _, n := range names {
				sig, ok := s.Lookup(n)
				if !ok {
					return errors.Errorf("record: unknown signal %s", n)
				}
				name := n
				var last uint64
				first := true
				hwlib.Probe(s, sig, func(t, v uint64) {
					if !first && v == last {
						return
					}
					first, last = false, v
					*tr = append(*tr, Event{Time: t, Signal: name, Value: v})
				})
			}
			return nil
		},
	}
}

// RunTrace builds a model for the design returned by mk, runs it to
// completion or until the given time and returns the trace of the named
// signals.
//
func RunTrace(mk func() *vsim.DesignSpec, cfg vsim.Config, until uint64, names ...string) (Trace, error) {
	var tr Trace
	m, err := vsim.New(Record(mk(), &tr, names...), cfg)
	if err != nil {
		return nil, err
	}
	if err = vsim.Run(context.Background(), m, until); err != nil {
		return tr, err
	}
	return tr, nil
}

// CompareRuns runs the design returned by mk twice with the same
// configuration and checks that both runs produce identical traces of the
// named signals. It returns the trace of the first run.
//
func CompareRuns(t testing.TB, mk func() *vsim.DesignSpec, cfg vsim.Config, until uint64, names ...string) Trace {
	t.Helper()

	start := time.Now()
	tr1, err := RunTrace(mk, cfg, until, names...)
	if err != nil {
		t.Fatal(err)
	}
	elapsed := time.Since(start)
	tr2, err := RunTrace(mk, cfg, until, names...)
	if err != nil {
		t.Fatal(err)
	}

	if len(tr1) != len(tr2) {
		t.Fatalf("trace length mismatch: %d != %d\nfirst run:\n%vsecond run:\n%v", len(tr1), len(tr2), tr1, tr2)
	}
	for i := range tr1 {
		if tr1[i] != tr2[i] {
			t.Fatalf("traces differ at event %d: %v != %v", i, tr1[i], tr2[i])
		}
	}
	var end uint64
	if len(tr1) > 0 {
		end = tr1[len(tr1)-1].Time
	}
	t.Logf("%d events up to time %d in %v", len(tr1), end, elapsed)
	return tr1
}
