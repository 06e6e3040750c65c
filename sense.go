// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vsim

// Edge is the kind of condition a trigger bit is sensitive to.
//
type Edge int

// Sensitivity kinds.
//
const (
	Changed Edge = iota // any change of value
	Posedge             // bit 0 went from 0 to 1
	Negedge             // bit 0 went from 1 to 0
	Flag                // externally supplied boolean
)

var edgeNames = [...]string{"", "posedge ", "negedge ", "[true] "}

type sense struct {
	edge Edge
	slot int // shadow slot, -1 for flags
	flag func() bool
	desc string
}

// scanner computes a region's trigger vector from the current signal state
// and the previous-value shadows.
//
type scanner struct {
	senses  []sense
	sigs    []Signal // signal sampled into each shadow slot
	shadows []uint64
	slots   map[Signal]int

	// forceInit forces all Changed bits on the first scan.
	forceInit bool
	didInit   bool
}

func newScanner(forceInit bool) *scanner {
	return &scanner{slots: make(map[Signal]int), forceInit: forceInit}
}

// add registers a new sensitivity on signal n and returns its trigger index.
//
func (sc *scanner) add(e Edge, n Signal, name string) int {
	slot, ok := sc.slots[n]
	if !ok {
		slot = len(sc.sigs)
		sc.sigs = append(sc.sigs, n)
		sc.shadows = append(sc.shadows, 0)
		sc.slots[n] = slot
	}
	sc.senses = append(sc.senses, sense{edge: e, slot: slot, desc: "@(" + edgeNames[e] + name + ")"})
	return len(sc.senses) - 1
}

// addFlag registers an externally evaluated condition and returns its trigger
// index.
//
func (sc *scanner) addFlag(desc string, f func() bool) int {
	sc.senses = append(sc.senses, sense{edge: Flag, slot: -1, flag: f, desc: "@(" + edgeNames[Flag] + desc + ")"})
	return len(sc.senses) - 1
}

func (sc *scanner) len() int { return len(sc.senses) }

// latch copies the current value of every sampled signal into its shadow.
//
func (sc *scanner) latch(st *State) {
	for i, n := range sc.sigs {
		sc.shadows[i] = st.Get(n)
	}
}

// scan sets every bit of tv according to its condition, then updates the
// shadows. Changes made after scan returns are seen by the next scan.
//
func (sc *scanner) scan(st *State, tv TriggerVec) {
	for i := range sc.senses {
		s := &sc.senses[i]
		var v bool
		switch s.edge {
		case Changed:
			v = st.Get(sc.sigs[s.slot]) != sc.shadows[s.slot]
		case Posedge:
			v = st.Get(sc.sigs[s.slot])&^sc.shadows[s.slot]&1 != 0
		case Negedge:
			v = sc.shadows[s.slot]&^st.Get(sc.sigs[s.slot])&1 != 0
		case Flag:
			v = s.flag()
		}
		tv.Set(i, v)
	}
	sc.latch(st)
	if sc.forceInit && !sc.didInit {
		sc.didInit = true
		for i := range sc.senses {
			if sc.senses[i].edge == Changed {
				tv.Set(i, true)
			}
		}
	}
}

// describe returns the description of every set bit of tv.
//
func (sc *scanner) describe(tv TriggerVec) []string {
	var out []string
	for _, i := range tv.Indices() {
		if i < len(sc.senses) {
			out = append(out, sc.senses[i].desc)
		}
	}
	return out
}
