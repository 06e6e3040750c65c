// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/pkg/errors"
	"github.com/stremme1/vsim"
)

// Monitor logs the values of the named signals at info level whenever any of
// them changes. Values are logged from the NBA region, so they reflect the
// state before the registers of the current iteration are updated; a further
// line is logged once they are.
//
// If enable is not nil, nothing is logged while *enable is false.
//
func Monitor(s *vsim.Socket, enable *bool, names ...string) error {
	sigs := make([]vsim.Signal, len(names))
	bits := make([]int, len(names))
	for i, n := range names {
		sig, ok := s.Lookup(n)
		if !ok {
			return errors.Errorf("monitor: unknown signal %s", n)
		}
		sigs[i] = sig
		bits[i] = s.Trigger(vsim.Changed, sig)
	}
	log := s.Logger()
	s.NBA(s.Mask(bits...), func(st *vsim.State) {
		if enable != nil && !*enable {
			return
		}
		ev := log.Info().Uint64("time", s.Time())
		for i, n := range names {
			ev = ev.Uint64(n, st.Get(sigs[i]))
		}
		ev.Msg("monitor")
	})
	return nil
}

// Probe calls f with the current time and value of signal n every time n
// changes. f is called from the NBA region, after the Active region has
// converged, and once on the first evaluation.
//
func Probe(s *vsim.Socket, n vsim.Signal, f func(t, v uint64)) {
	s.NBA(s.Mask(s.Trigger(vsim.Changed, n)), func(st *vsim.State) {
		f(s.Time(), st.Get(n))
	})
}
