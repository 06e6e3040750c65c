// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides a library of ready to simulate designs and helpers
// to build new ones for vsim.
//
package hwlib

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/stremme1/vsim"
)

// CounterCycles is the number of clock cycles run by the registered counter
// design.
//
const CounterCycles = 16

var designs = map[string]func() *vsim.DesignSpec{
	"counter":     func() *vsim.DesignSpec { return Counter(CounterCycles) },
	"debouncer":   func() *vsim.DesignSpec { return Debouncer(DefaultDebouncerConfig) },
	"keypad":      func() *vsim.DesignSpec { return Keypad(DefaultDebouncerConfig) },
	"sevenseg":    func() *vsim.DesignSpec { return SevenSegment },
	"sevenseg_tb": SevenSegmentBench,
}

// Design returns a new instance of the named design with its default
// parameters.
//
func Design(name string) (*vsim.DesignSpec, error) {
	f, ok := designs[name]
	if !ok {
		return nil, errors.Errorf("unknown design %q", name)
	}
	return f(), nil
}

// Designs returns the names of all registered designs in lexical order.
//
func Designs() []string {
	names := make([]string, 0, len(designs))
	for n := range designs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
