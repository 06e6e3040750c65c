// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vsim

import (
	"strings"

	"github.com/pkg/errors"
)

// W is a set of wires, connecting a part's signals (the map key) to signals
// in its container.
//
type W map[string]string

func (w W) check() error {
	for k, v := range w {
		if k == "" || v == "" {
			return errors.New("invalid signal mapping " + k + ":" + v)
		}
	}
	return nil
}

// A Part is a design instantiated inside another design.
//
// Signals of the part are named Name + "." + signal in the enclosing design,
// except for those listed in Wires which are connected to the given signal of
// the enclosing design. If Name is empty, the part's DesignSpec name is used.
//
type Part struct {
	Name  string
	Spec  *DesignSpec
	Wires W
}

// Chip composes existing designs into a new design. Parts are mounted in
// order, and their evaluators are registered in that order.
//
// A keypad with a digit display could be created like this:
//
//	keypad := vsim.Chip("keypad",
//		vsim.Part{Name: "kbd", Spec: debouncer, Wires: vsim.W{"key_col": "key"}},
//		vsim.Part{Name: "disp", Spec: decoder, Wires: vsim.W{"num": "key", "seg": "seg"}},
//	)
//
// Wired signals are shared: the first part to declare one allocates it and
// subsequent declarations with the same width reuse it.
//
func Chip(name string, parts ...Part) *DesignSpec {
	return &DesignSpec{
		Name: name,
		Mount: func(s *Socket) error {
			seen := make(map[string]bool, len(parts))
			for i := range parts {
				p := &parts[i]
				if p.Spec == nil || p.Spec.Mount == nil {
					return errors.Errorf("%s: part %d: nil design spec", name, i)
				}
				pn := p.Name
				if pn == "" {
					pn = p.Spec.Name
				}
				if pn == "" || strings.ContainsAny(pn, ". ") {
					return errors.Errorf("%s: part %d: invalid part name %q", name, i, pn)
				}
				if seen[pn] {
					return errors.Errorf("%s: duplicate part name %q", name, pn)
				}
				seen[pn] = true
				if err := p.Wires.check(); err != nil {
					return errors.Wrapf(err, "%s: part %s", name, pn)
				}
				sub := &Socket{m: s.m, parent: s, prefix: pn, wires: p.Wires}
				if err := p.Spec.Mount(sub); err != nil {
					return errors.Wrapf(err, "%s: part %s", name, pn)
				}
			}
			return nil
		},
	}
}
