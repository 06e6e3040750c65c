// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vsim

import (
	"github.com/stremme1/vsim/internal/hdl"
)

type senseItem struct {
	Edge Edge
	Name string
	Pos  int
}

// parseDecls parses a signal declaration list such as "clk, cnt[4]".
//
func parseDecls(decl string) ([]hdl.Decl, error) {
	return hdl.ParseDecls(decl)
}

// parseSenses parses a sensitivity list such as "posedge clk, rst_n" and
// maps edge keywords to trigger edges.
//
func parseSenses(list string) ([]senseItem, error) {
	ss, err := hdl.ParseSenses(list)
	if err != nil {
		return nil, err
	}
	out := make([]senseItem, len(ss))
	for i, s := range ss {
		e := Changed
		switch s.Edge {
		case hdl.Posedge:
			e = Posedge
		case hdl.Negedge:
			e = Negedge
		}
		out[i] = senseItem{e, s.Name, int(s.Pos)}
	}
	return out, nil
}
