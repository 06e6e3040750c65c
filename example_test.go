// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vsim_test

import (
	"fmt"

	"github.com/stremme1/vsim"
	"github.com/stremme1/vsim/hwlib"
)

// A driver loop stepping a 2 bit counter through four clock cycles.
//
func Example() {
	m, err := vsim.New(hwlib.Counter(4), vsim.DefaultConfig())
	if err != nil {
		panic(err)
	}
	st := m.State()
	count, _ := st.Lookup("count")
	shown, _ := st.Lookup("shown")
	for !m.Finished() {
		if err := m.Eval(); err != nil {
			panic(err)
		}
		t, err := m.NextTimeSlot()
		if err != nil {
			break
		}
		if err := m.SetTime(t); err != nil {
			panic(err)
		}
	}
	if err := m.Final(); err != nil {
		panic(err)
	}
	fmt.Printf("time=%d count=%d shown=%d\n", m.Time(), st.Get(count), st.Get(shown))

	// Output:
	// time=35 count=0 shown=3
}

// Designs can also be built by hand: a 4 bit register loaded on the rising
// edge of clk.
//
func ExampleSocket() {
	reg := &vsim.DesignSpec{
		Name: "reg4",
		Mount: func(s *vsim.Socket) error {
			sigs, err := s.Declare("clk, d[4], q[4]")
			if err != nil {
				return err
			}
			clk, d, q := sigs[0], sigs[1], sigs[2]
			s.NBA(s.Mask(s.Trigger(vsim.Posedge, clk)), func(st *vsim.State) {
				st.Set(q, st.Get(d))
			})
			return nil
		},
	}
	m, err := vsim.New(reg, vsim.DefaultConfig())
	if err != nil {
		panic(err)
	}
	defer m.Close()

	st := m.State()
	clk, _ := st.Lookup("clk")
	d, _ := st.Lookup("d")
	q, _ := st.Lookup("q")
	m.Eval()
	for _, v := range []uint64{3, 9, 12} {
		st.Set(d, v)
		st.Set(clk, 1)
		m.Eval()
		st.Set(clk, 0)
		m.Eval()
		fmt.Print(st.Get(q), " ")
	}
	fmt.Println()

	// Output:
	// 3 9 12
}
