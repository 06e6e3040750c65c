// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import "github.com/stremme1/vsim"

// Clock returns a clock generator process. It drives clk low, then toggles it
// every half ticks. If cycles > 0, it requests the end of the simulation after
// that many rising edges.
//
//	Outputs: clk
//	Function: clk = ~clk every half ticks
//
func Clock(clk vsim.Signal, half uint64, cycles int) vsim.ProcessFn {
	return func(p *vsim.Proc) {
		st := p.State()
		st.Set(clk, 0)
		for n := 0; cycles <= 0 || n < cycles; {
			p.Delay(half)
			st.Toggle(clk)
			if st.Bool(clk) {
				n++
			}
		}
		p.Finish()
	}
}

// CounterHalfPeriod is the clock half period of the Counter design.
//
const CounterHalfPeriod = 5

// Counter returns a 2 bit counter clocked by its own Clock process. The
// counter runs for the given number of clock cycles, or forever if cycles <= 0.
//
//	Signals: clk, count[2], shown[2]
//	Function: on posedge clk: shown = count (blocking), count <= count + 1
//
// Since shown is updated in the Active region and count in the NBA region,
// shown always holds the value of count before the increment.
//
func Counter(cycles int) *vsim.DesignSpec {
	return &vsim.DesignSpec{
		Name: "counter",
		Mount: func(s *vsim.Socket) error {
			var c struct {
				Clk   vsim.Signal `vsim:"clk"`
				Count vsim.Signal `vsim:"count,2"`
				Shown vsim.Signal `vsim:"shown,2"`
			}
			if err := vsim.Bind(s, &c); err != nil {
				return err
			}
			rise := s.Mask(s.Trigger(vsim.Posedge, c.Clk))
			log := s.Logger()
			s.Active(rise, func(st *vsim.State) {
				st.Set(c.Shown, st.Get(c.Count))
				log.Debug().Uint64("time", s.Time()).Uint64("count", st.Get(c.Shown)).Msg("counter")
			})
			s.NBA(rise, func(st *vsim.State) {
				st.Set(c.Count, st.Get(c.Count)+1)
			})
			s.Initial("clock", Clock(c.Clk, CounterHalfPeriod, cycles))
			return nil
		},
	}
}
