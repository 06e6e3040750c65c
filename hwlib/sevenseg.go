// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/stremme1/vsim"
)

// SegmentTable maps hex digits to active high seven segment patterns. Bit 0 is
// segment a, bit 6 is segment g.
//
var SegmentTable = [16]uint64{
	0x3f, 0x06, 0x5b, 0x4f, 0x66, 0x6d, 0x7d, 0x07,
	0x7f, 0x6f, 0x77, 0x7c, 0x39, 0x5e, 0x79, 0x71,
}

func mountSevenSegment(s *vsim.Socket) (num, seg vsim.Signal, err error) {
	var d struct {
		Num vsim.Signal `vsim:"num,4"`
		Seg vsim.Signal `vsim:"seg,7"`
	}
	if err = vsim.Bind(s, &d); err != nil {
		return 0, 0, err
	}
	decode := func(st *vsim.State) {
		st.Set(d.Seg, SegmentTable[st.Get(d.Num)&0xf])
	}
	bits, err := s.SettleSense("num")
	if err != nil {
		return 0, 0, err
	}
	s.Settle(s.SettleMask(vsim.SettleFirst, bits[0]), decode)
	s.Active(s.Mask(s.Trigger(vsim.Changed, d.Num)), decode)
	return d.Num, d.Seg, nil
}

// SevenSegment is a hex to seven segment decoder. It is purely
// combinational: it has no process and never schedules any event. The driver
// sets num between calls to Eval.
//
//	Inputs: num[4]
//	Outputs: seg[7]
//	Function: seg = SegmentTable[num]
//
var SevenSegment = &vsim.DesignSpec{
	Name: "sevenseg",
	Mount: func(s *vsim.Socket) error {
		_, _, err := mountSevenSegment(s)
		return err
	},
}

// SevenSegmentBench returns the SevenSegment decoder with a testbench process
// that walks num through every hex digit, one per tick, and logs the decoded
// patterns.
//
func SevenSegmentBench() *vsim.DesignSpec {
	return &vsim.DesignSpec{
		Name: "sevenseg_tb",
		Mount: func(s *vsim.Socket) error {
			num, seg, err := mountSevenSegment(s)
			if err != nil {
				return err
			}
			s.Initial("testbench", func(p *vsim.Proc) {
				st := p.State()
				log := p.Logger()
				log.Info().Msg("=== Seven Segment Decoder Testbench ===")
				for i := uint64(0); i < 16; i++ {
					st.Set(num, i)
					p.Delay(1)
					log.Info().
						Str("input", strconv.FormatUint(i, 16)).
						Str("segments", strconv.FormatUint(st.Get(seg)|1<<7, 2)[1:]).
						Msg("decoded")
				}
				log.Info().Msg("=== Test Complete ===")
				p.Finish()
			})
			return nil
		},
	}
}
