// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import "github.com/stremme1/vsim"

// Keypad chains a Debouncer and a SevenSegment decoder: the column of the last
// validated key is shown on the display.
//
//	Parts: kbd (Debouncer), disp (SevenSegment)
//	Wires: kbd.key_col -> key -> disp.num, disp.seg -> seg
//
// All other signals are prefixed with their part name, e.g. kbd.key_valid.
//
func Keypad(cfg DebouncerConfig) *vsim.DesignSpec {
	return vsim.Chip("keypad",
		vsim.Part{Name: "kbd", Spec: Debouncer(cfg), Wires: vsim.W{"key_col": "key"}},
		vsim.Part{Name: "disp", Spec: SevenSegment, Wires: vsim.W{"num": "key", "seg": "seg"}},
	)
}
