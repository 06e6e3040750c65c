// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vsim

import (
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// A TriggerVec is a fixed width set of trigger bits. Bit i is set when
// sensitivity condition i held during the most recent scan.
//
// The zero value is an empty vector of width 0.
//
type TriggerVec struct {
	b *bitset.BitSet
	n uint
}

// NewTriggerVec returns a cleared TriggerVec of width n.
//
func NewTriggerVec(n int) TriggerVec {
	return TriggerVec{b: bitset.New(uint(n)), n: uint(n)}
}

// Bits returns a TriggerVec of width n with the given bits set. It panics if
// any index is out of range. This is mostly useful to build evaluator masks:
//
//	s.NBA(vsim.Bits(s.Triggers(), clkRise, rstFall), seqBody)
//
func Bits(n int, idx ...int) TriggerVec {
	t := NewTriggerVec(n)
	for _, i := range idx {
		if i < 0 || i >= n {
			panic("trigger bit " + strconv.Itoa(i) + " out of range [0, " + strconv.Itoa(n) + ")")
		}
		t.b.Set(uint(i))
	}
	return t
}

// Len returns the width of t.
//
func (t TriggerVec) Len() int { return int(t.n) }

// Set sets bit i to v.
//
func (t TriggerVec) Set(i int, v bool) {
	t.b.SetTo(uint(i), v)
}

// Test returns the value of bit i.
//
func (t TriggerVec) Test(i int) bool {
	return t.b.Test(uint(i))
}

// Any returns true if any bit is set.
//
func (t TriggerVec) Any() bool {
	return t.b != nil && t.b.Any()
}

// Clear clears all bits.
//
func (t TriggerVec) Clear() {
	if t.b != nil {
		t.b.ClearAll()
	}
}

// Or sets every bit of t that is set in o.
//
func (t TriggerVec) Or(o TriggerVec) {
	if o.b == nil {
		return
	}
	t.b.InPlaceUnion(o.b)
}

// AndNot sets t to a &^ b. t may be a or b.
//
func (t TriggerVec) AndNot(a, b TriggerVec) {
	var r *bitset.BitSet
	switch {
	case a.b == nil:
		r = bitset.New(t.n)
	case b.b == nil:
		r = a.b.Clone()
	default:
		r = a.b.Difference(b.b)
	}
	t.b.ClearAll()
	t.b.InPlaceUnion(r)
}

// Intersects returns true if t and mask have at least one bit in common.
//
func (t TriggerVec) Intersects(mask TriggerVec) bool {
	if t.b == nil || mask.b == nil {
		return false
	}
	return t.b.IntersectionCardinality(mask.b) > 0
}

// Indices returns the indices of all set bits in ascending order.
//
func (t TriggerVec) Indices() []int {
	var out []int
	if t.b == nil {
		return out
	}
	for i, ok := t.b.NextSet(0); ok; i, ok = t.b.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}

// String returns the vector as a string of 0s and 1s, bit 0 first.
//
func (t TriggerVec) String() string {
	var b strings.Builder
	b.Grow(int(t.n))
	for i := uint(0); i < t.n; i++ {
		if t.b.Test(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
