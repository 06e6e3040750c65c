// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vsim

import (
	"sort"
	"testing"
	"testing/quick"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner_edges(t *testing.T) {
	st := newState()
	a, err := st.alloc("a", 4)
	require.NoError(t, err)
	sc := newScanner(false)
	ch := sc.add(Changed, a, "a")
	pe := sc.add(Posedge, a, "a")
	ne := sc.add(Negedge, a, "a")
	// one shadow per signal
	assert.Len(t, sc.shadows, 1)

	sc.latch(st)
	tv := NewTriggerVec(sc.len())
	sc.scan(st, tv)
	assert.False(t, tv.Any())

	data := []struct {
		v          uint64
		ch, pe, ne bool
	}{
		{1, true, true, false},
		{1, false, false, false},
		{3, true, false, false}, // bit 0 unchanged
		{2, true, false, true},
		{4, true, false, false},
		{5, true, true, false},
		{0, true, false, true},
	}
	for _, d := range data {
		st.Set(a, d.v)
		sc.scan(st, tv)
		assert.Equal(t, d.ch, tv.Test(ch), "changed, v=%d", d.v)
		assert.Equal(t, d.pe, tv.Test(pe), "posedge, v=%d", d.v)
		assert.Equal(t, d.ne, tv.Test(ne), "negedge, v=%d", d.v)
	}
	assert.Equal(t, []string{"@(a)", "@(posedge a)", "@(negedge a)"}, sc.describe(Bits(3, 0, 1, 2)))
}

func TestScanner_forceInit(t *testing.T) {
	st := newState()
	a, _ := st.alloc("a", 1)
	sc := newScanner(true)
	ch := sc.add(Changed, a, "a")
	pe := sc.add(Posedge, a, "a")
	flag := false
	fl := sc.addFlag("flag", func() bool { return flag })
	sc.latch(st)

	tv := NewTriggerVec(sc.len())
	sc.scan(st, tv)
	assert.True(t, tv.Test(ch))
	assert.False(t, tv.Test(pe))
	assert.False(t, tv.Test(fl))

	sc.scan(st, tv)
	assert.False(t, tv.Any())

	flag = true
	sc.scan(st, tv)
	assert.Equal(t, []int{fl}, tv.Indices())
}

func TestTriggerVec(t *testing.T) {
	a := Bits(10, 1, 3, 9)
	assert.Equal(t, 10, a.Len())
	assert.Equal(t, "0101000001", a.String())
	assert.Equal(t, []int{1, 3, 9}, a.Indices())

	// masks allocated before later trigger bits are narrower
	assert.True(t, a.Intersects(Bits(4, 3)))
	assert.False(t, a.Intersects(Bits(4, 0, 2)))
	assert.False(t, a.Intersects(TriggerVec{}))

	b := NewTriggerVec(10)
	b.Or(Bits(5, 0, 1))
	b.Or(TriggerVec{})
	assert.Equal(t, []int{0, 1}, b.Indices())

	c := NewTriggerVec(10)
	c.AndNot(a, b)
	assert.Equal(t, []int{3, 9}, c.Indices())
	c.AndNot(a, TriggerVec{})
	assert.Equal(t, []int{1, 3, 9}, c.Indices())
	c.Clear()
	assert.False(t, c.Any())

	// in place
	d := Bits(10, 1, 3, 9)
	d.AndNot(d, Bits(10, 3))
	assert.Equal(t, []int{1, 9}, d.Indices())
	e := Bits(10, 3, 4)
	e.AndNot(Bits(10, 1, 3, 9), e)
	assert.Equal(t, []int{1, 9}, e.Indices())

	var z TriggerVec
	assert.False(t, z.Any())
	assert.Empty(t, z.Indices())
	z.Clear()

	assert.Panics(t, func() { Bits(3, 3) })
	assert.Panics(t, func() { Bits(3, -1) })
}

func TestDelayScheduler_order(t *testing.T) {
	f := func(ds []uint8) bool {
		var d DelayScheduler
		var got []int
		for i, v := range ds {
			i := i
			d.Delay(0, uint64(v), ResumerFunc(func() error { got = append(got, i); return nil }))
		}
		if err := d.Resume(255); err != nil {
			return false
		}
		want := make([]int, len(ds))
		for i := range want {
			want[i] = i
		}
		sort.SliceStable(want, func(i, j int) bool { return ds[want[i]] < ds[want[j]] })
		if len(got) != len(want) {
			return false
		}
		for i := range got {
			if got[i] != want[i] {
				return false
			}
		}
		return d.Empty()
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestDelayScheduler_resumeLimit(t *testing.T) {
	var d DelayScheduler
	var got []string
	_, err := d.NextTimeSlot()
	assert.Equal(t, ErrNoEvents, err)

	d.Delay(0, 10, ResumerFunc(func() error {
		got = append(got, "a")
		d.Delay(10, 0, ResumerFunc(func() error { got = append(got, "c"); return nil }))
		return nil
	}))
	d.Delay(5, 5, ResumerFunc(func() error { got = append(got, "b"); return nil }))
	d.Delay(0, 20, ResumerFunc(func() error { got = append(got, "d"); return nil }))

	next, err := d.NextTimeSlot()
	require.NoError(t, err)
	assert.Equal(t, uint64(10), next)
	assert.False(t, d.AwaitingCurrentTime(9))

	require.NoError(t, d.Resume(10))
	assert.Equal(t, []string{"a", "b"}, got)
	// c was scheduled for the current time by a resumed entry
	assert.True(t, d.AwaitingCurrentTime(10))
	require.NoError(t, d.Resume(10))
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.False(t, d.AwaitingCurrentTime(10))
	assert.Equal(t, 1, d.Len())
}

func TestDelayScheduler_error(t *testing.T) {
	var d DelayScheduler
	boom := errors.New("boom")
	n := 0
	d.Delay(0, 1, ResumerFunc(func() error { return boom }))
	d.Delay(0, 1, ResumerFunc(func() error { n++; return nil }))
	assert.Equal(t, boom, d.Resume(1))
	assert.Equal(t, 0, n)
	assert.Equal(t, 1, d.Len())
	assert.Len(t, d.drain(), 1)
	assert.True(t, d.Empty())
}

func TestState(t *testing.T) {
	st := newState()
	a, err := st.alloc("a", 3)
	require.NoError(t, err)
	w, err := st.alloc("w", 64)
	require.NoError(t, err)
	_, err = st.alloc("a", 3)
	assert.Error(t, err)
	_, err = st.alloc("z", 0)
	assert.Error(t, err)
	_, err = st.alloc("z", 65)
	assert.Error(t, err)

	st.Set(a, 0xff)
	assert.Equal(t, uint64(7), st.Get(a))
	st.Toggle(a)
	assert.Equal(t, uint64(0), st.Get(a))
	st.SetBool(a, true)
	assert.True(t, st.Bool(a))
	st.Set(w, ^uint64(0))
	assert.Equal(t, ^uint64(0), st.Get(w))
	assert.Equal(t, 3, st.Width(a))
	assert.Equal(t, 64, st.Width(w))
	assert.Equal(t, "w", st.Name(w))
	assert.Equal(t, []uint64{1, ^uint64(0)}, st.Snapshot())
}

func TestResetter(t *testing.T) {
	alloc := func() *State {
		st := newState()
		st.alloc("a", 32)
		st.alloc("b", 32)
		st.alloc("c", 1)
		return st
	}
	snap := func(policy Reset, instance string, seed uint64) []uint64 {
		st := alloc()
		newResetter(policy, instance, seed).reset(st)
		return st.Snapshot()
	}
	assert.Equal(t, []uint64{0, 0, 0}, snap(ResetZero, "top", 1))
	assert.Equal(t, []uint64{0xffffffff, 0xffffffff, 1}, snap(ResetOnes, "top", 1))

	r := snap(ResetRandom, "top", 1)
	assert.Equal(t, r, snap(ResetRandom, "top", 1))
	assert.NotEqual(t, r[:2], snap(ResetRandom, "top", 2)[:2])
	assert.NotEqual(t, r[:2], snap(ResetRandom, "other", 1)[:2])
	assert.NotEqual(t, r[0], r[1])

	for _, p := range []Reset{ResetZero, ResetOnes, ResetRandom} {
		q, err := ParseReset(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, q)
	}
	_, err := ParseReset("maybe")
	assert.Error(t, err)
	assert.Equal(t, "Reset(7)", Reset(7).String())
}
