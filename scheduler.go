// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vsim

import (
	"container/heap"

	"github.com/pkg/errors"
)

// ErrNoEvents is returned when querying the next event time of a scheduler
// (or Model) with nothing scheduled.
//
var ErrNoEvents = errors.New("no delayed events pending")

type delayEntry struct {
	at  uint64 // wake time
	seq uint64 // insertion order, breaks ties at the same wake time
	p   Resumer
}

// A Resumer is a suspended unit of execution held by a DelayScheduler.
//
type Resumer interface {
	// Resume runs the unit until its next suspension point or completion.
	Resume() error
}

// ResumerFunc adapts an ordinary function to the Resumer interface.
//
type ResumerFunc func() error

// Resume calls f().
//
func (f ResumerFunc) Resume() error { return f() }

type delayQueue []delayEntry

func (q delayQueue) Len() int { return len(q) }
func (q delayQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}
func (q delayQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *delayQueue) Push(x interface{}) { *q = append(*q, x.(delayEntry)) }
func (q *delayQueue) Pop() interface{} {
	old := *q
	n := len(old) - 1
	e := old[n]
	old[n] = delayEntry{}
	*q = old[:n]
	return e
}

// DelayScheduler is a time ordered collection of suspended processes.
// Entries with the same wake time are resumed in insertion order.
//
type DelayScheduler struct {
	q   delayQueue
	seq uint64
}

// Delay schedules p to be resumed at now + ticks.
//
func (d *DelayScheduler) Delay(now, ticks uint64, p Resumer) {
	heap.Push(&d.q, delayEntry{at: now + ticks, seq: d.seq, p: p})
	d.seq++
}

// AwaitingCurrentTime returns true if any entry is due at or before now.
//
func (d *DelayScheduler) AwaitingCurrentTime(now uint64) bool {
	return len(d.q) > 0 && d.q[0].at <= now
}

// Resume resumes every entry due at or before now, in wake time then
// insertion order. Entries scheduled by resumed processes are not resumed by
// this call, even if they are due at now; they are picked up by the next
// call.
//
// If a process fails, Resume stops and returns its error. Remaining due
// entries stay queued.
//
func (d *DelayScheduler) Resume(now uint64) error {
	limit := d.seq
	for len(d.q) > 0 && d.q[0].at <= now && d.q[0].seq < limit {
		e := heap.Pop(&d.q).(delayEntry)
		if err := e.p.Resume(); err != nil {
			return err
		}
	}
	return nil
}

// Empty returns true if no entry is scheduled.
//
func (d *DelayScheduler) Empty() bool { return len(d.q) == 0 }

// Len returns the number of scheduled entries.
//
func (d *DelayScheduler) Len() int { return len(d.q) }

// NextTimeSlot returns the earliest wake time. It returns ErrNoEvents if
// nothing is scheduled.
//
func (d *DelayScheduler) NextTimeSlot() (uint64, error) {
	if len(d.q) == 0 {
		return 0, ErrNoEvents
	}
	return d.q[0].at, nil
}

// drain removes all entries and returns them in wake order.
//
func (d *DelayScheduler) drain() []Resumer {
	out := make([]Resumer, 0, len(d.q))
	for len(d.q) > 0 {
		out = append(out, heap.Pop(&d.q).(delayEntry).p)
	}
	return out
}
