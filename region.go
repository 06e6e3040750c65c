// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vsim

// An Evaluator is a region update body. It may freely read and write the
// State but must not drive trigger scans; changes it makes are seen by the
// next scan.
//
type Evaluator func(st *State)

type evaluator struct {
	mask TriggerVec
	fn   Evaluator
}

// region is an evaluation region with its trigger vector and dispatch table.
//
type region struct {
	name     string
	triggers TriggerVec
	table    []evaluator
}

func (r *region) add(mask TriggerVec, fn Evaluator) {
	r.table = append(r.table, evaluator{mask, fn})
}

// dispatch calls, in registration order, every evaluator whose mask
// intersects the current trigger vector.
//
func (r *region) dispatch(st *State) {
	for i := range r.table {
		if r.triggers.Intersects(r.table[i].mask) {
			r.table[i].fn(st)
		}
	}
}
