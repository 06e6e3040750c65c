// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package vsim is a discrete-event simulation kernel for compiled digital logic
designs.

A design is described by a DesignSpec whose Mount function declares signals,
sensitivities and region evaluators on a Socket. The kernel does not know
anything about the logic itself: evaluators are plain Go functions operating
on the State block.

Evaluation

Each call to Model.Eval evaluates one simulated time step. Signal changes are
detected by comparing current values to shadow copies taken at the previous
scan, which sets bits in a trigger vector. Evaluators registered with a mask
run in any iteration where one of their mask bits is set.

Three regions are evaluated:

	Settle  run once, on the first Eval, until combinational logic is stable.
	Active  blocking assignments and resumption of delayed processes.
	NBA     non-blocking assignments, run once Active has converged.

The Active loop is nested inside the NBA loop: after NBA evaluators run,
Active is scanned again, and so on until neither region has anything to do.
Each loop runs at most Config.IterationCap iterations; a design that keeps
producing triggers beyond that fails with a *ConvergenceError.

Processes

Initial processes are sequential Go functions that may suspend themselves
with Proc.Delay. They run on their own goroutines but never concurrently with
the kernel or with each other.

A typical driver loop looks like:

	m, err := vsim.New(hwlib.Counter(16), vsim.DefaultConfig())
	if err != nil {
		// handle error
	}
	for !m.Finished() {
		if err := m.Eval(); err != nil {
			// handle error
		}
		t, err := m.NextTimeSlot()
		if err != nil {
			break // no more events
		}
		m.SetTime(t)
	}
	m.Final()

Run implements this loop.

*/
package vsim
